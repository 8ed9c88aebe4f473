package manifest

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestPathFor(t *testing.T) {
	tests := []struct {
		module string
		want   string
	}{
		{"/out/app.so", "/out/app.deps.yaml"},
		{"/out/blog.data.so", "/out/blog.data.deps.yaml"},
		{"/out/plugin", "/out/plugin.deps.yaml"},
	}
	for _, tt := range tests {
		if got := PathFor(tt.module); got != filepath.FromSlash(tt.want) {
			t.Errorf("PathFor(%q) = %q, want %q", tt.module, got, tt.want)
		}
	}
}

func TestLoad_Valid(t *testing.T) {
	m, err := Load(afero.NewOsFs(), testPath("valid.deps.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []ModuleEntry{
		{Name: "blog-entities", Version: "1.2.0", Path: "lib/blog-entities.so"},
		{Name: "shared-kernel", Path: "/opt/modules/shared-kernel.so"},
	}
	if diff := cmp.Diff(want, m.Modules); diff != "" {
		t.Errorf("Modules mismatch (-want +got):\n%s", diff)
	}
	if m.Module != "app" {
		t.Errorf("Module = %q, want %q", m.Module, "app")
	}
	if m.Dir != testdataDir {
		t.Errorf("Dir = %q, want %q", m.Dir, testdataDir)
	}
}

func TestLoad_Invalid(t *testing.T) {
	files := []string{
		"invalid-missing-path.deps.yaml",
		"invalid-bad-version.deps.yaml",
		"invalid-unknown-field.deps.yaml",
	}
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			_, err := Load(afero.NewOsFs(), testPath(file))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Load(%s) error = %v, want ErrInvalid", file, err)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(afero.NewOsFs(), testPath("invalid-yaml.deps.yaml"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if errors.Is(err, ErrInvalid) {
		t.Error("malformed YAML reported as a schema violation")
	}
}

func TestLoadFor_Missing(t *testing.T) {
	m, err := LoadFor(afero.NewMemMapFs(), "/out/app.so")
	if err != nil {
		t.Fatalf("LoadFor: %v", err)
	}
	if m != nil {
		t.Errorf("expected nil manifest, got %+v", m)
	}
}

func TestLoadFor_ReadsSibling(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := "modules:\n  - name: entities\n    version: 2.0.0\n    path: deps/entities.so\n"
	if err := afero.WriteFile(fs, "/out/app.deps.yaml", []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadFor(fs, "/out/app.so")
	if err != nil {
		t.Fatalf("LoadFor: %v", err)
	}
	e, ok := m.Find("Entities", "^2")
	if !ok {
		t.Fatal("Find(Entities, ^2) found nothing")
	}
	if got := m.ResolvePath(e); got != filepath.FromSlash("/out/deps/entities.so") {
		t.Errorf("ResolvePath = %q", got)
	}
}

func TestFind(t *testing.T) {
	m := &DependencyManifest{
		Dir: "/out",
		Modules: []ModuleEntry{
			{Name: "entities", Version: "1.0.0", Path: "entities-1.so"},
			{Name: "entities", Version: "2.3.0", Path: "entities-2.so"},
			{Name: "kernel", Path: "kernel.so"},
		},
	}

	tests := []struct {
		name, constraint string
		wantPath         string
	}{
		{"entities", "", "entities-1.so"},
		{"entities", ">=2", "entities-2.so"},
		{"kernel", "^9", "kernel.so"},
		{"entities", "^3", ""},
		{"missing", "", ""},
	}
	for _, tt := range tests {
		e, ok := m.Find(tt.name, tt.constraint)
		got := ""
		if ok {
			got = e.Path
		}
		if got != tt.wantPath {
			t.Errorf("Find(%q, %q) = %q, want %q", tt.name, tt.constraint, got, tt.wantPath)
		}
	}

	var empty *DependencyManifest
	if _, ok := empty.Find("entities", ""); ok {
		t.Error("nil manifest should find nothing")
	}
}
