package build

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
)

type fakeRunner struct {
	fs      afero.Fs
	produce bool
	stderr  string
	err     error

	dir  string
	env  []string
	name string
	args []string
}

func (r *fakeRunner) Run(ctx context.Context, dir string, env []string, name string, args ...string) (string, error) {
	r.dir, r.env, r.name, r.args = dir, env, name, args
	if r.err != nil {
		return r.stderr, r.err
	}
	if r.produce {
		for i, a := range args {
			if a == "-o" {
				afero.WriteFile(r.fs, args[i+1], []byte("plugin"), 0644)
			}
		}
	}
	return r.stderr, nil
}

func newProject(t *testing.T, gomod string) (afero.Fs, string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	dir := "/src/blog"
	if err := afero.WriteFile(fs, filepath.Join(dir, "go.mod"), []byte(gomod), 0644); err != nil {
		t.Fatal(err)
	}
	return fs, dir
}

func hasEnv(env []string, kv string) bool {
	for _, e := range env {
		if e == kv {
			return true
		}
	}
	return false
}

func TestBuild(t *testing.T) {
	fs, dir := newProject(t, "module example.com/acme/blogdata\n\ngo 1.25\n")
	runner := &fakeRunner{fs: fs, produce: true}
	inv := &Invoker{Fs: fs, Runner: runner, GoBin: "go"}

	out, err := inv.Build(context.Background(), dir, "release", "linux_arm64")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := filepath.Join(dir, "bin", "Release", "linux_arm64", "blogdata.so")
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if runner.dir != dir || runner.name != "go" {
		t.Errorf("ran %s in %s", runner.name, runner.dir)
	}
	wantArgs := []string{"build", "-buildmode=plugin", "-o", want, "-trimpath", "-ldflags=-s -w", "."}
	if diff := cmp.Diff(wantArgs, runner.args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	for _, kv := range []string{"GOOS=linux", "GOARCH=arm64", "CGO_ENABLED=1"} {
		if !hasEnv(runner.env, kv) {
			t.Errorf("env missing %s", kv)
		}
	}
}

func TestBuildDefaults(t *testing.T) {
	fs, dir := newProject(t, "module blog\n")
	runner := &fakeRunner{fs: fs, produce: true}
	inv := &Invoker{Fs: fs, Runner: runner}

	out, err := inv.Build(context.Background(), filepath.Join(dir, "go.mod"), "", "")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if want := OutputPath(dir, Debug, HostTFM(), "blog"); out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if !strings.Contains(strings.Join(runner.args, " "), "-gcflags=all=-N -l") {
		t.Errorf("debug build missing gcflags: %v", runner.args)
	}
}

func TestBuildFailures(t *testing.T) {
	tests := []struct {
		name    string
		project string
		config  string
		tfm     string
		runner  *fakeRunner
		wantOut string
	}{
		{name: "missing project", project: "/src/missing", runner: &fakeRunner{}},
		{name: "not go.mod", project: "/src/blog/main.go", runner: &fakeRunner{}},
		{name: "bad configuration", project: "/src/blog", config: "Profile", runner: &fakeRunner{}},
		{name: "bad tfm", project: "/src/blog", tfm: "net8.0", runner: &fakeRunner{}},
		{
			name:    "compiler error",
			project: "/src/blog",
			runner:  &fakeRunner{err: errors.New("go exited with code 1"), stderr: "./model.go:3: undefined: Post"},
			wantOut: "undefined: Post",
		},
		{name: "no output", project: "/src/blog", runner: &fakeRunner{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, _ := newProject(t, "module blog\n")
			afero.WriteFile(fs, "/src/blog/main.go", []byte("package main\n"), 0644)
			tt.runner.fs = fs
			inv := &Invoker{Fs: fs, Runner: tt.runner}

			_, err := inv.Build(context.Background(), tt.project, tt.config, tt.tfm)
			var ie *InvocationError
			if !errors.As(err, &ie) {
				t.Fatalf("error = %v, want *InvocationError", err)
			}
			if tt.wantOut != "" && !strings.Contains(err.Error(), tt.wantOut) {
				t.Errorf("error = %q, want compiler output", err)
			}
		})
	}
}

func TestParseTFM(t *testing.T) {
	goos, goarch, err := ParseTFM("darwin_amd64")
	if err != nil || goos != "darwin" || goarch != "amd64" {
		t.Errorf("ParseTFM = %q, %q, %v", goos, goarch, err)
	}
	for _, bad := range []string{"", "linux", "_amd64", "linux_"} {
		if _, _, err := ParseTFM(bad); err == nil {
			t.Errorf("ParseTFM(%q) succeeded", bad)
		}
	}
}
