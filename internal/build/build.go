package build

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/mod/modfile"
)

// Build configurations.
const (
	Debug   = "Debug"
	Release = "Release"
)

// ModuleExtension is the file extension of built modules.
const ModuleExtension = ".so"

// HostTFM returns the GOOS_GOARCH pair of the running binary.
func HostTFM() string {
	return runtime.GOOS + "_" + runtime.GOARCH
}

// Invoker builds provider modules.
type Invoker struct {
	Fs     afero.Fs
	Runner Runner
	GoBin  string
}

// NewInvoker returns an Invoker that builds with the go command on PATH.
func NewInvoker() *Invoker {
	return &Invoker{
		Fs:     afero.NewOsFs(),
		Runner: &ExecRunner{},
		GoBin:  "go",
	}
}

// Build compiles project, a directory or its go.mod, and returns the path of
// the built module. Empty configuration and tfm default to Debug and the
// host platform.
func (b *Invoker) Build(ctx context.Context, project, configuration, tfm string) (string, error) {
	dir, err := b.projectDir(project)
	if err != nil {
		return "", &InvocationError{Project: project, Err: err}
	}

	configuration, err = normalizeConfiguration(configuration)
	if err != nil {
		return "", &InvocationError{Project: dir, Err: err}
	}
	if tfm == "" {
		tfm = HostTFM()
	}
	goos, goarch, err := ParseTFM(tfm)
	if err != nil {
		return "", &InvocationError{Project: dir, Err: err}
	}

	name, err := b.moduleName(dir)
	if err != nil {
		return "", &InvocationError{Project: dir, Err: err}
	}
	out := OutputPath(dir, configuration, tfm, name)

	args := []string{"build", "-buildmode=plugin", "-o", out}
	args = append(args, configurationFlags(configuration)...)
	args = append(args, ".")

	env := os.Environ()
	env = setEnv(env, "GOOS", goos)
	env = setEnv(env, "GOARCH", goarch)
	env = setEnv(env, "CGO_ENABLED", "1")

	goBin := b.GoBin
	if goBin == "" {
		goBin = "go"
	}
	stderr, err := b.Runner.Run(ctx, dir, env, goBin, args...)
	if err != nil {
		return "", &InvocationError{Project: dir, Err: err, Output: stderr}
	}

	if _, err := b.Fs.Stat(out); err != nil {
		return "", &InvocationError{Project: dir, Err: fmt.Errorf("build succeeded but %s was not produced", out)}
	}
	return out, nil
}

// OutputPath returns where a build of the project in dir is written.
func OutputPath(dir, configuration, tfm, name string) string {
	return filepath.Join(dir, "bin", configuration, tfm, name+ModuleExtension)
}

// ParseTFM splits a GOOS_GOARCH pair.
func ParseTFM(tfm string) (goos, goarch string, err error) {
	i := strings.Index(tfm, "_")
	if i <= 0 || i == len(tfm)-1 {
		return "", "", fmt.Errorf("invalid target platform %q: want GOOS_GOARCH, e.g. %s", tfm, HostTFM())
	}
	return tfm[:i], tfm[i+1:], nil
}

func normalizeConfiguration(c string) (string, error) {
	switch {
	case c == "", strings.EqualFold(c, Debug):
		return Debug, nil
	case strings.EqualFold(c, Release):
		return Release, nil
	}
	return "", fmt.Errorf("unknown configuration %q: want %s or %s", c, Debug, Release)
}

func configurationFlags(c string) []string {
	if c == Release {
		return []string{"-trimpath", "-ldflags=-s -w"}
	}
	return []string{"-gcflags=all=-N -l"}
}

// projectDir resolves project to a directory containing go.mod.
func (b *Invoker) projectDir(project string) (string, error) {
	if strings.TrimSpace(project) == "" {
		return "", errors.New("no project given")
	}
	abs, err := filepath.Abs(project)
	if err != nil {
		return "", fmt.Errorf("resolving project path: %w", err)
	}

	info, err := b.Fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("project not found: %s", abs)
		}
		return "", err
	}

	dir := abs
	if !info.IsDir() {
		if filepath.Base(abs) != "go.mod" {
			return "", fmt.Errorf("%s is not a go.mod file or project directory", abs)
		}
		dir = filepath.Dir(abs)
	}
	if _, err := b.Fs.Stat(filepath.Join(dir, "go.mod")); err != nil {
		return "", fmt.Errorf("no go.mod in %s", dir)
	}
	return dir, nil
}

// moduleName returns the last element of the module path declared in
// dir/go.mod, falling back to the directory name.
func (b *Invoker) moduleName(dir string) (string, error) {
	data, err := afero.ReadFile(b.Fs, filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("reading go.mod: %w", err)
	}
	modPath := modfile.ModulePath(data)
	if modPath == "" {
		return filepath.Base(dir), nil
	}
	return path.Base(modPath), nil
}
