package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestFilePath(t *testing.T) {
	home := setup(t)
	if got, want := FilePath(), filepath.Join(home, ".schemagen", "config.yaml"); got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
}

func TestSetThenLoad(t *testing.T) {
	setup(t)
	Load()
	if err := Set(KeyOutput, "docs/schema"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	viper.Reset()
	Load()
	if got := Get(KeyOutput); got != "docs/schema" {
		t.Errorf("Get(%q) = %q after reload", KeyOutput, got)
	}
	if got := Get(KeyLogLevel); got != "warn" {
		t.Errorf("default log level = %q", got)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	setup(t)
	Load()
	if err := Set(KeyConfiguration, "Debug"); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SCHEMAGEN_CONFIGURATION", "Release")
	t.Setenv("SCHEMAGEN_DIAGNOSTICS_FRAMEWORK_PREFIXES", "std, golang.org/")

	viper.Reset()
	Load()
	if got := Get(KeyConfiguration); got != "Release" {
		t.Errorf("configuration = %q, want env value", got)
	}
	if diff := cmp.Diff([]string{"std", "golang.org/"}, GetStringSlice(KeyFrameworkPrefixes)); diff != "" {
		t.Errorf("prefixes mismatch (-want +got):\n%s", diff)
	}
}

func TestBindFlags(t *testing.T) {
	setup(t)
	t.Setenv("SCHEMAGEN_OUTPUT", "from-env")
	Load()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String(KeyOutput, "docs/database", "")
	flags.String(KeyContext, "all", "")
	if err := BindFlags(flags); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flags.Parse([]string{"--context", "Blog"}); err != nil {
		t.Fatal(err)
	}

	if got := Get(KeyContext); got != "Blog" {
		t.Errorf("context = %q, want explicit flag", got)
	}
	if got := Get(KeyOutput); got != "from-env" {
		t.Errorf("output = %q, want env over flag default", got)
	}
}

func TestSetRejectsUnknownKey(t *testing.T) {
	home := setup(t)
	Load()
	if err := Set("checksum", "x"); err == nil {
		t.Fatal("Set accepted an unknown key")
	}
	if _, err := os.Stat(filepath.Join(home, ".schemagen", "config.yaml")); !os.IsNotExist(err) {
		t.Errorf("settings file written for a rejected key: %v", err)
	}
}
