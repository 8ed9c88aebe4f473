package selector

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/schemagen-labs/schemagen/internal/registry"
	"github.com/schemagen-labs/schemagen/internal/scanner"
	tm "github.com/schemagen-labs/schemagen/internal/testmodule"
)

func discover(t *testing.T) []scanner.Provider {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return scanner.New(log).Scan([]*registry.Module{tm.Module("app", "/out/app.so", tm.AllTypes()...)})
}

func names(ps []scanner.Provider) []string {
	var out []string
	for _, p := range ps {
		out = append(out, p.Name())
	}
	return out
}

func TestSelect(t *testing.T) {
	providers := discover(t)
	const pkg = "github.com/schemagen-labs/schemagen/internal/testmodule"

	tests := []struct {
		criterion string
		want      []string
	}{
		{"Blog", []string{"BlogContextFactory"}},
		{"blog", []string{"BlogContextFactory"}},
		{"BlogContext", []string{"BlogContextFactory"}},
		{"BLOGCONTEXT", []string{"BlogContextFactory"}},
		{pkg + ".BlogContext", []string{"BlogContextFactory"}},
		{"Shop", []string{"ShopFactory"}},
		{"ShopDb", nil},
		{"ShopDbContext", []string{"ShopFactory"}},
		{"Init", []string{"BrokenInitFactory", "InitFactory"}},
		{"BlogContextFactory", nil},
		{"Context", nil},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.criterion, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, names(Select(providers, tt.criterion))); diff != "" {
				t.Errorf("Select(%q) mismatch (-want +got):\n%s", tt.criterion, diff)
			}
		})
	}
}

func TestSelectAllIsIdentity(t *testing.T) {
	providers := discover(t)
	for _, c := range []string{"all", "ALL", "All", ""} {
		if diff := cmp.Diff(names(providers), names(Select(providers, c))); diff != "" {
			t.Errorf("Select(%q) is not the identity (-want +got):\n%s", c, diff)
		}
	}
}

func TestResolve(t *testing.T) {
	if _, err := Resolve(nil, "all"); !errors.Is(err, ErrNoProviders) {
		t.Errorf("Resolve(empty, all) error = %v, want ErrNoProviders", err)
	}
	if _, err := Resolve(nil, "Blog"); !errors.Is(err, ErrNoProviders) {
		t.Errorf("Resolve(empty, Blog) error = %v, want ErrNoProviders", err)
	}

	providers := discover(t)
	_, err := Resolve(providers, "Inventory")
	var nf *ContextNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("error = %v, want *ContextNotFoundError", err)
	}
	if nf.Name != "Inventory" {
		t.Errorf("Name = %q", nf.Name)
	}
	wantAvailable := []string{"BlogContext", "FailingContext", "InitContext", "NilContext", "PanickingContext", "ShopDbContext"}
	if diff := cmp.Diff(wantAvailable, nf.Available); diff != "" {
		t.Errorf("Available mismatch (-want +got):\n%s", diff)
	}

	got, err := Resolve(providers, "blog")
	if err != nil || len(got) != 1 {
		t.Errorf("Resolve(blog) = %v, %v", names(got), err)
	}
}

func TestShortName(t *testing.T) {
	tests := map[string]string{
		"BlogContext":   "Blog",
		"ShopDbContext": "Shop",
		"Context":       "Context",
		"DbContext":     "Db",
		"Inventory":     "Inventory",
	}
	for in, want := range tests {
		if got := ShortName(in); got != want {
			t.Errorf("ShortName(%q) = %q, want %q", in, got, want)
		}
	}
}
