package scanner

import (
	"errors"
	"io"
	"math/rand"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"

	"github.com/schemagen-labs/schemagen/internal/registry"
	tm "github.com/schemagen-labs/schemagen/internal/testmodule"
	"github.com/schemagen-labs/schemagen/pkg/schema"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func providerNames(ps []Provider) []string {
	var names []string
	for _, p := range ps {
		names = append(names, p.Name())
	}
	return names
}

var wantAll = []string{
	"BlogContextFactory",
	"FailingFactory",
	"BrokenInitFactory",
	"InitFactory",
	"NilFactory",
	"PanickingFactory",
	"ShopFactory",
}

func TestScanFindsEveryProvider(t *testing.T) {
	s := New(quietLogger())
	got := s.Scan([]*registry.Module{tm.Module("blog", "/out/blog.so", tm.AllTypes()...)})

	if diff := cmp.Diff(wantAll, providerNames(got)); diff != "" {
		t.Errorf("providers mismatch (-want +got):\n%s", diff)
	}
}

func TestScanIndependentOfEnumerationOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		types := tm.AllTypes()
		rng.Shuffle(len(types), func(a, b int) { types[a], types[b] = types[b], types[a] })

		got := New(quietLogger()).Scan([]*registry.Module{tm.Module("blog", "/out/blog.so", types...)})
		if diff := cmp.Diff(wantAll, providerNames(got)); diff != "" {
			t.Fatalf("shuffle %d: providers mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestScanIsIdempotent(t *testing.T) {
	modules := []*registry.Module{tm.Module("blog", "/out/blog.so", tm.AllTypes()...)}
	s := New(quietLogger())

	first := providerNames(s.Scan(modules))
	second := providerNames(s.Scan(modules))
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second scan differs (-first +second):\n%s", diff)
	}
	if len(s.Candidates()) != 1 {
		t.Errorf("Candidates() accumulated across scans: %v", s.Candidates())
	}
}

func TestScanDeduplicatesAcrossModules(t *testing.T) {
	factory := tm.TypeOf[tm.BlogContextFactory]()
	modules := []*registry.Module{
		tm.Module("copy-b", "/out/z/blog.so", factory),
		tm.Module("copy-a", "/out/a/blog.so", factory),
	}

	got := New(quietLogger()).Scan(modules)
	if len(got) != 1 {
		t.Fatalf("got %d providers, want 1", len(got))
	}
	if got[0].Module.Path != "/out/a/blog.so" {
		t.Errorf("kept provider from %s, want the lowest origin path", got[0].Module.Path)
	}
}

func TestScanBlogContextFactory(t *testing.T) {
	got := New(quietLogger()).Scan([]*registry.Module{
		tm.Module("blog", "/out/blog.so", tm.TypeOf[tm.BlogContext](), tm.TypeOf[tm.BlogContextFactory]()),
	})
	if len(got) != 1 {
		t.Fatalf("got %d providers, want 1", len(got))
	}

	p := got[0]
	if p.Name() != "BlogContextFactory" || p.TargetName() != "BlogContext" {
		t.Errorf("provider = %s -> %s", p.Name(), p.TargetName())
	}
	if p.Form != FormFactory {
		t.Errorf("Form = %v, want factory", p.Form)
	}
	if p.Target != reflect.TypeOf(&tm.BlogContext{}) {
		t.Errorf("Target = %v, want *BlogContext", p.Target)
	}
	const pkg = "github.com/schemagen-labs/schemagen/internal/testmodule"
	if p.String() != pkg+".BlogContextFactory -> "+pkg+".BlogContext" {
		t.Errorf("String() = %q", p.String())
	}
}

func TestScanLegacyForm(t *testing.T) {
	got := New(quietLogger()).Scan([]*registry.Module{
		tm.Module("shop", "/out/shop.so", tm.TypeOf[tm.ShopFactory]()),
	})
	if len(got) != 1 || got[0].Form != FormLegacy {
		t.Fatalf("got %v, want one legacy provider", got)
	}
	if got[0].TargetName() != "ShopDbContext" {
		t.Errorf("TargetName() = %q", got[0].TargetName())
	}
}

func TestScanSkipsNonProviders(t *testing.T) {
	types := []reflect.Type{
		nil,
		reflect.TypeOf(struct{}{}),
		tm.TypeOf[schema.Source](),
		tm.TypeOf[tm.Helper](),
		tm.TypeOf[tm.NotSourceFactory](),
		tm.TypeOf[tm.WrongArgsFactory](),
		reflect.TypeOf(&tm.BlogContextFactory{}),
	}
	s := New(quietLogger())
	got := s.Scan([]*registry.Module{tm.Module("mixed", "/out/mixed.so", types...)})

	if diff := cmp.Diff([]string{"BlogContextFactory"}, providerNames(got)); diff != "" {
		t.Errorf("providers mismatch (-want +got):\n%s", diff)
	}

	want := []ModuleCandidates{{
		Module: "mixed",
		Types: []string{
			"testmodule.NotSourceFactory",
			"testmodule.WrongArgsFactory",
			"testmodule.BlogContextFactory",
		},
	}}
	if diff := cmp.Diff(want, s.Candidates()); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestScanToleratesBrokenModules(t *testing.T) {
	partial := tm.PartialModule("partial", "/out/partial.so",
		errors.Join(errors.New("could not load type Missing"), errors.New("could not load type Missing")),
		tm.TypeOf[tm.ShopFactory]())
	panicking := registry.NewModule(registry.Identity{Name: "broken", Version: "1.0.0"}, "/out/broken.so", nil,
		func() ([]reflect.Type, error) { panic("bad image") })
	healthy := tm.Module("blog", "/out/blog.so", tm.TypeOf[tm.BlogContextFactory]())

	s := New(quietLogger())
	got := s.Scan([]*registry.Module{partial, panicking, healthy})

	if diff := cmp.Diff([]string{"BlogContextFactory", "ShopFactory"}, providerNames(got)); diff != "" {
		t.Errorf("providers mismatch (-want +got):\n%s", diff)
	}

	errs := s.TypeErrors()
	if len(errs) != 2 {
		t.Fatalf("TypeErrors() = %v, want entries for partial and broken", errs)
	}
	if errs[0].Module != "partial" || len(errs[0].Errors) != 1 {
		t.Errorf("partial errors = %+v, want one distinct message", errs[0])
	}
	if errs[1].Module != "broken" {
		t.Errorf("second entry = %+v", errs[1])
	}
}

func TestQualifiedName(t *testing.T) {
	tests := []struct {
		t    reflect.Type
		want string
	}{
		{reflect.TypeOf(0), "int"},
		{reflect.TypeOf(&tm.BlogContext{}), "github.com/schemagen-labs/schemagen/internal/testmodule.BlogContext"},
		{tm.TypeOf[schema.Model](), "github.com/schemagen-labs/schemagen/pkg/schema.Model"},
	}
	for _, tt := range tests {
		if got := QualifiedName(tt.t); got != tt.want {
			t.Errorf("QualifiedName(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}
