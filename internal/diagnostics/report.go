package diagnostics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/schemagen-labs/schemagen/internal/loader"
	"github.com/schemagen-labs/schemagen/internal/registry"
	"github.com/schemagen-labs/schemagen/internal/scanner"
)

// Output limits.
const (
	MaxModules    = 50
	MaxCandidates = 10
	MaxTypeErrors = 5
)

// DefaultFrameworkPrefixes name modules that are hidden from the module list.
var DefaultFrameworkPrefixes = []string{"std/", "golang.org/", "github.com/schemagen-labs/"}

// LoaderState is the loader state a report reads.
type LoaderState interface {
	Modules() []*registry.Module
	SiblingErrors() []*registry.PartialLoadError
	Unresolved() []loader.UnresolvedDependency
}

// ScannerState is the scanner state a report reads.
type ScannerState interface {
	Candidates() []scanner.ModuleCandidates
	TypeErrors() []scanner.ModuleErrors
}

// ModuleDetail is one entry of the candidate section.
type ModuleDetail struct {
	Module     string
	ErrorCount int
	Errors     []string // first MaxTypeErrors distinct type-load errors
	Candidates []string // first MaxCandidates CreateSource candidates
}

// Report is a snapshot of discovery state.
type Report struct {
	ModuleCount   int
	ProviderCount int
	Modules       []string
	Providers     []string
	Details       []ModuleDetail
	SiblingErrors []string
	Unresolved    []string
}

// Options tunes a report.
type Options struct {
	FrameworkPrefixes []string
}

// Build assembles a report.
func Build(l LoaderState, s ScannerState, providers []scanner.Provider, opts Options) *Report {
	prefixes := opts.FrameworkPrefixes
	if prefixes == nil {
		prefixes = DefaultFrameworkPrefixes
	}

	modules := l.Modules()
	r := &Report{
		ModuleCount:   len(modules),
		ProviderCount: len(providers),
		Modules:       moduleNames(modules, prefixes),
	}

	for _, p := range providers {
		r.Providers = append(r.Providers, p.String())
	}
	sortFold(r.Providers)

	r.Details = details(s)

	for _, e := range l.SiblingErrors() {
		r.SiblingErrors = append(r.SiblingErrors, fmt.Sprintf("%s: %v", e.Path, e.Err))
	}
	for _, u := range l.Unresolved() {
		r.Unresolved = append(r.Unresolved, u.String())
	}
	return r
}

// Write prints the report, one "Debug:" heading per section.
func (r *Report) Write(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Debug: loaded modules = %d\n", r.ModuleCount)
	fmt.Fprintf(&b, "Debug: discovered providers = %d\n", r.ProviderCount)

	fmt.Fprintf(&b, "Debug: non-framework modules (first %d)\n", MaxModules)
	for _, name := range r.Modules {
		fmt.Fprintf(&b, "  - %s\n", name)
	}

	if len(r.Providers) > 0 {
		b.WriteString("Debug: providers\n")
		for _, p := range r.Providers {
			fmt.Fprintf(&b, "  - %s\n", p)
		}
	}

	fmt.Fprintf(&b, "Debug: modules with %s([]string)\n", scanner.MethodName)
	for _, d := range r.Details {
		if d.ErrorCount > 0 {
			fmt.Fprintf(&b, "- %s (type load errors: %d)\n", d.Module, d.ErrorCount)
			for _, e := range d.Errors {
				fmt.Fprintf(&b, "  ! %s\n", e)
			}
			continue
		}
		fmt.Fprintf(&b, "- %s\n", d.Module)
		for _, c := range d.Candidates {
			fmt.Fprintf(&b, "  - %s\n", c)
		}
	}

	if len(r.SiblingErrors) > 0 {
		b.WriteString("Debug: sibling modules that failed to load\n")
		for _, e := range r.SiblingErrors {
			fmt.Fprintf(&b, "  ! %s\n", e)
		}
	}
	if len(r.Unresolved) > 0 {
		b.WriteString("Debug: unresolved dependencies\n")
		for _, u := range r.Unresolved {
			fmt.Fprintf(&b, "  ! %s\n", u)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// IsFramework reports whether name starts with one of prefixes,
// case-insensitively.
func IsFramework(name string, prefixes []string) bool {
	lower := strings.ToLower(name)
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func moduleNames(modules []*registry.Module, prefixes []string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range modules {
		name := strings.TrimSpace(m.Identity.Name)
		if name == "" || IsFramework(name, prefixes) {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	sortFold(names)
	if len(names) > MaxModules {
		names = names[:MaxModules]
	}
	return names
}

// details merges type-load errors and candidates per module, sorted by
// module name. A module with type-load errors lists only its errors.
func details(s ScannerState) []ModuleDetail {
	byModule := make(map[string]*ModuleDetail)
	get := func(name string) *ModuleDetail {
		d, ok := byModule[name]
		if !ok {
			d = &ModuleDetail{Module: name}
			byModule[name] = d
		}
		return d
	}

	for _, te := range s.TypeErrors() {
		d := get(te.Module)
		d.ErrorCount = len(te.Errors)
		d.Errors = limit(te.Errors, MaxTypeErrors)
	}
	for _, c := range s.Candidates() {
		d := get(c.Module)
		d.Candidates = limit(c.Types, MaxCandidates)
	}

	var out []ModuleDetail
	for _, d := range byModule {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Module) < strings.ToLower(out[j].Module)
	})
	return out
}

func limit(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func sortFold(values []string) {
	sort.SliceStable(values, func(i, j int) bool {
		return strings.ToLower(values[i]) < strings.ToLower(values[j])
	})
}
