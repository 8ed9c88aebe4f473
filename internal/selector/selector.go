package selector

import (
	"errors"
	"fmt"
	"strings"

	"github.com/schemagen-labs/schemagen/internal/scanner"
)

// All selects every provider. It is matched case-insensitively.
const All = "all"

// Suffixes stripped from a target's simple name when matching a criterion,
// longest first.
var contextSuffixes = []string{"DbContext", "Context"}

// ErrNoProviders is returned when discovery found no providers at all.
var ErrNoProviders = errors.New("no schema providers found")

// ContextNotFoundError is returned when providers exist but none matches the
// requested name.
type ContextNotFoundError struct {
	Name      string
	Available []string
}

func (e *ContextNotFoundError) Error() string {
	return fmt.Sprintf("context %q not found; available: %s", e.Name, strings.Join(e.Available, ", "))
}

// Select returns the providers matching criterion, preserving order.
func Select(providers []scanner.Provider, criterion string) []scanner.Provider {
	criterion = strings.TrimSpace(criterion)
	if criterion == "" || strings.EqualFold(criterion, All) {
		out := make([]scanner.Provider, len(providers))
		copy(out, providers)
		return out
	}

	var out []scanner.Provider
	for _, p := range providers {
		if Matches(p, criterion) {
			out = append(out, p)
		}
	}
	return out
}

// Resolve is Select with the two empty outcomes told apart: ErrNoProviders
// when providers is empty, *ContextNotFoundError when nothing matched.
func Resolve(providers []scanner.Provider, criterion string) ([]scanner.Provider, error) {
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}
	selected := Select(providers, criterion)
	if len(selected) == 0 {
		return nil, &ContextNotFoundError{Name: criterion, Available: Names(providers)}
	}
	return selected, nil
}

// Matches reports whether name selects p. It compares, case-insensitively,
// the target's simple name, its qualified name, and its simple name without
// a context suffix.
func Matches(p scanner.Provider, name string) bool {
	simple := p.TargetName()
	if strings.EqualFold(name, simple) || strings.EqualFold(name, p.TargetQualifiedName()) {
		return true
	}
	short := ShortName(simple)
	return short != simple && strings.EqualFold(name, short)
}

// ShortName strips a DbContext or Context suffix from name. A name that is
// only the suffix is returned unchanged.
func ShortName(name string) string {
	for _, suffix := range contextSuffixes {
		if len(name) > len(suffix) && strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}

// Names returns the target simple names of providers, in order, without
// duplicates.
func Names(providers []scanner.Provider) []string {
	seen := make(map[string]bool)
	var names []string
	for _, p := range providers {
		n := p.TargetName()
		if seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names
}
