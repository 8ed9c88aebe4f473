package scanner

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/schemagen-labs/schemagen/internal/registry"
)

// ModuleCandidates lists the types in a module that declare a CreateSource
// method, whether or not the signature qualifies.
type ModuleCandidates struct {
	Module string
	Types  []string
}

// ModuleErrors lists the distinct type-load errors of one module.
type ModuleErrors struct {
	Module string
	Errors []string
}

// Scanner finds providers and keeps what it saw for diagnostics.
type Scanner struct {
	log *logrus.Logger

	candidates []ModuleCandidates
	typeErrors []ModuleErrors
}

// New returns a Scanner.
func New(log *logrus.Logger) *Scanner {
	if log == nil {
		log = logrus.New()
	}
	return &Scanner{log: log}
}

// Scan enumerates the types of every module and returns the providers among
// them, deduplicated and sorted. A module whose enumeration fails partially
// contributes the types it did yield.
func (s *Scanner) Scan(modules []*registry.Module) []Provider {
	s.candidates = nil
	s.typeErrors = nil

	found := make(map[string]int)
	var providers []Provider

	for _, m := range modules {
		types, err := m.Types()
		if err != nil {
			msgs := m.TypeErrors()
			s.typeErrors = append(s.typeErrors, ModuleErrors{Module: m.Identity.Name, Errors: msgs})
			s.log.Debugf("Partial type enumeration in %s: %v", m.Identity, err)
		}

		var candidates []string
		for _, t := range types {
			res := inspect(t)
			if res.candidate {
				candidates = append(candidates, res.base.String())
			}
			if !res.provider {
				continue
			}

			p := Provider{Module: m, Type: res.base, Target: res.target, Form: res.form}
			if i, ok := found[p.Key()]; ok {
				if m.Path < providers[i].Module.Path {
					providers[i] = p
				}
				continue
			}
			found[p.Key()] = len(providers)
			providers = append(providers, p)
		}
		if len(candidates) > 0 {
			s.candidates = append(s.candidates, ModuleCandidates{Module: m.Identity.Name, Types: candidates})
		}
	}

	sort.SliceStable(providers, func(i, j int) bool {
		return less(providers[i], providers[j])
	})
	return providers
}

// Candidates returns the CreateSource candidates seen by the last Scan.
func (s *Scanner) Candidates() []ModuleCandidates {
	return s.candidates
}

// TypeErrors returns the per-module type-load errors seen by the last Scan.
func (s *Scanner) TypeErrors() []ModuleErrors {
	return s.typeErrors
}
