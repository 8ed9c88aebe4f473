package loader

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/schemagen-labs/schemagen/internal/registry"
	"github.com/schemagen-labs/schemagen/pkg/provider"
)

// DefaultVersion is the version of a module that exports no ModuleInfo.
const DefaultVersion = "0.0.0"

// moduleInfo reads the optional ModuleSymbol export. A module without it is
// named after its file stem.
func moduleInfo(syms Symbols, path string) (provider.ModuleInfo, error) {
	info := provider.ModuleInfo{}
	if sym, err := syms.Lookup(provider.ModuleSymbol); err == nil {
		switch v := sym.(type) {
		case *provider.ModuleInfo:
			if v != nil {
				info = *v
			}
		case provider.ModuleInfo:
			info = v
		case func() provider.ModuleInfo:
			info = v()
		default:
			return info, fmt.Errorf("symbol %s has unsupported type %T", provider.ModuleSymbol, sym)
		}
	}

	if strings.TrimSpace(info.Name) == "" {
		base := filepath.Base(path)
		info.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if strings.TrimSpace(info.Version) == "" {
		info.Version = DefaultVersion
	}
	return info, nil
}

// typeEnumerator adapts the TypesSymbol export. A module that does not
// export it has no types.
func typeEnumerator(syms Symbols) (registry.EnumerateFunc, error) {
	sym, err := syms.Lookup(provider.TypesSymbol)
	if err != nil {
		return nil, nil
	}

	switch fn := sym.(type) {
	case func() ([]reflect.Type, error):
		return fn, nil
	case func() []reflect.Type:
		return func() ([]reflect.Type, error) { return fn(), nil }, nil
	case *[]reflect.Type:
		return func() ([]reflect.Type, error) { return *fn, nil }, nil
	default:
		return nil, fmt.Errorf("symbol %s has unsupported type %T", provider.TypesSymbol, sym)
	}
}
