package loader

import (
	"fmt"
	"plugin"
)

// Symbols looks up exported symbols of an opened module.
type Symbols interface {
	Lookup(name string) (plugin.Symbol, error)
}

// Opener opens a module file.
type Opener interface {
	Open(path string) (Symbols, error)
}

// PluginOpener opens modules built with -buildmode=plugin. Opened plugins
// stay mapped for the life of the process.
type PluginOpener struct{}

// Open implements Opener.
func (PluginOpener) Open(path string) (Symbols, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening plugin: %w", err)
	}
	return p, nil
}
