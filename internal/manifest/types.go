package manifest

// FileSuffix is appended to the primary module's file stem to form the
// dependency manifest name: app.so -> app.deps.yaml.
const FileSuffix = ".deps.yaml"

// DependencyManifest lists the modules a primary module may need at runtime.
type DependencyManifest struct {
	Module  string        `yaml:"module,omitempty" json:"module,omitempty"`
	Modules []ModuleEntry `yaml:"modules" json:"modules"`

	// Dir is the directory the manifest was read from. Entry paths are
	// relative to it.
	Dir string `yaml:"-" json:"-"`
}

// ModuleEntry locates one dependency module.
type ModuleEntry struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	Path    string `yaml:"path" json:"path"`
}
