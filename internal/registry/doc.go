// Package registry records the modules loaded during one schemagen run. It
// guarantees a module identity is registered at most once, answers identity
// and name lookups for dependency resolution, and holds the single
// resolution-hook slot the loader acquires for the duration of a run.
package registry
