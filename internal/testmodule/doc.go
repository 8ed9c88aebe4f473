// Package testmodule provides in-memory provider modules for tests. The types
// here follow the same conventions a real provider plugin does, so scanners,
// selectors, and extractors can be exercised without building plugins.
package testmodule
