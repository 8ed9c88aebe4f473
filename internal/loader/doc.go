// Package loader opens provider modules and registers them.
//
// A run loads one primary module, reads the dependency manifest next to it,
// and then opportunistically loads every sibling module in the same
// directory. Each module's declared dependencies are resolved through the
// registry's resolution hook, which the Loader holds from New until Close.
// Sibling and dependency failures are recorded for diagnostics and never
// abort the run; only a failure to load the primary module is fatal.
package loader
