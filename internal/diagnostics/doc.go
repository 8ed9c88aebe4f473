// Package diagnostics formats what the loader and scanner saw during a run.
// It is read-only: building a report never loads or scans anything.
package diagnostics
