// Package cli defines the Cobra command tree for the schemagen CLI. The root
// command runs schema generation; each other file registers one subcommand
// (version, config) with the root. Commands only handle flag parsing and
// output; the work happens in internal/pipeline.
package cli
