// Package manifest parses and validates the dependency manifest that sits next
// to a primary module (<module>.deps.yaml). The manifest maps dependency names
// to module files and versions so the loader can resolve references that are
// not satisfied by modules already loaded. Manifests are validated against an
// embedded JSON Schema before use.
package manifest
