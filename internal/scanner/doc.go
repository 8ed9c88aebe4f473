// Package scanner discovers schema providers in loaded modules.
//
// A provider is a named, non-interface type whose pointer method set has
//
//	CreateSource(args []string) (S, error)
//
// for some S implementing schema.Source; that is, the type implements
// provider.Factory[S]. The single-result form CreateSource(args []string) S
// is also accepted. Discovered providers are deduplicated and returned in a
// stable order.
package scanner
