// Package pipeline runs one schemagen invocation end to end: build or locate
// the primary module, load it with its siblings, discover providers, select
// the requested ones, and render each provider's schema source.
package pipeline
