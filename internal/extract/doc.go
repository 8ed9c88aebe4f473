// Package extract instantiates a discovered provider and invokes its factory
// method to obtain a schema source.
package extract
