// Package schema defines the relational model that schema sources expose to
// renderers. Provider modules build a Model describing their tables, columns,
// keys, indexes, and relationships and return it through the Source interface.
package schema
