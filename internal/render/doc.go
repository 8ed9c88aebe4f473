// Package render turns a schema model into documentation files: a Markdown
// reference (README.md), a Mermaid entity-relationship diagram (diagram.md),
// and a PostgreSQL DDL script (ddl.sql).
package render
