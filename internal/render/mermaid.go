package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/schemagen-labs/schemagen/pkg/schema"
)

// DiagramFile is the name of the Mermaid diagram document.
const DiagramFile = "diagram.md"

// Mermaid renders m as a fenced Mermaid erDiagram.
func Mermaid(m *schema.Model, now time.Time) string {
	var b strings.Builder
	tables := sortedTables(m)

	b.WriteString("```mermaid\nerDiagram\n\n")

	for _, t := range tables {
		fmt.Fprintf(&b, "    %s {\n", t.Name)
		for _, c := range t.Columns {
			line := simplifyType(c.Type) + " " + c.Name
			switch {
			case t.IsPrimaryKey(c.Name):
				line += " PK"
			case t.IsForeignKey(c.Name):
				line += " FK"
			}
			fmt.Fprintf(&b, "        %s\n", line)
		}
		b.WriteString("    }\n\n")
	}

	seen := make(map[string]bool)
	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			key := fk.PrincipalTable + "_" + t.Name + "_" + strings.Join(fk.Columns, "_")
			if seen[key] {
				continue
			}
			seen[key] = true
			fmt.Fprintf(&b, "    %s %s %s : %q\n", fk.PrincipalTable, cardinality(fk), t.Name, relationshipLabel(fk))
		}
	}

	b.WriteString("```\n\n")
	fmt.Fprintf(&b, "*Generated: %s UTC*\n", now.UTC().Format(timestampLayout))
	return b.String()
}

func cardinality(fk schema.ForeignKey) string {
	if fk.Unique {
		if fk.Required {
			return "||--||"
		}
		return "||--o|"
	}
	return "||--o{"
}

func relationshipLabel(fk schema.ForeignKey) string {
	if fk.Navigation != "" {
		return fk.Navigation
	}
	return strings.Join(fk.Columns, ", ")
}

// simplifyType maps a store type to one of the attribute types Mermaid
// diagrams conventionally use.
func simplifyType(storeType string) string {
	mappings := []struct {
		prefixes []string
		simple   string
	}{
		{[]string{"character varying", "varchar", "text"}, "string"},
		{[]string{"timestamp", "date"}, "timestamp"},
		{[]string{"integer", "bigint", "smallint"}, "int"},
		{[]string{"numeric", "decimal"}, "decimal"},
		{[]string{"boolean"}, "boolean"},
		{[]string{"uuid"}, "uuid"},
		{[]string{"jsonb"}, "jsonb"},
	}
	for _, m := range mappings {
		for _, p := range m.prefixes {
			if hasPrefixFold(storeType, p) {
				return m.simple
			}
		}
	}
	return "string"
}
