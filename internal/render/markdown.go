package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/schemagen-labs/schemagen/pkg/schema"
)

// MarkdownFile is the name of the Markdown reference.
const MarkdownFile = "README.md"

// Markdown renders a reference document for m. name is the source type name.
func Markdown(name string, m *schema.Model, now time.Time) string {
	var b strings.Builder
	tables := sortedTables(m)
	fks, indexes := totals(tables)

	b.WriteString("# Database Schema\n\n")
	fmt.Fprintf(&b, "**Generated:** %s UTC\n\n", now.UTC().Format(timestampLayout))
	fmt.Fprintf(&b, "**Source:** `%s`\n\n", name)

	b.WriteString("## Database Information\n\n")
	fmt.Fprintf(&b, "- **Schema:** %s (PostgreSQL)\n\n", m.SchemaName(&schema.Table{}))

	b.WriteString("## Statistics\n\n")
	fmt.Fprintf(&b, "- **Total Tables:** %d\n", len(tables))
	fmt.Fprintf(&b, "- **Total Foreign Keys:** %d\n", fks)
	fmt.Fprintf(&b, "- **Total Indexes:** %d\n\n", indexes)

	b.WriteString("## Table of Contents\n\n")
	for _, t := range tables {
		fmt.Fprintf(&b, "- [%s](#%s)\n", t.Name, anchor(t.Name))
	}
	b.WriteString("\n## Tables\n\n")

	for _, t := range tables {
		writeTableSection(&b, m, t)
	}
	return b.String()
}

func writeTableSection(b *strings.Builder, m *schema.Model, t *schema.Table) {
	fmt.Fprintf(b, "### %s\n\n", t.Name)
	fmt.Fprintf(b, "**Schema:** `%s`\n\n", m.SchemaName(t))
	if t.GoType != "" {
		fmt.Fprintf(b, "**Go Type:** `%s`\n\n", t.GoType)
	}

	b.WriteString("#### Columns\n\n")
	b.WriteString("| Column | Type | Nullable | Default | Description |\n")
	b.WriteString("|--------|------|----------|---------|-------------|\n")
	for _, c := range t.Columns {
		nullable := "No"
		if c.Nullable {
			nullable = "Yes"
		}
		def := ""
		if c.Default != "" {
			def = "`" + c.Default + "`"
		}
		var notes []string
		if t.IsPrimaryKey(c.Name) {
			notes = append(notes, "PK")
		}
		if t.IsForeignKey(c.Name) {
			notes = append(notes, "FK")
		}
		if c.ValueGenerated != "" {
			notes = append(notes, c.ValueGenerated)
		}
		fmt.Fprintf(b, "| `%s` | `%s` | %s | %s | %s |\n", c.Name, c.Type, nullable, def, strings.Join(notes, ", "))
	}
	b.WriteString("\n")

	if pk := t.PrimaryKey; pk != nil && len(pk.Columns) > 0 {
		b.WriteString("#### Primary Key\n\n")
		fmt.Fprintf(b, "- **%s**: %s\n\n", pk.Name, codeList(pk.Columns))
	}

	if len(t.ForeignKeys) > 0 {
		b.WriteString("#### Foreign Keys\n\n")
		for _, fk := range t.ForeignKeys {
			onDelete := fk.OnDelete
			if onDelete == "" {
				onDelete = schema.DeleteNoAction
			}
			fmt.Fprintf(b, "- **%s**\n", fk.Name)
			fmt.Fprintf(b, "  - Columns: %s\n", codeList(fk.Columns))
			fmt.Fprintf(b, "  - References: `%s`(%s)\n", fk.PrincipalTable, codeList(fk.PrincipalColumns))
			fmt.Fprintf(b, "  - On Delete: `%s`\n", onDelete)
		}
		b.WriteString("\n")
	}

	if len(t.Indexes) > 0 {
		b.WriteString("#### Indexes\n\n")
		for _, ix := range t.Indexes {
			kind := "Non-unique"
			if ix.Unique {
				kind = "Unique"
			}
			fmt.Fprintf(b, "- **%s**\n", ix.Name)
			fmt.Fprintf(b, "  - Columns: %s\n", codeList(ix.Columns))
			fmt.Fprintf(b, "  - Type: %s\n", kind)
			if ix.Filter != "" {
				fmt.Fprintf(b, "  - Filter: `%s`\n", ix.Filter)
			}
		}
		b.WriteString("\n")
	}

	if len(t.Relationships) > 0 {
		b.WriteString("#### Relationships\n\n")
		for _, r := range t.Relationships {
			kind := "Many-to-One"
			if r.Collection {
				kind = "One-to-Many"
			}
			fmt.Fprintf(b, "- **%s** -> `%s` (%s)\n", r.Name, r.Target, kind)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
}

func codeList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "`" + n + "`"
	}
	return strings.Join(quoted, ", ")
}

// anchor returns the GitHub heading anchor for a table name.
func anchor(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}
