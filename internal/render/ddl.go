package render

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/schemagen-labs/schemagen/pkg/schema"
)

// DDLFile is the name of the SQL script.
const DDLFile = "ddl.sql"

// DDL renders a PostgreSQL script that creates the schemas, tables, foreign
// keys, and indexes of m.
func DDL(name string, m *schema.Model, now time.Time) string {
	var b strings.Builder
	tables := sortedTables(m)

	b.WriteString("-- =====================================================\n")
	b.WriteString("-- Database Schema DDL\n")
	fmt.Fprintf(&b, "-- Source: %s\n", name)
	fmt.Fprintf(&b, "-- Generated: %s UTC\n", now.UTC().Format(timestampLayout))
	b.WriteString("-- =====================================================\n\n")

	for _, s := range schemas(m, tables) {
		fmt.Fprintf(&b, "CREATE SCHEMA IF NOT EXISTS %s;\n\n", pq.QuoteIdentifier(s))
	}

	for _, t := range tables {
		writeCreateTable(&b, m, t)
	}

	for _, t := range tables {
		for _, fk := range t.ForeignKeys {
			fmt.Fprintf(&b, "ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)%s;\n\n",
				qualified(m.SchemaName(t), t.Name),
				pq.QuoteIdentifier(fk.Name),
				identList(fk.Columns),
				qualified(principalSchema(m, fk), fk.PrincipalTable),
				identList(fk.PrincipalColumns),
				onDeleteClause(fk.OnDelete))
		}
	}

	for _, t := range tables {
		for _, ix := range t.Indexes {
			unique := ""
			if ix.Unique {
				unique = "UNIQUE "
			}
			where := ""
			if ix.Filter != "" {
				where = " WHERE " + ix.Filter
			}
			fmt.Fprintf(&b, "CREATE %sINDEX %s ON %s (%s)%s;\n\n",
				unique, pq.QuoteIdentifier(ix.Name), qualified(m.SchemaName(t), t.Name), identList(ix.Columns), where)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeCreateTable(b *strings.Builder, m *schema.Model, t *schema.Table) {
	var lines []string
	for _, c := range t.Columns {
		line := pq.QuoteIdentifier(c.Name) + " " + c.Type
		if identity(c) {
			line += " GENERATED BY DEFAULT AS IDENTITY"
		}
		if !c.Nullable {
			line += " NOT NULL"
		}
		if c.Default != "" {
			line += " DEFAULT " + c.Default
		}
		lines = append(lines, line)
	}
	if pk := t.PrimaryKey; pk != nil && len(pk.Columns) > 0 {
		lines = append(lines, fmt.Sprintf("CONSTRAINT %s PRIMARY KEY (%s)", pq.QuoteIdentifier(pk.Name), identList(pk.Columns)))
	}

	fmt.Fprintf(b, "CREATE TABLE %s (\n", qualified(m.SchemaName(t), t.Name))
	for i, line := range lines {
		sep := ","
		if i == len(lines)-1 {
			sep = ""
		}
		fmt.Fprintf(b, "    %s%s\n", line, sep)
	}
	b.WriteString(");\n\n")
}

// identity reports whether c is an integer column the database numbers on
// insert.
func identity(c schema.Column) bool {
	if c.Default != "" || (c.ValueGenerated != "OnAdd" && c.ValueGenerated != "OnAddOrUpdate") {
		return false
	}
	for _, p := range []string{"integer", "bigint", "smallint"} {
		if hasPrefixFold(c.Type, p) {
			return true
		}
	}
	return false
}

func onDeleteClause(d schema.DeleteBehavior) string {
	switch d {
	case schema.DeleteCascade:
		return " ON DELETE CASCADE"
	case schema.DeleteSetNull:
		return " ON DELETE SET NULL"
	case schema.DeleteRestrict:
		return " ON DELETE RESTRICT"
	}
	return ""
}

// schemas lists the non-default schemas the tables live in, sorted.
func schemas(m *schema.Model, tables []*schema.Table) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tables {
		s := m.SchemaName(t)
		if s == schema.DefaultSchema || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func qualified(schemaName, table string) string {
	return pq.QuoteIdentifier(schemaName) + "." + pq.QuoteIdentifier(table)
}

func identList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = pq.QuoteIdentifier(n)
	}
	return strings.Join(quoted, ", ")
}
