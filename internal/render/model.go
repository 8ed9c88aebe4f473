package render

import (
	"sort"
	"strings"

	"github.com/schemagen-labs/schemagen/pkg/schema"
)

// sortedTables returns the named tables of m ordered by name.
func sortedTables(m *schema.Model) []*schema.Table {
	var tables []*schema.Table
	for i := range m.Tables {
		if m.Tables[i].Name != "" {
			tables = append(tables, &m.Tables[i])
		}
	}
	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].Name < tables[j].Name
	})
	return tables
}

// principalSchema returns the schema of the table a foreign key references.
func principalSchema(m *schema.Model, fk schema.ForeignKey) string {
	if fk.PrincipalSchema != "" {
		return fk.PrincipalSchema
	}
	if t := m.Table(fk.PrincipalTable); t != nil {
		return m.SchemaName(t)
	}
	return m.SchemaName(&schema.Table{})
}

func totals(tables []*schema.Table) (fks, indexes int) {
	for _, t := range tables {
		fks += len(t.ForeignKeys)
		indexes += len(t.Indexes)
	}
	return fks, indexes
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
