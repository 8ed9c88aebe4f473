package schema

// Source produces a schema model. It is the marker every provider target type
// implements; schemagen passes it to renderers unmodified.
type Source interface {
	Model() *Model
}

// DefaultSchema is used for tables that do not name a schema.
const DefaultSchema = "public"

// Model is the relational description of one data source.
type Model struct {
	DefaultSchema string
	Tables        []Table
}

// Table describes one mapped table.
type Table struct {
	Name          string
	Schema        string // empty means Model.DefaultSchema
	GoType        string // name of the mapped Go type, e.g. "Post"
	Columns       []Column
	PrimaryKey    *Key
	ForeignKeys   []ForeignKey
	Indexes       []Index
	Relationships []Relationship
}

// Column describes a table column.
type Column struct {
	Name           string
	Type           string // store type, e.g. "character varying(200)"
	Nullable       bool
	Default        string // default value SQL, empty when none
	ValueGenerated string // "", "OnAdd", "OnUpdate", "OnAddOrUpdate"
}

// Key is a named set of columns.
type Key struct {
	Name    string
	Columns []string
}

// DeleteBehavior is the referential action taken when a principal row is deleted.
type DeleteBehavior string

const (
	DeleteCascade  DeleteBehavior = "Cascade"
	DeleteRestrict DeleteBehavior = "Restrict"
	DeleteSetNull  DeleteBehavior = "SetNull"
	DeleteNoAction DeleteBehavior = "NoAction"
)

// ForeignKey references the key of a principal table.
type ForeignKey struct {
	Name             string
	Columns          []string
	PrincipalTable   string
	PrincipalSchema  string
	PrincipalColumns []string
	OnDelete         DeleteBehavior
	Unique           bool   // one-to-one
	Required         bool   // dependent cannot exist without principal
	Navigation       string // dependent-to-principal navigation name, if any
}

// Index describes a table index.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
	Filter  string
}

// Relationship is a navigation from one table to another.
type Relationship struct {
	Name       string
	Target     string // target table name
	Collection bool   // true for one-to-many
}

// SchemaName returns the table schema, falling back to the model default and
// then to DefaultSchema.
func (m *Model) SchemaName(t *Table) string {
	if t.Schema != "" {
		return t.Schema
	}
	if m != nil && m.DefaultSchema != "" {
		return m.DefaultSchema
	}
	return DefaultSchema
}

// Table returns the table with the given name, or nil.
func (m *Model) Table(name string) *Table {
	for i := range m.Tables {
		if m.Tables[i].Name == name {
			return &m.Tables[i]
		}
	}
	return nil
}

// IsPrimaryKey reports whether column is part of the primary key.
func (t *Table) IsPrimaryKey(column string) bool {
	return t.PrimaryKey != nil && contains(t.PrimaryKey.Columns, column)
}

// IsForeignKey reports whether column participates in any foreign key.
func (t *Table) IsForeignKey(column string) bool {
	for _, fk := range t.ForeignKeys {
		if contains(fk.Columns, column) {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
