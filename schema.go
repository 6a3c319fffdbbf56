package xrosedb

import "strings"

// FieldKind is the declared kind of a record field. It drives coercion of
// values pulled out of a record's JSON form before binding.
type FieldKind uint8

const (
	FieldInt32 FieldKind = iota + 1
	FieldInt64
	FieldFloat
	FieldText
	FieldBlob
	FieldBool
)

func (k FieldKind) String() string {
	switch k {
	case FieldInt32:
		return "int32"
	case FieldInt64:
		return "int64"
	case FieldFloat:
		return "float"
	case FieldText:
		return "text"
	case FieldBlob:
		return "blob"
	case FieldBool:
		return "bool"
	}
	return "unknown"
}

// Field is one column of a record type.
type Field struct {
	Name     string
	Kind     FieldKind
	Optional bool
}

// TableSchema is the static description of one record type's table.
// Operations a record does not support have empty SQL.
type TableSchema struct {
	Name       string
	PrimaryKey string
	Fields     []Field
	CreateSQL  string
	InsertSQL  string
	UpdateSQL  string
	DeleteSQL  string
	InsertKeys []string
	UpdateKeys []string
}

// TableRepresentable is implemented by every stored record type.
type TableRepresentable interface {
	TableSchema() *TableSchema
}

// AllKeys returns the field names in declaration order.
func (s *TableSchema) AllKeys() []string {
	keys := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		keys[i] = f.Name
	}
	return keys
}

// Field looks up a field by column name.
func (s *TableSchema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// FieldKind returns the declared kind of a column.
func (s *TableSchema) FieldKind(name string) (FieldKind, bool) {
	f, ok := s.Field(name)
	return f.Kind, ok
}

// CreateTableQuery returns the CREATE TABLE statement.
func (s *TableSchema) CreateTableQuery() Query {
	return Query{SQL: s.CreateSQL}
}

// InsertQuery returns the insert statement paired with its placeholder keys.
func (s *TableSchema) InsertQuery() Query {
	if s.InsertSQL == "" {
		return Query{}
	}
	keys := s.InsertKeys
	if keys == nil {
		keys = s.AllKeys()
	}
	return Query{SQL: s.InsertSQL, Keys: keys}
}

// UpdateQuery returns the update statement paired with its placeholder keys.
func (s *TableSchema) UpdateQuery() Query {
	if s.UpdateSQL == "" {
		return Query{}
	}
	return Query{SQL: s.UpdateSQL, Keys: s.UpdateKeys}
}

// DeleteQuery returns the delete statement.
func (s *TableSchema) DeleteQuery() Query {
	return Query{SQL: s.DeleteSQL}
}

// DeleteAllQuery returns a statement that removes every row.
func (s *TableSchema) DeleteAllQuery() Query {
	return Query{SQL: "DELETE FROM " + s.Name + ";"}
}

// CountQuery returns SELECT COUNT(*) over the table.
func (s *TableSchema) CountQuery() Query {
	return Query{SQL: "SELECT COUNT(*) FROM " + s.Name + ";"}
}

// StoredValues returns SELECT * over the table.
func (s *TableSchema) StoredValues() Query {
	return Query{SQL: "SELECT * FROM " + s.Name + ";"}
}

// IsDocumentTable reports whether the table belongs to the document format
// rather than to imported data.
func IsDocumentTable(name string) bool {
	return strings.HasPrefix(name, "_")
}
