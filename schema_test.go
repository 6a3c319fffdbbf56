package xrosedb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var pointSchema = &TableSchema{
	Name:       "points",
	PrimaryKey: "id",
	Fields: []Field{
		{Name: "id", Kind: FieldInt64},
		{Name: "x", Kind: FieldFloat},
		{Name: "label", Kind: FieldText, Optional: true},
	},
	CreateSQL:  "CREATE TABLE points (id INTEGER PRIMARY KEY, x REAL, label TEXT);",
	InsertSQL:  "INSERT INTO points (id, x, label) VALUES (?,?,?);",
	UpdateSQL:  "UPDATE points SET x = ? WHERE id = ?;",
	UpdateKeys: []string{"x", "id"},
	DeleteSQL:  "DELETE FROM points WHERE id = ?;",
}

func TestTableSchemaQueries(t *testing.T) {
	assert.Equal(t, []string{"id", "x", "label"}, pointSchema.AllKeys())

	insert := pointSchema.InsertQuery()
	assert.Equal(t, pointSchema.InsertSQL, insert.SQL)
	assert.Equal(t, []string{"id", "x", "label"}, insert.Keys)

	update := pointSchema.UpdateQuery()
	assert.Equal(t, []string{"x", "id"}, update.Keys)

	assert.Equal(t, "DELETE FROM points;", pointSchema.DeleteAllQuery().SQL)
	assert.Equal(t, "SELECT COUNT(*) FROM points;", pointSchema.CountQuery().SQL)
	assert.Equal(t, "SELECT * FROM points;", pointSchema.StoredValues().SQL)
	assert.Equal(t, pointSchema.CreateSQL, pointSchema.CreateTableQuery().SQL)
	assert.Equal(t, pointSchema.DeleteSQL, pointSchema.DeleteQuery().SQL)
}

func TestTableSchemaUnsupportedOperations(t *testing.T) {
	readOnly := &TableSchema{Name: "view", Fields: []Field{{Name: "a", Kind: FieldText}}}

	assert.True(t, readOnly.InsertQuery().IsEmpty())
	assert.True(t, readOnly.UpdateQuery().IsEmpty())
	assert.True(t, readOnly.DeleteQuery().IsEmpty())
	assert.True(t, readOnly.CreateTableQuery().IsEmpty())
}

func TestTableSchemaExplicitInsertKeys(t *testing.T) {
	s := *pointSchema
	s.InsertKeys = []string{"x", "id"}
	assert.Equal(t, []string{"x", "id"}, s.InsertQuery().Keys)
}

func TestTableSchemaFieldLookup(t *testing.T) {
	f, ok := pointSchema.Field("label")
	assert.True(t, ok)
	assert.True(t, f.Optional)

	kind, ok := pointSchema.FieldKind("x")
	assert.True(t, ok)
	assert.Equal(t, FieldFloat, kind)
	assert.Equal(t, "float", kind.String())

	_, ok = pointSchema.FieldKind("unknownField")
	assert.False(t, ok)
}

func TestIsDocumentTable(t *testing.T) {
	assert.True(t, IsDocumentTable("_layers"))
	assert.True(t, IsDocumentTable("_colors"))
	assert.False(t, IsDocumentTable("measurements"))
	assert.False(t, IsDocumentTable(""))
}
