package models

import (
	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/internal"
)

// TableSchemaRow is one row of sqlite_master.
type TableSchemaRow struct {
	Type      string  `json:"type"`
	Name      string  `json:"name"`
	TableName string  `json:"tbl_name"`
	RootPage  int     `json:"rootpage"`
	SQL       *string `json:"sql"`
}

var TableSchemaRowSchema = &xrosedb.TableSchema{
	Name: "sqlite_master",
	Fields: []xrosedb.Field{
		field("type", xrosedb.FieldText),
		field("name", xrosedb.FieldText),
		field("tbl_name", xrosedb.FieldText),
		field("rootpage", xrosedb.FieldInt64),
		optional("sql", xrosedb.FieldText),
	},
}

func (TableSchemaRow) TableSchema() *xrosedb.TableSchema { return TableSchemaRowSchema }

func (t *TableSchemaRow) UnmarshalJSON(data []byte) error {
	dc, err := internal.NewContainer(data)
	if err != nil {
		return err
	}
	t.Type = dc.String("type")
	t.Name = dc.String("name")
	t.TableName = dc.String("tbl_name")
	t.RootPage = dc.Int("rootpage")
	t.SQL = dc.OptionalString("sql")
	return dc.Err()
}

// TablesQuery lists the tables of the main schema in creation order.
func TablesQuery() xrosedb.Query {
	return xrosedb.NewQuery("SELECT * FROM sqlite_master WHERE type = 'table' AND substr(name, 1, 7) <> 'sqlite_' ORDER BY rowid;")
}

// RecordCount decodes the single column of a COUNT(*) query.
type RecordCount struct {
	Count int64 `json:"COUNT(*)"`
}

func (c *RecordCount) UnmarshalJSON(data []byte) error {
	dc, err := internal.NewContainer(data)
	if err != nil {
		return err
	}
	c.Count = dc.Int64("COUNT(*)")
	return dc.Err()
}
