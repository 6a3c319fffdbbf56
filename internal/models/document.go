// Package models holds the stored record types of a rose diagram document
// and the static schemas of their tables.
package models

import (
	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/internal"
)

func field(name string, kind xrosedb.FieldKind) xrosedb.Field {
	return xrosedb.Field{Name: name, Kind: kind}
}

func optional(name string, kind xrosedb.FieldKind) xrosedb.Field {
	return xrosedb.Field{Name: name, Kind: kind, Optional: true}
}

// Color is one palette entry referenced by layers.
type Color struct {
	ColorID int     `json:"COLORID"`
	Red     float32 `json:"RED"`
	Blue    float32 `json:"BLUE"`
	Green   float32 `json:"GREEN"`
	Alpha   float32 `json:"ALPHA"`
}

var ColorSchema = &xrosedb.TableSchema{
	Name:       "_colors",
	PrimaryKey: "COLORID",
	Fields: []xrosedb.Field{
		field("COLORID", xrosedb.FieldInt64),
		field("RED", xrosedb.FieldFloat),
		field("BLUE", xrosedb.FieldFloat),
		field("GREEN", xrosedb.FieldFloat),
		field("ALPHA", xrosedb.FieldFloat),
	},
	CreateSQL: "CREATE TABLE IF NOT EXISTS _colors (COLORID INTEGER PRIMARY KEY AUTOINCREMENT, RED REAL, BLUE REAL, GREEN REAL, ALPHA REAL)",
	InsertSQL: "INSERT INTO _colors (COLORID, RED, BLUE, GREEN, ALPHA) VALUES (?,?,?,?,?);",
}

func (Color) TableSchema() *xrosedb.TableSchema { return ColorSchema }

func (c *Color) UnmarshalJSON(data []byte) error {
	dc, err := internal.NewContainer(data)
	if err != nil {
		return err
	}
	c.ColorID = dc.Int("COLORID")
	c.Red = dc.Float32("RED")
	c.Blue = dc.Float32("BLUE")
	c.Green = dc.Float32("GREEN")
	c.Alpha = dc.Float32("ALPHA")
	return dc.Err()
}

// DataSet names a column of an imported data table, optionally filtered.
type DataSet struct {
	ID         int     `json:"_id"`
	Name       string  `json:"NAME"`
	TableName  string  `json:"TABLENAME"`
	ColumnName string  `json:"COLUMNNAME"`
	Predicate  *string `json:"PREDICATE"`
	Comments   []byte  `json:"COMMENTS,omitempty"`
}

var DataSetSchema = &xrosedb.TableSchema{
	Name:       "_datasets",
	PrimaryKey: "_id",
	Fields: []xrosedb.Field{
		field("_id", xrosedb.FieldInt64),
		field("NAME", xrosedb.FieldText),
		field("TABLENAME", xrosedb.FieldText),
		field("COLUMNNAME", xrosedb.FieldText),
		optional("PREDICATE", xrosedb.FieldText),
		optional("COMMENTS", xrosedb.FieldBlob),
	},
	CreateSQL:  "CREATE TABLE IF NOT EXISTS _datasets ( _id INTEGER PRIMARY KEY, NAME TEXT, TABLENAME TEXT, COLUMNNAME text, PREDICATE text,COMMENTS BLOB)",
	InsertSQL:  "INSERT INTO _datasets (_id, NAME, TABLENAME, COLUMNNAME, PREDICATE, COMMENTS) VALUES (?,?,?,?,?,?);",
	UpdateSQL:  "UPDATE _datasets SET NAME=?, TABLENAME=?, COLUMNNAME=?, PREDICATE=?, COMMENTS=? WHERE _id=?;",
	UpdateKeys: []string{"NAME", "TABLENAME", "COLUMNNAME", "PREDICATE", "COMMENTS", "_id"},
	DeleteSQL:  "DELETE FROM _datasets WHERE _id=?;",
}

func (DataSet) TableSchema() *xrosedb.TableSchema { return DataSetSchema }

func (d *DataSet) UnmarshalJSON(data []byte) error {
	dc, err := internal.NewContainer(data)
	if err != nil {
		return err
	}
	d.ID = dc.Int("_id")
	d.Name = dc.String("NAME")
	d.TableName = dc.String("TABLENAME")
	d.ColumnName = dc.String("COLUMNNAME")
	d.Predicate = dc.OptionalString("PREDICATE")
	d.Comments = dc.OptionalBytes("COMMENTS")
	return dc.Err()
}

// Geometry is the single row of rose geometry settings.
type Geometry struct {
	IsEqualArea   bool    `json:"isEqualArea"`
	IsPercent     bool    `json:"isPercent"`
	MaxCount      int     `json:"MAXCOUNT"`
	MaxPercent    float32 `json:"MAXPERCENT"`
	HollowCore    float32 `json:"HOLLOWCORE"`
	SectorSize    float32 `json:"SECTORSIZE"`
	StartingAngle float32 `json:"STARTINGANGLE"`
	SectorCount   int     `json:"SECTORCOUNT"`
	RelativeSize  float32 `json:"RELATIVESIZE"`
}

var geometryKeys = []string{"isEqualArea", "isPercent", "MAXCOUNT", "MAXPERCENT", "HOLLOWCORE", "SECTORSIZE", "STARTINGANGLE", "SECTORCOUNT", "RELATIVESIZE"}

var GeometrySchema = &xrosedb.TableSchema{
	Name: "_geometryController",
	Fields: []xrosedb.Field{
		field("isEqualArea", xrosedb.FieldBool),
		field("isPercent", xrosedb.FieldBool),
		field("MAXCOUNT", xrosedb.FieldInt64),
		field("MAXPERCENT", xrosedb.FieldFloat),
		field("HOLLOWCORE", xrosedb.FieldFloat),
		field("SECTORSIZE", xrosedb.FieldFloat),
		field("STARTINGANGLE", xrosedb.FieldFloat),
		field("SECTORCOUNT", xrosedb.FieldInt64),
		field("RELATIVESIZE", xrosedb.FieldFloat),
	},
	CreateSQL:  "CREATE TABLE IF NOT EXISTS _geometryController (isEqualArea bool, isPercent bool, MAXCOUNT int, MAXPERCENT float, HOLLOWCORE float, SECTORSIZE float, STARTINGANGLE float, SECTORCOUNT int, RELATIVESIZE float);",
	InsertSQL:  "INSERT INTO _geometryController (isEqualArea, isPercent, MAXCOUNT, MAXPERCENT, HOLLOWCORE, SECTORSIZE, STARTINGANGLE, SECTORCOUNT, RELATIVESIZE) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);",
	InsertKeys: geometryKeys,
	UpdateSQL:  "update _geometryController  set isEqualArea=?, isPercent=?, MAXCOUNT=?, MAXPERCENT=?, HOLLOWCORE=?, SECTORSIZE=?, STARTINGANGLE=?, SECTORCOUNT=?, RELATIVESIZE=?;",
	UpdateKeys: geometryKeys,
}

func (Geometry) TableSchema() *xrosedb.TableSchema { return GeometrySchema }

func (g *Geometry) UnmarshalJSON(data []byte) error {
	dc, err := internal.NewContainer(data)
	if err != nil {
		return err
	}
	g.IsEqualArea = dc.Bool("isEqualArea")
	g.IsPercent = dc.Bool("isPercent")
	g.MaxCount = dc.Int("MAXCOUNT")
	g.MaxPercent = dc.Float32("MAXPERCENT")
	g.HollowCore = dc.Float32("HOLLOWCORE")
	g.SectorSize = dc.Float32("SECTORSIZE")
	g.StartingAngle = dc.Float32("STARTINGANGLE")
	g.SectorCount = dc.Int("SECTORCOUNT")
	g.RelativeSize = dc.Float32("RELATIVESIZE")
	return dc.Err()
}

// WindowControllerSize is the saved document window size.
type WindowControllerSize struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

var WindowControllerSizeSchema = &xrosedb.TableSchema{
	Name: "_windowController",
	Fields: []xrosedb.Field{
		field("width", xrosedb.FieldFloat),
		field("height", xrosedb.FieldFloat),
	},
	CreateSQL:  "CREATE TABLE IF NOT EXISTS _windowController (width float, height float);",
	InsertSQL:  "INSERT INTO _windowController (width, height) VALUES (?, ?);",
	UpdateSQL:  "UPDATE _windowController SET width=?, height=?;",
	UpdateKeys: []string{"width", "height"},
}

func (WindowControllerSize) TableSchema() *xrosedb.TableSchema { return WindowControllerSizeSchema }

func (w *WindowControllerSize) UnmarshalJSON(data []byte) error {
	dc, err := internal.NewContainer(data)
	if err != nil {
		return err
	}
	w.Width = dc.Float32("width")
	w.Height = dc.Float32("height")
	return dc.Err()
}
