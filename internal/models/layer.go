package models

import (
	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/internal"
)

// Layer type names stored in _layers.TYPE.
const (
	LayerTypeCore      = "XRLayerCore"
	LayerTypeText      = "XRLayerText"
	LayerTypeLineArrow = "XRLayerLineArrow"
	LayerTypeGrid      = "XRLayerGrid"
	LayerTypeData      = "XRLayerData"
)

// LayerSpecialization is a kind-specific layer row keyed by LAYERID.
type LayerSpecialization interface {
	xrosedb.TableRepresentable
	LayerIdentifier() int
}

// Layer is the root row every layer kind shares.
type Layer struct {
	LayerID       int     `json:"LAYERID"`
	Type          string  `json:"TYPE"`
	Visible       bool    `json:"VISIBLE"`
	Active        bool    `json:"ACTIVE"`
	BiDir         bool    `json:"BIDIR"`
	Name          string  `json:"LAYER_NAME"`
	LineWeight    float32 `json:"LINEWEIGHT"`
	MaxCount      int     `json:"MAXCOUNT"`
	MaxPercent    float32 `json:"MAXPERCENT"`
	StrokeColorID int     `json:"STROKECOLORID"`
	FillColorID   int     `json:"FILLCOLORID"`
}

var LayerSchema = &xrosedb.TableSchema{
	Name:       "_layers",
	PrimaryKey: "LAYERID",
	Fields: []xrosedb.Field{
		field("LAYERID", xrosedb.FieldInt64),
		field("TYPE", xrosedb.FieldText),
		field("VISIBLE", xrosedb.FieldBool),
		field("ACTIVE", xrosedb.FieldBool),
		field("BIDIR", xrosedb.FieldBool),
		field("LAYER_NAME", xrosedb.FieldText),
		field("LINEWEIGHT", xrosedb.FieldFloat),
		field("MAXCOUNT", xrosedb.FieldInt64),
		field("MAXPERCENT", xrosedb.FieldFloat),
		optional("STROKECOLORID", xrosedb.FieldInt64),
		optional("FILLCOLORID", xrosedb.FieldInt64),
	},
	CreateSQL: "CREATE TABLE IF NOT EXISTS _layers (LAYERID INTEGER PRIMARY KEY AUTOINCREMENT, TYPE TEXT, VISIBLE BOOL, ACTIVE BOOL, BIDIR BOOL, LAYER_NAME TEXT, LINEWEIGHT REAL, MAXCOUNT INTEGER, MAXPERCENT REAL, STROKECOLORID INTEGER, FILLCOLORID INTEGER);",
	InsertSQL: "INSERT INTO _layers (LAYERID, TYPE, VISIBLE, ACTIVE, BIDIR, LAYER_NAME, LINEWEIGHT, MAXCOUNT, MAXPERCENT, STROKECOLORID, FILLCOLORID) VALUES (?,?,?,?,?,?,?,?,?,?,?)",
}

func (Layer) TableSchema() *xrosedb.TableSchema { return LayerSchema }

func (l *Layer) UnmarshalJSON(data []byte) error {
	dc, err := internal.NewContainer(data)
	if err != nil {
		return err
	}
	l.LayerID = dc.Int("LAYERID")
	l.Type = dc.String("TYPE")
	l.Visible = dc.Bool("VISIBLE")
	l.Active = dc.Bool("ACTIVE")
	l.BiDir = dc.Bool("BIDIR")
	l.Name = dc.String("LAYER_NAME")
	l.LineWeight = dc.Float32("LINEWEIGHT")
	l.MaxCount = dc.Int("MAXCOUNT")
	l.MaxPercent = dc.Float32("MAXPERCENT")
	// documents written before colors were stored lack these columns
	l.StrokeColorID = dc.IntOr("STROKECOLORID", 0)
	l.FillColorID = dc.IntOr("FILLCOLORID", 0)
	return dc.Err()
}

// LayerCore is the hollow core circle of a rose.
type LayerCore struct {
	LayerID int     `json:"LAYERID"`
	Radius  float32 `json:"RADIUS"`
	Type    bool    `json:"TYPE"`
}

var LayerCoreSchema = &xrosedb.TableSchema{
	Name: "_layerCore",
	Fields: []xrosedb.Field{
		field("LAYERID", xrosedb.FieldInt64),
		field("RADIUS", xrosedb.FieldFloat),
		field("TYPE", xrosedb.FieldBool),
	},
	CreateSQL: "CREATE TABLE IF NOT EXISTS _layerCore (LAYERID INTEGER PRIMARY KEY, RADIUS REAL, TYPE BOOL)",
	InsertSQL: "INSERT INTO _layerCore (LAYERID, RADIUS, TYPE) VALUES (?,?,?);",
}

func (LayerCore) TableSchema() *xrosedb.TableSchema { return LayerCoreSchema }
func (l LayerCore) LayerIdentifier() int            { return l.LayerID }

func (l *LayerCore) UnmarshalJSON(data []byte) error {
	dc, err := internal.NewContainer(data)
	if err != nil {
		return err
	}
	l.LayerID = dc.Int("LAYERID")
	l.Radius = dc.Float32("RADIUS")
	l.Type = dc.Bool("TYPE")
	return dc.Err()
}

// LayerText is a free text annotation. Contents holds base64 encoded RTF.
type LayerText struct {
	LayerID        int     `json:"LAYERID"`
	Contents       []byte  `json:"CONTENTS"`
	RectPointX     float32 `json:"RECT_POINT_X"`
	RectPointY     float32 `json:"RECT_POINT_Y"`
	RectSizeHeight float32 `json:"RECT_SIZE_HEIGHT"`
	RectSizeWidth  float32 `json:"RECT_SIZE_WIDTH"`
}

var LayerTextSchema = &xrosedb.TableSchema{
	Name: "_layerText",
	Fields: []xrosedb.Field{
		field("LAYERID", xrosedb.FieldInt64),
		field("CONTENTS", xrosedb.FieldBlob),
		field("RECT_POINT_X", xrosedb.FieldFloat),
		field("RECT_POINT_Y", xrosedb.FieldFloat),
		field("RECT_SIZE_HEIGHT", xrosedb.FieldFloat),
		field("RECT_SIZE_WIDTH", xrosedb.FieldFloat),
	},
	CreateSQL: "CREATE TABLE IF NOT EXISTS _layerText ( LAYERID INTEGER, CONTENTS BLOB, RECT_POINT_X float, RECT_POINT_Y float,RECT_SIZE_HEIGHT float,RECT_SIZE_WIDTH float)",
	InsertSQL: "INSERT INTO _layerText (LAYERID,CONTENTS,RECT_POINT_X,RECT_POINT_Y,RECT_SIZE_HEIGHT,RECT_SIZE_WIDTH) values (?,?,?,?,?,?)",
}

func (LayerText) TableSchema() *xrosedb.TableSchema { return LayerTextSchema }
func (l LayerText) LayerIdentifier() int            { return l.LayerID }

func (l *LayerText) UnmarshalJSON(data []byte) error {
	dc, err := internal.NewContainer(data)
	if err != nil {
		return err
	}
	l.LayerID = dc.Int("LAYERID")
	l.Contents = dc.Bytes("CONTENTS")
	l.RectPointX = dc.Float32("RECT_POINT_X")
	l.RectPointY = dc.Float32("RECT_POINT_Y")
	l.RectSizeHeight = dc.Float32("RECT_SIZE_HEIGHT")
	l.RectSizeWidth = dc.Float32("RECT_SIZE_WIDTH")
	return dc.Err()
}

// LayerLineArrow draws the mean vector of a dataset.
type LayerLineArrow struct {
	LayerID    int     `json:"LAYERID"`
	DataSet    int     `json:"DATASET"`
	ArrowSize  float32 `json:"ARROWSIZE"`
	VectorType int     `json:"VECTORTYPE"`
	ArrowType  int     `json:"ARROWTYPE"`
	ShowVector bool    `json:"SHOWVECTOR"`
	ShowError  bool    `json:"SHOWERROR"`
}

var LayerLineArrowSchema = &xrosedb.TableSchema{
	Name: "_layerLineArrow",
	Fields: []xrosedb.Field{
		field("LAYERID", xrosedb.FieldInt64),
		field("DATASET", xrosedb.FieldInt64),
		field("ARROWSIZE", xrosedb.FieldFloat),
		field("VECTORTYPE", xrosedb.FieldInt64),
		field("ARROWTYPE", xrosedb.FieldInt64),
		field("SHOWVECTOR", xrosedb.FieldBool),
		field("SHOWERROR", xrosedb.FieldBool),
	},
	CreateSQL: "CREATE TABLE IF NOT EXISTS _layerLineArrow ( LAYERID INTEGER, DATASET integer, ARROWSIZE float, VECTORTYPE INTEGER,ARROWTYPE INTEGER,SHOWVECTOR bool,SHOWERROR bool);",
	InsertSQL: "INSERT INTO _layerLineArrow (LAYERID, DATASET, ARROWSIZE, VECTORTYPE, ARROWTYPE, SHOWVECTOR, SHOWERROR) VALUES (?,?,?,?,?,?,?);",
}

func (LayerLineArrow) TableSchema() *xrosedb.TableSchema { return LayerLineArrowSchema }
func (l LayerLineArrow) LayerIdentifier() int            { return l.LayerID }

func (l *LayerLineArrow) UnmarshalJSON(data []byte) error {
	dc, err := internal.NewContainer(data)
	if err != nil {
		return err
	}
	l.LayerID = dc.Int("LAYERID")
	l.DataSet = dc.Int("DATASET")
	l.ArrowSize = dc.Float32("ARROWSIZE")
	l.VectorType = dc.Int("VECTORTYPE")
	l.ArrowType = dc.Int("ARROWTYPE")
	l.ShowVector = dc.Bool("SHOWVECTOR")
	l.ShowError = dc.Bool("SHOWERROR")
	return dc.Err()
}

// LayerData plots the petals or dots of a dataset.
type LayerData struct {
	LayerID    int     `json:"LAYERID"`
	DataSet    int     `json:"DATASET"`
	PlotType   int     `json:"PLOTTYPE"`
	TotalCount int     `json:"TOTALCOUNT"`
	DotRadius  float32 `json:"DOTRADIUS"`
}

var LayerDataSchema = &xrosedb.TableSchema{
	Name: "_layerData",
	Fields: []xrosedb.Field{
		field("LAYERID", xrosedb.FieldInt64),
		field("DATASET", xrosedb.FieldInt64),
		field("PLOTTYPE", xrosedb.FieldInt64),
		field("TOTALCOUNT", xrosedb.FieldInt64),
		field("DOTRADIUS", xrosedb.FieldFloat),
	},
	CreateSQL: "CREATE TABLE IF NOT EXISTS _layerData (LAYERID INTEGER, DATASET INTEGER, PLOTTYPE INTEGER, TOTALCOUNT INTEGER, DOTRADIUS FLOAT);",
	InsertSQL: "INSERT INTO _layerData (LAYERID,DATASET,PLOTTYPE,TOTALCOUNT,DOTRADIUS) VALUES (?,?,?,?,?);",
}

func (LayerData) TableSchema() *xrosedb.TableSchema { return LayerDataSchema }
func (l LayerData) LayerIdentifier() int            { return l.LayerID }

func (l *LayerData) UnmarshalJSON(data []byte) error {
	dc, err := internal.NewContainer(data)
	if err != nil {
		return err
	}
	l.LayerID = dc.Int("LAYERID")
	l.DataSet = dc.Int("DATASET")
	l.PlotType = dc.Int("PLOTTYPE")
	l.TotalCount = dc.Int("TOTALCOUNT")
	l.DotRadius = dc.Float32("DOTRADIUS")
	return dc.Err()
}
