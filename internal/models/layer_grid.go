package models

import (
	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/internal"
)

// LayerGrid holds ring and radial settings of the plot grid.
type LayerGrid struct {
	LayerID               int     `json:"LAYERID"`
	RingsIsFixedCount     bool    `json:"RINGS_ISFIXEDCOUNT"`
	RingsVisible          bool    `json:"RINGS_VISIBLE"`
	RingsLabels           bool    `json:"RINGS_LABELS"`
	RingsFixedCount       int     `json:"RINGS_FIXEDCOUNT"`
	RingsCountIncrement   int     `json:"RINGS_COUNTINCREMENT"`
	RingsPercentIncrement float32 `json:"RINGS_PERCENTINCREMENT"`
	RingsLabelAngle       float32 `json:"RINGS_LABELANGLE"`
	RingsFontName         string  `json:"RINGS_FONTNAME"`
	RingsFontSize         float32 `json:"RINGS_FONTSIZE"`
	RadialsCount          int     `json:"RADIALS_COUNT"`
	RadialsAngle          float32 `json:"RADIALS_ANGLE"`
	RadialsLabelAlign     int     `json:"RADIALS_LABELALIGN"`
	RadialsCompassPoint   int     `json:"RADIALS_COMPASSPOINT"`
	RadialsOrder          int     `json:"RADIALS_ORDER"`
	RadialsFont           string  `json:"RADIALS_FONT"`
	RadialsFontSize       float32 `json:"RADIALS_FONTSIZE"`
	RadialsSectorLock     bool    `json:"RADIALS_SECTORLOCK"`
	RadialsVisible        bool    `json:"RADIALS_VISIBLE"`
	RadialsIsPercent      bool    `json:"RADIALS_ISPERCENT"`
	RadialsTicks          bool    `json:"RADIALS_TICKS"`
	RadialsMinorTicks     bool    `json:"RADIALS_MINORTICKS"`
	RadialsLabels         bool    `json:"RADIALS_LABELS"`
}

var LayerGridSchema = &xrosedb.TableSchema{
	Name: "_layerGrid",
	Fields: []xrosedb.Field{
		field("LAYERID", xrosedb.FieldInt64),
		field("RINGS_ISFIXEDCOUNT", xrosedb.FieldBool),
		field("RINGS_VISIBLE", xrosedb.FieldBool),
		field("RINGS_LABELS", xrosedb.FieldBool),
		field("RINGS_FIXEDCOUNT", xrosedb.FieldInt64),
		field("RINGS_COUNTINCREMENT", xrosedb.FieldInt64),
		field("RINGS_PERCENTINCREMENT", xrosedb.FieldFloat),
		field("RINGS_LABELANGLE", xrosedb.FieldFloat),
		field("RINGS_FONTNAME", xrosedb.FieldText),
		field("RINGS_FONTSIZE", xrosedb.FieldFloat),
		field("RADIALS_COUNT", xrosedb.FieldInt64),
		field("RADIALS_ANGLE", xrosedb.FieldFloat),
		field("RADIALS_LABELALIGN", xrosedb.FieldInt64),
		field("RADIALS_COMPASSPOINT", xrosedb.FieldInt64),
		field("RADIALS_ORDER", xrosedb.FieldInt64),
		field("RADIALS_FONT", xrosedb.FieldText),
		field("RADIALS_FONTSIZE", xrosedb.FieldFloat),
		field("RADIALS_SECTORLOCK", xrosedb.FieldBool),
		field("RADIALS_VISIBLE", xrosedb.FieldBool),
		field("RADIALS_ISPERCENT", xrosedb.FieldBool),
		field("RADIALS_TICKS", xrosedb.FieldBool),
		field("RADIALS_MINORTICKS", xrosedb.FieldBool),
		field("RADIALS_LABELS", xrosedb.FieldBool),
	},
	CreateSQL: "CREATE TABLE IF NOT EXISTS _layerGrid ( LAYERID INTEGER, RINGS_ISFIXEDCOUNT bool, RINGS_VISIBLE bool, RINGS_LABELS bool,RINGS_FIXEDCOUNT  INTEGER, RINGS_COUNTINCREMENT INTEGER,RINGS_PERCENTINCREMENT  FLOAT, RINGS_LABELANGLE FLOAT, RINGS_FONTNAME text, RINGS_FONTSIZE float,RADIALS_COUNT INTEGER,RADIALS_ANGLE float,RADIALS_LABELALIGN integer,RADIALS_COMPASSPOINT integer,RADIALS_ORDER integer,RADIALS_FONT text,RADIALS_FONTSIZE float,RADIALS_SECTORLOCK bool, RADIALS_VISIBLE bool, RADIALS_ISPERCENT bool,RADIALS_TICKS bool,RADIALS_MINORTICKS bool,RADIALS_LABELS bool);",
	InsertSQL: "INSERT INTO _layerGrid (LAYERID, RINGS_ISFIXEDCOUNT, RINGS_VISIBLE, RINGS_LABELS, RINGS_FIXEDCOUNT, RINGS_COUNTINCREMENT, RINGS_PERCENTINCREMENT, RINGS_LABELANGLE, RINGS_FONTNAME, RINGS_FONTSIZE,  RADIALS_COUNT, RADIALS_ANGLE, RADIALS_LABELALIGN, RADIALS_COMPASSPOINT, RADIALS_ORDER, RADIALS_FONT, RADIALS_FONTSIZE, RADIALS_SECTORLOCK, RADIALS_VISIBLE, RADIALS_ISPERCENT, RADIALS_TICKS, RADIALS_MINORTICKS, RADIALS_LABELS) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);",
}

func (LayerGrid) TableSchema() *xrosedb.TableSchema { return LayerGridSchema }

func (l LayerGrid) LayerIdentifier() int { return l.LayerID }

func (l *LayerGrid) UnmarshalJSON(data []byte) error {
	dc, err := internal.NewContainer(data)
	if err != nil {
		return err
	}
	l.LayerID = dc.Int("LAYERID")
	l.RingsIsFixedCount = dc.Bool("RINGS_ISFIXEDCOUNT")
	l.RingsVisible = dc.Bool("RINGS_VISIBLE")
	l.RingsLabels = dc.Bool("RINGS_LABELS")
	l.RingsFixedCount = dc.Int("RINGS_FIXEDCOUNT")
	l.RingsCountIncrement = dc.Int("RINGS_COUNTINCREMENT")
	l.RingsPercentIncrement = dc.Float32("RINGS_PERCENTINCREMENT")
	l.RingsLabelAngle = dc.Float32("RINGS_LABELANGLE")
	l.RingsFontName = dc.String("RINGS_FONTNAME")
	l.RingsFontSize = dc.Float32("RINGS_FONTSIZE")
	l.RadialsCount = dc.Int("RADIALS_COUNT")
	l.RadialsAngle = dc.Float32("RADIALS_ANGLE")
	l.RadialsLabelAlign = dc.Int("RADIALS_LABELALIGN")
	l.RadialsCompassPoint = dc.Int("RADIALS_COMPASSPOINT")
	l.RadialsOrder = dc.Int("RADIALS_ORDER")
	l.RadialsFont = dc.String("RADIALS_FONT")
	l.RadialsFontSize = dc.Float32("RADIALS_FONTSIZE")
	l.RadialsSectorLock = dc.Bool("RADIALS_SECTORLOCK")
	l.RadialsVisible = dc.Bool("RADIALS_VISIBLE")
	l.RadialsIsPercent = dc.Bool("RADIALS_ISPERCENT")
	l.RadialsTicks = dc.Bool("RADIALS_TICKS")
	l.RadialsMinorTicks = dc.Bool("RADIALS_MINORTICKS")
	l.RadialsLabels = dc.Bool("RADIALS_LABELS")
	return dc.Err()
}
