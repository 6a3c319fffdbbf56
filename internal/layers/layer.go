// Package layers is the in-memory model of the layers drawn on a rose
// diagram and the factory that maps it to and from stored records.
package layers

import "github.com/lychee-technology/xrosedb/internal/models"

// Layer is one drawable layer. Common exposes the settings every kind shares.
type Layer interface {
	Common() *Base
	TypeName() string
}

// Base holds the settings shared by every layer kind.
type Base struct {
	Visible    bool
	Active     bool
	BiDir      bool
	Name       string
	LineWeight float32
	MaxCount   int32
	MaxPercent float32
	Stroke     RGBA
	Fill       RGBA
}

func (b *Base) Common() *Base { return b }

// Core is the hollow circle at the center of the rose.
type Core struct {
	Base
	Radius float32
	// Fixed is true when Radius is an absolute size rather than a fraction.
	Fixed bool
}

func (*Core) TypeName() string { return models.LayerTypeCore }

// Rect positions a text layer.
type Rect struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// Text is a free text annotation.
type Text struct {
	Base
	Contents RichText
	Rect     Rect
}

func (*Text) TypeName() string { return models.LayerTypeText }

// LineArrow draws a dataset's mean vector.
type LineArrow struct {
	Base
	DataSetID  int
	ArrowSize  float32
	VectorType int32
	ArrowType  int32
	ShowVector bool
	ShowError  bool
}

func (*LineArrow) TypeName() string { return models.LayerTypeLineArrow }

// Rings configures the concentric rings of a grid.
type Rings struct {
	IsFixedCount     bool
	Visible          bool
	ShowLabels       bool
	FixedCount       int32
	CountIncrement   int32
	PercentIncrement float32
	LabelAngle       float32
	Font             Font
}

// Radials configures the spokes of a grid.
type Radials struct {
	Count        int32
	Angle        float32
	LabelAlign   int32
	CompassPoint int32
	Order        int32
	Font         Font
	SectorLock   bool
	Visible      bool
	IsPercent    bool
	Ticks        bool
	MinorTicks   bool
	ShowLabels   bool
}

// Grid draws rings and radials.
type Grid struct {
	Base
	Rings   Rings
	Radials Radials
}

func (*Grid) TypeName() string { return models.LayerTypeGrid }

// Data plots the values of a dataset.
type Data struct {
	Base
	DataSetID  int
	PlotType   int32
	TotalCount int32
	DotRadius  float32
}

func (*Data) TypeName() string { return models.LayerTypeData }
