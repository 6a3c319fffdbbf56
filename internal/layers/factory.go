package layers

import (
	"errors"
	"fmt"

	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/internal/models"
	"go.uber.org/zap"
)

var (
	ErrUnknownLayerKind         = errors.New("layers: unknown layer kind")
	ErrInvalidLayerIdentifiable = errors.New("layers: unsupported layer specialization")
)

// Factory converts between domain layers and stored records. It owns the
// color palette that stored layers reference by id.
type Factory struct {
	colors []models.Color
	fonts  *FontResolver
	strict bool
}

// NewFactory returns a factory configured by cfg.
func NewFactory(cfg xrosedb.LayersConfig) *Factory {
	return &Factory{
		fonts:  NewFontResolver(cfg.SystemFontName),
		strict: cfg.StrictVariants,
	}
}

// Fonts returns the resolver used for stored font names.
func (f *Factory) Fonts() *FontResolver { return f.fonts }

// SetColors replaces the palette.
func (f *Factory) SetColors(colors []models.Color) {
	f.ClearColors()
	f.colors = append(f.colors, colors...)
}

// ClearColors empties the palette.
func (f *Factory) ClearColors() {
	f.colors = f.colors[:0]
}

// Colors returns a copy of the palette.
func (f *Factory) Colors() []models.Color {
	out := make([]models.Color, len(f.colors))
	copy(out, f.colors)
	return out
}

// Color looks up a palette entry.
func (f *Factory) Color(id int) (RGBA, bool) {
	for _, c := range f.colors {
		if c.ColorID == id {
			return colorFromModel(c), true
		}
	}
	return RGBA{}, false
}

// StrokeColor returns the palette color for id, or opaque black.
func (f *Factory) StrokeColor(id int) RGBA {
	if c, ok := f.Color(id); ok {
		return c
	}
	return DefaultStroke
}

// FillColor returns the palette color for id, or opaque white.
func (f *Factory) FillColor(id int) RGBA {
	if c, ok := f.Color(id); ok {
		return c
	}
	return DefaultFill
}

// ColorID returns the palette id of c, or 0 when c is not in the palette.
func (f *Factory) ColorID(c RGBA) int {
	for _, entry := range f.colors {
		if colorFromModel(entry) == c {
			return entry.ColorID
		}
	}
	return 0
}

// BuildPalette replaces the palette with the distinct stroke and fill colors
// of layers, numbered from 1 in order of first use, and returns it.
func (f *Factory) BuildPalette(layers []Layer) []models.Color {
	f.ClearColors()
	for _, l := range layers {
		base := l.Common()
		for _, c := range []RGBA{base.Stroke, base.Fill} {
			if f.ColorID(c) == 0 {
				f.colors = append(f.colors, c.model(len(f.colors)+1))
			}
		}
	}
	return f.Colors()
}

// RootRecord returns the _layers row for layer at index.
func (f *Factory) RootRecord(layer Layer, index int) models.Layer {
	base := layer.Common()
	return models.Layer{
		LayerID:       index,
		Type:          layer.TypeName(),
		Visible:       base.Visible,
		Active:        base.Active,
		BiDir:         base.BiDir,
		Name:          base.Name,
		LineWeight:    base.LineWeight,
		MaxCount:      int(base.MaxCount),
		MaxPercent:    base.MaxPercent,
		StrokeColorID: f.ColorID(base.Stroke),
		FillColorID:   f.ColorID(base.Fill),
	}
}

// StorageRecords returns the root row and the kind-specific row for layer.
// A layer of an unknown kind yields only its root row, or
// ErrUnknownLayerKind when strict variants are configured.
func (f *Factory) StorageRecords(layer Layer, index int) ([]xrosedb.TableRepresentable, error) {
	records := []xrosedb.TableRepresentable{f.RootRecord(layer, index)}

	switch l := layer.(type) {
	case *Core:
		records = append(records, models.LayerCore{LayerID: index, Radius: l.Radius, Type: l.Fixed})
	case *Text:
		records = append(records, models.LayerText{
			LayerID:        index,
			Contents:       EncodeRichText(l.Contents),
			RectPointX:     l.Rect.X,
			RectPointY:     l.Rect.Y,
			RectSizeHeight: l.Rect.Height,
			RectSizeWidth:  l.Rect.Width,
		})
	case *LineArrow:
		records = append(records, models.LayerLineArrow{
			LayerID:    index,
			DataSet:    l.DataSetID,
			ArrowSize:  l.ArrowSize,
			VectorType: int(l.VectorType),
			ArrowType:  int(l.ArrowType),
			ShowVector: l.ShowVector,
			ShowError:  l.ShowError,
		})
	case *Grid:
		records = append(records, gridRecord(l, index))
	case *Data:
		records = append(records, models.LayerData{
			LayerID:    index,
			DataSet:    l.DataSetID,
			PlotType:   int(l.PlotType),
			TotalCount: int(l.TotalCount),
			DotRadius:  l.DotRadius,
		})
	default:
		if f.strict {
			return nil, fmt.Errorf("%w: %s", ErrUnknownLayerKind, layer.TypeName())
		}
		zap.S().Warnw("layers: storing root row only", "type", layer.TypeName(), "index", index)
	}
	return records, nil
}

func gridRecord(g *Grid, index int) models.LayerGrid {
	return models.LayerGrid{
		LayerID:               index,
		RingsIsFixedCount:     g.Rings.IsFixedCount,
		RingsVisible:          g.Rings.Visible,
		RingsLabels:           g.Rings.ShowLabels,
		RingsFixedCount:       int(g.Rings.FixedCount),
		RingsCountIncrement:   int(g.Rings.CountIncrement),
		RingsPercentIncrement: g.Rings.PercentIncrement,
		RingsLabelAngle:       g.Rings.LabelAngle,
		RingsFontName:         g.Rings.Font.Name,
		RingsFontSize:         g.Rings.Font.Size,
		RadialsCount:          int(g.Radials.Count),
		RadialsAngle:          g.Radials.Angle,
		RadialsLabelAlign:     int(g.Radials.LabelAlign),
		RadialsCompassPoint:   int(g.Radials.CompassPoint),
		RadialsOrder:          int(g.Radials.Order),
		RadialsFont:           g.Radials.Font.Name,
		RadialsFontSize:       g.Radials.Font.Size,
		RadialsSectorLock:     g.Radials.SectorLock,
		RadialsVisible:        g.Radials.Visible,
		RadialsIsPercent:      g.Radials.IsPercent,
		RadialsTicks:          g.Radials.Ticks,
		RadialsMinorTicks:     g.Radials.MinorTicks,
		RadialsLabels:         g.Radials.ShowLabels,
	}
}

func (f *Factory) base(root models.Layer) Base {
	return Base{
		Visible:    root.Visible,
		Active:     root.Active,
		BiDir:      root.BiDir,
		Name:       root.Name,
		LineWeight: root.LineWeight,
		MaxCount:   int32(root.MaxCount),
		MaxPercent: root.MaxPercent,
		Stroke:     f.StrokeColor(root.StrokeColorID),
		Fill:       f.FillColor(root.FillColorID),
	}
}

// DomainLayer rebuilds a layer from its root row and kind-specific row.
// spec must be one of the five layer record values.
func (f *Factory) DomainLayer(root models.Layer, spec models.LayerSpecialization) (Layer, error) {
	switch s := spec.(type) {
	case models.LayerCore:
		return &Core{Base: f.base(root), Radius: s.Radius, Fixed: s.Type}, nil
	case models.LayerText:
		contents, err := DecodeRichText(s.Contents)
		if err != nil {
			zap.S().Warnw("layers: unreadable text contents", "layer", root.LayerID, "err", err)
			contents = RichText{}
		}
		if contents.Font.Name != "" {
			contents.Font = f.fonts.Resolve(contents.Font.Name, contents.Font.Size)
		}
		return &Text{
			Base:     f.base(root),
			Contents: contents,
			Rect:     Rect{X: s.RectPointX, Y: s.RectPointY, Width: s.RectSizeWidth, Height: s.RectSizeHeight},
		}, nil
	case models.LayerLineArrow:
		return &LineArrow{
			Base:       f.base(root),
			DataSetID:  s.DataSet,
			ArrowSize:  s.ArrowSize,
			VectorType: int32(s.VectorType),
			ArrowType:  int32(s.ArrowType),
			ShowVector: s.ShowVector,
			ShowError:  s.ShowError,
		}, nil
	case models.LayerGrid:
		return &Grid{
			Base: f.base(root),
			Rings: Rings{
				IsFixedCount:     s.RingsIsFixedCount,
				Visible:          s.RingsVisible,
				ShowLabels:       s.RingsLabels,
				FixedCount:       int32(s.RingsFixedCount),
				CountIncrement:   int32(s.RingsCountIncrement),
				PercentIncrement: s.RingsPercentIncrement,
				LabelAngle:       s.RingsLabelAngle,
				Font:             f.fonts.Resolve(s.RingsFontName, s.RingsFontSize),
			},
			Radials: Radials{
				Count:        int32(s.RadialsCount),
				Angle:        s.RadialsAngle,
				LabelAlign:   int32(s.RadialsLabelAlign),
				CompassPoint: int32(s.RadialsCompassPoint),
				Order:        int32(s.RadialsOrder),
				Font:         f.fonts.Resolve(s.RadialsFont, s.RadialsFontSize),
				SectorLock:   s.RadialsSectorLock,
				Visible:      s.RadialsVisible,
				IsPercent:    s.RadialsIsPercent,
				Ticks:        s.RadialsTicks,
				MinorTicks:   s.RadialsMinorTicks,
				ShowLabels:   s.RadialsLabels,
			},
		}, nil
	case models.LayerData:
		return &Data{
			Base:       f.base(root),
			DataSetID:  s.DataSet,
			PlotType:   int32(s.PlotType),
			TotalCount: int32(s.TotalCount),
			DotRadius:  s.DotRadius,
		}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrInvalidLayerIdentifiable, spec)
}
