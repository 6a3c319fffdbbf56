package layers

import (
	"errors"
	"os"
	"testing"

	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	os.Exit(m.Run())
}

var (
	red   = RGBA{Red: 1, Green: 0, Blue: 0, Alpha: 1}
	green = RGBA{Red: 0, Green: 1, Blue: 0, Alpha: 0.5}
)

// sketch is a layer kind the factory has no record type for.
type sketch struct{ Base }

func (*sketch) TypeName() string { return "XRLayerSketch" }

func newFactory(strict bool) *Factory {
	cfg := xrosedb.DefaultConfig().Layers
	cfg.StrictVariants = strict
	return NewFactory(cfg)
}

func sampleLayers() []Layer {
	font := Font{Name: "Helvetica", Size: 10}
	return []Layer{
		&Grid{
			Base:    Base{Visible: true, Name: "Grid", LineWeight: 1, Stroke: DefaultStroke, Fill: DefaultFill},
			Rings:   Rings{IsFixedCount: true, Visible: false, ShowLabels: true, FixedCount: 5, CountIncrement: 2, PercentIncrement: 0.05, LabelAngle: 45, Font: font},
			Radials: Radials{Count: 36, Angle: 10, CompassPoint: 1, Font: Font{Name: "Times-Roman", Size: 9}, Visible: true, Ticks: true, ShowLabels: true},
		},
		&Core{Base: Base{Visible: true, Name: "Core", Stroke: red, Fill: DefaultFill}, Radius: 0.1, Fixed: true},
		&Text{
			Base:     Base{Visible: true, Name: "Label", Stroke: green, Fill: red},
			Contents: RichText{Text: "N", Font: Font{Name: "Helvetica", Size: 18}},
			Rect:     Rect{X: 10, Y: 20, Width: 30, Height: 40},
		},
		&LineArrow{Base: Base{Name: "Mean", BiDir: true, Stroke: red, Fill: green}, DataSetID: 2, ArrowSize: 1.5, VectorType: 1, ArrowType: 2, ShowVector: true, ShowError: true},
		&Data{Base: Base{Visible: true, Active: true, Name: "Azimuth", MaxCount: 12, MaxPercent: 0.4, Stroke: DefaultStroke, Fill: green}, DataSetID: 2, PlotType: 3, TotalCount: 99, DotRadius: 2},
	}
}

func TestBuildPalette(t *testing.T) {
	f := newFactory(false)
	palette := f.BuildPalette(sampleLayers())

	require.Len(t, palette, 4)
	for i, c := range palette {
		assert.Equal(t, i+1, c.ColorID)
	}
	assert.Equal(t, 1, f.ColorID(DefaultStroke))
	assert.Equal(t, 2, f.ColorID(DefaultFill))
	assert.Equal(t, 3, f.ColorID(red))
	assert.Equal(t, 4, f.ColorID(green))
	assert.Equal(t, 0, f.ColorID(RGBA{Red: 0.3}))

	// rebuilding replaces the palette
	palette = f.BuildPalette([]Layer{&Core{Base: Base{Stroke: green, Fill: green}}})
	assert.Len(t, palette, 1)
	assert.Equal(t, 1, f.ColorID(green))
}

func TestColorFallbacks(t *testing.T) {
	f := newFactory(false)
	f.SetColors([]models.Color{{ColorID: 7, Red: 0.2, Green: 0.4, Blue: 0.6, Alpha: 0.8}})

	c, ok := f.Color(7)
	require.True(t, ok)
	assert.Equal(t, RGBA{Red: 0.2, Green: 0.4, Blue: 0.6, Alpha: 0.8}, c)
	assert.Equal(t, c, f.StrokeColor(7))
	assert.Equal(t, c, f.FillColor(7))

	_, ok = f.Color(8)
	assert.False(t, ok)
	assert.Equal(t, DefaultStroke, f.StrokeColor(8))
	assert.Equal(t, DefaultFill, f.FillColor(0))

	f.ClearColors()
	assert.Empty(t, f.Colors())
	assert.Equal(t, DefaultStroke, f.StrokeColor(7))
}

func TestColorsReturnsCopy(t *testing.T) {
	f := newFactory(false)
	f.SetColors([]models.Color{{ColorID: 1, Alpha: 1}})
	colors := f.Colors()
	colors[0].ColorID = 99
	_, ok := f.Color(1)
	assert.True(t, ok)
}

func TestStorageRecords(t *testing.T) {
	f := newFactory(false)
	ls := sampleLayers()
	f.BuildPalette(ls)

	tests := []struct {
		index int
		table string
	}{
		{index: 0, table: models.LayerGridSchema.Name},
		{index: 1, table: models.LayerCoreSchema.Name},
		{index: 2, table: models.LayerTextSchema.Name},
		{index: 3, table: models.LayerLineArrowSchema.Name},
		{index: 4, table: models.LayerDataSchema.Name},
	}

	for _, tt := range tests {
		records, err := f.StorageRecords(ls[tt.index], tt.index)
		require.NoError(t, err)
		require.Len(t, records, 2)

		root, ok := records[0].(models.Layer)
		require.True(t, ok)
		assert.Equal(t, tt.index, root.LayerID)
		assert.Equal(t, ls[tt.index].TypeName(), root.Type)
		assert.Equal(t, tt.table, records[1].TableSchema().Name)

		spec, ok := records[1].(models.LayerSpecialization)
		require.True(t, ok)
		assert.Equal(t, tt.index, spec.LayerIdentifier())
	}
}

func TestGridRecordStoresRingVisibility(t *testing.T) {
	f := newFactory(false)
	grid := sampleLayers()[0].(*Grid)

	records, err := f.StorageRecords(grid, 0)
	require.NoError(t, err)
	rec := records[1].(models.LayerGrid)
	assert.True(t, records[0].(models.Layer).Visible)
	assert.False(t, rec.RingsVisible)
	assert.True(t, rec.RadialsVisible)
	assert.Equal(t, "Times-Roman", rec.RadialsFont)
}

func TestStorageRecordsUnknownKind(t *testing.T) {
	layer := &sketch{Base: Base{Name: "Doodle"}}

	records, err := newFactory(false).StorageRecords(layer, 3)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "XRLayerSketch", records[0].(models.Layer).Type)

	_, err = newFactory(true).StorageRecords(layer, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownLayerKind))
}

func TestDomainLayerRoundTrip(t *testing.T) {
	f := newFactory(false)
	ls := sampleLayers()
	palette := f.BuildPalette(ls)

	reader := newFactory(false)
	reader.SetColors(palette)

	for i, l := range ls {
		records, err := f.StorageRecords(l, i)
		require.NoError(t, err)

		got, err := reader.DomainLayer(records[0].(models.Layer), records[1].(models.LayerSpecialization))
		require.NoError(t, err)
		assert.Equal(t, l, got, l.TypeName())
	}
}

func TestDomainLayerFallsBackToDefaults(t *testing.T) {
	f := newFactory(false)
	root := models.Layer{LayerID: 1, Type: models.LayerTypeGrid, StrokeColorID: 5, FillColorID: 6}
	spec := models.LayerGrid{LayerID: 1, RingsFontName: "Comic Sans", RingsFontSize: 11, RadialsFont: "monaco", RadialsFontSize: 9}

	l, err := f.DomainLayer(root, spec)
	require.NoError(t, err)
	grid := l.(*Grid)
	assert.Equal(t, DefaultStroke, grid.Stroke)
	assert.Equal(t, DefaultFill, grid.Fill)
	assert.Equal(t, Font{Name: "Helvetica", Size: 11}, grid.Rings.Font)
	assert.Equal(t, Font{Name: "Monaco", Size: 9}, grid.Radials.Font)
}

func TestDomainLayerUnreadableText(t *testing.T) {
	f := newFactory(false)
	root := models.Layer{LayerID: 1, Type: models.LayerTypeText}

	l, err := f.DomainLayer(root, models.LayerText{LayerID: 1, Contents: []byte("not rtf at all"), RectSizeWidth: 5})
	require.NoError(t, err)
	text := l.(*Text)
	assert.Equal(t, RichText{}, text.Contents)
	assert.Equal(t, float32(5), text.Rect.Width)
}

func TestDomainLayerRejectsOtherRecords(t *testing.T) {
	_, err := newFactory(false).DomainLayer(models.Layer{}, otherSpec{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidLayerIdentifiable))
}

type otherSpec struct{}

func (otherSpec) TableSchema() *xrosedb.TableSchema { return models.LayerSchema }
func (otherSpec) LayerIdentifier() int              { return 0 }

func TestFontResolver(t *testing.T) {
	r := NewFontResolver("Lucida Grande", "Fira Sans")

	assert.Equal(t, "Lucida Grande", r.System())
	assert.Equal(t, Font{Name: "Helvetica-Bold", Size: 12}, r.Resolve("helvetica-bold", 12))
	assert.Equal(t, Font{Name: "Fira Sans", Size: 9}, r.Resolve(" FIRA SANS ", 9))
	assert.Equal(t, Font{Name: "Lucida Grande", Size: 14}, r.Resolve("Wingdings", 14))
	assert.Equal(t, Font{Name: "Lucida Grande", Size: 10}, r.Resolve("", 10))
}
