package models

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/internal"
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

func newDocument(t *testing.T) (*internal.SQLiteInterface, *sql.DB) {
	t.Helper()
	ctx := context.Background()
	engine := internal.DefaultSQLiteInterface()
	db, err := engine.CreateInMemoryStore(ctx, "")
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close(db) })

	for _, q := range NewRegistry().CreateTableQueries() {
		_, err := engine.ExecuteQuery(ctx, db, q)
		require.NoError(t, err, q.SQL)
	}
	return engine, db
}

// roundTrip inserts record and reads every row of its table back.
func roundTrip[T xrosedb.TableRepresentable](t *testing.T, record T) []T {
	t.Helper()
	ctx := context.Background()
	engine, db := newDocument(t)

	q, err := internal.InsertQuery(record)
	require.NoError(t, err)
	_, err = engine.ExecuteQuery(ctx, db, q)
	require.NoError(t, err)

	rows, err := xrosedb.ExecuteCodableQuery[T](ctx, engine, db, record.TableSchema().StoredValues())
	require.NoError(t, err)
	return rows
}

func TestRecordRoundTrips(t *testing.T) {
	predicate := "azimuth > 10"

	t.Run("color", func(t *testing.T) {
		c := Color{ColorID: 1, Red: 0.25, Blue: 0.5, Green: 0.75, Alpha: 1}
		assert.Equal(t, []Color{c}, roundTrip(t, c))
	})
	t.Run("dataset", func(t *testing.T) {
		d := DataSet{ID: 4, Name: "Azimuths", TableName: "measurements", ColumnName: "azimuth", Predicate: &predicate, Comments: []byte("notes")}
		assert.Equal(t, []DataSet{d}, roundTrip(t, d))
	})
	t.Run("dataset without optionals", func(t *testing.T) {
		d := DataSet{ID: 5, Name: "Dips", TableName: "measurements", ColumnName: "dip"}
		assert.Equal(t, []DataSet{d}, roundTrip(t, d))
	})
	t.Run("geometry", func(t *testing.T) {
		g := Geometry{IsEqualArea: true, MaxCount: 12, MaxPercent: 0.3, HollowCore: 0.1, SectorSize: 10, StartingAngle: 5, SectorCount: 36, RelativeSize: 0.9}
		assert.Equal(t, []Geometry{g}, roundTrip(t, g))
	})
	t.Run("window", func(t *testing.T) {
		w := WindowControllerSize{Width: 1024.5, Height: 768}
		assert.Equal(t, []WindowControllerSize{w}, roundTrip(t, w))
	})
	t.Run("layer", func(t *testing.T) {
		l := Layer{LayerID: 0, Type: LayerTypeGrid, Visible: true, BiDir: true, Name: "Grid", LineWeight: 1.5, MaxCount: 10, MaxPercent: 0.2, StrokeColorID: 1, FillColorID: 2}
		assert.Equal(t, []Layer{l}, roundTrip(t, l))
	})
	t.Run("core", func(t *testing.T) {
		l := LayerCore{LayerID: 3, Radius: 0.15, Type: true}
		assert.Equal(t, []LayerCore{l}, roundTrip(t, l))
	})
	t.Run("text", func(t *testing.T) {
		l := LayerText{LayerID: 1, Contents: []byte("e1xydGYxIH0="), RectPointX: 10, RectPointY: 20, RectSizeHeight: 30, RectSizeWidth: 40}
		assert.Equal(t, []LayerText{l}, roundTrip(t, l))
	})
	t.Run("line arrow", func(t *testing.T) {
		l := LayerLineArrow{LayerID: 2, DataSet: 4, ArrowSize: 1.25, VectorType: 1, ArrowType: 2, ShowVector: true}
		assert.Equal(t, []LayerLineArrow{l}, roundTrip(t, l))
	})
	t.Run("grid", func(t *testing.T) {
		l := LayerGrid{
			LayerID: 0, RingsIsFixedCount: true, RingsVisible: true, RingsLabels: true, RingsFixedCount: 5,
			RingsCountIncrement: 2, RingsPercentIncrement: 0.05, RingsLabelAngle: 45, RingsFontName: "Helvetica",
			RingsFontSize: 10, RadialsCount: 36, RadialsAngle: 10, RadialsLabelAlign: 1, RadialsCompassPoint: 2,
			RadialsOrder: 3, RadialsFont: "Times-Roman", RadialsFontSize: 9.5, RadialsSectorLock: true,
			RadialsVisible: true, RadialsIsPercent: false, RadialsTicks: true, RadialsMinorTicks: true, RadialsLabels: true,
		}
		assert.Equal(t, []LayerGrid{l}, roundTrip(t, l))
	})
	t.Run("data", func(t *testing.T) {
		l := LayerData{LayerID: 4, DataSet: 4, PlotType: 2, TotalCount: 120, DotRadius: 2.5}
		assert.Equal(t, []LayerData{l}, roundTrip(t, l))
	})
}

func TestInsertPlaceholdersMatchKeys(t *testing.T) {
	for _, schema := range NewRegistry().Schemas() {
		q := schema.InsertQuery()
		require.False(t, q.IsEmpty(), schema.Name)
		assert.Equal(t, len(q.Keys), internal.CountPlaceholders(q.SQL), schema.Name)

		if u := schema.UpdateQuery(); !u.IsEmpty() {
			assert.Equal(t, len(u.Keys), internal.CountPlaceholders(u.SQL), schema.Name)
		}
	}
	assert.Equal(t, 23, internal.CountPlaceholders(LayerGridSchema.InsertSQL))
	assert.Equal(t, 5, internal.CountPlaceholders(ColorSchema.InsertSQL))
}

func TestGeometryKeysAreDistinct(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range geometryKeys {
		assert.False(t, seen[k], k)
		seen[k] = true
	}
	assert.Len(t, geometryKeys, len(GeometrySchema.Fields))
}

func TestUpdateQueries(t *testing.T) {
	ctx := context.Background()
	engine, db := newDocument(t)

	insert, err := internal.InsertQuery(DataSet{ID: 1, Name: "a", TableName: "t", ColumnName: "c"})
	require.NoError(t, err)
	_, err = engine.ExecuteQuery(ctx, db, insert)
	require.NoError(t, err)

	updated := DataSet{ID: 1, Name: "b", TableName: "t", ColumnName: "d"}
	values, err := internal.ValueBindables(updated, DataSetSchema.UpdateKeys)
	require.NoError(t, err)
	_, err = engine.ExecuteQuery(ctx, db, DataSetSchema.UpdateQuery().WithBindings(values))
	require.NoError(t, err)

	got, err := xrosedb.ExecuteCodableQuery[DataSet](ctx, engine, db, DataSetSchema.StoredValues())
	require.NoError(t, err)
	assert.Equal(t, []DataSet{updated}, got)

	_, err = engine.ExecuteQuery(ctx, db, DataSetSchema.DeleteQuery().WithBindings([]any{1}))
	require.NoError(t, err)
	got, err = xrosedb.ExecuteCodableQuery[DataSet](ctx, engine, db, DataSetSchema.StoredValues())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLayerDecodesDocumentsWithoutColorColumns(t *testing.T) {
	var l Layer
	err := l.UnmarshalJSON([]byte(`{"LAYERID":1,"TYPE":"XRLayerCore","VISIBLE":1,"ACTIVE":0,"BIDIR":false,"LAYER_NAME":"Core","LINEWEIGHT":1,"MAXCOUNT":0,"MAXPERCENT":0}`))
	require.NoError(t, err)
	assert.Equal(t, 0, l.StrokeColorID)
	assert.Equal(t, 0, l.FillColorID)
	assert.True(t, l.Visible)
}

func TestLayerIdentifiers(t *testing.T) {
	specs := []LayerSpecialization{
		LayerCore{LayerID: 1},
		LayerText{LayerID: 2},
		LayerLineArrow{LayerID: 3},
		LayerGrid{LayerID: 4},
		LayerData{LayerID: 5},
	}
	for i, s := range specs {
		assert.Equal(t, i+1, s.LayerIdentifier())
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	s, err := r.Schema("_layerGrid")
	require.NoError(t, err)
	assert.Same(t, LayerGridSchema, s)

	_, err = r.Schema("_missing")
	assert.True(t, errors.Is(err, xrosedb.ErrDataNotFound))

	names := r.ListSchemas()
	assert.Len(t, names, 10)
	assert.IsIncreasing(t, names)

	assert.Len(t, r.CreateTableQueries(), 10)
	assert.Equal(t, LayerSchema, r.LayerTables()[0])

	// callers cannot reorder the registry
	schemas := r.Schemas()
	schemas[0] = nil
	assert.NotNil(t, r.Schemas()[0])
}

func TestTablesQuery(t *testing.T) {
	ctx := context.Background()
	engine, db := newDocument(t)

	tables, err := xrosedb.ExecuteCodableQuery[TableSchemaRow](ctx, engine, db, TablesQuery())
	require.NoError(t, err)
	require.Len(t, tables, 10)
	assert.Equal(t, WindowControllerSizeSchema.Name, tables[0].Name)
	for _, table := range tables {
		assert.Equal(t, "table", table.Type)
		assert.NotNil(t, table.SQL)
	}

	counts, err := xrosedb.ExecuteCodableQuery[RecordCount](ctx, engine, db, ColorSchema.CountQuery())
	require.NoError(t, err)
	assert.Equal(t, []RecordCount{{Count: 0}}, counts)
}
