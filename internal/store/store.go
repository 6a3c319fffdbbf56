// Package store persists a rose diagram document in an in-memory SQLite
// database and moves it to and from document files.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/internal"
	"github.com/lychee-technology/xrosedb/internal/layers"
	"github.com/lychee-technology/xrosedb/internal/models"
	"go.uber.org/zap"
)

// Store is one open document.
type Store struct {
	engine     xrosedb.Interface
	db         *sql.DB
	registry   *models.Registry
	factory    *layers.Factory
	identifier string
	strict     bool
}

// NewInMemoryStore creates an in-memory database holding every document
// table, then loads cfg.Store.DocumentPath when set.
func NewInMemoryStore(ctx context.Context, engine xrosedb.Interface, cfg *xrosedb.Config) (*Store, error) {
	if cfg == nil {
		cfg = xrosedb.DefaultConfig()
	}
	identifier := cfg.Store.Identifier
	if identifier == "" {
		identifier = uuid.NewString()
	}
	db, err := engine.CreateInMemoryStore(ctx, identifier)
	if err != nil {
		return nil, err
	}

	s := &Store{
		engine:     engine,
		db:         db,
		registry:   models.NewRegistry(),
		factory:    layers.NewFactory(cfg.Layers),
		identifier: identifier,
		strict:     cfg.Layers.StrictVariants,
	}
	if err := s.createTables(ctx); err != nil {
		engine.Close(db)
		return nil, err
	}
	if cfg.Store.DocumentPath != "" {
		if err := s.Load(ctx, cfg.Store.DocumentPath); err != nil {
			engine.Close(db)
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Engine() xrosedb.Interface { return s.engine }

func (s *Store) Factory() *layers.Factory { return s.factory }

func (s *Store) Registry() *models.Registry { return s.registry }

// Identifier is the in-memory database name, generated when the
// configuration left it empty.
func (s *Store) Identifier() string { return s.identifier }

func (s *Store) exec(ctx context.Context, q xrosedb.Query) error {
	if q.IsEmpty() {
		return nil
	}
	_, err := s.engine.ExecuteQuery(ctx, s.db, q)
	return err
}

func (s *Store) createTables(ctx context.Context) error {
	for _, q := range s.registry.CreateTableQueries() {
		if err := s.exec(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// migrate adds columns that documents written by older versions lack.
func (s *Store) migrate(ctx context.Context) error {
	columns, err := s.ColumnNames(ctx, models.LayerSchema.Name)
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[strings.ToUpper(c)] = true
	}
	for _, col := range []string{"STROKECOLORID", "FILLCOLORID"} {
		if present[col] {
			continue
		}
		zap.S().Infow("store: adding missing layer column", "column", col)
		if err := s.exec(ctx, xrosedb.NewQuery("ALTER TABLE _layers ADD COLUMN "+col+" INTEGER;")); err != nil {
			return err
		}
	}
	return nil
}

// StoreLayers replaces every stored layer and the color palette.
func (s *Store) StoreLayers(ctx context.Context, ls []layers.Layer) error {
	if err := s.exec(ctx, models.ColorSchema.DeleteAllQuery()); err != nil {
		return err
	}
	for _, schema := range s.registry.LayerTables() {
		if err := s.exec(ctx, schema.DeleteAllQuery()); err != nil {
			return err
		}
	}

	palette, err := internal.BatchInsertQuery(s.factory.BuildPalette(ls))
	if err != nil {
		return err
	}
	if err := s.exec(ctx, palette); err != nil {
		return err
	}

	batches := make(map[string]xrosedb.Query)
	for i, l := range ls {
		records, err := s.factory.StorageRecords(l, i)
		if err != nil {
			return err
		}
		for _, r := range records {
			schema := r.TableSchema()
			q, ok := batches[schema.Name]
			if !ok {
				q = schema.InsertQuery()
			}
			values, err := internal.ValueBindables(r, q.Keys)
			if err != nil {
				return err
			}
			batches[schema.Name] = q.WithBindings(values)
		}
	}
	for _, schema := range s.registry.LayerTables() {
		if q, ok := batches[schema.Name]; ok {
			if err := s.exec(ctx, q); err != nil {
				return err
			}
		}
	}
	zap.S().Debugw("store: layers saved", "layers", len(ls), "colors", len(s.factory.Colors()))
	return nil
}

func loadSpecializations[T models.LayerSpecialization](ctx context.Context, s *Store, schema *xrosedb.TableSchema) (map[int]models.LayerSpecialization, error) {
	rows, err := xrosedb.ExecuteCodableQuery[T](ctx, s.engine, s.db, schema.StoredValues())
	if err != nil {
		return nil, err
	}
	out := make(map[int]models.LayerSpecialization, len(rows))
	for _, r := range rows {
		out[r.LayerIdentifier()] = r
	}
	return out, nil
}

// ReadLayers rebuilds the stored layers in LAYERID order.
func (s *Store) ReadLayers(ctx context.Context) ([]layers.Layer, error) {
	colors, err := xrosedb.ExecuteCodableQuery[models.Color](ctx, s.engine, s.db, models.ColorSchema.StoredValues())
	if err != nil {
		return nil, err
	}
	s.factory.SetColors(colors)

	roots, err := xrosedb.ExecuteCodableQuery[models.Layer](ctx, s.engine, s.db, xrosedb.NewQuery("SELECT * FROM _layers ORDER BY LAYERID;"))
	if err != nil {
		return nil, err
	}

	byType := make(map[string]map[int]models.LayerSpecialization, 5)
	loaders := []struct {
		typeName string
		load     func() (map[int]models.LayerSpecialization, error)
	}{
		{models.LayerTypeCore, func() (map[int]models.LayerSpecialization, error) {
			return loadSpecializations[models.LayerCore](ctx, s, models.LayerCoreSchema)
		}},
		{models.LayerTypeText, func() (map[int]models.LayerSpecialization, error) {
			return loadSpecializations[models.LayerText](ctx, s, models.LayerTextSchema)
		}},
		{models.LayerTypeLineArrow, func() (map[int]models.LayerSpecialization, error) {
			return loadSpecializations[models.LayerLineArrow](ctx, s, models.LayerLineArrowSchema)
		}},
		{models.LayerTypeGrid, func() (map[int]models.LayerSpecialization, error) {
			return loadSpecializations[models.LayerGrid](ctx, s, models.LayerGridSchema)
		}},
		{models.LayerTypeData, func() (map[int]models.LayerSpecialization, error) {
			return loadSpecializations[models.LayerData](ctx, s, models.LayerDataSchema)
		}},
	}
	for _, l := range loaders {
		specs, err := l.load()
		if err != nil {
			return nil, err
		}
		byType[l.typeName] = specs
	}

	out := make([]layers.Layer, 0, len(roots))
	for _, root := range roots {
		spec, ok := byType[root.Type][root.LayerID]
		if !ok {
			if s.strict {
				return nil, fmt.Errorf("%w: layer %d of type %q has no detail row", layers.ErrInvalidLayerIdentifiable, root.LayerID, root.Type)
			}
			zap.S().Warnw("store: skipping layer without detail row", "layer", root.LayerID, "type", root.Type)
			continue
		}
		layer, err := s.factory.DomainLayer(root, spec)
		if err != nil {
			return nil, err
		}
		out = append(out, layer)
	}
	return out, nil
}

func (s *Store) single(ctx context.Context, schema *xrosedb.TableSchema, record xrosedb.TableRepresentable) error {
	if err := s.exec(ctx, schema.DeleteAllQuery()); err != nil {
		return err
	}
	q, err := internal.InsertQuery(record)
	if err != nil {
		return err
	}
	return s.exec(ctx, q)
}

// StoreGeometry replaces the geometry row.
func (s *Store) StoreGeometry(ctx context.Context, g models.Geometry) error {
	return s.single(ctx, models.GeometrySchema, g)
}

// Geometry returns the geometry row.
func (s *Store) Geometry(ctx context.Context) (models.Geometry, error) {
	rows, err := xrosedb.ExecuteCodableQuery[models.Geometry](ctx, s.engine, s.db, models.GeometrySchema.StoredValues())
	if err != nil {
		return models.Geometry{}, err
	}
	if len(rows) == 0 {
		return models.Geometry{}, xrosedb.NewDataNotFoundError(models.GeometrySchema.Name)
	}
	return rows[0], nil
}

// StoreWindowSize replaces the window size row.
func (s *Store) StoreWindowSize(ctx context.Context, w models.WindowControllerSize) error {
	return s.single(ctx, models.WindowControllerSizeSchema, w)
}

// WindowSize returns the window size row.
func (s *Store) WindowSize(ctx context.Context) (models.WindowControllerSize, error) {
	rows, err := xrosedb.ExecuteCodableQuery[models.WindowControllerSize](ctx, s.engine, s.db, models.WindowControllerSizeSchema.StoredValues())
	if err != nil {
		return models.WindowControllerSize{}, err
	}
	if len(rows) == 0 {
		return models.WindowControllerSize{}, xrosedb.NewDataNotFoundError(models.WindowControllerSizeSchema.Name)
	}
	return rows[0], nil
}

// AddDataSet stores a dataset definition.
func (s *Store) AddDataSet(ctx context.Context, d models.DataSet) error {
	q, err := internal.InsertQuery(d)
	if err != nil {
		return err
	}
	return s.exec(ctx, q)
}

// DataSets returns every dataset definition ordered by id.
func (s *Store) DataSets(ctx context.Context) ([]models.DataSet, error) {
	return xrosedb.ExecuteCodableQuery[models.DataSet](ctx, s.engine, s.db, xrosedb.NewQuery("SELECT * FROM _datasets ORDER BY _id;"))
}

// Tables returns every table of the document in creation order.
func (s *Store) Tables(ctx context.Context) ([]models.TableSchemaRow, error) {
	return xrosedb.ExecuteCodableQuery[models.TableSchemaRow](ctx, s.engine, s.db, models.TablesQuery())
}

// TableNames returns the imported data tables, excluding document tables.
func (s *Store) TableNames(ctx context.Context) ([]string, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		if !xrosedb.IsDocumentTable(t.Name) {
			names = append(names, t.Name)
		}
	}
	return names, nil
}

// ColumnNames returns the column names of table in declaration order.
func (s *Store) ColumnNames(ctx context.Context, table string) ([]string, error) {
	columns, err := s.engine.Columns(ctx, s.db, table)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names, nil
}

// Count returns the number of rows in table.
func (s *Store) Count(ctx context.Context, table string) (int64, error) {
	q := xrosedb.NewQuery("SELECT COUNT(*) FROM " + quoteName(table) + ";")
	rows, err := xrosedb.ExecuteCodableQuery[models.RecordCount](ctx, s.engine, s.db, q)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, xrosedb.NewDataNotFoundError(table)
	}
	return rows[0].Count, nil
}

// NextDataSetID returns one more than the largest stored dataset id.
func (s *Store) NextDataSetID(ctx context.Context) (int, error) {
	sets, err := s.DataSets(ctx)
	if err != nil {
		return 0, err
	}
	next := 1
	for _, d := range sets {
		if d.ID >= next {
			next = d.ID + 1
		}
	}
	return next, nil
}

// Query runs sql with optional bindings and returns the raw rows.
func (s *Store) Query(ctx context.Context, sql string, bindings ...any) ([]xrosedb.Row, error) {
	q := xrosedb.NewQuery(sql)
	if len(bindings) > 0 {
		q = q.WithBindings(bindings)
	}
	return s.engine.ExecuteQuery(ctx, s.db, q)
}

// Save writes the document to path.
func (s *Store) Save(ctx context.Context, path string) error {
	return s.engine.Backup(ctx, s.db, path)
}

// Load replaces the document with the one at path.
func (s *Store) Load(ctx context.Context, path string) error {
	if err := s.engine.Restore(ctx, s.db, path); err != nil {
		return err
	}
	// older documents may predate some tables
	if err := s.createTables(ctx); err != nil {
		return err
	}
	return s.migrate(ctx)
}

// Close releases the database.
func (s *Store) Close() error {
	return s.engine.Close(s.db)
}
