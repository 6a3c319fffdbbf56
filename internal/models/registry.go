package models

import (
	"sort"

	"github.com/lychee-technology/xrosedb"
)

// documentSchemas is the creation order of the document tables.
var documentSchemas = []*xrosedb.TableSchema{
	WindowControllerSizeSchema,
	GeometrySchema,
	LayerSchema,
	ColorSchema,
	DataSetSchema,
	LayerTextSchema,
	LayerLineArrowSchema,
	LayerCoreSchema,
	LayerGridSchema,
	LayerDataSchema,
}

// Registry indexes the document table schemas by name.
type Registry struct {
	ordered []*xrosedb.TableSchema
	byName  map[string]*xrosedb.TableSchema
}

// NewRegistry returns a registry over every document table.
func NewRegistry() *Registry {
	r := &Registry{
		ordered: documentSchemas,
		byName:  make(map[string]*xrosedb.TableSchema, len(documentSchemas)),
	}
	for _, s := range documentSchemas {
		r.byName[s.Name] = s
	}
	return r
}

// Schema looks up a table schema by name.
func (r *Registry) Schema(name string) (*xrosedb.TableSchema, error) {
	s, ok := r.byName[name]
	if !ok {
		return nil, xrosedb.NewDataNotFoundError(name)
	}
	return s, nil
}

// ListSchemas returns the sorted table names.
func (r *Registry) ListSchemas() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Schemas returns the schemas in creation order.
func (r *Registry) Schemas() []*xrosedb.TableSchema {
	out := make([]*xrosedb.TableSchema, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// CreateTableQueries returns one CREATE TABLE query per table in creation order.
func (r *Registry) CreateTableQueries() []xrosedb.Query {
	queries := make([]xrosedb.Query, 0, len(r.ordered))
	for _, s := range r.ordered {
		queries = append(queries, s.CreateTableQuery())
	}
	return queries
}

// LayerTables returns the tables rewritten when layers are stored, root first.
func (r *Registry) LayerTables() []*xrosedb.TableSchema {
	return []*xrosedb.TableSchema{
		LayerSchema,
		LayerTextSchema,
		LayerLineArrowSchema,
		LayerCoreSchema,
		LayerGridSchema,
		LayerDataSchema,
	}
}
