package xrosedb

import (
	"context"
	"database/sql"
	"encoding/json"
)

// Interface is the query execution engine over a SQLite connection handle.
// The handle is shared; callers serialize access to it.
type Interface interface {
	// Store lifecycle
	CreateInMemoryStore(ctx context.Context, identifier string) (*sql.DB, error)
	OpenDatabase(ctx context.Context, path string) (*sql.DB, error)
	Close(db *sql.DB) error

	// Query execution
	ExecuteQuery(ctx context.Context, db *sql.DB, q Query) ([]Row, error)
	ExecuteDataQuery(ctx context.Context, db *sql.DB, q Query) ([]byte, error)

	// Introspection and file transfer
	Columns(ctx context.Context, db *sql.DB, table string) ([]ColumnInformation, error)
	Backup(ctx context.Context, db *sql.DB, path string) error
	Restore(ctx context.Context, db *sql.DB, path string) error
}

// ExecuteCodableQuery runs q and decodes the rows into T through their JSON
// form. Rows collected before a failing subquery are returned with its error.
func ExecuteCodableQuery[T any](ctx context.Context, engine Interface, db *sql.DB, q Query) ([]T, error) {
	data, err := engine.ExecuteDataQuery(ctx, db, q)
	if data == nil {
		return nil, err
	}
	var out []T
	if derr := json.Unmarshal(data, &out); derr != nil {
		return nil, NewDecodeFailureError("failed to decode rows", derr)
	}
	if out == nil {
		out = []T{}
	}
	return out, err
}
