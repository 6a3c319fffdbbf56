package internal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lychee-technology/xrosedb"
	"go.uber.org/zap"
)

// SQLiteInterface prepares, binds, steps and finalizes queries against a
// SQLite handle. It holds no per-connection state and performs no locking.
type SQLiteInterface struct {
	busyTimeout  time.Duration
	queryTimeout time.Duration
	logQueries   bool
	slowQuery    time.Duration
}

var _ xrosedb.Interface = (*SQLiteInterface)(nil)

// NewSQLiteInterface creates an executor from store and logging settings.
func NewSQLiteInterface(store xrosedb.StoreConfig, logging xrosedb.LoggingConfig) *SQLiteInterface {
	return &SQLiteInterface{
		busyTimeout:  store.BusyTimeout,
		queryTimeout: store.QueryTimeout,
		logQueries:   logging.LogQueries,
		slowQuery:    logging.SlowQueryThreshold,
	}
}

// DefaultSQLiteInterface creates an executor with default settings.
func DefaultSQLiteInterface() *SQLiteInterface {
	cfg := xrosedb.DefaultConfig()
	return NewSQLiteInterface(cfg.Store, cfg.Logging)
}

// CreateInMemoryStore opens a shared-cache in-memory database named by
// identifier, or by a fresh uuid when identifier is empty. The store lives
// as long as the returned handle stays open.
func (s *SQLiteInterface) CreateInMemoryStore(ctx context.Context, identifier string) (*sql.DB, error) {
	if identifier == "" {
		identifier = uuid.NewString()
	}
	db, err := openPinned(ctx, inMemoryDSN(identifier, s.busyTimeout), identifier)
	if err != nil {
		return nil, err
	}
	zap.S().Debugw("created in-memory store", "identifier", identifier, "driver", driverName)
	return db, nil
}

// OpenDatabase opens, creating if needed, a database file.
func (s *SQLiteInterface) OpenDatabase(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, xrosedb.NewOpenFailureError(path, errors.New("empty path"))
	}
	return openPinned(ctx, fileDSN(path, s.busyTimeout), path)
}

// Close closes a handle.
func (s *SQLiteInterface) Close(db *sql.DB) error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return s.engineFailure(err)
	}
	return nil
}

// ExecuteQuery prepares q once and runs each of its subqueries against the
// same statement, collecting every produced row. The statement is closed on
// every path. Prepare and bind failures return no rows; a step failure
// returns the rows collected so far together with the error.
func (s *SQLiteInterface) ExecuteQuery(ctx context.Context, db *sql.DB, q xrosedb.Query) ([]xrosedb.Row, error) {
	if db == nil {
		return nil, xrosedb.NewInvalidStatementError("nil database handle")
	}
	if q.IsEmpty() {
		return nil, xrosedb.NewInvalidStatementError("empty sql")
	}
	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	start := time.Now()
	verb := statementVerb(q.SQL)
	subqueries := q.Subqueries()
	if s.logQueries {
		zap.S().Debugw("executing query", "sql", q.SQL, "keys", q.Keys, "subqueries", len(subqueries))
	}

	stmt, err := db.PrepareContext(ctx, q.SQL)
	if err != nil {
		serr := xrosedb.NewStatementError(q.SQL, err)
		if code, _, ok := engineError(err); ok {
			serr.EngineCode = code
		}
		EmitError(ctx, serr.Code)
		return nil, serr
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			zap.S().Warnw("sqlite: finalize statement failed", "sql", q.SQL, "err", cerr)
		}
	}()

	expected := CountPlaceholders(q.SQL)
	results := make([]xrosedb.Row, 0)
	for i, sub := range subqueries {
		if len(sub.Bindables) != expected {
			berr := xrosedb.NewInvalidBindingsError("[]any", sub.Bindables, sqliteRange)
			berr.Message = fmt.Sprintf("expected %d bindings, got %d", expected, len(sub.Bindables))
			berr.WithDetail("subquery", i)
			EmitError(ctx, berr.Code)
			return nil, berr
		}
		args, err := BindAll(sub.Bindables)
		if err != nil {
			EmitError(ctx, xrosedb.ErrCodeInvalidBindings)
			return nil, err
		}

		rows, err := stmt.QueryContext(ctx, args...)
		if err != nil {
			serr := s.engineFailure(err)
			zap.S().Warnw("sqlite: step failed", "sql", q.SQL, "subquery", i, "err", err)
			EmitError(ctx, errorCode(serr))
			return results, serr
		}
		collected, err := s.collectRows(rows)
		results = append(results, collected...)
		if err != nil {
			zap.S().Warnw("sqlite: step failed", "sql", q.SQL, "subquery", i, "err", err)
			EmitError(ctx, errorCode(err))
			return results, err
		}
	}

	elapsed := time.Since(start)
	EmitLatency(ctx, "execute", elapsed.Milliseconds())
	EmitRowCount(ctx, verb, int64(len(results)))
	EmitSubqueryCount(ctx, verb, int64(len(subqueries)))
	if s.slowQuery > 0 && elapsed >= s.slowQuery {
		zap.S().Warnw("slow query", "sql", q.SQL, "elapsed", elapsed, "subqueries", len(subqueries))
	}
	return results, nil
}

// ExecuteDataQuery runs q and returns its rows as a JSON array. When a
// subquery fails the rows collected before it are returned with the error.
func (s *SQLiteInterface) ExecuteDataQuery(ctx context.Context, db *sql.DB, q xrosedb.Query) ([]byte, error) {
	rows, err := s.ExecuteQuery(ctx, db, q)
	if rows == nil {
		return nil, err
	}
	data, merr := json.Marshal(rows)
	if merr != nil {
		return nil, xrosedb.NewDecodeFailureError("failed to encode rows", merr)
	}
	return data, err
}

func (s *SQLiteInterface) collectRows(rows *sql.Rows) ([]xrosedb.Row, error) {
	defer rows.Close()

	columns, err := rows.ColumnTypes()
	if err != nil {
		return nil, s.engineFailure(err)
	}

	out := make([]xrosedb.Row, 0)
	raw := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return out, s.engineFailure(err)
		}
		row := xrosedb.NewRow(len(columns))
		for i, col := range columns {
			if name, value, ok := DecodeColumn(col.Name(), col.DatabaseTypeName(), raw[i]); ok {
				row.Set(name, value)
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return out, s.engineFailure(err)
	}
	return out, nil
}

// engineFailure classifies a driver error.
func (s *SQLiteInterface) engineFailure(err error) error {
	if code, msg, ok := engineError(err); ok {
		return xrosedb.NewSQLError(code, msg).WithCause(err)
	}
	return xrosedb.NewUnknownEngineError("sqlite driver error", err)
}

func errorCode(err error) string {
	var se *xrosedb.StoreError
	if errors.As(err, &se) {
		return se.Code
	}
	return xrosedb.ErrCodeUnknownEngineError
}

func statementVerb(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
