package internal

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/lychee-technology/xrosedb"
	"go.uber.org/zap"
)

var sqliteHeader = []byte("SQLite format 3\x00")

// ValidateDocumentFile checks that path exists and holds a SQLite database.
func ValidateDocumentFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return xrosedb.NewFileNotFoundError(path)
		}
		return xrosedb.NewOpenFailureError(path, err)
	}
	defer f.Close()

	header := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, header); err != nil {
		return xrosedb.NewInvalidFileError(path, "file is too short to be a database")
	}
	if !bytes.Equal(header, sqliteHeader) {
		return xrosedb.NewInvalidFileError(path, "not a SQLite database")
	}
	return nil
}

// Backup writes a compacted copy of db to path, replacing any existing file.
func (s *SQLiteInterface) Backup(ctx context.Context, db *sql.DB, path string) error {
	start := time.Now()

	tmp, err := os.CreateTemp(filepath.Dir(path), ".xrose-*.tmp")
	if err != nil {
		return xrosedb.NewBackupFailedError(path, err)
	}
	tmpName := tmp.Name()
	tmp.Close()
	// VACUUM INTO refuses to overwrite a file
	if err := os.Remove(tmpName); err != nil {
		return xrosedb.NewBackupFailedError(path, err)
	}

	if _, err := s.ExecuteQuery(ctx, db, xrosedb.NewQuery("VACUUM INTO "+quoteLiteral(tmpName)+";")); err != nil {
		os.Remove(tmpName)
		return xrosedb.NewBackupFailedError(path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return xrosedb.NewBackupFailedError(path, err)
	}

	EmitLatency(ctx, "backup", time.Since(start).Milliseconds())
	zap.S().Debugw("database saved", "path", path, "elapsed", time.Since(start))
	return nil
}

// Restore replaces every table of db with the tables of the database file at path.
func (s *SQLiteInterface) Restore(ctx context.Context, db *sql.DB, path string) error {
	start := time.Now()
	if err := ValidateDocumentFile(path); err != nil {
		return err
	}

	// ATTACH is per connection, so every statement runs on one pinned conn.
	conn, err := db.Conn(ctx)
	if err != nil {
		return xrosedb.NewBackupFailedError(path, s.engineFailure(err))
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "ATTACH DATABASE "+quoteLiteral(path)+" AS source;"); err != nil {
		return xrosedb.NewBackupFailedError(path, s.engineFailure(err))
	}
	defer func() {
		if _, err := conn.ExecContext(context.Background(), "DETACH DATABASE source;"); err != nil {
			zap.S().Warnw("sqlite: detach failed", "path", path, "err", err)
		}
	}()

	sourceTables, err := tableDefinitions(ctx, conn, "source")
	if err != nil {
		return xrosedb.NewBackupFailedError(path, s.engineFailure(err))
	}
	if len(sourceTables) == 0 {
		return xrosedb.NewInvalidFileError(path, "database has no tables")
	}
	mainTables, err := tableDefinitions(ctx, conn, "main")
	if err != nil {
		return xrosedb.NewBackupFailedError(path, s.engineFailure(err))
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return xrosedb.NewBackupFailedError(path, s.engineFailure(err))
	}
	copyTables := func() error {
		for _, t := range mainTables {
			if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS main."+quoteIdent(t.name)+";"); err != nil {
				return err
			}
		}
		for _, t := range sourceTables {
			if _, err := tx.ExecContext(ctx, t.sql); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO main."+quoteIdent(t.name)+" SELECT * FROM source."+quoteIdent(t.name)+";"); err != nil {
				return err
			}
		}
		return nil
	}
	if err := copyTables(); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			zap.S().Warnw("sqlite: rollback failed", "path", path, "err", rerr)
		}
		return xrosedb.NewBackupFailedError(path, s.engineFailure(err))
	}
	if err := tx.Commit(); err != nil {
		return xrosedb.NewBackupFailedError(path, s.engineFailure(err))
	}

	EmitLatency(ctx, "restore", time.Since(start).Milliseconds())
	zap.S().Debugw("database loaded", "path", path, "tables", len(sourceTables), "elapsed", time.Since(start))
	return nil
}

type tableDefinition struct {
	name string
	sql  string
}

func tableDefinitions(ctx context.Context, conn *sql.Conn, schema string) ([]tableDefinition, error) {
	rows, err := conn.QueryContext(ctx, "SELECT name, sql FROM "+schema+".sqlite_master WHERE type = 'table' AND substr(name, 1, 7) <> 'sqlite_' ORDER BY rowid;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []tableDefinition
	for rows.Next() {
		var def tableDefinition
		if err := rows.Scan(&def.name, &def.sql); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}
