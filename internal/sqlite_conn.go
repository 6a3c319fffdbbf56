package internal

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lychee-technology/xrosedb"
	"go.uber.org/zap"
)

// DriverInfo describes the SQLite driver compiled into the binary.
type DriverInfo struct {
	DriverName string `json:"driverName"`
	DriverType string `json:"driverType"`
	IsCGO      bool   `json:"isCGO"`
}

// Driver returns the active SQLite driver.
func Driver() DriverInfo {
	return DriverInfo{
		DriverName: driverName,
		DriverType: driverType,
		IsCGO:      driverType == "cgo",
	}
}

func paramSeparator(dsn string) string {
	if strings.Contains(dsn, "?") {
		return "&"
	}
	return "?"
}

func inMemoryDSN(identifier string, busyTimeout time.Duration) string {
	return dsnWithBusyTimeout("file:"+identifier+"?mode=memory&cache=shared", busyTimeout.Milliseconds())
}

func fileDSN(path string, busyTimeout time.Duration) string {
	return dsnWithBusyTimeout(path, busyTimeout.Milliseconds())
}

// openPinned opens dsn with a pool of exactly one connection that is never
// recycled. A shared-cache in-memory database lives only while a connection
// to it is open.
func openPinned(ctx context.Context, dsn, label string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, xrosedb.NewOpenFailureError(label, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		if cerr := db.Close(); cerr != nil {
			zap.S().Warnw("sqlite: close after failed ping", "store", label, "err", cerr)
		}
		return nil, xrosedb.NewOpenFailureError(label, err)
	}
	return db, nil
}

// quoteIdent quotes an SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteLiteral quotes an SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// AffinityOf derives the column affinity SQLite assigns to a declared type.
func AffinityOf(declType string) xrosedb.StorageClass {
	t := strings.ToUpper(declType)
	switch {
	case strings.Contains(t, "INT"):
		return xrosedb.StorageInteger
	case strings.Contains(t, "CHAR"), strings.Contains(t, "CLOB"), strings.Contains(t, "TEXT"):
		return xrosedb.StorageText
	case t == "" || strings.Contains(t, "BLOB"):
		return xrosedb.StorageBlob
	case strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"), strings.Contains(t, "DOUB"):
		return xrosedb.StorageFloat
	}
	return xrosedb.StorageNumeric
}
