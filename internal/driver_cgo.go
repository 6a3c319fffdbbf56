//go:build cgo_sqlite

// CGO SQLite driver using mattn/go-sqlite3.
// Build with: go build -tags cgo_sqlite
// Requires: CGO_ENABLED=1
package internal

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

const (
	driverName = "sqlite3"
	driverType = "cgo"
)

// dsnWithBusyTimeout appends the driver's busy timeout parameter.
func dsnWithBusyTimeout(base string, ms int64) string {
	if ms <= 0 {
		return base
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", base, paramSeparator(base), ms)
}

// engineError extracts the primary result code and message of a driver error.
func engineError(err error) (int, string, bool) {
	var se sqlite3.Error
	if errors.As(err, &se) {
		return int(se.Code), se.Error(), true
	}
	return 0, "", false
}
