//go:build !cgo_sqlite

package internal

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
)

const (
	driverName = "sqlite"
	driverType = "purego"
)

// dsnWithBusyTimeout appends the driver's busy timeout parameter.
func dsnWithBusyTimeout(base string, ms int64) string {
	if ms <= 0 {
		return base
	}
	return fmt.Sprintf("%s%s_pragma=busy_timeout(%d)", base, paramSeparator(base), ms)
}

// engineError extracts the primary result code and message of a driver error.
func engineError(err error) (int, string, bool) {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() & 0xff, se.Error(), true
	}
	return 0, "", false
}
