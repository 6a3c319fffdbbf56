package internal

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lychee-technology/xrosedb"
	"go.uber.org/zap"
)

// Declared column types that hold booleans. SQLite has no boolean storage class.
var booleanAliases = map[string]struct{}{
	"bool":    {},
	"boolean": {},
	"bit":     {},
}

// Text values that decode to true in a boolean column.
var truthyText = map[string]struct{}{
	"true": {},
	"yes":  {},
	"1":    {},
	"t":    {},
	"y":    {},
}

// sqliteTimeFormat matches the text SQLite date functions produce.
const sqliteTimeFormat = "2006-01-02 15:04:05.999999999-07:00"

// IsBooleanDeclType reports whether a declared column type is a boolean alias.
func IsBooleanDeclType(declType string) bool {
	_, ok := booleanAliases[strings.ToLower(strings.TrimSpace(declType))]
	return ok
}

// StorageClassOf returns the storage class of a scanned cell.
func StorageClassOf(raw any) (xrosedb.StorageClass, bool) {
	switch raw.(type) {
	case nil:
		return xrosedb.StorageNull, true
	case int64, bool:
		return xrosedb.StorageInteger, true
	case float64:
		return xrosedb.StorageFloat, true
	case string, time.Time:
		return xrosedb.StorageText, true
	case []byte:
		return xrosedb.StorageBlob, true
	}
	return "", false
}

// DecodeColumn turns a scanned cell into a column value. The declared type
// overrides the runtime storage class only for boolean aliases. ok is false
// when the column must be left out of the row.
func DecodeColumn(name, declType string, raw any) (string, xrosedb.ColumnValue, bool) {
	if !utf8.ValidString(name) {
		zap.S().Debugw("omitting column with invalid name")
		return "", xrosedb.ColumnValue{}, false
	}
	if _, known := StorageClassOf(raw); !known {
		zap.S().Debugw("omitting column with unknown storage class", "column", name, "goType", fmt.Sprintf("%T", raw))
		return "", xrosedb.ColumnValue{}, false
	}

	if IsBooleanDeclType(declType) {
		return name, xrosedb.BooleanColumn(decodeBoolean(raw)), true
	}

	switch v := raw.(type) {
	case nil:
		return name, xrosedb.NullColumn(), true
	case int64:
		return name, xrosedb.IntegerColumn(v), true
	case bool:
		if v {
			return name, xrosedb.IntegerColumn(1), true
		}
		return name, xrosedb.IntegerColumn(0), true
	case float64:
		return name, xrosedb.FloatColumn(v), true
	case string:
		if !utf8.ValidString(v) {
			zap.S().Debugw("omitting column with invalid text", "column", name)
			return "", xrosedb.ColumnValue{}, false
		}
		return name, xrosedb.TextColumn(v), true
	case time.Time:
		return name, xrosedb.TextColumn(v.Format(sqliteTimeFormat)), true
	case []byte:
		return name, xrosedb.BlobColumn(v), true
	}
	return "", xrosedb.ColumnValue{}, false
}

func decodeBoolean(raw any) bool {
	switch v := raw.(type) {
	case int64:
		return v > 0
	case bool:
		return v
	case float64:
		return v > 0
	case string:
		_, ok := truthyText[strings.ToLower(v)]
		return ok
	case time.Time:
		return false
	}
	// blob and null
	return false
}
