package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/lychee-technology/xrosedb"
	"go.uber.org/zap"
)

const defaultImportBatch = 100

// ImportResult summarizes a CSV import.
type ImportResult struct {
	Table    string
	Columns  []ImportedColumn
	Rows     int
	Duration time.Duration
}

// ImportedColumn is one created column and its inferred affinity.
type ImportedColumn struct {
	Name string
	Type xrosedb.StorageClass
}

func (r *ImportResult) Summary() string {
	return fmt.Sprintf("imported %d rows into %s (%d columns) in %v", r.Rows, r.Table, len(r.Columns), r.Duration)
}

// ImportCSV creates table from the CSV in r and inserts every record. The
// header names the columns. A column is INTEGER when every non-empty value
// parses as an integer, FLOAT when every one parses as a number, TEXT
// otherwise. Empty values are stored as NULL.
func (s *Store) ImportCSV(ctx context.Context, table string, r io.Reader, batchSize int) (*ImportResult, error) {
	start := time.Now()
	if batchSize <= 0 {
		batchSize = defaultImportBatch
	}
	if xrosedb.IsDocumentTable(table) {
		return nil, xrosedb.NewInvalidStatementError("data table names must not start with an underscore").WithTable(table)
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, xrosedb.NewDecodeFailureError("failed to read CSV header", err)
	}
	records, err := reader.ReadAll()
	if err != nil {
		return nil, xrosedb.NewDecodeFailureError("failed to read CSV records", err)
	}

	columns := inferColumns(header, records)
	if err := s.exec(ctx, xrosedb.NewQuery(createDataTableSQL(table, columns))); err != nil {
		return nil, err
	}

	insert := insertDataSQL(table, columns)
	for lo := 0; lo < len(records); lo += batchSize {
		hi := min(lo+batchSize, len(records))
		q := xrosedb.NewQuery(insert)
		for _, rec := range records[lo:hi] {
			q = q.WithBindings(importBindables(columns, rec))
		}
		if err := s.exec(ctx, q); err != nil {
			return nil, err
		}
	}

	result := &ImportResult{Table: table, Columns: columns, Rows: len(records), Duration: time.Since(start)}
	zap.S().Infow("store: csv imported", "table", table, "rows", result.Rows, "elapsed", result.Duration)
	return result, nil
}

func inferColumns(header []string, records [][]string) []ImportedColumn {
	columns := make([]ImportedColumn, len(header))
	for i, name := range header {
		isInt, isFloat := true, true
		for _, rec := range records {
			if i >= len(rec) || rec[i] == "" {
				continue
			}
			if _, err := strconv.ParseInt(rec[i], 10, 64); err != nil {
				isInt = false
			}
			if f, err := strconv.ParseFloat(rec[i], 64); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				isFloat = false
			}
		}
		typ := xrosedb.StorageText
		switch {
		case isInt:
			typ = xrosedb.StorageInteger
		case isFloat:
			typ = xrosedb.StorageFloat
		}
		columns[i] = ImportedColumn{Name: strings.TrimSpace(name), Type: typ}
	}
	return columns
}

func importBindables(columns []ImportedColumn, rec []string) []any {
	values := make([]any, len(columns))
	for i, col := range columns {
		if i >= len(rec) || rec[i] == "" {
			continue
		}
		switch col.Type {
		case xrosedb.StorageInteger:
			v, _ := strconv.ParseInt(rec[i], 10, 64)
			values[i] = v
		case xrosedb.StorageFloat:
			v, _ := strconv.ParseFloat(rec[i], 64)
			values[i] = v
		default:
			values[i] = rec[i]
		}
	}
	return values
}

func quoteName(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func createDataTableSQL(table string, columns []ImportedColumn) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = quoteName(c.Name) + " " + string(c.Type)
	}
	return "CREATE TABLE " + quoteName(table) + " (" + strings.Join(defs, ", ") + ");"
}

func insertDataSQL(table string, columns []ImportedColumn) string {
	names := make([]string, len(columns))
	marks := make([]string, len(columns))
	for i, c := range columns {
		names[i] = quoteName(c.Name)
		marks[i] = "?"
	}
	return "INSERT INTO " + quoteName(table) + " (" + strings.Join(names, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ");"
}
