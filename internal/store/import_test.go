package store

import (
	"context"
	"strings"
	"testing"

	"github.com/lychee-technology/xrosedb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bedsCSV = `station, azimuth, dip, note
A1, 120, 12.5, cross bed
A2, 95, 8,
A3, , 10.25, "foreset, steep"
A4, 310, 7, ripple
`

func TestImportCSV(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	result, err := s.ImportCSV(ctx, "beds", strings.NewReader(bedsCSV), 2)
	require.NoError(t, err)
	assert.Equal(t, "beds", result.Table)
	assert.Equal(t, 4, result.Rows)
	assert.Equal(t, []ImportedColumn{
		{Name: "station", Type: xrosedb.StorageText},
		{Name: "azimuth", Type: xrosedb.StorageInteger},
		{Name: "dip", Type: xrosedb.StorageFloat},
		{Name: "note", Type: xrosedb.StorageText},
	}, result.Columns)
	assert.Contains(t, result.Summary(), "imported 4 rows into beds (4 columns)")

	n, err := s.Count(ctx, "beds")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	names, err := s.TableNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"beds"}, names)

	rows, err := s.Query(ctx, "SELECT azimuth, dip, note FROM beds WHERE station = ?;", "A3")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	azimuth, _ := rows[0].Get("azimuth")
	assert.True(t, azimuth.IsNull())
	dip, _ := rows[0].Get("dip")
	assert.Equal(t, 10.25, dip.Float64())
	note, _ := rows[0].Get("note")
	assert.Equal(t, "foreset, steep", note.Text())

	rows, err = s.Query(ctx, "SELECT note FROM beds WHERE station = 'A2';")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	note, _ = rows[0].Get("note")
	assert.True(t, note.IsNull())
}

func TestImportCSVQuotesNames(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, err := s.ImportCSV(ctx, `field "notes"`, strings.NewReader("select,from\n1,2\n"), 0)
	require.NoError(t, err)

	columns, err := s.ColumnNames(ctx, `field "notes"`)
	require.NoError(t, err)
	assert.Equal(t, []string{"select", "from"}, columns)

	n, err := s.Count(ctx, `field "notes"`)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestImportCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		table string
		input string
		check func(error) bool
	}{
		{
			name:  "document table",
			table: "_layers",
			input: "a\n1\n",
			check: func(err error) bool { return isCode(err, xrosedb.ErrCodeInvalidStatement) },
		},
		{
			name:  "empty input",
			table: "empty",
			input: "",
			check: xrosedb.IsDecodeFailure,
		},
		{
			name:  "ragged rows",
			table: "ragged",
			input: "a,b\n1,2\n3\n",
			check: xrosedb.IsDecodeFailure,
		},
		{
			name:  "duplicate column",
			table: "dup",
			input: "a,a\n1,2\n",
			check: xrosedb.IsStatementError,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			_, err := s.ImportCSV(context.Background(), tt.table, strings.NewReader(tt.input), 10)
			require.Error(t, err)
			assert.True(t, tt.check(err), err.Error())
		})
	}
}

func TestInferColumns(t *testing.T) {
	columns := inferColumns([]string{" a ", "b", "c", "d"}, [][]string{
		{"1", "1.5", "x", ""},
		{"-2", "3", "4", ""},
	})
	assert.Equal(t, []ImportedColumn{
		{Name: "a", Type: xrosedb.StorageInteger},
		{Name: "b", Type: xrosedb.StorageFloat},
		{Name: "c", Type: xrosedb.StorageText},
		{Name: "d", Type: xrosedb.StorageInteger},
	}, columns)
}

func TestImportCSVNonFiniteWordsStayText(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	assert.Equal(t, []ImportedColumn{
		{Name: "label", Type: xrosedb.StorageText},
		{Name: "dip", Type: xrosedb.StorageFloat},
	}, inferColumns([]string{"label", "dip"}, [][]string{{"nan", "1.5"}, {"inf", "2"}, {"-Infinity", "3"}}))

	result, err := s.ImportCSV(ctx, "labels", strings.NewReader("label\nnan\ninf\n"), 0)
	require.NoError(t, err)
	assert.Equal(t, xrosedb.StorageText, result.Columns[0].Type)

	rows, err := s.Query(ctx, "SELECT label FROM labels ORDER BY rowid;")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	first, _ := rows[0].Get("label")
	assert.Equal(t, "nan", first.Text())
	second, _ := rows[1].Get("label")
	assert.Equal(t, "inf", second.Text())
}
