package internal

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/lychee-technology/xrosedb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBind(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		expect any
	}{
		{name: "nil", input: nil, expect: nil},
		{name: "true", input: true, expect: int64(1)},
		{name: "false", input: false, expect: int64(0)},
		{name: "int8", input: int8(-8), expect: int64(-8)},
		{name: "int32 max", input: int32(math.MaxInt32), expect: int64(math.MaxInt32)},
		{name: "uint32 max", input: uint32(math.MaxUint32), expect: int64(math.MaxUint32)},
		{name: "int", input: 42, expect: int64(42)},
		{name: "int64 max", input: int64(math.MaxInt64), expect: int64(math.MaxInt64)},
		{name: "uint64 in range", input: uint64(math.MaxInt64), expect: int64(math.MaxInt64)},
		{name: "float32", input: float32(0.5), expect: float64(0.5)},
		{name: "float64", input: 3.25, expect: 3.25},
		{name: "string", input: "azimuth", expect: "azimuth"},
		{name: "empty blob", input: []byte{}, expect: []byte{}},
		{name: "blob", input: []byte{0xde, 0xad}, expect: []byte{0xde, 0xad}},
		{name: "json integer", input: json.Number("12"), expect: int64(12)},
		{name: "json float", input: json.Number("1.5"), expect: 1.5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := Bind(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestBindRejects(t *testing.T) {
	tests := []struct {
		name  string
		input any
	}{
		{name: "uint64 overflow", input: uint64(math.MaxUint64)},
		{name: "uint overflow", input: uint(math.MaxUint64)},
		{name: "nil blob", input: []byte(nil)},
		{name: "struct", input: struct{}{}},
		{name: "map", input: map[string]int{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bind(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, xrosedb.ErrInvalidBindings))
		})
	}
}

func TestBindAllReportsParameter(t *testing.T) {
	args, err := BindAll([]any{1, "x", uint64(math.MaxUint64)})
	require.Error(t, err)
	assert.Nil(t, args)

	var se *xrosedb.StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 3, se.Details["parameter"])
	assert.Equal(t, "UInt64", se.TypeName)
}

func TestBindAllBindsNullForNil(t *testing.T) {
	args, err := BindAll([]any{nil, 1, nil})
	require.NoError(t, err)
	assert.Equal(t, []any{nil, int64(1), nil}, args)
}

func TestValueKinds(t *testing.T) {
	tests := []struct {
		input any
		kind  xrosedb.ValueKind
	}{
		{input: nil, kind: xrosedb.KindNull},
		{input: true, kind: xrosedb.KindBool},
		{input: int16(3), kind: xrosedb.KindInt32},
		{input: uint32(3), kind: xrosedb.KindInt32},
		{input: int64(3), kind: xrosedb.KindInt64},
		{input: float32(3), kind: xrosedb.KindFloat64},
		{input: "3", kind: xrosedb.KindText},
		{input: []byte("3"), kind: xrosedb.KindBlob},
	}

	for _, tt := range tests {
		v, err := xrosedb.NewValue(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.kind, v.Kind(), "%T", tt.input)
	}
}

func TestCountPlaceholders(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		expect int
	}{
		{name: "none", sql: "SELECT 1;", expect: 0},
		{name: "positional", sql: "INSERT INTO t VALUES (?,?,?);", expect: 3},
		{name: "numbered", sql: "SELECT ?3;", expect: 3},
		{name: "repeated number", sql: "SELECT ?1, ?1;", expect: 1},
		{name: "bare after numbered", sql: "SELECT ?, ?5, ?;", expect: 6},
		{name: "named", sql: "SELECT :a, @b, $c;", expect: 3},
		{name: "repeated name", sql: "SELECT :a, :a, :b;", expect: 2},
		{name: "quoted literal", sql: "SELECT '?' , ?;", expect: 1},
		{name: "escaped quote", sql: "SELECT 'it''s ?', ?;", expect: 1},
		{name: "quoted identifier", sql: `SELECT "col?" FROM t WHERE x = ?;`, expect: 1},
		{name: "bracket identifier", sql: "SELECT [a?b] FROM t;", expect: 0},
		{name: "line comment", sql: "SELECT ? -- ?\n, ?;", expect: 2},
		{name: "block comment", sql: "SELECT /* ? ? */ ?;", expect: 1},
		{name: "lone colon", sql: "SELECT ':' || ?;", expect: 1},
		{name: "grid insert", sql: "INSERT INTO g VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)", expect: 23},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, CountPlaceholders(tt.sql))
		})
	}
}
