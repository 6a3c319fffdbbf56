package xrosedb

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies the parameter slot encoding of a bindable value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindInt32
	KindInt64
	KindFloat64
	KindText
	KindBlob
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "double"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	}
	return "unknown"
}

// Value is a typed value ready to be attached to one positional parameter.
// Integers no wider than 32 bits use KindInt32, wider ones KindInt64; both
// keep the widened value in an int64 so unsigned 32-bit values are never
// truncated.
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
	b    []byte
}

// NullValue returns the null bindable.
func NullValue() Value { return Value{kind: KindNull} }

// NewValue converts a Go value into a bindable Value.
func NewValue(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return x, nil
	case bool:
		if x {
			return Value{kind: KindBool, i: 1}, nil
		}
		return Value{kind: KindBool, i: 0}, nil
	case int8:
		return Value{kind: KindInt32, i: int64(x)}, nil
	case int16:
		return Value{kind: KindInt32, i: int64(x)}, nil
	case int32:
		return Value{kind: KindInt32, i: int64(x)}, nil
	case uint8:
		return Value{kind: KindInt32, i: int64(x)}, nil
	case uint16:
		return Value{kind: KindInt32, i: int64(x)}, nil
	case uint32:
		return Value{kind: KindInt32, i: int64(x)}, nil
	case int:
		return Value{kind: KindInt64, i: int64(x)}, nil
	case int64:
		return Value{kind: KindInt64, i: x}, nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return Value{}, NewInvalidBindingsError("UInt", x, 0)
		}
		return Value{kind: KindInt64, i: int64(x)}, nil
	case uint64:
		if x > math.MaxInt64 {
			return Value{}, NewInvalidBindingsError("UInt64", x, 0)
		}
		return Value{kind: KindInt64, i: int64(x)}, nil
	case float32:
		return Value{kind: KindFloat64, f: float64(x)}, nil
	case float64:
		return Value{kind: KindFloat64, f: x}, nil
	case string:
		return Value{kind: KindText, s: x}, nil
	case []byte:
		if x == nil {
			return Value{}, NewInvalidBindingsError("data", nil, 0)
		}
		return Value{kind: KindBlob, b: bytes.Clone(x)}, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Value{kind: KindInt64, i: i}, nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, NewInvalidBindingsError("number", x.String(), 0)
		}
		return Value{kind: KindFloat64, f: f}, nil
	default:
		return Value{}, NewUnsupportedTypeError(v)
	}
}

// Kind returns the slot encoding.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v binds NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int64 returns the integer payload of bool, int32 and int64 values.
func (v Value) Int64() int64 { return v.i }

// Float64 returns the payload of a double value.
func (v Value) Float64() float64 { return v.f }

// Text returns the payload of a text value.
func (v Value) Text() string { return v.s }

// Blob returns the payload of a blob value.
func (v Value) Blob() []byte { return v.b }

// Driver returns the database/sql argument for v.
func (v Value) Driver() any {
	switch v.kind {
	case KindBool, KindInt32, KindInt64:
		return v.i
	case KindFloat64:
		return v.f
	case KindText:
		return v.s
	case KindBlob:
		return v.b
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindBool, KindInt32, KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.s)
	case KindBlob:
		return fmt.Sprintf("<%d bytes>", len(v.b))
	}
	return "?"
}

// ColumnKind identifies the variant of a decoded cell.
type ColumnKind uint8

const (
	ColumnNull ColumnKind = iota
	ColumnInteger
	ColumnFloat
	ColumnText
	ColumnBlob
	ColumnBoolean
)

func (k ColumnKind) String() string {
	switch k {
	case ColumnNull:
		return "null"
	case ColumnInteger:
		return "integer"
	case ColumnFloat:
		return "float"
	case ColumnText:
		return "text"
	case ColumnBlob:
		return "blob"
	case ColumnBoolean:
		return "boolean"
	}
	return "unknown"
}

// ColumnValue is a typed value decoded from one cell of one result row.
type ColumnValue struct {
	kind ColumnKind
	i    int64
	f    float64
	s    string
	b    []byte
	t    bool
}

func NullColumn() ColumnValue           { return ColumnValue{kind: ColumnNull} }
func IntegerColumn(i int64) ColumnValue { return ColumnValue{kind: ColumnInteger, i: i} }
func FloatColumn(f float64) ColumnValue { return ColumnValue{kind: ColumnFloat, f: f} }
func TextColumn(s string) ColumnValue   { return ColumnValue{kind: ColumnText, s: s} }
func BlobColumn(b []byte) ColumnValue   { return ColumnValue{kind: ColumnBlob, b: b} }
func BooleanColumn(t bool) ColumnValue  { return ColumnValue{kind: ColumnBoolean, t: t} }
func (c ColumnValue) Kind() ColumnKind  { return c.kind }
func (c ColumnValue) IsNull() bool      { return c.kind == ColumnNull }
func (c ColumnValue) Int64() int64      { return c.i }
func (c ColumnValue) Float64() float64  { return c.f }
func (c ColumnValue) Text() string      { return c.s }
func (c ColumnValue) Blob() []byte      { return c.b }
func (c ColumnValue) Bool() bool        { return c.t }

// Interface returns the payload as a plain Go value.
func (c ColumnValue) Interface() any {
	switch c.kind {
	case ColumnInteger:
		return c.i
	case ColumnFloat:
		return c.f
	case ColumnText:
		return c.s
	case ColumnBlob:
		return c.b
	case ColumnBoolean:
		return c.t
	}
	return nil
}

// String renders the value for display.
func (c ColumnValue) String() string {
	switch c.kind {
	case ColumnNull:
		return "NULL"
	case ColumnInteger:
		return strconv.FormatInt(c.i, 10)
	case ColumnFloat:
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	case ColumnText:
		return c.s
	case ColumnBlob:
		return fmt.Sprintf("<%d bytes>", len(c.b))
	case ColumnBoolean:
		return strconv.FormatBool(c.t)
	}
	return ""
}

// MarshalJSON encodes blobs as base64 strings and non-finite floats as null.
func (c ColumnValue) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case ColumnInteger:
		return []byte(strconv.FormatInt(c.i, 10)), nil
	case ColumnFloat:
		if math.IsInf(c.f, 0) || math.IsNaN(c.f) {
			return []byte("null"), nil
		}
		return json.Marshal(c.f)
	case ColumnText:
		return json.Marshal(c.s)
	case ColumnBlob:
		return json.Marshal(base64.StdEncoding.EncodeToString(c.b))
	case ColumnBoolean:
		return json.Marshal(c.t)
	}
	return []byte("null"), nil
}

// Row is an ordered mapping from column name to decoded value. Column order
// follows the query's result columns.
type Row struct {
	columns []string
	values  map[string]ColumnValue
}

// NewRow returns an empty row with room for n columns.
func NewRow(n int) Row {
	return Row{
		columns: make([]string, 0, n),
		values:  make(map[string]ColumnValue, n),
	}
}

// Set stores a value. A repeated name keeps its first position.
func (r *Row) Set(name string, v ColumnValue) {
	if r.values == nil {
		r.values = make(map[string]ColumnValue)
	}
	if _, ok := r.values[name]; !ok {
		r.columns = append(r.columns, name)
	}
	r.values[name] = v
}

// Get returns the value stored under name.
func (r Row) Get(name string) (ColumnValue, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Columns returns the column names in order.
func (r Row) Columns() []string { return r.columns }

// Len returns the number of columns.
func (r Row) Len() int { return len(r.columns) }

// MarshalJSON encodes the row as an object with keys in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := r.values[name].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Subquery is one bind-and-step cycle of a prepared statement.
type Subquery struct {
	Bindables []any
}

// Query is SQL text, the ordered column keys its placeholders stand for, and
// zero or more rows of bound values executed against one prepared statement.
type Query struct {
	SQL      string
	Keys     []string
	Bindings [][]any
}

// NewQuery returns a query with the given keys and no bindings.
func NewQuery(sql string, keys ...string) Query {
	return Query{SQL: sql, Keys: keys}
}

// IsEmpty reports whether the query has no SQL. Callers skip empty queries
// rather than executing them.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.SQL) == ""
}

// WithBindings returns a copy of q with additional subqueries.
func (q Query) WithBindings(rows ...[]any) Query {
	out := Query{SQL: q.SQL, Keys: q.Keys}
	out.Bindings = make([][]any, 0, len(q.Bindings)+len(rows))
	out.Bindings = append(out.Bindings, q.Bindings...)
	out.Bindings = append(out.Bindings, rows...)
	return out
}

// Subqueries returns one subquery per bindings row, or a single unbound
// subquery when there are none.
func (q Query) Subqueries() []Subquery {
	if len(q.Bindings) == 0 {
		return []Subquery{{}}
	}
	subs := make([]Subquery, len(q.Bindings))
	for i, b := range q.Bindings {
		subs[i] = Subquery{Bindables: b}
	}
	return subs
}

// StorageClass is the SQLite storage class or column affinity.
type StorageClass string

const (
	StorageInteger StorageClass = "INTEGER"
	StorageFloat   StorageClass = "FLOAT"
	StorageText    StorageClass = "TEXT"
	StorageBlob    StorageClass = "BLOB"
	StorageNull    StorageClass = "NULL"
	StorageNumeric StorageClass = "NUMERIC"
)

// ColumnInformation describes one column of a table.
type ColumnInformation struct {
	Index        int          `json:"index"`
	Name         string       `json:"name"`
	DeclaredType string       `json:"declaredType"`
	Affinity     StorageClass `json:"affinity"`
	Boolean      bool         `json:"boolean"`
	NotNull      bool         `json:"notNull"`
	PrimaryKey   bool         `json:"primaryKey"`
}
