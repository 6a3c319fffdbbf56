package internal

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"math"
	"strings"

	"github.com/lychee-technology/xrosedb"
)

// ValueBindables returns, for each key in order, the record's value for that
// column coerced to the schema's declared field kind. Absent or null fields
// yield nil, so callers may bind any subset of columns in any order.
func ValueBindables(record xrosedb.TableRepresentable, keys []string) ([]any, error) {
	fields, err := structuralFields(record)
	if err != nil {
		return nil, err
	}

	schema := record.TableSchema()
	bindables := make([]any, 0, len(keys))
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok || raw == nil {
			bindables = append(bindables, nil)
			continue
		}
		kind, declared := schema.FieldKind(key)
		if !declared {
			v, err := looseValue(raw)
			if err != nil {
				return nil, err
			}
			bindables = append(bindables, v)
			continue
		}
		v, err := coerceField(kind, raw)
		if err != nil {
			return nil, err
		}
		bindables = append(bindables, v)
	}
	return bindables, nil
}

// InsertQuery returns the record's insert statement bound to its values.
func InsertQuery(record xrosedb.TableRepresentable) (xrosedb.Query, error) {
	q := record.TableSchema().InsertQuery()
	if q.IsEmpty() {
		return q, nil
	}
	values, err := ValueBindables(record, q.Keys)
	if err != nil {
		return xrosedb.Query{}, err
	}
	return q.WithBindings(values), nil
}

// BatchInsertQuery returns one insert statement with a subquery per record.
// All records must share a table.
func BatchInsertQuery[T xrosedb.TableRepresentable](records []T) (xrosedb.Query, error) {
	if len(records) == 0 {
		return xrosedb.Query{}, nil
	}
	q := records[0].TableSchema().InsertQuery()
	if q.IsEmpty() {
		return q, nil
	}
	for _, r := range records {
		values, err := ValueBindables(r, q.Keys)
		if err != nil {
			return xrosedb.Query{}, err
		}
		q = q.WithBindings(values)
	}
	return q, nil
}

// structuralFields encodes a record to its JSON object form, keeping numbers exact.
func structuralFields(record any) (map[string]any, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, xrosedb.NewDecodeFailureError("record could not be encoded", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, xrosedb.NewDecodeFailureError("record is not an object", err)
	}
	return fields, nil
}

func coerceField(kind xrosedb.FieldKind, raw any) (any, error) {
	switch kind {
	case xrosedb.FieldBlob:
		switch v := raw.(type) {
		case string:
			if b, err := base64.StdEncoding.DecodeString(v); err == nil {
				return b, nil
			}
			return []byte(v), nil
		}
	case xrosedb.FieldBool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case json.Number:
			f, err := v.Float64()
			if err == nil {
				return f != 0, nil
			}
		case string:
			return strings.EqualFold(v, "true"), nil
		}
	case xrosedb.FieldInt32:
		if n, ok := raw.(json.Number); ok {
			i, err := n.Int64()
			if err == nil && i >= math.MinInt32 && i <= math.MaxUint32 {
				if i > math.MaxInt32 {
					return uint32(i), nil
				}
				return int32(i), nil
			}
		}
	case xrosedb.FieldInt64:
		if n, ok := raw.(json.Number); ok {
			if i, err := n.Int64(); err == nil {
				return i, nil
			}
		}
	case xrosedb.FieldFloat:
		if n, ok := raw.(json.Number); ok {
			if f, err := n.Float64(); err == nil {
				return f, nil
			}
		}
	case xrosedb.FieldText:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	}
	return nil, xrosedb.NewInvalidBindingsError(kind.String(), raw, 0)
}

func looseValue(raw any) (any, error) {
	switch v := raw.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, xrosedb.NewInvalidBindingsError("number", v.String(), 0)
		}
		return f, nil
	case string, bool:
		return v, nil
	}
	return nil, xrosedb.NewUnsupportedTypeError(raw)
}
