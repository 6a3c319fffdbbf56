package internal

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/lychee-technology/xrosedb"
)

// Container reads typed fields out of one record's JSON object. The first
// failure is kept and every later read returns a zero value, so a record's
// UnmarshalJSON can read all fields and check Err once.
type Container struct {
	fields map[string]json.RawMessage
	err    error
}

// NewContainer parses a JSON object.
func NewContainer(data []byte) (*Container, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, xrosedb.NewFieldErrorWithCause(xrosedb.ErrCodeInvalidJSON, "record is not a JSON object", "", err)
	}
	return &Container{fields: fields}, nil
}

// Err returns the first decode failure.
func (c *Container) Err() error {
	return c.err
}

// Has reports whether field is present and not null.
func (c *Container) Has(field string) bool {
	raw, ok := c.fields[field]
	return ok && !isNull(raw)
}

func (c *Container) fail(code, message, field string) {
	if c.err == nil {
		c.err = xrosedb.NewFieldError(code, message, field)
	}
}

func (c *Container) required(field string) (json.RawMessage, bool) {
	if c.err != nil {
		return nil, false
	}
	raw, ok := c.fields[field]
	if !ok || isNull(raw) {
		c.fail(xrosedb.ErrCodeRequiredFieldMissing, "required field is missing", field)
		return nil, false
	}
	return raw, true
}

// Int64 decodes a required integer. Integral floats are accepted.
func (c *Container) Int64(field string) int64 {
	raw, ok := c.required(field)
	if !ok {
		return 0
	}
	v, ok := parseInteger(raw)
	if !ok {
		c.fail(xrosedb.ErrCodeTypeMismatch, "expected integer", field)
	}
	return v
}

// Int decodes a required integer.
func (c *Container) Int(field string) int {
	return int(c.Int64(field))
}

// Int32 decodes a required 32-bit integer.
func (c *Container) Int32(field string) int32 {
	v := c.Int64(field)
	if v < math.MinInt32 || v > math.MaxInt32 {
		c.fail(xrosedb.ErrCodeTypeMismatch, "integer out of 32-bit range", field)
		return 0
	}
	return int32(v)
}

// IntOr decodes an optional integer, returning def when absent.
func (c *Container) IntOr(field string, def int) int {
	if !c.Has(field) {
		return def
	}
	return c.Int(field)
}

// Float64 decodes a required number.
func (c *Container) Float64(field string) float64 {
	raw, ok := c.required(field)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		c.fail(xrosedb.ErrCodeTypeMismatch, "expected number", field)
		return 0
	}
	return f
}

// Float32 decodes a required number at single precision.
func (c *Container) Float32(field string) float32 {
	raw, ok := c.required(field)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(string(raw), 32)
	if err != nil {
		c.fail(xrosedb.ErrCodeTypeMismatch, "expected number", field)
		return 0
	}
	return float32(f)
}

// String decodes a required string.
func (c *Container) String(field string) string {
	raw, ok := c.required(field)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		c.fail(xrosedb.ErrCodeTypeMismatch, "expected string", field)
		return ""
	}
	return s
}

// OptionalString decodes a string if present.
func (c *Container) OptionalString(field string) *string {
	if c.err != nil || !c.Has(field) {
		return nil
	}
	s := c.String(field)
	if c.err != nil {
		return nil
	}
	return &s
}

// Bytes decodes a required blob. Blobs arrive base64 encoded; text that is
// not base64 is taken as raw bytes, which is how older documents stored them.
func (c *Container) Bytes(field string) []byte {
	s := c.String(field)
	if c.err != nil {
		return nil
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b
	}
	return []byte(s)
}

// OptionalBytes decodes a blob if present.
func (c *Container) OptionalBytes(field string) []byte {
	if c.err != nil || !c.Has(field) {
		return nil
	}
	return c.Bytes(field)
}

// Bool decodes a required boolean. Booleans may have been stored as JSON
// booleans, as integers where 1 is true, or as text equal to "true".
func (c *Container) Bool(field string) bool {
	raw, ok := c.required(field)
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	if i, ok := parseInteger(raw); ok {
		return i == 1
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.EqualFold(s, "true")
	}
	c.fail(xrosedb.ErrCodeTypeMismatch, "expected boolean", field)
	return false
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func parseInteger(raw json.RawMessage) (int64, bool) {
	s := string(bytes.TrimSpace(raw))
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
