package xrosedb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		expect string
	}{
		{
			name:   "data not found",
			err:    NewDataNotFoundError("_geometryController"),
			expect: "[not_found:DATA_NOT_FOUND] table _geometryController: no rows",
		},
		{
			name:   "sql error",
			err:    NewSQLError(19, "UNIQUE constraint failed"),
			expect: "[sql:SQL_ERROR] engine code 19: UNIQUE constraint failed",
		},
		{
			name:   "binding",
			err:    NewInvalidBindingsError("UInt64", uint64(1<<63), 0),
			expect: "[binding:INVALID_BINDINGS] UInt64 (9223372036854775808): value could not be bound",
		},
		{
			name:   "cause appended",
			err:    NewDecodeFailureError("failed to decode rows", errors.New("bad json")),
			expect: "[decode:DECODE_FAILURE] failed to decode rows: bad json",
		},
		{
			name:   "field",
			err:    NewStoreError(ErrorTypeDecode, ErrCodeTypeMismatch, "expected integer").WithField("LAYERID"),
			expect: "[decode:TYPE_MISMATCH] field 'LAYERID': expected integer",
		},
		{
			name:   "plain",
			err:    NewInvalidStatementError("empty sql"),
			expect: "[statement:INVALID_STATEMENT] empty sql",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.err.Error())
		})
	}
}

func TestStoreErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("saving: %w", NewBackupFailedError("doc.xrose", errors.New("disk full")))

	assert.True(t, errors.Is(wrapped, ErrBackupFailed))
	assert.False(t, errors.Is(wrapped, ErrOpenFailure))
	assert.True(t, errors.Is(NewFileNotFoundError("x"), ErrFileNotFound))
	assert.True(t, errors.Is(NewUnsupportedTypeError(struct{}{}), ErrInvalidBindings))
	assert.True(t, errors.Is(NewStatementError("SELEC", errors.New("syntax")), ErrStatement))
}

func TestStoreErrorUnwrap(t *testing.T) {
	cause := NewFieldError(ErrCodeRequiredFieldMissing, "required field is missing", "NAME")
	err := NewDecodeFailureError("failed to decode rows", cause)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "NAME", fe.Field)
	assert.Equal(t, "[REQUIRED_FIELD_MISSING] required field is missing (field: NAME)", fe.Error())
}

func TestStoreErrorDetails(t *testing.T) {
	err := NewInvalidFileError("doc.xrose", "digest mismatch").
		WithTable("_layers").
		WithDetail("expected", "aa").
		WithDetail("actual", "bb")

	assert.Equal(t, "_layers", err.Table)
	assert.Equal(t, map[string]any{"expected": "aa", "actual": "bb"}, err.Details)
}

func TestClassificationHelpers(t *testing.T) {
	assert.True(t, IsDataNotFound(NewDataNotFoundError("t")))
	assert.True(t, IsDecodeFailure(NewDecodeFailureError("m", nil)))
	assert.True(t, IsInvalidBindings(NewInvalidBindingsError("data", nil, 0)))
	assert.True(t, IsStatementError(NewStatementError("x", nil)))
	assert.True(t, IsSQLError(NewSQLError(1, "m")))
	assert.True(t, IsStoreLifecycleError(NewOpenFailureError("p", nil)))
	assert.True(t, IsStoreLifecycleError(NewFileNotFoundError("p")))
	assert.True(t, IsStoreLifecycleError(NewInvalidFileError("p", "m")))
	assert.False(t, IsStoreLifecycleError(NewSQLError(1, "m")))
	assert.False(t, IsDataNotFound(errors.New("plain")))

	assert.Equal(t, 5, EngineCode(fmt.Errorf("wrapped: %w", NewSQLError(5, "busy"))))
	assert.Equal(t, 0, EngineCode(errors.New("plain")))
}

func TestFieldErrorWithCause(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewFieldErrorWithCause(ErrCodeInvalidJSON, "record is not a JSON object", "", cause)

	assert.Equal(t, "[INVALID_JSON] record is not a JSON object", err.Error())
	assert.ErrorIs(t, err, cause)
}
