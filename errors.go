package xrosedb

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType string

const (
	ErrorTypeNotFound  ErrorType = "not_found"
	ErrorTypeDecode    ErrorType = "decode"
	ErrorTypeStore     ErrorType = "store"
	ErrorTypeBinding   ErrorType = "binding"
	ErrorTypeStatement ErrorType = "statement"
	ErrorTypeSQL       ErrorType = "sql"
	ErrorTypeInternal  ErrorType = "internal"
)

// Error codes
const (
	ErrCodeDataNotFound       = "DATA_NOT_FOUND"
	ErrCodeDecodeFailure      = "DECODE_FAILURE"
	ErrCodeOpenFailure        = "OPEN_FAILURE"
	ErrCodeFileNotFound       = "FILE_NOT_FOUND"
	ErrCodeInvalidFile        = "INVALID_FILE"
	ErrCodeInvalidBindings    = "INVALID_BINDINGS"
	ErrCodeInvalidStatement   = "INVALID_STATEMENT"
	ErrCodeStatementError     = "STATEMENT_ERROR"
	ErrCodeSQLError           = "SQL_ERROR"
	ErrCodeUnknownEngineError = "UNKNOWN_ENGINE_ERROR"
	ErrCodeBackupFailed       = "BACKUP_FAILED"

	// Field decode errors
	ErrCodeRequiredFieldMissing = "REQUIRED_FIELD_MISSING"
	ErrCodeTypeMismatch         = "TYPE_MISMATCH"
	ErrCodeInvalidJSON          = "INVALID_JSON"
)

// StoreError is the error returned by every operation of the database layer.
type StoreError struct {
	Type       ErrorType      `json:"type"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Table      string         `json:"table,omitempty"`
	Field      string         `json:"field,omitempty"`
	TypeName   string         `json:"typeName,omitempty"`
	Value      any            `json:"value,omitempty"`
	EngineCode int            `json:"engineCode,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *StoreError) Error() string {
	msg := e.Message
	if e.Cause != nil && e.Cause.Error() != msg {
		msg = msg + ": " + e.Cause.Error()
	}
	switch {
	case e.Code == ErrCodeSQLError:
		return fmt.Sprintf("[%s:%s] engine code %d: %s", e.Type, e.Code, e.EngineCode, msg)
	case e.TypeName != "":
		return fmt.Sprintf("[%s:%s] %s (%v): %s", e.Type, e.Code, e.TypeName, e.Value, msg)
	case e.Table != "":
		return fmt.Sprintf("[%s:%s] table %s: %s", e.Type, e.Code, e.Table, msg)
	case e.Field != "":
		return fmt.Sprintf("[%s:%s] field '%s': %s", e.Type, e.Code, e.Field, msg)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, msg)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a StoreError carrying the same code.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause adds a cause to a StoreError
func (e *StoreError) WithCause(cause error) *StoreError {
	e.Cause = cause
	return e
}

// WithTable adds table context to a StoreError
func (e *StoreError) WithTable(table string) *StoreError {
	e.Table = table
	return e
}

// WithField adds field context to a StoreError
func (e *StoreError) WithField(field string) *StoreError {
	e.Field = field
	return e
}

// WithDetail adds a single detail to a StoreError
func (e *StoreError) WithDetail(key string, value any) *StoreError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Sentinels for errors.Is comparisons. They match any StoreError with the same code.
var (
	ErrDataNotFound       = &StoreError{Type: ErrorTypeNotFound, Code: ErrCodeDataNotFound, Message: "data not found"}
	ErrDecodeFailure      = &StoreError{Type: ErrorTypeDecode, Code: ErrCodeDecodeFailure, Message: "decode failure"}
	ErrOpenFailure        = &StoreError{Type: ErrorTypeStore, Code: ErrCodeOpenFailure, Message: "open failure"}
	ErrFileNotFound       = &StoreError{Type: ErrorTypeStore, Code: ErrCodeFileNotFound, Message: "file not found"}
	ErrInvalidFile        = &StoreError{Type: ErrorTypeStore, Code: ErrCodeInvalidFile, Message: "invalid file"}
	ErrInvalidBindings    = &StoreError{Type: ErrorTypeBinding, Code: ErrCodeInvalidBindings, Message: "invalid bindings"}
	ErrInvalidStatement   = &StoreError{Type: ErrorTypeStatement, Code: ErrCodeInvalidStatement, Message: "invalid statement"}
	ErrStatement          = &StoreError{Type: ErrorTypeStatement, Code: ErrCodeStatementError, Message: "statement error"}
	ErrSQL                = &StoreError{Type: ErrorTypeSQL, Code: ErrCodeSQLError, Message: "sql error"}
	ErrUnknownEngineError = &StoreError{Type: ErrorTypeInternal, Code: ErrCodeUnknownEngineError, Message: "unknown engine error"}
	ErrBackupFailed       = &StoreError{Type: ErrorTypeStore, Code: ErrCodeBackupFailed, Message: "backup failed"}
)

// ============================================================================
// StoreError Constructors
// ============================================================================

// NewStoreError creates a new StoreError
func NewStoreError(errorType ErrorType, code, message string) *StoreError {
	return &StoreError{
		Type:    errorType,
		Code:    code,
		Message: message,
	}
}

// NewDataNotFoundError creates a data not found error for a table
func NewDataNotFoundError(table string) *StoreError {
	return &StoreError{
		Type:    ErrorTypeNotFound,
		Code:    ErrCodeDataNotFound,
		Message: "no rows",
		Table:   table,
	}
}

// NewDecodeFailureError creates a decode failure error
func NewDecodeFailureError(message string, cause error) *StoreError {
	return &StoreError{
		Type:    ErrorTypeDecode,
		Code:    ErrCodeDecodeFailure,
		Message: message,
		Cause:   cause,
	}
}

// NewOpenFailureError creates an error for a store that could not be opened
func NewOpenFailureError(path string, cause error) *StoreError {
	return &StoreError{
		Type:    ErrorTypeStore,
		Code:    ErrCodeOpenFailure,
		Message: fmt.Sprintf("failed to open %q", path),
		Cause:   cause,
	}
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *StoreError {
	return &StoreError{
		Type:    ErrorTypeStore,
		Code:    ErrCodeFileNotFound,
		Message: fmt.Sprintf("file %q not found", path),
	}
}

// NewInvalidFileError creates an error for a file that is not a usable document
func NewInvalidFileError(path, message string) *StoreError {
	return &StoreError{
		Type:    ErrorTypeStore,
		Code:    ErrCodeInvalidFile,
		Message: fmt.Sprintf("%s: %s", path, message),
	}
}

// NewInvalidBindingsError creates a binding error carrying the offending value
func NewInvalidBindingsError(typeName string, value any, engineCode int) *StoreError {
	return &StoreError{
		Type:       ErrorTypeBinding,
		Code:       ErrCodeInvalidBindings,
		Message:    "value could not be bound",
		TypeName:   typeName,
		Value:      value,
		EngineCode: engineCode,
	}
}

// NewUnsupportedTypeError creates a binding error for a value of an unknown type
func NewUnsupportedTypeError(value any) *StoreError {
	return &StoreError{
		Type:     ErrorTypeBinding,
		Code:     ErrCodeInvalidBindings,
		Message:  "unsupported type",
		TypeName: fmt.Sprintf("%T", value),
		Value:    value,
	}
}

// NewInvalidStatementError creates an error for an operation on a missing statement
func NewInvalidStatementError(message string) *StoreError {
	return &StoreError{
		Type:    ErrorTypeStatement,
		Code:    ErrCodeInvalidStatement,
		Message: message,
	}
}

// NewStatementError creates an error for SQL that failed to prepare
func NewStatementError(sql string, cause error) *StoreError {
	return &StoreError{
		Type:    ErrorTypeStatement,
		Code:    ErrCodeStatementError,
		Message: "failed to prepare statement",
		Details: map[string]any{"sql": sql},
		Cause:   cause,
	}
}

// NewSQLError creates an error for a non-ok engine status
func NewSQLError(engineCode int, message string) *StoreError {
	return &StoreError{
		Type:       ErrorTypeSQL,
		Code:       ErrCodeSQLError,
		Message:    message,
		EngineCode: engineCode,
	}
}

// NewUnknownEngineError creates an error for any unclassified condition
func NewUnknownEngineError(message string, cause error) *StoreError {
	return &StoreError{
		Type:    ErrorTypeInternal,
		Code:    ErrCodeUnknownEngineError,
		Message: message,
		Cause:   cause,
	}
}

// NewBackupFailedError creates an error for a failed save, load or snapshot
func NewBackupFailedError(path string, cause error) *StoreError {
	return &StoreError{
		Type:    ErrorTypeStore,
		Code:    ErrCodeBackupFailed,
		Message: fmt.Sprintf("backup %q failed", path),
		Cause:   cause,
	}
}

// ============================================================================
// Classification helpers
// ============================================================================

func hasCode(err error, code string) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// IsDataNotFound reports whether err is a data not found error
func IsDataNotFound(err error) bool { return hasCode(err, ErrCodeDataNotFound) }

// IsDecodeFailure reports whether err is a decode failure
func IsDecodeFailure(err error) bool { return hasCode(err, ErrCodeDecodeFailure) }

// IsInvalidBindings reports whether err is a binding error
func IsInvalidBindings(err error) bool { return hasCode(err, ErrCodeInvalidBindings) }

// IsStatementError reports whether err is a prepare failure
func IsStatementError(err error) bool { return hasCode(err, ErrCodeStatementError) }

// IsSQLError reports whether err is an engine status error
func IsSQLError(err error) bool { return hasCode(err, ErrCodeSQLError) }

// IsStoreLifecycleError reports whether err is an open, missing file or invalid file error
func IsStoreLifecycleError(err error) bool {
	return hasCode(err, ErrCodeOpenFailure) || hasCode(err, ErrCodeFileNotFound) || hasCode(err, ErrCodeInvalidFile)
}

// EngineCode returns the engine status carried by err, or 0.
func EngineCode(err error) int {
	var se *StoreError
	if errors.As(err, &se) {
		return se.EngineCode
	}
	return 0
}

// ============================================================================
// FieldError Type and Constructors
// ============================================================================

// FieldError represents a record field that could not be decoded
type FieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *FieldError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s (field: %s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *FieldError) Unwrap() error {
	return e.Cause
}

// NewFieldError creates a new FieldError with field context
func NewFieldError(code, message, field string) *FieldError {
	return &FieldError{
		Code:    code,
		Message: message,
		Field:   field,
	}
}

// NewFieldErrorWithCause creates a new FieldError with an underlying cause
func NewFieldErrorWithCause(code, message, field string, cause error) *FieldError {
	return &FieldError{
		Code:    code,
		Message: message,
		Field:   field,
		Cause:   cause,
	}
}
