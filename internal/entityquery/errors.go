package entityquery

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes entity query errors.
type ErrorCode string

const (
	// ErrCodeUnknownProperty indicates a condition on a property the
	// entity kind does not have.
	ErrCodeUnknownProperty ErrorCode = "UNKNOWN_PROPERTY"

	// ErrCodeUnknownField indicates a field with no stored values.
	ErrCodeUnknownField ErrorCode = "UNKNOWN_FIELD"

	// ErrCodeUnsupported indicates an entity kind or operator the backend
	// cannot query.
	ErrCodeUnsupported ErrorCode = "UNSUPPORTED"
)

// Error is returned by backends that reject a query.
type Error struct {
	Code    ErrorCode
	Message string
	Field   string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnknownField reports whether err is an unknown-field error.
// Uses errors.As to handle wrapped errors.
func IsUnknownField(err error) bool {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code == ErrCodeUnknownField
	}
	return false
}

// NewUnknownProperty creates an Error for an unknown property.
func NewUnknownProperty(field string) *Error {
	return &Error{Code: ErrCodeUnknownProperty, Message: "unknown property", Field: field}
}

// NewUnknownField creates an Error for an unknown field.
func NewUnknownField(field string) *Error {
	return &Error{Code: ErrCodeUnknownField, Message: "no such field", Field: field}
}

// NewUnsupported creates an Error for an unsupported construct.
func NewUnsupported(format string, args ...any) *Error {
	return &Error{Code: ErrCodeUnsupported, Message: fmt.Sprintf(format, args...)}
}
