package field

import (
	"fmt"
	"strings"
)

// ErrorKind tags the failure classes surfaced by the engine.
type ErrorKind string

const (
	KindUnknownFieldName    ErrorKind = "unknown_field_name"
	KindUndetectedFieldType ErrorKind = "undetected_field_type"
	KindStructural          ErrorKind = "structural"
	KindValueNotFound       ErrorKind = "value_not_found"
	KindValidation          ErrorKind = "validation"
	KindNotImplemented      ErrorKind = "not_implemented"
	KindDuplicateFieldName  ErrorKind = "duplicate_field_name"
	KindUnsupportedValue    ErrorKind = "unsupported_value"
)

// Sentinels for errors.Is. Any *Error with the same kind matches.
var (
	ErrUnknownFieldName    = &Error{Kind: KindUnknownFieldName}
	ErrUndetectedFieldType = &Error{Kind: KindUndetectedFieldType}
	ErrStructural          = &Error{Kind: KindStructural}
	ErrValueNotFound       = &Error{Kind: KindValueNotFound}
	ErrValidation          = &Error{Kind: KindValidation}
	ErrNotImplemented      = &Error{Kind: KindNotImplemented}
	ErrDuplicateFieldName  = &Error{Kind: KindDuplicateFieldName}
	ErrUnsupportedValue    = &Error{Kind: KindUnsupportedValue}
)

// Error is the structured failure returned by catalog and field operations.
type Error struct {
	Kind     ErrorKind
	Field    string
	Op       string
	Expected string
	Actual   string
	Value    any
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("spform")
	if e.Op != "" {
		b.WriteString(" ")
		b.WriteString(e.Op)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " %q", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Expected != "" || e.Actual != "" {
		fmt.Fprintf(&b, " (expected %s, got %s)", orNone(e.Expected), orNone(e.Actual))
	}
	if e.Value != nil {
		fmt.Fprintf(&b, " value=%v", e.Value)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *Error target of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func structuralError(name, op, expected, actual string) error {
	return &Error{Kind: KindStructural, Field: name, Op: op, Expected: expected, Actual: actual}
}

func valueNotFound(name string, value any) error {
	return &Error{Kind: KindValueNotFound, Field: name, Op: "set", Value: value, Message: "value is not one of the available options"}
}

func validationError(name, message string, value any) error {
	return &Error{Kind: KindValidation, Field: name, Value: value, Message: message}
}

func unsupportedValue(name string, value any, expected string) error {
	return &Error{
		Kind:     KindUnsupportedValue,
		Field:    name,
		Op:       "set",
		Expected: expected,
		Actual:   fmt.Sprintf("%T", value),
	}
}

// UnknownFieldName builds the catalog miss error.
func UnknownFieldName(name string) error {
	return &Error{Kind: KindUnknownFieldName, Field: name, Op: "lookup", Message: "no field with this name on the form"}
}

// DuplicateFieldName builds the strict-catalog collision error.
func DuplicateFieldName(name string) error {
	return &Error{Kind: KindDuplicateFieldName, Field: name, Op: "build", Message: "name appears on more than one row"}
}
