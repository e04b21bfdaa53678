package dataset

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a load failure.
type ErrorKind string

const (
	KindDataAccess ErrorKind = "data_access"
	KindSchema     ErrorKind = "schema"
	KindDateParse  ErrorKind = "date_parse"
	KindValueParse ErrorKind = "value_parse"
)

// Sentinels for errors.Is. Every *Error matches the sentinel of its Kind.
var (
	ErrDataAccess = errors.New("dataset source unreadable")
	ErrSchema     = errors.New("dataset column missing")
	ErrDateParse  = errors.New("malformed packed date")
	ErrValueParse = errors.New("malformed numeric value")
)

// Error describes why a dataset could not be constructed. Row is the 1-based
// data row (header excluded) and is zero when the failure is not tied to a row.
type Error struct {
	Kind   ErrorKind
	Source string
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Source, e.Kind)
	if e.Column != "" {
		msg += fmt.Sprintf(" column %q", e.Column)
	}
	if e.Row > 0 {
		msg += fmt.Sprintf(" row %d", e.Row)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindDataAccess:
		return target == ErrDataAccess
	case KindSchema:
		return target == ErrSchema
	case KindDateParse:
		return target == ErrDateParse
	case KindValueParse:
		return target == ErrValueParse
	}
	return false
}

func accessError(source string, err error) *Error {
	return &Error{Kind: KindDataAccess, Source: source, Err: err}
}

func schemaError(source, column string) *Error {
	return &Error{Kind: KindSchema, Source: source, Column: column}
}

func dateError(source, column string, row int, value string, err error) *Error {
	return &Error{Kind: KindDateParse, Source: source, Column: column, Row: row, Value: value, Err: err}
}

func valueError(source, column string, row int, value string, err error) *Error {
	return &Error{Kind: KindValueParse, Source: source, Column: column, Row: row, Value: value, Err: err}
}
