package civil

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a value falls outside the representable
// range of its type, such as a timestamp beyond year 9999 or a date
// arithmetic result before year -9999.
var ErrOutOfRange = errors.New("civil: value out of range")

// Field identifies the component of a timestamp or date that failed to
// parse or validate.
type Field uint8

const (
	FieldYear Field = iota + 1
	FieldMonth
	FieldDay
	FieldTime
	FieldOffset
	FieldFraction
)

func (f Field) String() string {
	switch f {
	case FieldYear:
		return "year"
	case FieldMonth:
		return "month"
	case FieldDay:
		return "day"
	case FieldTime:
		return "time"
	case FieldOffset:
		return "offset"
	case FieldFraction:
		return "fraction"
	default:
		return "unknown"
	}
}

// Reason classifies why a field was rejected.
type Reason uint8

const (
	ReasonMissing Reason = iota + 1
	ReasonInvalid
	ReasonOutOfRange
)

func (r Reason) String() string {
	switch r {
	case ReasonMissing:
		return "missing"
	case ReasonInvalid:
		return "invalid"
	case ReasonOutOfRange:
		return "out of range"
	default:
		return "unknown"
	}
}

// FieldError reports a parse or validation failure for a single component.
// Input carries the offending text when the failure came from parsing.
type FieldError struct {
	Field  Field
	Reason Reason
	Input  string
}

func (e *FieldError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("civil: %s %s", e.Field, e.Reason)
	}

	return fmt.Sprintf("civil: %s %s, unexpected %q", e.Field, e.Reason, e.Input)
}

// Is reports ErrOutOfRange equivalence for out-of-range field errors, so
// callers can match either the sentinel or the structured error.
func (e *FieldError) Is(target error) bool {
	return target == ErrOutOfRange && e.Reason == ReasonOutOfRange
}

func newFieldError(f Field, r Reason, input string) *FieldError {
	return &FieldError{Field: f, Reason: r, Input: input}
}
