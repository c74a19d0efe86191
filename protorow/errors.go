package protorow

import (
	"errors"
	"fmt"
)

// Sentinel errors for matching with errors.Is. Every typed error below
// matches exactly one sentinel, so callers can branch on kind without
// inspecting message text.
var (
	// ErrUnknownField indicates a record field name with no schema entry.
	ErrUnknownField = errors.New("unknown field")

	// ErrMissingRequired indicates a required field absent at end of record.
	ErrMissingRequired = errors.New("missing required field")

	// ErrInvalidType indicates a value category incompatible with the
	// field's wire type or with the serializer's record model.
	ErrInvalidType = errors.New("invalid type")

	// ErrInvalidKey indicates a map key that is neither string nor numeric.
	ErrInvalidKey = errors.New("invalid map key")

	// ErrInvalidFrame indicates a batch frame that fails header validation.
	ErrInvalidFrame = errors.New("invalid batch frame")

	// ErrSchemaMismatch indicates a batch frame whose schema fingerprint
	// does not match the reader's schema.
	ErrSchemaMismatch = errors.New("schema fingerprint mismatch")
)

// UnknownFieldError reports a visited field name the schema does not define.
type UnknownFieldError struct {
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("protorow: unknown field %q", e.Name)
}

func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// MissingRequiredError reports a required field that was never supplied.
type MissingRequiredError struct {
	Name string
}

func (e *MissingRequiredError) Error() string {
	return fmt.Sprintf("protorow: missing required field %q", e.Name)
}

func (e *MissingRequiredError) Is(target error) bool {
	return target == ErrMissingRequired
}

// InvalidTypeError reports a value whose category cannot be encoded under
// the declared wire type of its field.
type InvalidTypeError struct {
	Description string
}

func (e *InvalidTypeError) Error() string {
	return "protorow: invalid type: " + e.Description
}

func (e *InvalidTypeError) Is(target error) bool {
	return target == ErrInvalidType
}

// InvalidKeyError reports a map keyed by something other than strings or
// numbers. Maps themselves are unsupported; this variant distinguishes a
// malformed map from a merely misplaced one.
type InvalidKeyError struct {
	Description string
}

func (e *InvalidKeyError) Error() string {
	return "protorow: invalid map key: " + e.Description
}

func (e *InvalidKeyError) Is(target error) bool {
	return target == ErrInvalidKey
}
