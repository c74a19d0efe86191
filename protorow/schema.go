package protorow

import (
	"fmt"

	"github.com/arloliu/datum/internal/hash"
)

// WireType is the low-3-bit component of a protobuf tag, selecting how the
// bytes that follow the tag are encoded.
type WireType uint8

const (
	// WireVarint encodes the value as a base-128 varint.
	WireVarint WireType = 0
	// WireFixed64 encodes the value as 8 little-endian bytes.
	WireFixed64 WireType = 1
	// WireLengthDelimited encodes a varint byte length followed by the payload.
	WireLengthDelimited WireType = 2
	// WireFixed32 encodes the value as 4 little-endian bytes.
	WireFixed32 WireType = 5

	// Wire types 3 and 4 (groups) are deprecated in protobuf and unsupported here.
)

// String returns the wire type name used in protobuf documentation.
func (w WireType) String() string {
	switch w {
	case WireVarint:
		return "varint"
	case WireFixed64:
		return "fixed64"
	case WireLengthDelimited:
		return "length-delimited"
	case WireFixed32:
		return "fixed32"
	default:
		return fmt.Sprintf("wiretype(%d)", uint8(w))
	}
}

// IsValid reports whether the wire type is one the serializer can emit.
func (w WireType) IsValid() bool {
	switch w {
	case WireVarint, WireFixed64, WireLengthDelimited, WireFixed32:
		return true
	default:
		return false
	}
}

// FieldType is the declared logical type of a schema field. Together with
// the wire type it selects an entry in the encoding dispatch table.
type FieldType uint8

const (
	// TypeBool encodes to 0/1 (varint/fixed) or "true"/"false" (length-delimited).
	TypeBool FieldType = iota + 1
	// TypeInt is a signed integer encoded in two's complement varint form.
	TypeInt
	// TypeSint is a signed integer encoded in zig-zag varint form.
	TypeSint
	// TypeUint is an unsigned integer.
	TypeUint
	// TypeFloat is a floating-point number; varint form rounds to nearest.
	TypeFloat
	// TypeString is UTF-8 text; length-delimited only.
	TypeString
	// TypeBytes is an opaque byte sequence; length-delimited only.
	TypeBytes
	// TypeEnum is an enum number encoded like TypeInt.
	TypeEnum
	// TypeMessage is a nested row encoded with the field's Sub schema;
	// length-delimited only.
	TypeMessage
)

// String returns the lowercase type name.
func (t FieldType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeSint:
		return "sint"
	case TypeUint:
		return "uint"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeBytes:
		return "bytes"
	case TypeEnum:
		return "enum"
	case TypeMessage:
		return "message"
	default:
		return fmt.Sprintf("fieldtype(%d)", uint8(t))
	}
}

// FieldMode controls presence semantics for a schema field.
type FieldMode uint8

const (
	// ModeOptional elides absent values and zero-length payloads.
	ModeOptional FieldMode = iota
	// ModeRequired errors on absent values; zero-length payloads are emitted.
	ModeRequired
	// ModeRepeated expects a sequence and emits each element with its own tag.
	ModeRepeated
)

// String returns the lowercase mode name.
func (m FieldMode) String() string {
	switch m {
	case ModeOptional:
		return "optional"
	case ModeRequired:
		return "required"
	case ModeRepeated:
		return "repeated"
	default:
		return fmt.Sprintf("fieldmode(%d)", uint8(m))
	}
}

// MaxFieldNumber is the largest protobuf field number (2^29 - 1).
const MaxFieldNumber = 1<<29 - 1

// Field describes one column of a row schema.
type Field struct {
	// Name is the record field name the serializer matches against.
	Name string
	// Number is the protobuf field number, in [1, MaxFieldNumber].
	// Numbers 19000-19999 are reserved by protobuf and rejected.
	Number int32
	// Wire selects the tag wire type.
	Wire WireType
	// Type selects the logical encoding within the wire type.
	Type FieldType
	// Mode selects presence semantics.
	Mode FieldMode
	// Sub is the nested schema for TypeMessage fields; nil otherwise.
	Sub *Schema
}

// fieldInfo is a schema field plus its precomputed tag byte sequence.
type fieldInfo struct {
	Field
	tag []byte // varint((Number << 3) | Wire), computed once at schema build
}

// Schema is an ordered, validated list of fields with a by-name index and a
// content fingerprint. A Schema is immutable after construction and safe for
// concurrent use by any number of serializers.
type Schema struct {
	fields      []fieldInfo
	byName      map[string]int // field name -> index into fields
	fingerprint uint64
	numRequired int
}

// NewSchema validates the field list and precomputes tag bytes, the by-name
// index, and the schema fingerprint.
//
// Validation rules:
//   - at least one field; names non-empty and unique; numbers unique
//   - numbers in [1, MaxFieldNumber], excluding the reserved 19000-19999 range
//   - wire type must be one of the four supported types (no groups)
//   - string/bytes/message types require the length-delimited wire type
//   - TypeMessage requires a Sub schema; every other type forbids one
//
// Returns the schema, or an error describing the first invalid field.
func NewSchema(fields []Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("protorow: schema requires at least one field")
	}

	s := &Schema{
		fields: make([]fieldInfo, 0, len(fields)),
		byName: make(map[string]int, len(fields)),
	}

	numbers := make(map[int32]struct{}, len(fields))
	fp := hash.NewFingerprint()

	for i, f := range fields {
		if err := validateField(f); err != nil {
			return nil, fmt.Errorf("protorow: field %d (%q): %w", i, f.Name, err)
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, fmt.Errorf("protorow: duplicate field name %q", f.Name)
		}
		if _, dup := numbers[f.Number]; dup {
			return nil, fmt.Errorf("protorow: duplicate field number %d", f.Number)
		}

		s.byName[f.Name] = len(s.fields)
		numbers[f.Number] = struct{}{}
		if f.Mode == ModeRequired {
			s.numRequired++
		}

		info := fieldInfo{Field: f}
		info.tag = AppendTag(make([]byte, 0, 5), f.Number, f.Wire)
		s.fields = append(s.fields, info)

		fp.WritePair(f.Name, fieldDescriptor(f))
		if f.Sub != nil {
			fp.WritePair(f.Name, f.Sub.Fingerprint())
		}
	}

	s.fingerprint = fp.Sum64()

	return s, nil
}

// MustNewSchema is NewSchema that panics on error, for statically known
// schemas.
func MustNewSchema(fields []Field) *Schema {
	s, err := NewSchema(fields)
	if err != nil {
		panic(err)
	}

	return s
}

func validateField(f Field) error {
	if f.Name == "" {
		return fmt.Errorf("empty field name")
	}
	if f.Number < 1 || f.Number > MaxFieldNumber {
		return fmt.Errorf("field number %d out of range [1, %d]", f.Number, MaxFieldNumber)
	}
	if f.Number >= 19000 && f.Number <= 19999 {
		return fmt.Errorf("field number %d is in the protobuf reserved range", f.Number)
	}
	if !f.Wire.IsValid() {
		return fmt.Errorf("unsupported wire type %d", uint8(f.Wire))
	}

	switch f.Type {
	case TypeString, TypeBytes, TypeMessage:
		if f.Wire != WireLengthDelimited {
			return fmt.Errorf("%s fields require the length-delimited wire type, got %s", f.Type, f.Wire)
		}
	case TypeBool, TypeInt, TypeSint, TypeUint, TypeFloat, TypeEnum:
		// Encodable under every supported wire type.
	default:
		return fmt.Errorf("unsupported field type %d", uint8(f.Type))
	}

	if f.Type == TypeMessage && f.Sub == nil {
		return fmt.Errorf("message fields require a sub-schema")
	}
	if f.Type != TypeMessage && f.Sub != nil {
		return fmt.Errorf("%s fields cannot carry a sub-schema", f.Type)
	}

	return nil
}

// fieldDescriptor packs the non-name identity of a field into one word for
// fingerprinting. Layout: number in the high bits, then wire, type, mode.
func fieldDescriptor(f Field) uint64 {
	return uint64(f.Number)<<16 | uint64(f.Wire)<<8 | uint64(f.Type)<<2 | uint64(f.Mode)
}

// NumFields returns the number of fields in declaration order.
func (s *Schema) NumFields() int {
	return len(s.fields)
}

// FieldAt returns the i-th field in declaration order.
func (s *Schema) FieldAt(i int) Field {
	return s.fields[i].Field
}

// FieldByName returns the field with the given name.
func (s *Schema) FieldByName(name string) (Field, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Field{}, false
	}

	return s.fields[i].Field, true
}

// Fingerprint returns the xxHash64 digest of the schema's field names,
// numbers, wire types, modes, and nested schemas. Two schemas with the same
// fingerprint encode rows identically.
func (s *Schema) Fingerprint() uint64 {
	return s.fingerprint
}

func (s *Schema) lookup(name string) (*fieldInfo, int, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, -1, false
	}

	return &s.fields[i], i, true
}
