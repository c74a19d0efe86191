package protorow

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/arloliu/datum/endian"
	"github.com/arloliu/datum/internal/pool"
)

// protobuf fixed32/fixed64 fields are little-endian regardless of host or
// batch frame endianness.
var wireEndian = endian.GetLittleEndianEngine()

// Marshal encodes one record into protobuf wire format according to the
// schema, appending to dst and returning the extended slice.
//
// The record must be a struct or a non-nil pointer to one. Exported struct
// fields are visited in declaration order; a `row` tag overrides the
// matched name, and `row:"-"` skips the field. Every visited name must
// exist in the schema.
//
// Presence follows Go pointers: a nil pointer field is absent, everything
// else is present. Absent required fields produce a *MissingRequiredError
// naming the field; absent optional fields write no bytes. Zero-length
// strings and byte slices are elided unless the field is required.
//
// Encoding is deterministic: the same record and schema always produce
// identical bytes. Marshal holds no state between calls and a single
// schema may drive any number of concurrent Marshal calls.
//
// Parameters:
//   - dst: destination buffer to append to; may be nil
//   - schema: validated field schema from NewSchema
//   - record: struct or pointer to struct carrying the row values
//
// Returns the extended buffer, or dst unchanged alongside one of the typed
// errors (UnknownFieldError, MissingRequiredError, InvalidTypeError,
// InvalidKeyError).
func Marshal(dst []byte, schema *Schema, record any) ([]byte, error) {
	v := reflect.ValueOf(record)
	v, present := derefValue(v)
	if !present {
		return dst, &InvalidTypeError{Description: "record is nil"}
	}

	if v.Kind() == reflect.Map {
		return dst, mapError(v.Type())
	}
	if v.Kind() != reflect.Struct {
		return dst, &InvalidTypeError{Description: fmt.Sprintf("record must be a struct, got %s", v.Kind())}
	}

	out, err := marshalStruct(dst, schema, v)
	if err != nil {
		return dst, err
	}

	return out, nil
}

// marshalStruct encodes the fields of a struct value against the schema and
// enforces the required-field check at end of record.
func marshalStruct(dst []byte, schema *Schema, v reflect.Value) ([]byte, error) {
	seen := make([]bool, len(schema.fields))
	vt := v.Type()

	var err error
	for i := range vt.NumField() {
		sf := vt.Field(i)
		if !sf.IsExported() {
			continue
		}

		name := sf.Name
		if tag, ok := sf.Tag.Lookup("row"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}

		info, idx, ok := schema.lookup(name)
		if !ok {
			return nil, &UnknownFieldError{Name: name}
		}

		fv, present := derefValue(v.Field(i))
		if !present {
			continue
		}
		seen[idx] = true

		if info.Mode == ModeRepeated {
			dst, err = marshalRepeated(dst, info, fv)
		} else {
			dst, err = marshalSingular(dst, info, fv)
		}
		if err != nil {
			return nil, err
		}
	}

	for i := range schema.fields {
		if schema.fields[i].Mode == ModeRequired && !seen[i] {
			return nil, &MissingRequiredError{Name: schema.fields[i].Name}
		}
	}

	return dst, nil
}

// marshalSingular encodes one present non-repeated value, applying the
// zero-length elision rule for optional length-delimited payloads.
func marshalSingular(dst []byte, info *fieldInfo, fv reflect.Value) ([]byte, error) {
	if info.Mode == ModeOptional && info.Wire == WireLengthDelimited {
		switch {
		case fv.Kind() == reflect.String && fv.Len() == 0:
			return dst, nil
		case isByteSlice(fv) && fv.Len() == 0:
			return dst, nil
		}
	}

	dst = append(dst, info.tag...)

	return appendValue(dst, info, fv)
}

// marshalRepeated encodes a sequence, tagging each element independently.
// Length-delimited elements are never packed.
func marshalRepeated(dst []byte, info *fieldInfo, fv reflect.Value) ([]byte, error) {
	if fv.Kind() != reflect.Slice && fv.Kind() != reflect.Array {
		return nil, &InvalidTypeError{
			Description: fmt.Sprintf("repeated field %q requires a slice, got %s", info.Name, fv.Kind()),
		}
	}
	if isByteSlice(fv) && info.Type != TypeUint && info.Type != TypeInt {
		return nil, &InvalidTypeError{
			Description: fmt.Sprintf("repeated field %q cannot encode a byte slice as %s", info.Name, info.Type),
		}
	}

	var err error
	for i := range fv.Len() {
		ev, present := derefValue(fv.Index(i))
		if !present {
			return nil, &InvalidTypeError{
				Description: fmt.Sprintf("repeated field %q contains a nil element", info.Name),
			}
		}

		dst = append(dst, info.tag...)
		dst, err = appendValue(dst, info, ev)
		if err != nil {
			return nil, err
		}
	}

	return dst, nil
}

// appendValue encodes a single present value after its tag, dispatching on
// the field's wire type first and the value category second.
func appendValue(dst []byte, info *fieldInfo, fv reflect.Value) ([]byte, error) {
	if fv.Kind() == reflect.Map {
		return nil, mapError(fv.Type())
	}

	switch info.Wire {
	case WireVarint:
		return appendVarintValue(dst, info, fv)
	case WireFixed64:
		return appendFixed64Value(dst, info, fv)
	case WireFixed32:
		return appendFixed32Value(dst, info, fv)
	case WireLengthDelimited:
		return appendDelimitedValue(dst, info, fv)
	default:
		return nil, &InvalidTypeError{Description: fmt.Sprintf("field %q has unsupported wire type %s", info.Name, info.Wire)}
	}
}

func appendVarintValue(dst []byte, info *fieldInfo, fv reflect.Value) ([]byte, error) {
	switch fv.Kind() {
	case reflect.Bool:
		return AppendUvarint(dst, boolBit(fv.Bool())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if info.Type == TypeSint {
			return AppendZigzag(dst, fv.Int()), nil
		}

		return AppendVarint(dst, fv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return AppendUvarint(dst, fv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return AppendVarint(dst, int64(math.Round(fv.Float()))), nil
	default:
		return nil, wireMismatch(info, fv)
	}
}

func appendFixed64Value(dst []byte, info *fieldInfo, fv reflect.Value) ([]byte, error) {
	switch fv.Kind() {
	case reflect.Bool:
		return AppendFixed64(dst, wireEndian, boolBit(fv.Bool())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return AppendFixed64(dst, wireEndian, uint64(fv.Int())), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return AppendFixed64(dst, wireEndian, fv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return AppendFixed64(dst, wireEndian, math.Float64bits(fv.Float())), nil
	default:
		return nil, wireMismatch(info, fv)
	}
}

func appendFixed32Value(dst []byte, info *fieldInfo, fv reflect.Value) ([]byte, error) {
	switch fv.Kind() {
	case reflect.Bool:
		return AppendFixed32(dst, wireEndian, uint32(boolBit(fv.Bool()))), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return AppendFixed32(dst, wireEndian, uint32(fv.Int())), nil //nolint:gosec
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return AppendFixed32(dst, wireEndian, uint32(fv.Uint())), nil //nolint:gosec
	case reflect.Float32, reflect.Float64:
		return AppendFixed32(dst, wireEndian, math.Float32bits(float32(fv.Float()))), nil
	default:
		return nil, wireMismatch(info, fv)
	}
}

func appendDelimitedValue(dst []byte, info *fieldInfo, fv reflect.Value) ([]byte, error) {
	// Numeric scratch for the decimal-string encodings.
	var scratch [32]byte

	switch {
	case fv.Kind() == reflect.String:
		if info.Type != TypeString && info.Type != TypeBytes {
			return nil, wireMismatch(info, fv)
		}
		s := fv.String()
		dst = AppendUvarint(dst, uint64(len(s)))

		return append(dst, s...), nil
	case isByteSlice(fv):
		return AppendLengthDelimited(dst, fv.Bytes()), nil
	case fv.Kind() == reflect.Bool:
		if fv.Bool() {
			return AppendLengthDelimited(dst, []byte("true")), nil
		}

		return AppendLengthDelimited(dst, []byte("false")), nil
	case fv.CanInt():
		return AppendLengthDelimited(dst, strconv.AppendInt(scratch[:0], fv.Int(), 10)), nil
	case fv.CanUint():
		return AppendLengthDelimited(dst, strconv.AppendUint(scratch[:0], fv.Uint(), 10)), nil
	case fv.CanFloat():
		return AppendLengthDelimited(dst, strconv.AppendFloat(scratch[:0], fv.Float(), 'f', -1, 64)), nil
	case fv.Kind() == reflect.Struct:
		if info.Type != TypeMessage {
			return nil, wireMismatch(info, fv)
		}

		return appendMessage(dst, info, fv)
	default:
		return nil, wireMismatch(info, fv)
	}
}

// appendMessage encodes a nested struct through the field's sub-schema into
// a pooled scratch buffer, then emits it length-delimited.
func appendMessage(dst []byte, info *fieldInfo, fv reflect.Value) ([]byte, error) {
	bb := pool.GetRowBuffer()
	defer pool.PutRowBuffer(bb)

	payload, err := marshalStruct(bb.Bytes(), info.Sub, fv)
	if err != nil {
		return nil, err
	}

	return AppendLengthDelimited(dst, payload), nil
}

// derefValue unwraps pointers and interfaces. present is false when any
// level is nil, which the callers treat as an absent value.
func derefValue(v reflect.Value) (deref reflect.Value, present bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return v, false
	}

	return v, true
}

func isByteSlice(v reflect.Value) bool {
	return v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}

func wireMismatch(info *fieldInfo, fv reflect.Value) error {
	return &InvalidTypeError{
		Description: fmt.Sprintf("field %q: cannot encode %s value as %s/%s", info.Name, fv.Kind(), info.Wire, info.Type),
	}
}

// mapError classifies an attempted map encoding. Maps are never encodable
// directly; string or numeric keys point the caller at the repeated-message
// convention, anything else is a malformed key.
func mapError(mt reflect.Type) error {
	switch mt.Key().Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return &InvalidTypeError{
			Description: fmt.Sprintf("map %s must be expressed as a repeated message field", mt),
		}
	default:
		return &InvalidKeyError{
			Description: fmt.Sprintf("map %s keyed by %s; keys must be strings or numbers", mt, mt.Key().Kind()),
		}
	}
}
