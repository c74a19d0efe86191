package protorow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type basicRow struct {
	Name  string   `row:"name"`
	Count *int64   `row:"count"`
	Score *float64 `row:"score"`
}

func basicSchema(t *testing.T) *Schema {
	t.Helper()

	s, err := NewSchema(testSchemaFields())
	require.NoError(t, err)

	return s
}

func int64p(v int64) *int64       { return &v }
func float64p(v float64) *float64 { return &v }

func TestMarshal_RequiredString(t *testing.T) {
	out, err := Marshal(nil, basicSchema(t), basicRow{Name: "hi"})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x02, 0x68, 0x69}, out)
}

func TestMarshal_OptionalAbsentWritesNothing(t *testing.T) {
	schema := MustNewSchema([]Field{
		{Name: "count", Number: 2, Wire: WireVarint, Type: TypeInt, Mode: ModeOptional},
	})

	out, err := Marshal(nil, schema, struct {
		Count *int64 `row:"count"`
	}{})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestMarshal_AllFields(t *testing.T) {
	row := basicRow{Name: "hi", Count: int64p(42), Score: float64p(1.0)}

	out, err := Marshal(nil, basicSchema(t), row)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x0A, 0x02, 0x68, 0x69, // name = "hi"
		0x10, 0x2A, // count = 42
		0x19, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xF0, 0x3F, // score = 1.0
	}, out)
}

func TestMarshal_PointerRecordAndAppend(t *testing.T) {
	schema := basicSchema(t)
	row := &basicRow{Name: "hi"}

	out, err := Marshal([]byte{0xEE}, schema, row)
	require.NoError(t, err)
	require.Equal(t, []byte{0xEE, 0x0A, 0x02, 0x68, 0x69}, out)
}

func TestMarshal_Idempotent(t *testing.T) {
	schema := basicSchema(t)
	row := basicRow{Name: "hello", Count: int64p(-7), Score: float64p(2.25)}

	first, err := Marshal(nil, schema, row)
	require.NoError(t, err)
	second, err := Marshal(nil, schema, row)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestMarshal_RequiredEmptyStringEmitted(t *testing.T) {
	schema := MustNewSchema([]Field{
		{Name: "name", Number: 1, Wire: WireLengthDelimited, Type: TypeString, Mode: ModeRequired},
	})

	out, err := Marshal(nil, schema, struct {
		Name string `row:"name"`
	}{})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x00}, out)
}

func TestMarshal_OptionalEmptyStringElided(t *testing.T) {
	schema := MustNewSchema([]Field{
		{Name: "name", Number: 1, Wire: WireLengthDelimited, Type: TypeString, Mode: ModeOptional},
	})

	out, err := Marshal(nil, schema, struct {
		Name string `row:"name"`
	}{})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestMarshal_MissingRequired(t *testing.T) {
	schema := basicSchema(t)

	_, err := Marshal(nil, schema, struct {
		Name *string `row:"name"`
	}{})
	require.ErrorIs(t, err, ErrMissingRequired)

	var mr *MissingRequiredError
	require.ErrorAs(t, err, &mr)
	require.Equal(t, "name", mr.Name)
}

func TestMarshal_UnknownField(t *testing.T) {
	_, err := Marshal(nil, basicSchema(t), struct {
		Name  string `row:"name"`
		Extra int    `row:"extra"`
	}{Name: "x"})
	require.ErrorIs(t, err, ErrUnknownField)

	var uf *UnknownFieldError
	require.ErrorAs(t, err, &uf)
	require.Equal(t, "extra", uf.Name)
}

func TestMarshal_SkipsTaggedAndUnexported(t *testing.T) {
	out, err := Marshal(nil, basicSchema(t), struct {
		Name    string `row:"name"`
		Ignored int    `row:"-"`
		hidden  int
	}{Name: "hi", Ignored: 9, hidden: 9})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x02, 0x68, 0x69}, out)
}

func TestMarshal_Repeated(t *testing.T) {
	schema := MustNewSchema([]Field{
		{Name: "ids", Number: 1, Wire: WireVarint, Type: TypeUint, Mode: ModeRepeated},
	})

	out, err := Marshal(nil, schema, struct {
		IDs []uint64 `row:"ids"`
	}{IDs: []uint64{1, 2, 3}})
	require.NoError(t, err)
	require.Equal(t, []byte{0x08, 0x01, 0x08, 0x02, 0x08, 0x03}, out)

	// A nil slice writes nothing for a non-required field.
	out, err = Marshal(nil, schema, struct {
		IDs []uint64 `row:"ids"`
	}{})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestMarshal_RepeatedStrings(t *testing.T) {
	schema := MustNewSchema([]Field{
		{Name: "tags", Number: 1, Wire: WireLengthDelimited, Type: TypeString, Mode: ModeRepeated},
	})

	out, err := Marshal(nil, schema, struct {
		Tags []string `row:"tags"`
	}{Tags: []string{"a", "bc"}})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x01, 0x61, 0x0A, 0x02, 0x62, 0x63}, out)
}

func TestMarshal_RepeatedRequiresSlice(t *testing.T) {
	schema := MustNewSchema([]Field{
		{Name: "ids", Number: 1, Wire: WireVarint, Type: TypeUint, Mode: ModeRepeated},
	})

	_, err := Marshal(nil, schema, struct {
		IDs uint64 `row:"ids"`
	}{IDs: 1})
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestMarshal_NestedMessage(t *testing.T) {
	inner := MustNewSchema([]Field{
		{Name: "x", Number: 1, Wire: WireVarint, Type: TypeInt},
	})
	schema := MustNewSchema([]Field{
		{Name: "pos", Number: 1, Wire: WireLengthDelimited, Type: TypeMessage, Sub: inner},
	})

	type innerRow struct {
		X int64 `row:"x"`
	}

	out, err := Marshal(nil, schema, struct {
		Pos innerRow `row:"pos"`
	}{Pos: innerRow{X: 5}})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x02, 0x08, 0x05}, out)
}

func TestMarshal_VarintDispatch(t *testing.T) {
	t.Run("zigzag", func(t *testing.T) {
		schema := MustNewSchema([]Field{
			{Name: "v", Number: 1, Wire: WireVarint, Type: TypeSint},
		})
		out, err := Marshal(nil, schema, struct {
			V int64 `row:"v"`
		}{V: -1})
		require.NoError(t, err)
		require.Equal(t, []byte{0x08, 0x01}, out)
	})

	t.Run("float rounds to nearest", func(t *testing.T) {
		schema := MustNewSchema([]Field{
			{Name: "v", Number: 1, Wire: WireVarint, Type: TypeFloat},
		})
		out, err := Marshal(nil, schema, struct {
			V float64 `row:"v"`
		}{V: 2.6})
		require.NoError(t, err)
		require.Equal(t, []byte{0x08, 0x03}, out)
	})

	t.Run("bool", func(t *testing.T) {
		schema := MustNewSchema([]Field{
			{Name: "v", Number: 1, Wire: WireVarint, Type: TypeBool},
		})
		out, err := Marshal(nil, schema, struct {
			V bool `row:"v"`
		}{V: true})
		require.NoError(t, err)
		require.Equal(t, []byte{0x08, 0x01}, out)
	})

	t.Run("string rejected", func(t *testing.T) {
		schema := MustNewSchema([]Field{
			{Name: "v", Number: 1, Wire: WireVarint, Type: TypeInt},
		})
		_, err := Marshal(nil, schema, struct {
			V string `row:"v"`
		}{V: "no"})
		require.ErrorIs(t, err, ErrInvalidType)
	})
}

func TestMarshal_Fixed32(t *testing.T) {
	schema := MustNewSchema([]Field{
		{Name: "v", Number: 1, Wire: WireFixed32, Type: TypeInt},
	})

	out, err := Marshal(nil, schema, struct {
		V int32 `row:"v"`
	}{V: -1})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0D, 0xFF, 0xFF, 0xFF, 0xFF}, out)
}

func TestMarshal_LengthDelimitedDecimal(t *testing.T) {
	newSchema := func(ft FieldType) *Schema {
		return MustNewSchema([]Field{
			{Name: "v", Number: 1, Wire: WireLengthDelimited, Type: ft, Mode: ModeRequired},
		})
	}

	out, err := Marshal(nil, newSchema(TypeInt), struct {
		V int64 `row:"v"`
	}{V: 42})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x02, '4', '2'}, out)

	out, err = Marshal(nil, newSchema(TypeBool), struct {
		V bool `row:"v"`
	}{V: true})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x04, 't', 'r', 'u', 'e'}, out)

	out, err = Marshal(nil, newSchema(TypeFloat), struct {
		V float64 `row:"v"`
	}{V: 2.5})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x03, '2', '.', '5'}, out)
}

func TestMarshal_Bytes(t *testing.T) {
	schema := MustNewSchema([]Field{
		{Name: "v", Number: 1, Wire: WireLengthDelimited, Type: TypeBytes, Mode: ModeRequired},
	})

	out, err := Marshal(nil, schema, struct {
		V []byte `row:"v"`
	}{V: []byte{0xDE, 0xAD}})
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x02, 0xDE, 0xAD}, out)
}

func TestMarshal_MapRejection(t *testing.T) {
	schema := basicSchema(t)

	// Maps with string or numeric keys point at the repeated-message
	// convention; anything else is a malformed key.
	_, err := Marshal(nil, schema, map[string]int{"a": 1})
	require.ErrorIs(t, err, ErrInvalidType)

	_, err = Marshal(nil, schema, map[int]string{1: "a"})
	require.ErrorIs(t, err, ErrInvalidType)

	_, err = Marshal(nil, schema, map[[2]int]string{})
	require.ErrorIs(t, err, ErrInvalidKey)

	var ik *InvalidKeyError
	require.ErrorAs(t, err, &ik)

	// The same rules apply to map-typed fields.
	_, err = Marshal(nil, MustNewSchema([]Field{
		{Name: "m", Number: 1, Wire: WireLengthDelimited, Type: TypeBytes},
	}), struct {
		M map[string]int `row:"m"`
	}{M: map[string]int{"a": 1}})
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestMarshal_NilAndNonStructRecords(t *testing.T) {
	schema := basicSchema(t)

	_, err := Marshal(nil, schema, nil)
	require.ErrorIs(t, err, ErrInvalidType)

	var nilRow *basicRow
	_, err = Marshal(nil, schema, nilRow)
	require.ErrorIs(t, err, ErrInvalidType)

	_, err = Marshal(nil, schema, 42)
	require.ErrorIs(t, err, ErrInvalidType)
}

func TestMarshal_FailureLeavesDstUntouched(t *testing.T) {
	schema := basicSchema(t)
	dst := []byte{0x01, 0x02}

	out, err := Marshal(dst, schema, struct {
		Name *string `row:"name"`
	}{})
	require.Error(t, err)
	require.Equal(t, []byte{0x01, 0x02}, out)
}
