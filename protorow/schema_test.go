package protorow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testSchemaFields() []Field {
	return []Field{
		{Name: "name", Number: 1, Wire: WireLengthDelimited, Type: TypeString, Mode: ModeRequired},
		{Name: "count", Number: 2, Wire: WireVarint, Type: TypeInt, Mode: ModeOptional},
		{Name: "score", Number: 3, Wire: WireFixed64, Type: TypeFloat, Mode: ModeOptional},
	}
}

func TestNewSchema(t *testing.T) {
	s, err := NewSchema(testSchemaFields())
	require.NoError(t, err)
	require.Equal(t, 3, s.NumFields())

	f, ok := s.FieldByName("count")
	require.True(t, ok)
	require.Equal(t, int32(2), f.Number)
	require.Equal(t, WireVarint, f.Wire)

	_, ok = s.FieldByName("missing")
	require.False(t, ok)

	require.Equal(t, "name", s.FieldAt(0).Name)
}

func TestNewSchema_Validation(t *testing.T) {
	tests := []struct {
		name   string
		fields []Field
	}{
		{"empty schema", nil},
		{"empty field name", []Field{{Name: "", Number: 1, Wire: WireVarint, Type: TypeInt}}},
		{"field number zero", []Field{{Name: "a", Number: 0, Wire: WireVarint, Type: TypeInt}}},
		{"field number too large", []Field{{Name: "a", Number: MaxFieldNumber + 1, Wire: WireVarint, Type: TypeInt}}},
		{"reserved field number", []Field{{Name: "a", Number: 19000, Wire: WireVarint, Type: TypeInt}}},
		{"group wire type", []Field{{Name: "a", Number: 1, Wire: WireType(3), Type: TypeInt}}},
		{"string over varint", []Field{{Name: "a", Number: 1, Wire: WireVarint, Type: TypeString}}},
		{"bytes over fixed64", []Field{{Name: "a", Number: 1, Wire: WireFixed64, Type: TypeBytes}}},
		{"message without sub-schema", []Field{{Name: "a", Number: 1, Wire: WireLengthDelimited, Type: TypeMessage}}},
		{
			"sub-schema on scalar",
			[]Field{{Name: "a", Number: 1, Wire: WireVarint, Type: TypeInt, Sub: MustNewSchema(testSchemaFields())}},
		},
		{
			"duplicate name",
			[]Field{
				{Name: "a", Number: 1, Wire: WireVarint, Type: TypeInt},
				{Name: "a", Number: 2, Wire: WireVarint, Type: TypeInt},
			},
		},
		{
			"duplicate number",
			[]Field{
				{Name: "a", Number: 1, Wire: WireVarint, Type: TypeInt},
				{Name: "b", Number: 1, Wire: WireVarint, Type: TypeInt},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.fields)
			require.Error(t, err)
		})
	}
}

func TestSchema_Fingerprint(t *testing.T) {
	a := MustNewSchema(testSchemaFields())
	b := MustNewSchema(testSchemaFields())
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	// Any change to a field's identity changes the fingerprint.
	renamed := testSchemaFields()
	renamed[1].Name = "total"
	require.NotEqual(t, a.Fingerprint(), MustNewSchema(renamed).Fingerprint())

	renumbered := testSchemaFields()
	renumbered[1].Number = 7
	require.NotEqual(t, a.Fingerprint(), MustNewSchema(renumbered).Fingerprint())

	remoded := testSchemaFields()
	remoded[1].Mode = ModeRequired
	require.NotEqual(t, a.Fingerprint(), MustNewSchema(remoded).Fingerprint())
}

func TestSchema_FingerprintNested(t *testing.T) {
	inner := []Field{{Name: "x", Number: 1, Wire: WireVarint, Type: TypeInt}}
	outer := func(sub *Schema) *Schema {
		return MustNewSchema([]Field{
			{Name: "pos", Number: 1, Wire: WireLengthDelimited, Type: TypeMessage, Sub: sub},
		})
	}

	a := outer(MustNewSchema(inner))
	b := outer(MustNewSchema(inner))
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	changed := []Field{{Name: "y", Number: 1, Wire: WireVarint, Type: TypeInt}}
	require.NotEqual(t, a.Fingerprint(), outer(MustNewSchema(changed)).Fingerprint())
}

func TestMustNewSchema_Panics(t *testing.T) {
	require.Panics(t, func() {
		MustNewSchema(nil)
	})
}
