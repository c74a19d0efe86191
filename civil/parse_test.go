package civil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // canonical ISO rendering
	}{
		{"plain utc", "2022-01-15T13:45:30Z", "2022-01-15T13:45:30Z"},
		{"fraction millis", "2022-01-15T13:45:30.123Z", "2022-01-15T13:45:30.123Z"},
		{"fraction nanos", "2022-01-15T13:45:30.123456789Z", "2022-01-15T13:45:30.123456789Z"},
		{"fraction trailing zeros", "2022-01-15T13:45:30.500Z", "2022-01-15T13:45:30.5Z"},
		{"positive offset", "2022-01-15T14:45:30+01:00", "2022-01-15T13:45:30Z"},
		{"negative offset", "2022-01-15T08:45:30-05:00", "2022-01-15T13:45:30Z"},
		{"offset across midnight", "2022-01-16T00:15:00+02:00", "2022-01-15T22:15:00Z"},
		{"negative year", "-0044-03-15T12:00:00Z", "-0044-03-15T12:00:00Z"},
		{"wide year min", "-9999-01-01T00:00:00Z", "-9999-01-01T00:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := ParseTimestamp(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, ts.AsISO8601())
		})
	}
}

func TestParseTimestamp_Scenario(t *testing.T) {
	ts, err := ParseTimestamp("2022-01-15T13:45:30Z")
	require.NoError(t, err)
	require.Equal(t, int64(1642254330), ts.AsUnit(UnitSeconds))
	require.Equal(t, int64(1642254330)*1_000_000_000, ts.AsUnit(UnitNanos))
}

func TestParseTimestamp_Errors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		field  Field
		reason Reason
	}{
		{"empty", "", FieldYear, ReasonMissing},
		{"short year", "202-01-15T00:00:00Z", FieldYear, ReasonInvalid},
		{"huge year", "12345678-01-15T00:00:00Z", FieldYear, ReasonOutOfRange},
		{"year 10000", "10000-01-15T00:00:00Z", FieldYear, ReasonOutOfRange},
		{"no month", "2022", FieldMonth, ReasonMissing},
		{"bad month sep", "2022/01-15T00:00:00Z", FieldMonth, ReasonInvalid},
		{"month 13", "2022-13-15T00:00:00Z", FieldMonth, ReasonOutOfRange},
		{"no day", "2022-01", FieldDay, ReasonMissing},
		{"day 32", "2022-01-32T00:00:00Z", FieldDay, ReasonOutOfRange},
		{"feb 29 common year", "2023-02-29T00:00:00Z", FieldDay, ReasonOutOfRange},
		{"no time", "2022-01-15", FieldTime, ReasonMissing},
		{"lowercase t", "2022-01-15t13:45:30Z", FieldTime, ReasonInvalid},
		{"bad hour", "2022-01-15T24:00:00Z", FieldTime, ReasonOutOfRange},
		{"bad minute", "2022-01-15T13:60:30Z", FieldTime, ReasonOutOfRange},
		{"one digit second", "2022-01-15T13:45:3Z", FieldTime, ReasonInvalid},
		{"empty fraction", "2022-01-15T13:45:30.Z", FieldFraction, ReasonMissing},
		{"ten digit fraction", "2022-01-15T13:45:30.1234567891Z", FieldFraction, ReasonInvalid},
		{"no offset", "2022-01-15T13:45:30", FieldOffset, ReasonMissing},
		{"lowercase z", "2022-01-15T13:45:30z", FieldOffset, ReasonInvalid},
		{"offset hour 24", "2022-01-15T13:45:30+24:00", FieldOffset, ReasonOutOfRange},
		{"trailing junk", "2022-01-15T13:45:30Zfoo", FieldOffset, ReasonInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimestamp(tt.in)
			requireFieldError(t, err, tt.field, tt.reason)
		})
	}
}

func TestParseTimestamp_OffsetPushesOutOfRange(t *testing.T) {
	// The civil fields parse, but converting to UTC leaves the range.
	_, err := ParseTimestamp("9999-12-31T23:59:59-01:00")
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = ParseTimestamp("-9999-01-01T00:00:00+01:00")
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2022-01-15", MustNewDate(2022, January, 15)},
		{"0000-01-01", DateZero},
		{"-0044-03-15", MustNewDate(-44, March, 15)},
		{"-9999-01-01", DateMin},
		{"9999-12-31", DateMax},
		{"2024-02-29", MustNewDate(2024, February, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ParseDate(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, d)
		})
	}
}

func TestParseDate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		field  Field
		reason Reason
	}{
		{"empty", "", FieldYear, ReasonMissing},
		{"bare dash", "-", FieldYear, ReasonMissing},
		{"letters", "year-01-02", FieldYear, ReasonInvalid},
		{"three digit year", "123-01-02", FieldYear, ReasonInvalid},
		{"year below range", "-10000-01-02", FieldYear, ReasonOutOfRange},
		{"month zero", "2022-00-15", FieldMonth, ReasonOutOfRange},
		{"day zero", "2022-01-00", FieldDay, ReasonOutOfRange},
		{"trailing junk", "2022-01-15x", FieldDay, ReasonInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.in)
			requireFieldError(t, err, tt.field, tt.reason)
		})
	}
}

func TestFieldError_Message(t *testing.T) {
	_, err := ParseDate("2022-13-01")
	require.ErrorContains(t, err, "month")
	require.ErrorContains(t, err, "out of range")
	require.ErrorContains(t, err, `"13"`)

	// Out-of-range field errors also match the sentinel.
	require.ErrorIs(t, err, ErrOutOfRange)
}
