package civil

import (
	"fmt"
	"strconv"
)

// JSON boundary for the civil types.
//
// Timestamp serializes as floating seconds by default. The unit-qualified
// wrapper types reinterpret numeric JSON at another scale for payloads that
// carry epoch milliseconds, microseconds, or nanoseconds; every wrapper
// also accepts an RFC 3339 string. Optional fields are the natural Go
// pointer form: encoding/json maps null to a nil *TimestampMillis without
// invoking the inner parser.

// MarshalJSON encodes the instant as floating seconds since the epoch.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, t.AsFloat(UnitSeconds), 'f', -1, 64), nil
}

// UnmarshalJSON decodes an integer or floating second count, or an RFC 3339
// string.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	return t.unmarshalUnit(data, UnitSeconds)
}

// MarshalText encodes the instant as RFC 3339.
func (t Timestamp) MarshalText() ([]byte, error) {
	return t.AppendISO8601(nil), nil
}

// UnmarshalText decodes an RFC 3339 instant.
func (t *Timestamp) UnmarshalText(data []byte) error {
	ts, err := ParseTimestamp(string(data))
	if err != nil {
		return err
	}

	*t = ts

	return nil
}

// unmarshalUnit decodes a JSON scalar with numbers interpreted in the given
// unit: integers as exact counts, floats scaled by the unit, and strings
// through ParseTimestamp.
func (t *Timestamp) unmarshalUnit(data []byte, unit Unit) error {
	if len(data) == 0 {
		return newFieldError(FieldTime, ReasonMissing, "")
	}

	if data[0] == '"' {
		if len(data) < 2 || data[len(data)-1] != '"' {
			return newFieldError(FieldTime, ReasonInvalid, string(data))
		}

		ts, err := ParseTimestamp(string(data[1 : len(data)-1]))
		if err != nil {
			return err
		}
		*t = ts

		return nil
	}

	raw := string(data)
	if iv, err := strconv.ParseInt(raw, 10, 64); err == nil {
		ts, err := FromUnit(iv, unit)
		if err != nil {
			return err
		}
		*t = ts

		return nil
	}

	fv, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return newFieldError(FieldTime, ReasonInvalid, raw)
	}

	ts, err := FromUnitFloat(fv, unit)
	if err != nil {
		return err
	}
	*t = ts

	return nil
}

// marshalUnit encodes the instant as an integer count of the unit, except
// seconds which keep the floating default.
func (t Timestamp) marshalUnit(unit Unit) ([]byte, error) {
	if unit == UnitSeconds {
		return t.MarshalJSON()
	}

	return strconv.AppendInt(nil, t.AsUnit(unit), 10), nil
}

// TimestampSeconds reinterprets numeric JSON as seconds since the epoch.
// Identical to the Timestamp default; provided for symmetry with the other
// unit wrappers.
type TimestampSeconds Timestamp

func (t TimestampSeconds) MarshalJSON() ([]byte, error) {
	return Timestamp(t).marshalUnit(UnitSeconds)
}

func (t *TimestampSeconds) UnmarshalJSON(data []byte) error {
	return (*Timestamp)(t).unmarshalUnit(data, UnitSeconds)
}

// TimestampMillis reinterprets numeric JSON as milliseconds since the epoch.
type TimestampMillis Timestamp

func (t TimestampMillis) MarshalJSON() ([]byte, error) {
	return Timestamp(t).marshalUnit(UnitMillis)
}

func (t *TimestampMillis) UnmarshalJSON(data []byte) error {
	return (*Timestamp)(t).unmarshalUnit(data, UnitMillis)
}

// TimestampMicros reinterprets numeric JSON as microseconds since the epoch.
type TimestampMicros Timestamp

func (t TimestampMicros) MarshalJSON() ([]byte, error) {
	return Timestamp(t).marshalUnit(UnitMicros)
}

func (t *TimestampMicros) UnmarshalJSON(data []byte) error {
	return (*Timestamp)(t).unmarshalUnit(data, UnitMicros)
}

// TimestampNanos reinterprets numeric JSON as nanoseconds since the epoch.
type TimestampNanos Timestamp

func (t TimestampNanos) MarshalJSON() ([]byte, error) {
	return Timestamp(t).marshalUnit(UnitNanos)
}

func (t *TimestampNanos) UnmarshalJSON(data []byte) error {
	return (*Timestamp)(t).unmarshalUnit(data, UnitNanos)
}

// FuzzyTimestamp decodes numeric JSON as seconds first and retries as
// milliseconds when the second interpretation overflows the year range.
//
// The cutoff is the seconds count of 9999-12-31T23:59:59Z (about 2.5e11):
// integers beyond it are re-read as milliseconds. Counts that are ambiguous
// below the cutoff, such as 1e10, stay seconds; callers that know their
// payload scale should use a unit wrapper instead.
type FuzzyTimestamp Timestamp

func (t FuzzyTimestamp) MarshalJSON() ([]byte, error) {
	return Timestamp(t).MarshalJSON()
}

func (t *FuzzyTimestamp) UnmarshalJSON(data []byte) error {
	err := (*Timestamp)(t).unmarshalUnit(data, UnitSeconds)
	if err == nil {
		return nil
	}

	var fe *FieldError
	if err == ErrOutOfRange || (asFieldError(err, &fe) && fe.Reason == ReasonOutOfRange) {
		if retry := (*Timestamp)(t).unmarshalUnit(data, UnitMillis); retry == nil {
			return nil
		}
	}

	return err
}

// asFieldError is a tiny errors.As for *FieldError, avoiding the reflect
// path on the hot deserialization boundary.
func asFieldError(err error, target **FieldError) bool {
	fe, ok := err.(*FieldError)
	if ok {
		*target = fe
	}

	return ok
}

// MarshalText encodes the date as [-]YYYY-MM-DD, making Date a JSON string.
func (d Date) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("civil: marshal of invalid date %q", d.String())
	}

	return d.AppendFormat(nil), nil
}

// UnmarshalText decodes a [-]YYYY-MM-DD date.
func (d *Date) UnmarshalText(data []byte) error {
	nd, err := ParseDate(string(data))
	if err != nil {
		return err
	}

	*d = nd

	return nil
}
