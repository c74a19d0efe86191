// Package civil provides fixed-range civil time types with lossless integer
// representation: Timestamp (an instant on the UTC timeline), Date (a
// calendar date), Time (a time of day), Duration (a signed nanosecond span),
// and the Month and Unit enums.
//
// All types are plain comparable values with no hidden state. A Timestamp is
// a normalized (seconds, nanoseconds) pair counted from the Unix epoch; a
// Date is a packed (year, month, day) triple that is always calendar-valid.
// Both cover calendar years -9999 through 9999 inclusive, mirroring the
// range of the protobuf well-known Timestamp type.
//
// # Construction and arithmetic
//
// Constructors validate their inputs and return typed errors; arithmetic is
// available in checked form (returning ErrOutOfRange on overflow) and in
// saturating form (clamping to the representable range):
//
//	ts, err := civil.FromUnit(1642254330, civil.UnitSeconds)
//	later := ts.SaturatingAdd(civil.DurationOf(90, civil.UnitSeconds))
//
// Calendar math is implemented with integer days-from-civil arithmetic, so
// date iteration and day counting are exact across leap years and the full
// year range.
//
// # Serialization
//
// Timestamp serializes to JSON as floating seconds by default, and parses
// numbers (integer or floating seconds) as well as RFC 3339 strings. The
// unit-qualified wrappers TimestampSeconds, TimestampMillis,
// TimestampMicros and TimestampNanos reinterpret numeric JSON at another
// scale, and FuzzyTimestamp accepts either seconds or milliseconds. Date
// serializes as a "YYYY-MM-DD" string.
//
// Parsing failures are reported as *FieldError values naming the offending
// component (year, month, day, time, offset, fraction) and the failure kind
// (missing, invalid, out of range), so callers can match on the cause
// rather than on message text.
package civil
