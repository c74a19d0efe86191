package civil

import "strconv"

// Time is a time of day with nanosecond precision, stored as nanoseconds
// since midnight. It carries no date and no zone.
//
// Time is comparable; the natural ordering of the underlying count is the
// chronological ordering within a day.
type Time struct {
	nanos int64 // [0, 86_400e9)
}

var (
	// TimeMin is midnight, the first instant of a day.
	TimeMin = Time{nanos: 0}
	// TimeMax is 23:59:59.999999999, the last representable instant.
	TimeMax = Time{nanos: nanosPerDay - 1}
)

// NewTime builds a validated time of day.
func NewTime(hour, minute, second, nanosecond int) (Time, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return Time{}, newFieldError(FieldTime, ReasonOutOfRange, "")
	}
	if nanosecond < 0 || int64(nanosecond) >= nanosPerSecond {
		return Time{}, newFieldError(FieldFraction, ReasonOutOfRange, strconv.Itoa(nanosecond))
	}

	secs := int64(hour)*3600 + int64(minute)*60 + int64(second)

	return Time{nanos: secs*nanosPerSecond + int64(nanosecond)}, nil
}

// MustNewTime is NewTime for compile-time-known values; it panics on
// invalid input.
func MustNewTime(hour, minute, second, nanosecond int) Time {
	t, err := NewTime(hour, minute, second, nanosecond)
	if err != nil {
		panic(err)
	}

	return t
}

// timeFromDayNanos wraps a validated nanoseconds-since-midnight count.
func timeFromDayNanos(nanos int64) Time {
	return Time{nanos: nanos}
}

// Hour returns the hour component, 0-23.
func (t Time) Hour() int { return int(t.nanos / (3600 * nanosPerSecond)) }

// Minute returns the minute component, 0-59.
func (t Time) Minute() int { return int(t.nanos / (60 * nanosPerSecond) % 60) }

// Second returns the second component, 0-59.
func (t Time) Second() int { return int(t.nanos / nanosPerSecond % 60) }

// Nanosecond returns the sub-second component in nanoseconds.
func (t Time) Nanosecond() int { return int(t.nanos % nanosPerSecond) }

// Compare orders times within a day.
func (t Time) Compare(other Time) int {
	switch {
	case t.nanos < other.nanos:
		return -1
	case t.nanos > other.nanos:
		return 1
	default:
		return 0
	}
}

// AppendFormat appends HH:MM:SS with an optional fraction to dst. The
// fraction is present only when non-zero, with trailing zeros stripped.
func (t Time) AppendFormat(dst []byte) []byte {
	dst = appendPadded(dst, int64(t.Hour()), 2)
	dst = append(dst, ':')
	dst = appendPadded(dst, int64(t.Minute()), 2)
	dst = append(dst, ':')
	dst = appendPadded(dst, int64(t.Second()), 2)

	return appendFraction(dst, int64(t.Nanosecond()))
}

// String renders the time as HH:MM:SS[.fraction].
func (t Time) String() string {
	return string(t.AppendFormat(make([]byte, 0, 18)))
}

// appendFraction appends ".fffffffff" for a nanosecond remainder, stripping
// trailing zeros and omitting the dot entirely for zero.
func appendFraction(dst []byte, nanos int64) []byte {
	if nanos == 0 {
		return dst
	}

	var digits [9]byte
	for i := 8; i >= 0; i-- {
		digits[i] = byte('0' + nanos%10)
		nanos /= 10
	}

	end := 9
	for end > 0 && digits[end-1] == '0' {
		end--
	}

	dst = append(dst, '.')

	return append(dst, digits[:end]...)
}
