package civil

import (
	"math"
	"time"
)

// Duration is a signed span of time counted in nanoseconds, independent of
// any epoch. The representable range is about ±292 years; arithmetic on the
// Saturating* methods clamps to that range, while the Checked* methods
// report overflow with ErrOutOfRange.
type Duration int64

const (
	// DurationZero is the empty span.
	DurationZero Duration = 0
	// DurationMin is the most negative representable span.
	DurationMin Duration = math.MinInt64
	// DurationMax is the largest representable span.
	DurationMax Duration = math.MaxInt64
)

// DurationOf builds a Duration from a count of the given unit, saturating
// when the count does not fit in nanoseconds.
func DurationOf(value int64, unit Unit) Duration {
	per := unit.nanosPer()
	if per == 1 {
		return Duration(value)
	}

	if value > math.MaxInt64/per {
		return DurationMax
	}
	if value < math.MinInt64/per {
		return DurationMin
	}

	return Duration(value * per)
}

// CheckedDurationOf builds a Duration from a count of the given unit,
// returning ErrOutOfRange when the count does not fit in nanoseconds.
func CheckedDurationOf(value int64, unit Unit) (Duration, error) {
	per := unit.nanosPer()
	if per != 1 && (value > math.MaxInt64/per || value < math.MinInt64/per) {
		return DurationZero, ErrOutOfRange
	}

	return Duration(value * per), nil
}

// AsUnit returns the duration converted to the given unit, truncating
// toward zero.
func (d Duration) AsUnit(unit Unit) int64 {
	return int64(d) / unit.nanosPer()
}

// AsFloat returns the duration converted to the given unit as a float.
func (d Duration) AsFloat(unit Unit) float64 {
	return float64(d) / float64(unit.nanosPer())
}

// Nanos returns the duration as a nanosecond count.
func (d Duration) Nanos() int64 { return int64(d) }

// Micros returns the duration in microseconds, truncating toward zero.
func (d Duration) Micros() int64 { return d.AsUnit(UnitMicros) }

// Millis returns the duration in milliseconds, truncating toward zero.
func (d Duration) Millis() int64 { return d.AsUnit(UnitMillis) }

// Secs returns the duration in whole seconds, truncating toward zero.
func (d Duration) Secs() int64 { return d.AsUnit(UnitSeconds) }

// IsNegative reports whether the span is below zero.
func (d Duration) IsNegative() bool { return d < 0 }

// CheckedAdd returns d + other, or ErrOutOfRange on overflow.
func (d Duration) CheckedAdd(other Duration) (Duration, error) {
	sum := d + other
	if (other > 0 && sum < d) || (other < 0 && sum > d) {
		return DurationZero, ErrOutOfRange
	}

	return sum, nil
}

// SaturatingAdd returns d + other, clamping at the representable range.
func (d Duration) SaturatingAdd(other Duration) Duration {
	sum, err := d.CheckedAdd(other)
	if err != nil {
		if other > 0 {
			return DurationMax
		}

		return DurationMin
	}

	return sum
}

// CheckedSub returns d - other, or ErrOutOfRange on overflow.
func (d Duration) CheckedSub(other Duration) (Duration, error) {
	diff := d - other
	if (other < 0 && diff < d) || (other > 0 && diff > d) {
		return DurationZero, ErrOutOfRange
	}

	return diff, nil
}

// SaturatingSub returns d - other, clamping at the representable range.
func (d Duration) SaturatingSub(other Duration) Duration {
	diff, err := d.CheckedSub(other)
	if err != nil {
		if other < 0 {
			return DurationMax
		}

		return DurationMin
	}

	return diff
}

// Neg returns -d, saturating at DurationMax for DurationMin.
func (d Duration) Neg() Duration {
	if d == DurationMin {
		return DurationMax
	}

	return -d
}

// Abs returns the magnitude of d, saturating at DurationMax.
func (d Duration) Abs() Duration {
	if d < 0 {
		return d.Neg()
	}

	return d
}

// Std converts to the standard library representation. The two types share
// the same nanosecond range, so the conversion is exact.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// DurationFromStd converts a standard library duration. Exact.
func DurationFromStd(d time.Duration) Duration {
	return Duration(d)
}

func (d Duration) String() string {
	return d.Std().String()
}

// durationFromSpan builds a Duration from a (seconds, nanoseconds) span,
// saturating when the span exceeds the nanosecond range. The nanos argument
// must be in (-1e9, 1e9).
func durationFromSpan(seconds int64, nanos int64) Duration {
	if seconds > (math.MaxInt64-nanosPerSecond)/nanosPerSecond {
		return DurationMax
	}
	if seconds < (math.MinInt64+nanosPerSecond)/nanosPerSecond {
		return DurationMin
	}

	return Duration(seconds*nanosPerSecond + nanos)
}
