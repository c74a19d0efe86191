package civil

// Unit selects the scale used when converting timestamps and durations to
// and from plain integers or floats.
type Unit uint8

const (
	UnitSeconds Unit = iota + 1
	UnitMillis
	UnitMicros
	UnitNanos
)

func (u Unit) String() string {
	switch u {
	case UnitSeconds:
		return "seconds"
	case UnitMillis:
		return "milliseconds"
	case UnitMicros:
		return "microseconds"
	case UnitNanos:
		return "nanoseconds"
	default:
		return "unknown"
	}
}

// IsValid reports whether u is one of the four supported scales.
func (u Unit) IsValid() bool {
	return u >= UnitSeconds && u <= UnitNanos
}

// nanosPer returns the number of nanoseconds in one tick of the unit.
func (u Unit) nanosPer() int64 {
	switch u {
	case UnitSeconds:
		return nanosPerSecond
	case UnitMillis:
		return nanosPerMilli
	case UnitMicros:
		return nanosPerMicro
	default:
		return 1
	}
}

const (
	nanosPerSecond = int64(1_000_000_000)
	nanosPerMilli  = int64(1_000_000)
	nanosPerMicro  = int64(1_000)

	secondsPerDay = int64(86_400)
	nanosPerDay   = secondsPerDay * nanosPerSecond
)
