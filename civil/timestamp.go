package civil

import (
	"math"
	"time"
)

// Timestamp is an instant on the UTC timeline, stored as a normalized pair
// of seconds since the Unix epoch and a nanosecond remainder in [0, 1e9).
// The representable range spans calendar years -9999 through 9999
// inclusive, mirroring the protobuf well-known Timestamp type.
//
// Timestamp is comparable and hashable: the normalized representation makes
// Go's == and map hashing agree with chronological equality.
type Timestamp struct {
	seconds int64
	nanos   int32 // [0, 1e9)
}

// TimestampZero is 1970-01-01T00:00:00Z.
var TimestampZero = Timestamp{}

// Earliest and latest representable instants.
var (
	TimestampMin = Timestamp{seconds: minDayNumber * secondsPerDay}
	TimestampMax = Timestamp{
		seconds: maxDayNumber*secondsPerDay + secondsPerDay - 1,
		nanos:   int32(nanosPerSecond - 1),
	}
)

// Now reads the system clock.
func Now() Timestamp {
	now := time.Now()

	return Timestamp{seconds: now.Unix(), nanos: int32(now.Nanosecond())}
}

// FromTime converts a standard library instant, or returns ErrOutOfRange
// when it falls outside the supported year range.
func FromTime(t time.Time) (Timestamp, error) {
	ts := Timestamp{seconds: t.Unix(), nanos: int32(t.Nanosecond())}
	if !ts.inRange() {
		return Timestamp{}, ErrOutOfRange
	}

	return ts, nil
}

// AsTime converts to the standard library representation in UTC. Lossless
// for every in-range timestamp.
func (t Timestamp) AsTime() time.Time {
	return time.Unix(t.seconds, int64(t.nanos)).UTC()
}

// FromUnit builds a Timestamp from an integer count of the given unit since
// the Unix epoch. Lossless: the count is scaled to (seconds, nanoseconds)
// exactly. Returns ErrOutOfRange when the instant falls outside the
// supported year range.
func FromUnit(value int64, unit Unit) (Timestamp, error) {
	per := unit.nanosPer()
	perSec := nanosPerSecond / per

	ts := Timestamp{
		seconds: floorDiv(value, perSec),
		nanos:   int32(floorMod(value, perSec) * per),
	}
	if !ts.inRange() {
		return Timestamp{}, ErrOutOfRange
	}

	return ts, nil
}

// FromUnitFloat builds a Timestamp from a floating count of the given unit,
// rounding the sub-nanosecond remainder to the nearest nanosecond. NaN,
// infinities, and instants outside the supported range are rejected with
// ErrOutOfRange.
func FromUnitFloat(value float64, unit Unit) (Timestamp, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Timestamp{}, ErrOutOfRange
	}

	// Divide by the tick rate instead of scaling through nanoseconds: the
	// single rounding keeps millisecond and microsecond counts exact.
	inSeconds := value / float64(nanosPerSecond/unit.nanosPer())
	if inSeconds < -4e11 || inSeconds > 4e11 {
		// Clearly outside any representable year; avoid int64 conversion UB.
		return Timestamp{}, ErrOutOfRange
	}

	secs := math.Floor(inSeconds)
	nanos := int64(math.Round((inSeconds - secs) * float64(nanosPerSecond)))
	seconds := int64(secs)
	if nanos >= nanosPerSecond {
		seconds++
		nanos -= nanosPerSecond
	}

	ts := Timestamp{seconds: seconds, nanos: int32(nanos)}
	if !ts.inRange() {
		return Timestamp{}, ErrOutOfRange
	}

	return ts, nil
}

// AsUnit returns the instant as an integer count of the given unit since
// the Unix epoch, truncating toward zero. Counts that do not fit in an
// int64 (nanoseconds far from the epoch) saturate at the int64 bounds.
func (t Timestamp) AsUnit(unit Unit) int64 {
	ticksPerSec := nanosPerSecond / unit.nanosPer()

	if t.seconds > math.MaxInt64/ticksPerSec-1 {
		return math.MaxInt64
	}
	if t.seconds < math.MinInt64/ticksPerSec+1 {
		return math.MinInt64
	}

	ticks := t.seconds*ticksPerSec + int64(t.nanos)/unit.nanosPer()
	if ticks < 0 && int64(t.nanos)%unit.nanosPer() != 0 {
		// Truncation toward zero for instants before the epoch.
		ticks++
	}

	return ticks
}

// AsFloat returns the instant as a floating count of the given unit since
// the Unix epoch.
func (t Timestamp) AsFloat(unit Unit) float64 {
	inSeconds := float64(t.seconds) + float64(t.nanos)/float64(nanosPerSecond)

	return inSeconds * float64(nanosPerSecond/unit.nanosPer())
}

// Unix returns the whole-second count since the epoch, truncating toward
// zero.
func (t Timestamp) Unix() int64 { return t.AsUnit(UnitSeconds) }

// Nanosecond returns the sub-second remainder in [0, 1e9).
func (t Timestamp) Nanosecond() int { return int(t.nanos) }

// Date returns the civil date of the instant in UTC.
func (t Timestamp) Date() Date {
	d, _ := dateFromDayNumber(floorDiv(t.seconds, secondsPerDay))

	return d
}

// TimeOfDay returns the time-of-day component of the instant in UTC.
func (t Timestamp) TimeOfDay() Time {
	secOfDay := floorMod(t.seconds, secondsPerDay)

	return timeFromDayNanos(secOfDay*nanosPerSecond + int64(t.nanos))
}

// CheckedAdd returns t + d, or ErrOutOfRange when the result leaves the
// supported range.
func (t Timestamp) CheckedAdd(d Duration) (Timestamp, error) {
	return t.shifted(d.Nanos())
}

// SaturatingAdd returns t + d, clamping at TimestampMin or TimestampMax.
func (t Timestamp) SaturatingAdd(d Duration) Timestamp {
	ts, err := t.shifted(d.Nanos())
	if err != nil {
		if d > 0 {
			return TimestampMax
		}

		return TimestampMin
	}

	return ts
}

// CheckedSub returns t - d, or ErrOutOfRange when the result leaves the
// supported range.
func (t Timestamp) CheckedSub(d Duration) (Timestamp, error) {
	if d == DurationMin {
		// -DurationMin does not exist; shift by the components instead.
		ts, err := t.shifted(math.MaxInt64)
		if err != nil {
			return Timestamp{}, err
		}

		return ts.shifted(1)
	}

	return t.shifted(-d.Nanos())
}

// SaturatingSub returns t - d, clamping at TimestampMin or TimestampMax.
func (t Timestamp) SaturatingSub(d Duration) Timestamp {
	ts, err := t.CheckedSub(d)
	if err != nil {
		if d < 0 {
			return TimestampMax
		}

		return TimestampMin
	}

	return ts
}

// Sub returns the span from other to t (t - other), saturating when the
// span exceeds the Duration range.
func (t Timestamp) Sub(other Timestamp) Duration {
	return durationFromSpan(t.seconds-other.seconds, int64(t.nanos)-int64(other.nanos))
}

// shifted adds a raw nanosecond delta and range-checks the result. The
// seconds component cannot overflow an int64: the timestamp range is about
// ±3.2e11 seconds and the delta at most ±9.3e9 seconds.
func (t Timestamp) shifted(deltaNanos int64) (Timestamp, error) {
	seconds := t.seconds + deltaNanos/nanosPerSecond
	nanos := int64(t.nanos) + deltaNanos%nanosPerSecond

	if nanos < 0 {
		seconds--
		nanos += nanosPerSecond
	} else if nanos >= nanosPerSecond {
		seconds++
		nanos -= nanosPerSecond
	}

	ts := Timestamp{seconds: seconds, nanos: int32(nanos)}
	if !ts.inRange() {
		return Timestamp{}, ErrOutOfRange
	}

	return ts, nil
}

// Compare orders instants chronologically: -1 if t precedes other, 0 if
// equal, +1 if t follows other.
func (t Timestamp) Compare(other Timestamp) int {
	switch {
	case t.seconds < other.seconds:
		return -1
	case t.seconds > other.seconds:
		return 1
	case t.nanos < other.nanos:
		return -1
	case t.nanos > other.nanos:
		return 1
	default:
		return 0
	}
}

// Before reports whether t precedes other.
func (t Timestamp) Before(other Timestamp) bool { return t.Compare(other) < 0 }

// After reports whether t follows other.
func (t Timestamp) After(other Timestamp) bool { return t.Compare(other) > 0 }

func (t Timestamp) inRange() bool {
	return t.Compare(TimestampMin) >= 0 && t.Compare(TimestampMax) <= 0
}

// AppendISO8601 appends the RFC 3339 rendering of the instant to dst:
// [-]YYYY-MM-DDTHH:MM:SS[.fraction]Z, always UTC, fraction present only
// when non-zero with trailing zeros stripped.
func (t Timestamp) AppendISO8601(dst []byte) []byte {
	dst = t.Date().AppendFormat(dst)
	dst = append(dst, 'T')
	dst = t.TimeOfDay().AppendFormat(dst)

	return append(dst, 'Z')
}

// AsISO8601 renders the instant per AppendISO8601.
func (t Timestamp) AsISO8601() string {
	return string(t.AppendISO8601(make([]byte, 0, 32)))
}

// String is AsISO8601.
func (t Timestamp) String() string {
	return t.AsISO8601()
}
