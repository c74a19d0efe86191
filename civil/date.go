package civil

import (
	"iter"
	"strconv"
	"time"
)

// Date is a civil calendar date in the proleptic Gregorian calendar, packed
// into four bytes: a 16-bit signed year in [-9999, 9999], a month, and a
// day. A Date value is always calendar-valid; February 29 exists only in
// leap years.
//
// Date is comparable and hashable. The ordering methods compare
// chronologically. The zero value is not a valid date; use DateZero for the
// anchor date 0000-01-01.
type Date struct {
	year  int16
	month Month
	day   uint8
}

// DateZero is 0000-01-01, the anchor of the civil date range.
var DateZero = Date{year: 0, month: January, day: 1}

// Earliest and latest representable dates.
var (
	DateMin = Date{year: minYear, month: January, day: 1}
	DateMax = Date{year: maxYear, month: December, day: 31}
)

// NewDate builds a validated Date. The year must be in [-9999, 9999], the
// month a valid Month, and the day valid for the (year, month) pair.
func NewDate(year int, month Month, day int) (Date, error) {
	if year < minYear || year > maxYear {
		return Date{}, newFieldError(FieldYear, ReasonOutOfRange, strconv.Itoa(year))
	}
	if !month.IsValid() {
		return Date{}, newFieldError(FieldMonth, ReasonInvalid, strconv.Itoa(int(month)))
	}
	if day < 1 || day > month.DaysIn(year) {
		return Date{}, newFieldError(FieldDay, ReasonOutOfRange, strconv.Itoa(day))
	}

	return Date{year: int16(year), month: month, day: uint8(day)}, nil
}

// MustNewDate is NewDate for compile-time-known dates; it panics on
// invalid input.
func MustNewDate(year int, month Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}

	return d
}

// DateBuilder assembles a Date step by step, validating each component as
// it is set. The day is validated against the month-specific maximum, so it
// must be set after the year and month. The first failure sticks and is
// reported by Build.
type DateBuilder struct {
	year     int
	month    Month
	day      int
	hasYear  bool
	hasMonth bool
	hasDay   bool
	err      error
}

// NewDateBuilder creates an empty builder.
func NewDateBuilder() *DateBuilder {
	return &DateBuilder{}
}

// Year sets the year component; it must be in [-9999, 9999].
func (b *DateBuilder) Year(year int) *DateBuilder {
	if b.err != nil {
		return b
	}
	if year < minYear || year > maxYear {
		b.err = newFieldError(FieldYear, ReasonOutOfRange, strconv.Itoa(year))
		return b
	}

	b.year = year
	b.hasYear = true

	return b
}

// Month sets the month component.
func (b *DateBuilder) Month(month Month) *DateBuilder {
	if b.err != nil {
		return b
	}
	if !month.IsValid() {
		b.err = newFieldError(FieldMonth, ReasonInvalid, strconv.Itoa(int(month)))
		return b
	}

	b.month = month
	b.hasMonth = true

	return b
}

// Day sets the day component. Year and month must already be set so the
// month-specific maximum (29 on leap Februaries) can be applied.
func (b *DateBuilder) Day(day int) *DateBuilder {
	if b.err != nil {
		return b
	}
	if !b.hasYear {
		b.err = newFieldError(FieldYear, ReasonMissing, "")
		return b
	}
	if !b.hasMonth {
		b.err = newFieldError(FieldMonth, ReasonMissing, "")
		return b
	}
	if day < 1 || day > b.month.DaysIn(b.year) {
		b.err = newFieldError(FieldDay, ReasonOutOfRange, strconv.Itoa(day))
		return b
	}

	b.day = day
	b.hasDay = true

	return b
}

// Build returns the assembled Date or the first validation failure.
func (b *DateBuilder) Build() (Date, error) {
	if b.err != nil {
		return Date{}, b.err
	}
	if !b.hasYear {
		return Date{}, newFieldError(FieldYear, ReasonMissing, "")
	}
	if !b.hasMonth {
		return Date{}, newFieldError(FieldMonth, ReasonMissing, "")
	}
	if !b.hasDay {
		return Date{}, newFieldError(FieldDay, ReasonMissing, "")
	}

	return Date{year: int16(b.year), month: b.month, day: uint8(b.day)}, nil
}

// Year returns the year component in [-9999, 9999].
func (d Date) Year() int { return int(d.year) }

// Month returns the month component.
func (d Date) Month() Month { return d.month }

// Day returns the day-of-month component.
func (d Date) Day() int { return int(d.day) }

// IsValid reports whether d was produced by a constructor rather than being
// a zero or hand-assembled value.
func (d Date) IsValid() bool {
	return d.month.IsValid() && d.day >= 1 && int(d.day) <= d.month.DaysIn(int(d.year))
}

// dayNumber returns the days-since-epoch ordinal of d.
func (d Date) dayNumber() int64 {
	return daysFromCivil(int(d.year), d.month, int(d.day))
}

// dateFromDayNumber is the inverse of dayNumber; ok is false outside the
// supported year range.
func dateFromDayNumber(days int64) (Date, bool) {
	if days < minDayNumber || days > maxDayNumber {
		return Date{}, false
	}

	y, m, dd := civilFromDays(days)

	return Date{year: int16(y), month: m, day: uint8(dd)}, true
}

// NextDay returns the following calendar day, or ok=false at DateMax.
func (d Date) NextDay() (Date, bool) {
	return dateFromDayNumber(d.dayNumber() + 1)
}

// PrevDay returns the preceding calendar day, or ok=false at DateMin.
func (d Date) PrevDay() (Date, bool) {
	return dateFromDayNumber(d.dayNumber() - 1)
}

// AddDays returns the date n calendar days after d (before, for negative
// n), or ErrOutOfRange when the result leaves the supported range.
func (d Date) AddDays(n int64) (Date, error) {
	nd, ok := dateFromDayNumber(d.dayNumber() + n)
	if !ok {
		return Date{}, ErrOutOfRange
	}

	return nd, nil
}

// DaysUntil returns the number of calendar days from d to other; negative
// when other precedes d. The count is exact across leap years because it is
// computed on day ordinals, not on month lengths.
func (d Date) DaysUntil(other Date) int64 {
	return other.dayNumber() - d.dayNumber()
}

// Sub returns the span from other to d (d - other) as a Duration,
// saturating when the span exceeds the nanosecond range.
func (d Date) Sub(other Date) Duration {
	return durationFromSpan((d.dayNumber()-other.dayNumber())*secondsPerDay, 0)
}

// Ordinal returns the 1-based day-of-year, 1 through 365 or 366.
func (d Date) Ordinal() int {
	return ordinalInYear(int(d.year), d.month, int(d.day))
}

// Weekday returns the day of the week of d.
func (d Date) Weekday() time.Weekday {
	// 1970-01-01 was a Thursday.
	return time.Weekday(floorMod(d.dayNumber()+4, 7))
}

// AtTime composes the date with a time of day into a Timestamp. Total for
// every valid Date and Time: the composition always lands inside the
// timestamp range.
func (d Date) AtTime(t Time) Timestamp {
	secs := d.dayNumber()*secondsPerDay + t.nanos/nanosPerSecond

	return Timestamp{seconds: secs, nanos: int32(t.nanos % nanosPerSecond)}
}

// Earliest returns the first instant of the day, midnight.
func (d Date) Earliest() Timestamp {
	return d.AtTime(TimeMin)
}

// Latest returns the last representable instant of the day.
func (d Date) Latest() Timestamp {
	return d.AtTime(TimeMax)
}

// Compare orders dates chronologically: -1 if d precedes other, 0 if equal,
// +1 if d follows other.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		if d.year < other.year {
			return -1
		}
		return 1
	case d.month != other.month:
		if d.month < other.month {
			return -1
		}
		return 1
	case d.day != other.day:
		if d.day < other.day {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Before reports whether d precedes other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d follows other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// DatesBetween iterates the half-open range [from, to) day by day. The
// number of yielded dates equals from.DaysUntil(to) when to follows from,
// and zero otherwise.
func DatesBetween(from, to Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for day := from.dayNumber(); day < to.dayNumber(); day++ {
			d, ok := dateFromDayNumber(day)
			if !ok {
				return
			}
			if !yield(d) {
				return
			}
		}
	}
}

// AppendFormat appends the [-]YYYY-MM-DD rendering of d to dst and returns
// the extended slice. The year is zero-padded to at least four digits with
// a leading '-' for negative years.
func (d Date) AppendFormat(dst []byte) []byte {
	year := int(d.year)
	if year < 0 {
		dst = append(dst, '-')
		year = -year
	}

	dst = appendPadded(dst, int64(year), 4)
	dst = append(dst, '-')
	dst = appendPadded(dst, int64(d.month), 2)
	dst = append(dst, '-')
	dst = appendPadded(dst, int64(d.day), 2)

	return dst
}

// String renders the date as [-]YYYY-MM-DD.
func (d Date) String() string {
	return string(d.AppendFormat(make([]byte, 0, 11)))
}

// appendPadded appends v in decimal, zero-padded to at least width digits.
// v must be non-negative.
func appendPadded(dst []byte, v int64, width int) []byte {
	var tmp [20]byte
	n := len(strconv.AppendInt(tmp[:0], v, 10))
	for pad := width - n; pad > 0; pad-- {
		dst = append(dst, '0')
	}

	return append(dst, tmp[:n]...)
}
