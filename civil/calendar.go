package civil

// Integer civil-calendar arithmetic on the proleptic Gregorian calendar.
//
// The conversions below are the days_from_civil / civil_from_days pair in
// Howard Hinnant's "chrono-compatible low-level date algorithms", restated
// with explicit floor division so they hold for the negative years this
// package supports.

// daysFromCivil converts a civil (year, month, day) triple to the number of
// days since the Unix epoch 1970-01-01. Valid for any in-range date; the
// caller guarantees the triple is calendar-valid.
func daysFromCivil(year int, month Month, day int) int64 {
	y := int64(year)
	m := int64(month)
	d := int64(day)

	if m <= 2 {
		y--
	}

	era := floorDiv(y, 400)
	yoe := y - era*400 // [0, 399]

	var mp int64
	if m > 2 {
		mp = m - 3
	} else {
		mp = m + 9
	}

	doy := (153*mp+2)/5 + d - 1              // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy   // [0, 146096]

	return era*146097 + doe - 719468
}

// civilFromDays converts days since 1970-01-01 back to a civil triple.
// The inverse of daysFromCivil for any in-range day number.
func civilFromDays(days int64) (year int, month Month, day int) {
	z := days + 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097                                        // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365       // [0, 399]
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)                     // [0, 365]
	mp := (5*doy + 2) / 153                                      // [0, 11]
	d := doy - (153*mp+2)/5 + 1                                  // [1, 31]

	var m int64
	if mp < 10 {
		m = mp + 3
	} else {
		m = mp - 9
	}

	if m <= 2 {
		y++
	}

	return int(y), Month(m), int(d)
}

// ordinalInYear returns the 1-based day-of-year of the triple.
func ordinalInYear(year int, month Month, day int) int {
	ord := day
	for m := January; m < month; m++ {
		ord += m.DaysIn(year)
	}

	return ord
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}

// floorMod is the remainder paired with floorDiv; the result has the sign
// of b (non-negative for the positive divisors used in this package).
func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

// Day-number bounds of the supported year range.
var (
	minDayNumber = daysFromCivil(minYear, January, 1)
	maxDayNumber = daysFromCivil(maxYear, December, 31)
)

const (
	minYear = -9999
	maxYear = 9999
)
