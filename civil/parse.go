package civil

// Hand-rolled RFC 3339 parsing. The standard library's time.Parse is both
// too lenient (two-digit years) and too strict (no negative years) for the
// grammar this package accepts, and it cannot report which component was at
// fault; scanning the components directly keeps the error taxonomy exact.

// ParseDate parses "[-]YYYY-MM-DD". The year takes four or more digits and
// may carry a leading '-'; month and day are two digits each. Failures are
// reported as *FieldError naming the component and the kind of failure.
func ParseDate(s string) (Date, error) {
	d, rest, err := parseDatePrefix(s)
	if err != nil {
		return Date{}, err
	}
	if rest != len(s) {
		return Date{}, newFieldError(FieldDay, ReasonInvalid, s[rest:])
	}

	return d, nil
}

// ParseTimestamp parses an RFC 3339 instant: a date, a case-sensitive 'T',
// a HH:MM:SS time with optional fractional seconds, and either a
// case-sensitive 'Z' or a numeric ±HH:MM offset. Offsets are converted to
// UTC. Failures are reported as *FieldError; instants outside the supported
// year range yield ErrOutOfRange.
func ParseTimestamp(s string) (Timestamp, error) {
	d, i, err := parseDatePrefix(s)
	if err != nil {
		return Timestamp{}, err
	}

	if i >= len(s) {
		return Timestamp{}, newFieldError(FieldTime, ReasonMissing, "")
	}
	if s[i] != 'T' {
		return Timestamp{}, newFieldError(FieldTime, ReasonInvalid, s[i:])
	}
	i++

	hour, i, err := parseFixedDigits(s, i, FieldTime)
	if err != nil {
		return Timestamp{}, err
	}
	i, err = expectColon(s, i)
	if err != nil {
		return Timestamp{}, err
	}
	minute, i, err := parseFixedDigits(s, i, FieldTime)
	if err != nil {
		return Timestamp{}, err
	}
	i, err = expectColon(s, i)
	if err != nil {
		return Timestamp{}, err
	}
	second, i, err := parseFixedDigits(s, i, FieldTime)
	if err != nil {
		return Timestamp{}, err
	}
	if hour > 23 || minute > 59 || second > 59 {
		return Timestamp{}, newFieldError(FieldTime, ReasonOutOfRange, s)
	}

	var nanos int64
	if i < len(s) && s[i] == '.' {
		i++
		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		ndigits := i - start
		if ndigits == 0 {
			return Timestamp{}, newFieldError(FieldFraction, ReasonMissing, "")
		}
		if ndigits > 9 {
			// Finer than nanosecond precision is not representable.
			return Timestamp{}, newFieldError(FieldFraction, ReasonInvalid, s[start:i])
		}
		for _, c := range []byte(s[start:i]) {
			nanos = nanos*10 + int64(c-'0')
		}
		for k := ndigits; k < 9; k++ {
			nanos *= 10
		}
	}

	var offsetSeconds int64
	switch {
	case i >= len(s):
		return Timestamp{}, newFieldError(FieldOffset, ReasonMissing, "")
	case s[i] == 'Z':
		i++
	case s[i] == '+' || s[i] == '-':
		sign := int64(1)
		if s[i] == '-' {
			sign = -1
		}
		i++
		oh, j, err := parseFixedDigits(s, i, FieldOffset)
		if err != nil {
			return Timestamp{}, err
		}
		i = j
		i, err = expectColon(s, i)
		if err != nil {
			return Timestamp{}, err
		}
		om, j, err := parseFixedDigits(s, i, FieldOffset)
		if err != nil {
			return Timestamp{}, err
		}
		i = j
		if oh > 23 || om > 59 {
			return Timestamp{}, newFieldError(FieldOffset, ReasonOutOfRange, s)
		}
		offsetSeconds = sign * (int64(oh)*3600 + int64(om)*60)
	default:
		return Timestamp{}, newFieldError(FieldOffset, ReasonInvalid, s[i:])
	}

	if i != len(s) {
		return Timestamp{}, newFieldError(FieldOffset, ReasonInvalid, s[i:])
	}

	seconds := d.dayNumber()*secondsPerDay +
		int64(hour)*3600 + int64(minute)*60 + int64(second) -
		offsetSeconds

	ts := Timestamp{seconds: seconds, nanos: int32(nanos)}
	if !ts.inRange() {
		return Timestamp{}, ErrOutOfRange
	}

	return ts, nil
}

// parseDatePrefix scans "[-]YYYY-MM-DD" at the start of s and returns the
// date plus the index of the first unconsumed byte.
func parseDatePrefix(s string) (Date, int, error) {
	i := 0
	negative := false
	if i < len(s) && s[i] == '-' {
		negative = true
		i++
	}

	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	switch {
	case i == start && start == len(s):
		return Date{}, 0, newFieldError(FieldYear, ReasonMissing, "")
	case i-start < 4:
		return Date{}, 0, newFieldError(FieldYear, ReasonInvalid, s[start:i])
	case i-start > 6:
		// More digits than any in-range year can carry.
		return Date{}, 0, newFieldError(FieldYear, ReasonOutOfRange, s[start:i])
	}

	year := 0
	for _, c := range []byte(s[start:i]) {
		year = year*10 + int(c-'0')
	}
	if negative {
		year = -year
	}
	if year < minYear || year > maxYear {
		return Date{}, 0, newFieldError(FieldYear, ReasonOutOfRange, s[start:i])
	}

	if i >= len(s) {
		return Date{}, 0, newFieldError(FieldMonth, ReasonMissing, "")
	}
	if s[i] != '-' {
		return Date{}, 0, newFieldError(FieldMonth, ReasonInvalid, s[i:])
	}
	i++

	monthVal, i, err := parseFixedDigits(s, i, FieldMonth)
	if err != nil {
		return Date{}, 0, err
	}
	month := Month(monthVal)
	if !month.IsValid() {
		return Date{}, 0, newFieldError(FieldMonth, ReasonOutOfRange, s[i-2:i])
	}

	if i >= len(s) {
		return Date{}, 0, newFieldError(FieldDay, ReasonMissing, "")
	}
	if s[i] != '-' {
		return Date{}, 0, newFieldError(FieldDay, ReasonInvalid, s[i:])
	}
	i++

	day, i, err := parseFixedDigits(s, i, FieldDay)
	if err != nil {
		return Date{}, 0, err
	}
	if day < 1 || day > month.DaysIn(year) {
		return Date{}, 0, newFieldError(FieldDay, ReasonOutOfRange, s[i-2:i])
	}

	return Date{year: int16(year), month: month, day: uint8(day)}, i, nil
}

// parseFixedDigits scans exactly two decimal digits for the given field.
func parseFixedDigits(s string, i int, field Field) (int, int, error) {
	if i >= len(s) {
		return 0, i, newFieldError(field, ReasonMissing, "")
	}
	if i+1 >= len(s) || !isDigit(s[i]) || !isDigit(s[i+1]) {
		return 0, i, newFieldError(field, ReasonInvalid, s[i:])
	}

	return int(s[i]-'0')*10 + int(s[i+1]-'0'), i + 2, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func expectColon(s string, i int) (int, error) {
	if i >= len(s) {
		return i, newFieldError(FieldTime, ReasonMissing, "")
	}
	if s[i] != ':' {
		return i, newFieldError(FieldTime, ReasonInvalid, s[i:])
	}

	return i + 1, nil
}
