package civil

// Month is a calendar month in the range January (1) through December (12).
//
// The zero value is not a valid month; constructors and parsers never
// produce it.
type Month uint8

const (
	January Month = iota + 1
	February
	March
	April
	May
	June
	July
	August
	September
	October
	November
	December
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func (m Month) String() string {
	if !m.IsValid() {
		return "Unknown"
	}

	return monthNames[m-1]
}

// IsValid reports whether m is in January..December.
func (m Month) IsValid() bool {
	return m >= January && m <= December
}

// Next returns the month after m, wrapping December to January.
func (m Month) Next() Month {
	if m == December {
		return January
	}

	return m + 1
}

// Previous returns the month before m, wrapping January to December.
func (m Month) Previous() Month {
	if m == January {
		return December
	}

	return m - 1
}

// monthDays indexes the day count of each month in a non-leap year.
var monthDays = [...]uint8{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysIn returns the number of days of m in the given year, accounting for
// leap-year Februaries.
func (m Month) DaysIn(year int) int {
	if m == February && isLeapYear(year) {
		return 29
	}

	return int(monthDays[m-1])
}

// isLeapYear implements the proleptic Gregorian leap rule. It holds for
// negative years as well: year -4 is a leap year.
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
