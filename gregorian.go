package rhythm

import "fmt"

// Weekday specifies the ISO day of the week (Monday = 0, ..., Sunday = 6).
type Weekday int

// The days of the week, Monday first per ISO 8601.
const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("%%!Weekday(%d)", int(d))
	}
	return longDayNames[d]
}

var longDayNames = [7]string{
	Monday: "Monday", Tuesday: "Tuesday", Wednesday: "Wednesday",
	Thursday: "Thursday", Friday: "Friday", Saturday: "Saturday", Sunday: "Sunday",
}

// daysInMonth is the length, in days, of each 1-based Gregorian month in a
// non-leap year.
var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// isLeap reports whether year is a Gregorian leap year.
func isLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// monthLength returns the number of days in the 1-based Gregorian month
// `monthInYear` of `year`.
func monthLength(year, monthInYear int) int {
	if monthInYear == 2 && isLeap(year) {
		return 29
	}
	return daysInMonth[monthInYear-1]
}

// unixEpochJDN is the Julian Day Number of 1970-01-01.
const unixEpochJDN = 2440588

// termEpochJDN is the Julian Day Number of the day term's internal epoch:
// 1969-12-29, the Monday on or before the unix epoch. All units sharing
// the second term (nanosecond .. annum) are exact multiples of one
// another away from this same instant, so anchoring it at a Monday is
// what lets a Week Point's canonical integer value — a pure Factor-7
// multiple of days from this same epoch — always land exactly on that
// week's Monday (spec §4.3), and lets a raw day-of-week computation
// (Select("day", "week")) agree with the calendar weekday. The unix
// epoch itself is a Thursday, so the two cannot coincide; the `unix`
// container (see containers.go) applies the resulting 3-day offset so
// that external unix timestamps convert unaffected.
const termEpochJDN = unixEpochJDN - 3

// unixEpochOffsetDays is the term epoch's distance, in days, before the
// unix epoch.
const unixEpochOffsetDays = 3

// dayOfEpoch converts a proleptic Gregorian (year, month0, day0) — with
// month0 and day0 0-based (January == 0, the 1st == 0) — into a signed day
// count since the term epoch, 1969-12-29 (see termEpochJDN). It never fails: out-of-range month0/day0 values
// normalize into the year per spec §4.4 (month0 -12..11 rolls a year,
// day0 negative or beyond the month's length rolls into neighboring
// months), by first resolving month0 into (year, 1-based month in
// [1,12]), then letting the JDN formula absorb an out-of-range day.
func dayOfEpoch(year, month0, day0 int) int64 {
	// Normalize month0 into a 1-based month and a year carry.
	y := year + floorDiv(month0, 12)
	m := floorMod(month0, 12) + 1 // 1-based, in [1,12]
	d := day0 + 1                 // 1-based day-of-month numerator; JDN formula tolerates out-of-range d.

	yy, mm, dd := int64(y), int64(m), int64(d)
	jdn := (1461*(yy+4800+(mm-14)/12))/4 +
		(367*(mm-2-12*((mm-14)/12)))/12 -
		(3*((yy+4900+(mm-14)/12)/100))/4 +
		dd - 32075
	return jdn - termEpochJDN
}

// fromDayOfEpoch is the inverse of dayOfEpoch: given a signed day count
// since the term epoch, it returns the proleptic Gregorian (year, month0,
// day0), both 0-based.
func fromDayOfEpoch(day int64) (year, month0, day0 int) {
	dd := day + termEpochJDN

	f := dd + 1401 + ((4*dd+274277)/146097)*3/4 - 38
	e := 4*f + 3
	g := (e % 1461) / 4
	h := 5*g + 2

	d := int(h%153)/5 + 1
	m := int(h/153+2) % 12
	y := int(e/1461 - 4716 + (14-int64(m+1))/12)
	return y, m, d - 1
}

// weekdayOf returns the ISO weekday (Monday=0..Sunday=6) of the given
// day-term value. The term epoch is a Monday, so this is a plain modulus.
func weekdayOf(day int64) Weekday {
	return Weekday(floorMod(int(day), 7))
}

// ordinalDate returns the 1-based day-of-year for (year, month0, day0).
func ordinalDate(year, month0, day0 int) int {
	total := day0 + 1
	for m := 0; m < month0; m++ {
		total += monthLength(year, m+1)
	}
	return total
}

// isoWeek returns the ISO 8601 week-based year and week number containing
// the given day-term value.
func isoWeek(day int64) (isoYear, week int) {
	year, month0, day0 := fromDayOfEpoch(day)
	wd := int(weekdayOf(day)) + 1 // 1..7, Monday=1

	isoYear = year
	week = (10 + ordinalDate(year, month0, day0) - wd) / 7

	switch {
	case week == 0:
		return isoYear - 1, isoWeeksInYear(isoYear - 1)
	case week > isoWeeksInYear(year):
		// Week 53 of a year with only 52 ISO weeks is week 1 of the
		// following year.
		return isoYear + 1, 1
	}
	return isoYear, week
}

// isoWeeksInYear returns 53 for a year that starts on a Thursday, or a
// leap year that starts on a Wednesday, and 52 for any other year.
func isoWeeksInYear(year int) int {
	jan1 := weekdayOf(dayOfEpoch(year, 0, 0))
	if jan1 == Thursday || (jan1 == Wednesday && isLeap(year)) {
		return 53
	}
	return 52
}

// mondayOfISOWeek returns the day-term value of the Monday that begins
// ISO week `week` of `isoYear`.
func mondayOfISOWeek(isoYear, week int) int64 {
	jan4 := dayOfEpoch(isoYear, 0, 3)
	jan4Weekday := int(weekdayOf(jan4))
	mondayOfWeek1 := jan4 - int64(jan4Weekday)
	return mondayOfWeek1 + int64(week-1)*7
}

func daysInYear(year int) int {
	if isLeap(year) {
		return 366
	}
	return 365
}

// floorDiv and floorMod implement floored division, as
// opposed to Go's truncating built-in / and %, which are required
// throughout the calendar algorithms to correctly roll negative month/day
// components into neighboring years/months (spec §4.4).
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}
	return m
}
