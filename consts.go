package rhythm

import (
	"fmt"

	"github.com/go-rhythm/rhythm/unit"
)

// Month specifies the month of the year (January = 1, ...), for display
// purposes only — internal month components are 0-based (spec §9).
type Month int

// The months of the year.
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

func (m Month) String() string {
	return longMonthName(int(m))
}

func longMonthName(m int) string {
	if m < int(January) || m > int(December) {
		return fmt.Sprintf("%%!Month(%d)", m)
	}
	return longMonthNames[m-1]
}

var longMonthNames = [12]string{
	January - 1:   "January",
	February - 1:  "February",
	March - 1:     "March",
	April - 1:     "April",
	May - 1:       "May",
	June - 1:      "June",
	July - 1:      "July",
	August - 1:    "August",
	September - 1: "September",
	October - 1:   "October",
	November - 1:  "November",
	December - 1:  "December",
}

// MonthOf returns the display Month of p, which must be of the second
// or month term.
func (p Point) MonthOf() (Month, error) {
	m, err := p.Select("month", "year")
	if err != nil {
		return 0, err
	}
	return Month(ratToIntTrunc(m).Int64() + 1), nil
}

// WeekdayOf returns the ISO weekday of p, which must be of the second
// term.
func (p Point) WeekdayOf() (Weekday, error) {
	if p.u.Term != unit.Second {
		return 0, &unit.IncommensurableUnitsError{A: p.u.Name, B: "weekday"}
	}
	day, _, err := p.calendarFields()
	if err != nil {
		return 0, err
	}
	return weekdayOf(day), nil
}
