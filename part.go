package rhythm

import (
	"errors"
	"math/big"

	"github.com/go-rhythm/rhythm/unit"
)

// ErrAlignOutOfRange is returned by Update when an align index selects a
// position outside the occurrences actually present in the containing
// period (e.g. asking for the 6th Thursday of a month that only has 4).
var ErrAlignOutOfRange = errors.New("rhythm: align index out of range for the containing period")

// calendarFields decomposes p, which must be of the second term, into its
// Gregorian date and nanosecond-of-day components.
func (p Point) calendarFields() (day int64, nsecOfDay int64, err error) {
	asNsec, err := p.In(unit.Nanosecond)
	if err != nil {
		return 0, 0, err
	}
	total := asNsec.Int()
	const nsecPerDay = 86400_000_000_000
	d := new(big.Int)
	r := new(big.Int)
	d.QuoRem(total, big.NewInt(nsecPerDay), r)
	if r.Sign() < 0 {
		r.Add(r, big.NewInt(nsecPerDay))
		d.Sub(d, big.NewInt(1))
	}
	return d.Int64(), r.Int64(), nil
}

// SelectRat implements unit.Reader, letting containers (see containers.go)
// pull named components out of a Point without the unit package needing
// any calendar awareness of its own.
func (p Point) SelectRat(part, of string) (*big.Rat, error) {
	v, err := p.Select(part, of)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Select returns the value of `part` within `of` (spec §4.4), e.g.
// Select("day", "month") returns the 0-based day-of-month, Select("hour",
// "day") the 0-based hour-of-day. When of is empty, Select("year", "")
// returns the Gregorian year, Select("weekday", "") the ISO weekday, and
// any other part its absolute count in p's own term (p.In(part).Int()).
func (p Point) Select(part, of string) (*big.Rat, error) {
	switch p.u.Term {
	case unit.Month:
		return p.selectMonthTerm(part, of)
	case unit.Eternal:
		return nil, &unit.IncommensurableUnitsError{A: p.u.Name, B: part}
	default:
		return p.selectSecondTerm(part, of)
	}
}

// SelectInt is Select truncated to an integer, the common case for
// calendar fields which are always whole numbers.
func (p Point) SelectInt(part, of string) (int, error) {
	r, err := p.Select(part, of)
	if err != nil {
		return 0, err
	}
	return int(ratToIntTrunc(r).Int64()), nil
}

func (p Point) selectSecondTerm(part, of string) (*big.Rat, error) {
	day, nsecOfDay, err := p.calendarFields()
	if err != nil {
		return nil, err
	}
	year, month0, day0 := fromDayOfEpoch(day)

	switch {
	case part == "year" && of == "":
		return big.NewRat(int64(year), 1), nil
	case part == "month" && of == "year":
		return big.NewRat(int64(month0), 1), nil
	case part == "day" && of == "month":
		return big.NewRat(int64(day0), 1), nil
	case part == "day" && of == "year":
		return big.NewRat(int64(ordinalDate(year, month0, day0)-1), 1), nil
	case part == "day" && of == "week":
		return big.NewRat(int64(weekdayOf(day)), 1), nil
	case part == "weekday" && (of == "" || of == "week"):
		return big.NewRat(int64(weekdayOf(day)), 1), nil
	case part == "hour" && of == "day":
		return big.NewRat(nsecOfDay/3_600_000_000_000, 1), nil
	case part == "minute" && of == "hour":
		return big.NewRat((nsecOfDay/60_000_000_000)%60, 1), nil
	case part == "second" && of == "minute":
		return big.NewRat((nsecOfDay/1_000_000_000)%60, 1), nil
	case part == "subsecond" && of == "second":
		return big.NewRat(nsecOfDay%1_000_000_000, 1_000_000_000), nil
	}

	// Fall back to pure ratio math for any other commensurate pair
	// sharing p's term (e.g. "minute" of "day", "second" of "hour").
	return p.selectWithin(part, of)
}

// selectWithin returns p's count of part modulo the number of part in one
// of, or p's whole count of part when of is empty.
func (p Point) selectWithin(part, of string) (*big.Rat, error) {
	asPart, err := p.In(part)
	if err != nil {
		return nil, err
	}
	if of == "" {
		return new(big.Rat).SetInt(asPart.Int()), nil
	}
	per, err := p.ctx.Convert(of, part, big.NewRat(1, 1))
	if err != nil {
		return nil, err
	}
	if !per.IsInt() || per.Sign() <= 0 {
		return nil, &unit.IncommensurableUnitsError{A: part, B: of}
	}
	return new(big.Rat).SetInt(new(big.Int).Mod(asPart.Int(), per.Num())), nil
}

func (p Point) selectMonthTerm(part, of string) (*big.Rat, error) {
	asMonth, err := p.In(unit.MonthUnit)
	if err != nil {
		return nil, err
	}
	idx := asMonth.n.Int64() // months since monthTermEpochYear-01, per BuildMonth
	year := monthTermEpochYear + floorDiv(int(idx), 12)
	month0 := floorMod(int(idx), 12)

	switch {
	case part == "year" && of == "":
		return big.NewRat(int64(year), 1), nil
	case part == "month" && of == "year":
		return big.NewRat(int64(month0), 1), nil
	case part == "year" && of == "decade":
		return big.NewRat(int64(floorMod(year, 10)), 1), nil
	case part == "year" && of == "century":
		return big.NewRat(int64(floorMod(year, 100)), 1), nil
	}
	return p.selectWithin(part, of)
}

// Truncate returns the start of the `of` period containing p, with all
// finer components zeroed (spec §4.4): Truncate("day") drops the time of
// day, Truncate("month") returns the 1st of the month, Truncate("week")
// returns the Monday of the ISO week containing p (spec §4.3).
func (p Point) Truncate(of string) (Point, error) {
	if p.u.Term != unit.Second {
		return Point{}, &unit.IncommensurableUnitsError{A: p.u.Name, B: of}
	}
	day, _, err := p.calendarFields()
	if err != nil {
		return Point{}, err
	}
	year, month0, day0 := fromDayOfEpoch(day)

	switch of {
	case "day":
		return BuildDate(p.ctx, year, month0, day0)
	case "month":
		return BuildDate(p.ctx, year, month0, 0)
	case "year":
		return BuildDate(p.ctx, year, 0, 0)
	case "week":
		isoYear, week := isoWeek(day)
		return BuildWeek(p.ctx, isoYear, week)
	case "hour", "minute", "second":
		ratio, err := p.ctx.Convert(of, unit.Nanosecond, big.NewRat(1, 1))
		if err != nil {
			return Point{}, err
		}
		nsecPerUnit := ratToIntTrunc(ratio)
		asNsec, err := p.In(unit.Nanosecond)
		if err != nil {
			return Point{}, err
		}
		truncated := new(big.Int).Div(asNsec.Int(), nsecPerUnit)
		return NewPoint(p.ctx, of, truncated)
	default:
		return Point{}, &unit.UnknownUnitError{Unit: of}
	}
}

// Update returns the Point obtained by replacing part (as measured within
// of) with value, leaving coarser components untouched (spec §4.4).
//
// If align == 0, value is the literal replacement — e.g.
// Update("day", 14, "month", 0) moves to the 15th of the same month.
//
// If align != 0, Update instead scans the days of the calendar month
// containing p whose weekday is `value`, and selects the align-th such
// occurrence, counted from 0: align == 1 is the second from the start,
// align == -1 the last, align == -4 the fourth from the last. Because
// align == 0 always takes the direct path above, the first occurrence
// cannot be selected this way. This is how "the last Thursday of the
// month" is expressed: Update("weekday", Thursday, "week", -1).
func (p Point) Update(part string, value *big.Rat, of string, align int) (Point, error) {
	if align == 0 {
		return p.updateDirect(part, value, of)
	}
	return p.updateAligned(part, value, of, align)
}

func (p Point) updateDirect(part string, value *big.Rat, of string) (Point, error) {
	if p.u.Term != unit.Second && p.u.Term != unit.Month {
		return Point{}, &unit.IncommensurableUnitsError{A: p.u.Name, B: part}
	}
	day, nsecOfDay, err := p.calendarFields()
	if err != nil {
		return Point{}, err
	}
	year, month0, day0 := fromDayOfEpoch(day)
	v := int(ratToIntTrunc(value).Int64())

	switch {
	case part == "year" && of == "":
		year = v
	case part == "month" && of == "year":
		month0 = v
	case part == "day" && of == "month":
		day0 = v
	case part == "day" && of == "year":
		return p.updateDayOfYear(year, v)
	default:
		return Point{}, &unit.UnknownContainerError{Name: part + "/" + of}
	}

	newDay := dayOfEpoch(year, month0, day0)
	total := new(big.Int).SetInt64(newDay)
	total.Mul(total, big.NewInt(86400_000_000_000))
	total.Add(total, big.NewInt(nsecOfDay))
	np, err := NewPoint(p.ctx, unit.Nanosecond, total)
	if err != nil {
		return Point{}, err
	}
	return np.In(p.u.Name)
}

func (p Point) updateDayOfYear(year, ordinal int) (Point, error) {
	return BuildDate(p.ctx, year, 0, ordinal)
}

// updateAligned implements the align-indexed search described on Update.
// It is grounded in the calendar "nth weekday of month" idiom: the
// occurrences of `value` as a weekday are enumerated across the month
// containing p, in calendar order, and the align-th one (Python-style
// negative indexing) is selected.
func (p Point) updateAligned(part string, value *big.Rat, of string, align int) (Point, error) {
	if part != "day" && part != "weekday" {
		return Point{}, &unit.UnknownContainerError{Name: part + " (aligned)"}
	}
	day, nsecOfDay, err := p.calendarFields()
	if err != nil {
		return Point{}, err
	}
	year, month0, _ := fromDayOfEpoch(day)
	target := Weekday(ratToIntTrunc(value).Int64())

	monthStart := dayOfEpoch(year, month0, 0)
	length := monthLength(year, month0+1)

	var matches []int64
	for d0 := 0; d0 < length; d0++ {
		dd := monthStart + int64(d0)
		if weekdayOf(dd) == target {
			matches = append(matches, dd)
		}
	}
	if len(matches) == 0 {
		return Point{}, ErrAlignOutOfRange
	}

	idx := align
	if idx < 0 {
		idx = len(matches) + idx
	}
	if idx < 0 || idx >= len(matches) {
		return Point{}, ErrAlignOutOfRange
	}

	total := new(big.Int).SetInt64(matches[idx])
	total.Mul(total, big.NewInt(86400_000_000_000))
	total.Add(total, big.NewInt(nsecOfDay))
	np, err := NewPoint(p.ctx, unit.Nanosecond, total)
	if err != nil {
		return Point{}, err
	}
	return np.In(p.u.Name)
}
