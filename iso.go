package rhythm

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/go-rhythm/rhythm/unit"
)

// monthTermEpochYear is the year BuildMonth and the month-term Select
// helpers (part.go) index month counts relative to.
const monthTermEpochYear = 2000

// FormatISO renders p as an ISO 8601 string, at the precision p itself
// was built at (spec §4.5): a Point of day precision renders as
// YYYY-MM-DD, one of month precision as YYYY-MM, and so on down to full
// YYYY-MM-DDThh:mm:ss[.fffffffff] for sub-second precision. Wire
// components are 1-based for month and day, per ISO 8601, even though
// the internal representation is 0-based (spec §9).
func FormatISO(p Point) (string, error) {
	switch p.u.Term {
	case unit.Month:
		return formatISOMonthTerm(p)
	case unit.Second:
		return formatISOSecondTerm(p)
	default:
		return "", &unit.IncommensurableUnitsError{A: p.u.Name, B: "iso"}
	}
}

func formatISOMonthTerm(p Point) (string, error) {
	year, err := p.SelectInt("year", "")
	if err != nil {
		return "", err
	}
	if p.u.Name == unit.YearUnit {
		return fmt.Sprintf("%04d", year), nil
	}
	month0, err := p.SelectInt("month", "year")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d-%02d", year, month0+1), nil
}

func formatISOSecondTerm(p Point) (string, error) {
	year, month0, day0, err := p.calendarYMD()
	if err != nil {
		return "", err
	}

	dayUnit, err := p.ctx.Unit(unit.DayUnit)
	if err != nil {
		return "", err
	}
	if p.u.Factor.Cmp(dayUnit.Factor) >= 0 {
		return fmt.Sprintf("%04d-%02d-%02d", year, month0+1, day0+1), nil
	}

	_, nsecOfDay, err := p.calendarFields()
	if err != nil {
		return "", err
	}
	h := nsecOfDay / 3_600_000_000_000
	mi := (nsecOfDay / 60_000_000_000) % 60
	s := (nsecOfDay / 1_000_000_000) % 60
	ns := nsecOfDay % 1_000_000_000

	var b strings.Builder
	fmt.Fprintf(&b, "%04d-%02d-%02dT%02d", year, month0+1, day0+1, h)

	hourUnit, err := p.ctx.Unit(unit.HourUnit)
	if err != nil {
		return "", err
	}
	if p.u.Factor.Cmp(hourUnit.Factor) >= 0 {
		return b.String(), nil
	}
	fmt.Fprintf(&b, ":%02d", mi)

	minuteUnit, err := p.ctx.Unit(unit.MinuteUnit)
	if err != nil {
		return "", err
	}
	if p.u.Factor.Cmp(minuteUnit.Factor) >= 0 {
		return b.String(), nil
	}
	fmt.Fprintf(&b, ":%02d", s)

	secondUnit, err := p.ctx.Unit(unit.SecondUnit)
	if err != nil {
		return "", err
	}
	if p.u.Factor.Cmp(secondUnit.Factor) >= 0 {
		return b.String(), nil
	}
	if ns != 0 {
		frac := strings.TrimRight(fmt.Sprintf("%09d", ns), "0")
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String(), nil
}

// FormatLong renders p, which must be of the second term, as a
// human-readable date in the teacher's long-form style, e.g. "Wednesday,
// 29 July 2026".
func FormatLong(p Point) (string, error) {
	year, _, day0, err := p.calendarYMD()
	if err != nil {
		return "", err
	}
	month, err := p.MonthOf()
	if err != nil {
		return "", err
	}
	weekday, err := p.WeekdayOf()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s, %d %s %04d", weekday, day0+1, month, year), nil
}

// ParseISO parses an ISO 8601 string, in any of the grammar's truncated
// forms (spec §4.6): YYYY, YYYY-MM, YYYY-MM-DD, or any of those with a
// T-separated time-of-day, itself truncatable at the hour, minute, or
// second, and optionally carrying a fractional-second suffix. The
// returned Point is built at exactly the precision supplied, so that
// FormatISO(ParseISO(ctx, s)) reproduces s (spec §8 law 5).
func ParseISO(ctx *unit.Context, s string) (Point, error) {
	components, target, err := parseISO(s)
	if err != nil {
		return Point{}, err
	}
	m, err := Of(ctx, target, components...)
	if err != nil {
		return Point{}, err
	}
	return Point{Measure: m}, nil
}

// ParseISOComponents parses s into the unit.Component bag used to build
// a Point at its finest supplied precision; it is split out so the iso
// container (containers.go) can reuse it without importing a circular
// dependency back through ParseISO.
func ParseISOComponents(s string) ([]unit.Component, error) {
	components, _, err := parseISO(s)
	return components, err
}

// parseISO does the actual grammar parsing, returning both the
// unit.Component bag and the target unit that bag should be reduced to
// via Of. Year, month, and day are combined through dayOfEpoch rather
// than handed to Of as separate components: year and month belong to
// the Month term, day to the Second term, and Of requires every
// component in a call to share one term with the target.
func parseISO(s string) (components []unit.Component, target string, err error) {
	datePart, timePart, hasTime := strings.Cut(s, "T")

	dateFields := strings.Split(datePart, "-")
	if len(dateFields) == 0 || len(dateFields[0]) == 0 {
		return nil, "", &ParseError{Input: s, Reason: "missing year"}
	}
	year, err := strconv.Atoi(dateFields[0])
	if err != nil {
		return nil, "", &ParseError{Input: s, Reason: "invalid year: " + err.Error()}
	}

	if len(dateFields) == 1 {
		if hasTime {
			return nil, "", &ParseError{Input: s, Reason: "time-of-day requires a full date"}
		}
		return []unit.Component{intComponent(unit.YearUnit, int64(year-monthTermEpochYear))}, unit.YearUnit, nil
	}

	month, err := strconv.Atoi(dateFields[1])
	if err != nil {
		return nil, "", &ParseError{Input: s, Reason: "invalid month: " + err.Error()}
	}
	month0 := month - 1

	if len(dateFields) == 2 {
		if hasTime {
			return nil, "", &ParseError{Input: s, Reason: "time-of-day requires a full date"}
		}
		idx := int64(year-monthTermEpochYear)*12 + int64(month0)
		return []unit.Component{intComponent(unit.MonthUnit, idx)}, unit.MonthUnit, nil
	}

	day, err := strconv.Atoi(dateFields[2])
	if err != nil {
		return nil, "", &ParseError{Input: s, Reason: "invalid day: " + err.Error()}
	}
	day0 := day - 1

	components = []unit.Component{intComponent(unit.DayUnit, dayOfEpoch(year, month0, day0))}
	target = unit.DayUnit
	if !hasTime {
		return components, target, nil
	}

	timeFields := strings.Split(timePart, ":")
	hour, err := strconv.Atoi(timeFields[0])
	if err != nil {
		return nil, "", &ParseError{Input: s, Reason: "invalid hour: " + err.Error()}
	}
	components = append(components, intComponent(unit.HourUnit, int64(hour)))
	target = unit.HourUnit
	if len(timeFields) == 1 {
		return components, target, nil
	}

	min, err := strconv.Atoi(timeFields[1])
	if err != nil {
		return nil, "", &ParseError{Input: s, Reason: "invalid minute: " + err.Error()}
	}
	components = append(components, intComponent(unit.MinuteUnit, int64(min)))
	target = unit.MinuteUnit
	if len(timeFields) == 2 {
		return components, target, nil
	}

	secField := timeFields[2]
	whole, frac, hasFrac := strings.Cut(secField, ".")
	sec, err := strconv.Atoi(whole)
	if err != nil {
		return nil, "", &ParseError{Input: s, Reason: "invalid second: " + err.Error()}
	}
	components = append(components, intComponent(unit.SecondUnit, int64(sec)))
	target = unit.SecondUnit
	if !hasFrac {
		return components, target, nil
	}

	num, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return nil, "", &ParseError{Input: s, Reason: "invalid fractional second: " + err.Error()}
	}
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(frac))), nil)
	amt := new(big.Rat).SetFrac(big.NewInt(num), denom)
	components = append(components, unit.Component{Unit: unit.SecondUnit, Amount: amt})
	target = unit.Nanosecond

	return components, target, nil
}
