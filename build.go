package rhythm

import (
	"math/big"

	"github.com/go-rhythm/rhythm/unit"
)

// Of builds a Measure of unitName from a heterogeneous bag of unit
// components, each of which must share unitName's term (spec §4.2, law
// "unit bag additivity"). Each component's amount is interpreted in its
// own unit (e.g. a `second` component of 1/2 means half of one
// second), widened to the term's base representation, summed exactly,
// and finally reduced to unitName.
func Of(ctx *unit.Context, unitName string, components ...unit.Component) (Measure, error) {
	target, err := ctx.Unit(unitName)
	if err != nil {
		return Measure{}, err
	}

	total := new(big.Rat)
	for _, c := range components {
		cu, err := ctx.Unit(c.Unit)
		if err != nil {
			return Measure{}, err
		}
		if cu.Term != target.Term {
			return Measure{}, &unit.IncommensurableUnitsError{A: unitName, B: c.Unit}
		}
		amt := new(big.Rat).Mul(c.Amount, cu.Factor)
		total.Add(total, amt)
	}

	n := new(big.Rat).Quo(total, target.Factor)
	return Measure{ctx: ctx, u: target, n: ratToIntTrunc(n)}, nil
}

// intComponent is a convenience constructor for an integer-valued
// unit.Component.
func intComponent(unitName string, n int64) unit.Component {
	return unit.Component{Unit: unitName, Amount: big.NewRat(n, 1)}
}

// BuildDate returns the Point, at day precision, corresponding to the
// proleptic Gregorian date (year, month, day), where month and day are
// 0-based (spec §9: "internally, month and day-of-month are 0-based").
// Out-of-range month or day values normalize rather than error (spec
// law 6): BuildDate(ctx, Y, 0, -1) denotes 31 Dec of year Y-1.
func BuildDate(ctx *unit.Context, year, month0, day0 int) (Point, error) {
	day := dayOfEpoch(year, month0, day0)
	return NewPoint(ctx, unit.DayUnit, big.NewInt(day))
}

// BuildDateTime returns the Point, at nanosecond precision, corresponding
// to the proleptic Gregorian date and time of day given. See BuildDate
// for the normalization rules applied to year/month0/day0.
func BuildDateTime(ctx *unit.Context, year, month0, day0, hour, min, sec, nsec int) (Point, error) {
	day := dayOfEpoch(year, month0, day0)

	totalNsec := new(big.Int).SetInt64(day)
	totalNsec.Mul(totalNsec, big.NewInt(86400_000_000_000))

	tod := int64(hour)*3600_000_000_000 + int64(min)*60_000_000_000 + int64(sec)*1_000_000_000 + int64(nsec)
	totalNsec.Add(totalNsec, big.NewInt(tod))

	return NewPoint(ctx, unit.Nanosecond, totalNsec)
}

// BuildMonth returns the Point, at month precision, corresponding to the
// 0-based Gregorian (year, month0). Months roll into years exactly as
// BuildDate's month component does.
func BuildMonth(ctx *unit.Context, year, month0 int) (Point, error) {
	y := year + floorDiv(month0, 12)
	m := floorMod(month0, 12)
	idx := int64(y-monthTermEpochYear)*12 + int64(m)
	return NewPoint(ctx, unit.MonthUnit, big.NewInt(idx))
}

// BuildWeek returns the Point, at week precision, representing the
// Monday of the ISO week (isoYear, week) — spec §4.3: "A Week Point is
// canonically the Monday of that week."
func BuildWeek(ctx *unit.Context, isoYear, week int) (Point, error) {
	monday := mondayOfISOWeek(isoYear, week)
	// monday is always an exact multiple of 7 days from the term epoch,
	// since the epoch itself is a Monday (see termEpochJDN).
	weeks := monday / 7
	return NewPoint(ctx, unit.WeekUnit, big.NewInt(weeks))
}
