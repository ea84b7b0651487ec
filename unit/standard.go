package unit

import "math/big"

// Standard unit names for the Second term: the SI-prefixed seconds finest
// to coarsest, then minute, hour, day, week, and annum.
const (
	Yoctosecond  = "yoctosecond"
	Zeptosecond  = "zeptosecond"
	Attosecond   = "attosecond"
	Femtosecond  = "femtosecond"
	Picosecond   = "picosecond"
	Nanosecond   = "nanosecond"
	Microsecond  = "microsecond"
	Millisecond  = "millisecond"
	Centisecond  = "centisecond"
	Decisecond   = "decisecond"
	SecondUnit   = "second"
	Decasecond   = "decasecond"
	Hectosecond  = "hectosecond"
	Kilosecond   = "kilosecond"
	Megasecond   = "megasecond"
	Gigasecond   = "gigasecond"
	Terasecond   = "terasecond"
	Petasecond   = "petasecond"
	Exasecond    = "exasecond"
	Zettasecond  = "zettasecond"
	Yottasecond  = "yottasecond"
	MinuteUnit   = "minute"
	HourUnit     = "hour"
	DayUnit      = "day"
	WeekUnit     = "week"
	AnnumUnit    = "annum"
)

// Standard unit names for the Month term.
const (
	MonthUnit      = "month"
	YearUnit       = "year"
	DecadeUnit     = "decade"
	CenturyUnit    = "century"
	MillenniumUnit = "millennium"
)

// EternalUnit is the sole unit of the Eternal term.
const EternalUnit = "eternal"

// metricPrefix is one entry of the SI prefix ladder relative to the second.
type metricPrefix struct {
	name   string
	power  int64 // power of ten relative to the second; negative = subsecond
}

var secondPrefixes = []metricPrefix{
	{Yoctosecond, -24},
	{Zeptosecond, -21},
	{Attosecond, -18},
	{Femtosecond, -15},
	{Picosecond, -12},
	{Nanosecond, -9},
	{Microsecond, -6},
	{Millisecond, -3},
	{Centisecond, -2},
	{Decisecond, -1},
	{Decasecond, 1},
	{Hectosecond, 2},
	{Kilosecond, 3},
	{Megasecond, 6},
	{Gigasecond, 9},
	{Terasecond, 12},
	{Petasecond, 15},
	{Exasecond, 18},
	{Zettasecond, 21},
	{Yottasecond, 24},
}

// Standard builds and returns the default Context: every unit of the
// second term (seconds from yocto- to yotta-, minute/hour/day/week, the
// Julian annum), the month term (Gregorian month/year/decade/century/
// millennium), and the eternal term. Callers needing the calendar-aware
// named containers (iso, date, datetime, ...) should use
// rhythm.StandardContext instead, which builds on top of this.
func Standard() (*Context, error) {
	ctx := New()

	if err := ctx.DefineBase(SecondUnit, Second); err != nil {
		return nil, err
	}

	for _, p := range secondPrefixes {
		factor := pow10(p.power)
		if err := ctx.Define(p.name, SecondUnit, 1, factor); err != nil {
			return nil, err
		}
	}

	if err := ctx.Define(MinuteUnit, SecondUnit, 1, big.NewRat(60, 1)); err != nil {
		return nil, err
	}
	if err := ctx.Define(HourUnit, MinuteUnit, 1, big.NewRat(60, 1)); err != nil {
		return nil, err
	}
	if err := ctx.Define(DayUnit, HourUnit, 1, big.NewRat(24, 1)); err != nil {
		return nil, err
	}
	if err := ctx.Define(WeekUnit, DayUnit, 1, big.NewRat(7, 1)); err != nil {
		return nil, err
	}
	// The Julian annum: 1461 days per four annum (earth.py: days_in_four_annum).
	if err := ctx.Define(AnnumUnit, DayUnit, 4, big.NewRat(1461, 1)); err != nil {
		return nil, err
	}

	if err := ctx.DefineBase(MonthUnit, Month); err != nil {
		return nil, err
	}
	if err := ctx.Define(YearUnit, MonthUnit, 1, big.NewRat(12, 1)); err != nil {
		return nil, err
	}
	if err := ctx.Define(DecadeUnit, YearUnit, 1, big.NewRat(10, 1)); err != nil {
		return nil, err
	}
	if err := ctx.Define(CenturyUnit, YearUnit, 1, big.NewRat(100, 1)); err != nil {
		return nil, err
	}
	if err := ctx.Define(MillenniumUnit, YearUnit, 1, big.NewRat(1000, 1)); err != nil {
		return nil, err
	}

	if err := ctx.DefineBase(EternalUnit, Eternal); err != nil {
		return nil, err
	}

	// The standard containers (iso, date, datetime, timeofday, unix,
	// subsecond) are calendar-aware and so cannot be registered from this
	// package without an import cycle; rhythm.StandardContext registers
	// them on top of the Context this function returns.
	return ctx, nil
}

// pow10 returns 10^power as an exact rational, for positive or negative power.
func pow10(power int64) *big.Rat {
	if power >= 0 {
		n := new(big.Int).Exp(big.NewInt(10), big.NewInt(power), nil)
		return new(big.Rat).SetInt(n)
	}
	d := new(big.Int).Exp(big.NewInt(10), big.NewInt(-power), nil)
	return new(big.Rat).SetFrac(big.NewInt(1), d)
}
