package rhythm

import (
	"math/big"

	"github.com/go-rhythm/rhythm/unit"
)

// StandardContext builds the default Context used throughout rhythm:
// unit.Standard's full unit registry, plus the calendar-aware named
// containers (spec §4.5) that unit.Standard cannot register itself
// without importing this package.
func StandardContext() (*unit.Context, error) {
	ctx, err := unit.Standard()
	if err != nil {
		return nil, err
	}
	if err := registerContainers(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

func registerContainers(ctx *unit.Context) error {
	containers := map[string]unit.Container{
		"date":      dateContainer{},
		"datetime":  datetimeContainer{},
		"timeofday": timeOfDayContainer{},
		"iso":       isoContainer{},
		"unix":      unixContainer{},
		"subsecond": subsecondContainer{},
	}
	for name, c := range containers {
		if err := ctx.RegisterContainer(name, c); err != nil {
			return err
		}
	}
	return nil
}

// asReader adapts the `any` Pack/Unpack argument — always a Point in
// practice — back into the unit.Reader interface containers need.
func asReader(arg any) (unit.Reader, error) {
	p, ok := arg.(Point)
	if !ok {
		return nil, &unit.UnknownReferentError{Referent: "container argument is not a Point"}
	}
	return p, nil
}

// dateContainer packs/unpacks a Point as (year, month, day), 0-based
// month/day per spec §9.
type dateContainer struct{}

func (dateContainer) Pack(r unit.Reader) (any, error) {
	year, err := r.SelectRat("year", "")
	if err != nil {
		return nil, err
	}
	month, err := r.SelectRat("month", "year")
	if err != nil {
		return nil, err
	}
	day, err := r.SelectRat("day", "month")
	if err != nil {
		return nil, err
	}
	return [3]int{int(ratToIntTrunc(year).Int64()), int(ratToIntTrunc(month).Int64()), int(ratToIntTrunc(day).Int64())}, nil
}

func (dateContainer) Unpack(arg any) ([]unit.Component, error) {
	p, err := asReader(arg)
	if err != nil {
		return nil, err
	}
	pt, ok := p.(Point)
	if !ok {
		return nil, &unit.UnknownReferentError{Referent: "date container requires a Point"}
	}
	y, m, d, err := pt.calendarYMD()
	if err != nil {
		return nil, err
	}
	return []unit.Component{
		intComponent(unit.DayUnit, dayOfEpoch(y, m, d)),
	}, nil
}

// calendarYMD is a small helper shared by the containers that need the
// plain (year, month0, day0) decomposition of a Point.
func (p Point) calendarYMD() (year, month0, day0 int, err error) {
	day, _, err := p.calendarFields()
	if err != nil {
		return 0, 0, 0, err
	}
	year, month0, day0 = fromDayOfEpoch(day)
	return year, month0, day0, nil
}

// datetimeContainer packs/unpacks a Point as (year, month, day, hour,
// minute, second, nanosecond).
type datetimeContainer struct{}

func (datetimeContainer) Pack(r unit.Reader) (any, error) {
	pt, ok := r.(Point)
	if !ok {
		return nil, &unit.UnknownReferentError{Referent: "datetime container requires a Point"}
	}
	y, m, d, err := pt.calendarYMD()
	if err != nil {
		return nil, err
	}
	_, nsecOfDay, err := pt.calendarFields()
	if err != nil {
		return nil, err
	}
	h := nsecOfDay / 3_600_000_000_000
	mi := (nsecOfDay / 60_000_000_000) % 60
	s := (nsecOfDay / 1_000_000_000) % 60
	ns := nsecOfDay % 1_000_000_000
	return [7]int64{int64(y), int64(m), int64(d), h, mi, s, ns}, nil
}

func (datetimeContainer) Unpack(arg any) ([]unit.Component, error) {
	fields, ok := arg.([7]int64)
	if !ok {
		return nil, &unit.UnknownReferentError{Referent: "datetime container expects [7]int64"}
	}
	return []unit.Component{
		intComponent(unit.DayUnit, dayOfEpoch(int(fields[0]), int(fields[1]), int(fields[2]))),
		intComponent(unit.HourUnit, fields[3]),
		intComponent(unit.MinuteUnit, fields[4]),
		intComponent(unit.SecondUnit, fields[5]),
		intComponent(unit.Nanosecond, fields[6]),
	}, nil
}

// timeOfDayContainer packs/unpacks only the (hour, minute, second,
// nanosecond) components, discarding the date.
type timeOfDayContainer struct{}

func (timeOfDayContainer) Pack(r unit.Reader) (any, error) {
	pt, ok := r.(Point)
	if !ok {
		return nil, &unit.UnknownReferentError{Referent: "timeofday container requires a Point"}
	}
	_, nsecOfDay, err := pt.calendarFields()
	if err != nil {
		return nil, err
	}
	h := nsecOfDay / 3_600_000_000_000
	mi := (nsecOfDay / 60_000_000_000) % 60
	s := (nsecOfDay / 1_000_000_000) % 60
	ns := nsecOfDay % 1_000_000_000
	return [4]int64{h, mi, s, ns}, nil
}

func (timeOfDayContainer) Unpack(arg any) ([]unit.Component, error) {
	fields, ok := arg.([4]int64)
	if !ok {
		return nil, &unit.UnknownReferentError{Referent: "timeofday container expects [4]int64"}
	}
	return []unit.Component{
		intComponent(unit.HourUnit, fields[0]),
		intComponent(unit.MinuteUnit, fields[1]),
		intComponent(unit.SecondUnit, fields[2]),
		intComponent(unit.Nanosecond, fields[3]),
	}, nil
}

// isoContainer packs/unpacks the ISO 8601 string representation (see
// iso.go for the grammar).
type isoContainer struct{}

func (isoContainer) Pack(r unit.Reader) (any, error) {
	pt, ok := r.(Point)
	if !ok {
		return nil, &unit.UnknownReferentError{Referent: "iso container requires a Point"}
	}
	return FormatISO(pt)
}

func (isoContainer) Unpack(arg any) ([]unit.Component, error) {
	s, ok := arg.(string)
	if !ok {
		return nil, &unit.UnknownReferentError{Referent: "iso container expects a string"}
	}
	return ParseISOComponents(s)
}

// unixContainer packs/unpacks the point as a signed unix-epoch second
// count. unixEpochOffsetDays corrects for the term epoch being 3 days
// before the true unix epoch (see gregorian.go).
type unixContainer struct{}

func (unixContainer) Pack(r unit.Reader) (any, error) {
	pt, ok := r.(Point)
	if !ok {
		return nil, &unit.UnknownReferentError{Referent: "unix container requires a Point"}
	}
	asSec, err := pt.In(unit.SecondUnit)
	if err != nil {
		return nil, err
	}
	n := new(big.Int).Set(asSec.Int())
	n.Sub(n, big.NewInt(unixEpochOffsetDays*86400))
	return n, nil
}

func (unixContainer) Unpack(arg any) ([]unit.Component, error) {
	n, ok := arg.(*big.Int)
	if !ok {
		return nil, &unit.UnknownReferentError{Referent: "unix container expects *big.Int"}
	}
	shifted := new(big.Int).Add(n, big.NewInt(unixEpochOffsetDays*86400))
	return []unit.Component{{Unit: unit.SecondUnit, Amount: new(big.Rat).SetInt(shifted)}}, nil
}

// subsecondContainer packs/unpacks the fractional-second remainder of a
// Point as an exact rational in [0, 1).
type subsecondContainer struct{}

func (subsecondContainer) Pack(r unit.Reader) (any, error) {
	return r.SelectRat("subsecond", "second")
}

func (subsecondContainer) Unpack(arg any) ([]unit.Component, error) {
	rat, ok := arg.(*big.Rat)
	if !ok {
		return nil, &unit.UnknownReferentError{Referent: "subsecond container expects *big.Rat"}
	}
	return []unit.Component{{Unit: unit.Nanosecond, Amount: new(big.Rat).Mul(rat, big.NewRat(1_000_000_000, 1))}}, nil
}
