package rhythm

import (
	"fmt"
	"math/big"

	"github.com/go-rhythm/rhythm/unit"
)

// Measure is a duration expressed as an exact integer count of a specific
// unit. Two Measures of units sharing a term can be compared, added, and
// subtracted; Measures of incommensurable units cannot.
type Measure struct {
	ctx *unit.Context
	u   *unit.Unit
	n   *big.Int
}

// NewMeasure returns the Measure of n units named unitName, resolved
// against ctx.
func NewMeasure(ctx *unit.Context, unitName string, n *big.Int) (Measure, error) {
	u, err := ctx.Unit(unitName)
	if err != nil {
		return Measure{}, err
	}
	return Measure{ctx: ctx, u: u, n: new(big.Int).Set(n)}, nil
}

// Context returns the Context this Measure was resolved against.
func (m Measure) Context() *unit.Context { return m.ctx }

// Unit returns the name of m's unit.
func (m Measure) Unit() string { return m.u.Name }

// Int returns the raw integer count of m's unit.
func (m Measure) Int() *big.Int { return new(big.Int).Set(m.n) }

// IsZero reports whether m is exactly zero.
func (m Measure) IsZero() bool { return m.n.Sign() == 0 }

// termAmount returns m's value expressed in the term's base unit, exactly.
func (m Measure) termAmount() *big.Rat {
	amt := new(big.Rat).SetInt(m.n)
	return amt.Mul(amt, m.u.Factor)
}

// In converts m to the equivalent Measure of unitName, which must share
// m's term. If the conversion is not exact, the result is truncated
// toward zero (spec §4.2): for example, 1500 milliseconds in seconds is
// 1 second, and 1 annum in days is 365 days.
func (m Measure) In(unitName string) (Measure, error) {
	target, err := m.ctx.Unit(unitName)
	if err != nil {
		return Measure{}, err
	}
	if target.Term != m.u.Term {
		return Measure{}, &unit.IncommensurableUnitsError{A: m.u.Name, B: unitName}
	}

	amt := m.termAmount()
	n := new(big.Rat).Quo(amt, target.Factor)
	return Measure{ctx: m.ctx, u: target, n: ratToIntTrunc(n)}, nil
}

// finerOf returns whichever of a, b has the smaller (finer) Factor.
func finerOf(a, b *unit.Unit) *unit.Unit {
	if a.Factor.Cmp(b.Factor) <= 0 {
		return a
	}
	return b
}

// Add returns m + m2. If the units differ, the result is expressed in
// whichever of the two units is finer (spec §4.2: "widens both to the
// finer unit"). Add fails if m and m2 are of different terms.
func (m Measure) Add(m2 Measure) (Measure, error) {
	if m.u.Term != m2.u.Term {
		return Measure{}, &unit.IncommensurableUnitsError{A: m.u.Name, B: m2.u.Name}
	}

	target := finerOf(m.u, m2.u)
	total := new(big.Rat).Add(m.termAmount(), m2.termAmount())
	n := new(big.Rat).Quo(total, target.Factor)
	return Measure{ctx: m.ctx, u: target, n: ratToIntTrunc(n)}, nil
}

// Sub returns m - m2, with the same unit-selection rule as Add.
func (m Measure) Sub(m2 Measure) (Measure, error) {
	neg, err := m2.Neg()
	if err != nil {
		return Measure{}, err
	}
	return m.Add(neg)
}

// Neg returns -m.
func (m Measure) Neg() (Measure, error) {
	return Measure{ctx: m.ctx, u: m.u, n: new(big.Int).Neg(m.n)}, nil
}

// Cmp compares m and m2 after widening to a common term-base
// representation. It returns -1, 0, or 1, following big.Rat.Cmp.
// Cmp fails if m and m2 are of different terms.
func (m Measure) Cmp(m2 Measure) (int, error) {
	if m.u.Term != m2.u.Term {
		return 0, &unit.IncommensurableUnitsError{A: m.u.Name, B: m2.u.Name}
	}
	return m.termAmount().Cmp(m2.termAmount()), nil
}

func (m Measure) String() string {
	return fmt.Sprintf("%s%s", m.n.String(), m.u.Name)
}

// ratToIntTrunc truncates an exact rational toward zero, returning its
// integer part.
func ratToIntTrunc(r *big.Rat) *big.Int {
	if r.IsInt() {
		return new(big.Int).Set(r.Num())
	}
	out := new(big.Int)
	out.Quo(r.Num(), r.Denom())
	return out
}
