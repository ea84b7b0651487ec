package rhythm

import (
	"math/big"

	"github.com/go-rhythm/rhythm/unit"
)

// Point is an instant in time expressed as an exact integer count of a
// specific unit since that unit's term epoch. Unlike Measure, a Point is
// not itself an additive group member: Point + Point is undefined. Point -
// Point yields a Measure, and Point +/- Measure yields a Point.
type Point struct {
	Measure
}

// NewPoint returns the Point of n units named unitName.
func NewPoint(ctx *unit.Context, unitName string, n *big.Int) (Point, error) {
	m, err := NewMeasure(ctx, unitName, n)
	if err != nil {
		return Point{}, err
	}
	return Point{Measure: m}, nil
}

// In converts p to the equivalent Point of unitName.
func (p Point) In(unitName string) (Point, error) {
	m, err := p.Measure.In(unitName)
	if err != nil {
		return Point{}, err
	}
	return Point{Measure: m}, nil
}

// Elapse returns p + d, i.e. the Point reached by elapsing d from p.
func (p Point) Elapse(d Measure) (Point, error) {
	m, err := p.Measure.Add(d)
	if err != nil {
		return Point{}, err
	}
	return Point{Measure: m}, nil
}

// Rollback returns p - d.
func (p Point) Rollback(d Measure) (Point, error) {
	neg, err := d.Neg()
	if err != nil {
		return Point{}, err
	}
	return p.Elapse(neg)
}

// Since returns p - p2 as a Measure: the elapsed time from p2 to p.
// Since fails if p and p2 are of different terms.
func (p Point) Since(p2 Point) (Measure, error) {
	return p.Measure.Sub(p2.Measure)
}

// Compare compares p and p2, returning -1, 0, or 1.
func (p Point) Compare(p2 Point) (int, error) {
	return p.Measure.Cmp(p2.Measure)
}
