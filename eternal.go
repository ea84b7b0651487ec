package rhythm

import (
	"math/big"

	"github.com/go-rhythm/rhythm/unit"
)

// The eternal term admits exactly three canonical values.
const (
	eternalGenesis = -1
	eternalPresent = 0
	eternalNever   = 1
)

// NowHook is invoked by Present.Resolve to obtain the current instant. The
// clock package installs this on import so that reading Present re-reads
// the wall clock, per spec §3 ("Present is unstable"). Until installed,
// Resolve returns an error.
var NowHook func() (Point, error)

func eternal(ctx *unit.Context, n int64) Point {
	p, err := NewPoint(ctx, unit.EternalUnit, big.NewInt(n))
	if err != nil {
		panic("rhythm: eternal unit not registered in context: " + err.Error())
	}
	return p
}

// Genesis returns the earliest Point in time.
func Genesis(ctx *unit.Context) Point { return eternal(ctx, eternalGenesis) }

// Never returns the latest Point in time.
func Never(ctx *unit.Context) Point { return eternal(ctx, eternalNever) }

// Present returns the eternal Point representing "always moving now".
// Its value is read lazily: see Point.Resolve.
func Present(ctx *unit.Context) Point { return eternal(ctx, eternalPresent) }

// IsEternal reports whether p belongs to the eternal term.
func (p Point) IsEternal() bool {
	return p.u.Term == unit.Eternal
}

// Resolve returns p. If p is the eternal Present value, Resolve re-reads
// the wall clock via NowHook instead of returning the sentinel.
func (p Point) Resolve() (Point, error) {
	if !p.IsEternal() || p.n.Int64() != eternalPresent {
		return p, nil
	}
	if NowHook == nil {
		return Point{}, &unit.UnknownUnitError{Unit: "eternal present has no installed clock"}
	}
	return NowHook()
}

// ElapseSaturating adds d to p, saturating to Genesis or Never if p is
// eternal rather than erroring (spec §3: "Genesis + anything finite =
// Genesis; Never + anything finite = Never"). If p is not eternal, it
// behaves as Elapse.
func (p Point) ElapseSaturating(d Measure) (Point, error) {
	if !p.IsEternal() {
		return p.Elapse(d)
	}
	switch p.n.Int64() {
	case eternalGenesis, eternalNever:
		return p, nil
	default: // Present
		resolved, err := p.Resolve()
		if err != nil {
			return Point{}, err
		}
		return resolved.Elapse(d)
	}
}
