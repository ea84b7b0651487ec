// Package unit implements the rational unit graph described in the time
// context: a registry mapping unit names onto an exact rational factor
// relative to a canonical base unit (a "term"), plus the named composite
// containers used to select and construct values from tuples, strings,
// and other composite representations.
//
// Everything here is exact. Unit ratios are stored as big.Rat so that,
// for instance, a second composed of 1000 milliseconds and a minute
// composed of 60 seconds never drift relative to each other no matter how
// many conversions are chained.
package unit

import (
	"math/big"
	"sync"
)

// Term identifies the canonical base unit that a family of units is
// exactly convertible to by scaling alone. Units sharing a term can be
// composed and converted; units of different terms cannot.
type Term int

const (
	// Second is the term underlying all units of elapsed earth-time,
	// from yoctoseconds to yottaseconds, hours, days, and weeks.
	Second Term = iota
	// Month is the term underlying the Gregorian calendar units: month,
	// year, decade, century, millennium. It is non-uniform with respect
	// to Second and is handled by the calendar algorithms, not by a
	// fixed rational factor.
	Month
	// Eternal is the term admitting exactly the three values Genesis,
	// Present, and Never.
	Eternal
)

func (t Term) String() string {
	switch t {
	case Second:
		return "second"
	case Month:
		return "month"
	case Eternal:
		return "eternal"
	default:
		return "unknown"
	}
}

// Unit is a named member of a Term family. One unit equals Factor units
// of the term's base representation (e.g. for the Second term, the base
// representation is one second: Factor(millisecond) = 1/1000).
type Unit struct {
	Name   string
	Term   Term
	Factor *big.Rat
}

// Context is a registry of units and the named containers that pack and
// unpack composite representations of values built from those units.
// A Context is built once and is safe for concurrent reads once
// construction (Define/RegisterContainer) has finished; composing ratios lazily
// populates an internal cache guarded by a mutex.
type Context struct {
	mu         sync.RWMutex
	units      map[string]*Unit
	compose    map[[2]string]*big.Rat
	containers map[string]Container
}

// Component is one (unit, amount) pair in a heterogeneous unit bag, as fed
// to a builder or produced by a container's Unpack.
type Component struct {
	Unit   string
	Amount *big.Rat
}

// Container is a named composite type: Pack derives a composite value
// (tuple, string, rational, ...) from a Reader over a value of some unit,
// and Unpack expands a composite argument back into unit bag components
// suitable for a builder.
type Container interface {
	Pack(r Reader) (any, error)
	Unpack(arg any) ([]Component, error)
}

// Reader is the minimal interface a container needs to pack a composite
// value: selecting parts of whatever Measure or Point it was given.
type Reader interface {
	SelectRat(part, of string) (*big.Rat, error)
	Unit() string
}

// New returns an empty Context with no units or containers registered.
func New() *Context {
	return &Context{
		units:      make(map[string]*Unit),
		compose:    make(map[[2]string]*big.Rat),
		containers: make(map[string]Container),
	}
}

// DefineBase registers a new term's base unit: one unit of name `name`
// equals one unit of its own term, i.e. Factor == 1.
func (c *Context) DefineBase(name string, term Term) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.units[name]; ok {
		return &UnitAlreadyDefinedError{Unit: name}
	}
	c.units[name] = &Unit{Name: name, Term: term, Factor: big.NewRat(1, 1)}
	return nil
}

// Define declares `unit` such that `n` of `unit` equals `factor` of
// `ref`. The new unit inherits ref's term, and its Factor is computed
// relative to the term's base unit. Define fails with
// UnitAlreadyDefinedError if `unit` is already registered, or
// UnknownReferentError if `ref` is not.
func (c *Context) Define(name, ref string, n int64, factor *big.Rat) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.units[name]; ok {
		return &UnitAlreadyDefinedError{Unit: name}
	}

	refUnit, ok := c.units[ref]
	if !ok {
		return &UnknownReferentError{Referent: ref}
	}

	// n of `name` == factor of `ref`, so one `name` == (factor/n) of `ref`,
	// and in term units that is (factor/n) * refUnit.Factor.
	perUnit := new(big.Rat).Quo(factor, big.NewRat(n, 1))
	cumulative := new(big.Rat).Mul(perUnit, refUnit.Factor)

	c.units[name] = &Unit{Name: name, Term: refUnit.Term, Factor: cumulative}
	return nil
}

// Unit returns the registered unit descriptor for name.
func (c *Context) Unit(name string) (*Unit, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	u, ok := c.units[name]
	if !ok {
		return nil, &UnknownUnitError{Unit: name}
	}
	return u, nil
}

// Compose returns the exact rational factor such that 1 unit of `a`
// equals compose(a,b) units of `b`. Both units must share a term, or
// Compose fails with IncommensurableUnitsError.
func (c *Context) Compose(a, b string) (*big.Rat, error) {
	if a == b {
		return big.NewRat(1, 1), nil
	}

	key := [2]string{a, b}
	c.mu.RLock()
	if r, ok := c.compose[key]; ok {
		c.mu.RUnlock()
		return new(big.Rat).Set(r), nil
	}
	c.mu.RUnlock()

	ua, err := c.Unit(a)
	if err != nil {
		return nil, err
	}
	ub, err := c.Unit(b)
	if err != nil {
		return nil, err
	}
	if ua.Term != ub.Term {
		return nil, &IncommensurableUnitsError{A: a, B: b}
	}

	ratio := new(big.Rat).Quo(ua.Factor, ub.Factor)

	c.mu.Lock()
	c.compose[key] = new(big.Rat).Set(ratio)
	c.mu.Unlock()

	return ratio, nil
}

// Convert returns n * Compose(a, b), the exact rational amount of b that
// n of a represents.
func (c *Context) Convert(a, b string, n *big.Rat) (*big.Rat, error) {
	ratio, err := c.Compose(a, b)
	if err != nil {
		return nil, err
	}
	return new(big.Rat).Mul(n, ratio), nil
}

// RegisterContainer registers a named composite under `name`. It fails if
// the name is already registered.
func (c *Context) RegisterContainer(name string, container Container) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.containers[name]; ok {
		return &UnitAlreadyDefinedError{Unit: name}
	}
	c.containers[name] = container
	return nil
}

// ContainerOf returns the registered container for name.
func (c *Context) ContainerOf(name string) (Container, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	container, ok := c.containers[name]
	if !ok {
		return nil, &UnknownContainerError{Name: name}
	}
	return container, nil
}

// Units returns the names of every unit sharing the given term, for
// diagnostic and enumeration purposes.
func (c *Context) Units(term Term) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []string
	for name, u := range c.units {
		if u.Term == term {
			out = append(out, name)
		}
	}
	return out
}
