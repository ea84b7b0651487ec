// Package clock is the live-wall-clock facade: it is the only place in
// rhythm that reads the operating system's notion of "now", and the
// only place that installs rhythm.NowHook, so that the eternal Present
// value (rhythm.Present) can resolve against it.
package clock

import (
	"context"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/go-rhythm/rhythm"
	"github.com/go-rhythm/rhythm/unit"
)

var defaultContext *unit.Context

// monotonicBase is the fixed reference Monotonic measures from; time.Since
// uses the monotonic reading that time.Now attaches to it.
var monotonicBase = time.Now()

func init() {
	ctx, err := rhythm.StandardContext()
	if err != nil {
		panic("clock: building standard context: " + err.Error())
	}
	defaultContext = ctx
	rhythm.NowHook = func() (rhythm.Point, error) {
		return Demotic()
	}
}

// Demotic returns the current wall-clock instant as a nanosecond Point,
// read from time.Now (which itself is not monotonic — see Monotonic for
// that).
func Demotic() (rhythm.Point, error) {
	return fromTime(time.Now())
}

// Monotonic returns a Measure suitable only for measuring elapsed
// durations within this process (spec §6): it is not anchored to any
// calendar epoch and must never be persisted or compared across
// processes.
func Monotonic() rhythm.Measure {
	m, err := rhythm.NewMeasure(defaultContext, unit.Nanosecond, big.NewInt(int64(time.Since(monotonicBase))))
	if err != nil {
		panic("clock: nanosecond unit missing from standard context: " + err.Error())
	}
	return m
}

// fromTime converts t to a nanosecond Point, going through the unix
// container so that the term epoch's offset from the unix epoch applies.
func fromTime(t time.Time) (rhythm.Point, error) {
	unixC, err := defaultContext.ContainerOf("unix")
	if err != nil {
		return rhythm.Point{}, err
	}
	components, err := unixC.Unpack(big.NewInt(t.Unix()))
	if err != nil {
		return rhythm.Point{}, err
	}
	components = append(components, unit.Component{Unit: unit.Nanosecond, Amount: big.NewRat(int64(t.Nanosecond()), 1)})
	m, err := rhythm.Of(defaultContext, unit.Nanosecond, components...)
	if err != nil {
		return rhythm.Point{}, err
	}
	return rhythm.NewPoint(defaultContext, unit.Nanosecond, m.Int())
}

// Sleep blocks for the duration represented by d, honoring ctx
// cancellation.
func Sleep(ctx context.Context, d rhythm.Measure) error {
	asNsec, err := d.In(unit.Nanosecond)
	if err != nil {
		return err
	}
	timer := time.NewTimer(time.Duration(asNsec.Int().Int64()))
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Meter reads two Demotic samples bracketing fn and returns the elapsed
// Measure between them.
func Meter(fn func()) (rhythm.Measure, error) {
	start, err := Demotic()
	if err != nil {
		return rhythm.Measure{}, err
	}
	fn()
	end, err := Demotic()
	if err != nil {
		return rhythm.Measure{}, err
	}
	return end.Since(start)
}

// Stopwatch accumulates a series of laps against a fixed start instant.
type Stopwatch struct {
	id    uuid.UUID
	start rhythm.Point
	laps  []rhythm.Measure
}

// NewStopwatch starts a Stopwatch at the current instant.
func NewStopwatch() (*Stopwatch, error) {
	start, err := Demotic()
	if err != nil {
		return nil, err
	}
	return &Stopwatch{id: uuid.New(), start: start}, nil
}

// ID uniquely identifies this Stopwatch instance, for correlating laps
// across logs.
func (s *Stopwatch) ID() uuid.UUID { return s.id }

// Lap records the Measure elapsed since the start, and returns it.
func (s *Stopwatch) Lap() (rhythm.Measure, error) {
	now, err := Demotic()
	if err != nil {
		return rhythm.Measure{}, err
	}
	d, err := now.Since(s.start)
	if err != nil {
		return rhythm.Measure{}, err
	}
	s.laps = append(s.laps, d)
	return d, nil
}

// Laps returns all recorded laps, in recording order.
func (s *Stopwatch) Laps() []rhythm.Measure {
	out := make([]rhythm.Measure, len(s.laps))
	copy(out, s.laps)
	return out
}

// Periods returns a channel that receives the current Demotic Point
// every interval, until ctx is cancelled, at which point the channel is
// closed.
func Periods(ctx context.Context, interval rhythm.Measure) (<-chan rhythm.Point, error) {
	asNsec, err := interval.In(unit.Nanosecond)
	if err != nil {
		return nil, err
	}
	d := time.Duration(asNsec.Int().Int64())
	if d <= 0 {
		return nil, rhythm.ErrUnsupportedRepresentation
	}

	out := make(chan rhythm.Point)
	go func() {
		defer close(out)
		ticker := time.NewTicker(d)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p, err := Demotic()
				if err != nil {
					return
				}
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
