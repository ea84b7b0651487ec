package clock

import (
	"sync"
	"time"

	"github.com/go-rhythm/rhythm"
	"github.com/go-rhythm/rhythm/unit"
)

// Sleeper manages a FIFO queue of pending sleeps that can be woken early
// via Disturb, e.g. so a test or an interactive command can cut a long
// sleep short without waiting out its deadline. A Disturb with no sleep
// currently pending is not lost: it is banked and consumed by the next
// Sleep call, which then returns immediately.
type Sleeper struct {
	mu        sync.Mutex
	pending   []chan struct{}
	preempted int
}

// NewSleeper returns an empty Sleeper.
func NewSleeper() *Sleeper { return &Sleeper{} }

// Sleep blocks until d elapses or Disturb is called, whichever comes
// first. If a Disturb is already banked from before this call, Sleep
// consumes it and returns rhythm.CancelRequested immediately. Otherwise,
// if disturbed while waiting, it returns rhythm.CancelRequested.
func (s *Sleeper) Sleep(d rhythm.Measure) error {
	s.mu.Lock()
	if s.preempted > 0 {
		s.preempted--
		s.mu.Unlock()
		return rhythm.CancelRequested{}
	}
	s.mu.Unlock()

	asNsec, err := d.In(unit.Nanosecond)
	if err != nil {
		return err
	}

	wake := make(chan struct{}, 1)
	s.mu.Lock()
	s.pending = append(s.pending, wake)
	s.mu.Unlock()

	timer := time.NewTimer(time.Duration(asNsec.Int().Int64()))
	defer timer.Stop()

	select {
	case <-timer.C:
		s.remove(wake)
		return nil
	case <-wake:
		return rhythm.CancelRequested{}
	}
}

// Disturb wakes the single oldest pending sleep, in FIFO order. If none
// is pending, the disturbance is banked for the next call to Sleep,
// which will then return immediately. It reports whether a sleep was
// woken right away (false means the disturbance was banked instead).
func (s *Sleeper) Disturb() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) == 0 {
		s.preempted++
		return false
	}
	wake := s.pending[0]
	s.pending = s.pending[1:]
	wake <- struct{}{}
	return true
}

// DisturbAll wakes every pending sleep.
func (s *Sleeper) DisturbAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.pending)
	for _, wake := range s.pending {
		wake <- struct{}{}
	}
	s.pending = nil
	return n
}

func (s *Sleeper) remove(wake chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.pending {
		if w == wake {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}
