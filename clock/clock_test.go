package clock

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-rhythm/rhythm"
)

func TestDemoticAdvances(t *testing.T) {
	a, err := Demotic()
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	b, err := Demotic()
	require.NoError(t, err)

	cmp, err := b.Compare(a)
	require.NoError(t, err)
	assert.Equal(t, 1, cmp)
}

func TestPresentResolvesThroughNowHook(t *testing.T) {
	present := rhythm.Present(defaultContext)
	resolved, err := present.Resolve()
	require.NoError(t, err)
	assert.False(t, resolved.IsEternal())
}

func TestStopwatchLapsAreMonotonic(t *testing.T) {
	sw, err := NewStopwatch()
	require.NoError(t, err)

	first, err := sw.Lap()
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := sw.Lap()
	require.NoError(t, err)

	cmp, err := second.Cmp(first)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cmp, 0)
	assert.Len(t, sw.Laps(), 2)
}

func TestSleeperDisturbCancelsWait(t *testing.T) {
	s := NewSleeper()

	done := make(chan error, 1)
	go func() {
		d, _ := rhythm.NewMeasure(defaultContext, "minute", big.NewInt(1))
		done <- s.Sleep(d)
	}()

	time.Sleep(10 * time.Millisecond)
	assert.True(t, s.Disturb())

	select {
	case err := <-done:
		assert.ErrorIs(t, err, rhythm.CancelRequested{})
	case <-time.After(time.Second):
		t.Fatal("sleeper did not wake on Disturb")
	}
}

func TestSleeperDisturbBeforeSleepIsBanked(t *testing.T) {
	s := NewSleeper()

	assert.False(t, s.Disturb())

	d, err := rhythm.NewMeasure(defaultContext, "minute", big.NewInt(1))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Sleep(d) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, rhythm.CancelRequested{})
	case <-time.After(time.Second):
		t.Fatal("sleeper did not return immediately for a banked disturb")
	}
}

func TestSleepHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d, err := rhythm.NewMeasure(defaultContext, "minute", big.NewInt(1))
	require.NoError(t, err)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err = Sleep(ctx, d)
	assert.ErrorIs(t, err, context.Canceled)
}
