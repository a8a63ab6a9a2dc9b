package pulse

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockSourceDeliversClockTime(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(start)
	source := NewClockSource(clock, 200*time.Millisecond)

	ticks := make(chan time.Time, 4)
	source.Start(func(now time.Time) {
		ticks <- now
	})
	defer source.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	clock.Advance(200 * time.Millisecond)

	select {
	case got := <-ticks:
		assert.Equal(t, start.Add(200*time.Millisecond), got)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a tick")
	}
}

func TestClockSourceStopIsIdempotent(t *testing.T) {
	source := NewClockSource(clockwork.NewFakeClock(), time.Second)
	assert.False(t, source.Running())

	source.Start(func(time.Time) {})
	assert.True(t, source.Running())

	source.Stop()
	source.Stop()
	assert.False(t, source.Running())
}

func TestClockSourceDefaults(t *testing.T) {
	source := NewClockSource(nil, 0)
	assert.Equal(t, time.Second, source.Period())
}
