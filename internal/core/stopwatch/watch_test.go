package stopwatch

import (
	"testing"
	"time"

	"timeframe/internal/core/model"
	"timeframe/internal/core/pulse/pulsetest"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestLimitFromValidatesFields(t *testing.T) {
	limit, err := LimitFrom(1, 30, 15)
	require.NoError(t, err)
	assert.Equal(t, time.Hour+30*time.Minute+15*time.Second, limit)

	for _, fields := range [][3]int{{-1, 0, 0}, {0, 60, 0}, {0, 0, 60}, {0, -1, 0}} {
		_, err := LimitFrom(fields[0], fields[1], fields[2])
		assert.ErrorIs(t, err, ErrInvalidLimit, "fields %v", fields)
	}
}

func TestCountsWholeSecondsFromWallClock(t *testing.T) {
	watch := New(model.StopwatchConfig{})
	require.True(t, watch.Toggle(base))

	result := watch.Tick(base.Add(2900 * time.Millisecond))
	assert.Equal(t, 2, result.ElapsedSeconds)
	assert.Equal(t, StatusRunning, result.Status)
}

func TestStopExcludesStoppedSpan(t *testing.T) {
	watch := New(model.StopwatchConfig{})
	watch.Toggle(base)
	assert.False(t, watch.Toggle(base.Add(4*time.Second)))

	assert.Equal(t, 4, watch.State(base.Add(time.Minute)).ElapsedSeconds)

	watch.Toggle(base.Add(time.Minute))
	assert.Equal(t, 6, watch.State(base.Add(time.Minute+2*time.Second)).ElapsedSeconds)
}

func TestLimitStopsWatch(t *testing.T) {
	watch := New(model.StopwatchConfig{Limit: 3 * time.Second})
	watch.Toggle(base)

	result := watch.Tick(base.Add(5 * time.Second))
	require.True(t, result.JustReached)
	assert.Equal(t, 3, result.ElapsedSeconds)
	assert.Equal(t, StatusStopped, result.Status)

	assert.False(t, watch.Toggle(base.Add(6*time.Second)), "cannot restart past the stop time")

	watch.Reset()
	assert.Equal(t, State{Status: StatusReset, Limit: 3 * time.Second}, watch.State(base))
}

func TestRunnerEmitsProgressOncePerSecond(t *testing.T) {
	clock := clockwork.NewFakeClockAt(base)
	runner := NewRunner(model.StopwatchConfig{}, nil, clock)
	defer runner.Close()
	events := runner.Subscribe(16)

	runner.Toggle()
	<-events

	runner.Tick(base.Add(500 * time.Millisecond))
	runner.Tick(base.Add(1100 * time.Millisecond))
	runner.Tick(base.Add(1400 * time.Millisecond))

	event := <-events
	assert.Equal(t, EventProgress, event.Type)
	assert.Equal(t, 1, event.State.ElapsedSeconds)

	select {
	case extra := <-events:
		t.Fatalf("unexpected event %+v", extra)
	default:
	}
}

func TestRunnerLimitReached(t *testing.T) {
	clock := clockwork.NewFakeClockAt(base)
	runner := NewRunner(model.StopwatchConfig{Limit: 2 * time.Second}, nil, clock)
	defer runner.Close()
	events := runner.Subscribe(16)

	runner.Toggle()
	<-events
	runner.Tick(base.Add(2 * time.Second))

	event := <-events
	assert.Equal(t, EventLimitReached, event.Type)
	assert.True(t, event.State.LimitReached)
	assert.Equal(t, StatusStopped, runner.Snapshot().Status)
}

func TestRunnerLimitStopsPulseSource(t *testing.T) {
	source := pulsetest.New()
	runner := NewRunner(model.StopwatchConfig{Limit: 2 * time.Second}, source, clockwork.NewFakeClockAt(base))
	defer runner.Close()

	runner.Toggle()
	assert.True(t, source.Running())

	require.True(t, source.Fire(base.Add(2*time.Second)))
	assert.False(t, source.Running())
	assert.Equal(t, 1, source.Stops())
	assert.True(t, runner.Snapshot().LimitReached)

	runner.Toggle()
	assert.False(t, source.Running(), "a watch at its limit does not restart")
	assert.Equal(t, 1, source.Starts())
}

func TestRunnerToggleStopsPulseSource(t *testing.T) {
	source := pulsetest.New()
	runner := NewRunner(model.StopwatchConfig{}, source, clockwork.NewFakeClockAt(base))
	defer runner.Close()

	runner.Toggle()
	runner.Toggle()
	assert.False(t, source.Running())
	assert.Equal(t, StatusStopped, runner.Snapshot().Status)
}
