package stopwatch

import (
	"errors"
	"time"

	"timeframe/internal/core/model"
)

// ErrInvalidLimit indicates a stop time outside H >= 0, 0 <= M,S < 60.
var ErrInvalidLimit = errors.New("invalid stop time")

// Status represents the stopwatch lifecycle.
type Status string

const (
	StatusReset   Status = "reset"
	StatusRunning Status = "running"
	StatusStopped Status = "stopped"
)

// State is a snapshot of the stopwatch.
type State struct {
	Status         Status
	Limit          time.Duration
	ElapsedSeconds int
	LimitReached   bool
}

// TickResult is the outcome of a single poll tick.
type TickResult struct {
	State
	JustReached bool
}

// Watch counts whole seconds up from zero.
type Watch struct {
	status      Status
	limit       time.Duration
	accumulated time.Duration
	startedAt   time.Time
	reached     bool
}

// New creates a reset stopwatch.
func New(config model.StopwatchConfig) *Watch {
	watch := &Watch{status: StatusReset}
	if config.Limit > 0 {
		watch.limit = config.Limit
	}
	return watch
}

// LimitFrom validates hour/minute/second inputs and builds a stop time.
func LimitFrom(hours, minutes, seconds int) (time.Duration, error) {
	if hours < 0 || minutes < 0 || minutes >= 60 || seconds < 0 || seconds >= 60 {
		return 0, ErrInvalidLimit
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, nil
}

// SetLimit replaces the stop time.
func (watch *Watch) SetLimit(limit time.Duration) error {
	if limit < 0 {
		return ErrInvalidLimit
	}
	watch.limit = limit
	return nil
}

// Toggle starts a reset or stopped watch, and stops a running one.
// It reports whether the watch is running afterwards.
func (watch *Watch) Toggle(now time.Time) bool {
	if watch.status == StatusRunning {
		watch.accumulated += nonNegative(now.Sub(watch.startedAt))
		watch.status = StatusStopped
		return false
	}
	if watch.limitHit(watch.accumulated) {
		return false
	}
	watch.startedAt = now
	watch.status = StatusRunning
	return true
}

// Reset clears the count.
func (watch *Watch) Reset() {
	watch.status = StatusReset
	watch.accumulated = 0
	watch.startedAt = time.Time{}
	watch.reached = false
}

// Tick evaluates the count at now.
func (watch *Watch) Tick(now time.Time) TickResult {
	if watch.status != StatusRunning {
		return TickResult{State: watch.State(now)}
	}
	total := watch.accumulated + nonNegative(now.Sub(watch.startedAt))
	if !watch.limitHit(total) {
		return TickResult{State: watch.State(now)}
	}

	watch.accumulated = watch.limit
	watch.status = StatusStopped
	watch.reached = true
	return TickResult{State: watch.State(now), JustReached: true}
}

// State returns a snapshot at now.
func (watch *Watch) State(now time.Time) State {
	total := watch.accumulated
	if watch.status == StatusRunning {
		total += nonNegative(now.Sub(watch.startedAt))
	}
	if watch.limit > 0 && total > watch.limit {
		total = watch.limit
	}
	return State{
		Status:         watch.status,
		Limit:          watch.limit,
		ElapsedSeconds: int(total / time.Second),
		LimitReached:   watch.reached,
	}
}

func (watch *Watch) limitHit(total time.Duration) bool {
	return watch.limit > 0 && total >= watch.limit
}

func nonNegative(value time.Duration) time.Duration {
	if value < 0 {
		return 0
	}
	return value
}
