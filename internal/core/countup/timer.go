package countup

import (
	"time"

	"timeframe/internal/core/model"
)

const (
	maxHours   = 99
	maxMinutes = 59
	maxSeconds = 59
)

// Status represents the countup lifecycle.
type Status string

const (
	StatusStopped Status = "stopped"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// State is a snapshot of the timer.
type State struct {
	Status    Status
	Target    time.Duration
	Elapsed   time.Duration
	Progress  float64
	Completed bool
}

// TickResult is the outcome of a single poll tick.
type TickResult struct {
	State
	JustCompleted bool
}

// Timer counts up towards a target duration.
type Timer struct {
	status      Status
	target      time.Duration
	accumulated time.Duration
	resumedAt   time.Time
	completed   bool
}

// New creates a stopped timer.
func New(config model.CountupConfig) *Timer {
	timer := &Timer{status: StatusStopped}
	if config.Target > 0 {
		timer.target = config.Target
	}
	return timer
}

// ClampTarget builds a target from hour/minute/second inputs, clamping each
// field to its display range.
func ClampTarget(hours, minutes, seconds int) time.Duration {
	hours = clamp(hours, maxHours)
	minutes = clamp(minutes, maxMinutes)
	seconds = clamp(seconds, maxSeconds)
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}

// SetTarget replaces the target. Ignored unless stopped.
func (timer *Timer) SetTarget(target time.Duration) bool {
	if timer.status != StatusStopped || target < 0 {
		return false
	}
	timer.target = target
	return true
}

// Start begins counting. Only a stopped timer with a positive target starts;
// a completed run restarts from zero.
func (timer *Timer) Start(now time.Time) bool {
	if timer.status != StatusStopped || timer.target <= 0 {
		return false
	}
	if timer.completed || timer.accumulated >= timer.target {
		timer.accumulated = 0
		timer.completed = false
	}
	timer.status = StatusRunning
	timer.resumedAt = now
	return true
}

// TogglePause pauses a running timer or resumes a paused one.
func (timer *Timer) TogglePause(now time.Time) {
	switch timer.status {
	case StatusRunning:
		timer.accumulated += nonNegative(now.Sub(timer.resumedAt))
		timer.status = StatusPaused
	case StatusPaused:
		timer.resumedAt = now
		timer.status = StatusRunning
	}
}

// Reset stops the timer and clears elapsed time.
func (timer *Timer) Reset() {
	timer.status = StatusStopped
	timer.accumulated = 0
	timer.completed = false
	timer.resumedAt = time.Time{}
}

// Tick evaluates elapsed time at now.
func (timer *Timer) Tick(now time.Time) TickResult {
	if timer.status != StatusRunning {
		return TickResult{State: timer.State(now)}
	}
	if timer.elapsed(now) < timer.target {
		return TickResult{State: timer.State(now)}
	}

	timer.accumulated = timer.target
	timer.status = StatusStopped
	timer.completed = true
	return TickResult{State: timer.State(now), JustCompleted: true}
}

// State returns a snapshot at now.
func (timer *Timer) State(now time.Time) State {
	elapsed := timer.elapsed(now)
	return State{
		Status:    timer.status,
		Target:    timer.target,
		Elapsed:   elapsed,
		Progress:  progress(elapsed, timer.target),
		Completed: timer.completed,
	}
}

func (timer *Timer) elapsed(now time.Time) time.Duration {
	elapsed := timer.accumulated
	if timer.status == StatusRunning {
		elapsed += nonNegative(now.Sub(timer.resumedAt))
	}
	if timer.target > 0 && elapsed > timer.target {
		return timer.target
	}
	return elapsed
}

func progress(elapsed, target time.Duration) float64 {
	if target <= 0 {
		return 0
	}
	value := float64(elapsed) / float64(target)
	if value > 1 {
		return 1
	}
	return value
}

func nonNegative(value time.Duration) time.Duration {
	if value < 0 {
		return 0
	}
	return value
}

func clamp(value, upper int) int {
	if value < 0 {
		return 0
	}
	if value > upper {
		return upper
	}
	return value
}
