package interval

import (
	"errors"
	"fmt"
	"time"

	"timeframe/internal/core/model"
)

var (
	// ErrInvalidInterval indicates an interval outside 1..MaxIntervalMinutes.
	ErrInvalidInterval = fmt.Errorf("interval must be between 1 and %d minutes", model.MaxIntervalMinutes)
	// ErrNotIdle indicates the interval cannot change while a cycle is active.
	ErrNotIdle = errors.New("scheduler is not idle")
)

// State is a snapshot of the scheduler.
type State struct {
	Status          Status
	IntervalMinutes int
	TargetEndTime   time.Time
	LastAlertAt     time.Time
}

// AlertShown reports whether an alert fired since the cycle started.
func (state State) AlertShown() bool {
	return !state.LastAlertAt.IsZero()
}

// TickResult is the outcome of a single poll tick.
type TickResult struct {
	RemainingSeconds int
	AlertFired       bool
	Resynced         bool
	Status           Status
	TargetEndTime    time.Time
}

// SecondsToNextBoundary returns the number of seconds until minutes-since-hour
// becomes the next multiple of intervalMinutes with zero seconds. An instant
// exactly on a boundary targets the following one, so the result is always in
// (0, intervalMinutes*60].
func SecondsToNextBoundary(now time.Time, intervalMinutes int) int {
	return (intervalMinutes-now.Minute()%intervalMinutes)*60 - now.Second()
}

// NextTriggerTime returns the next boundary after now.
func NextTriggerTime(now time.Time, intervalMinutes int) time.Time {
	base := now.Truncate(time.Second)
	return base.Add(time.Duration(SecondsToNextBoundary(now, intervalMinutes)) * time.Second)
}

// Scheduler tracks the next wall-clock boundary and fires an alert each time
// it is crossed. It has a single owner and is not safe for concurrent use.
type Scheduler struct {
	intervalMinutes int
	status          Status
	target          time.Time
	lastAlert       time.Time
}

// New creates an idle scheduler.
func New(config model.IntervalConfig) (*Scheduler, error) {
	if !model.ValidInterval(config.IntervalMinutes) {
		return nil, ErrInvalidInterval
	}
	return &Scheduler{
		intervalMinutes: config.IntervalMinutes,
		status:          StatusIdle,
	}, nil
}

// Interval returns the configured interval in minutes.
func (scheduler *Scheduler) Interval() int {
	return scheduler.intervalMinutes
}

// SetInterval changes the interval length. Only allowed while idle.
func (scheduler *Scheduler) SetInterval(intervalMinutes int) error {
	if !model.ValidInterval(intervalMinutes) {
		return ErrInvalidInterval
	}
	if scheduler.status != StatusIdle {
		return ErrNotIdle
	}
	scheduler.intervalMinutes = intervalMinutes
	return nil
}

// Start targets the next boundary and enters the running state.
func (scheduler *Scheduler) Start(now time.Time) State {
	scheduler.target = NextTriggerTime(now, scheduler.intervalMinutes)
	scheduler.status = StatusRunning
	scheduler.lastAlert = time.Time{}
	return scheduler.State()
}

// RequestStop lets the current interval finish, then stops the cycle.
func (scheduler *Scheduler) RequestStop() {
	if scheduler.status == StatusRunning {
		scheduler.status = StatusStopping
	}
}

// CancelStopRequest reverts a pending stop request.
func (scheduler *Scheduler) CancelStopRequest() {
	if scheduler.status == StatusStopping {
		scheduler.status = StatusRunning
	}
}

// StopImmediately abandons the current interval without an alert.
func (scheduler *Scheduler) StopImmediately() {
	scheduler.status = StatusIdle
	scheduler.target = time.Time{}
	scheduler.lastAlert = time.Time{}
}

// OnPollTick evaluates the deadline against now.
func (scheduler *Scheduler) OnPollTick(now time.Time) TickResult {
	if scheduler.status == StatusIdle {
		return TickResult{Status: StatusIdle}
	}

	diff := scheduler.target.Sub(now)
	if diff > scheduler.period() {
		// Wall clock moved backward past the current interval.
		scheduler.target = NextTriggerTime(now, scheduler.intervalMinutes)
		return TickResult{
			RemainingSeconds: scheduler.RemainingSeconds(now),
			Resynced:         true,
			Status:           scheduler.status,
			TargetEndTime:    scheduler.target,
		}
	}
	if diff > 0 {
		return TickResult{
			RemainingSeconds: ceilSeconds(diff),
			Status:           scheduler.status,
			TargetEndTime:    scheduler.target,
		}
	}

	if scheduler.status == StatusStopping {
		scheduler.status = StatusIdle
		scheduler.target = time.Time{}
		scheduler.lastAlert = now
		return TickResult{
			AlertFired: true,
			Status:     StatusIdle,
		}
	}

	scheduler.target = NextTriggerTime(now, scheduler.intervalMinutes)
	scheduler.lastAlert = now
	return TickResult{
		RemainingSeconds: scheduler.RemainingSeconds(now),
		AlertFired:       true,
		Status:           scheduler.status,
		TargetEndTime:    scheduler.target,
	}
}

// RemainingSeconds returns the whole seconds left until the target, rounded up.
func (scheduler *Scheduler) RemainingSeconds(now time.Time) int {
	if scheduler.status == StatusIdle {
		return 0
	}
	diff := scheduler.target.Sub(now)
	if diff <= 0 {
		return 0
	}
	return ceilSeconds(diff)
}

// NextTriggerTime returns the active target, or a preview while idle.
func (scheduler *Scheduler) NextTriggerTime(now time.Time) time.Time {
	if scheduler.status != StatusIdle {
		return scheduler.target
	}
	return NextTriggerTime(now, scheduler.intervalMinutes)
}

// State returns a snapshot.
func (scheduler *Scheduler) State() State {
	return State{
		Status:          scheduler.status,
		IntervalMinutes: scheduler.intervalMinutes,
		TargetEndTime:   scheduler.target,
		LastAlertAt:     scheduler.lastAlert,
	}
}

func (scheduler *Scheduler) period() time.Duration {
	return model.IntervalConfig{IntervalMinutes: scheduler.intervalMinutes}.Period()
}

func ceilSeconds(diff time.Duration) int {
	return int((diff + time.Second - 1) / time.Second)
}
