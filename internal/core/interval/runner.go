package interval

import (
	"log/slog"
	"sync"
	"time"

	"timeframe/internal/core/model"
	"timeframe/internal/core/pulse"

	"github.com/jonboulle/clockwork"
)

// Snapshot combines the scheduler state with derived display values.
type Snapshot struct {
	State
	RemainingSeconds int
	NextTriggerTime  time.Time
}

// Runner drives a Scheduler from a pulse source and publishes events.
type Runner struct {
	mu            sync.Mutex
	scheduler     *Scheduler
	source        pulse.Source
	clock         clockwork.Clock
	logger        *slog.Logger
	events        []chan Event
	lastRemaining int
	closed        bool
}

// NewRunner creates an idle runner.
func NewRunner(config model.IntervalConfig, source pulse.Source, clock clockwork.Clock) (*Runner, error) {
	scheduler, err := New(config)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if source == nil {
		source = pulse.NewClockSource(clock, 200*time.Millisecond)
	}
	return &Runner{
		scheduler:     scheduler,
		source:        source,
		clock:         clock,
		logger:        slog.Default(),
		lastRemaining: -1,
	}, nil
}

// SetLogger replaces the runner logger.
func (runner *Runner) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	runner.mu.Lock()
	runner.logger = logger
	runner.mu.Unlock()
}

// Subscribe registers a new observer channel.
func (runner *Runner) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	runner.mu.Lock()
	if runner.closed {
		close(ch)
	} else {
		runner.events = append(runner.events, ch)
	}
	runner.mu.Unlock()
	return ch
}

// Start begins a new cycle targeting the next boundary.
func (runner *Runner) Start() {
	runner.mu.Lock()
	if runner.closed {
		runner.mu.Unlock()
		return
	}
	now := runner.clock.Now()
	state := runner.scheduler.Start(now)
	runner.lastRemaining = runner.scheduler.RemainingSeconds(now)
	runner.logger.Info("interval alert started",
		"interval_minutes", state.IntervalMinutes,
		"target", state.TargetEndTime.Format(time.TimeOnly))
	runner.emitLocked(runner.stateEventLocked(now))
	runner.source.Start(runner.tick)
	runner.mu.Unlock()
}

// RequestStop lets the current interval finish before stopping.
func (runner *Runner) RequestStop() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.scheduler.State().Status != StatusRunning {
		return
	}
	runner.scheduler.RequestStop()
	runner.logger.Debug("stop requested at next boundary")
	runner.emitLocked(runner.stateEventLocked(runner.clock.Now()))
}

// CancelStopRequest keeps the cycle repeating after a stop request.
func (runner *Runner) CancelStopRequest() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.scheduler.State().Status != StatusStopping {
		return
	}
	runner.scheduler.CancelStopRequest()
	runner.logger.Debug("stop request cancelled")
	runner.emitLocked(runner.stateEventLocked(runner.clock.Now()))
}

// Toggle mirrors the single start/stop button: idle starts, running requests
// a stop at the next boundary, and a pending stop is cancelled.
func (runner *Runner) Toggle() {
	runner.mu.Lock()
	status := runner.scheduler.State().Status
	runner.mu.Unlock()

	switch status {
	case StatusIdle:
		runner.Start()
	case StatusRunning:
		runner.RequestStop()
	case StatusStopping:
		runner.CancelStopRequest()
	}
}

// StopImmediately ends the cycle without waiting for the boundary.
func (runner *Runner) StopImmediately() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	runner.source.Stop()
	if runner.scheduler.State().Status == StatusIdle {
		return
	}
	runner.scheduler.StopImmediately()
	runner.lastRemaining = -1
	runner.logger.Info("interval alert stopped")
	runner.emitLocked(runner.stateEventLocked(runner.clock.Now()))
}

// SetInterval changes the interval length while idle.
func (runner *Runner) SetInterval(intervalMinutes int) error {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if err := runner.scheduler.SetInterval(intervalMinutes); err != nil {
		return err
	}
	runner.emitLocked(runner.stateEventLocked(runner.clock.Now()))
	return nil
}

// NextTriggerTime returns the active target, or a preview while idle.
func (runner *Runner) NextTriggerTime() time.Time {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	return runner.scheduler.NextTriggerTime(runner.clock.Now())
}

// Snapshot returns the current state with derived values.
func (runner *Runner) Snapshot() Snapshot {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	now := runner.clock.Now()
	return Snapshot{
		State:            runner.scheduler.State(),
		RemainingSeconds: runner.scheduler.RemainingSeconds(now),
		NextTriggerTime:  runner.scheduler.NextTriggerTime(now),
	}
}

// Close stops the pulse source and closes observers.
func (runner *Runner) Close() {
	runner.mu.Lock()
	runner.source.Stop()
	if runner.closed {
		runner.mu.Unlock()
		return
	}
	runner.closed = true
	runner.scheduler.StopImmediately()
	events := runner.events
	runner.events = nil
	runner.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Tick evaluates the scheduler at now. The pulse source calls it; hosts may
// call it directly to refresh after a resume.
func (runner *Runner) Tick(now time.Time) {
	runner.tick(now)
}

func (runner *Runner) tick(now time.Time) {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.closed || runner.scheduler.State().Status == StatusIdle {
		return
	}

	result := runner.scheduler.OnPollTick(now)
	if result.Resynced {
		runner.logger.Warn("wall clock moved backward, resynchronized target",
			"target", result.TargetEndTime.Format(time.TimeOnly))
	}

	if result.AlertFired {
		runner.logger.Info("interval boundary reached",
			"interval_minutes", runner.scheduler.Interval(),
			"status", string(result.Status))
		runner.emitLocked(Event{
			Type:             EventAlert,
			Status:           result.Status,
			IntervalMinutes:  runner.scheduler.Interval(),
			RemainingSeconds: result.RemainingSeconds,
			TargetEndTime:    result.TargetEndTime,
			At:               now,
		})
		if result.Status == StatusIdle {
			runner.lastRemaining = -1
			runner.source.Stop()
			runner.emitLocked(runner.stateEventLocked(now))
			return
		}
	}

	if result.RemainingSeconds != runner.lastRemaining {
		runner.lastRemaining = result.RemainingSeconds
		runner.emitLocked(Event{
			Type:             EventProgress,
			Status:           result.Status,
			IntervalMinutes:  runner.scheduler.Interval(),
			RemainingSeconds: result.RemainingSeconds,
			TargetEndTime:    result.TargetEndTime,
			At:               now,
		})
	}
}

func (runner *Runner) stateEventLocked(now time.Time) Event {
	state := runner.scheduler.State()
	return Event{
		Type:             EventStateChange,
		Status:           state.Status,
		IntervalMinutes:  state.IntervalMinutes,
		RemainingSeconds: runner.scheduler.RemainingSeconds(now),
		TargetEndTime:    runner.scheduler.NextTriggerTime(now),
		At:               now,
	}
}

func (runner *Runner) emitLocked(event Event) {
	for _, ch := range runner.events {
		select {
		case ch <- event:
		default:
		}
	}
}
