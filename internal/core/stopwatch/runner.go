package stopwatch

import (
	"log/slog"
	"sync"
	"time"

	"timeframe/internal/core/model"
	"timeframe/internal/core/pulse"

	"github.com/jonboulle/clockwork"
)

// EventType defines the type of Runner event.
type EventType string

const (
	EventStateChange  EventType = "state_change"
	EventProgress     EventType = "progress"
	EventLimitReached EventType = "limit_reached"
)

// Event represents a Runner update for observers.
type Event struct {
	Type  EventType
	State State
	At    time.Time
}

// Runner drives a Watch from a pulse source.
type Runner struct {
	mu          sync.Mutex
	watch       *Watch
	source      pulse.Source
	clock       clockwork.Clock
	logger      *slog.Logger
	events      []chan Event
	lastSeconds int
	closed      bool
}

// NewRunner creates a reset runner.
func NewRunner(config model.StopwatchConfig, source pulse.Source, clock clockwork.Clock) *Runner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if source == nil {
		source = pulse.NewClockSource(clock, 250*time.Millisecond)
	}
	return &Runner{
		watch:  New(config),
		source: source,
		clock:  clock,
		logger: slog.Default(),
	}
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

// SetLimit replaces the stop time.
func (runner *Runner) SetLimit(limit time.Duration) error {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if err := runner.watch.SetLimit(limit); err != nil {
		return err
	}
	runner.emitLocked(EventStateChange, runner.clock.Now())
	return nil
}

// Toggle starts or stops the count.
func (runner *Runner) Toggle() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.closed {
		return
	}
	now := runner.clock.Now()
	if runner.watch.Toggle(now) {
		runner.source.Start(runner.tick)
	} else {
		runner.source.Stop()
	}
	runner.logger.Debug("stopwatch toggled", "status", string(runner.watch.status))
	runner.emitLocked(EventStateChange, now)
}

// Reset clears the count.
func (runner *Runner) Reset() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	runner.source.Stop()
	runner.watch.Reset()
	runner.lastSeconds = 0
	runner.emitLocked(EventStateChange, runner.clock.Now())
}

// Snapshot returns the current state.
func (runner *Runner) Snapshot() State {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	return runner.watch.State(runner.clock.Now())
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
	events := runner.events
	runner.events = nil
	runner.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Tick evaluates the watch at now.
func (runner *Runner) Tick(now time.Time) {
	runner.tick(now)
}

func (runner *Runner) tick(now time.Time) {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.closed || runner.watch.status != StatusRunning {
		return
	}

	result := runner.watch.Tick(now)
	if result.JustReached {
		runner.logger.Info("stopwatch reached stop time", "limit", result.Limit.String())
		runner.source.Stop()
		runner.lastSeconds = result.ElapsedSeconds
		runner.emitLocked(EventLimitReached, now)
		runner.emitLocked(EventStateChange, now)
		return
	}
	if result.ElapsedSeconds != runner.lastSeconds {
		runner.lastSeconds = result.ElapsedSeconds
		runner.emitLocked(EventProgress, now)
	}
}

func (runner *Runner) emitLocked(eventType EventType, now time.Time) {
	event := Event{
		Type:  eventType,
		State: runner.watch.State(now),
		At:    now,
	}
	for _, ch := range runner.events {
		select {
		case ch <- event:
		default:
		}
	}
}
