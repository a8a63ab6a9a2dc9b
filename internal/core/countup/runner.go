package countup

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
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventCompleted   EventType = "completed"
)

// Event represents a Runner update for observers.
type Event struct {
	Type         EventType
	State        State
	SoundEnabled bool
	At           time.Time
}

// Runner drives a Timer from a pulse source.
type Runner struct {
	mu           sync.Mutex
	timer        *Timer
	source       pulse.Source
	clock        clockwork.Clock
	logger       *slog.Logger
	soundEnabled bool
	events       []chan Event
	closed       bool
}

// NewRunner creates a stopped runner.
func NewRunner(config model.CountupConfig, source pulse.Source, clock clockwork.Clock) *Runner {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if source == nil {
		source = pulse.NewClockSource(clock, 100*time.Millisecond)
	}
	return &Runner{
		timer:        New(config),
		source:       source,
		clock:        clock,
		logger:       slog.Default(),
		soundEnabled: config.SoundEnabled,
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

// SetTarget replaces the target while stopped.
func (runner *Runner) SetTarget(target time.Duration) {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.timer.SetTarget(target) {
		runner.emitLocked(EventStateChange, runner.clock.Now())
	}
}

// SetSoundEnabled toggles the alarm flag carried by completion events.
func (runner *Runner) SetSoundEnabled(enabled bool) {
	runner.mu.Lock()
	runner.soundEnabled = enabled
	runner.mu.Unlock()
}

// Start begins counting towards the target.
func (runner *Runner) Start() bool {
	runner.mu.Lock()
	now := runner.clock.Now()
	if runner.closed || !runner.timer.Start(now) {
		runner.mu.Unlock()
		return false
	}
	runner.logger.Info("countup started", "target", runner.timer.target.String())
	runner.emitLocked(EventStateChange, now)
	runner.source.Start(runner.tick)
	runner.mu.Unlock()
	return true
}

// TogglePause pauses or resumes the count.
func (runner *Runner) TogglePause() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.timer.status == StatusStopped {
		return
	}
	now := runner.clock.Now()
	runner.timer.TogglePause(now)
	runner.emitLocked(EventStateChange, now)
}

// Reset stops the count and clears elapsed time.
func (runner *Runner) Reset() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	runner.source.Stop()
	runner.timer.Reset()
	runner.emitLocked(EventStateChange, runner.clock.Now())
}

// Snapshot returns the current state.
func (runner *Runner) Snapshot() State {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	return runner.timer.State(runner.clock.Now())
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

// Tick evaluates the timer at now.
func (runner *Runner) Tick(now time.Time) {
	runner.tick(now)
}

func (runner *Runner) tick(now time.Time) {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	if runner.closed || runner.timer.status != StatusRunning {
		return
	}

	result := runner.timer.Tick(now)
	if !result.JustCompleted {
		runner.emitLocked(EventProgress, now)
		return
	}

	runner.logger.Info("countup target reached", "target", result.Target.String())
	runner.source.Stop()
	runner.emitLocked(EventCompleted, now)
	runner.emitLocked(EventStateChange, now)
}

func (runner *Runner) emitLocked(eventType EventType, now time.Time) {
	event := Event{
		Type:         eventType,
		State:        runner.timer.State(now),
		SoundEnabled: runner.soundEnabled,
		At:           now,
	}
	for _, ch := range runner.events {
		select {
		case ch <- event:
		default:
		}
	}
}
