package pulse

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Source delivers periodic wake-ups to a timer component.
// Start and Stop must not block on or call onTick, so runners can call them
// while holding their own lock.
type Source interface {
	Start(onTick func(time.Time))
	Stop()
	Running() bool
}

// ClockSource is a Source backed by a clockwork ticker.
type ClockSource struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	period  time.Duration
	stopCh  chan struct{}
	running bool
}

// NewClockSource creates a source that wakes up every period.
func NewClockSource(clock clockwork.Clock, period time.Duration) *ClockSource {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if period <= 0 {
		period = time.Second
	}
	return &ClockSource{
		clock:  clock,
		period: period,
	}
}

// Start launches the ticking loop. Calling Start on a running source is a no-op.
func (source *ClockSource) Start(onTick func(time.Time)) {
	source.mu.Lock()
	if source.running {
		source.mu.Unlock()
		return
	}
	source.running = true
	stopCh := make(chan struct{})
	source.stopCh = stopCh
	ticker := source.clock.NewTicker(source.period)
	source.mu.Unlock()

	go source.run(ticker, stopCh, onTick)
}

// Stop halts the ticking loop.
func (source *ClockSource) Stop() {
	source.mu.Lock()
	defer source.mu.Unlock()
	if !source.running {
		return
	}
	close(source.stopCh)
	source.running = false
}

// Running reports whether the loop is active.
func (source *ClockSource) Running() bool {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.running
}

// Period returns the wake-up period.
func (source *ClockSource) Period() time.Duration {
	return source.period
}

func (source *ClockSource) run(ticker clockwork.Ticker, stopCh chan struct{}, onTick func(time.Time)) {
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.Chan():
			select {
			case <-stopCh:
				return
			default:
			}
			onTick(source.clock.Now())
		}
	}
}
