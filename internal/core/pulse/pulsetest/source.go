// Package pulsetest provides a pulse.Source that only ticks when told to.
package pulsetest

import (
	"sync"
	"time"
)

// Source records Start and Stop calls and delivers ticks through Fire.
type Source struct {
	mu      sync.Mutex
	onTick  func(time.Time)
	running bool
	starts  int
	stops   int
}

// New returns a stopped source.
func New() *Source {
	return &Source{}
}

// Start registers onTick. Calling Start on a running source is a no-op.
func (source *Source) Start(onTick func(time.Time)) {
	source.mu.Lock()
	defer source.mu.Unlock()
	if source.running {
		return
	}
	source.running = true
	source.onTick = onTick
	source.starts++
}

// Stop halts delivery.
func (source *Source) Stop() {
	source.mu.Lock()
	defer source.mu.Unlock()
	if !source.running {
		return
	}
	source.running = false
	source.stops++
}

// Running reports whether the source is started.
func (source *Source) Running() bool {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.running
}

// Starts returns how many times the source went from stopped to running.
func (source *Source) Starts() int {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.starts
}

// Stops returns how many times the source went from running to stopped.
func (source *Source) Stops() int {
	source.mu.Lock()
	defer source.mu.Unlock()
	return source.stops
}

// Fire calls the registered callback with now and reports whether it ran.
// A stopped source delivers nothing.
func (source *Source) Fire(now time.Time) bool {
	source.mu.Lock()
	onTick := source.onTick
	running := source.running
	source.mu.Unlock()

	if !running || onTick == nil {
		return false
	}
	onTick(now)
	return true
}
