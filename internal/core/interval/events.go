package interval

import "time"

// Status represents the scheduler lifecycle.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
)

// Active reports whether a cycle is in progress.
func (status Status) Active() bool {
	return status == StatusRunning || status == StatusStopping
}

// EventType defines the type of Runner event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventProgress    EventType = "progress"
	EventAlert       EventType = "alert"
)

// Event represents a Runner update for observers.
type Event struct {
	Type             EventType
	Status           Status
	IntervalMinutes  int
	RemainingSeconds int
	TargetEndTime    time.Time
	At               time.Time
}
