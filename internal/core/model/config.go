package model

import "time"

// MaxIntervalMinutes caps the alert interval at one week.
const MaxIntervalMinutes = 7 * 24 * 60

// ValidInterval reports whether minutes is an accepted interval length.
func ValidInterval(minutes int) bool {
	return minutes > 0 && minutes <= MaxIntervalMinutes
}

// IntervalConfig defines the wall-clock boundary the alert timer follows.
type IntervalConfig struct {
	IntervalMinutes int
}

// Period returns the configured interval as a duration.
func (config IntervalConfig) Period() time.Duration {
	return time.Duration(config.IntervalMinutes) * time.Minute
}

// CountupConfig contains the target of a countup run.
type CountupConfig struct {
	Target       time.Duration
	SoundEnabled bool
}

// StopwatchConfig contains the optional stop time of a stopwatch run.
// A zero Limit lets the stopwatch run until stopped.
type StopwatchConfig struct {
	Limit time.Duration
}
