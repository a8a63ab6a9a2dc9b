package preferences

import (
	"time"

	"timeframe/internal/core/model"
	"timeframe/internal/platform"
)

const (
	MinVolume = -3.0
	MaxVolume = 1.0
)

// Settings defines editable user preferences.
type Settings struct {
	IntervalMinutes int
	CountupTarget   time.Duration
	StopwatchLimit  time.Duration

	ShowMilliseconds bool
	SoundEnabled     bool
	Volume           float64
	SoundFile        string
	DesktopNotify    bool
	Autostart        bool
}

// DefaultSettings returns default settings for Timeframe.
func DefaultSettings() Settings {
	return Settings{
		IntervalMinutes:  15,
		ShowMilliseconds: false,
		SoundEnabled:     true,
		Volume:           0,
		DesktopNotify:    true,
		Autostart:        false,
	}
}

// IntervalConfig converts settings to the alert timer config.
func (settings Settings) IntervalConfig() model.IntervalConfig {
	return model.IntervalConfig{IntervalMinutes: settings.IntervalMinutes}
}

// CountupConfig converts settings to the countup timer config.
func (settings Settings) CountupConfig() model.CountupConfig {
	return model.CountupConfig{
		Target:       settings.CountupTarget,
		SoundEnabled: settings.SoundEnabled,
	}
}

// StopwatchConfig converts settings to the stopwatch config.
func (settings Settings) StopwatchConfig() model.StopwatchConfig {
	return model.StopwatchConfig{Limit: settings.StopwatchLimit}
}

// ChimeConfig converts settings to the alert sound config.
func (settings Settings) ChimeConfig() platform.ChimeConfig {
	return platform.ChimeConfig{
		Volume:    ClampVolume(settings.Volume),
		SoundFile: settings.SoundFile,
		Muted:     !settings.SoundEnabled,
	}
}

// ClampVolume limits a volume exponent to the supported range.
func ClampVolume(volume float64) float64 {
	if volume < MinVolume {
		return MinVolume
	}
	if volume > MaxVolume {
		return MaxVolume
	}
	return volume
}
