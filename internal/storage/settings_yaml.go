package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"timeframe/internal/core/model"
	"timeframe/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// countupLimit is the largest target the HH:MM:SS inputs can express.
const countupLimit = 99*time.Hour + 59*time.Minute + 59*time.Second

type yamlSettings struct {
	IntervalMinutes       int     `yaml:"interval_minutes"`
	CountupTargetSeconds  int     `yaml:"countup_target_seconds"`
	StopwatchLimitSeconds int     `yaml:"stopwatch_limit_seconds"`
	ShowMilliseconds      bool    `yaml:"show_milliseconds"`
	SoundEnabled          *bool   `yaml:"sound_enabled,omitempty"`
	Volume                float64 `yaml:"volume"`
	SoundFile             string  `yaml:"sound_file,omitempty"`
	DesktopNotify         *bool   `yaml:"desktop_notify,omitempty"`
	Autostart             bool    `yaml:"autostart"`
}

// SettingsPath returns the default settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from the YAML file at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to the YAML file at path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	soundEnabled := settings.SoundEnabled
	desktopNotify := settings.DesktopNotify
	fileData := yamlSettings{
		IntervalMinutes:       settings.IntervalMinutes,
		CountupTargetSeconds:  int(settings.CountupTarget / time.Second),
		StopwatchLimitSeconds: int(settings.StopwatchLimit / time.Second),
		ShowMilliseconds:      settings.ShowMilliseconds,
		SoundEnabled:          &soundEnabled,
		Volume:                settings.Volume,
		SoundFile:             settings.SoundFile,
		DesktopNotify:         &desktopNotify,
		Autostart:             settings.Autostart,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if model.ValidInterval(fileData.IntervalMinutes) {
		settings.IntervalMinutes = fileData.IntervalMinutes
	}
	if target := time.Duration(fileData.CountupTargetSeconds) * time.Second; target > 0 && target <= countupLimit {
		settings.CountupTarget = target
	}
	if fileData.StopwatchLimitSeconds > 0 {
		settings.StopwatchLimit = time.Duration(fileData.StopwatchLimitSeconds) * time.Second
	}
	if fileData.Volume >= preferences.MinVolume && fileData.Volume <= preferences.MaxVolume {
		settings.Volume = fileData.Volume
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
	if fileData.DesktopNotify != nil {
		settings.DesktopNotify = *fileData.DesktopNotify
	}

	settings.ShowMilliseconds = fileData.ShowMilliseconds
	settings.SoundFile = fileData.SoundFile
	settings.Autostart = fileData.Autostart
}
