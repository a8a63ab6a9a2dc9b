package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"timeframe/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	want := preferences.DefaultSettings()
	want.IntervalMinutes = 30
	want.CountupTarget = 90 * time.Second
	want.StopwatchLimit = time.Hour
	want.ShowMilliseconds = true
	want.SoundEnabled = false
	want.Volume = -1.5
	want.SoundFile = "/tmp/bell.wav"
	want.DesktopNotify = false
	want.Autostart = true

	require.NoError(t, SaveSettings(path, want))
	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsFallsBackPerField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "interval_minutes: -4\ncountup_target_seconds: 999999999\nvolume: 7\nshow_milliseconds: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)

	defaults := preferences.DefaultSettings()
	assert.Equal(t, defaults.IntervalMinutes, settings.IntervalMinutes)
	assert.Equal(t, defaults.CountupTarget, settings.CountupTarget)
	assert.Equal(t, defaults.Volume, settings.Volume)
	assert.True(t, settings.SoundEnabled, "absent sound flag keeps the default")
	assert.True(t, settings.ShowMilliseconds)
}

func TestLoadSettingsRejectsOversizedInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interval_minutes: 200000000\n"), 0o644))

	settings, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings().IntervalMinutes, settings.IntervalMinutes)
}

func TestLoadSettingsRejectsMalformedYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("interval_minutes: [nope"), 0o644))

	settings, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestWatcherReloadsOnExternalEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, SaveSettings(path, preferences.DefaultSettings()))

	reloaded := make(chan preferences.Settings, 4)
	watcher, err := NewWatcher(path, func(settings preferences.Settings) {
		reloaded <- settings
	})
	require.NoError(t, err)
	watcher.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, watcher.Start(ctx))
	defer watcher.Stop()

	require.NoError(t, os.WriteFile(path, []byte("interval_minutes: 5\n"), 0o644))

	timeout := time.After(3 * time.Second)
	for {
		select {
		case settings := <-reloaded:
			if settings.IntervalMinutes == 5 {
				return
			}
		case <-timeout:
			t.Fatal("settings were not reloaded")
		}
	}
}
