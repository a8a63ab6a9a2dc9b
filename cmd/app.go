package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"timeframe/internal/core/countup"
	"timeframe/internal/core/interval"
	"timeframe/internal/core/stopwatch"
	"timeframe/internal/core/timefmt"
	"timeframe/internal/platform"
	"timeframe/internal/storage"
	"timeframe/internal/ui/overlay"
	"timeframe/internal/ui/panels"
	"timeframe/internal/ui/preferences"
	"timeframe/internal/ui/tray"
	"timeframe/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const eventBuffer = 16

type options struct {
	settings     preferences.Settings
	settingsPath string
	interval     int
	muted        bool
	logger       *slog.Logger
}

// application owns the runners and windows for one process.
type application struct {
	mu           sync.Mutex
	settings     preferences.Settings
	settingsPath string
	muted        bool
	logger       *slog.Logger

	fyneApp     fyne.App
	desktopApp  desktop.App
	window      fyne.Window
	activeIcon  fyne.Resource
	idleIcon    fyne.Resource
	cancelWatch context.CancelFunc
	watcher     *storage.Watcher

	alertRunner     *interval.Runner
	countupRunner   *countup.Runner
	stopwatchRunner *stopwatch.Runner

	alertPanel     *panels.AlertPanel
	countupPanel   *panels.CountupPanel
	stopwatchPanel *panels.StopwatchPanel

	chime       *platform.Chime
	banner      *overlay.Banner
	prefs       *preferences.Window
	trayManager *tray.Manager
	autostart   platform.Service
}

func newApplication(fyneApp fyne.App, opts options) (*application, error) {
	logger := opts.logger
	if logger == nil {
		logger = slog.Default()
	}
	settings := opts.settings
	if opts.interval > 0 {
		settings.IntervalMinutes = opts.interval
	}

	alertRunner, err := interval.NewRunner(settings.IntervalConfig(), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create interval alert: %w", err)
	}
	alertRunner.SetLogger(logger)
	countupRunner := countup.NewRunner(settings.CountupConfig(), nil, nil)
	countupRunner.SetLogger(logger)
	stopwatchRunner := stopwatch.NewRunner(settings.StopwatchConfig(), nil, nil)
	stopwatchRunner.SetLogger(logger)

	application := &application{
		settings:        settings,
		settingsPath:    opts.settingsPath,
		muted:           opts.muted,
		logger:          logger,
		fyneApp:         fyneApp,
		activeIcon:      resources.MustIcon(resources.IconActive),
		idleIcon:        resources.MustIcon(resources.IconIdle),
		alertRunner:     alertRunner,
		countupRunner:   countupRunner,
		stopwatchRunner: stopwatchRunner,
		autostart:       platform.NewService(),
	}
	application.chime = platform.NewChime(application.chimeConfig(settings))
	fyneApp.SetIcon(application.idleIcon)

	application.buildWindows()
	application.subscribe()
	return application, nil
}

func (application *application) buildWindows() {
	application.alertPanel = panels.NewAlertPanel(application.alertRunner)
	application.alertPanel.SetOnIntervalChange(func(minutes int) {
		application.updateSettings(func(settings *preferences.Settings) {
			settings.IntervalMinutes = minutes
		})
	})

	settings := application.currentSettings()
	application.countupPanel = panels.NewCountupPanel(application.countupRunner, settings.ShowMilliseconds, settings.SoundEnabled)
	application.countupPanel.SetOnTargetChange(func(target time.Duration) {
		application.updateSettings(func(settings *preferences.Settings) {
			settings.CountupTarget = target
		})
	})

	application.stopwatchPanel = panels.NewStopwatchPanel(application.stopwatchRunner)
	application.stopwatchPanel.SetOnLimitChange(func(limit time.Duration) {
		application.updateSettings(func(settings *preferences.Settings) {
			settings.StopwatchLimit = limit
		})
	})

	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Alert", theme.WarningIcon(), application.alertPanel.Content()),
		container.NewTabItemWithIcon("Countup", theme.HistoryIcon(), application.countupPanel.Content()),
		container.NewTabItemWithIcon("Stopwatch", theme.MediaPlayIcon(), application.stopwatchPanel.Content()),
	)

	application.window = application.fyneApp.NewWindow(appName)
	application.window.SetContent(tabs)
	application.window.Resize(fyne.NewSize(420, 480))
	application.window.SetMaster()

	application.banner = overlay.New(application.fyneApp, overlay.DefaultConfig())
	application.prefs = preferences.New(application.fyneApp, settings, func(updated preferences.Settings) {
		application.applySettings(updated, true)
	})

	desktopApp, ok := application.fyneApp.(desktop.App)
	if !ok {
		application.logger.Warn("system tray unsupported on this platform")
		return
	}
	application.desktopApp = desktopApp
	application.window.SetCloseIntercept(application.window.Hide)
	application.trayManager = tray.New(desktopApp, tray.Callbacks{
		OnShow:        application.showMain,
		OnToggleAlert: application.alertRunner.Toggle,
		OnStopNow:     application.alertRunner.StopImmediately,
		OnPreferences: application.prefs.Show,
		OnQuit:        application.fyneApp.Quit,
	})
	desktopApp.SetSystemTrayIcon(application.idleIcon)
	application.trayManager.SetAlertStatus(interval.StatusIdle, settings.IntervalMinutes)
	application.trayManager.SetStatus("idle")

	application.window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("Timeframe",
		fyne.NewMenuItem("Preferences", application.prefs.Show),
	)))
}

func (application *application) subscribe() {
	alertEvents := application.alertRunner.Subscribe(eventBuffer)
	go func() {
		for event := range alertEvents {
			if event.Type == interval.EventAlert {
				application.playChime()
			}
			fyne.Do(func() {
				application.handleAlertEvent(event)
			})
		}
	}()

	countupEvents := application.countupRunner.Subscribe(eventBuffer)
	go func() {
		for event := range countupEvents {
			if event.Type == countup.EventCompleted && event.SoundEnabled {
				application.playChime()
			}
			fyne.Do(func() {
				application.countupPanel.Apply(event)
				if event.Type == countup.EventCompleted {
					application.notify("Time's up!",
						fmt.Sprintf("Countup reached %s.", timefmt.Padded(event.State.Target, false)))
				}
			})
		}
	}()

	stopwatchEvents := application.stopwatchRunner.Subscribe(eventBuffer)
	go func() {
		for event := range stopwatchEvents {
			fyne.Do(func() {
				application.stopwatchPanel.Apply(event)
			})
		}
	}()
}

func (application *application) handleAlertEvent(event interval.Event) {
	application.alertPanel.Apply(event)

	if event.Type == interval.EventAlert {
		application.notify("Time's up!",
			fmt.Sprintf("The next %d-minute interval has been reached.", event.IntervalMinutes))
	}
	application.updateTray(event)
}

func (application *application) updateTray(event interval.Event) {
	if application.trayManager == nil {
		return
	}
	if event.Status.Active() {
		application.trayManager.SetStatus("next alert at " + timefmt.TimeOfDay(event.TargetEndTime))
	} else {
		application.trayManager.SetStatus("idle")
	}
	if event.Type != interval.EventStateChange {
		return
	}
	application.trayManager.SetAlertStatus(event.Status, event.IntervalMinutes)
	if event.Status.Active() {
		application.desktopApp.SetSystemTrayIcon(application.activeIcon)
	} else {
		application.desktopApp.SetSystemTrayIcon(application.idleIcon)
	}
}

// notify shows the banner and, when enabled, a desktop notification.
// Must run on the UI goroutine.
func (application *application) notify(title, message string) {
	if application.currentSettings().DesktopNotify {
		application.fyneApp.SendNotification(fyne.NewNotification(title, message))
	}
	application.banner.Show(title, message)
}

func (application *application) playChime() {
	err := application.chime.Play()
	switch {
	case err == nil:
	case errors.Is(err, platform.ErrChimeMuted), errors.Is(err, platform.ErrChimeBusy):
		application.logger.Debug("alert sound skipped", "error", err)
	default:
		application.logger.Warn("alert sound failed", "error", err)
	}
}

func (application *application) showMain() {
	application.window.Show()
	application.window.RequestFocus()
}

func (application *application) requestShow() {
	fyne.Do(application.showMain)
}

func (application *application) currentSettings() preferences.Settings {
	application.mu.Lock()
	defer application.mu.Unlock()
	return application.settings
}

func (application *application) chimeConfig(settings preferences.Settings) platform.ChimeConfig {
	config := settings.ChimeConfig()
	if application.muted {
		config.Muted = true
	}
	return config
}

// updateSettings persists a single-field edit made in one of the panels.
func (application *application) updateSettings(edit func(*preferences.Settings)) {
	application.mu.Lock()
	settings := application.settings
	application.mu.Unlock()

	edit(&settings)
	application.applySettings(settings, true)
}

// applySettings makes updated current. Must run on the UI goroutine.
func (application *application) applySettings(updated preferences.Settings, persist bool) {
	application.mu.Lock()
	previous := application.settings
	application.settings = updated
	application.mu.Unlock()

	if updated == previous {
		return
	}
	if persist {
		if err := storage.SaveSettings(application.settingsPath, updated); err != nil {
			application.logger.Error("save settings failed", "path", application.settingsPath, "error", err)
		}
	}

	application.chime.UpdateConfig(application.chimeConfig(updated))
	if updated.Autostart != previous.Autostart {
		if err := platform.ApplyAutostart(application.autostart, appName, updated.Autostart); err != nil {
			application.logger.Error("update autostart failed", "error", err)
		}
	}
	if updated.IntervalMinutes != previous.IntervalMinutes {
		application.alertPanel.SetInterval(updated.IntervalMinutes)
	}
	if updated.ShowMilliseconds != previous.ShowMilliseconds {
		application.countupPanel.SetShowMilliseconds(updated.ShowMilliseconds)
	}
	application.prefs.UpdateSettings(updated)
}

func (application *application) watchSettings() error {
	if err := os.MkdirAll(filepath.Dir(application.settingsPath), 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	watcher, err := storage.NewWatcher(application.settingsPath, func(settings preferences.Settings) {
		fyne.Do(func() {
			application.applySettings(settings, false)
		})
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := watcher.Start(ctx); err != nil {
		cancel()
		return err
	}
	application.watcher = watcher
	application.cancelWatch = cancel
	return nil
}

func (application *application) close() {
	if application.cancelWatch != nil {
		application.cancelWatch()
	}
	if application.watcher != nil {
		_ = application.watcher.Stop()
	}
	application.alertRunner.Close()
	application.countupRunner.Close()
	application.stopwatchRunner.Close()
}
