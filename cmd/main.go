package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"timeframe/internal/core/model"
	"timeframe/internal/platform"
	"timeframe/internal/storage"

	"fyne.io/fyne/v2/app"
	"github.com/alecthomas/kong"
)

const (
	appName = "Timeframe"
	appID   = "app.timeframe"
)

// CLI holds the launch flags.
type CLI struct {
	Config   string `help:"Settings file path." type:"path" placeholder:"PATH"`
	Interval int    `help:"Alert interval in minutes for this session." placeholder:"MINUTES"`
	Start    bool   `help:"Start the interval alert at launch."`
	Mute     bool   `help:"Silence alert sounds for this session."`
	Verbose  bool   `short:"v" help:"Enable debug logging."`
}

// Validate rejects an interval override outside the accepted range.
// Zero means no override.
func (cli *CLI) Validate() error {
	if cli.Interval != 0 && !model.ValidInterval(cli.Interval) {
		return fmt.Errorf("--interval must be between 1 and %d minutes", model.MaxIntervalMinutes)
	}
	return nil
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("timeframe"),
		kong.Description("Interval alert timer with countup and stopwatch."),
		kong.UsageOnError(),
	)

	logger := newLogger(cli.Verbose)
	slog.SetDefault(logger)

	if err := run(cli, logger); err != nil {
		logger.Error("timeframe exited", "error", err)
		os.Exit(1)
	}
}

func run(cli CLI, logger *slog.Logger) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("another instance is running, asking it to show")
		return platform.NotifyRunningInstance(appName)
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	settingsPath := cli.Config
	if settingsPath == "" {
		settingsPath, err = storage.SettingsPath(appName)
		if err != nil {
			return err
		}
	}
	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		logger.Warn("using default settings", "path", settingsPath, "error", err)
	}

	fyneApp := app.NewWithID(appID)
	timeframe, err := newApplication(fyneApp, options{
		settings:     settings,
		settingsPath: settingsPath,
		interval:     cli.Interval,
		muted:        cli.Mute,
		logger:       logger,
	})
	if err != nil {
		return err
	}
	defer timeframe.close()

	guard.Serve(timeframe.requestShow)
	if err := timeframe.watchSettings(); err != nil {
		logger.Warn("settings hot reload disabled", "path", settingsPath, "error", err)
	}
	if cli.Start {
		timeframe.alertRunner.Start()
	}

	timeframe.window.Show()
	fyneApp.Run()
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
