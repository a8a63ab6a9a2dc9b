package storage

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"timeframe/internal/ui/preferences"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher reloads the settings file when it changes on disk.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onReload func(preferences.Settings)
	debounce time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	timer    *time.Timer
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewWatcher creates a watcher for the settings file at path.
func NewWatcher(path string, onReload func(preferences.Settings)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve settings path: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	return &Watcher{
		path:     absPath,
		watcher:  fsWatcher,
		onReload: onReload,
		debounce: defaultDebounce,
		logger:   slog.Default(),
		stopCh:   make(chan struct{}),
	}, nil
}

// SetDebounce overrides the delay between the last change and the reload.
func (watcher *Watcher) SetDebounce(debounce time.Duration) {
	if debounce > 0 {
		watcher.debounce = debounce
	}
}

// Start watches the directory holding the settings file, which also catches
// editors that replace the file instead of writing it in place.
func (watcher *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(watcher.path)
	if err := watcher.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch settings directory %s: %w", dir, err)
	}
	watcher.logger.Debug("watching settings file", "path", watcher.path)

	go watcher.loop(ctx)
	return nil
}

// Stop ends watching.
func (watcher *Watcher) Stop() error {
	var err error
	watcher.stopOnce.Do(func() {
		close(watcher.stopCh)
		watcher.mu.Lock()
		if watcher.timer != nil {
			watcher.timer.Stop()
		}
		watcher.mu.Unlock()
		err = watcher.watcher.Close()
	})
	return err
}

func (watcher *Watcher) loop(ctx context.Context) {
	name := filepath.Base(watcher.path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-watcher.stopCh:
			return
		case event, ok := <-watcher.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				watcher.schedule()
			}
		case err, ok := <-watcher.watcher.Errors:
			if !ok {
				return
			}
			watcher.logger.Error("settings watcher error", "error", err)
		}
	}
}

func (watcher *Watcher) schedule() {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()
	if watcher.timer != nil {
		watcher.timer.Stop()
	}
	watcher.timer = time.AfterFunc(watcher.debounce, watcher.reload)
}

func (watcher *Watcher) reload() {
	select {
	case <-watcher.stopCh:
		return
	default:
	}

	settings, err := LoadSettings(watcher.path)
	if err != nil {
		watcher.logger.Error("reload settings failed", "path", watcher.path, "error", err)
		return
	}
	watcher.logger.Info("settings reloaded", "path", watcher.path)
	if watcher.onReload != nil {
		watcher.onReload(settings)
	}
}
