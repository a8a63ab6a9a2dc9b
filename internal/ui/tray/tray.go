package tray

import (
	"fmt"

	"timeframe/internal/core/interval"

	"fyne.io/fyne/v2"
)

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggleAlert func()
	OnStopNow     func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host       Host
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	stopItem   *fyne.MenuItem
	menu       *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(host Host, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start alerts", func() {
		invoke(manager.callbacks.OnToggleAlert)
	})
	manager.stopItem = fyne.NewMenuItem("Stop now", func() {
		invoke(manager.callbacks.OnStopNow)
	})
	manager.stopItem.Disabled = true

	manager.menu = fyne.NewMenu("Timeframe",
		manager.statusItem,
		fyne.NewMenuItem("Show timers", func() {
			invoke(manager.callbacks.OnShow)
		}),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			invoke(manager.callbacks.OnPreferences)
		}),
		fyne.NewMenuItem("Quit", func() {
			invoke(manager.callbacks.OnQuit)
		}),
	)
	manager.refreshMenu()

	return manager
}

// Menu returns the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	label := fmt.Sprintf("Status: %s", status)
	if manager.statusItem.Label == label {
		return
	}
	manager.statusItem.Label = label
	manager.refreshMenu()
}

// SetAlertStatus relabels the alert items for the scheduler status.
func (manager *Manager) SetAlertStatus(status interval.Status, intervalMinutes int) {
	switch status {
	case interval.StatusRunning:
		manager.toggleItem.Label = fmt.Sprintf("Stop at next %dm", intervalMinutes)
	case interval.StatusStopping:
		manager.toggleItem.Label = "Cancel stop"
	default:
		manager.toggleItem.Label = fmt.Sprintf("Start %dm alerts", intervalMinutes)
	}
	manager.stopItem.Disabled = !status.Active()
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.menu)
	}
}

func invoke(callback func()) {
	if callback != nil {
		callback()
	}
}
