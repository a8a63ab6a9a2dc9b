package tray

import (
	"testing"

	"timeframe/internal/core/interval"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHost struct {
	menus []*fyne.Menu
}

func (host *recordingHost) SetSystemTrayMenu(menu *fyne.Menu) {
	host.menus = append(host.menus, menu)
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.Failf(t, "menu item not found", "label %q", label)
	return nil
}

func TestAlertStatusLabels(t *testing.T) {
	host := &recordingHost{}
	manager := New(host, Callbacks{})
	require.Len(t, host.menus, 1)

	manager.SetAlertStatus(interval.StatusIdle, 15)
	findItem(t, manager.Menu(), "Start 15m alerts")
	assert.True(t, findItem(t, manager.Menu(), "Stop now").Disabled)

	manager.SetAlertStatus(interval.StatusRunning, 15)
	findItem(t, manager.Menu(), "Stop at next 15m")
	assert.False(t, findItem(t, manager.Menu(), "Stop now").Disabled)

	manager.SetAlertStatus(interval.StatusStopping, 15)
	findItem(t, manager.Menu(), "Cancel stop")
}

func TestStatusRefreshesOnlyOnChange(t *testing.T) {
	host := &recordingHost{}
	manager := New(host, Callbacks{})

	manager.SetStatus("next alert at 10:15:00")
	manager.SetStatus("next alert at 10:15:00")

	assert.Len(t, host.menus, 2)
	findItem(t, manager.Menu(), "Status: next alert at 10:15:00")
}

func TestCallbacksInvoked(t *testing.T) {
	var calls []string
	manager := New(nil, Callbacks{
		OnShow:        func() { calls = append(calls, "show") },
		OnToggleAlert: func() { calls = append(calls, "toggle") },
		OnStopNow:     func() { calls = append(calls, "stop") },
		OnQuit:        func() { calls = append(calls, "quit") },
	})

	findItem(t, manager.Menu(), "Show timers").Action()
	findItem(t, manager.Menu(), "Start alerts").Action()
	findItem(t, manager.Menu(), "Stop now").Action()
	findItem(t, manager.Menu(), "Preferences").Action()
	findItem(t, manager.Menu(), "Quit").Action()

	assert.Equal(t, []string{"show", "toggle", "stop", "quit"}, calls)
}
