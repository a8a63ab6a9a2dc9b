package panels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"timeframe/internal/core/interval"
	"timeframe/internal/core/model"
	"timeframe/internal/core/timefmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var (
	// ErrEmptyInterval indicates the interval field was cleared.
	ErrEmptyInterval = errors.New("interval is empty")
	// ErrInvalidInterval indicates a non-numeric or out of range interval.
	ErrInvalidInterval = fmt.Errorf("interval must be a whole number from 1 to %d", model.MaxIntervalMinutes)
)

// ParseInterval validates the interval field.
func ParseInterval(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, ErrEmptyInterval
	}
	minutes, err := strconv.Atoi(trimmed)
	if err != nil || !model.ValidInterval(minutes) {
		return 0, ErrInvalidInterval
	}
	return minutes, nil
}

// AlertPanel is the interval alert timer form.
type AlertPanel struct {
	runner           *interval.Runner
	content          *fyne.Container
	intervalEntry    *widget.Entry
	toggleButton     *widget.Button
	stopNowButton    *widget.Button
	timeLeft         *widget.Label
	nextTrigger      *widget.Label
	alertCard        *widget.Card
	lastText         string
	onIntervalChange func(int)
}

// NewAlertPanel builds the form around runner.
func NewAlertPanel(runner *interval.Runner) *AlertPanel {
	panel := &AlertPanel{runner: runner}

	panel.intervalEntry = widget.NewEntry()
	panel.toggleButton = widget.NewButton("", func() {
		panel.runner.Toggle()
		panel.Refresh()
	})
	panel.toggleButton.Importance = widget.HighImportance
	panel.stopNowButton = widget.NewButton("Stop Now", func() {
		panel.runner.StopImmediately()
		panel.Refresh()
	})
	panel.stopNowButton.Importance = widget.DangerImportance
	panel.timeLeft = widget.NewLabel("")
	panel.nextTrigger = widget.NewLabel("")
	panel.alertCard = widget.NewCard("Time's up!", "", nil)

	minutes := runner.Snapshot().IntervalMinutes
	panel.lastText = strconv.Itoa(minutes)
	panel.intervalEntry.SetText(panel.lastText)
	panel.intervalEntry.OnChanged = panel.handleIntervalInput

	panel.content = container.NewVBox(
		widget.NewLabelWithStyle("Timeframe Alert Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Timeframe (minutes):"), nil, panel.intervalEntry),
		container.NewHBox(panel.toggleButton, panel.stopNowButton),
		panel.timeLeft,
		panel.nextTrigger,
		panel.alertCard,
	)

	panel.Refresh()
	return panel
}

// Content returns the panel root object.
func (panel *AlertPanel) Content() fyne.CanvasObject {
	return panel.content
}

// SetOnIntervalChange registers a callback for accepted interval edits.
func (panel *AlertPanel) SetOnIntervalChange(handler func(int)) {
	panel.onIntervalChange = handler
}

// SetInterval replaces the interval while idle, as if typed by the user.
func (panel *AlertPanel) SetInterval(minutes int) {
	if panel.runner.Snapshot().Status.Active() {
		return
	}
	panel.intervalEntry.SetText(strconv.Itoa(minutes))
}

// Apply renders a runner event. Must run on the UI goroutine.
func (panel *AlertPanel) Apply(interval.Event) {
	panel.Refresh()
}

// Refresh re-renders from the runner snapshot.
func (panel *AlertPanel) Refresh() {
	snapshot := panel.runner.Snapshot()
	minutes := snapshot.IntervalMinutes

	switch snapshot.Status {
	case interval.StatusIdle:
		panel.toggleButton.SetText(fmt.Sprintf("Alert trigger at next %dm timeframe time", minutes))
	case interval.StatusRunning:
		panel.toggleButton.SetText(fmt.Sprintf("Stop at next %dm timeframe", minutes))
	case interval.StatusStopping:
		panel.toggleButton.SetText("Cancel Stop")
	}

	if snapshot.Status.Active() {
		panel.intervalEntry.Disable()
		panel.stopNowButton.Show()
		panel.timeLeft.SetText("Time left: " + timefmt.MinutesSeconds(snapshot.RemainingSeconds))
		panel.timeLeft.Show()
	} else {
		panel.intervalEntry.Enable()
		panel.stopNowButton.Hide()
		panel.timeLeft.Hide()
	}

	panel.nextTrigger.SetText("Next trigger time: " + timefmt.TimeOfDay(snapshot.NextTriggerTime))

	if snapshot.AlertShown() {
		panel.alertCard.SetSubTitle(fmt.Sprintf("The next %d-minute interval has been reached.", minutes))
		panel.alertCard.Show()
	} else {
		panel.alertCard.Hide()
	}
}

func (panel *AlertPanel) handleIntervalInput(text string) {
	minutes, err := ParseInterval(text)
	switch {
	case errors.Is(err, ErrEmptyInterval):
		panel.lastText = text
		return
	case err != nil:
		panel.intervalEntry.SetText(panel.lastText)
		return
	}

	panel.lastText = text
	if minutes == panel.runner.Snapshot().IntervalMinutes {
		return
	}
	if err := panel.runner.SetInterval(minutes); err != nil {
		return
	}
	if panel.onIntervalChange != nil {
		panel.onIntervalChange(minutes)
	}
	panel.Refresh()
}
