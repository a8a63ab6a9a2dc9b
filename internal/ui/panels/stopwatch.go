package panels

import (
	"strconv"
	"strings"
	"time"

	"timeframe/internal/core/stopwatch"
	"timeframe/internal/core/timefmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// StopwatchPanel is the stopwatch form.
type StopwatchPanel struct {
	runner        *stopwatch.Runner
	content       *fyne.Container
	display       *canvas.Text
	hours         *widget.Entry
	minutes       *widget.Entry
	seconds       *widget.Entry
	lastFields    [3]string
	reverting     bool
	resetButton   *widget.Button
	toggleButton  *widget.Button
	onLimitChange func(time.Duration)
}

// NewStopwatchPanel builds the form around runner.
func NewStopwatchPanel(runner *stopwatch.Runner) *StopwatchPanel {
	panel := &StopwatchPanel{runner: runner}

	panel.display = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	panel.display.TextSize = 32
	panel.display.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	panel.display.Alignment = fyne.TextAlignCenter

	panel.hours = widget.NewEntry()
	panel.hours.SetPlaceHolder("HH")
	panel.minutes = widget.NewEntry()
	panel.minutes.SetPlaceHolder("MM")
	panel.seconds = widget.NewEntry()
	panel.seconds.SetPlaceHolder("SS")

	limit := runner.Snapshot().Limit
	if limit > 0 {
		panel.hours.SetText(strconv.Itoa(int(limit / time.Hour)))
		panel.minutes.SetText(strconv.Itoa(int(limit / time.Minute % 60)))
		panel.seconds.SetText(strconv.Itoa(int(limit / time.Second % 60)))
	}
	panel.lastFields = panel.fieldTexts()
	for _, entry := range panel.entries() {
		entry.OnChanged = func(string) { panel.handleLimitInput() }
	}

	panel.resetButton = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() {
		panel.runner.Reset()
		panel.Refresh()
	})
	panel.toggleButton = widget.NewButton("Start", func() {
		panel.runner.Toggle()
		panel.Refresh()
	})
	panel.toggleButton.Importance = widget.HighImportance

	panel.content = container.NewVBox(
		widget.NewLabelWithStyle("Stopwatch", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Stop time (optional)"),
		container.NewGridWithColumns(3, panel.hours, panel.minutes, panel.seconds),
		panel.display,
		container.NewGridWithColumns(2, panel.resetButton, panel.toggleButton),
	)

	panel.Refresh()
	return panel
}

// Content returns the panel root object.
func (panel *StopwatchPanel) Content() fyne.CanvasObject {
	return panel.content
}

// SetOnLimitChange registers a callback for accepted stop time edits.
func (panel *StopwatchPanel) SetOnLimitChange(handler func(time.Duration)) {
	panel.onLimitChange = handler
}

// Apply renders a runner event. Must run on the UI goroutine.
func (panel *StopwatchPanel) Apply(event stopwatch.Event) {
	panel.render(event.State)
}

// Refresh re-renders from the runner snapshot.
func (panel *StopwatchPanel) Refresh() {
	panel.render(panel.runner.Snapshot())
}

func (panel *StopwatchPanel) render(state stopwatch.State) {
	panel.display.Text = timefmt.Clock(state.ElapsedSeconds)
	panel.display.Refresh()

	if state.Status == stopwatch.StatusRunning {
		panel.toggleButton.SetText("Stop")
	} else {
		panel.toggleButton.SetText("Start")
	}
	setEnabled(panel.toggleButton, !state.LimitReached)
}

func (panel *StopwatchPanel) handleLimitInput() {
	if panel.reverting {
		return
	}
	var values [3]int
	for index, entry := range panel.entries() {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		value, err := strconv.Atoi(text)
		if err != nil {
			panel.revert()
			return
		}
		values[index] = value
	}

	limit, err := stopwatch.LimitFrom(values[0], values[1], values[2])
	if err != nil {
		panel.revert()
		return
	}
	if err := panel.runner.SetLimit(limit); err != nil {
		panel.revert()
		return
	}
	panel.lastFields = panel.fieldTexts()
	if panel.onLimitChange != nil {
		panel.onLimitChange(limit)
	}
	panel.Refresh()
}

func (panel *StopwatchPanel) revert() {
	panel.reverting = true
	defer func() { panel.reverting = false }()
	last := panel.lastFields
	for index, entry := range panel.entries() {
		if entry.Text != last[index] {
			entry.SetText(last[index])
		}
	}
}

func (panel *StopwatchPanel) entries() []*widget.Entry {
	return []*widget.Entry{panel.hours, panel.minutes, panel.seconds}
}

func (panel *StopwatchPanel) fieldTexts() [3]string {
	return [3]string{panel.hours.Text, panel.minutes.Text, panel.seconds.Text}
}
