package panels

import (
	"strconv"
	"strings"
	"time"

	"timeframe/internal/core/countup"
	"timeframe/internal/core/timefmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// CountupPanel is the countup timer form.
type CountupPanel struct {
	runner         *countup.Runner
	content        *fyne.Container
	display        *canvas.Text
	progress       *widget.ProgressBar
	hours          *widget.Entry
	minutes        *widget.Entry
	seconds        *widget.Entry
	showMillis     *widget.Check
	sound          *widget.Check
	resetButton    *widget.Button
	startButton    *widget.Button
	pauseButton    *widget.Button
	onTargetChange func(time.Duration)
}

// NewCountupPanel builds the form around runner.
func NewCountupPanel(runner *countup.Runner, showMillis, soundEnabled bool) *CountupPanel {
	panel := &CountupPanel{runner: runner}

	panel.display = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	panel.display.TextSize = 32
	panel.display.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	panel.display.Alignment = fyne.TextAlignCenter

	panel.progress = widget.NewProgressBar()
	panel.progress.TextFormatter = func() string { return "" }

	panel.hours = widget.NewEntry()
	panel.hours.SetPlaceHolder("HH")
	panel.minutes = widget.NewEntry()
	panel.minutes.SetPlaceHolder("MM")
	panel.seconds = widget.NewEntry()
	panel.seconds.SetPlaceHolder("SS")

	target := runner.Snapshot().Target
	panel.hours.SetText(strconv.Itoa(int(target / time.Hour)))
	panel.minutes.SetText(strconv.Itoa(int(target / time.Minute % 60)))
	panel.seconds.SetText(strconv.Itoa(int(target / time.Second % 60)))
	for _, entry := range []*widget.Entry{panel.hours, panel.minutes, panel.seconds} {
		entry.OnChanged = func(string) { panel.handleTargetInput() }
	}

	panel.showMillis = widget.NewCheck("Show milliseconds", nil)
	panel.showMillis.SetChecked(showMillis)
	panel.sound = widget.NewCheck("Sound", nil)
	panel.sound.SetChecked(soundEnabled)

	panel.resetButton = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() {
		panel.runner.Reset()
		panel.Refresh()
	})
	panel.startButton = widget.NewButton("Start", func() {
		panel.runner.Start()
		panel.Refresh()
	})
	panel.startButton.Importance = widget.HighImportance
	panel.pauseButton = widget.NewButtonWithIcon("", theme.MediaPauseIcon(), func() {
		panel.runner.TogglePause()
		panel.Refresh()
	})

	panel.showMillis.OnChanged = func(bool) { panel.Refresh() }
	panel.sound.OnChanged = panel.runner.SetSoundEnabled
	panel.runner.SetSoundEnabled(soundEnabled)

	panel.content = container.NewVBox(
		widget.NewLabelWithStyle("Countup Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Set your target time and start counting up"),
		panel.display,
		panel.progress,
		container.NewGridWithColumns(3, panel.hours, panel.minutes, panel.seconds),
		container.NewHBox(panel.showMillis, panel.sound),
		container.NewGridWithColumns(3, panel.resetButton, panel.startButton, panel.pauseButton),
	)

	panel.Refresh()
	return panel
}

// Content returns the panel root object.
func (panel *CountupPanel) Content() fyne.CanvasObject {
	return panel.content
}

// SetOnTargetChange registers a callback for accepted target edits.
func (panel *CountupPanel) SetOnTargetChange(handler func(time.Duration)) {
	panel.onTargetChange = handler
}

// SetShowMilliseconds toggles the millisecond display.
func (panel *CountupPanel) SetShowMilliseconds(enabled bool) {
	panel.showMillis.SetChecked(enabled)
}

// Apply renders a runner event. Must run on the UI goroutine.
func (panel *CountupPanel) Apply(event countup.Event) {
	panel.render(event.State)
}

// Refresh re-renders from the runner snapshot.
func (panel *CountupPanel) Refresh() {
	panel.render(panel.runner.Snapshot())
}

func (panel *CountupPanel) render(state countup.State) {
	panel.display.Text = timefmt.Padded(state.Elapsed, panel.showMillis.Checked)
	panel.display.Refresh()
	panel.progress.SetValue(state.Progress)

	stopped := state.Status == countup.StatusStopped
	setEnabled(panel.startButton, stopped)
	setEnabled(panel.pauseButton, !stopped)
	for _, entry := range []*widget.Entry{panel.hours, panel.minutes, panel.seconds} {
		if stopped {
			entry.Enable()
		} else {
			entry.Disable()
		}
	}

	if state.Status == countup.StatusRunning {
		panel.pauseButton.SetIcon(theme.MediaPauseIcon())
	} else {
		panel.pauseButton.SetIcon(theme.MediaPlayIcon())
	}
}

func (panel *CountupPanel) handleTargetInput() {
	hours := normalizeField(panel.hours, 99)
	minutes := normalizeField(panel.minutes, 59)
	seconds := normalizeField(panel.seconds, 59)

	target := countup.ClampTarget(hours, minutes, seconds)
	panel.runner.SetTarget(target)
	if panel.onTargetChange != nil {
		panel.onTargetChange(target)
	}
	panel.Refresh()
}

// normalizeField parses an entry, clamps it to [0, upper] and writes the
// clamped value back when it differs from what was typed.
func normalizeField(entry *widget.Entry, upper int) int {
	text := strings.TrimSpace(entry.Text)
	value, err := strconv.Atoi(text)
	if err != nil {
		value = 0
	}
	if value < 0 {
		value = 0
	}
	if value > upper {
		value = upper
	}
	if text != "" && strconv.Itoa(value) != text {
		entry.SetText(strconv.Itoa(value))
	}
	return value
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}
