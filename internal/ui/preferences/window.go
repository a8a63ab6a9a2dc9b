package preferences

import (
	"strconv"
	"strings"

	"timeframe/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	interval   *widget.Entry
	sound      *widget.Check
	volume     *widget.Slider
	soundFile  *widget.Entry
	notify     *widget.Check
	autostart  *widget.Check
	showMillis *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Timeframe Settings")

	interval := widget.NewEntry()
	sound := widget.NewCheck("Play alert sound", nil)
	volume := widget.NewSlider(MinVolume, MaxVolume)
	volume.Step = 0.25
	soundFile := widget.NewEntry()
	soundFile.SetPlaceHolder("Built-in chime")
	notify := widget.NewCheck("Desktop notification on alert", nil)
	autostart := widget.NewCheck("Launch at login", nil)
	showMillis := widget.NewCheck("Show milliseconds in countup", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Alerts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Default timeframe"), interval, widget.NewLabel("min")),
		sound,
		widget.NewLabel("Volume"),
		volume,
		widget.NewLabel("Sound file (WAV)"),
		soundFile,
		notify,
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		showMillis,
		autostart,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 440))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		interval:   interval,
		sound:      sound,
		volume:     volume,
		soundFile:  soundFile,
		notify:     notify,
		autostart:  autostart,
		showMillis: showMillis,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.interval.SetText(strconv.Itoa(settings.IntervalMinutes))
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.volume.SetValue(ClampVolume(settings.Volume))
	prefs.soundFile.SetText(settings.SoundFile)
	prefs.notify.SetChecked(settings.DesktopNotify)
	prefs.autostart.SetChecked(settings.Autostart)
	prefs.showMillis.SetChecked(settings.ShowMilliseconds)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parseIntervalMinutes(prefs.interval.Text); ok {
		settings.IntervalMinutes = minutes
	}
	settings.SoundEnabled = prefs.sound.Checked
	settings.Volume = ClampVolume(prefs.volume.Value)
	settings.SoundFile = strings.TrimSpace(prefs.soundFile.Text)
	settings.DesktopNotify = prefs.notify.Checked
	settings.Autostart = prefs.autostart.Checked
	settings.ShowMilliseconds = prefs.showMillis.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parseIntervalMinutes(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || !model.ValidInterval(parsed) {
		return 0, false
	}
	return parsed, true
}
