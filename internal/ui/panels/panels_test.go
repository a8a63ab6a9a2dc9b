package panels

import (
	"testing"
	"time"

	"timeframe/internal/core/countup"
	"timeframe/internal/core/interval"
	"timeframe/internal/core/model"
	"timeframe/internal/core/pulse/pulsetest"
	"timeframe/internal/core/stopwatch"

	"fyne.io/fyne/v2/test"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var panelEpoch = time.Date(2026, 3, 14, 10, 7, 30, 0, time.UTC)

func newAlertPanel(t *testing.T, minutes int) (*AlertPanel, *interval.Runner, *clockwork.FakeClock) {
	t.Helper()
	test.NewApp()
	clock := clockwork.NewFakeClockAt(panelEpoch)
	runner, err := interval.NewRunner(model.IntervalConfig{IntervalMinutes: minutes}, pulsetest.New(), clock)
	require.NoError(t, err)
	t.Cleanup(runner.Close)
	return NewAlertPanel(runner), runner, clock
}

func TestParseInterval(t *testing.T) {
	minutes, err := ParseInterval(" 15 ")
	require.NoError(t, err)
	assert.Equal(t, 15, minutes)

	_, err = ParseInterval("")
	assert.ErrorIs(t, err, ErrEmptyInterval)

	minutes, err = ParseInterval("10080")
	require.NoError(t, err)
	assert.Equal(t, 10080, minutes)

	for _, input := range []string{"0", "-5", "abc", "1.5", "10081", "200000000"} {
		_, err := ParseInterval(input)
		assert.ErrorIs(t, err, ErrInvalidInterval, "input %q", input)
	}
}

func TestAlertPanelIdleLabels(t *testing.T) {
	panel, _, _ := newAlertPanel(t, 15)

	assert.Equal(t, "Alert trigger at next 15m timeframe time", panel.toggleButton.Text)
	assert.False(t, panel.stopNowButton.Visible())
	assert.False(t, panel.timeLeft.Visible())
	assert.False(t, panel.alertCard.Visible())
	assert.Equal(t, "Next trigger time: 10:15:00", panel.nextTrigger.Text)
}

func TestAlertPanelToggleCyclesLabels(t *testing.T) {
	panel, runner, _ := newAlertPanel(t, 15)

	test.Tap(panel.toggleButton)
	assert.Equal(t, "Stop at next 15m timeframe", panel.toggleButton.Text)
	assert.True(t, panel.stopNowButton.Visible())
	assert.Equal(t, "Time left: 7:30", panel.timeLeft.Text)
	assert.True(t, panel.intervalEntry.Disabled())

	test.Tap(panel.toggleButton)
	assert.Equal(t, "Cancel Stop", panel.toggleButton.Text)
	assert.Equal(t, interval.StatusStopping, runner.Snapshot().Status)

	test.Tap(panel.toggleButton)
	assert.Equal(t, interval.StatusRunning, runner.Snapshot().Status)
}

func TestAlertPanelStopNowReturnsToIdle(t *testing.T) {
	panel, runner, _ := newAlertPanel(t, 15)

	test.Tap(panel.toggleButton)
	test.Tap(panel.stopNowButton)

	assert.Equal(t, interval.StatusIdle, runner.Snapshot().Status)
	assert.False(t, panel.stopNowButton.Visible())
	assert.False(t, panel.intervalEntry.Disabled())
	assert.False(t, panel.alertCard.Visible())
}

func TestAlertPanelShowsCardAfterAlert(t *testing.T) {
	panel, runner, clock := newAlertPanel(t, 15)

	test.Tap(panel.toggleButton)
	clock.Advance(450 * time.Second)
	runner.Tick(clock.Now())
	panel.Refresh()

	assert.True(t, panel.alertCard.Visible())
	assert.Equal(t, "The next 15-minute interval has been reached.", panel.alertCard.Subtitle)
	assert.Equal(t, "Time left: 15:00", panel.timeLeft.Text)
}

func TestAlertPanelIntervalInput(t *testing.T) {
	panel, runner, _ := newAlertPanel(t, 15)
	var changed []int
	panel.SetOnIntervalChange(func(minutes int) { changed = append(changed, minutes) })

	panel.intervalEntry.SetText("30")
	assert.Equal(t, 30, runner.Snapshot().IntervalMinutes)
	assert.Equal(t, "Alert trigger at next 30m timeframe time", panel.toggleButton.Text)
	assert.Equal(t, "Next trigger time: 10:30:00", panel.nextTrigger.Text)

	panel.intervalEntry.SetText("abc")
	assert.Equal(t, "30", panel.intervalEntry.Text)
	assert.Equal(t, 30, runner.Snapshot().IntervalMinutes)

	panel.intervalEntry.SetText("")
	assert.Equal(t, 30, runner.Snapshot().IntervalMinutes)

	assert.Equal(t, []int{30}, changed)
}

func TestAlertPanelSetIntervalIgnoredWhileActive(t *testing.T) {
	panel, runner, _ := newAlertPanel(t, 15)
	test.Tap(panel.toggleButton)

	panel.SetInterval(45)
	assert.Equal(t, 15, runner.Snapshot().IntervalMinutes)
	assert.Equal(t, "15", panel.intervalEntry.Text)
}

func newCountupPanel(t *testing.T, target time.Duration) (*CountupPanel, *countup.Runner, *clockwork.FakeClock) {
	t.Helper()
	test.NewApp()
	clock := clockwork.NewFakeClockAt(panelEpoch)
	runner := countup.NewRunner(model.CountupConfig{Target: target, SoundEnabled: true}, pulsetest.New(), clock)
	t.Cleanup(runner.Close)
	return NewCountupPanel(runner, false, true), runner, clock
}

func TestCountupPanelClampsFields(t *testing.T) {
	panel, runner, _ := newCountupPanel(t, 0)

	panel.minutes.SetText("75")
	assert.Equal(t, "59", panel.minutes.Text)
	panel.hours.SetText("x")
	assert.Equal(t, "0", panel.hours.Text)
	panel.seconds.SetText("30")

	assert.Equal(t, 59*time.Minute+30*time.Second, runner.Snapshot().Target)
}

func TestCountupPanelButtonEnablement(t *testing.T) {
	panel, runner, clock := newCountupPanel(t, 10*time.Second)

	assert.False(t, panel.startButton.Disabled())
	assert.True(t, panel.pauseButton.Disabled())

	test.Tap(panel.startButton)
	assert.True(t, panel.startButton.Disabled())
	assert.False(t, panel.pauseButton.Disabled())
	assert.True(t, panel.hours.Disabled())

	clock.Advance(4 * time.Second)
	panel.Refresh()
	assert.Equal(t, "00:00:04", panel.display.Text)
	assert.InDelta(t, 0.4, panel.progress.Value, 0.001)

	test.Tap(panel.pauseButton)
	assert.Equal(t, countup.StatusPaused, runner.Snapshot().Status)

	test.Tap(panel.resetButton)
	assert.Equal(t, countup.StatusStopped, runner.Snapshot().Status)
	assert.Equal(t, "00:00:00", panel.display.Text)
	assert.False(t, panel.hours.Disabled())
}

func TestCountupPanelMillisecondDisplay(t *testing.T) {
	panel, _, clock := newCountupPanel(t, time.Minute)

	test.Tap(panel.startButton)
	clock.Advance(1250 * time.Millisecond)
	panel.SetShowMilliseconds(true)

	assert.Equal(t, "00:00:01.250", panel.display.Text)
}

func newStopwatchPanel(t *testing.T) (*StopwatchPanel, *stopwatch.Runner, *clockwork.FakeClock) {
	t.Helper()
	test.NewApp()
	clock := clockwork.NewFakeClockAt(panelEpoch)
	runner := stopwatch.NewRunner(model.StopwatchConfig{}, pulsetest.New(), clock)
	t.Cleanup(runner.Close)
	return NewStopwatchPanel(runner), runner, clock
}

func TestStopwatchPanelToggle(t *testing.T) {
	panel, runner, clock := newStopwatchPanel(t)
	assert.Equal(t, "0:00:00", panel.display.Text)
	assert.Equal(t, "Start", panel.toggleButton.Text)

	test.Tap(panel.toggleButton)
	assert.Equal(t, "Stop", panel.toggleButton.Text)

	clock.Advance(65 * time.Second)
	test.Tap(panel.toggleButton)
	assert.Equal(t, "Start", panel.toggleButton.Text)
	assert.Equal(t, "0:01:05", panel.display.Text)
	assert.Equal(t, stopwatch.StatusStopped, runner.Snapshot().Status)

	test.Tap(panel.resetButton)
	assert.Equal(t, "0:00:00", panel.display.Text)
}

func TestStopwatchPanelLimitInput(t *testing.T) {
	panel, runner, _ := newStopwatchPanel(t)
	var limits []time.Duration
	panel.SetOnLimitChange(func(limit time.Duration) { limits = append(limits, limit) })

	panel.minutes.SetText("2")
	assert.Equal(t, 2*time.Minute, runner.Snapshot().Limit)

	panel.seconds.SetText("75")
	assert.Equal(t, "", panel.seconds.Text)
	assert.Equal(t, 2*time.Minute, runner.Snapshot().Limit)

	panel.hours.SetText("nope")
	assert.Equal(t, "", panel.hours.Text)

	assert.Equal(t, []time.Duration{2 * time.Minute}, limits)
}

func TestStopwatchPanelDisablesToggleAtLimit(t *testing.T) {
	panel, runner, clock := newStopwatchPanel(t)
	panel.seconds.SetText("3")

	test.Tap(panel.toggleButton)
	clock.Advance(3 * time.Second)
	runner.Tick(clock.Now())
	panel.Refresh()

	assert.Equal(t, "0:00:03", panel.display.Text)
	assert.True(t, panel.toggleButton.Disabled())
}
