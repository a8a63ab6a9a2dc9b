package overlay

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestBannerShowAndDismiss(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	banner := New(app, Config{FlashPeriod: time.Hour, FlashCount: 1})
	dismissed := 0
	banner.SetOnDismiss(func() { dismissed++ })

	banner.Show("Time's up!", "The next 15-minute interval has been reached.")
	assert.True(t, banner.Flashing())
	assert.Equal(t, "Time's up!", banner.titleLabel.Text)
	assert.Equal(t, "The next 15-minute interval has been reached.", banner.messageLabel.Text)
	assert.Equal(t, flashOn, banner.background.FillColor)

	test.Tap(banner.dismissButton)
	assert.False(t, banner.Flashing())
	assert.Equal(t, 1, dismissed)
}

func TestBannerFlashLoopEnds(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	banner := New(app, Config{FlashPeriod: 5 * time.Millisecond, FlashCount: 3})
	banner.Show("Time's up!", "")

	assert.Eventually(t, func() bool { return !banner.Flashing() }, 2*time.Second, 10*time.Millisecond)
}

func TestBannerDefaultsConfig(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	banner := New(app, Config{})
	assert.Equal(t, DefaultConfig(), banner.config)
	banner.Hide()
	assert.False(t, banner.Flashing())
}
