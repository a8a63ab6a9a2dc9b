package overlay

import (
	"context"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Config defines banner flashing.
type Config struct {
	FlashPeriod time.Duration
	FlashCount  int
}

// DefaultConfig flashes twice a second for ten seconds.
func DefaultConfig() Config {
	return Config{FlashPeriod: 500 * time.Millisecond, FlashCount: 20}
}

var (
	flashOn  = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	flashOff = color.NRGBA{R: 40, G: 40, B: 40, A: 235}
)

const (
	bannerWidth  = float32(320)
	bannerHeight = float32(140)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// Banner is the small "Time's up!" window shown on an alert.
type Banner struct {
	mu            sync.Mutex
	window        fyne.Window
	config        Config
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	messageLabel  *canvas.Text
	dismissButton *widget.Button
	cancelCtx     context.CancelFunc
	onDismiss     func()
}

// New creates a hidden banner.
func New(app fyne.App, config Config) *Banner {
	if config.FlashPeriod <= 0 {
		config.FlashPeriod = DefaultConfig().FlashPeriod
	}
	if config.FlashCount <= 0 {
		config.FlashCount = DefaultConfig().FlashCount
	}

	window := app.NewWindow("Timeframe")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Undecorated window, no native frame.
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(flashOff)

	titleLabel := canvas.NewText("Time's up!", color.White)
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 22

	messageLabel := canvas.NewText("", color.White)
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.TextSize = 14

	banner := &Banner{
		window:       window,
		config:       config,
		background:   background,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
	}
	banner.dismissButton = widget.NewButton("Dismiss", banner.dismiss)

	content := container.NewVBox(
		layout.NewSpacer(),
		titleLabel,
		messageLabel,
		container.NewCenter(banner.dismissButton),
		layout.NewSpacer(),
	)
	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(bannerWidth, bannerHeight))
	window.SetCloseIntercept(banner.dismiss)

	return banner
}

// SetOnDismiss sets the dismiss handler.
func (banner *Banner) SetOnDismiss(handler func()) {
	banner.onDismiss = handler
}

// Show displays the banner and starts flashing. Must run on the UI goroutine.
func (banner *Banner) Show(title, message string) {
	banner.stopFlash()
	ctx, cancel := context.WithCancel(context.Background())
	banner.mu.Lock()
	banner.cancelCtx = cancel
	banner.mu.Unlock()

	banner.titleLabel.Text = title
	banner.titleLabel.Refresh()
	banner.messageLabel.Text = message
	banner.messageLabel.Refresh()
	banner.setLit(true)

	banner.window.CenterOnScreen()
	banner.window.Show()
	banner.window.RequestFocus()

	go banner.flash(ctx, banner.config)
}

// Hide closes the banner and stops flashing.
func (banner *Banner) Hide() {
	banner.stopFlash()
	banner.window.Hide()
}

// Flashing reports whether the flash loop is active.
func (banner *Banner) Flashing() bool {
	banner.mu.Lock()
	defer banner.mu.Unlock()
	return banner.cancelCtx != nil
}

func (banner *Banner) dismiss() {
	banner.Hide()
	if banner.onDismiss != nil {
		banner.onDismiss()
	}
}

func (banner *Banner) flash(ctx context.Context, config Config) {
	lit := true
	for index := 0; index < config.FlashCount; index++ {
		if !sleepWithContext(ctx, config.FlashPeriod) {
			return
		}
		lit = !lit
		state := lit
		fyne.Do(func() {
			banner.setLit(state)
		})
	}
	fyne.Do(func() {
		banner.setLit(true)
	})

	banner.mu.Lock()
	if ctx.Err() == nil && banner.cancelCtx != nil {
		banner.cancelCtx()
		banner.cancelCtx = nil
	}
	banner.mu.Unlock()
}

func (banner *Banner) setLit(lit bool) {
	if lit {
		banner.background.FillColor = flashOn
		banner.titleLabel.Color = color.Black
		banner.messageLabel.Color = color.Black
	} else {
		banner.background.FillColor = flashOff
		banner.titleLabel.Color = color.White
		banner.messageLabel.Color = color.White
	}
	banner.background.Refresh()
	banner.titleLabel.Refresh()
	banner.messageLabel.Refresh()
}

func (banner *Banner) stopFlash() {
	banner.mu.Lock()
	defer banner.mu.Unlock()
	if banner.cancelCtx != nil {
		banner.cancelCtx()
		banner.cancelCtx = nil
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	if duration <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
