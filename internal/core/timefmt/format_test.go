package timefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	assert.Equal(t, "0:00:00", Clock(0))
	assert.Equal(t, "0:07:30", Clock(450))
	assert.Equal(t, "1:00:01", Clock(3601))
	assert.Equal(t, "12:34:56", Clock(12*3600+34*60+56))
	assert.Equal(t, "0:00:00", Clock(-4))
}

func TestMinutesSeconds(t *testing.T) {
	assert.Equal(t, "7:30", MinutesSeconds(450))
	assert.Equal(t, "30:00", MinutesSeconds(1800))
	assert.Equal(t, "90:05", MinutesSeconds(5405))
}

func TestPadded(t *testing.T) {
	value := 2*time.Hour + 3*time.Minute + 4*time.Second + 56*time.Millisecond
	assert.Equal(t, "02:03:04", Padded(value, false))
	assert.Equal(t, "02:03:04.056", Padded(value, true))
	assert.Equal(t, "00:00:00.000", Padded(-time.Second, true))
}

func TestTimeOfDay(t *testing.T) {
	assert.Equal(t, "10:15:00", TimeOfDay(time.Date(2026, 1, 1, 10, 15, 0, 0, time.UTC)))
	assert.Equal(t, "--:--:--", TimeOfDay(time.Time{}))
}
