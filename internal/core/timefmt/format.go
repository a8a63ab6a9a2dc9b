package timefmt

import (
	"fmt"
	"time"
)

// Clock formats whole seconds as H:MM:SS without padding the hours.
func Clock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := totalSeconds / 60 % 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}

// MinutesSeconds formats whole seconds as M:SS. Minutes are not wrapped at an hour.
func MinutesSeconds(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

// Padded formats a duration as HH:MM:SS, optionally with milliseconds.
func Padded(value time.Duration, withMillis bool) string {
	if value < 0 {
		value = 0
	}
	hours := int(value / time.Hour)
	minutes := int(value / time.Minute % 60)
	seconds := int(value / time.Second % 60)
	if !withMillis {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	millis := int(value / time.Millisecond % 1000)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// TimeOfDay formats a wall-clock instant for display.
func TimeOfDay(value time.Time) string {
	if value.IsZero() {
		return "--:--:--"
	}
	return value.Format("15:04:05")
}
