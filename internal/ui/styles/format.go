package styles

import "fmt"

// FormatPercent renders a 0-100 score with a percent sign.
func FormatPercent(v int) string {
	return fmt.Sprintf("%3d%%", v)
}

// FormatVolume renders a 0-1 volume as a percentage, e.g. "70%".
func FormatVolume(v float64) string {
	return fmt.Sprintf("%d%%", int(v*100+0.5))
}

// FormatMuteIndicator returns the status bar audio indicator.
func FormatMuteIndicator(enabled bool) string {
	if enabled {
		return "♪ on"
	}
	return "♪ off"
}
