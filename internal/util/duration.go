package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration accepts either a bare number of minutes ("150") or a Go
// duration string ("2h30m").
func ParseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if minutes, err := strconv.Atoi(input); err == nil {
		if minutes < 0 {
			return 0, durationError(input)
		}
		return time.Duration(minutes) * time.Minute, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil || d < 0 {
		return 0, durationError(input)
	}
	return d, nil
}

func durationError(input string) error {
	return fmt.Errorf("Invalid duration format: %q\n\nValid formats:\n"+
		"• Minutes: 150\n"+
		"• Duration: 2h30m, 45m, 1h30m45s", input)
}

// FormatSeconds renders a wait the way the session log prints it,
// e.g. "612.3s (10.21 minutes)".
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.1fs (%.2f minutes)", d.Seconds(), d.Minutes())
}

// FormatElapsed renders a session length as H:MM:SS.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
