package util

import (
	"fmt"
	"strings"
	"time"
)

var clockFormats = []string{"15:04", "3:04PM", "3:04 PM", "03:04PM", "03:04 PM"}

// ParseClock resolves a wall-clock time ("22:30", "10:30PM") to its next
// occurrence after now. A time that already passed today rolls over to tomorrow.
func ParseClock(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(strings.ToUpper(input))

	for _, layout := range clockFormats {
		t, err := time.Parse(layout, input)
		if err != nil {
			continue
		}
		target := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		if !target.After(now) {
			target = target.AddDate(0, 0, 1)
		}
		return target, nil
	}

	return time.Time{}, fmt.Errorf("Invalid time format: %q\n\nValid formats:\n"+
		"• 24-hour format: HH:MM (e.g., '23:30', '09:45')\n"+
		"• 12-hour format: HH:MM[AM|PM] (e.g., '11:30PM', '9:45 AM')", input)
}
