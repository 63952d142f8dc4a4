package route

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// FormatDuration renders a travel time with at most two units, rounded to the
// minute, e.g. "7 hours 48 mins", "1 day 2 hours" or "45 mins".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	if d < time.Minute {
		return "1 min"
	}

	days := d / day
	hours := (d % day) / time.Hour
	mins := (d % time.Hour) / time.Minute

	parts := make([]string, 0, 2)
	switch {
	case days > 0:
		parts = append(parts, plural(int64(days), "day", "days"))
		if hours > 0 {
			parts = append(parts, plural(int64(hours), "hour", "hours"))
		}
	case hours > 0:
		parts = append(parts, plural(int64(hours), "hour", "hours"))
		if mins > 0 {
			parts = append(parts, plural(int64(mins), "min", "mins"))
		}
	default:
		parts = append(parts, plural(int64(mins), "min", "mins"))
	}

	return strings.Join(parts, " ")
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
