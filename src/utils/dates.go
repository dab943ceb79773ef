package utils

import (
	"fmt"
	"time"
)

const ShortDashDateLayout = "2006-01-02"

// RangeStart resolves a lookback range string ("1mo", "3mo", "6mo", "1y",
// "5y", "max") to the start instant of the window ending at now. "max" maps
// to the Unix epoch.
func RangeStart(now time.Time, rng string) (time.Time, error) {
	switch rng {
	case "1d":
		return now.AddDate(0, 0, -1), nil
	case "5d":
		return now.AddDate(0, 0, -5), nil
	case "1mo":
		return now.AddDate(0, -1, 0), nil
	case "3mo":
		return now.AddDate(0, -3, 0), nil
	case "6mo":
		return now.AddDate(0, -6, 0), nil
	case "1y":
		return now.AddDate(-1, 0, 0), nil
	case "5y":
		return now.AddDate(-5, 0, 0), nil
	case "max":
		return time.Unix(0, 0).UTC(), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported range %q", rng)
	}
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
