package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Naive local timestamp layouts accepted at the API edge. No zone is parsed.
var timestampLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// TimestampLayout is the layout used when rendering timestamps.
const TimestampLayout = "2006-01-02T15:04"

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return result
}

// ParseTimestamp parses a naive local date-time with minute or second precision.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected YYYY-MM-DDTHH:MM", value)
}

// FormatTimestamp renders t without zone, keeping seconds only when set.
func FormatTimestamp(t time.Time) string {
	if t.Second() != 0 {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format(TimestampLayout)
}

// NaiveNow returns the local wall clock as a zone-less timestamp, comparable
// with values produced by ParseTimestamp.
func NaiveNow() time.Time {
	n := time.Now()
	return time.Date(n.Year(), n.Month(), n.Day(), n.Hour(), n.Minute(), n.Second(), 0, time.UTC)
}
