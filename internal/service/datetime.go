package service

import (
	"strings"
	"time"
)

// Layouts accepted for a booking start time, tried in order.
// Local layouts are read in the configured default timezone; a bare date is UTC midnight.
var startAtLayouts = []struct {
	layout string
	local  bool
}{
	{time.RFC3339Nano, false},
	{time.RFC3339, false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02 15:04:05", true},
	{"2006-01-02 15:04", true},
	{"2006-01-02", false},
}

const confirmationLayout = "Jan 2, 2006, 3:04 PM"

// parseStartAt parses a booking time and returns it in UTC
func parseStartAt(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, l := range startAtLayouts {
		var (
			t   time.Time
			err error
		)
		if l.local {
			t, err = time.ParseInLocation(l.layout, value, loc)
		} else {
			t, err = time.Parse(l.layout, value)
		}
		if err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// loadLocation resolves an IANA name, falling back when empty or unknown
func loadLocation(name string, fallback *time.Location) *time.Location {
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
