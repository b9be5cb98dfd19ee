package model

import (
	"strings"
	"time"
)

// Layouts seen in postDate/deadline fields, most common first.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"02-01-2006",
	"02/01/2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
}

// ParseDate parses the free-text dates stored on tasks.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a stored date for tables and reports. Unparsable
// values are returned as they are.
func FormatDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return t.Format("02 Jan 2006")
}

// MonthKey returns the "2006-01" month of a stored date.
func MonthKey(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format("2006-01")
}
