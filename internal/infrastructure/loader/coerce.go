package loader

import (
	"strconv"
	"strings"
	"time"
)

// Date layouts seen across the dataset exports. Slash and dash layouts are
// ambiguous; dayFirst decides which reading wins, mirroring the cleaning
// step the dashboards were originally built on.
var (
	isoLayouts = []string{
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	dayFirstLayouts = []string{
		"02/01/2006 15:04:05",
		"02/01/2006",
		"2/1/2006",
		"02-01-2006",
	}
	monthFirstLayouts = []string{
		"01/02/2006 15:04:05",
		"01/02/2006",
		"1/2/2006",
		"01-02-2006",
	}
)

// ParseDate coerces a raw date cell. Unparseable or empty values come back
// as nil rather than an error: the row survives, just without a date.
func ParseDate(value string, dayFirst bool) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	layouts := append([]string{}, isoLayouts...)
	if dayFirst {
		layouts = append(layouts, dayFirstLayouts...)
	} else {
		layouts = append(layouts, monthFirstLayouts...)
	}

	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			parsed = parsed.UTC()
			return &parsed
		}
	}
	return nil
}

// ParseClock coerces an HH:MM:SS cell into an offset from midnight.
func ParseClock(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return time.Duration(parsed.Hour())*time.Hour +
				time.Duration(parsed.Minute())*time.Minute +
				time.Duration(parsed.Second())*time.Second, true
		}
	}
	return 0, false
}

// ParseFloat coerces a numeric cell, returning nil for anything that does
// not parse (the original cleaning used errors="coerce" semantics).
func ParseFloat(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
