package analytics

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"HazardBoard/internal/domain"
)

// ErrInvalidCriteria rejects a date range whose lower bound is after the
// upper bound. It is the only way criteria construction can fail.
var ErrInvalidCriteria = errors.New("dateFrom is after dateTo")

// NewCriteria turns raw control selections into normalized FilterCriteria.
// Blank entries are dropped, an empty selection leaves the dimension
// unrestricted, and a date range with only one bound present is treated as
// no date filter at all (both bounds or neither).
func NewCriteria(categories, locationUnits []string, dateFrom, dateTo *time.Time) (domain.FilterCriteria, error) {
	criteria := domain.FilterCriteria{
		Categories:    normalizeSelection(categories),
		LocationUnits: normalizeSelection(locationUnits),
	}

	if dateFrom == nil || dateTo == nil {
		return criteria, nil
	}

	from := truncateToDay(*dateFrom)
	to := truncateToDay(*dateTo)
	if from.After(to) {
		return domain.FilterCriteria{}, fmt.Errorf("build criteria: %w", ErrInvalidCriteria)
	}

	criteria.DateFrom = &from
	criteria.DateTo = &to
	return criteria, nil
}

func normalizeSelection(values []string) []string {
	var kept []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		kept = append(kept, value)
	}
	return kept
}

func truncateToDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
