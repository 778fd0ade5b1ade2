package analytics

import (
	"errors"
	"testing"
	"time"
)

func TestNewCriteriaNormalizesSelections(t *testing.T) {
	t.Parallel()

	criteria, err := NewCriteria([]string{" flood ", "", "fire"}, []string{"  "}, nil, nil)
	if err != nil {
		t.Fatalf("NewCriteria returned error: %v", err)
	}

	if len(criteria.Categories) != 2 || criteria.Categories[0] != "flood" || criteria.Categories[1] != "fire" {
		t.Fatalf("unexpected categories: %v", criteria.Categories)
	}
	if len(criteria.LocationUnits) != 0 {
		t.Fatalf("expected empty location selection, got %v", criteria.LocationUnits)
	}
	if criteria.Unrestricted() {
		// Categories are set, so this must count as restricted.
		t.Fatal("expected restricted criteria")
	}
}

func TestNewCriteriaSingleDateBoundIsUnrestricted(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	criteria, err := NewCriteria(nil, nil, &from, nil)
	if err != nil {
		t.Fatalf("NewCriteria returned error: %v", err)
	}

	if criteria.DateFilterActive() {
		t.Fatal("single-bound range must not activate the date filter")
	}
	if !criteria.Unrestricted() {
		t.Fatal("expected unrestricted criteria")
	}
}

func TestNewCriteriaRejectsInvertedRange(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewCriteria(nil, nil, &from, &to)
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Fatalf("expected ErrInvalidCriteria, got %v", err)
	}
}

func TestNewCriteriaTruncatesBoundsToDay(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, time.January, 2, 18, 30, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 2, 1, 0, 0, 0, time.UTC)

	criteria, err := NewCriteria(nil, nil, &from, &to)
	if err != nil {
		t.Fatalf("NewCriteria returned error: %v", err)
	}

	day := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	if !criteria.DateFrom.Equal(day) || !criteria.DateTo.Equal(day) {
		t.Fatalf("expected both bounds truncated to %v, got %v..%v", day, criteria.DateFrom, criteria.DateTo)
	}
}
