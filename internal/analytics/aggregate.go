package analytics

import (
	"sort"
	"time"

	"HazardBoard/internal/domain"
)

// CountBy groups the subset by the field and counts group sizes. The
// resulting map carries no ordering; callers that need one use TopN.
func CountBy(subset []*domain.Article, field Field) map[string]int {
	counts := make(map[string]int)
	for _, art := range subset {
		counts[field.Value(art)]++
	}
	return counts
}

// TopN ranks the field's groups by descending count, truncated to n.
// Ties keep the order in which a key first appeared in the subset, so
// repeated runs over identical input produce identical rankings.
func TopN(subset []*domain.Article, field Field, n int) []domain.RankedCount {
	counts := make(map[string]int)
	var order []string
	for _, art := range subset {
		key := field.Value(art)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	ranked := make([]domain.RankedCount, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, domain.RankedCount{Key: key, Count: counts[key]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// CrossTabTopN ranks (locationUnit, category) pairs with the same
// descending-count, first-seen tie-break, truncate-to-n policy as TopN.
func CrossTabTopN(subset []*domain.Article, locationField, categoryField Field, n int) []domain.CrossCount {
	type pair struct{ location, category string }

	counts := make(map[pair]int)
	var order []pair
	for _, art := range subset {
		key := pair{locationField.Value(art), categoryField.Value(art)}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	ranked := make([]domain.CrossCount, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, domain.CrossCount{
			LocationUnit: key.location,
			Category:     key.category,
			Count:        counts[key],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TimeSeries counts articles per publication day, ordered by date
// ascending. Rows without a date do not contribute samples.
func TimeSeries(subset []*domain.Article) []domain.SeriesPoint {
	return seriesByDay(subset, Field{})
}

// TimeSeriesBy counts articles per (day, group) pair, ordered by date then
// group key, so multi-line charts render deterministically.
func TimeSeriesBy(subset []*domain.Article, groupField Field) []domain.SeriesPoint {
	return seriesByDay(subset, groupField)
}

func seriesByDay(subset []*domain.Article, groupField Field) []domain.SeriesPoint {
	type sample struct {
		day   time.Time
		group string
	}

	counts := make(map[sample]int)
	for _, art := range subset {
		if !art.HasDate() {
			continue
		}
		key := sample{day: art.Day()}
		if groupField.value != nil {
			key.group = groupField.Value(art)
		}
		counts[key]++
	}

	points := make([]domain.SeriesPoint, 0, len(counts))
	for key, count := range counts {
		points = append(points, domain.SeriesPoint{Date: key.day, GroupKey: key.group, Count: count})
	}
	sort.Slice(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return points[i].GroupKey < points[j].GroupKey
	})

	return points
}

// UniqueCount returns the number of distinct non-empty field values.
func UniqueCount(subset []*domain.Article, field Field) int {
	seen := make(map[string]struct{})
	for _, art := range subset {
		value := field.Value(art)
		if value == "" {
			continue
		}
		seen[value] = struct{}{}
	}
	return len(seen)
}
