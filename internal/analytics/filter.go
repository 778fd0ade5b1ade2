package analytics

import (
	"HazardBoard/internal/dataset"
	"HazardBoard/internal/domain"
)

// Filter applies the criteria to the store in one linear scan and returns
// references to the retained rows in original order. The predicate is a
// conjunction across dimensions with set membership inside each dimension;
// rows without a publication date are dropped only while a date filter is
// active. This single subset is the shared input to every aggregator of
// the pass.
func Filter(store *dataset.Store, criteria domain.FilterCriteria) []*domain.Article {
	categories := toSet(criteria.Categories)
	locations := toSet(criteria.LocationUnits)
	dateActive := criteria.DateFilterActive()

	var subset []*domain.Article
	for _, art := range store.All() {
		if len(categories) > 0 {
			if _, ok := categories[art.Category]; !ok {
				continue
			}
		}
		if len(locations) > 0 {
			if _, ok := locations[art.LocationUnit]; !ok {
				continue
			}
		}
		if dateActive {
			if !art.HasDate() {
				continue
			}
			day := art.Day()
			if day.Before(*criteria.DateFrom) || day.After(*criteria.DateTo) {
				continue
			}
		}
		subset = append(subset, art)
	}

	return subset
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
