package dataset

import (
	"sort"
	"strings"
	"time"

	"HazardBoard/internal/domain"
)

const (
	defaultSentiment = "unknown"
	defaultCountry   = "Unknown"
)

// Store owns the cleaned article collection for the process lifetime.
// It is built once at startup and never mutated afterwards; every
// downstream component reads it through the same shared reference.
type Store struct {
	articles []domain.Article
	excluded int
}

// New builds a store from loaded rows. Rows missing the required Category
// or LocationUnit are excluded up front so the filter engine can assume a
// clean contract; the excluded count is kept for startup logging.
// Missing sentiment and country values receive their dataset defaults.
func New(rows []domain.Article) *Store {
	articles := make([]domain.Article, 0, len(rows))
	excluded := 0

	for _, row := range rows {
		if strings.TrimSpace(row.Category) == "" || strings.TrimSpace(row.LocationUnit) == "" {
			excluded++
			continue
		}
		if strings.TrimSpace(row.Sentiment) == "" {
			row.Sentiment = defaultSentiment
		}
		if strings.TrimSpace(row.Country) == "" {
			row.Country = defaultCountry
		}
		articles = append(articles, row)
	}

	return &Store{articles: articles, excluded: excluded}
}

// Len returns the number of retained articles.
func (s *Store) Len() int {
	return len(s.articles)
}

// Excluded returns how many rows failed the ingestion contract.
func (s *Store) Excluded() int {
	return s.excluded
}

// All returns references to every article in original load order. The
// returned slice is fresh but the pointed-to rows are shared; callers must
// treat them as read-only.
func (s *Store) All() []*domain.Article {
	refs := make([]*domain.Article, len(s.articles))
	for i := range s.articles {
		refs[i] = &s.articles[i]
	}
	return refs
}

// Options describes the distinct values available to the filter controls.
type Options struct {
	Categories    []string   `json:"categories"`
	LocationUnits []string   `json:"locationUnits"`
	EarliestDate  *time.Time `json:"earliestDate,omitempty"`
	LatestDate    *time.Time `json:"latestDate,omitempty"`
}

// Options scans the store for distinct categories and location units
// (sorted for stable dropdown rendering) and the dataset's date extent.
func (s *Store) Options() Options {
	categories := map[string]struct{}{}
	locations := map[string]struct{}{}
	var earliest, latest *time.Time

	for i := range s.articles {
		art := &s.articles[i]
		categories[art.Category] = struct{}{}
		locations[art.LocationUnit] = struct{}{}
		if !art.HasDate() {
			continue
		}
		day := art.Day()
		if earliest == nil || day.Before(*earliest) {
			d := day
			earliest = &d
		}
		if latest == nil || day.After(*latest) {
			d := day
			latest = &d
		}
	}

	return Options{
		Categories:    sortedKeys(categories),
		LocationUnits: sortedKeys(locations),
		EarliestDate:  earliest,
		LatestDate:    latest,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
