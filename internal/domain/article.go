package domain

import "time"

// Article is a core entity: one cleaned news row from the hazard dataset.
// The ingestion adapters guarantee Category and LocationUnit are non-empty;
// optional columns are pointers so "absent" stays distinguishable from zero.
type Article struct {
	Title          string
	URL            string
	Category       string
	LocationUnit   string
	Source         string
	Sentiment      string
	Country        string
	PublishedAt    *time.Time
	Latitude       *float64
	Longitude      *float64
	RelevanceScore *float64
}

// HasDate reports whether the article carries a publication timestamp.
func (a Article) HasDate() bool {
	return a.PublishedAt != nil
}

// Day returns the date-only truncation of PublishedAt in UTC.
// Callers must check HasDate first.
func (a Article) Day() time.Time {
	return a.PublishedAt.UTC().Truncate(24 * time.Hour)
}

// DisplayRow is the table projection of an article.
type DisplayRow struct {
	Date         string `json:"date"`
	TitleLink    string `json:"titleLink"`
	LocationUnit string `json:"locationUnit"`
	Category     string `json:"category"`
	Source       string `json:"source"`
}
