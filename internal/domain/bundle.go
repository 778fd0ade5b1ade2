package domain

import "time"

// RankedCount is one entry of a top-N ranking.
type RankedCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CrossCount is one entry of a location x category cross-tab ranking.
type CrossCount struct {
	LocationUnit string `json:"locationUnit"`
	Category     string `json:"category"`
	Count        int    `json:"count"`
}

// SeriesPoint is one time-series sample. GroupKey is empty for a
// single-line series.
type SeriesPoint struct {
	Date     time.Time `json:"date"`
	GroupKey string    `json:"groupKey,omitempty"`
	Count    int       `json:"count"`
}

// Bundle is the atomic result of one dashboard pass. Every view inside it
// is derived from the same filtered subset; the presentation layer must
// never see views from different passes mixed together.
type Bundle struct {
	PassID      string         `json:"passId"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Criteria    FilterCriteria `json:"criteria"`

	// Summary cards.
	TotalArticles   int `json:"totalArticles"`
	UniqueSources   int `json:"uniqueSources"`
	UniqueCountries int `json:"uniqueCountries"`

	// Chart inputs.
	CategoryCounts      map[string]int `json:"categoryCounts"`
	SentimentCounts     map[string]int `json:"sentimentCounts"`
	TopLocations        []RankedCount  `json:"topLocations"`
	TopCategories       []RankedCount  `json:"topCategories"`
	TopSources          []RankedCount  `json:"topSources"`
	LocationCategoryTop []CrossCount   `json:"locationCategoryTop"`
	TimeSeries          []SeriesPoint  `json:"timeSeries"`

	// Full ordered table; pagination is applied by the presentation layer.
	Table []DisplayRow `json:"table"`
}
