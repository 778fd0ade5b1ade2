package analytics

import "HazardBoard/internal/domain"

// Field names an article attribute the aggregators can group by. Keeping
// selectors as values lets one pipeline serve datasets whose vocabularies
// differ (city vs. county locations, keyword vs. hazard categories).
type Field struct {
	name  string
	value func(*domain.Article) string
}

// Name identifies the field in results and logs.
func (f Field) Name() string {
	return f.name
}

// Value extracts the field from an article.
func (f Field) Value(art *domain.Article) string {
	return f.value(art)
}

var (
	FieldCategory     = Field{"category", func(a *domain.Article) string { return a.Category }}
	FieldLocationUnit = Field{"locationUnit", func(a *domain.Article) string { return a.LocationUnit }}
	FieldSource       = Field{"source", func(a *domain.Article) string { return a.Source }}
	FieldSentiment    = Field{"sentiment", func(a *domain.Article) string { return a.Sentiment }}
	FieldCountry      = Field{"country", func(a *domain.Article) string { return a.Country }}
)

// FieldByName resolves a configured field name to its selector.
func FieldByName(name string) (Field, bool) {
	for _, field := range []Field{FieldCategory, FieldLocationUnit, FieldSource, FieldSentiment, FieldCountry} {
		if field.name == name {
			return field, true
		}
	}
	return Field{}, false
}
