package analytics

import (
	"fmt"
	"sort"

	"HazardBoard/internal/domain"
)

const displayDateLayout = "2006-01-02"

// FormatTable orders the subset by publication date descending (undated
// rows last, stable among equals) and projects it to display rows. The
// full sequence is returned; the presentation layer applies its own
// pagination window.
func FormatTable(subset []*domain.Article) []domain.DisplayRow {
	ordered := make([]*domain.Article, len(subset))
	copy(ordered, subset)

	sort.SliceStable(ordered, func(i, j int) bool {
		left, right := ordered[i], ordered[j]
		switch {
		case !left.HasDate():
			return false
		case !right.HasDate():
			return true
		default:
			return left.PublishedAt.After(*right.PublishedAt)
		}
	})

	rows := make([]domain.DisplayRow, 0, len(ordered))
	for _, art := range ordered {
		row := domain.DisplayRow{
			TitleLink:    fmt.Sprintf("[%s](%s)", art.Title, art.URL),
			LocationUnit: art.LocationUnit,
			Category:     art.Category,
			Source:       art.Source,
		}
		if art.HasDate() {
			row.Date = art.Day().Format(displayDateLayout)
		}
		rows = append(rows, row)
	}

	return rows
}
