package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"HazardBoard/internal/config"
	"HazardBoard/internal/domain"
	"HazardBoard/internal/source"
)

// CSVSource loads the dataset from an exported CSV file, applying the
// configured column mapping and the tolerant coercion rules the dataset
// cleaning step defines.
type CSVSource struct {
	path     string
	dayFirst bool
	columns  config.ColumnMap
	logger   *slog.Logger
}

var _ source.Source = (*CSVSource)(nil)

// NewCSVSource wires the file path and column mapping from configuration.
func NewCSVSource(cfg config.CSVConfig, columns config.ColumnMap, logger *slog.Logger) *CSVSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVSource{path: cfg.Path, dayFirst: cfg.DayFirst, columns: columns, logger: logger}
}

// Name identifies the strategy inside the registry.
func (s *CSVSource) Name() string {
	return "csv"
}

// Load reads the whole file into typed articles. Malformed optional cells
// degrade to absent values; only I/O and header problems are errors.
func (s *CSVSource) Load(ctx context.Context) ([]domain.Article, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := headerIndex(header)
	if _, ok := index[s.columns.Category]; !ok {
		return nil, fmt.Errorf("dataset is missing category column %q", s.columns.Category)
	}
	if _, ok := index[s.columns.LocationUnit]; !ok {
		return nil, fmt.Errorf("dataset is missing location column %q", s.columns.LocationUnit)
	}

	var articles []domain.Article
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load cancelled: %w", err)
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			s.logger.Warn("skipping malformed csv line", "line", line, "error", err)
			continue
		}

		articles = append(articles, s.toArticle(record, index))
	}

	s.logger.Debug("csv dataset loaded", "path", s.path, "rows", len(articles))
	return articles, nil
}

func (s *CSVSource) toArticle(record []string, index map[string]int) domain.Article {
	cell := func(column string) string {
		if column == "" {
			return ""
		}
		pos, ok := index[column]
		if !ok || pos >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[pos])
	}

	art := domain.Article{
		Title:          cell(s.columns.Title),
		URL:            cell(s.columns.URL),
		Category:       cell(s.columns.Category),
		LocationUnit:   cell(s.columns.LocationUnit),
		Source:         cell(s.columns.Source),
		Sentiment:      cell(s.columns.Sentiment),
		Country:        cell(s.columns.Country),
		Latitude:       ParseFloat(cell(s.columns.Latitude)),
		Longitude:      ParseFloat(cell(s.columns.Longitude)),
		RelevanceScore: ParseFloat(cell(s.columns.Relevance)),
	}

	if published := ParseDate(cell(s.columns.Date), s.dayFirst); published != nil {
		if offset, ok := ParseClock(cell(s.columns.Time)); ok {
			combined := published.Add(offset)
			published = &combined
		}
		art.PublishedAt = published
	}

	return art
}

// headerIndex strips whitespace from column names before indexing, so
// sloppily exported headers still match the configured mapping.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for pos, name := range header {
		index[strings.TrimSpace(name)] = pos
	}
	return index
}
