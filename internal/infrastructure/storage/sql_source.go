package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"HazardBoard/internal/config"
	"HazardBoard/internal/domain"
	"HazardBoard/internal/infrastructure/loader"
	"HazardBoard/internal/source"
)

// SQLSource loads the dataset from a relational table, either Postgres or
// SQLite depending on the configured driver. Cell coercion reuses the same
// tolerant rules as the CSV loader, so both backends produce identical
// article shapes.
type SQLSource struct {
	db      *sql.DB
	table   string
	driver  string
	columns config.ColumnMap
	logger  *slog.Logger
}

var _ source.Source = (*SQLSource)(nil)

// Open dials the configured database.
func Open(cfg config.SQLConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// NewSQLSource wires a sql.DB implementation.
func NewSQLSource(db *sql.DB, cfg config.SQLConfig, columns config.ColumnMap, logger *slog.Logger) *SQLSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLSource{db: db, table: cfg.Table, driver: cfg.Driver, columns: columns, logger: logger}
}

// Name identifies the strategy inside the registry.
func (s *SQLSource) Name() string {
	return "sql"
}

// Load selects every mapped column in table order and coerces rows into
// articles. Only configured columns are selected; absent optional mappings
// simply never populate their attribute.
func (s *SQLSource) Load(ctx context.Context) ([]domain.Article, error) {
	if s.db == nil {
		return nil, fmt.Errorf("sql source has no database handle")
	}

	selected, assign := s.plan()
	if len(selected) == 0 {
		return nil, fmt.Errorf("no dataset columns configured for table %s", s.table)
	}

	builder := sq.StatementBuilder.PlaceholderFormat(s.placeholders())
	query, args, err := builder.Select(selected...).From(s.table).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query dataset: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		cells := make([]sql.NullString, len(selected))
		dest := make([]any, len(selected))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		var art domain.Article
		for i, set := range assign {
			if cells[i].Valid {
				set(&art, cells[i].String)
			}
		}
		articles = append(articles, art)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	s.logger.Debug("sql dataset loaded", "table", s.table, "rows", len(articles))
	return articles, nil
}

// plan pairs each configured column with the setter that applies its raw
// value to an article. Column order in the SELECT matches setter order.
func (s *SQLSource) plan() ([]string, []func(*domain.Article, string)) {
	var selected []string
	var assign []func(*domain.Article, string)

	add := func(column string, set func(*domain.Article, string)) {
		if column == "" {
			return
		}
		selected = append(selected, column)
		assign = append(assign, set)
	}

	add(s.columns.Title, func(a *domain.Article, v string) { a.Title = v })
	add(s.columns.URL, func(a *domain.Article, v string) { a.URL = v })
	add(s.columns.Category, func(a *domain.Article, v string) { a.Category = v })
	add(s.columns.LocationUnit, func(a *domain.Article, v string) { a.LocationUnit = v })
	add(s.columns.Source, func(a *domain.Article, v string) { a.Source = v })
	add(s.columns.Sentiment, func(a *domain.Article, v string) { a.Sentiment = v })
	add(s.columns.Country, func(a *domain.Article, v string) { a.Country = v })
	add(s.columns.Date, func(a *domain.Article, v string) { a.PublishedAt = loader.ParseDate(v, false) })
	add(s.columns.Latitude, func(a *domain.Article, v string) { a.Latitude = loader.ParseFloat(v) })
	add(s.columns.Longitude, func(a *domain.Article, v string) { a.Longitude = loader.ParseFloat(v) })
	add(s.columns.Relevance, func(a *domain.Article, v string) { a.RelevanceScore = loader.ParseFloat(v) })

	return selected, assign
}

func (s *SQLSource) placeholders() sq.PlaceholderFormat {
	if s.driver == "postgres" {
		return sq.Dollar
	}
	return sq.Question
}
