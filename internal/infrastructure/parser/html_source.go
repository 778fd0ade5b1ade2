package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"HazardBoard/internal/config"
	"HazardBoard/internal/domain"
	"HazardBoard/internal/infrastructure/loader"
	"HazardBoard/internal/source"
)

// HTMLSource loads the dataset from a served listing page containing one
// article table. Header cells name the columns; the configured mapping
// binds them to article attributes the same way the CSV loader does.
type HTMLSource struct {
	client   *http.Client
	url      string
	selector string
	dayFirst bool
	columns  config.ColumnMap
	logger   *slog.Logger
}

var _ source.Source = (*HTMLSource)(nil)

// NewHTMLSource wires an HTTP client; a nil client gets a 20s timeout default.
func NewHTMLSource(client *http.Client, cfg config.HTMLConfig, columns config.ColumnMap, logger *slog.Logger) *HTMLSource {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	selector := cfg.TableSelector
	if selector == "" {
		selector = "table"
	}
	return &HTMLSource{
		client:   client,
		url:      cfg.URL,
		selector: selector,
		dayFirst: cfg.DayFirst,
		columns:  columns,
		logger:   logger,
	}
}

// Name identifies the strategy inside the registry.
func (s *HTMLSource) Name() string {
	return "html"
}

// Load fetches the page, locates the article table and extracts one
// article per body row.
func (s *HTMLSource) Load(ctx context.Context) ([]domain.Article, error) {
	doc, err := s.fetchDocument(ctx)
	if err != nil {
		return nil, err
	}

	table := doc.Find(s.selector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("no table matches selector %q", s.selector)
	}

	index := map[string]int{}
	table.Find("thead th").Each(func(pos int, th *goquery.Selection) {
		index[strings.TrimSpace(th.Text())] = pos
	})
	if len(index) == 0 {
		// Fall back to the first row when the table has no thead.
		table.Find("tr").First().Find("th, td").Each(func(pos int, cell *goquery.Selection) {
			index[strings.TrimSpace(cell.Text())] = pos
		})
	}
	if _, ok := index[s.columns.Category]; !ok {
		return nil, fmt.Errorf("listing is missing category column %q", s.columns.Category)
	}

	var articles []domain.Article
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}
		articles = append(articles, s.toArticle(cells, index))
	})

	s.logger.Debug("html dataset loaded", "url", s.url, "rows", len(articles))
	return articles, nil
}

func (s *HTMLSource) fetchDocument(ctx context.Context) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "HazardBoard/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func (s *HTMLSource) toArticle(cells *goquery.Selection, index map[string]int) domain.Article {
	cell := func(column string) *goquery.Selection {
		if column == "" {
			return nil
		}
		pos, ok := index[column]
		if !ok || pos >= cells.Length() {
			return nil
		}
		return cells.Eq(pos)
	}
	text := func(column string) string {
		sel := cell(column)
		if sel == nil {
			return ""
		}
		return strings.TrimSpace(sel.Text())
	}

	art := domain.Article{
		Category:       text(s.columns.Category),
		LocationUnit:   text(s.columns.LocationUnit),
		Source:         text(s.columns.Source),
		Sentiment:      text(s.columns.Sentiment),
		Country:        text(s.columns.Country),
		PublishedAt:    loader.ParseDate(text(s.columns.Date), s.dayFirst),
		Latitude:       loader.ParseFloat(text(s.columns.Latitude)),
		Longitude:      loader.ParseFloat(text(s.columns.Longitude)),
		RelevanceScore: loader.ParseFloat(text(s.columns.Relevance)),
	}

	// The title cell usually carries the link; prefer its anchor over a
	// separate URL column when present.
	if title := cell(s.columns.Title); title != nil {
		anchor := title.Find("a").First()
		if anchor.Length() > 0 {
			art.Title = strings.TrimSpace(anchor.Text())
			art.URL, _ = anchor.Attr("href")
		} else {
			art.Title = strings.TrimSpace(title.Text())
		}
	}
	if art.URL == "" {
		art.URL = text(s.columns.URL)
	}

	return art
}
