package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"HazardBoard/internal/config"
)

const listingPage = `
<html><body>
<h1>Hazard listing</h1>
<table id="articles">
  <thead>
    <tr><th>hazard_type</th><th>city</th><th>published_date</th><th>title</th><th>source</th></tr>
  </thead>
  <tbody>
    <tr>
      <td>flood</td><td>Springfield</td><td>2024-03-05</td>
      <td><a href="https://n.example/1">River rises</a></td><td>wire</td>
    </tr>
    <tr>
      <td>fire</td><td>Shelbyville</td><td></td>
      <td>Dry hills</td><td>blog</td>
    </tr>
  </tbody>
</table>
</body></html>`

func testColumns() config.ColumnMap {
	return config.ColumnMap{
		Category:     "hazard_type",
		LocationUnit: "city",
		Date:         "published_date",
		Title:        "title",
		Source:       "source",
	}
}

func TestHTMLSourceLoad(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingPage))
	}))
	defer server.Close()

	src := NewHTMLSource(server.Client(), config.HTMLConfig{URL: server.URL}, testColumns(), nil)

	articles, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Category != "flood" || first.LocationUnit != "Springfield" {
		t.Fatalf("unexpected mapping: %+v", first)
	}
	if first.Title != "River rises" || first.URL != "https://n.example/1" {
		t.Fatalf("anchor extraction failed: title=%q url=%q", first.Title, first.URL)
	}
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	if first.PublishedAt == nil || !first.PublishedAt.Equal(want) {
		t.Fatalf("published = %v, want %v", first.PublishedAt, want)
	}

	second := articles[1]
	if second.Title != "Dry hills" || second.URL != "" {
		t.Fatalf("plain title cell mishandled: %+v", second)
	}
	if second.PublishedAt != nil {
		t.Fatalf("empty date should stay absent, got %v", second.PublishedAt)
	}
}

func TestHTMLSourceMissingCategoryColumn(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<table><thead><tr><th>city</th></tr></thead><tbody><tr><td>X</td></tr></tbody></table>`))
	}))
	defer server.Close()

	src := NewHTMLSource(server.Client(), config.HTMLConfig{URL: server.URL}, testColumns(), nil)
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing category column")
	}
}

func TestHTMLSourceUpstreamError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	src := NewHTMLSource(server.Client(), config.HTMLConfig{URL: server.URL}, testColumns(), nil)
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
