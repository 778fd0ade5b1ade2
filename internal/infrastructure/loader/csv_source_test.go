package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"HazardBoard/internal/config"
)

func testColumns() config.ColumnMap {
	return config.ColumnMap{
		Category:     "hazard_type",
		LocationUnit: "city",
		Date:         "published_date",
		Time:         "published_time",
		Source:       "source",
		Title:        "title",
		URL:          "url",
		Sentiment:    "sentiment",
		Country:      "country",
		Latitude:     "latitude",
		Longitude:    "longitude",
		Relevance:    "relevance_score",
	}
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestCSVSourceLoad(t *testing.T) {
	t.Parallel()

	csv := "hazard_type, city ,published_date,published_time,source,title,url,sentiment,country,latitude,longitude,relevance_score\n" +
		"flood,Springfield,05/03/2024,08:30:00,wire,River rises,https://n.example/1,negative,USA,39.78,-89.65,0.92\n" +
		"fire,Shelbyville,bad-date,,blog,Dry hills,https://n.example/2,,,not-a-number,,\n"

	path := writeCSV(t, csv)
	src := NewCSVSource(config.CSVConfig{Path: path, DayFirst: true}, testColumns(), nil)

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
	want := time.Date(2024, time.March, 5, 8, 30, 0, 0, time.UTC)
	if first.PublishedAt == nil || !first.PublishedAt.Equal(want) {
		t.Fatalf("published = %v, want %v", first.PublishedAt, want)
	}
	if first.Latitude == nil || *first.Latitude != 39.78 {
		t.Fatalf("latitude = %v", first.Latitude)
	}

	second := articles[1]
	if second.PublishedAt != nil {
		t.Fatalf("bad date should coerce to nil, got %v", second.PublishedAt)
	}
	if second.Latitude != nil {
		t.Fatalf("bad latitude should coerce to nil, got %v", second.Latitude)
	}
	if second.Sentiment != "" {
		// Defaulting happens in the dataset store, not the loader.
		t.Fatalf("loader must not default sentiment, got %q", second.Sentiment)
	}
}

func TestCSVSourceHeaderWhitespace(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, " hazard_type , city \nflood,Springfield\n")
	columns := config.ColumnMap{Category: "hazard_type", LocationUnit: "city"}
	src := NewCSVSource(config.CSVConfig{Path: path}, columns, nil)

	articles, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(articles) != 1 || articles[0].Category != "flood" {
		t.Fatalf("whitespace headers not matched: %+v", articles)
	}
}

func TestCSVSourceMissingRequiredColumn(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "city\nSpringfield\n")
	src := NewCSVSource(config.CSVConfig{Path: path}, testColumns(), nil)

	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing category column")
	}
}

func TestCSVSourceMissingFile(t *testing.T) {
	t.Parallel()

	src := NewCSVSource(config.CSVConfig{Path: filepath.Join(t.TempDir(), "absent.csv")}, testColumns(), nil)
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
