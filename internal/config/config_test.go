package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HAZARDBOARD_CONFIG", "DATASET_DSN", "DATASET_PATH", "SERVER_ADDR", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("default addr = %q", cfg.Server.Addr)
	}
	if cfg.Dataset.Source != "csv" {
		t.Fatalf("default source = %q", cfg.Dataset.Source)
	}
	if cfg.Dataset.Columns.Category != "category" {
		t.Fatalf("default category column = %q", cfg.Dataset.Columns.Category)
	}
	if cfg.Dashboard.TopN != 10 || cfg.Dashboard.PageSize != 10 {
		t.Fatalf("default dashboard config = %+v", cfg.Dashboard)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
logging:
  level: debug
dataset:
  source: sql
  sql:
    driver: sqlite3
    dsn: file.db
    table: news
  columns:
    category: hazard_type
    locationUnit: county
dashboard:
  topN: 5
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("HAZARDBOARD_CONFIG", path)
	t.Setenv("DATASET_DSN", "override.db")
	t.Setenv("SERVER_ADDR", ":9999")

	cfg := Load()

	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
	if cfg.Dataset.Source != "sql" || cfg.Dataset.SQL.Driver != "sqlite3" || cfg.Dataset.SQL.Table != "news" {
		t.Fatalf("sql config = %+v", cfg.Dataset.SQL)
	}
	if cfg.Dataset.SQL.DSN != "override.db" {
		t.Fatalf("env override lost: dsn = %q", cfg.Dataset.SQL.DSN)
	}
	if cfg.Server.Addr != ":9999" {
		t.Fatalf("env override lost: addr = %q", cfg.Server.Addr)
	}
	if cfg.Dataset.Columns.Category != "hazard_type" || cfg.Dataset.Columns.LocationUnit != "county" {
		t.Fatalf("column mapping = %+v", cfg.Dataset.Columns)
	}
	if cfg.Dashboard.TopN != 5 {
		t.Fatalf("topN = %d", cfg.Dashboard.TopN)
	}
}
