package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "HAZARDBOARD_CONFIG"
	datasetDSNEnv  = "DATASET_DSN"
	datasetPathEnv = "DATASET_PATH"
	serverAddrEnv  = "SERVER_ADDR"
	logLevelEnv    = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Dashboard DashboardConfig `yaml:"dashboard"`
}

// LoggingConfig selects log verbosity and output encoding.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// ServerConfig describes the HTTP listen address.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatasetConfig selects and parameterizes the dataset source.
type DatasetConfig struct {
	Source  string     `yaml:"source"` // csv, sql or html
	CSV     CSVConfig  `yaml:"csv"`
	SQL     SQLConfig  `yaml:"sql"`
	HTML    HTMLConfig `yaml:"html"`
	Columns ColumnMap  `yaml:"columns"`
}

// CSVConfig points at the exported dataset file.
type CSVConfig struct {
	Path string `yaml:"path"`
	// DayFirst parses ambiguous dates as dd/mm/yyyy, matching the
	// dataset exports this dashboard was built for.
	DayFirst bool `yaml:"dayFirst"`
}

// SQLConfig describes a database-backed dataset.
type SQLConfig struct {
	Driver string `yaml:"driver"` // postgres or sqlite3
	DSN    string `yaml:"dsn"`
	Table  string `yaml:"table"`
}

// HTMLConfig points at a saved or served listing page.
type HTMLConfig struct {
	URL           string `yaml:"url"`
	TableSelector string `yaml:"tableSelector"`
	DayFirst      bool   `yaml:"dayFirst"`
}

// ColumnMap names the dataset columns backing each article attribute, so
// one pipeline serves exports whose vocabularies differ (city vs. county,
// keyword vs. hazard_type). Empty optional entries mean "not present".
type ColumnMap struct {
	Category     string `yaml:"category"`
	LocationUnit string `yaml:"locationUnit"`
	Date         string `yaml:"date"`
	Time         string `yaml:"time"`
	Source       string `yaml:"source"`
	Title        string `yaml:"title"`
	URL          string `yaml:"url"`
	Sentiment    string `yaml:"sentiment"`
	Country      string `yaml:"country"`
	Latitude     string `yaml:"latitude"`
	Longitude    string `yaml:"longitude"`
	Relevance    string `yaml:"relevance"`
}

// DashboardConfig tunes the aggregate views.
type DashboardConfig struct {
	TopN        int    `yaml:"topN"`
	PageSize    int    `yaml:"pageSize"`
	SeriesGroup string `yaml:"seriesGroup"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(datasetDSNEnv); v != "" {
		c.Dataset.SQL.DSN = v
	}

	if v := os.Getenv(datasetPathEnv); v != "" {
		c.Dataset.CSV.Path = v
	}

	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}

	if override.Dataset.Source != "" {
		base.Dataset.Source = override.Dataset.Source
	}
	if override.Dataset.CSV.Path != "" {
		base.Dataset.CSV = override.Dataset.CSV
	}
	if override.Dataset.SQL.DSN != "" || override.Dataset.SQL.Driver != "" {
		base.Dataset.SQL = override.Dataset.SQL
	}
	if override.Dataset.HTML.URL != "" {
		base.Dataset.HTML = override.Dataset.HTML
	}
	if override.Dataset.Columns != (ColumnMap{}) {
		base.Dataset.Columns = override.Dataset.Columns
	}

	if override.Dashboard.TopN > 0 {
		base.Dashboard.TopN = override.Dashboard.TopN
	}
	if override.Dashboard.PageSize > 0 {
		base.Dashboard.PageSize = override.Dashboard.PageSize
	}
	if override.Dashboard.SeriesGroup != "" {
		base.Dashboard.SeriesGroup = override.Dashboard.SeriesGroup
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Server:  ServerConfig{Addr: ":8080"},
		Dataset: DatasetConfig{
			Source: "csv",
			CSV:    CSVConfig{Path: "data.csv", DayFirst: true},
			SQL:    SQLConfig{Driver: "postgres", Table: "articles"},
			HTML:   HTMLConfig{TableSelector: "table"},
			Columns: ColumnMap{
				Category:     "category",
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
			},
		},
		Dashboard: DashboardConfig{TopN: 10, PageSize: 10},
	}
}
