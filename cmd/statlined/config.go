package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/statline-lab/statline-go/registry"
)

// Config is the statlined TOML configuration:
//
//	listen = "localhost:50051"
//	token  = "pre-shared-secret"   # optional; empty disables auth
//	strict = false
//	log_level = "info"
//	max_message_size = 16777216
//
//	[duckdb]
//	path = "stats.db"
//
//	[duckdb.relations]
//	schedule    = "games"
//	player_game = "player_box"
//
//	[duckdb.date_columns]
//	pbp = "GAME_DATE_EST"
//
//	[[capability]]
//	league  = "ncaa"
//	dataset = "shot_chart"
//	level   = "not_implemented"
type Config struct {
	Listen         string `toml:"listen"`
	Address        string `toml:"address"`
	Token          string `toml:"token"`
	Strict         bool   `toml:"strict"`
	LogLevel       string `toml:"log_level"`
	MaxMessageSize int    `toml:"max_message_size"`

	DuckDB DuckDBSection `toml:"duckdb"`

	Capability []registry.OverrideEntry `toml:"capability"`
}

// DuckDBSection configures the DuckDB fetcher.
type DuckDBSection struct {
	Path        string            `toml:"path"`
	Relations   map[string]string `toml:"relations"`
	DateColumns map[string]string `toml:"date_columns"`
}

// LoadConfig reads and validates a config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses TOML config data and applies defaults.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{
		Listen:   "localhost:50051",
		LogLevel: "info",
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.DuckDB.Relations) == 0 {
		return nil, fmt.Errorf("config: duckdb.relations must map at least one dataset")
	}
	if _, err := cfg.SlogLevel(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SlogLevel converts the configured level name.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
}
