package main

import (
	"log/slog"
	"strings"
	"testing"
)

const sampleConfig = `
listen = "0.0.0.0:50051"
token = "secret"
log_level = "debug"
max_message_size = 16777216

[duckdb]
path = "stats.db"

[duckdb.relations]
schedule = "games"
player_game = "player_box"

[duckdb.date_columns]
player_game = "GAME_DATE_EST"

[[capability]]
league = "ncaa"
dataset = "shot_chart"
level = "not_implemented"
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.Listen != "0.0.0.0:50051" {
		t.Errorf("listen = %q", cfg.Listen)
	}
	if cfg.DuckDB.Relations["schedule"] != "games" {
		t.Errorf("relations = %v", cfg.DuckDB.Relations)
	}
	if cfg.DuckDB.DateColumns["player_game"] != "GAME_DATE_EST" {
		t.Errorf("date columns = %v", cfg.DuckDB.DateColumns)
	}
	if len(cfg.Capability) != 1 || cfg.Capability[0].Dataset != "shot_chart" {
		t.Errorf("capability overrides = %v", cfg.Capability)
	}
	level, err := cfg.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("level = %v, %v", level, err)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("[duckdb.relations]\nschedule = \"games\"\n"))
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.Listen != "localhost:50051" {
		t.Errorf("default listen = %q", cfg.Listen)
	}
	if level, _ := cfg.SlogLevel(); level != slog.LevelInfo {
		t.Errorf("default level = %v", level)
	}
}

func TestParseConfigRejections(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"no relations", "listen = \"x\"", "relations"},
		{"bad level", "log_level = \"loud\"\n[duckdb.relations]\nschedule = \"games\"", "log level"},
		{"bad toml", "listen = ", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.toml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
