package registry

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// OverridesFile is the TOML shape for capability override files:
//
//	[[capability]]
//	league  = "intl"
//	dataset = "pbp"
//	level   = "unavailable"
type OverridesFile struct {
	Capability []OverrideEntry `toml:"capability"`
}

// OverrideEntry is a single capability override row.
type OverrideEntry struct {
	League  string `toml:"league"`
	Dataset string `toml:"dataset"`
	Level   string `toml:"level"`
}

// LoadOverrides reads capability overrides from a TOML file and applies them
// to the registry. Part of the load phase; must not be called concurrently
// with reads.
func (r *Registry) LoadOverrides(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("registry: read overrides: %w", err)
	}
	return r.ApplyOverrides(data)
}

// ApplyOverrides parses TOML override data and applies it to the registry.
func (r *Registry) ApplyOverrides(data []byte) error {
	var file OverridesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("registry: parse overrides: %w", err)
	}

	for i, o := range file.Capability {
		league := League(o.League)
		if !league.Known() {
			return fmt.Errorf("registry: override %d: unknown league %q", i, o.League)
		}
		if _, err := r.Get(o.Dataset); err != nil {
			return fmt.Errorf("registry: override %d: %w", i, err)
		}
		level, err := ParseCapabilityLevel(o.Level)
		if err != nil {
			return fmt.Errorf("registry: override %d: %w", i, err)
		}
		r.SetCapability(league, o.Dataset, level)
	}
	return nil
}
