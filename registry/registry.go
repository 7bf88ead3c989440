// Package registry is the static catalog of queryable datasets.
//
// A dataset is one logical table of sports statistics (a schedule, per-game
// player box scores, play-by-play events, ...) that may be physically served
// by several unrelated backends per league. The registry answers two
// questions the rest of the engine depends on:
//
//   - what does dataset D look like (keys, supported filters, leagues)?
//   - can dataset D actually be queried for league L, and at what quality?
//
// Registries follow a load-then-serve lifecycle: register every entry during
// startup, then share the value freely between goroutines. No internal
// locking is provided.
package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Entry describes a single queryable dataset.
type Entry struct {
	// ID is the dataset identifier (e.g., "schedule", "player_game").
	// REQUIRED: MUST be non-empty and unique within a registry.
	ID string

	// Keys are the primary-key column names, in order.
	// REQUIRED: MUST be non-empty. The post-mask completeness phase relies
	// on key columns being present in fetched record sets.
	Keys []string

	// SupportedFilters are the filter field names backends can be expected
	// to honor (natively or via post-mask) for this dataset.
	SupportedFilters []string

	// SupportedLeagues restricts the dataset to specific leagues.
	// OPTIONAL: Empty means the dataset is available for all leagues.
	SupportedLeagues []League

	// Sources lists provenance identifiers ("nba-stats", "fiba-html", ...)
	// for diagnostics only; the engine never dispatches on them.
	Sources []string

	// SampleColumns documents the column shape of a typical result row.
	// Column names vary across sources; these are the canonical spellings.
	SampleColumns []string

	// RequiresGameID marks datasets that cannot be queried without an
	// explicit game id list (there is no sensible pushdown fallback).
	RequiresGameID bool
}

// Supports reports whether the dataset declares support for a filter field.
func (e *Entry) Supports(field string) bool {
	for _, f := range e.SupportedFilters {
		if f == field {
			return true
		}
	}
	return false
}

// ServesLeague reports whether the dataset is available for a league.
// An empty SupportedLeagues list means "all leagues".
func (e *Entry) ServesLeague(league League) bool {
	if len(e.SupportedLeagues) == 0 {
		return true
	}
	for _, l := range e.SupportedLeagues {
		if l == league {
			return true
		}
	}
	return false
}

// Registry holds dataset entries and capability overrides.
// The zero value is not usable; create with New or Default.
type Registry struct {
	entries      map[string]*Entry
	capabilities map[capabilityKey]CapabilityLevel
}

// New creates an empty registry. Most callers want Default, which comes
// pre-loaded with the builtin datasets.
func New() *Registry {
	return &Registry{
		entries:      make(map[string]*Entry),
		capabilities: make(map[capabilityKey]CapabilityLevel),
	}
}

// Register inserts or replaces a dataset entry. Last write wins; no
// validation against a previous entry of the same id is performed, so
// callers must not register the same id twice with conflicting shapes.
// Returns error if the entry is structurally invalid.
func (r *Registry) Register(entry Entry) error {
	if entry.ID == "" {
		return fmt.Errorf("registry: entry id cannot be empty")
	}
	if len(entry.Keys) == 0 {
		return fmt.Errorf("registry: entry %q has no key columns", entry.ID)
	}
	e := entry
	r.entries[e.ID] = &e
	return nil
}

// Get returns the entry for a dataset id.
// Returns *NotFoundError listing all known ids when the id is unknown.
func (r *Registry) Get(id string) (*Entry, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, &NotFoundError{ID: id, Known: r.IDs()}
	}
	return entry, nil
}

// IDs returns all registered dataset ids, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Entries returns all registered entries, sorted by id.
func (r *Registry) Entries() []*Entry {
	entries := make([]*Entry, 0, len(r.entries))
	for _, id := range r.IDs() {
		entries = append(entries, r.entries[id])
	}
	return entries
}

// FilterByLeague returns entries available for a league, sorted by id.
// Entries with an empty SupportedLeagues list (meaning "all") are included.
func (r *Registry) FilterByLeague(league League) []*Entry {
	var entries []*Entry
	for _, e := range r.Entries() {
		if e.ServesLeague(league) {
			entries = append(entries, e)
		}
	}
	return entries
}

// Reset removes all entries and capability overrides.
// Exposed for tests only; production registries are never mutated after load.
func (r *Registry) Reset() {
	r.entries = make(map[string]*Entry)
	r.capabilities = make(map[capabilityKey]CapabilityLevel)
}

// NotFoundError indicates a dataset id lookup failed.
// Known carries every registered id so callers can produce actionable
// diagnostics instead of a bare "not found".
type NotFoundError struct {
	ID    string
	Known []string
}

func (e *NotFoundError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("registry: unknown dataset %q (registry is empty)", e.ID)
	}
	return fmt.Sprintf("registry: unknown dataset %q (known: %s)", e.ID, strings.Join(e.Known, ", "))
}
