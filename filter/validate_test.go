package filter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/statline-lab/statline-go/registry"
)

func warningFor(warnings []Warning, field string) *Warning {
	for i := range warnings {
		if warnings[i].Field == field {
			return &warnings[i]
		}
	}
	return nil
}

// TestValidateUnsupportedField covers strict vs lenient handling of venue
// on player_season, which does not support it.
func TestValidateUnsupportedField(t *testing.T) {
	reg := registry.Default()
	spec := mustSpec(t, WithSeason("2024"), WithVenue("Garden"))

	// Strict mode raises.
	_, err := Validate(reg, "player_season", spec, true)
	if err == nil {
		t.Fatal("expected strict-mode error for unsupported venue filter")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Field != FieldVenue {
		t.Errorf("expected field %q, got %q", FieldVenue, verr.Field)
	}

	// Lenient mode warns, naming the field.
	warnings, err := Validate(reg, "player_season", spec, false)
	if err != nil {
		t.Fatalf("lenient validation failed: %v", err)
	}
	w := warningFor(warnings, FieldVenue)
	if w == nil {
		t.Fatalf("expected a venue warning, got %v", warnings)
	}
	if !strings.Contains(w.Message, "supported") {
		t.Errorf("warning should list the supported set: %s", w.Message)
	}
}

// TestValidateConflict: game ids together with a date range warn that the
// date range will be ignored; neither field is dropped.
func TestValidateConflict(t *testing.T) {
	reg := registry.Default()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	spec := mustSpec(t,
		WithGameIDs("0042301234"),
		WithDateRange(start, start.AddDate(0, 1, 0)),
	)

	warnings, err := Validate(reg, "schedule", spec, false)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	w := warningFor(warnings, FieldDateRange)
	if w == nil {
		t.Fatalf("expected a date_range conflict warning, got %v", warnings)
	}
	if !strings.Contains(w.Message, "ignored") {
		t.Errorf("warning should state the date range will be ignored: %s", w.Message)
	}
}

func TestValidateDependencies(t *testing.T) {
	reg := registry.Default()

	// last_n_games without any team or player context warns.
	spec := mustSpec(t, WithSeason("2024"), WithLastNGames(10))
	warnings, err := Validate(reg, "player_game", spec, false)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if warningFor(warnings, FieldLastNGames) == nil {
		t.Errorf("expected last_n_games dependency warning, got %v", warnings)
	}

	// With a team context the warning disappears.
	spec = mustSpec(t, WithSeason("2024"), WithLastNGames(10), WithTeamNames("Alpha"))
	warnings, err = Validate(reg, "player_game", spec, false)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if warningFor(warnings, FieldLastNGames) != nil {
		t.Errorf("unexpected dependency warning with team context: %v", warnings)
	}
}

func TestValidateLeagueRestriction(t *testing.T) {
	reg := registry.Default()
	spec := mustSpec(t,
		WithLeague(registry.International),
		WithSeason("2024"),
		WithVenue("Arena"),
	)

	warnings, err := Validate(reg, "schedule", spec, false)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	w := warningFor(warnings, FieldVenue)
	if w == nil {
		t.Fatalf("expected intl venue restriction warning, got %v", warnings)
	}
	if !strings.Contains(w.Message, "client-side") {
		t.Errorf("restriction warning should explain the degradation: %s", w.Message)
	}
}

// TestValidateMandatoryGameID: pbp cannot proceed without game ids, even in
// lenient mode.
func TestValidateMandatoryGameID(t *testing.T) {
	reg := registry.Default()
	spec := mustSpec(t, WithLeague(registry.NBA), WithSeason("2024"))

	for _, strict := range []bool{true, false} {
		_, err := Validate(reg, "pbp", spec, strict)
		if err == nil {
			t.Errorf("strict=%v: expected error for pbp without game ids", strict)
		}
	}

	spec = mustSpec(t, WithLeague(registry.NBA), WithGameIDs("0042301234"))
	if _, err := Validate(reg, "pbp", spec, false); err != nil {
		t.Errorf("pbp with game ids must validate: %v", err)
	}
}

func TestValidateUnknownDataset(t *testing.T) {
	reg := registry.Default()
	spec := mustSpec(t, WithSeason("2024"))

	_, err := Validate(reg, "lineups", spec, false)
	var notFound *registry.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *registry.NotFoundError, got %v", err)
	}
}

// TestBuiltinFilterNamesKnown keeps the builtin registry's supported-filter
// vocabulary in sync with the field constants.
func TestBuiltinFilterNamesKnown(t *testing.T) {
	known := make(map[string]bool)
	for _, f := range Fields() {
		known[f] = true
	}
	for _, entry := range registry.Default().Entries() {
		for _, f := range entry.SupportedFilters {
			if !known[f] {
				t.Errorf("dataset %q declares unknown filter field %q", entry.ID, f)
			}
		}
	}
}

// Restriction and dependency tables must only name known fields.
func TestValidatorTablesConsistent(t *testing.T) {
	known := make(map[string]bool)
	for _, f := range Fields() {
		known[f] = true
	}
	for league, fields := range leagueRestrictions {
		for _, f := range fields {
			if !known[f] {
				t.Errorf("league %q restriction names unknown field %q", league, f)
			}
		}
	}
	for field, prereqs := range fieldDependencies {
		if !known[field] {
			t.Errorf("dependency table names unknown field %q", field)
		}
		for _, p := range prereqs {
			if !known[p] {
				t.Errorf("dependency for %q names unknown field %q", field, p)
			}
		}
	}
	for _, pair := range fieldConflicts {
		if !known[pair[0]] || !known[pair[1]] {
			t.Errorf("conflict pair %v names unknown field", pair)
		}
	}
}
