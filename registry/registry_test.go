package registry

import (
	"errors"
	"strings"
	"testing"
)

func testEntry(id string, leagues ...League) Entry {
	return Entry{
		ID:               id,
		Keys:             []string{"GAME_ID"},
		SupportedFilters: []string{"league", "season"},
		SupportedLeagues: leagues,
		SampleColumns:    []string{"GAME_ID", "SEASON"},
	}
}

func TestRegisterAndGet(t *testing.T) {
	r := New()
	if err := r.Register(testEntry("schedule")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	entry, err := r.Get("schedule")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry.ID != "schedule" {
		t.Errorf("expected id 'schedule', got %q", entry.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	r := New()

	if err := r.Register(Entry{Keys: []string{"GAME_ID"}}); err == nil {
		t.Error("expected error for empty id")
	}
	if err := r.Register(Entry{ID: "schedule"}); err == nil {
		t.Error("expected error for missing keys")
	}
}

func TestRegisterLastWriteWins(t *testing.T) {
	r := New()
	first := testEntry("schedule")
	second := testEntry("schedule")
	second.Sources = []string{"espn-scrape"}

	if err := r.Register(first); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(second); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	entry, err := r.Get("schedule")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(entry.Sources) != 1 || entry.Sources[0] != "espn-scrape" {
		t.Errorf("expected last registration to win, got sources %v", entry.Sources)
	}
}

func TestGetUnknownListsKnownIDs(t *testing.T) {
	r := New()
	if err := r.Register(testEntry("schedule")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(testEntry("pbp")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := r.Get("lineups")
	if err == nil {
		t.Fatal("expected error for unknown dataset")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if notFound.ID != "lineups" {
		t.Errorf("expected id 'lineups', got %q", notFound.ID)
	}
	if len(notFound.Known) != 2 {
		t.Errorf("expected 2 known ids, got %v", notFound.Known)
	}
	for _, id := range []string{"schedule", "pbp"} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("error message should list %q: %s", id, err)
		}
	}
}

func TestFilterByLeague(t *testing.T) {
	r := New()
	if err := r.Register(testEntry("schedule")); err != nil { // all leagues
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(testEntry("pbp", NBA, WNBA)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(testEntry("shot_chart", NBA)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		league League
		want   []string
	}{
		{NBA, []string{"pbp", "schedule", "shot_chart"}},
		{WNBA, []string{"pbp", "schedule"}},
		{International, []string{"schedule"}},
	}

	for _, tt := range tests {
		entries := r.FilterByLeague(tt.league)
		if len(entries) != len(tt.want) {
			t.Errorf("FilterByLeague(%s): expected %d entries, got %d", tt.league, len(tt.want), len(entries))
			continue
		}
		for i, e := range entries {
			if e.ID != tt.want[i] {
				t.Errorf("FilterByLeague(%s)[%d]: expected %q, got %q", tt.league, i, tt.want[i], e.ID)
			}
		}
	}
}

func TestEntrySupports(t *testing.T) {
	entry := testEntry("schedule")
	if !entry.Supports("season") {
		t.Error("expected 'season' to be supported")
	}
	if entry.Supports("venue") {
		t.Error("expected 'venue' to be unsupported")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()

	for _, id := range []string{"schedule", "player_game", "team_game", "player_season", "team_season", "pbp", "shot_chart"} {
		entry, err := r.Get(id)
		if err != nil {
			t.Errorf("builtin dataset %q missing: %v", id, err)
			continue
		}
		if len(entry.Keys) == 0 {
			t.Errorf("builtin dataset %q has no keys", id)
		}
		if len(entry.SampleColumns) == 0 {
			t.Errorf("builtin dataset %q has no sample columns", id)
		}
	}

	entry, err := r.Get("pbp")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !entry.RequiresGameID {
		t.Error("pbp should require a game id")
	}
}

func TestPeriodMinutes(t *testing.T) {
	cases := []struct {
		league League
		want   int
	}{
		{NBA, 12},
		{GLeague, 12},
		{NCAA, 20},
		{WNBA, 10},
		{EuroBasket, 10},
		{International, 10},
		{League("unknown"), 10},
	}
	for _, tc := range cases {
		if got := tc.league.PeriodMinutes(); got != tc.want {
			t.Errorf("%s: PeriodMinutes() = %d, want %d", tc.league, got, tc.want)
		}
	}
}
