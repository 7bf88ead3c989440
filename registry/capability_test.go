package registry

import (
	"strings"
	"testing"
)

// TestCheckCapabilityDefaultsToFull verifies the defaulting rule: no
// override plus a registered league means Full.
func TestCheckCapabilityDefaultsToFull(t *testing.T) {
	r := New()
	if err := r.Register(testEntry("schedule")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if level := r.CheckCapability(NBA, "schedule"); level != Full {
		t.Errorf("expected Full, got %s", level)
	}
}

func TestCheckCapabilityOverride(t *testing.T) {
	r := New()
	if err := r.Register(testEntry("pbp")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	r.SetCapability(International, "pbp", Unavailable)
	r.SetCapability(NCAA, "pbp", Limited)

	tests := []struct {
		league League
		want   CapabilityLevel
	}{
		{International, Unavailable},
		{NCAA, Limited},
		{NBA, Full},
	}
	for _, tt := range tests {
		if level := r.CheckCapability(tt.league, "pbp"); level != tt.want {
			t.Errorf("CheckCapability(%s, pbp): expected %s, got %s", tt.league, tt.want, level)
		}
	}
}

func TestCheckCapabilityUnregistered(t *testing.T) {
	r := New()
	if err := r.Register(testEntry("shot_chart", NBA)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if level := r.CheckCapability(NBA, "lineups"); level != Unavailable {
		t.Errorf("unknown dataset: expected Unavailable, got %s", level)
	}
	if level := r.CheckCapability(WNBA, "shot_chart"); level != Unavailable {
		t.Errorf("unregistered league: expected Unavailable, got %s", level)
	}
}

// TestValidateLeagueDatasetUnavailable covers the suggestion path: an
// Unavailable override must produce a message naming at least one Full
// alternative when one exists for the league.
func TestValidateLeagueDatasetUnavailable(t *testing.T) {
	r := New()
	for _, id := range []string{"schedule", "player_game", "pbp"} {
		if err := r.Register(testEntry(id)); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}
	r.SetCapability(International, "pbp", Unavailable)

	ok, msg := r.ValidateLeagueDataset(International, "pbp")
	if ok {
		t.Fatal("expected ok=false for unavailable capability")
	}
	if !strings.Contains(msg, "pbp") || !strings.Contains(msg, "intl") {
		t.Errorf("message should name dataset and league: %s", msg)
	}
	if !strings.Contains(msg, "schedule") {
		t.Errorf("message should suggest a full alternative: %s", msg)
	}
	if strings.Contains(msg, "pbp,") {
		t.Errorf("queried dataset must not be suggested as an alternative: %s", msg)
	}
}

func TestValidateLeagueDatasetLevels(t *testing.T) {
	r := New()
	if err := r.Register(testEntry("schedule")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(testEntry("shot_chart", NBA)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	r.SetCapability(GLeague, "schedule", Limited)
	r.SetCapability(NCAA, "schedule", NotImplemented)

	tests := []struct {
		name    string
		league  League
		dataset string
		wantOK  bool
	}{
		{"full", NBA, "schedule", true},
		{"limited still ok", GLeague, "schedule", true},
		{"not implemented", NCAA, "schedule", false},
		{"league not served", WNBA, "shot_chart", false},
		{"unknown dataset", NBA, "lineups", false},
	}

	for _, tt := range tests {
		ok, msg := r.ValidateLeagueDataset(tt.league, tt.dataset)
		if ok != tt.wantOK {
			t.Errorf("%s: expected ok=%v, got %v (%s)", tt.name, tt.wantOK, ok, msg)
		}
		if !ok && msg == "" {
			t.Errorf("%s: refusal must carry a message", tt.name)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	r := Default()

	data := []byte(`
[[capability]]
league = "wnba"
dataset = "shot_chart"
level = "limited"

[[capability]]
league = "gleague"
dataset = "pbp"
level = "unavailable"
`)
	if err := r.ApplyOverrides(data); err != nil {
		t.Fatalf("ApplyOverrides failed: %v", err)
	}

	if level := r.CheckCapability(WNBA, "shot_chart"); level != Limited {
		t.Errorf("expected Limited, got %s", level)
	}
	if level := r.CheckCapability(GLeague, "pbp"); level != Unavailable {
		t.Errorf("expected Unavailable, got %s", level)
	}
}

func TestApplyOverridesRejectsUnknown(t *testing.T) {
	r := Default()

	tests := []struct {
		name string
		data string
	}{
		{"unknown league", "[[capability]]\nleague = \"xfl\"\ndataset = \"pbp\"\nlevel = \"full\"\n"},
		{"unknown dataset", "[[capability]]\nleague = \"nba\"\ndataset = \"lineups\"\nlevel = \"full\"\n"},
		{"unknown level", "[[capability]]\nleague = \"nba\"\ndataset = \"pbp\"\nlevel = \"partial\"\n"},
	}
	for _, tt := range tests {
		if err := r.ApplyOverrides([]byte(tt.data)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}
