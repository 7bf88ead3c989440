package filter

import (
	"reflect"
	"testing"
	"time"

	"github.com/statline-lab/statline-go/registry"
)

func mustSpec(t *testing.T, opts ...Option) *Spec {
	t.Helper()
	s, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

// TestDateRangeInvariant: a reversed date range always fails construction.
func TestDateRangeInvariant(t *testing.T) {
	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if _, err := New(WithDateRange(start, end)); err == nil {
		t.Fatal("expected construction error for start > end")
	}
	if _, err := New(WithDateRange(start, start)); err != nil {
		t.Fatalf("single-day range must be valid: %v", err)
	}
}

// TestEmptyCollectionsNormalized: a spec built with empty lists is
// observably identical to one that omits the fields.
func TestEmptyCollectionsNormalized(t *testing.T) {
	empty := mustSpec(t,
		WithTeamNames(),
		WithPlayerIDs(),
		WithGameIDs(),
		WithPeriods(),
	)
	omitted := mustSpec(t)

	if !reflect.DeepEqual(empty.ActiveFields(), omitted.ActiveFields()) {
		t.Errorf("empty collections must normalize to absence: %v vs %v",
			empty.ActiveFields(), omitted.ActiveFields())
	}
	if len(empty.ActiveFields()) != 0 {
		t.Errorf("expected no active fields, got %v", empty.ActiveFields())
	}
}

func TestGameIDCoercion(t *testing.T) {
	s := mustSpec(t, WithGameIDs("0042301234", 42, int64(7)))

	want := []string{"0042301234", "42", "7"}
	if got := s.GameIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestConstructionRejections(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"period zero", WithPeriods(1, 0)},
		{"period negative", WithPeriods(-4)},
		{"last n games zero", WithLastNGames(0)},
		{"negative min minutes", WithMinMinutes(-1)},
		{"unknown league", WithLeague("xfl")},
		{"unknown per mode", WithPerMode("per_36")},
		{"bad home away", WithHomeAway("neutral")},
		{"empty season", WithSeason("")},
		{"empty game id", WithGameIDs("")},
		{"empty team name", WithTeamNames("Alpha", "")},
		{"reversed game minutes", WithGameMinutes(40, 30)},
	}
	for _, tt := range tests {
		if _, err := New(tt.opt); err == nil {
			t.Errorf("%s: expected construction error", tt.name)
		}
	}
}

func TestMinMinutesZeroIsPresent(t *testing.T) {
	s := mustSpec(t, WithMinMinutes(0))

	found := false
	for _, f := range s.ActiveFields() {
		if f == FieldMinMinutes {
			found = true
		}
	}
	if !found {
		t.Error("min_minutes=0 is a valid threshold and must be active")
	}
}

func TestActiveFields(t *testing.T) {
	s := mustSpec(t,
		WithLeague(registry.NBA),
		WithSeason("2024"),
		WithTeamNames("Alpha"),
		WithGameIDs("001"),
		WithOnlyComplete(),
	)

	want := []string{FieldLeague, FieldSeason, FieldTeams, FieldGameIDs, FieldOnlyComplete}
	got := s.ActiveFields()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("active field %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestTeamIDsDeduplicated(t *testing.T) {
	s := mustSpec(t, WithTeamIDs(1, 2, 1, 3, 2))
	if len(s.teamIDs) != 3 {
		t.Errorf("expected 3 unique ids, got %v", s.teamIDs)
	}
}
