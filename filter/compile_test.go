package filter

import (
	"testing"
	"time"

	"github.com/statline-lab/statline-go/registry"
)

// TestCompileNoResolver: without a resolver, names stay in the name
// channel. The pushdown carries only what backends understand natively.
func TestCompileNoResolver(t *testing.T) {
	spec := mustSpec(t,
		WithLeague(registry.NBA),
		WithSeason("2024"),
		WithTeamNames("Alpha"),
	)

	q := Compile("schedule", spec, nil)

	if len(q.Pushdown) != 1 {
		t.Fatalf("expected exactly one pushdown param, got %v", q.Pushdown)
	}
	if got := q.Pushdown[ParamSeason]; got != "2024" {
		t.Errorf("Season param = %v, want 2024", got)
	}

	if q.Mask.Get(KeyTeamID) != nil {
		t.Error("no resolver: mask must not contain a team id predicate")
	}
	names, ok := q.Mask.Get(KeyTeamName).(*NameListPredicate)
	if !ok {
		t.Fatalf("expected a team name predicate, got %T", q.Mask.Get(KeyTeamName))
	}
	if len(names.Names) != 1 || names.Names[0] != "Alpha" {
		t.Errorf("team names = %v, want [Alpha]", names.Names)
	}
	if q.Mask.Get(KeyLeague) == nil {
		t.Error("league must appear in the mask")
	}
}

func TestCompileResolver(t *testing.T) {
	var calls []string
	resolve := func(name, kind string, league registry.League) (int64, bool) {
		calls = append(calls, kind+":"+name)
		switch name {
		case "Alpha":
			return 1610612737, true
		case "Nowhere":
			return 0, false
		}
		return 0, false
	}

	spec := mustSpec(t,
		WithLeague(registry.NBA),
		WithTeamNames("Alpha", "Nowhere"),
	)
	q := Compile("team_game", spec, resolve)

	ids, ok := q.Mask.Get(KeyTeamID).(*IDSetPredicate)
	if !ok {
		t.Fatalf("expected id predicate after resolution, got %T", q.Mask.Get(KeyTeamID))
	}
	if _, hit := ids.IDs["1610612737"]; !hit || len(ids.IDs) != 1 {
		t.Errorf("resolved ids = %v, want exactly {1610612737}", ids.IDs)
	}

	// The failed name contributed no id but the name channel is intact.
	names := q.Mask.Get(KeyTeamName).(*NameListPredicate)
	if len(names.Names) != 2 {
		t.Errorf("name predicate lost entries: %v", names.Names)
	}
	if len(calls) != 2 {
		t.Errorf("resolver calls = %v, want one per name", calls)
	}
}

// Explicit ids win over names; the resolver is not consulted.
func TestCompileExplicitIDsSkipResolver(t *testing.T) {
	resolve := func(name, kind string, league registry.League) (int64, bool) {
		t.Errorf("resolver called for %q despite explicit ids", name)
		return 0, false
	}

	spec := mustSpec(t,
		WithPlayerIDs(201939),
		WithPlayerNames("Curry"),
	)
	q := Compile("player_game", spec, resolve)

	ids := q.Mask.Get(KeyPlayerID).(*IDSetPredicate)
	if _, hit := ids.IDs["201939"]; !hit {
		t.Errorf("player ids = %v, want {201939}", ids.IDs)
	}
}

func TestCompileDateFormat(t *testing.T) {
	spec := mustSpec(t, WithDateRange(
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	))
	q := Compile("schedule", spec, nil)

	if got := q.Pushdown[ParamDateFrom]; got != "03/05/2024" {
		t.Errorf("DateFrom = %v, want 03/05/2024", got)
	}
	if got := q.Pushdown[ParamDateTo]; got != "03/31/2024" {
		t.Errorf("DateTo = %v, want 03/31/2024", got)
	}
	if q.Mask.Get(KeyGameDate) == nil {
		t.Error("date range must also appear in the mask")
	}
}

// Conflicting fields both survive compilation; resolution of the conflict
// is the fetcher's call, and the mask keeps both predicates so the result
// is correct either way.
func TestCompileConflictingFieldsBothEmitted(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	spec := mustSpec(t,
		WithGameIDs("0042301234"),
		WithDateRange(start, start.AddDate(0, 0, 7)),
	)
	q := Compile("schedule", spec, nil)

	if q.Pushdown[ParamDateFrom] == nil {
		t.Error("date pushdown missing")
	}
	if q.Mask.Get(KeyGameID) == nil || q.Mask.Get(KeyGameDate) == nil {
		t.Error("mask must carry both game id and date predicates")
	}
}

// Every present field lands in the mask, including ones already pushed
// down. A fetcher that ignores pushdown entirely still yields correct
// results.
func TestCompileMaskCoversPushdown(t *testing.T) {
	spec := mustSpec(t,
		WithLeague(registry.WNBA),
		WithSeason("2024"),
		WithHomeAway(Home),
		WithPeriods(1, 2),
		WithMinMinutes(20),
		WithVenue("Arena"),
		WithOnlyComplete(),
	)
	q := Compile("player_game", spec, nil)

	for _, key := range []Key{KeyLeague, KeyHomeAway, KeyPeriod, KeyMinutes, KeyVenue, KeyComplete} {
		if q.Mask.Get(key) == nil {
			t.Errorf("mask missing predicate for %s", key)
		}
	}
}

func TestCompileMeta(t *testing.T) {
	spec := mustSpec(t, WithLeague(registry.NBA), WithSeason("2023-24"))

	q1 := Compile("schedule", spec, nil)
	q2 := Compile("schedule", spec, nil)

	if q1.Meta.Dataset != "schedule" || q1.Meta.League != registry.NBA || q1.Meta.Season != "2023-24" {
		t.Errorf("unexpected meta: %+v", q1.Meta)
	}
	if q1.Meta.QueryID == "" || q1.Meta.QueryID == q2.Meta.QueryID {
		t.Error("query ids must be unique per compilation")
	}
}

func TestCompileEmptySpec(t *testing.T) {
	spec := mustSpec(t)
	q := Compile("schedule", spec, nil)

	if len(q.Pushdown) != 0 {
		t.Errorf("empty spec produced pushdown %v", q.Pushdown)
	}
	if q.Mask.Len() != 0 {
		t.Errorf("empty spec produced mask keys %v", q.Mask.Keys())
	}
}

// Game-minute bounds land in the mask only; no backend understands them.
func TestCompileGameMinutes(t *testing.T) {
	spec := mustSpec(t,
		WithLeague(registry.NBA),
		WithGameIDs("0022400001"),
		WithGameMinutes(30, 40),
	)

	q := Compile("pbp", spec, nil)

	pred, ok := q.Mask.Get(KeyGameMinute).(*NumberRangePredicate)
	if !ok {
		t.Fatalf("expected a game minute predicate, got %T", q.Mask.Get(KeyGameMinute))
	}
	if pred.Min == nil || pred.Max == nil || *pred.Min != 30 || *pred.Max != 40 {
		t.Errorf("bounds = %v..%v, want 30..40", pred.Min, pred.Max)
	}
}
