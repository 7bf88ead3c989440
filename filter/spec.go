package filter

import (
	"fmt"
	"time"

	"github.com/statline-lab/statline-go/registry"
)

// HomeAway selects the team's side of a game.
type HomeAway string

const (
	Home HomeAway = "home"
	Away HomeAway = "away"
)

// PerMode selects the statistical normalization of season datasets.
// The core never derives these values; the mode is forwarded to backends
// that understand it.
type PerMode string

const (
	Totals  PerMode = "totals"
	PerGame PerMode = "per_game"
	Per40   PerMode = "per_40"
)

// DateRange is an inclusive [Start, End] calendar window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// MinuteRange bounds the elapsed game minute of an event, e.g. events
// between minute 35 and 40 of a game.
type MinuteRange struct {
	From float64
	To   float64
}

// Spec is the canonical, validated representation of a user query.
// All fields are optional; absence and an empty collection are the same
// thing (empty collections are normalized to absence at construction).
// A Spec is immutable after New returns and safe to share between
// goroutines.
type Spec struct {
	league         registry.League
	season         string
	seasonType     string
	dates          *DateRange
	conference     string
	division       string
	tournament     string
	teamIDs        []int64
	teamNames      []string
	opponentIDs    []int64
	opponentNames  []string
	playerIDs      []int64
	playerNames    []string
	gameIDs        []string
	homeAway       HomeAway
	venue          string
	perMode        PerMode
	lastNGames     int
	minMinutes     *int
	periods        []int
	gameMinutes    *MinuteRange
	contextMeasure string
	onlyComplete   bool
}

// Option configures a Spec during construction.
type Option func(*Spec) error

// New constructs a Spec. Construction fails fast on malformed input (bad
// date order, invalid period numbers); it never coerces a bad value to a
// sentinel.
func New(opts ...Option) (*Spec, error) {
	s := &Spec{}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
	}
	return s, nil
}

// WithLeague sets the league. The league must be a known identifier.
func WithLeague(l registry.League) Option {
	return func(s *Spec) error {
		if !l.Known() {
			return fmt.Errorf("unknown league %q", l)
		}
		s.league = l
		return nil
	}
}

// WithSeason sets the season. The format is opaque and varies by league
// ("2024", "2023-24", "2024-25 EuroBasket"); only non-emptiness is checked.
func WithSeason(season string) Option {
	return func(s *Spec) error {
		if season == "" {
			return fmt.Errorf("season cannot be empty")
		}
		s.season = season
		return nil
	}
}

// WithSeasonType sets the season type ("regular", "playoffs", ...).
// Opaque, forwarded to backends as-is.
func WithSeasonType(seasonType string) Option {
	return func(s *Spec) error {
		if seasonType == "" {
			return fmt.Errorf("season type cannot be empty")
		}
		s.seasonType = seasonType
		return nil
	}
}

// WithDateRange sets the inclusive date window. Fails if end precedes start.
func WithDateRange(start, end time.Time) Option {
	return func(s *Spec) error {
		if end.Before(start) {
			return fmt.Errorf("date range end %s precedes start %s",
				end.Format("2006-01-02"), start.Format("2006-01-02"))
		}
		s.dates = &DateRange{Start: start, End: end}
		return nil
	}
}

// WithConference sets the conference name pattern.
func WithConference(conference string) Option {
	return func(s *Spec) error {
		s.conference = conference
		return nil
	}
}

// WithDivision sets the division name.
func WithDivision(division string) Option {
	return func(s *Spec) error {
		s.division = division
		return nil
	}
}

// WithTournament sets the tournament name.
func WithTournament(tournament string) Option {
	return func(s *Spec) error {
		s.tournament = tournament
		return nil
	}
}

// WithTeamIDs sets explicit team ids. An empty list is treated as absent.
func WithTeamIDs(ids ...int64) Option {
	return func(s *Spec) error {
		s.teamIDs = dedupeInts(ids)
		return nil
	}
}

// WithTeamNames sets team names, in order. An empty list is treated as
// absent; blank names are rejected.
func WithTeamNames(names ...string) Option {
	return func(s *Spec) error {
		cleaned, err := cleanNames("team", names)
		if err != nil {
			return err
		}
		s.teamNames = cleaned
		return nil
	}
}

// WithOpponentIDs sets explicit opponent team ids.
func WithOpponentIDs(ids ...int64) Option {
	return func(s *Spec) error {
		s.opponentIDs = dedupeInts(ids)
		return nil
	}
}

// WithOpponentNames sets opponent team names.
func WithOpponentNames(names ...string) Option {
	return func(s *Spec) error {
		cleaned, err := cleanNames("opponent", names)
		if err != nil {
			return err
		}
		s.opponentNames = cleaned
		return nil
	}
}

// WithPlayerIDs sets explicit player ids.
func WithPlayerIDs(ids ...int64) Option {
	return func(s *Spec) error {
		s.playerIDs = dedupeInts(ids)
		return nil
	}
}

// WithPlayerNames sets player names.
func WithPlayerNames(names ...string) Option {
	return func(s *Spec) error {
		cleaned, err := cleanNames("player", names)
		if err != nil {
			return err
		}
		s.playerNames = cleaned
		return nil
	}
}

// WithGameIDs sets explicit game ids. Ids are opaque strings; non-string
// values (sources disagree on whether game ids are numeric) are coerced to
// their string form.
func WithGameIDs(ids ...any) Option {
	return func(s *Spec) error {
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			switch v := id.(type) {
			case string:
				if v == "" {
					return fmt.Errorf("game id cannot be empty")
				}
				out = append(out, v)
			case nil:
				return fmt.Errorf("game id cannot be nil")
			default:
				out = append(out, fmt.Sprint(v))
			}
		}
		if len(out) == 0 {
			out = nil
		}
		s.gameIDs = out
		return nil
	}
}

// WithHomeAway restricts games to the home or away side.
func WithHomeAway(ha HomeAway) Option {
	return func(s *Spec) error {
		if ha != Home && ha != Away {
			return fmt.Errorf("home/away must be %q or %q, got %q", Home, Away, ha)
		}
		s.homeAway = ha
		return nil
	}
}

// WithVenue sets a venue substring pattern, matched case-insensitively.
func WithVenue(venue string) Option {
	return func(s *Spec) error {
		s.venue = venue
		return nil
	}
}

// WithPerMode sets the statistical normalization mode.
func WithPerMode(mode PerMode) Option {
	return func(s *Spec) error {
		switch mode {
		case Totals, PerGame, Per40:
			s.perMode = mode
			return nil
		default:
			return fmt.Errorf("unknown per-mode %q", mode)
		}
	}
}

// WithLastNGames limits results to the most recent n games. n must be >= 1.
func WithLastNGames(n int) Option {
	return func(s *Spec) error {
		if n < 1 {
			return fmt.Errorf("last n games must be >= 1, got %d", n)
		}
		s.lastNGames = n
		return nil
	}
}

// WithMinMinutes sets a minimum minutes-played threshold. Zero is a valid
// (if vacuous) threshold and is distinct from absence.
func WithMinMinutes(minutes int) Option {
	return func(s *Spec) error {
		if minutes < 0 {
			return fmt.Errorf("min minutes must be >= 0, got %d", minutes)
		}
		s.minMinutes = &minutes
		return nil
	}
}

// WithPeriods restricts rows to the given periods (quarters, halves,
// overtimes). Periods are 1-based; values < 1 are rejected. An empty list
// is treated as absent.
func WithPeriods(periods ...int) Option {
	return func(s *Spec) error {
		for _, p := range periods {
			if p < 1 {
				return fmt.Errorf("period must be >= 1, got %d", p)
			}
		}
		if len(periods) == 0 {
			s.periods = nil
			return nil
		}
		s.periods = append([]int(nil), periods...)
		return nil
	}
}

// WithGameMinutes bounds the elapsed game minute of events, inclusive.
func WithGameMinutes(from, to float64) Option {
	return func(s *Spec) error {
		if from < 0 || to < 0 {
			return fmt.Errorf("game minutes must be >= 0")
		}
		if to < from {
			return fmt.Errorf("game minute bound %g precedes %g", to, from)
		}
		s.gameMinutes = &MinuteRange{From: from, To: to}
		return nil
	}
}

// WithContextMeasure sets the shot-chart context measure ("FGA", "FG3M",
// ...). Opaque, forwarded to backends as-is.
func WithContextMeasure(measure string) Option {
	return func(s *Spec) error {
		if measure == "" {
			return fmt.Errorf("context measure cannot be empty")
		}
		s.contextMeasure = measure
		return nil
	}
}

// WithOnlyComplete drops rows missing a value in any available identity
// column (game/player/team id).
func WithOnlyComplete() Option {
	return func(s *Spec) error {
		s.onlyComplete = true
		return nil
	}
}

// League returns the league and whether it is set.
func (s *Spec) League() (registry.League, bool) {
	return s.league, s.league != ""
}

// Season returns the season and whether it is set.
func (s *Spec) Season() (string, bool) {
	return s.season, s.season != ""
}

// GameIDs returns a copy of the game id list.
func (s *Spec) GameIDs() []string {
	return append([]string(nil), s.gameIDs...)
}

// ActiveFields returns the names of all non-absent filter fields, in the
// canonical field order. A team/opponent/player field is active when either
// its id list or its name list is present.
func (s *Spec) ActiveFields() []string {
	var active []string
	for _, field := range Fields() {
		if s.fieldActive(field) {
			active = append(active, field)
		}
	}
	return active
}

func (s *Spec) fieldActive(field string) bool {
	switch field {
	case FieldLeague:
		return s.league != ""
	case FieldSeason:
		return s.season != ""
	case FieldSeasonType:
		return s.seasonType != ""
	case FieldDateRange:
		return s.dates != nil
	case FieldConference:
		return s.conference != ""
	case FieldDivision:
		return s.division != ""
	case FieldTournament:
		return s.tournament != ""
	case FieldTeams:
		return len(s.teamIDs) > 0 || len(s.teamNames) > 0
	case FieldOpponents:
		return len(s.opponentIDs) > 0 || len(s.opponentNames) > 0
	case FieldPlayers:
		return len(s.playerIDs) > 0 || len(s.playerNames) > 0
	case FieldGameIDs:
		return len(s.gameIDs) > 0
	case FieldHomeAway:
		return s.homeAway != ""
	case FieldVenue:
		return s.venue != ""
	case FieldPerMode:
		return s.perMode != ""
	case FieldLastNGames:
		return s.lastNGames > 0
	case FieldMinMinutes:
		return s.minMinutes != nil
	case FieldPeriods:
		return len(s.periods) > 0
	case FieldGameMinutes:
		return s.gameMinutes != nil
	case FieldContextMeasure:
		return s.contextMeasure != ""
	case FieldOnlyComplete:
		return s.onlyComplete
	default:
		return false
	}
}

// dedupeInts copies ids preserving order, dropping duplicates.
// Returns nil for an empty input so absence stays normalized.
func dedupeInts(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// cleanNames validates and copies a name list, normalizing empty to nil.
func cleanNames(kind string, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%s name cannot be empty", kind)
		}
		out = append(out, name)
	}
	return out, nil
}
