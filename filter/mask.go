package filter

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Key is the logical name of a post-mask predicate. Each key resolves to an
// actual record-set column through the alias chains in columns.go.
type Key string

const (
	KeyGameID         Key = "GAME_ID"
	KeyPlayerID       Key = "PLAYER_ID"
	KeyTeamID         Key = "TEAM_ID"
	KeyOpponentTeamID Key = "OPPONENT_TEAM_ID"
	KeyLeague         Key = "LEAGUE"
	KeyHomeAway       Key = "HOME_AWAY"
	KeyPeriod         Key = "PERIOD"
	KeyGameDate       Key = "GAME_DATE"
	KeyGameMinute     Key = "GAME_MINUTE"
	KeyMinutes        Key = "MIN"
	KeyConference     Key = "CONFERENCE"
	KeyDivision       Key = "DIVISION"
	KeyTournament     Key = "TOURNAMENT"
	KeyContextMeasure Key = "CONTEXT_MEASURE"
	KeyVenue          Key = "VENUE"
	KeyPlayerName     Key = "PLAYER_NAME"
	KeyTeamName       Key = "TEAM_NAME"
	KeyOpponentName   Key = "OPPONENT_NAME"
	KeyComplete       Key = "COMPLETE"
)

// PredicateKind identifies the category of a predicate, one case per way a
// predicate evaluates a cell. The executor's dispatch is exhaustive over
// these kinds.
type PredicateKind string

const (
	KindIDSet       PredicateKind = "ID_SET"
	KindNameList    PredicateKind = "NAME_LIST"
	KindValueSet    PredicateKind = "VALUE_SET"
	KindTimeRange   PredicateKind = "TIME_RANGE"
	KindNumberRange PredicateKind = "NUMBER_RANGE"
	KindPattern     PredicateKind = "PATTERN"
	KindFlag        PredicateKind = "FLAG"
)

// Predicate is the interface implemented by all post-mask predicate types.
// Use type switches to access predicate data.
type Predicate interface {
	// Key returns the predicate's logical column key.
	Key() Key

	// Kind returns the predicate category.
	Kind() PredicateKind

	// predicateMarker prevents external implementations.
	predicateMarker()
}

// basePredicate carries the fields common to all predicate types.
type basePredicate struct {
	key  Key
	kind PredicateKind
}

func (b basePredicate) Key() Key            { return b.key }
func (b basePredicate) Kind() PredicateKind { return b.kind }
func (b basePredicate) predicateMarker()    {}

// IDSetPredicate is a membership test against explicit ids. Ids are kept in
// canonical string form so numeric and string id columns compare equal.
type IDSetPredicate struct {
	basePredicate
	IDs map[string]struct{}
}

// NewIDSet builds an id-set predicate from canonical id strings.
func NewIDSet(key Key, ids []string) *IDSetPredicate {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &IDSetPredicate{basePredicate{key, KindIDSet}, set}
}

// NewInt64IDSet builds an id-set predicate from numeric ids.
func NewInt64IDSet(key Key, ids []int64) *IDSetPredicate {
	canonical := make([]string, len(ids))
	for i, id := range ids {
		canonical[i] = strconv.FormatInt(id, 10)
	}
	return NewIDSet(key, canonical)
}

// NameListPredicate matches a cell against a list of names using
// case-insensitive substring matching; any name matching is a hit.
type NameListPredicate struct {
	basePredicate
	Names []string
}

// NewNameList builds a name-list predicate.
func NewNameList(key Key, names []string) *NameListPredicate {
	return &NameListPredicate{basePredicate{key, KindNameList}, append([]string(nil), names...)}
}

// ValueSetPredicate is a categorical membership test. Values are folded to
// lower case before comparison.
type ValueSetPredicate struct {
	basePredicate
	Values map[string]struct{}
}

// NewValueSet builds a categorical predicate from string values.
func NewValueSet(key Key, values []string) *ValueSetPredicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return &ValueSetPredicate{basePredicate{key, KindValueSet}, set}
}

// NewIntValueSet builds a categorical predicate from integer values
// (period numbers).
func NewIntValueSet(key Key, values []int) *ValueSetPredicate {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = strconv.Itoa(v)
	}
	return NewValueSet(key, strs)
}

// TimeRangePredicate keeps rows whose column falls inside the inclusive
// calendar window [Start, End]. Comparison is by calendar date in the
// cell's own location, so timezone-aware columns are measured against
// timezone-localized bounds.
type TimeRangePredicate struct {
	basePredicate
	Start time.Time
	End   time.Time
}

// NewTimeRange builds a date-window predicate.
func NewTimeRange(key Key, start, end time.Time) *TimeRangePredicate {
	return &TimeRangePredicate{basePredicate{key, KindTimeRange}, start, end}
}

// NumberRangePredicate keeps rows whose column, coerced to a number, falls
// inside [Min, Max]. A nil bound is unbounded on that side. Cells that
// cannot be coerced do not match.
type NumberRangePredicate struct {
	basePredicate
	Min *float64
	Max *float64
}

// NewNumberMin builds a lower-bounded numeric predicate.
func NewNumberMin(key Key, min float64) *NumberRangePredicate {
	return &NumberRangePredicate{basePredicate: basePredicate{key, KindNumberRange}, Min: &min}
}

// NewNumberRange builds a numeric window predicate.
func NewNumberRange(key Key, min, max float64) *NumberRangePredicate {
	return &NumberRangePredicate{basePredicate: basePredicate{key, KindNumberRange}, Min: &min, Max: &max}
}

// PatternPredicate keeps rows whose column contains the pattern,
// case-insensitively.
type PatternPredicate struct {
	basePredicate
	Pattern string
}

// NewPattern builds a substring-pattern predicate.
func NewPattern(key Key, pattern string) *PatternPredicate {
	return &PatternPredicate{basePredicate{key, KindPattern}, pattern}
}

// FlagPredicate is a boolean predicate with key-specific semantics; the
// only flag today is KeyComplete (drop rows with a null in any available
// identity column).
type FlagPredicate struct {
	basePredicate
}

// NewFlag builds a flag predicate.
func NewFlag(key Key) *FlagPredicate {
	return &FlagPredicate{basePredicate{key, KindFlag}}
}

// PostMask is the set of client-side predicates guaranteeing a query's
// correctness regardless of how much filtering the backend performed.
// At most one predicate exists per key.
type PostMask struct {
	predicates map[Key]Predicate
}

// NewPostMask creates an empty post-mask.
func NewPostMask() *PostMask {
	return &PostMask{predicates: make(map[Key]Predicate)}
}

// Set inserts or replaces the predicate for its key.
func (m *PostMask) Set(p Predicate) {
	m.predicates[p.Key()] = p
}

// Get returns the predicate for a key, or nil.
func (m *PostMask) Get(key Key) Predicate {
	if m == nil {
		return nil
	}
	return m.predicates[key]
}

// Len returns the number of predicates.
func (m *PostMask) Len() int {
	if m == nil {
		return 0
	}
	return len(m.predicates)
}

// Keys returns the predicate keys, sorted.
func (m *PostMask) Keys() []Key {
	if m == nil {
		return nil
	}
	keys := make([]Key, 0, len(m.predicates))
	for k := range m.predicates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
