package filter

import (
	"github.com/google/uuid"

	"github.com/statline-lab/statline-go/registry"
)

// Pushdown parameter names. These are the filter values widely understood
// by native backends; the compiler emits them whenever the corresponding
// spec field is present and has no per-backend knowledge beyond that;
// adapting a parameter to a specific backend's expected spelling is the
// fetcher's responsibility.
const (
	ParamSeason     = "Season"
	ParamSeasonType = "SeasonType"
	ParamDateFrom   = "DateFrom"
	ParamDateTo     = "DateTo"
	ParamPerMode    = "PerMode"
	ParamLastNGames = "LastNGames"
)

// pushdownDateLayout is the fixed textual format for date bounds.
const pushdownDateLayout = "01/02/2006"

// Pushdown is the set of backend-native query parameters compiled from a
// spec. Values are strings except LastNGames, which is an int.
type Pushdown map[string]any

// Meta is per-compilation metadata for the caller's logging and telemetry.
// The engine never reads it back.
type Meta struct {
	Dataset string
	League  registry.League
	Season  string
	QueryID string
}

// CompiledQuery is the result of splitting a spec: parameters for the
// backend plus the client-side correctness backstop. Produced fresh per
// call; never cached or shared.
type CompiledQuery struct {
	Pushdown Pushdown
	Mask     *PostMask
	Meta     Meta
}

// ResolveKind is the entity kind passed to a Resolver.
const (
	ResolveTeam   = "team"
	ResolvePlayer = "player"
)

// Resolver maps an entity name to a backend id. Implementations may
// perform I/O; the compiler calls it synchronously, once per name, with no
// retry, batching, or timeout. Return ok=false when the name cannot be
// resolved.
type Resolver func(name, kind string, league registry.League) (int64, bool)

// Compile turns a spec into pushdown parameters plus a post-mask.
//
// Compilation never fails. Name resolution is best effort: explicit id
// lists win over names; otherwise each name is resolved through the
// resolver if one is supplied, and a name that fails to resolve simply
// contributes no id: it stays in the name channel and remains filterable
// by the post-mask's name predicates.
//
// The post-mask is populated for every present field, including fields
// already emitted as pushdown parameters, so a fetcher that ignores
// pushdown entirely still yields correct results.
func Compile(datasetID string, spec *Spec, resolve Resolver) CompiledQuery {
	q := CompiledQuery{
		Pushdown: make(Pushdown),
		Mask:     NewPostMask(),
		Meta: Meta{
			Dataset: datasetID,
			League:  spec.league,
			Season:  spec.season,
			QueryID: uuid.NewString(),
		},
	}

	teamIDs := resolveIDs(spec.teamIDs, spec.teamNames, ResolveTeam, spec.league, resolve)
	opponentIDs := resolveIDs(spec.opponentIDs, spec.opponentNames, ResolveTeam, spec.league, resolve)
	playerIDs := resolveIDs(spec.playerIDs, spec.playerNames, ResolvePlayer, spec.league, resolve)

	// Common pushdown parameters, emitted unconditionally when present.
	if spec.season != "" {
		q.Pushdown[ParamSeason] = spec.season
	}
	if spec.seasonType != "" {
		q.Pushdown[ParamSeasonType] = spec.seasonType
	}
	if spec.dates != nil {
		q.Pushdown[ParamDateFrom] = spec.dates.Start.Format(pushdownDateLayout)
		q.Pushdown[ParamDateTo] = spec.dates.End.Format(pushdownDateLayout)
	}
	if spec.perMode != "" {
		q.Pushdown[ParamPerMode] = string(spec.perMode)
	}
	if spec.lastNGames > 0 {
		q.Pushdown[ParamLastNGames] = spec.lastNGames
	}

	// Post-mask: the correctness backstop.
	if len(spec.gameIDs) > 0 {
		q.Mask.Set(NewIDSet(KeyGameID, spec.gameIDs))
	}
	if len(teamIDs) > 0 {
		q.Mask.Set(NewInt64IDSet(KeyTeamID, teamIDs))
	}
	if len(opponentIDs) > 0 {
		q.Mask.Set(NewInt64IDSet(KeyOpponentTeamID, opponentIDs))
	}
	if len(playerIDs) > 0 {
		q.Mask.Set(NewInt64IDSet(KeyPlayerID, playerIDs))
	}
	if len(spec.teamNames) > 0 {
		q.Mask.Set(NewNameList(KeyTeamName, spec.teamNames))
	}
	if len(spec.opponentNames) > 0 {
		q.Mask.Set(NewNameList(KeyOpponentName, spec.opponentNames))
	}
	if len(spec.playerNames) > 0 {
		q.Mask.Set(NewNameList(KeyPlayerName, spec.playerNames))
	}
	if spec.league != "" {
		q.Mask.Set(NewValueSet(KeyLeague, []string{string(spec.league)}))
	}
	if spec.homeAway != "" {
		q.Mask.Set(NewValueSet(KeyHomeAway, []string{string(spec.homeAway)}))
	}
	if len(spec.periods) > 0 {
		q.Mask.Set(NewIntValueSet(KeyPeriod, spec.periods))
	}
	if spec.dates != nil {
		q.Mask.Set(NewTimeRange(KeyGameDate, spec.dates.Start, spec.dates.End))
	}
	if spec.gameMinutes != nil {
		q.Mask.Set(NewNumberRange(KeyGameMinute, spec.gameMinutes.From, spec.gameMinutes.To))
	}
	if spec.minMinutes != nil {
		q.Mask.Set(NewNumberMin(KeyMinutes, float64(*spec.minMinutes)))
	}
	if spec.contextMeasure != "" {
		q.Mask.Set(NewValueSet(KeyContextMeasure, []string{spec.contextMeasure}))
	}
	if spec.conference != "" {
		q.Mask.Set(NewPattern(KeyConference, spec.conference))
	}
	if spec.division != "" {
		q.Mask.Set(NewPattern(KeyDivision, spec.division))
	}
	if spec.tournament != "" {
		q.Mask.Set(NewPattern(KeyTournament, spec.tournament))
	}
	if spec.venue != "" {
		q.Mask.Set(NewPattern(KeyVenue, spec.venue))
	}
	if spec.onlyComplete {
		q.Mask.Set(NewFlag(KeyComplete))
	}

	return q
}

// resolveIDs picks the id channel for one entity kind: explicit ids win;
// otherwise names are resolved one by one, discarding per-name failures.
func resolveIDs(ids []int64, names []string, kind string, league registry.League, resolve Resolver) []int64 {
	if len(ids) > 0 {
		return ids
	}
	if resolve == nil || len(names) == 0 {
		return nil
	}
	var resolved []int64
	for _, name := range names {
		if id, ok := resolve(name, kind, league); ok {
			resolved = append(resolved, id)
		}
	}
	return resolved
}
