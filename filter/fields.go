package filter

// Filter field names. These are the vocabulary shared by Spec, the
// validator tables, and registry entries' SupportedFilters lists.
const (
	FieldLeague         = "league"
	FieldSeason         = "season"
	FieldSeasonType     = "season_type"
	FieldDateRange      = "date_range"
	FieldConference     = "conference"
	FieldDivision       = "division"
	FieldTournament     = "tournament"
	FieldTeams          = "teams"
	FieldOpponents      = "opponents"
	FieldPlayers        = "players"
	FieldGameIDs        = "game_ids"
	FieldHomeAway       = "home_away"
	FieldVenue          = "venue"
	FieldPerMode        = "per_mode"
	FieldLastNGames     = "last_n_games"
	FieldMinMinutes     = "min_minutes"
	FieldPeriods        = "periods"
	FieldGameMinutes    = "game_minutes"
	FieldContextMeasure = "context_measure"
	FieldOnlyComplete   = "only_complete"
)

// Fields returns every known filter field name, in a stable order.
func Fields() []string {
	return []string{
		FieldLeague, FieldSeason, FieldSeasonType, FieldDateRange,
		FieldConference, FieldDivision, FieldTournament, FieldTeams,
		FieldOpponents, FieldPlayers, FieldGameIDs, FieldHomeAway,
		FieldVenue, FieldPerMode, FieldLastNGames, FieldMinMinutes,
		FieldPeriods, FieldGameMinutes, FieldContextMeasure,
		FieldOnlyComplete,
	}
}
