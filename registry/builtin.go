package registry

// Builtin dataset entries. Filter names here must match the field name
// constants in the filter package (covered by a consistency test there).
//
// The capability overrides encode real gaps in the upstream sources: no
// play-by-play feed exists for international competitions, college shot
// charts have no integration yet, and so on. Absence of an override means
// Full coverage for every league the dataset is registered for.

// Default returns a registry pre-loaded with the builtin datasets and the
// known capability overrides.
func Default() *Registry {
	r := New()
	for _, entry := range builtinEntries {
		// Builtin entries are statically well-formed.
		if err := r.Register(entry); err != nil {
			panic(err)
		}
	}
	for _, o := range builtinOverrides {
		r.SetCapability(o.league, o.dataset, o.level)
	}
	return r
}

var builtinEntries = []Entry{
	{
		ID:   "schedule",
		Keys: []string{"GAME_ID"},
		SupportedFilters: []string{
			"league", "season", "season_type", "date_range", "conference",
			"division", "tournament", "teams", "opponents", "game_ids",
			"home_away", "venue", "only_complete",
		},
		Sources: []string{"nba-stats", "espn-scrape", "fiba-html"},
		SampleColumns: []string{
			"GAME_ID", "GAME_DATE", "SEASON", "SEASON_TYPE", "LEAGUE",
			"TEAM_ID", "TEAM_NAME", "OPPONENT_TEAM_ID", "OPPONENT_NAME",
			"HOME_AWAY", "VENUE",
		},
	},
	{
		ID:   "player_game",
		Keys: []string{"GAME_ID", "PLAYER_ID"},
		SupportedFilters: []string{
			"league", "season", "season_type", "date_range", "teams",
			"opponents", "players", "game_ids", "home_away", "venue",
			"min_minutes", "last_n_games", "only_complete",
		},
		Sources: []string{"nba-stats", "bballref-html"},
		SampleColumns: []string{
			"GAME_ID", "GAME_DATE", "PLAYER_ID", "PLAYER_NAME", "TEAM_ID",
			"TEAM_NAME", "OPPONENT_TEAM_ID", "HOME_AWAY", "MIN", "PTS",
			"REB", "AST",
		},
	},
	{
		ID:   "team_game",
		Keys: []string{"GAME_ID", "TEAM_ID"},
		SupportedFilters: []string{
			"league", "season", "season_type", "date_range", "teams",
			"opponents", "game_ids", "home_away", "venue", "last_n_games",
			"only_complete",
		},
		Sources: []string{"nba-stats", "espn-scrape"},
		SampleColumns: []string{
			"GAME_ID", "GAME_DATE", "TEAM_ID", "TEAM_NAME",
			"OPPONENT_TEAM_ID", "OPPONENT_NAME", "HOME_AWAY", "PTS",
			"PTS_ALLOWED",
		},
	},
	{
		ID:   "player_season",
		Keys: []string{"PLAYER_ID", "SEASON"},
		SupportedFilters: []string{
			"league", "season", "season_type", "per_mode", "teams",
			"players", "conference", "division", "min_minutes",
			"only_complete",
		},
		Sources: []string{"nba-stats", "bballref-html", "fiba-html"},
		SampleColumns: []string{
			"PLAYER_ID", "PLAYER_NAME", "TEAM_ID", "TEAM_NAME", "SEASON",
			"GP", "MIN", "PTS", "REB", "AST",
		},
	},
	{
		ID:   "team_season",
		Keys: []string{"TEAM_ID", "SEASON"},
		SupportedFilters: []string{
			"league", "season", "season_type", "per_mode", "teams",
			"conference", "division", "tournament", "only_complete",
		},
		Sources: []string{"nba-stats", "espn-scrape", "fiba-html"},
		SampleColumns: []string{
			"TEAM_ID", "TEAM_NAME", "SEASON", "CONFERENCE", "DIVISION",
			"GP", "W", "L", "PTS",
		},
	},
	{
		ID:   "pbp",
		Keys: []string{"GAME_ID", "EVENT_ID"},
		SupportedFilters: []string{
			"league", "season", "game_ids", "teams", "players", "periods",
			"game_minutes", "only_complete",
		},
		SupportedLeagues: []League{NBA, WNBA, GLeague, NCAA, EuroBasket},
		Sources:          []string{"nba-stats", "espn-pbp"},
		SampleColumns: []string{
			"GAME_ID", "EVENT_ID", "PERIOD", "GAME_CLOCK", "TEAM_ID",
			"PLAYER_ID", "PLAYER_NAME", "DESCRIPTION",
		},
		RequiresGameID: true,
	},
	{
		ID:   "shot_chart",
		Keys: []string{"GAME_ID", "SHOT_ID"},
		SupportedFilters: []string{
			"league", "season", "season_type", "date_range", "teams",
			"players", "game_ids", "periods", "game_minutes",
			"context_measure", "only_complete",
		},
		SupportedLeagues: []League{NBA, WNBA, GLeague, NCAA},
		Sources:          []string{"nba-stats"},
		SampleColumns: []string{
			"GAME_ID", "SHOT_ID", "GAME_DATE", "PLAYER_ID", "PLAYER_NAME",
			"TEAM_ID", "PERIOD", "GAME_CLOCK", "SHOT_MADE", "SHOT_TYPE",
			"LOC_X", "LOC_Y",
		},
	},
}

var builtinOverrides = []struct {
	league  League
	dataset string
	level   CapabilityLevel
}{
	{International, "pbp", Unavailable},
	{International, "shot_chart", Unavailable},
	{International, "player_game", Limited},
	{NCAA, "shot_chart", NotImplemented},
	{NCAA, "pbp", Limited},
	{EuroBasket, "pbp", Limited},
	{GLeague, "shot_chart", Limited},
}
