package filter

// columnAliases maps each logical predicate key to its candidate column
// names, tried in order (exact match first, then case-insensitive, per
// candidate). The chains encode the naming drift actually observed across
// sources: scraped tables say TEAM where the stats APIs say TEAM_NAME,
// international feeds say QUARTER where the NBA endpoints say PERIOD, and
// so on. A key whose chain matches nothing in a record set is skipped.
var columnAliases = map[Key][]string{
	KeyGameID:         {"GAME_ID", "GAMEID", "GID"},
	KeyPlayerID:       {"PLAYER_ID", "PERSON_ID", "PLAYERID"},
	KeyTeamID:         {"TEAM_ID", "TEAMID"},
	KeyOpponentTeamID: {"OPPONENT_TEAM_ID", "OPP_TEAM_ID", "VS_TEAM_ID"},
	KeyLeague:         {"LEAGUE", "LEAGUE_ID"},
	KeyHomeAway:       {"HOME_AWAY", "LOCATION"},
	KeyPeriod:         {"PERIOD", "QUARTER", "PERIOD_NUMBER"},
	KeyGameDate:       {"GAME_DATE", "DATE", "GAME_DATE_EST", "GAME_DATETIME"},
	KeyGameMinute:     {"GAME_MINUTE", "MINUTE_ELAPSED"},
	KeyMinutes:        {"MIN", "MINUTES", "MINUTES_PLAYED"},
	KeyConference:     {"CONFERENCE", "CONF"},
	KeyDivision:       {"DIVISION", "DIV"},
	KeyTournament:     {"TOURNAMENT", "COMPETITION"},
	KeyContextMeasure: {"CONTEXT_MEASURE", "MEASURE_TYPE"},
	KeyVenue:          {"VENUE", "ARENA", "VENUE_NAME"},
	KeyPlayerName:     {"PLAYER_NAME", "PLAYER", "PLAYER_FULL_NAME"},
	KeyTeamName:       {"TEAM_NAME", "TEAM", "TEAM_CITY_NAME"},
	KeyOpponentName:   {"OPPONENT_NAME", "OPPONENT", "VS_TEAM_NAME"},
}

// clockAliases are the candidate columns for the remaining game clock,
// used only by the game-minute derivation.
var clockAliases = []string{"GAME_CLOCK", "CLOCK", "PCTIMESTRING"}
