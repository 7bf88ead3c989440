package flight

import (
	"fmt"
	"time"

	"github.com/statline-lab/statline-go/filter"
	"github.com/statline-lab/statline-go/internal/msgpack"
	"github.com/statline-lab/statline-go/registry"
)

// wireDateLayout is the date format used on the ticket wire.
const wireDateLayout = "2006-01-02"

// FilterParams is the wire form of a filter spec. All fields are optional;
// the zero value means absent. Dates and minute bounds travel as pairs:
// setting one side without the other is a decode error.
type FilterParams struct {
	League         string    `msgpack:"league,omitempty"`
	Season         string    `msgpack:"season,omitempty"`
	SeasonType     string    `msgpack:"season_type,omitempty"`
	DateFrom       string    `msgpack:"date_from,omitempty"`
	DateTo         string    `msgpack:"date_to,omitempty"`
	Conference     string    `msgpack:"conference,omitempty"`
	Division       string    `msgpack:"division,omitempty"`
	Tournament     string    `msgpack:"tournament,omitempty"`
	TeamIDs        []int64   `msgpack:"team_ids,omitempty"`
	TeamNames      []string  `msgpack:"team_names,omitempty"`
	OpponentIDs    []int64   `msgpack:"opponent_ids,omitempty"`
	OpponentNames  []string  `msgpack:"opponent_names,omitempty"`
	PlayerIDs      []int64   `msgpack:"player_ids,omitempty"`
	PlayerNames    []string  `msgpack:"player_names,omitempty"`
	GameIDs        []string  `msgpack:"game_ids,omitempty"`
	HomeAway       string    `msgpack:"home_away,omitempty"`
	Venue          string    `msgpack:"venue,omitempty"`
	PerMode        string    `msgpack:"per_mode,omitempty"`
	LastNGames     int       `msgpack:"last_n_games,omitempty"`
	MinMinutes     *int      `msgpack:"min_minutes,omitempty"`
	Periods        []int     `msgpack:"periods,omitempty"`
	MinuteFrom     *float64  `msgpack:"minute_from,omitempty"`
	MinuteTo       *float64  `msgpack:"minute_to,omitempty"`
	ContextMeasure string    `msgpack:"context_measure,omitempty"`
	OnlyComplete   bool      `msgpack:"only_complete,omitempty"`
}

// TicketData is the decoded content of a Flight ticket: the dataset to
// query plus the filter parameters.
type TicketData struct {
	Dataset string       `msgpack:"dataset"`
	Filter  FilterParams `msgpack:"filter,omitempty"`
}

// EncodeTicket builds an opaque ticket. Tickets are MessagePack-encoded,
// matching the parameter encoding used elsewhere in the protocol.
func EncodeTicket(dataset string, params FilterParams) ([]byte, error) {
	if dataset == "" {
		return nil, fmt.Errorf("dataset cannot be empty")
	}
	return msgpack.Encode(TicketData{Dataset: dataset, Filter: params})
}

// DecodeTicket parses and validates an opaque ticket.
func DecodeTicket(ticketBytes []byte) (*TicketData, error) {
	if len(ticketBytes) == 0 {
		return nil, fmt.Errorf("ticket cannot be empty")
	}
	var ticket TicketData
	if err := msgpack.Decode(ticketBytes, &ticket); err != nil {
		return nil, err
	}
	if ticket.Dataset == "" {
		return nil, fmt.Errorf("decoded ticket has empty dataset")
	}
	if (ticket.Filter.DateFrom == "") != (ticket.Filter.DateTo == "") {
		return nil, fmt.Errorf("date_from and date_to must be set together")
	}
	if (ticket.Filter.MinuteFrom == nil) != (ticket.Filter.MinuteTo == nil) {
		return nil, fmt.Errorf("minute_from and minute_to must be set together")
	}
	return &ticket, nil
}

// ToSpec converts the wire filter into a canonical spec. Construction
// errors (bad dates, unknown league) surface as-is.
func (p FilterParams) ToSpec() (*filter.Spec, error) {
	var opts []filter.Option

	if p.League != "" {
		opts = append(opts, filter.WithLeague(registry.League(p.League)))
	}
	if p.Season != "" {
		opts = append(opts, filter.WithSeason(p.Season))
	}
	if p.SeasonType != "" {
		opts = append(opts, filter.WithSeasonType(p.SeasonType))
	}
	if p.DateFrom != "" {
		start, err := time.Parse(wireDateLayout, p.DateFrom)
		if err != nil {
			return nil, fmt.Errorf("bad date_from %q: %w", p.DateFrom, err)
		}
		end, err := time.Parse(wireDateLayout, p.DateTo)
		if err != nil {
			return nil, fmt.Errorf("bad date_to %q: %w", p.DateTo, err)
		}
		opts = append(opts, filter.WithDateRange(start, end))
	}
	if p.Conference != "" {
		opts = append(opts, filter.WithConference(p.Conference))
	}
	if p.Division != "" {
		opts = append(opts, filter.WithDivision(p.Division))
	}
	if p.Tournament != "" {
		opts = append(opts, filter.WithTournament(p.Tournament))
	}
	if len(p.TeamIDs) > 0 {
		opts = append(opts, filter.WithTeamIDs(p.TeamIDs...))
	}
	if len(p.TeamNames) > 0 {
		opts = append(opts, filter.WithTeamNames(p.TeamNames...))
	}
	if len(p.OpponentIDs) > 0 {
		opts = append(opts, filter.WithOpponentIDs(p.OpponentIDs...))
	}
	if len(p.OpponentNames) > 0 {
		opts = append(opts, filter.WithOpponentNames(p.OpponentNames...))
	}
	if len(p.PlayerIDs) > 0 {
		opts = append(opts, filter.WithPlayerIDs(p.PlayerIDs...))
	}
	if len(p.PlayerNames) > 0 {
		opts = append(opts, filter.WithPlayerNames(p.PlayerNames...))
	}
	if len(p.GameIDs) > 0 {
		ids := make([]any, len(p.GameIDs))
		for i, id := range p.GameIDs {
			ids[i] = id
		}
		opts = append(opts, filter.WithGameIDs(ids...))
	}
	if p.HomeAway != "" {
		opts = append(opts, filter.WithHomeAway(filter.HomeAway(p.HomeAway)))
	}
	if p.Venue != "" {
		opts = append(opts, filter.WithVenue(p.Venue))
	}
	if p.PerMode != "" {
		opts = append(opts, filter.WithPerMode(filter.PerMode(p.PerMode)))
	}
	if p.LastNGames > 0 {
		opts = append(opts, filter.WithLastNGames(p.LastNGames))
	}
	if p.MinMinutes != nil {
		opts = append(opts, filter.WithMinMinutes(*p.MinMinutes))
	}
	if len(p.Periods) > 0 {
		opts = append(opts, filter.WithPeriods(p.Periods...))
	}
	if p.MinuteFrom != nil && p.MinuteTo != nil {
		opts = append(opts, filter.WithGameMinutes(*p.MinuteFrom, *p.MinuteTo))
	}
	if p.ContextMeasure != "" {
		opts = append(opts, filter.WithContextMeasure(p.ContextMeasure))
	}
	if p.OnlyComplete {
		opts = append(opts, filter.WithOnlyComplete())
	}

	return filter.New(opts...)
}
