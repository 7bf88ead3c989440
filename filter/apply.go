package filter

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/statline-lab/statline-go/table"
)

// defaultPeriodMinutes is the period length assumed by the game-minute
// derivation when no ready-made minute column exists. Ten minutes is the
// international convention and matches the long-standing behavior of
// this derivation; leagues with 12-minute periods get approximate
// elapsed minutes unless the source carries a minute column. Callers
// needing exact regulation math can consult League.PeriodMinutes and
// filter on a real minute column instead.
const defaultPeriodMinutes = 10

// Report summarizes a post-mask application. Skipped counts predicates
// whose target column was absent from the record set; a non-zero skip
// count is how callers detect silently-ineffective filters.
type Report struct {
	Applied     int
	Skipped     int
	SkippedKeys []Key
}

// applyPhases fixes the executor's phase order: identity, categorical,
// temporal, numeric, string, completeness. The order is selectivity-then-
// cost; because every predicate is conjunctive it affects performance
// only, never the result.
var applyPhases = [][]Key{
	{KeyGameID, KeyPlayerID, KeyTeamID, KeyOpponentTeamID},
	{KeyLeague, KeyHomeAway, KeyPeriod, KeyContextMeasure},
	{KeyGameDate, KeyGameMinute},
	{KeyMinutes},
	{KeyConference, KeyDivision, KeyTournament, KeyVenue, KeyPlayerName, KeyTeamName, KeyOpponentName},
	{KeyComplete},
}

// Apply executes a post-mask against a record set and returns the filtered
// record set plus a report. The input table is never mutated; row maps are
// shared with the result.
//
// Column resolution is tolerant of naming drift: each predicate tries its
// alias chain against a case-insensitive column index built once for the
// whole application. A predicate with no matching column is skipped.
// Phases short-circuit as soon as the record set is empty.
func Apply(tbl *table.Table, mask *PostMask) (*table.Table, Report) {
	var report Report
	if tbl == nil {
		return table.New(), report
	}
	if mask.Len() == 0 {
		return tbl, report
	}

	idx := tbl.Index()
	out := tbl
	for _, phase := range applyPhases {
		for _, key := range phase {
			p := mask.Get(key)
			if p == nil {
				continue
			}
			filtered, applied := applyPredicate(out, idx, p)
			if !applied {
				report.Skipped++
				report.SkippedKeys = append(report.SkippedKeys, key)
				continue
			}
			report.Applied++
			out = filtered
			if out.NumRows() == 0 {
				sortKeys(report.SkippedKeys)
				return out, report
			}
		}
	}
	sortKeys(report.SkippedKeys)
	return out, report
}

func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}

// resolveColumn finds the actual column for a predicate key by walking its
// alias chain through the column index.
func resolveColumn(idx *table.ColumnIndex, key Key) (string, bool) {
	for _, candidate := range columnAliases[key] {
		if col, ok := idx.Resolve(candidate); ok {
			return col, true
		}
	}
	return "", false
}

// applyPredicate applies one predicate. The second return value reports
// whether the predicate could be applied at all; false means the target
// column (or derivation inputs) were absent and the record set is
// unchanged.
func applyPredicate(tbl *table.Table, idx *table.ColumnIndex, p Predicate) (*table.Table, bool) {
	switch pred := p.(type) {
	case *IDSetPredicate:
		col, ok := resolveColumn(idx, pred.Key())
		if !ok {
			return tbl, false
		}
		return tbl.Select(func(r table.Row) bool {
			id, ok := table.CanonicalID(r[col])
			if !ok {
				return false
			}
			_, hit := pred.IDs[id]
			return hit
		}), true

	case *ValueSetPredicate:
		col, ok := resolveColumn(idx, pred.Key())
		if !ok {
			return tbl, false
		}
		return tbl.Select(func(r table.Row) bool {
			return matchValueSet(pred, r[col])
		}), true

	case *TimeRangePredicate:
		col, ok := resolveColumn(idx, pred.Key())
		if !ok {
			return tbl, false
		}
		return tbl.Select(func(r table.Row) bool {
			ts, ok := table.AsTime(r[col])
			if !ok {
				return false
			}
			return inDateWindow(ts, pred.Start, pred.End)
		}), true

	case *NumberRangePredicate:
		if pred.Key() == KeyGameMinute {
			return applyGameMinute(tbl, idx, pred)
		}
		col, ok := resolveColumn(idx, pred.Key())
		if !ok {
			return tbl, false
		}
		return tbl.Select(func(r table.Row) bool {
			f, ok := table.AsNumber(r[col])
			return ok && inNumberRange(pred, f)
		}), true

	case *PatternPredicate:
		col, ok := resolveColumn(idx, pred.Key())
		if !ok {
			return tbl, false
		}
		pattern := strings.ToLower(pred.Pattern)
		return tbl.Select(func(r table.Row) bool {
			s, ok := table.AsString(r[col])
			return ok && strings.Contains(strings.ToLower(s), pattern)
		}), true

	case *NameListPredicate:
		col, ok := resolveColumn(idx, pred.Key())
		if !ok {
			return tbl, false
		}
		names := make([]string, len(pred.Names))
		for i, n := range pred.Names {
			names[i] = strings.ToLower(n)
		}
		return tbl.Select(func(r table.Row) bool {
			s, ok := table.AsString(r[col])
			if !ok {
				return false
			}
			cell := strings.ToLower(s)
			for _, name := range names {
				if strings.Contains(cell, name) {
					return true
				}
			}
			return false
		}), true

	case *FlagPredicate:
		if pred.Key() != KeyComplete {
			return tbl, false
		}
		return applyComplete(tbl, idx)

	default:
		return tbl, false
	}
}

// matchValueSet tests categorical membership. Numeric cells are matched by
// their canonical integer form so PERIOD cells stored as 4, 4.0 and "4"
// all hit a {4} set; string cells are folded to lower case. Home/away
// cells additionally accept the single-letter forms some scraped sources
// use.
func matchValueSet(pred *ValueSetPredicate, v any) bool {
	if f, ok := table.AsNumber(v); ok && f == float64(int64(f)) {
		if _, hit := pred.Values[strconv.FormatInt(int64(f), 10)]; hit {
			return true
		}
	}
	s, ok := table.AsString(v)
	if !ok {
		return false
	}
	cell := strings.ToLower(strings.TrimSpace(s))
	if _, hit := pred.Values[cell]; hit {
		return true
	}
	if pred.Key() == KeyHomeAway {
		switch cell {
		case "h":
			_, hit := pred.Values[string(Home)]
			return hit
		case "a", "road", "visitor":
			_, hit := pred.Values[string(Away)]
			return hit
		}
	}
	return false
}

// inDateWindow compares by calendar date in the cell's own location, so a
// timezone-aware column is measured against timezone-localized bounds
// rather than the bounds' UTC instants.
func inDateWindow(ts, start, end time.Time) bool {
	day := dateOrdinal(ts)
	return day >= dateOrdinal(start) && day <= dateOrdinal(end)
}

func dateOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func inNumberRange(pred *NumberRangePredicate, f float64) bool {
	if pred.Min != nil && f < *pred.Min {
		return false
	}
	if pred.Max != nil && f > *pred.Max {
		return false
	}
	return true
}

// applyGameMinute filters on the elapsed game minute. A ready-made minute
// column is preferred; otherwise the minute is derived from the period and
// the remaining game clock:
//
//	game_minute = (period-1)*periodLen + (periodLen - clock_seconds/60)
//
// with periodLen fixed at defaultPeriodMinutes. The derivation needs both
// a period column and a clock column; if neither path is available the
// predicate is skipped.
func applyGameMinute(tbl *table.Table, idx *table.ColumnIndex, pred *NumberRangePredicate) (*table.Table, bool) {
	if col, ok := resolveColumn(idx, KeyGameMinute); ok {
		return tbl.Select(func(r table.Row) bool {
			f, ok := table.AsNumber(r[col])
			return ok && inNumberRange(pred, f)
		}), true
	}

	periodCol, ok := resolveColumn(idx, KeyPeriod)
	if !ok {
		return tbl, false
	}
	var clockCol string
	for _, candidate := range clockAliases {
		if col, ok := idx.Resolve(candidate); ok {
			clockCol = col
			break
		}
	}
	if clockCol == "" {
		return tbl, false
	}

	return tbl.Select(func(r table.Row) bool {
		period, ok := table.AsNumber(r[periodCol])
		if !ok || period < 1 {
			return false
		}
		clockSeconds, ok := table.ClockSeconds(r[clockCol])
		if !ok {
			return false
		}
		minute := (period-1)*defaultPeriodMinutes +
			(defaultPeriodMinutes - clockSeconds/60)
		return inNumberRange(pred, minute)
	}), true
}

// applyComplete drops rows with a null in any identity column that exists
// in the record set. Applied only when at least one identity column is
// present; otherwise skipped.
func applyComplete(tbl *table.Table, idx *table.ColumnIndex) (*table.Table, bool) {
	var cols []string
	for _, key := range []Key{KeyGameID, KeyPlayerID, KeyTeamID, KeyOpponentTeamID} {
		if col, ok := resolveColumn(idx, key); ok {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return tbl, false
	}
	return tbl.Select(func(r table.Row) bool {
		for _, col := range cols {
			if table.IsNull(r[col]) {
				return false
			}
		}
		return true
	}), true
}
