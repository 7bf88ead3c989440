package filter

import (
	"fmt"
	"strings"

	"github.com/statline-lab/statline-go/registry"
)

// Warning is a non-fatal validation finding. Lenient validation returns
// warnings where strict validation would return an error.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// ValidationError is a fatal validation finding.
type ValidationError struct {
	Dataset string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("filter: dataset %q, field %q: %s", e.Dataset, e.Field, e.Message)
}

// leagueRestrictions maps a league to filter fields its backends cannot
// honor natively. An active restricted field is a warning, never an error:
// the post-mask still applies the predicate client-side, so behavior
// degrades to post-mask-only rather than failing.
var leagueRestrictions = map[registry.League][]string{
	registry.International: {FieldVenue, FieldLastNGames, FieldSeasonType},
	registry.EuroBasket:    {FieldVenue},
	registry.NCAA:          {FieldPerMode, FieldLastNGames},
}

// fieldDependencies maps a field to the fields that make it meaningful.
// The dependent field active without any prerequisite active is a warning.
var fieldDependencies = map[string][]string{
	FieldLastNGames: {FieldTeams, FieldPlayers},
	FieldOpponents:  {FieldTeams},
}

// fieldConflicts lists mutually exclusive field pairs. When both are
// active the first field wins by convention and the second is warned
// about; neither is dropped here (resolution is the fetcher's decision).
var fieldConflicts = [][2]string{
	{FieldGameIDs, FieldDateRange},
	{FieldGameIDs, FieldLastNGames},
}

// Validate checks a Spec against a dataset's registry entry.
//
// The returned warnings cover: active fields outside the dataset's
// supported set (lenient mode only), league-restricted fields, dependency
// violations, and conflicting field pairs. Errors are returned for unknown
// datasets, for unsupported fields in strict mode, and, regardless of
// mode, for datasets whose mandatory field is absent (a dataset that
// requires a game id has no sensible pushdown or post-mask fallback).
func Validate(reg *registry.Registry, datasetID string, spec *Spec, strict bool) ([]Warning, error) {
	entry, err := reg.Get(datasetID)
	if err != nil {
		return nil, err
	}

	if entry.RequiresGameID && !spec.fieldActive(FieldGameIDs) {
		return nil, &ValidationError{
			Dataset: datasetID,
			Field:   FieldGameIDs,
			Message: "dataset requires explicit game ids",
		}
	}

	var warnings []Warning
	active := spec.ActiveFields()

	for _, field := range active {
		if entry.Supports(field) {
			continue
		}
		msg := fmt.Sprintf("not supported by dataset %q (supported: %s)",
			datasetID, strings.Join(entry.SupportedFilters, ", "))
		if strict {
			return nil, &ValidationError{Dataset: datasetID, Field: field, Message: msg}
		}
		warnings = append(warnings, Warning{Field: field, Message: msg})
	}

	if league, ok := spec.League(); ok {
		restricted := leagueRestrictions[league]
		for _, field := range active {
			for _, r := range restricted {
				if field == r {
					warnings = append(warnings, Warning{
						Field: field,
						Message: fmt.Sprintf("league %q backends cannot honor this filter natively; it will be applied client-side only", league),
					})
				}
			}
		}
	}

	for _, field := range active {
		prereqs, ok := fieldDependencies[field]
		if !ok {
			continue
		}
		satisfied := false
		for _, p := range prereqs {
			if spec.fieldActive(p) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			warnings = append(warnings, Warning{
				Field: field,
				Message: fmt.Sprintf("only meaningful together with one of: %s",
					strings.Join(prereqs, ", ")),
			})
		}
	}

	for _, pair := range fieldConflicts {
		if spec.fieldActive(pair[0]) && spec.fieldActive(pair[1]) {
			warnings = append(warnings, Warning{
				Field: pair[1],
				Message: fmt.Sprintf("conflicts with %q; %s takes precedence and %s will be ignored by convention",
					pair[0], pair[0], pair[1]),
			})
		}
	}

	return warnings, nil
}
