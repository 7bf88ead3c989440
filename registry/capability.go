package registry

import (
	"fmt"
	"strings"
)

// CapabilityLevel grades how well a (league, dataset) pair can be served.
type CapabilityLevel string

const (
	// Full means the dataset is completely retrievable for the league.
	Full CapabilityLevel = "full"

	// Limited means the dataset is retrievable but with known gaps
	// (missing columns, partial seasons, delayed availability).
	Limited CapabilityLevel = "limited"

	// Unavailable means no backend serves the dataset for the league.
	Unavailable CapabilityLevel = "unavailable"

	// NotImplemented means a backend exists but no integration has been
	// written yet.
	NotImplemented CapabilityLevel = "not_implemented"
)

// ParseCapabilityLevel converts a string to a CapabilityLevel.
func ParseCapabilityLevel(s string) (CapabilityLevel, error) {
	switch CapabilityLevel(strings.ToLower(strings.TrimSpace(s))) {
	case Full:
		return Full, nil
	case Limited:
		return Limited, nil
	case Unavailable:
		return Unavailable, nil
	case NotImplemented:
		return NotImplemented, nil
	default:
		return "", fmt.Errorf("registry: unknown capability level %q", s)
	}
}

type capabilityKey struct {
	league  League
	dataset string
}

// SetCapability records a capability override for a (league, dataset) pair.
// Overrides are consulted before the default in CheckCapability.
// Part of the load phase; must not be called concurrently with reads.
func (r *Registry) SetCapability(league League, dataset string, level CapabilityLevel) {
	r.capabilities[capabilityKey{league, dataset}] = level
}

// CheckCapability returns the capability level for a (league, dataset) pair.
// An explicit override wins; otherwise the level defaults to Full when the
// dataset is registered for the league, and Unavailable when it is not.
func (r *Registry) CheckCapability(league League, dataset string) CapabilityLevel {
	if level, ok := r.capabilities[capabilityKey{league, dataset}]; ok {
		return level
	}
	entry, ok := r.entries[dataset]
	if !ok || !entry.ServesLeague(league) {
		return Unavailable
	}
	return Full
}

// alternativeCandidates is the fixed set scanned for suggested datasets when
// a league/dataset combination cannot be served.
var alternativeCandidates = []string{
	"schedule", "player_game", "team_game", "player_season", "team_season",
}

// ValidateLeagueDataset reports whether a dataset can be queried for a
// league. ok is true iff the dataset is registered for the league and its
// capability is Full or Limited. When ok is false, the message names the
// league, dataset, and reason, and suggests alternative datasets that are
// Full for the same league.
func (r *Registry) ValidateLeagueDataset(league League, dataset string) (bool, string) {
	entry, ok := r.entries[dataset]
	if !ok {
		return false, r.explain(league, dataset, fmt.Sprintf("dataset %q is not registered", dataset))
	}
	if !entry.ServesLeague(league) {
		return false, r.explain(league, dataset, fmt.Sprintf("dataset %q is not available for league %q", dataset, league))
	}

	switch level := r.CheckCapability(league, dataset); level {
	case Full:
		return true, ""
	case Limited:
		return true, fmt.Sprintf("dataset %q has limited coverage for league %q", dataset, league)
	case Unavailable:
		return false, r.explain(league, dataset, fmt.Sprintf("dataset %q is unavailable for league %q", dataset, league))
	case NotImplemented:
		return false, r.explain(league, dataset, fmt.Sprintf("dataset %q is not implemented for league %q", dataset, league))
	default:
		return false, r.explain(league, dataset, fmt.Sprintf("dataset %q has unknown capability %q for league %q", dataset, level, league))
	}
}

// CapabilityError reports a (league, dataset) combination that cannot be
// queried. The message includes alternative-dataset suggestions from
// ValidateLeagueDataset.
type CapabilityError struct {
	League  League
	Dataset string
	Message string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("registry: %s", e.Message)
}

// explain appends alternative-dataset suggestions to a refusal message.
func (r *Registry) explain(league League, dataset, reason string) string {
	var alternatives []string
	for _, candidate := range alternativeCandidates {
		if candidate == dataset {
			continue
		}
		entry, ok := r.entries[candidate]
		if !ok || !entry.ServesLeague(league) {
			continue
		}
		if r.CheckCapability(league, candidate) == Full {
			alternatives = append(alternatives, candidate)
		}
	}
	if len(alternatives) == 0 {
		return reason
	}
	return fmt.Sprintf("%s; datasets with full coverage for league %q: %s",
		reason, league, strings.Join(alternatives, ", "))
}
