package statline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/statline-lab/statline-go/filter"
	"github.com/statline-lab/statline-go/internal/recovery"
	"github.com/statline-lab/statline-go/registry"
	"github.com/statline-lab/statline-go/table"
)

// Fetcher retrieves raw rows for a dataset. Fetchers receive the compiled
// pushdown parameters and may honor all, some, or none of them; the
// engine's post-mask guarantees the final result either way.
// Implementations MUST be goroutine-safe.
type Fetcher interface {
	Fetch(ctx context.Context, datasetID string, pushdown filter.Pushdown) (*table.Table, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, datasetID string, pushdown filter.Pushdown) (*table.Table, error)

func (f FetcherFunc) Fetch(ctx context.Context, datasetID string, pushdown filter.Pushdown) (*table.Table, error) {
	return f(ctx, datasetID, pushdown)
}

// Engine runs the full query pipeline: validate, capability gate, compile,
// fetch, post-mask. Fetchers are registered per dataset; one fetcher may
// serve several datasets.
type Engine struct {
	registry *registry.Registry
	resolver filter.Resolver
	strict   bool
	logger   *slog.Logger

	mu       sync.RWMutex
	fetchers map[string]Fetcher
}

// NewEngine creates an engine from the config.
func NewEngine(cfg EngineConfig) (*Engine, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("%w: registry is required", ErrInvalidConfig)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		registry: cfg.Registry,
		resolver: cfg.Resolver,
		strict:   cfg.Strict,
		logger:   logger,
		fetchers: make(map[string]Fetcher),
	}, nil
}

// Registry returns the engine's dataset registry.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// RegisterFetcher binds a fetcher to a dataset id, replacing any previous
// binding.
func (e *Engine) RegisterFetcher(datasetID string, f Fetcher) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fetchers[datasetID] = f
}

func (e *Engine) fetcher(datasetID string) (Fetcher, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	f, ok := e.fetchers[datasetID]
	return f, ok
}

// Query runs a spec against a dataset.
//
// Validation warnings are logged, not returned; a warned filter still
// takes effect through the post-mask wherever the data allows it. The
// returned report carries the post-mask's applied/skipped counts so
// callers can detect silently-ineffective filters.
func (e *Engine) Query(ctx context.Context, datasetID string, spec *filter.Spec) (*table.Table, filter.Report, error) {
	var report filter.Report

	warnings, err := filter.Validate(e.registry, datasetID, spec, e.strict)
	if err != nil {
		return nil, report, err
	}
	for _, w := range warnings {
		e.logger.Warn("filter validation warning",
			"dataset", datasetID,
			"field", w.Field,
			"message", w.Message,
		)
	}

	if league, ok := spec.League(); ok {
		ok, msg := e.registry.ValidateLeagueDataset(league, datasetID)
		if !ok {
			return nil, report, &registry.CapabilityError{
				League:  league,
				Dataset: datasetID,
				Message: msg,
			}
		}
		if msg != "" {
			e.logger.Warn("limited dataset coverage",
				"dataset", datasetID,
				"league", league,
				"message", msg,
			)
		}
	}

	q := filter.Compile(datasetID, spec, e.safeResolver())

	fetcher, ok := e.fetcher(datasetID)
	if !ok {
		return nil, report, fmt.Errorf("%w: %q", ErrNoFetcher, datasetID)
	}

	tbl, err := recovery.Value(e.logger, "fetch", func() (*table.Table, error) {
		return fetcher.Fetch(ctx, datasetID, q.Pushdown)
	})
	if err != nil {
		return nil, report, fmt.Errorf("fetch dataset %q: %w", datasetID, err)
	}

	out, report := filter.Apply(tbl, q.Mask)
	if report.Skipped > 0 {
		e.logger.Warn("post-mask predicates skipped",
			"dataset", datasetID,
			"query_id", q.Meta.QueryID,
			"skipped_keys", report.SkippedKeys,
		)
	}
	e.logger.Debug("query completed",
		"dataset", datasetID,
		"query_id", q.Meta.QueryID,
		"rows_fetched", tbl.NumRows(),
		"rows_returned", out.NumRows(),
		"predicates_applied", report.Applied,
	)

	return out, report, nil
}

var errNotResolved = errors.New("not resolved")

// safeResolver wraps the configured resolver with panic recovery. A panic
// in the user hook behaves like a failed resolution: the name stays in
// the post-mask's name channel.
func (e *Engine) safeResolver() filter.Resolver {
	if e.resolver == nil {
		return nil
	}
	return func(name, kind string, league registry.League) (int64, bool) {
		id, err := recovery.Value(e.logger, "resolver", func() (int64, error) {
			rid, ok := e.resolver(name, kind, league)
			if !ok {
				return 0, errNotResolved
			}
			return rid, nil
		})
		return id, err == nil
	}
}
