package statline

import (
	"errors"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/statline-lab/statline-go/auth"
	"github.com/statline-lab/statline-go/filter"
	"github.com/statline-lab/statline-go/registry"
)

// EngineConfig configures an Engine.
type EngineConfig struct {
	// Registry provides dataset entries and capability levels.
	// REQUIRED: MUST NOT be nil.
	Registry *registry.Registry

	// Resolver maps entity names to backend ids during compilation.
	// OPTIONAL: If nil, name filters stay in the post-mask's name channel.
	Resolver filter.Resolver

	// Strict makes validation reject unsupported filter fields instead of
	// downgrading them to warnings.
	// OPTIONAL: Default false (lenient).
	Strict bool

	// Logger for internal logging.
	// OPTIONAL: Uses slog.Default() if nil.
	Logger *slog.Logger
}

// ServerConfig configures the Flight server surface.
type ServerConfig struct {
	// Engine executes queries.
	// REQUIRED: MUST NOT be nil.
	Engine *Engine

	// Auth provides authentication logic.
	// OPTIONAL: If nil, no authentication (all requests allowed).
	Auth auth.Authenticator

	// Allocator for Arrow memory management.
	// OPTIONAL: Uses memory.DefaultAllocator if nil.
	Allocator memory.Allocator

	// Logger for internal logging.
	// OPTIONAL: Uses the engine's logger if nil.
	Logger *slog.Logger

	// MaxMessageSize sets the maximum gRPC message size in bytes.
	// OPTIONAL: If 0, uses the gRPC default (4MB). Large record sets
	// benefit from 16MB.
	MaxMessageSize int

	// Address is the server's public address (e.g. "localhost:50051"),
	// used in FlightEndpoint locations.
	// OPTIONAL: If empty, endpoints carry no location URI.
	Address string
}

// Standard errors returned by the statline package.
var (
	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNoFetcher indicates no fetcher is registered for a dataset.
	ErrNoFetcher = errors.New("no fetcher registered for dataset")

	// ErrUnauthorized indicates authentication failed. Return this from
	// auth validation functions for invalid tokens.
	ErrUnauthorized = errors.New("unauthorized")
)
