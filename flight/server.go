// Package flight serves statline queries over Arrow Flight.
package flight

import (
	"context"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/grpc"

	"github.com/statline-lab/statline-go/filter"
	"github.com/statline-lab/statline-go/registry"
	"github.com/statline-lab/statline-go/table"
)

// Querier executes a filtered dataset query. The engine in the root
// package is the production implementation; tests supply fakes.
type Querier interface {
	// Query fetches a dataset and applies the compiled post-mask. The
	// report carries applied/skipped predicate counts for logging.
	Query(ctx context.Context, datasetID string, spec *filter.Spec) (*table.Table, filter.Report, error)

	// Registry returns the dataset registry backing the querier.
	Registry() *registry.Registry
}

// Server implements the Flight service handlers. Embeds BaseFlightServer
// for forward compatibility with protocol changes.
type Server struct {
	flight.BaseFlightServer

	querier   Querier
	allocator memory.Allocator
	logger    *slog.Logger
	address   string
}

// NewServer creates a Flight server over a querier. The address is the
// server's public address used in FlightEndpoint locations; empty omits
// the location.
func NewServer(querier Querier, allocator memory.Allocator, logger *slog.Logger, address string) *Server {
	return &Server{
		querier:   querier,
		allocator: allocator,
		logger:    logger,
		address:   address,
	}
}

// RegisterFlightServer registers the Flight service on a gRPC server.
func RegisterFlightServer(grpcServer *grpc.Server, flightServer *Server) {
	flight.RegisterFlightServiceServer(grpcServer, flightServer)
}
