package flight

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GetFlightInfo returns dataset metadata and a ticket for a query.
//
// The descriptor path must contain exactly one element, the dataset id.
// The returned schema is advisory: it lists the dataset's sample columns
// as nullable strings, since actual column types vary by source and are
// only known once data is fetched.
func (s *Server) GetFlightInfo(ctx context.Context, desc *flight.FlightDescriptor) (*flight.FlightInfo, error) {
	if desc.GetType() != flight.DescriptorPATH {
		return nil, status.Error(codes.InvalidArgument, "descriptor must be PATH type")
	}
	path := desc.GetPath()
	if len(path) != 1 {
		return nil, status.Error(codes.InvalidArgument, "path must contain exactly one element: [dataset]")
	}
	datasetID := path[0]

	entry, err := s.querier.Registry().Get(datasetID)
	if err != nil {
		return nil, status.Errorf(codes.NotFound, "%v", err)
	}

	fields := make([]arrow.Field, len(entry.SampleColumns))
	for i, col := range entry.SampleColumns {
		fields[i] = arrow.Field{Name: col, Type: arrow.BinaryTypes.String, Nullable: true}
	}
	advisorySchema := arrow.NewSchema(fields, nil)

	ticket, err := EncodeTicket(datasetID, FilterParams{})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode ticket: %v", err)
	}

	endpoint := &flight.FlightEndpoint{
		Ticket: &flight.Ticket{Ticket: ticket},
	}
	if s.address != "" {
		endpoint.Location = []*flight.Location{{Uri: "grpc://" + s.address}}
	}

	s.logger.Debug("GetFlightInfo",
		"dataset", datasetID,
		"sample_columns", len(entry.SampleColumns),
	)

	return &flight.FlightInfo{
		Schema:           flight.SerializeSchema(advisorySchema, s.allocator),
		FlightDescriptor: desc,
		Endpoint:         []*flight.FlightEndpoint{endpoint},
		TotalRecords:     -1,
		TotalBytes:       -1,
	}, nil
}
