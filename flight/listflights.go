package flight

import (
	"github.com/apache/arrow-go/v18/arrow/flight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/statline-lab/statline-go/internal/serialize"
)

// ListFlights returns the dataset registry as a compressed Arrow IPC
// listing so clients can discover datasets without executing queries.
// The criteria parameter is ignored; all datasets are returned.
func (s *Server) ListFlights(criteria *flight.Criteria, stream flight.FlightService_ListFlightsServer) error {
	listing, err := serialize.Datasets(s.querier.Registry(), s.allocator)
	if err != nil {
		s.logger.Error("failed to serialize dataset listing", "error", err)
		return status.Errorf(codes.Internal, "serialize listing: %v", err)
	}

	compressed, err := serialize.CompressListing(listing)
	if err != nil {
		s.logger.Error("failed to compress dataset listing", "error", err)
		return status.Errorf(codes.Internal, "compress listing: %v", err)
	}

	s.logger.Debug("dataset listing serialized",
		"uncompressed_bytes", len(listing),
		"compressed_bytes", len(compressed),
	)

	info := &flight.FlightInfo{
		FlightDescriptor: &flight.FlightDescriptor{
			Type: flight.DescriptorCMD,
			Cmd:  []byte("ListDatasets"),
		},
		Endpoint: []*flight.FlightEndpoint{
			{Ticket: &flight.Ticket{Ticket: compressed}},
		},
		TotalRecords: -1,
		TotalBytes:   int64(len(compressed)),
	}

	if err := stream.Send(info); err != nil {
		s.logger.Error("failed to send dataset listing", "error", err)
		return status.Errorf(codes.Internal, "send listing: %v", err)
	}
	return nil
}
