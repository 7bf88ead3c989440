package flight

import (
	"errors"

	"github.com/apache/arrow-go/v18/arrow/flight"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/statline-lab/statline-go/filter"
	"github.com/statline-lab/statline-go/registry"
)

// DoGet executes a dataset query and streams the result as Arrow record
// batches.
//
// The ticket must be encoded with EncodeTicket. The handler decodes the
// ticket into a filter spec, runs the query through the querier, and
// streams the filtered record set. Query errors map to gRPC status codes:
// unknown dataset to NotFound, capability refusals to FailedPrecondition,
// validation failures to InvalidArgument.
func (s *Server) DoGet(ticket *flight.Ticket, stream flight.FlightService_DoGetServer) error {
	ctx := stream.Context()

	ticketData, err := DecodeTicket(ticket.GetTicket())
	if err != nil {
		s.logger.Error("failed to decode ticket", "error", err)
		return status.Errorf(codes.InvalidArgument, "invalid ticket: %v", err)
	}

	spec, err := ticketData.Filter.ToSpec()
	if err != nil {
		s.logger.Error("failed to build spec from ticket",
			"dataset", ticketData.Dataset,
			"error", err,
		)
		return status.Errorf(codes.InvalidArgument, "invalid filter: %v", err)
	}

	s.logger.Debug("DoGet request",
		"dataset", ticketData.Dataset,
		"fields", spec.ActiveFields(),
	)

	tbl, report, err := s.querier.Query(ctx, ticketData.Dataset, spec)
	if err != nil {
		return queryStatus(ticketData.Dataset, err)
	}

	record, err := tbl.ToArrow(s.allocator)
	if err != nil {
		s.logger.Error("failed to convert result to arrow",
			"dataset", ticketData.Dataset,
			"error", err,
		)
		return status.Errorf(codes.Internal, "encode result: %v", err)
	}
	defer record.Release()

	select {
	case <-ctx.Done():
		return status.Error(codes.Canceled, "request cancelled")
	default:
	}

	writer := flight.NewRecordWriter(stream, ipc.WithSchema(record.Schema()))
	defer writer.Close()

	if err := writer.Write(record); err != nil {
		s.logger.Error("failed to write record batch",
			"dataset", ticketData.Dataset,
			"error", err,
		)
		return status.Errorf(codes.Internal, "stream result: %v", err)
	}

	s.logger.Debug("DoGet completed",
		"dataset", ticketData.Dataset,
		"rows", record.NumRows(),
		"predicates_applied", report.Applied,
		"predicates_skipped", report.Skipped,
	)

	return nil
}

// queryStatus maps engine errors to gRPC status codes.
func queryStatus(dataset string, err error) error {
	var notFound *registry.NotFoundError
	if errors.As(err, &notFound) {
		return status.Errorf(codes.NotFound, "dataset %q: %v", dataset, err)
	}
	var capErr *registry.CapabilityError
	if errors.As(err, &capErr) {
		return status.Error(codes.FailedPrecondition, capErr.Message)
	}
	var validationErr *filter.ValidationError
	if errors.As(err, &validationErr) {
		return status.Errorf(codes.InvalidArgument, "%v", err)
	}
	return status.Errorf(codes.Internal, "query %q: %v", dataset, err)
}
