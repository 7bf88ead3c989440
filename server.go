package statline

import (
	"fmt"
	"log/slog"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"google.golang.org/grpc"

	"github.com/statline-lab/statline-go/auth"
	"github.com/statline-lab/statline-go/flight"
)

// NewServer registers the statline Flight service handlers on the provided
// gRPC server.
//
// It does NOT start the server; the caller controls the lifecycle via
// grpcServer.Serve(). For authentication, build the gRPC server from
// ServerOptions:
//
//	config := statline.ServerConfig{
//	    Engine: eng,
//	    Auth:   statline.BearerAuth(validateToken),
//	}
//	grpcServer := grpc.NewServer(statline.ServerOptions(config)...)
//	err := statline.NewServer(grpcServer, config)
func NewServer(grpcServer *grpc.Server, config ServerConfig) error {
	if config.Engine == nil {
		return fmt.Errorf("%w: engine is required", ErrInvalidConfig)
	}

	allocator := config.Allocator
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}
	logger := config.Logger
	if logger == nil {
		logger = config.Engine.logger
	}
	if logger == nil {
		logger = slog.Default()
	}

	flightServer := flight.NewServer(config.Engine, allocator, logger, config.Address)
	flight.RegisterFlightServer(grpcServer, flightServer)

	logger.Info("statline Flight server registered",
		"datasets", len(config.Engine.Registry().IDs()),
		"has_auth", config.Auth != nil,
		"max_message_size", config.MaxMessageSize,
	)
	return nil
}

// ServerOptions returns gRPC server options carrying the auth interceptors
// and message-size limits from the config. Use when constructing the gRPC
// server that NewServer registers on.
func ServerOptions(config ServerConfig) []grpc.ServerOption {
	var opts []grpc.ServerOption
	if config.Auth != nil {
		opts = append(opts,
			grpc.UnaryInterceptor(auth.UnaryServerInterceptor(config.Auth)),
			grpc.StreamInterceptor(auth.StreamServerInterceptor(config.Auth)),
		)
	}
	if config.MaxMessageSize > 0 {
		opts = append(opts,
			grpc.MaxRecvMsgSize(config.MaxMessageSize),
			grpc.MaxSendMsgSize(config.MaxMessageSize),
		)
	}
	return opts
}
