// Package statline normalizes sports-statistics queries and serves them
// over Arrow Flight.
//
// The core pipeline is: a canonical filter specification is validated
// against the dataset registry, compiled into backend-native pushdown
// parameters plus a client-side post-mask, executed through a per-dataset
// Fetcher, and finally re-filtered by the post-mask. Pushdown is an
// optimization; the post-mask is the correctness contract, so a fetcher
// that ignores every parameter still yields correct results.
//
// # Quick start
//
// Serve the builtin datasets from a DuckDB file:
//
//	eng := statline.NewEngine(statline.EngineConfig{
//	    Registry: registry.Default(),
//	})
//	fetcher, _ := fetch.OpenDuckDB(fetch.DuckDBConfig{
//	    Path:      "stats.db",
//	    Relations: map[string]string{"schedule": "games"},
//	})
//	eng.RegisterFetcher("schedule", fetcher)
//
//	grpcServer := grpc.NewServer()
//	_ = statline.NewServer(grpcServer, statline.ServerConfig{Engine: eng})
//	lis, _ := net.Listen("tcp", ":50051")
//	grpcServer.Serve(lis)
//
// For embedded use skip the server entirely and call Engine.Query, or go
// lower still and use filter.Compile plus filter.Apply directly.
package statline
