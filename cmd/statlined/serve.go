package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	statline "github.com/statline-lab/statline-go"
	"github.com/statline-lab/statline-go/fetch"
	"github.com/statline-lab/statline-go/registry"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Flight server",
		Long: `Start the statline Arrow Flight server.

The server loads the builtin dataset registry, applies capability
overrides from the config, and serves every dataset mapped in
duckdb.relations.

Example:
  statlined serve --config statline.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to TOML config (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func serve(configPath string) error {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	reg := registry.Default()
	for _, o := range cfg.Capability {
		league := registry.League(o.League)
		if !league.Known() {
			return fmt.Errorf("config: unknown league %q", o.League)
		}
		lvl, err := registry.ParseCapabilityLevel(o.Level)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		reg.SetCapability(league, o.Dataset, lvl)
	}

	eng, err := statline.NewEngine(statline.EngineConfig{
		Registry: reg,
		Strict:   cfg.Strict,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	fetcher, err := fetch.OpenDuckDB(fetch.DuckDBConfig{
		Path:        cfg.DuckDB.Path,
		Relations:   cfg.DuckDB.Relations,
		DateColumns: cfg.DuckDB.DateColumns,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer fetcher.Close()

	for datasetID := range cfg.DuckDB.Relations {
		eng.RegisterFetcher(datasetID, fetcher)
	}

	serverConfig := statline.ServerConfig{
		Engine:         eng,
		Allocator:      nil,
		Logger:         logger,
		MaxMessageSize: cfg.MaxMessageSize,
		Address:        cfg.Address,
	}
	if cfg.Token != "" {
		serverConfig.Auth = statline.StaticToken(cfg.Token)
	}

	grpcServer := grpc.NewServer(statline.ServerOptions(serverConfig)...)
	if err := statline.NewServer(grpcServer, serverConfig); err != nil {
		return err
	}

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Listen, err)
	}

	// Graceful stop on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig.String())
		grpcServer.GracefulStop()
	}()

	logger.Info("statlined listening",
		"address", cfg.Listen,
		"datasets", len(cfg.DuckDB.Relations),
		"auth", cfg.Token != "",
	)
	return grpcServer.Serve(lis)
}
