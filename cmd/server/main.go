package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/iudanet/fitsync/internal/config"
	"github.com/iudanet/fitsync/internal/server"
	"github.com/iudanet/fitsync/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCommand().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "fitsync-server",
		Short:        "Reference fitsync backend",
		Version:      fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}
	config.ServerFlags(cmd.Flags())
	return cmd
}

func run(cmd *cobra.Command) error {
	ctx := cmd.Context()

	v := config.New()
	if err := config.Bind(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.LoadServer(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel, true)
	if err != nil {
		return err
	}

	store, err := sqlite.New(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return server.New(cfg, store, logger, reg, Version).Run(ctx)
}
