package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iudanet/fitsync/internal/client/api"
	"github.com/iudanet/fitsync/internal/client/auth"
	"github.com/iudanet/fitsync/internal/client/cli"
	"github.com/iudanet/fitsync/internal/client/iocli"
	"github.com/iudanet/fitsync/internal/client/manager"
	"github.com/iudanet/fitsync/internal/client/metrics"
	"github.com/iudanet/fitsync/internal/client/session"
	"github.com/iudanet/fitsync/internal/client/storage/boltdb"
	"github.com/iudanet/fitsync/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	version := fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit)
	err := cli.New(iocli.NewStdio(), build).WithVersion(version).Execute(ctx, os.Args[1:])
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// build собирает клиентский стек: локальное хранилище, API клиент, менеджеры и сессию
func build(cfg config.Client, logger *slog.Logger) (*cli.Deps, error) {
	local, err := boltdb.New(context.Background(), cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local storage: %w", err)
	}

	client := api.NewClient(cfg.ServerURL, api.WithTimeout(cfg.Timeout))
	authSvc := auth.NewAuthenticator(client, local, logger)

	// реестр клиента: метрики выводятся командой с флагом --metrics
	reg := prometheus.NewRegistry()
	managers := manager.NewSet(client, manager.Config{
		Logger:  logger,
		Metrics: metrics.New(reg),
		Strict:  cfg.Strict,
	})

	return &cli.Deps{
		Auth:    authSvc,
		Metrics: reg,
		Session: session.New(authSvc, managers, logger),
		Goals:   local,
		Close:   local.Close,
	}, nil
}
