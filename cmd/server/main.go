// Package main is the entry point for the market-data ingestion service.
// It loads configuration, wires the transport/store/status/pipeline
// collaborators via internal/supervisor, serves the two HTTP health
// endpoints, and runs until SIGINT/SIGTERM triggers a graceful shutdown.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/marketdata/internal/config"
	"github.com/aristath/marketdata/internal/logging"
	"github.com/aristath/marketdata/internal/server"
	"github.com/aristath/marketdata/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logging.New(logging.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logging.New(logging.Config{Level: cfg.Log.Level, Pretty: cfg.LogPretty()})
	log.Info().Str("env", string(cfg.Env)).Msg("starting marketdata ingest service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sup, err := supervisor.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build supervisor")
	}

	srv := server.New(server.Config{
		Log:         log,
		DB:          sup.DB(),
		BindAddress: cfg.BindAddress,
		Port:        cfg.Port,
		DevMode:     cfg.Env != config.EnvProd,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Error().Err(err).Msg("http server stopped unexpectedly")
			stop()
		}
	}()

	if err := sup.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("supervisor exited unexpectedly")
	}

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server forced to shutdown")
	}

	if err := sup.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error closing supervisor collaborators")
	}

	log.Info().Msg("stopped")
}
