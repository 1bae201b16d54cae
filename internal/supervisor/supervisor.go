// Package supervisor wires every collaborator (transports, store,
// repositories, status registry, pipelines) and owns their lifecycle:
// staged construction with cleanup on error, then one goroutine per
// enabled pipeline until the root context is cancelled: a four-stage
// (transport/store/status/pipeline) build where each stage's failure
// unwinds everything opened by the stages before it.
package supervisor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/marketdata/internal/config"
	"github.com/aristath/marketdata/internal/ingest/enrichment"
	"github.com/aristath/marketdata/internal/ingest/fx"
	"github.com/aristath/marketdata/internal/ingest/historical"
	"github.com/aristath/marketdata/internal/ingest/live"
	"github.com/aristath/marketdata/internal/ingest/reference"
	"github.com/aristath/marketdata/internal/moex"
	"github.com/aristath/marketdata/internal/pipeline"
	"github.com/aristath/marketdata/internal/status"
	"github.com/aristath/marketdata/internal/store"
	"github.com/aristath/marketdata/internal/tinkoff"
)

// ShutdownGrace bounds how long Run waits for pipeline goroutines to
// return once its context is cancelled before giving up on them.
const ShutdownGrace = 10 * time.Second

// Supervisor owns every long-lived collaborator built by Build and the
// pipeline goroutines started by Run.
type Supervisor struct {
	log zerolog.Logger

	tinkoff *tinkoff.Client
	db      *store.DB

	status *status.Registry

	runners []namedRunner
	live    *live.Streamer
}

type namedRunner struct {
	name   string
	runner *pipeline.Runner
}

// Build performs the staged wiring: transports, store, repositories,
// status registry, pipelines. Any stage failure closes everything
// already opened and returns the error.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Supervisor, error) {
	tinkoffClient, err := tinkoff.Dial(tinkoff.Config{
		Domain:            cfg.Tinkoff.Domain,
		Token:             cfg.Tinkoff.Token,
		Timeout:           time.Duration(cfg.Tinkoff.TimeoutSeconds) * time.Second,
		KeepaliveInterval: time.Duration(cfg.Tinkoff.KeepaliveSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("supervisor: dial tinkoff: %w", err)
	}

	moexClient := moex.New()

	db, err := store.Connect(ctx, cfg.MongoURL)
	if err != nil {
		_ = tinkoffClient.Close()
		return nil, fmt.Errorf("supervisor: connect store: %w", err)
	}

	catalog := store.NewCatalog(db)
	hist := store.NewHistorical(db)
	liveRepo := store.NewLive(db)
	statusRepo := store.NewStatus(db)
	fxRepo := store.NewFx(db)
	tracking := store.NewTracking(db)
	watchlist := store.NewWatchlist(db)

	registry := status.New(statusRepo)
	if err := registry.EnsureInitialized(ctx); err != nil {
		_ = db.Close(ctx)
		_ = tinkoffClient.Close()
		return nil, fmt.Errorf("supervisor: ensure status initialized: %w", err)
	}

	s := &Supervisor{
		log:     log,
		tinkoff: tinkoffClient,
		db:      db,
		status:  registry,
	}

	referenceRefresher := reference.New(tinkoffClient, catalog, registry, log)
	s.addRunner("reference", cfg.Pipelines.Reference, referenceRefresher.RunOnce)

	backfiller := historical.New(tinkoffClient, catalog, hist,
		cfg.Pipelines.Historical.MaxDaysHistory, cfg.Pipelines.Historical.RequestDelayMs, log)
	s.addRunner("historical", cfg.Pipelines.Historical.PipelineWindow, backfiller.RunPass)

	fxRefresher := fx.New(moexClient, fxRepo, registry, log)
	s.addRunner("fx", cfg.Pipelines.Fx, fxRefresher.RunOnce)

	enricher := enrichment.New(tracking, catalog, registry, log)
	s.addRunner("enrichment", cfg.Pipelines.Enrichment, enricher.RunOnce)

	if cfg.Pipelines.Live.Enabled {
		s.live = live.New(
			func(ctx context.Context) (live.StreamIO, error) { return tinkoffClient.OpenMarketDataStream(ctx) },
			watchlist, liveRepo, cfg.Pipelines.Live.ReconnectAttempts, log,
		)
	}

	return s, nil
}

// addRunner wraps run in an internal/pipeline.Runner and records it, if
// w.Enabled. Disabled pipelines are simply never started.
func (s *Supervisor) addRunner(name string, w config.PipelineWindow, run pipeline.RunFunc) {
	if !w.Enabled {
		s.log.Info().Str("pipeline", name).Msg("disabled, not starting")
		return
	}
	predicate, err := config.NewWindowPredicate(w)
	if err != nil {
		s.log.Error().Err(err).Str("pipeline", name).Msg("invalid window, not starting")
		return
	}
	runner := pipeline.NewRunner(pipeline.Config{
		Name:     name,
		Interval: time.Duration(w.IntervalSeconds) * time.Second,
		Window:   predicate.IsUpdateTime,
		Log:      s.log,
	}, run)
	s.runners = append(s.runners, namedRunner{name: name, runner: runner})
}

// Run starts every enabled pipeline in its own goroutine and blocks until
// ctx is cancelled, then waits up to ShutdownGrace for them to return.
func (s *Supervisor) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	for _, nr := range s.runners {
		nr := nr
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := nr.runner.Run(ctx); err != nil && ctx.Err() == nil {
				s.log.Error().Err(err).Str("pipeline", nr.name).Msg("pipeline runner exited unexpectedly")
			}
		}()
	}

	if s.live != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.live.Run(ctx); err != nil && ctx.Err() == nil {
				s.log.Error().Err(err).Str("pipeline", "live").Msg("live streamer exited unexpectedly")
			}
		}()
	}

	<-ctx.Done()
	s.log.Info().Msg("shutdown signal received, waiting for pipelines to stop")

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info().Msg("all pipelines stopped")
	case <-time.After(ShutdownGrace):
		s.log.Warn().Msg("shutdown grace period exceeded, exiting anyway")
	}

	return ctx.Err()
}

// Close releases the transport and store collaborators. Called once
// after Run returns.
func (s *Supervisor) Close(ctx context.Context) error {
	var errs []error
	if err := s.db.Close(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.tinkoff.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("supervisor: close: %v", errs)
	}
	return nil
}

// DB exposes the store handle for the HTTP health check.
func (s *Supervisor) DB() *store.DB {
	return s.db
}
