// Package live implements the live candle streamer: one bidirectional
// gRPC subscription covering every watchlisted FIGI, writing each pushed
// candle straight into its own per-FIGI collection.
package live

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/rs/zerolog"

	"github.com/aristath/marketdata/internal/ingesterr"
	"github.com/aristath/marketdata/internal/normalize"
	"github.com/aristath/marketdata/internal/store"
	"github.com/aristath/marketdata/internal/tinkoff"
)

// StreamIO is the narrow surface of the brokerage's bidi stream this
// package depends on, so tests can supply a fake instead of a live gRPC
// connection. pb.MarketDataStreamService_MarketDataStreamClient satisfies
// it structurally.
type StreamIO interface {
	Send(*pb.MarketDataRequest) error
	Recv() (*pb.MarketDataResponse, error)
}

// Opener dials a fresh stream. Wraps internal/tinkoff.Client.OpenMarketDataStream.
type Opener func(ctx context.Context) (StreamIO, error)

// Streamer owns one subscription pass over a fixed FIGI set, reconnecting
// with bounded exponential backoff on stream termination.
type Streamer struct {
	open    Opener
	watch   store.WatchlistRepository
	repo    store.LiveRepository
	log     zerolog.Logger
	attempts int

	indexed sync.Map // figi -> struct{}, tracks per-process index bootstrap
}

// New builds a Streamer. reconnectAttempts bounds how many times Run opens
// the stream, the first connection included, before giving up and
// returning an error (config.LiveWindow's ReconnectAttempts).
func New(open Opener, watch store.WatchlistRepository, repo store.LiveRepository, reconnectAttempts int, log zerolog.Logger) *Streamer {
	return &Streamer{
		open:     open,
		watch:    watch,
		repo:     repo,
		log:      log.With().Str("pipeline", "live").Logger(),
		attempts: reconnectAttempts,
	}
}

// Run resolves the watchlist, opens the stream, subscribes every FIGI and
// receives until the stream terminates, reconnecting with exponential
// backoff up to the configured attempt bound. It returns once the bound is
// exhausted or ctx is cancelled; stream termination is fatal for this
// pipeline, so the caller should treat a non-nil, non-context-cancelled
// return as reason to report the pipeline dead.
func (s *Streamer) Run(ctx context.Context) error {
	figis, err := s.watch.EnabledFigis(ctx)
	if err != nil {
		return &ingesterr.RepositoryError{Kind: ingesterr.RepositoryConnection, Cause: err}
	}
	if len(figis) == 0 {
		s.log.Info().Msg("no enabled instruments in watchlist, nothing to stream")
		return nil
	}

	backoff := time.Second
	const maxBackoff = 30 * time.Second

	var lastErr error
	for attempt := 0; attempt < s.attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := s.runOnce(ctx, figis); err != nil {
			lastErr = err
			s.log.Error().Err(err).Int("attempt", attempt+1).Msg("stream terminated")

			if attempt+1 >= s.attempts {
				break
			}
			s.log.Info().Dur("backoff", backoff).Msg("reconnecting")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}
		// runOnce only returns nil if ctx was cancelled mid-receive.
		return ctx.Err()
	}

	return fmt.Errorf("live: exhausted %d reconnect attempts: %w", s.attempts, lastErr)
}

func (s *Streamer) runOnce(ctx context.Context, figis []string) error {
	stream, err := s.open(ctx)
	if err != nil {
		return &ingesterr.TransportError{Cause: err}
	}

	if err := stream.Send(tinkoff.SubscribeCandlesRequest(figis)); err != nil {
		return &ingesterr.TransportError{Cause: fmt.Errorf("subscribe: %w", err)}
	}

	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			return &ingesterr.TransportError{Cause: fmt.Errorf("stream closed by server")}
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return &ingesterr.TransportError{Cause: err}
		}

		candle := resp.GetCandle()
		if candle == nil {
			s.log.Debug().Msg("received non-candle payload, dropping")
			continue
		}

		if err := s.handleCandle(ctx, candle); err != nil {
			s.log.Error().Err(err).Str("figi", candle.GetFigi()).Msg("failed to store streamed candle")
		}
	}
}

func (s *Streamer) handleCandle(ctx context.Context, wire *pb.Candle) error {
	figi := wire.GetFigi()

	if _, loaded := s.indexed.LoadOrStore(figi, struct{}{}); !loaded {
		if err := s.repo.EnsureFigiIndex(ctx, figi); err != nil {
			s.log.Error().Err(err).Str("figi", figi).Msg("ensure figi index failed")
		}
	}

	candle := normalize.FromLiveCandle(wire)
	if err := s.repo.InsertCandle(ctx, figi, candle); err != nil {
		return &ingesterr.RepositoryError{Kind: ingesterr.RepositoryWrite, Cause: err}
	}
	return nil
}
