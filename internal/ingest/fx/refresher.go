// Package fx implements the currency-rate refresher: one HTTP fetch
// against the exchange's rates endpoint per cycle, transformed into the
// three-currency document the rest of the system reads.
package fx

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/aristath/marketdata/internal/domain"
	"github.com/aristath/marketdata/internal/ingesterr"
	"github.com/aristath/marketdata/internal/moex"
	"github.com/aristath/marketdata/internal/status"
	"github.com/aristath/marketdata/internal/store"
)

// RatesFetcher is the narrow surface of internal/moex.Client this package
// depends on, so tests can supply a fake instead of a live HTTP call.
type RatesFetcher interface {
	GetRates(ctx context.Context) (*moex.RatesResponse, error)
}

// Refresher runs one FX refresh pass.
type Refresher struct {
	client RatesFetcher
	repo   store.FxRepository
	status *status.Registry
	log    zerolog.Logger
}

// New builds a Refresher over client/repo/registry.
func New(client RatesFetcher, repo store.FxRepository, registry *status.Registry, log zerolog.Logger) *Refresher {
	return &Refresher{
		client: client,
		repo:   repo,
		status: registry,
		log:    log.With().Str("pipeline", "fx").Logger(),
	}
}

// RunOnce fetches, maps and replaces the currency_rates document.
func (r *Refresher) RunOnce(ctx context.Context) error {
	if err := r.status.SetUpdating(ctx, domain.FeedFxRates); err != nil {
		r.log.Warn().Err(err).Msg("set_updating failed, continuing")
	}

	resp, err := r.client.GetRates(ctx)
	if err != nil {
		return &ingesterr.TransportError{Cause: err}
	}

	rates := mapRates(resp)
	if rates.Date == "" {
		r.log.Warn().Msg("cbrf data empty, skipping replace")
	}

	if err := r.repo.Replace(ctx, rates); err != nil {
		return &ingesterr.RepositoryError{Kind: ingesterr.RepositoryWrite, Cause: err}
	}

	if err := r.status.SetReady(ctx, domain.FeedFxRates); err != nil {
		r.log.Warn().Err(err).Msg("set_ready failed")
	}
	return nil
}
