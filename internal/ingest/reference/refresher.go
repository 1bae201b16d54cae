// Package reference implements the reference-catalog refresher: one
// snapshot-replace pass per instrument kind (shares, bonds, etfs,
// futures).
package reference

import (
	"context"
	"errors"
	"fmt"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/rs/zerolog"

	"github.com/aristath/marketdata/internal/domain"
	"github.com/aristath/marketdata/internal/ingesterr"
	"github.com/aristath/marketdata/internal/normalize"
	"github.com/aristath/marketdata/internal/status"
	"github.com/aristath/marketdata/internal/store"
)

// InstrumentLister is the narrow surface of internal/tinkoff.Client this
// package depends on, so tests can supply a fake instead of a live gRPC
// connection.
type InstrumentLister interface {
	ListShares(ctx context.Context) ([]*pb.Share, error)
	ListBonds(ctx context.Context) ([]*pb.Bond, error)
	ListEtfs(ctx context.Context) ([]*pb.Etf, error)
	ListFutures(ctx context.Context) ([]*pb.Future, error)
}

// kind bundles one instrument kind's fetch + decode step.
type kind struct {
	Name  string // also the feed name and the catalog collection name
	Fetch func(ctx context.Context) ([]interface{}, int, error)
}

// Refresher runs one refresh pass across every instrument kind.
type Refresher struct {
	client InstrumentLister
	repo   store.CatalogRepository
	status *status.Registry
	log    zerolog.Logger
	kinds  []kind
}

// New builds a Refresher over client/repo/registry.
func New(client InstrumentLister, repo store.CatalogRepository, registry *status.Registry, log zerolog.Logger) *Refresher {
	r := &Refresher{
		client: client,
		repo:   repo,
		status: registry,
		log:    log.With().Str("pipeline", "reference").Logger(),
	}
	r.kinds = []kind{
		{Name: domain.FeedShares, Fetch: r.fetchShares},
		{Name: domain.FeedBonds, Fetch: r.fetchBonds},
		{Name: domain.FeedEtfs, Fetch: r.fetchEtfs},
		{Name: domain.FeedFutures, Fetch: r.fetchFutures},
	}
	return r
}

// RunOnce runs one pass over every kind in order. A failure on one kind is
// logged but never aborts the others; the last failure is returned. An
// empty fetch (NoData) is informational and is not returned as a failure.
func (r *Refresher) RunOnce(ctx context.Context) error {
	var lastErr error
	for _, k := range r.kinds {
		if err := r.refreshKind(ctx, k); err != nil {
			var noData *ingesterr.NoData
			if errors.As(err, &noData) {
				continue
			}
			r.log.Error().Err(err).Str("kind", k.Name).Msg("kind refresh failed")
			lastErr = err
		}
	}
	return lastErr
}

func (r *Refresher) refreshKind(ctx context.Context, k kind) error {
	if err := r.status.SetUpdating(ctx, k.Name); err != nil {
		r.log.Warn().Err(err).Str("kind", k.Name).Msg("set_updating failed, continuing")
	}

	docs, decodeFailures, err := k.Fetch(ctx)
	if err != nil {
		return &ingesterr.TransportError{Cause: fmt.Errorf("%s: %w", k.Name, err)}
	}
	if decodeFailures > 0 {
		r.log.Warn().Str("kind", k.Name).Int("decode_failures", decodeFailures).Msg("skipped undecodable items")
	}

	if len(docs) == 0 {
		r.log.Info().Str("kind", k.Name).Msg("no data returned, status left unchanged")
		return &ingesterr.NoData{Source: k.Name}
	}

	if err := r.repo.ReplaceAll(ctx, k.Name, docs); err != nil {
		return &ingesterr.RepositoryError{Kind: ingesterr.RepositoryWrite, Cause: err}
	}

	if err := r.status.SetReady(ctx, k.Name); err != nil {
		r.log.Warn().Err(err).Str("kind", k.Name).Msg("set_ready failed")
	}
	return nil
}

func (r *Refresher) fetchShares(ctx context.Context) ([]interface{}, int, error) {
	wires, err := r.client.ListShares(ctx)
	if err != nil {
		return nil, 0, err
	}
	docs := make([]interface{}, 0, len(wires))
	failures := 0
	for _, w := range wires {
		d := normalize.FromShare(w)
		if d.Currency() == "" {
			failures++
			continue
		}
		docs = append(docs, d)
	}
	return docs, failures, nil
}

func (r *Refresher) fetchBonds(ctx context.Context) ([]interface{}, int, error) {
	wires, err := r.client.ListBonds(ctx)
	if err != nil {
		return nil, 0, err
	}
	docs := make([]interface{}, 0, len(wires))
	failures := 0
	for _, w := range wires {
		d := normalize.FromBond(w)
		if d.Currency() == "" {
			failures++
			continue
		}
		docs = append(docs, d)
	}
	return docs, failures, nil
}

func (r *Refresher) fetchEtfs(ctx context.Context) ([]interface{}, int, error) {
	wires, err := r.client.ListEtfs(ctx)
	if err != nil {
		return nil, 0, err
	}
	docs := make([]interface{}, 0, len(wires))
	failures := 0
	for _, w := range wires {
		d := normalize.FromEtf(w)
		if d.Currency() == "" {
			failures++
			continue
		}
		docs = append(docs, d)
	}
	return docs, failures, nil
}

func (r *Refresher) fetchFutures(ctx context.Context) ([]interface{}, int, error) {
	wires, err := r.client.ListFutures(ctx)
	if err != nil {
		return nil, 0, err
	}
	docs := make([]interface{}, 0, len(wires))
	failures := 0
	for _, w := range wires {
		d := normalize.FromFuture(w)
		if d.Currency() == "" {
			failures++
			continue
		}
		docs = append(docs, d)
	}
	return docs, failures, nil
}
