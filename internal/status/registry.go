// Package status owns the single status document in market_data._status
// that every pipeline reports its lifecycle against.
package status

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/marketdata/internal/domain"
	"github.com/aristath/marketdata/internal/store"
)

var moscow = time.FixedZone("MSK", 3*60*60)

// Registry is the cooperative, advisory per-feed status tracker. Errors are
// never swallowed: every method returns them to the caller, who records and
// continues.
type Registry struct {
	repo store.StatusRepository
}

// New builds a Registry over repo.
func New(repo store.StatusRepository) *Registry {
	return &Registry{repo: repo}
}

// EnsureInitialized seeds the status document on first access, setting
// initialized_at and every known feed to not_started. Called once by the
// supervisor before pipelines start.
func (r *Registry) EnsureInitialized(ctx context.Context) error {
	n, err := r.repo.CountDocuments(ctx)
	if err != nil {
		return fmt.Errorf("status: ensure initialized: %w", err)
	}
	if n > 0 {
		return nil
	}

	fields := map[string]interface{}{
		"initialized_at": nowMoscow(),
	}
	for _, feed := range domain.AllFeeds {
		fields[feed+"_status"] = string(domain.FeedNotStarted)
	}
	if err := r.repo.InsertInitialDocument(ctx, fields); err != nil {
		return fmt.Errorf("status: insert initial: %w", err)
	}
	return nil
}

// SetUpdating marks feed as updating.
func (r *Registry) SetUpdating(ctx context.Context, feed string) error {
	return r.setStatus(ctx, feed, domain.FeedUpdating)
}

// SetReady marks feed as ready.
func (r *Registry) SetReady(ctx context.Context, feed string) error {
	return r.setStatus(ctx, feed, domain.FeedReady)
}

func (r *Registry) setStatus(ctx context.Context, feed string, value domain.FeedStatusValue) error {
	fields := map[string]interface{}{
		feed + "_status":     string(value),
		feed + "_update_at": nowMoscow(),
	}
	if err := r.repo.UpsertFields(ctx, fields); err != nil {
		return fmt.Errorf("status: set %s=%s: %w", feed, value, err)
	}
	return nil
}

// nowMoscow formats the current instant "dd.MM.yyyy HH:mm:ss" in
// Europe/Moscow.
func nowMoscow() string {
	return time.Now().In(moscow).Format("02.01.2006 15:04:05")
}
