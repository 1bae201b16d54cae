package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aristath/marketdata/internal/domain"
)

// CatalogRepository is the narrow interface the reference refresher and
// enrichment worker use against one of the four instrument-kind
// collections. kind is one of CatalogCollections.
type CatalogRepository interface {
	// ReplaceAll deletes every document in kind's collection and inserts
	// docs, unless docs is empty (in which case nothing is deleted).
	ReplaceAll(ctx context.Context, kind string, docs []interface{}) error
	// FindByFigi searches kind's collection for figi, returning nil with
	// no error if not found.
	FindByFigi(ctx context.Context, kind string, figi string) (map[string]interface{}, error)
	// DistinctFigis returns every distinct figi value in kind's collection.
	DistinctFigis(ctx context.Context, kind string) ([]string, error)
}

// HistoricalRepository is the narrow interface the historical backfill
// pipeline uses.
type HistoricalRepository interface {
	EnsureIndexes(ctx context.Context) error
	InsertMany(ctx context.Context, candles []domain.HistoricalCandle) error
	AggregateMinMaxCount(ctx context.Context, figi string) (first, last, count int64, err error)
	LastStatus(ctx context.Context, figi string) (*domain.HistoryStatus, error)
	UpsertStatus(ctx context.Context, status domain.HistoryStatus) error
}

// LiveRepository is the narrow interface the live streamer uses. One
// instance is shared across all subscribed FIGIs; callers are responsible
// for calling EnsureFigiIndex at most meaningfully once per FIGI per
// process (internal/ingest/live does this with a sync.Map guard).
type LiveRepository interface {
	EnsureFigiIndex(ctx context.Context, figi string) error
	InsertCandle(ctx context.Context, figi string, candle domain.LiveCandle) error
}

// StatusRepository is the narrow interface internal/status builds the
// registry's business logic on top of.
type StatusRepository interface {
	CountDocuments(ctx context.Context) (int64, error)
	InsertInitialDocument(ctx context.Context, fields map[string]interface{}) error
	UpsertFields(ctx context.Context, fields map[string]interface{}) error
}

// FxRepository is the narrow interface the FX refresher uses.
type FxRepository interface {
	// Replace deletes every document in the currency_rates collection and
	// inserts doc, unless doc.Date == "" (the empty-cbrf edge case, in
	// which case nothing is deleted or inserted).
	Replace(ctx context.Context, doc domain.FxRates) error
}

// TrackingGroup is one row of the enabled-figi-grouped aggregation the
// enrichment worker starts from.
type TrackingGroup struct {
	ID   primitive.ObjectID
	FIGI string
}

// TrackingRepository is the narrow interface the enrichment worker uses.
type TrackingRepository interface {
	EnabledGroupedByFigi(ctx context.Context) ([]TrackingGroup, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (map[string]interface{}, error)
	ReplaceByID(ctx context.Context, id primitive.ObjectID, doc map[string]interface{}) error
}

// WatchlistRepository is the narrow interface the live streamer uses to
// resolve its initial subscription set.
type WatchlistRepository interface {
	EnabledFigis(ctx context.Context) ([]string, error)
}
