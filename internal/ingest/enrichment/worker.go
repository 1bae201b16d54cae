// Package enrichment implements the tracking-document enrichment worker:
// for every enabled FIGI in the tracking collection it looks the instrument up across the
// four catalog collections and materializes a denormalized snapshot into
// the tracking document.
package enrichment

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/aristath/marketdata/internal/domain"
	"github.com/aristath/marketdata/internal/ingesterr"
	"github.com/aristath/marketdata/internal/status"
	"github.com/aristath/marketdata/internal/store"
)

// instrumentTypeByCollection maps a catalog collection name to the
// singular instrument_type label written into the tracking document's data
// sub-document, matching domain.Instrument.Kind()'s variant names.
var instrumentTypeByCollection = map[string]string{
	store.CollShares:  "share",
	store.CollBonds:   "bond",
	store.CollEtfs:    "etf",
	store.CollFutures: "future",
}

// Worker runs one enrichment pass over every enabled tracking entry.
type Worker struct {
	tracking store.TrackingRepository
	catalog  store.CatalogRepository
	status   *status.Registry
	log      zerolog.Logger
	now      func() time.Time
}

// New builds a Worker over tracking/catalog/registry.
func New(tracking store.TrackingRepository, catalog store.CatalogRepository, registry *status.Registry, log zerolog.Logger) *Worker {
	return &Worker{
		tracking: tracking,
		catalog:  catalog,
		status:   registry,
		log:      log.With().Str("pipeline", "enrichment").Logger(),
		now:      time.Now,
	}
}

// RunOnce enriches every enabled, FIGI-bearing tracking document. A
// failure on one FIGI is logged but never aborts the others; the last
// failure is returned.
func (w *Worker) RunOnce(ctx context.Context) error {
	if err := w.status.SetUpdating(ctx, domain.FeedTracking); err != nil {
		w.log.Warn().Err(err).Msg("set_updating failed, continuing")
	}

	groups, err := w.tracking.EnabledGroupedByFigi(ctx)
	if err != nil {
		return &ingesterr.RepositoryError{Kind: ingesterr.RepositoryConnection, Cause: err}
	}

	var lastErr error
	for _, g := range groups {
		if err := w.enrichOne(ctx, g); err != nil {
			w.log.Error().Err(err).Str("figi", g.FIGI).Msg("enrichment failed")
			lastErr = err
		}
	}

	if lastErr == nil {
		if err := w.status.SetReady(ctx, domain.FeedTracking); err != nil {
			w.log.Warn().Err(err).Msg("set_ready failed")
		}
	}
	return lastErr
}

func (w *Worker) enrichOne(ctx context.Context, g store.TrackingGroup) error {
	original, err := w.tracking.FindByID(ctx, g.ID)
	if err != nil {
		return &ingesterr.RepositoryError{Kind: ingesterr.RepositoryConnection, Cause: err}
	}
	if original == nil {
		w.log.Warn().Str("figi", g.FIGI).Msg("tracking document vanished before enrichment")
		return nil
	}

	instrument, kind, err := w.findInstrument(ctx, g.FIGI)
	if err != nil {
		return err
	}
	if instrument == nil {
		w.log.Debug().Str("figi", g.FIGI).Msg("no catalog match found")
		return nil
	}

	data := bson.M{
		"figi":            g.FIGI,
		"ticker":          stringField(instrument, "ticker"),
		"name":            stringField(instrument, "name"),
		"instrument_type": kind,
		"currency":        stringField(instrument, "currency"),
		"lot":             int32Field(instrument, "lot"),
		"last_update":     w.now().UTC().Format("2006-01-02T15:04:05Z"),
	}
	if date := firstAvailableDate(instrument); date != "" {
		data["first_available_date"] = date
	}

	replacement := bson.M{}
	for k, v := range original {
		replacement[k] = v
	}
	replacement["data"] = data

	if err := w.tracking.ReplaceByID(ctx, g.ID, replacement); err != nil {
		return &ingesterr.RepositoryError{Kind: ingesterr.RepositoryWrite, Cause: err}
	}
	return nil
}

func (w *Worker) findInstrument(ctx context.Context, figi string) (map[string]interface{}, string, error) {
	for _, kind := range store.CatalogCollections {
		doc, err := w.catalog.FindByFigi(ctx, kind, figi)
		if err != nil {
			return nil, "", &ingesterr.RepositoryError{Kind: ingesterr.RepositoryConnection, Cause: err}
		}
		if doc != nil {
			return doc, instrumentTypeByCollection[kind], nil
		}
	}
	return nil, "", nil
}

func stringField(doc map[string]interface{}, key string) string {
	v, ok := doc[key]
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func int32Field(doc map[string]interface{}, key string) int32 {
	v, ok := doc[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int32:
		return n
	case int64:
		return int32(n)
	case int:
		return int32(n)
	case float64:
		return int32(n)
	}
	return 0
}

func firstAvailableDate(doc map[string]interface{}) string {
	v, ok := doc["first_1day_candle_date"]
	if !ok || v == nil {
		return ""
	}
	m, ok := v.(bson.M)
	if !ok {
		if asMap, ok2 := v.(map[string]interface{}); ok2 {
			m = asMap
		} else {
			return ""
		}
	}
	iso, _ := m["iso"].(string)
	return iso
}
