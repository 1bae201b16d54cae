// Package historical implements the day-sliced backfill pipeline: for
// every FIGI in the shares catalog it fetches the uncovered suffix of a rolling
// window of 1-minute candles and keeps a per-FIGI progress record.
package historical

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/rs/zerolog"

	"github.com/aristath/marketdata/internal/domain"
	"github.com/aristath/marketdata/internal/ingesterr"
	"github.com/aristath/marketdata/internal/normalize"
	"github.com/aristath/marketdata/internal/store"
)

// CandleFetcher is the narrow surface of internal/tinkoff.Client this
// package depends on, so tests can supply a fake instead of a live gRPC
// connection.
type CandleFetcher interface {
	GetCandles(ctx context.Context, figi string, from, to time.Time) ([]*pb.HistoricCandle, error)
}

// Backfiller runs one backfill pass over every FIGI in the shares catalog.
type Backfiller struct {
	client CandleFetcher
	shares store.CatalogRepository
	repo   store.HistoricalRepository
	log    zerolog.Logger

	maxDaysHistory int
	requestDelay   time.Duration
	now            func() time.Time

	indexOnce sync.Once
	running   atomic.Bool
}

// New builds a Backfiller. maxDaysHistory and requestDelayMs come from
// config.HistoricalWindow.
func New(client CandleFetcher, shares store.CatalogRepository, repo store.HistoricalRepository, maxDaysHistory, requestDelayMs int, log zerolog.Logger) *Backfiller {
	return &Backfiller{
		client:         client,
		shares:         shares,
		repo:           repo,
		log:            log.With().Str("pipeline", "historical").Logger(),
		maxDaysHistory: maxDaysHistory,
		requestDelay:   time.Duration(requestDelayMs) * time.Millisecond,
		now:            time.Now,
	}
}

// RunPass iterates every distinct FIGI in the shares catalog, backfilling
// each in turn. A failure on one FIGI is logged but never aborts the
// others; the last failure is returned. A pass already in progress causes this call to skip
// immediately and return nil, guarding against overlapping passes from the
// dedicated every-minute wrapper.
func (b *Backfiller) RunPass(ctx context.Context) error {
	if !b.running.CompareAndSwap(false, true) {
		b.log.Warn().Msg("backfill pass already running, skipping this tick")
		return nil
	}
	defer b.running.Store(false)

	runID := uuid.New().String()
	log := b.log.With().Str("run_id", runID).Logger()

	figis, err := b.shares.DistinctFigis(ctx, store.CollShares)
	if err != nil {
		return &ingesterr.RepositoryError{Kind: ingesterr.RepositoryConnection, Cause: err}
	}

	b.indexOnce.Do(func() {
		if err := b.repo.EnsureIndexes(ctx); err != nil {
			log.Error().Err(err).Msg("ensure indexes failed")
		}
	})

	log.Info().Int("figi_count", len(figis)).Msg("backfill pass starting")

	var lastErr error
	for _, figi := range figis {
		if err := b.backfillFigi(ctx, figi); err != nil {
			log.Error().Err(err).Str("figi", figi).Msg("backfill failed")
			lastErr = err
		}
	}
	return lastErr
}

func (b *Backfiller) backfillFigi(ctx context.Context, figi string) error {
	endDate := startOfDayUTC(b.now().UTC()).AddDate(0, 0, -1)
	startDate := endDate.AddDate(0, 0, -b.maxDaysHistory)

	status, err := b.repo.LastStatus(ctx, figi)
	if err != nil {
		return &ingesterr.RepositoryError{Kind: ingesterr.RepositoryConnection, Cause: err}
	}

	fetchStart := startDate
	if status != nil {
		if status.FirstCandleSeconds > startDate.Unix() {
			b.log.Warn().Str("figi", figi).Msg("prefix gap before first stored candle, not backfilled")
		}
		upToDate := status.FirstCandleSeconds <= startDate.Unix() && endDate.Unix() <= status.LastCandleSeconds
		if upToDate {
			return nil
		}
		lastPlusDay := time.Unix(status.LastCandleSeconds, 0).UTC().AddDate(0, 0, 1)
		fetchStart = startDate
		if lastPlusDay.After(fetchStart) {
			fetchStart = lastPlusDay
		}
		fetchStart = startOfDayUTC(fetchStart)
	}

	if !fetchStart.Before(endDate) {
		return nil
	}

	for day := fetchStart; day.Before(endDate); day = day.AddDate(0, 0, 1) {
		if err := b.fetchDay(ctx, figi, day); err != nil {
			b.log.Error().Err(err).Str("figi", figi).Str("day", day.Format("2006-01-02")).Msg("day fetch failed")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(b.requestDelay):
		}
	}

	return b.recomputeStatus(ctx, figi)
}

func (b *Backfiller) fetchDay(ctx context.Context, figi string, day time.Time) error {
	dayEnd := day.AddDate(0, 0, 1).Add(-time.Second)

	wires, err := b.client.GetCandles(ctx, figi, day, dayEnd)
	if err != nil {
		return &ingesterr.TransportError{Cause: err}
	}
	if len(wires) == 0 {
		return nil
	}

	candles := make([]domain.HistoricalCandle, 0, len(wires))
	for _, w := range wires {
		candles = append(candles, normalize.FromHistoricCandle(figi, w))
	}
	if err := b.repo.InsertMany(ctx, candles); err != nil {
		return &ingesterr.RepositoryError{Kind: ingesterr.RepositoryWrite, Cause: err}
	}
	return nil
}

func (b *Backfiller) recomputeStatus(ctx context.Context, figi string) error {
	first, last, count, err := b.repo.AggregateMinMaxCount(ctx, figi)
	if err != nil {
		return &ingesterr.RepositoryError{Kind: ingesterr.RepositoryConnection, Cause: err}
	}
	status := domain.HistoryStatus{
		FIGI:               figi,
		FirstCandleSeconds: first,
		LastCandleSeconds:  last,
		FirstDisplay:       normalize.MoscowDisplayTime(first),
		LastDisplay:        normalize.MoscowDisplayTime(last),
		CandleCount:        count,
		UpdatedAt:          normalize.MoscowDisplayTime(b.now().Unix()),
	}
	if err := b.repo.UpsertStatus(ctx, status); err != nil {
		return &ingesterr.RepositoryError{Kind: ingesterr.RepositoryWrite, Cause: err}
	}
	return nil
}

func startOfDayUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
