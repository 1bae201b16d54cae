package historical

import (
	"context"
	"sync"
	"testing"
	"time"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/aristath/marketdata/internal/domain"
	"github.com/aristath/marketdata/internal/store"
)

// fakeFetcher returns a fixed candle set keyed by the requested day's date.
type fakeFetcher struct {
	byDay map[string][]*pb.HistoricCandle
}

func candleAt(t time.Time) *pb.HistoricCandle {
	return &pb.HistoricCandle{
		Time:   timestamppb.New(t),
		Open:   &pb.Quotation{},
		High:   &pb.Quotation{},
		Low:    &pb.Quotation{},
		Close:  &pb.Quotation{},
		Volume: 1,
	}
}

func (f *fakeFetcher) GetCandles(ctx context.Context, figi string, from, to time.Time) ([]*pb.HistoricCandle, error) {
	return f.byDay[from.Format("2006-01-02")], nil
}

type fakeShares struct {
	figis []string
}

func (f *fakeShares) ReplaceAll(ctx context.Context, kind string, docs []interface{}) error {
	return nil
}
func (f *fakeShares) FindByFigi(ctx context.Context, kind, figi string) (map[string]interface{}, error) {
	return nil, nil
}
func (f *fakeShares) DistinctFigis(ctx context.Context, kind string) ([]string, error) {
	return f.figis, nil
}

type fakeHistorical struct {
	mu       sync.Mutex
	docs     []domain.HistoricalCandle
	statuses map[string]domain.HistoryStatus
	indexed  bool
}

func newFakeHistorical() *fakeHistorical {
	return &fakeHistorical{statuses: map[string]domain.HistoryStatus{}}
}

func (f *fakeHistorical) EnsureIndexes(ctx context.Context) error {
	f.indexed = true
	return nil
}

func (f *fakeHistorical) InsertMany(ctx context.Context, candles []domain.HistoricalCandle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = append(f.docs, candles...)
	return nil
}

func (f *fakeHistorical) AggregateMinMaxCount(ctx context.Context, figi string) (int64, int64, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var first, last, count int64
	for _, d := range f.docs {
		if d.FIGI != figi {
			continue
		}
		if count == 0 || d.Time.Seconds < first {
			first = d.Time.Seconds
		}
		if d.Time.Seconds > last {
			last = d.Time.Seconds
		}
		count++
	}
	return first, last, count, nil
}

func (f *fakeHistorical) LastStatus(ctx context.Context, figi string) (*domain.HistoryStatus, error) {
	s, ok := f.statuses[figi]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (f *fakeHistorical) UpsertStatus(ctx context.Context, status domain.HistoryStatus) error {
	f.statuses[status.FIGI] = status
	return nil
}

var (
	_ store.CatalogRepository    = (*fakeShares)(nil)
	_ store.HistoricalRepository = (*fakeHistorical)(nil)
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRunPass_FirstRunFetchesFullWindow(t *testing.T) {
	today := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	day1 := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)

	day1Candles := make([]*pb.HistoricCandle, 10)
	for i := range day1Candles {
		day1Candles[i] = candleAt(day1.Add(time.Duration(i) * time.Minute))
	}
	day2Candles := make([]*pb.HistoricCandle, 5)
	for i := range day2Candles {
		day2Candles[i] = candleAt(day2.Add(time.Duration(i) * time.Minute))
	}

	fetcher := &fakeFetcher{byDay: map[string][]*pb.HistoricCandle{
		"2024-06-07": day1Candles,
		"2024-06-08": day2Candles,
	}}
	shares := &fakeShares{figis: []string{"F"}}
	repo := newFakeHistorical()

	b := New(fetcher, shares, repo, 2, 0, zerolog.Nop())
	b.now = fixedNow(today)

	require.NoError(t, b.RunPass(context.Background()))

	assert.Len(t, repo.docs, 15)
	status := repo.statuses["F"]
	assert.Equal(t, int64(15), status.CandleCount)
	assert.True(t, repo.indexed)
}

func TestRunPass_ResumeFetchesOnlyNewDay(t *testing.T) {
	firstRun := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	resumeRun := time.Date(2024, 6, 11, 12, 0, 0, 0, time.UTC)
	day1 := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)

	mk := func(day time.Time, n int) []*pb.HistoricCandle {
		out := make([]*pb.HistoricCandle, n)
		for i := range out {
			out[i] = candleAt(day.Add(time.Duration(i) * time.Minute))
		}
		return out
	}

	fetcher := &fakeFetcher{byDay: map[string][]*pb.HistoricCandle{
		"2024-06-07": mk(day1, 10),
		"2024-06-08": mk(day2, 5),
		"2024-06-09": mk(day3, 3),
	}}
	shares := &fakeShares{figis: []string{"F"}}
	repo := newFakeHistorical()

	b := New(fetcher, shares, repo, 2, 0, zerolog.Nop())
	b.now = fixedNow(firstRun)
	require.NoError(t, b.RunPass(context.Background()))
	require.Len(t, repo.docs, 15)

	// The resume pass's window is [2024-06-08, 2024-06-10) and the stored
	// status already covers 2024-06-08, so only 2024-06-09 is requested and
	// only its 3 candles are appended on top of the existing 15.
	b.now = fixedNow(resumeRun)
	require.NoError(t, b.RunPass(context.Background()))

	assert.Len(t, repo.docs, 18)
	status := repo.statuses["F"]
	assert.Equal(t, int64(18), status.CandleCount)
}

func TestRunPass_SkipsWhenOverlapping(t *testing.T) {
	fetcher := &fakeFetcher{byDay: map[string][]*pb.HistoricCandle{}}
	shares := &fakeShares{figis: []string{"F"}}
	repo := newFakeHistorical()

	b := New(fetcher, shares, repo, 2, 0, zerolog.Nop())
	b.now = fixedNow(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	b.running.Store(true)

	require.NoError(t, b.RunPass(context.Background()))
	assert.Empty(t, repo.docs)
}
