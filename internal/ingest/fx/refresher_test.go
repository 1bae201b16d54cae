package fx

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/marketdata/internal/domain"
	"github.com/aristath/marketdata/internal/moex"
	"github.com/aristath/marketdata/internal/status"
)

type fakeStatusRepo struct {
	upserts []map[string]interface{}
}

func (f *fakeStatusRepo) CountDocuments(ctx context.Context) (int64, error) { return 1, nil }

func (f *fakeStatusRepo) InsertInitialDocument(ctx context.Context, fields map[string]interface{}) error {
	return nil
}

func (f *fakeStatusRepo) UpsertFields(ctx context.Context, fields map[string]interface{}) error {
	f.upserts = append(f.upserts, fields)
	return nil
}

type fakeFetcher struct {
	resp *moex.RatesResponse
	err  error
}

func (f *fakeFetcher) GetRates(ctx context.Context) (*moex.RatesResponse, error) {
	return f.resp, f.err
}

type fakeFxRepo struct {
	replaced *domain.FxRates
}

func (f *fakeFxRepo) Replace(ctx context.Context, doc domain.FxRates) error {
	f.replaced = &doc
	return nil
}

func buildRatesResponse() *moex.RatesResponse {
	columns := []string{
		"TODAY_DATE", "TODAY_VALTODAY", "TODAY_VALTODAY_USD",
		"CBRF_USD_LAST", "CBRF_USD_LASTCHANGEPRCNT", "CBRF_USD_TRADEDATE",
		"CBRF_EUR_LAST", "CBRF_EUR_LASTCHANGEPRCNT", "CBRF_EUR_TRADEDATE",
		"USDTOM_UTS_CLOSEPRICE", "USDTOM_UTS_CLOSEPRICETOPREVPRCN", "USDTOM_UTS_TRADEDATE",
	}
	row := []interface{}{
		"2024-06-10", 1000000.0, 10000.0,
		91.5, 0.5, "2024-06-10",
		98.2, -0.3, "2024-06-10",
		91.4, 0.4, "2024-06-10",
	}
	return &moex.RatesResponse{
		CBRF: moex.Table{Columns: columns, Data: [][]interface{}{row}},
		WapRates: moex.Table{
			Columns: []string{"secid", "price", "lasttoprevprice", "tradedate", "tradetime", "nominal", "decimals"},
			Data:    [][]interface{}{{"CNYRUB_TOM", 12.5, 0.2, "2024-06-10", "18:30:00", 1.0, 4.0}},
		},
	}
}

func TestRunOnce_FxRefreshMatchesLiteralScenario(t *testing.T) {
	fetcher := &fakeFetcher{resp: buildRatesResponse()}
	repo := &fakeFxRepo{}

	r := New(fetcher, repo, status.New(&fakeStatusRepo{}), zerolog.Nop())
	require.NoError(t, r.RunOnce(context.Background()))

	require.NotNil(t, repo.replaced)
	usd := repo.replaced.Currencies["USD"]
	require.NotNil(t, usd.CentralBank)
	assert.Equal(t, 91.5, usd.CentralBank.CurrentRate)
	assert.InDelta(t, 91.0448, usd.CentralBank.PreviousRate, 0.001)

	display := repo.replaced.DisplayInfo["USD"]
	assert.Equal(t, "рост", display.Trend)
}

func TestRunOnce_EmptyCbrfYieldsEmptyDate(t *testing.T) {
	fetcher := &fakeFetcher{resp: &moex.RatesResponse{
		CBRF:     moex.Table{Columns: []string{}, Data: [][]interface{}{}},
		WapRates: moex.Table{},
	}}
	repo := &fakeFxRepo{}

	r := New(fetcher, repo, status.New(&fakeStatusRepo{}), zerolog.Nop())
	require.NoError(t, r.RunOnce(context.Background()))

	require.NotNil(t, repo.replaced)
	assert.Equal(t, "", repo.replaced.Date)
}

func TestRunOnce_CnyUsesWapOnlyDisplay(t *testing.T) {
	fetcher := &fakeFetcher{resp: buildRatesResponse()}
	repo := &fakeFxRepo{}

	r := New(fetcher, repo, status.New(&fakeStatusRepo{}), zerolog.Nop())
	require.NoError(t, r.RunOnce(context.Background()))

	cny := repo.replaced.Currencies["CNY"]
	assert.Nil(t, cny.CentralBank)
	require.NotNil(t, cny.WapRate)
	assert.Equal(t, 12.5, cny.WapRate.CurrentRate)

	display := repo.replaced.DisplayInfo["CNY"]
	assert.Equal(t, "рост", display.Trend)
}
