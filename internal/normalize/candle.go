package normalize

import (
	pb "github.com/russianinvestments/invest-api-go-sdk/proto"

	"github.com/aristath/marketdata/internal/domain"
)

// FromHistoricCandle converts a wire HistoricCandle, fetched by the
// historical backfill for a given FIGI, into a stored domain candle with
// its Moscow-local display rendering.
func FromHistoricCandle(figi string, c *pb.HistoricCandle) domain.HistoricalCandle {
	ts := c.GetTime()
	return domain.HistoricalCandle{
		CandleCore: domain.CandleCore{
			FIGI:   figi,
			Volume: c.GetVolume(),
			Open:   FromQuotation(c.GetOpen()),
			High:   FromQuotation(c.GetHigh()),
			Low:    FromQuotation(c.GetLow()),
			Close:  FromQuotation(c.GetClose()),
			Time:   FromTimestamp(ts.GetSeconds(), ts.GetNanos()),
		},
		DisplayTimeLocal: MoscowDisplayTime(ts.GetSeconds()),
	}
}

// FromLiveCandle converts a wire streamed Candle into a domain candle,
// carrying the exchange's optional last-trade timestamp through.
func FromLiveCandle(c *pb.Candle) domain.LiveCandle {
	ts := c.GetTime()
	return domain.LiveCandle{
		CandleCore: domain.CandleCore{
			FIGI:   c.GetFigi(),
			Volume: c.GetVolume(),
			Open:   FromQuotation(c.GetOpen()),
			High:   FromQuotation(c.GetHigh()),
			Low:    FromQuotation(c.GetLow()),
			Close:  FromQuotation(c.GetClose()),
			Time:   FromTimestamp(ts.GetSeconds(), ts.GetNanos()),
		},
		LastTradeTS: FromTimestampPB(c.GetLastTradeTs()),
	}
}
