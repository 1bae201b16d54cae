package tinkoff

import (
	"context"
	"fmt"
	"time"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// GetCandles fetches 1-minute candles for figi over [from, to).
func (c *Client) GetCandles(ctx context.Context, figi string, from, to time.Time) ([]*pb.HistoricCandle, error) {
	ctx, cancel := c.CallContext(ctx)
	defer cancel()

	resp, err := c.MarketData.GetCandles(ctx, &pb.GetCandlesRequest{
		Figi:         figi,
		InstrumentId: figi,
		From:         timestamppb.New(from),
		To:           timestamppb.New(to),
		Interval:     pb.CandleInterval_CANDLE_INTERVAL_1_MIN,
	})
	if err != nil {
		return nil, fmt.Errorf("tinkoff: get candles %s [%s,%s): %w", figi, from, to, err)
	}
	return resp.GetCandles(), nil
}
