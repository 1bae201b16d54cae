package tinkoff

import (
	"context"
	"fmt"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
)

// OpenMarketDataStream opens the bidirectional market-data stream. The
// bearer token is attached by the client's stream interceptor.
func (c *Client) OpenMarketDataStream(ctx context.Context) (pb.MarketDataStreamService_MarketDataStreamClient, error) {
	stream, err := c.MarketDataStream.MarketDataStream(ctx)
	if err != nil {
		return nil, fmt.Errorf("tinkoff: open market data stream: %w", err)
	}
	return stream, nil
}

// SubscribeCandlesRequest builds a single subscribe request covering every
// given FIGI at 1-minute interval. The live streamer subscribes only to
// candles, not orderbook/trades/info.
func SubscribeCandlesRequest(figis []string) *pb.MarketDataRequest {
	instruments := make([]*pb.CandleInstrument, 0, len(figis))
	for _, figi := range figis {
		instruments = append(instruments, &pb.CandleInstrument{
			Figi:         figi,
			InstrumentId: figi,
			Interval:     pb.SubscriptionInterval_SUBSCRIPTION_INTERVAL_ONE_MINUTE,
		})
	}

	return &pb.MarketDataRequest{
		Payload: &pb.MarketDataRequest_SubscribeCandlesRequest{
			SubscribeCandlesRequest: &pb.SubscribeCandlesRequest{
				SubscriptionAction: pb.SubscriptionAction_SUBSCRIPTION_ACTION_SUBSCRIBE,
				Instruments:        instruments,
				WaitingClose:       false,
			},
		},
	}
}
