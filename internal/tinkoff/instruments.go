package tinkoff

import (
	"context"
	"fmt"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
)

// ListShares fetches every share regardless of trading status.
func (c *Client) ListShares(ctx context.Context) ([]*pb.Share, error) {
	ctx, cancel := c.CallContext(ctx)
	defer cancel()

	resp, err := c.Instruments.Shares(ctx, &pb.InstrumentsRequest{InstrumentStatus: pb.InstrumentStatus_INSTRUMENT_STATUS_ALL})
	if err != nil {
		return nil, fmt.Errorf("tinkoff: list shares: %w", err)
	}
	return resp.GetInstruments(), nil
}

// ListBonds fetches every bond regardless of trading status.
func (c *Client) ListBonds(ctx context.Context) ([]*pb.Bond, error) {
	ctx, cancel := c.CallContext(ctx)
	defer cancel()

	resp, err := c.Instruments.Bonds(ctx, &pb.InstrumentsRequest{InstrumentStatus: pb.InstrumentStatus_INSTRUMENT_STATUS_ALL})
	if err != nil {
		return nil, fmt.Errorf("tinkoff: list bonds: %w", err)
	}
	return resp.GetInstruments(), nil
}

// ListEtfs fetches every ETF regardless of trading status.
func (c *Client) ListEtfs(ctx context.Context) ([]*pb.Etf, error) {
	ctx, cancel := c.CallContext(ctx)
	defer cancel()

	resp, err := c.Instruments.Etfs(ctx, &pb.InstrumentsRequest{InstrumentStatus: pb.InstrumentStatus_INSTRUMENT_STATUS_ALL})
	if err != nil {
		return nil, fmt.Errorf("tinkoff: list etfs: %w", err)
	}
	return resp.GetInstruments(), nil
}

// ListFutures fetches every future regardless of trading status.
func (c *Client) ListFutures(ctx context.Context) ([]*pb.Future, error) {
	ctx, cancel := c.CallContext(ctx)
	defer cancel()

	resp, err := c.Instruments.Futures(ctx, &pb.InstrumentsRequest{InstrumentStatus: pb.InstrumentStatus_INSTRUMENT_STATUS_ALL})
	if err != nil {
		return nil, fmt.Errorf("tinkoff: list futures: %w", err)
	}
	return resp.GetInstruments(), nil
}
