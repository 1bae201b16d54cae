package live

import (
	"context"
	"errors"
	"io"
	"testing"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/aristath/marketdata/internal/domain"
)

type fakeStream struct {
	toSend []*pb.MarketDataResponse
	sent   []*pb.MarketDataRequest
	pos    int
}

func (f *fakeStream) Send(req *pb.MarketDataRequest) error {
	f.sent = append(f.sent, req)
	return nil
}

func (f *fakeStream) Recv() (*pb.MarketDataResponse, error) {
	if f.pos >= len(f.toSend) {
		return nil, io.EOF
	}
	resp := f.toSend[f.pos]
	f.pos++
	return resp, nil
}

type fakeWatchlist struct {
	figis []string
}

func (f *fakeWatchlist) EnabledFigis(ctx context.Context) ([]string, error) {
	return f.figis, nil
}

type fakeLiveRepo struct {
	indexed map[string]bool
	docs    map[string][]domain.LiveCandle
}

func newFakeLiveRepo() *fakeLiveRepo {
	return &fakeLiveRepo{indexed: map[string]bool{}, docs: map[string][]domain.LiveCandle{}}
}

func (f *fakeLiveRepo) EnsureFigiIndex(ctx context.Context, figi string) error {
	f.indexed[figi] = true
	return nil
}

func (f *fakeLiveRepo) InsertCandle(ctx context.Context, figi string, candle domain.LiveCandle) error {
	f.docs[figi] = append(f.docs[figi], candle)
	return nil
}

func candleResponse(figi string) *pb.MarketDataResponse {
	return &pb.MarketDataResponse{
		Payload: &pb.MarketDataResponse_Candle{
			Candle: &pb.Candle{
				Figi:   figi,
				Volume: 100,
				Open:   &pb.Quotation{Units: 250, Nano: 0},
				High:   &pb.Quotation{Units: 251, Nano: 0},
				Low:    &pb.Quotation{Units: 249, Nano: 0},
				Close:  &pb.Quotation{Units: 250, Nano: 500000000},
				Time:   timestamppb.Now(),
			},
		},
	}
}

func TestRun_FirstCandleForNewFigiCreatesIndexAndInsertsOne(t *testing.T) {
	stream := &fakeStream{toSend: []*pb.MarketDataResponse{candleResponse("SBER")}}
	open := func(ctx context.Context) (StreamIO, error) { return stream, nil }

	watch := &fakeWatchlist{figis: []string{"SBER"}}
	repo := newFakeLiveRepo()

	s := New(open, watch, repo, 1, zerolog.Nop())
	err := s.Run(context.Background())

	assert.Error(t, err) // stream closed -> reconnect attempts exhausted, reported fatal
	assert.True(t, repo.indexed["SBER"])
	assert.Len(t, repo.docs["SBER"], 1)
	assert.Len(t, stream.sent, 1) // exactly one subscribe request was sent
}

func TestRun_NonCandlePayloadIsDropped(t *testing.T) {
	stream := &fakeStream{toSend: []*pb.MarketDataResponse{
		{Payload: &pb.MarketDataResponse_SubscribeCandlesResponse{}},
		candleResponse("GAZP"),
	}}
	open := func(ctx context.Context) (StreamIO, error) { return stream, nil }

	watch := &fakeWatchlist{figis: []string{"GAZP"}}
	repo := newFakeLiveRepo()

	s := New(open, watch, repo, 1, zerolog.Nop())
	_ = s.Run(context.Background())

	assert.Len(t, repo.docs["GAZP"], 1)
}

func TestRun_EmptyWatchlistIsNoop(t *testing.T) {
	opened := false
	open := func(ctx context.Context) (StreamIO, error) {
		opened = true
		return nil, nil
	}
	watch := &fakeWatchlist{figis: nil}
	repo := newFakeLiveRepo()

	s := New(open, watch, repo, 3, zerolog.Nop())
	assert.NoError(t, s.Run(context.Background()))
	assert.False(t, opened)
}

func TestRun_OpenFailureIsWrappedAsTransportError(t *testing.T) {
	open := func(ctx context.Context) (StreamIO, error) { return nil, errors.New("dial failed") }
	watch := &fakeWatchlist{figis: []string{"SBER"}}
	repo := newFakeLiveRepo()

	s := New(open, watch, repo, 1, zerolog.Nop())
	err := s.Run(context.Background())
	assert.Error(t, err)
}
