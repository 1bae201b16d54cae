package normalize

import (
	"testing"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/stretchr/testify/assert"
)

func TestFromShare_TotalOverMinimalWireValue(t *testing.T) {
	assert.NotPanics(t, func() {
		got := FromShare(&pb.Share{
			Figi:     "BBG004730N88",
			Ticker:   "SBER",
			Currency: "rub",
			Lot:      10,
		})
		assert.Equal(t, "BBG004730N88", got.FIGI())
		assert.Equal(t, "SBER", got.Ticker())
		assert.Equal(t, "share", got.Kind())
	})
}

func TestFromBond_TotalOverMinimalWireValue(t *testing.T) {
	assert.NotPanics(t, func() {
		got := FromBond(&pb.Bond{Figi: "TCS00A1050H0", Ticker: "RU000A1050H0"})
		assert.Equal(t, "bond", got.Kind())
	})
}

func TestFromEtf_TotalOverMinimalWireValue(t *testing.T) {
	assert.NotPanics(t, func() {
		got := FromEtf(&pb.Etf{Figi: "BBG005HLSZ23"})
		assert.Equal(t, "etf", got.Kind())
	})
}

func TestFromFuture_TotalOverMinimalWireValue(t *testing.T) {
	assert.NotPanics(t, func() {
		got := FromFuture(&pb.Future{Figi: "FUTSI0624000"})
		assert.Equal(t, "future", got.Kind())
		assert.Empty(t, got.ISIN)
	})
}

func TestFromHistoricCandle(t *testing.T) {
	c := &pb.HistoricCandle{
		Open:   &pb.Quotation{Units: 100, Nano: 0},
		High:   &pb.Quotation{Units: 101, Nano: 0},
		Low:    &pb.Quotation{Units: 99, Nano: 0},
		Close:  &pb.Quotation{Units: 100, Nano: 500000000},
		Volume: 1000,
	}
	got := FromHistoricCandle("BBG004730N88", c)
	assert.Equal(t, "BBG004730N88", got.FIGI)
	assert.Equal(t, int64(1000), got.Volume)
	assert.InDelta(t, 100.5, got.Close.Value(), 1e-9)
}
