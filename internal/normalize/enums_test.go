package normalize

import (
	"testing"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"github.com/stretchr/testify/assert"

	"github.com/aristath/marketdata/internal/domain"
)

func TestFromTradingStatus_KnownCode(t *testing.T) {
	got := FromTradingStatus(pb.SecurityTradingStatus_SECURITY_TRADING_STATUS_NORMAL_TRADING)
	assert.Equal(t, domain.TradingStatusNormalTrading, got)
}

func TestFromTradingStatus_UnknownCodeIsUnspecified(t *testing.T) {
	got := FromTradingStatus(pb.SecurityTradingStatus(9999))
	assert.Equal(t, domain.TradingStatusUnspecified, got)
}

func TestFromRiskLevel(t *testing.T) {
	high := FromRiskLevel(0)
	moderate := FromRiskLevel(1)
	low := FromRiskLevel(2)
	absent := FromRiskLevel(3)

	if assert.NotNil(t, high) {
		assert.Equal(t, domain.RiskLevelHigh, *high)
	}
	if assert.NotNil(t, moderate) {
		assert.Equal(t, domain.RiskLevelModerate, *moderate)
	}
	if assert.NotNil(t, low) {
		assert.Equal(t, domain.RiskLevelLow, *low)
	}
	assert.Nil(t, absent)
}
