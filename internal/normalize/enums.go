package normalize

import (
	"strings"

	pb "github.com/russianinvestments/invest-api-go-sdk/proto"

	"github.com/aristath/marketdata/internal/domain"
)

// enumVariant strips a wire enum's generated String() prefix, falling back
// to unspecified for any name it doesn't recognize (including the numeric
// stringification protobuf produces for an out-of-range code); this is
// what makes every enum mapping total over the documented enum domains.
func enumVariant(name, prefix, unspecified string) string {
	if !strings.HasPrefix(name, prefix) {
		return unspecified
	}
	return strings.TrimPrefix(name, prefix)
}

// FromTradingStatus maps the wire trading-status enum to its domain variant.
func FromTradingStatus(s pb.SecurityTradingStatus) domain.SecurityTradingStatus {
	const prefix = "SECURITY_TRADING_STATUS_"
	return domain.SecurityTradingStatus(enumVariant(s.String(), prefix, string(domain.TradingStatusUnspecified)))
}

// FromShareType maps the wire share-type enum to its domain variant.
func FromShareType(s pb.ShareType) domain.ShareType {
	const prefix = "SHARE_TYPE_"
	return domain.ShareType(enumVariant(s.String(), prefix, string(domain.ShareTypeUnspecified)))
}

// FromRealExchange maps the wire real-exchange enum to its domain variant.
func FromRealExchange(s pb.RealExchange) domain.RealExchange {
	const prefix = "REAL_EXCHANGE_"
	return domain.RealExchange(enumVariant(s.String(), prefix, string(domain.RealExchangeUnspecified)))
}

// FromRiskLevel maps a bond's 0/1/2 risk-level code: 0->HIGH, 1->MODERATE,
// 2->LOW, any other value is absent.
func FromRiskLevel(level int32) *domain.RiskLevel {
	var rl domain.RiskLevel
	switch level {
	case 0:
		rl = domain.RiskLevelHigh
	case 1:
		rl = domain.RiskLevelModerate
	case 2:
		rl = domain.RiskLevelLow
	default:
		return nil
	}
	return &rl
}
