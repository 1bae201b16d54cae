package domain

// SecurityTradingStatus mirrors the brokerage's trading-status enum.
type SecurityTradingStatus string

const (
	TradingStatusUnspecified              SecurityTradingStatus = "UNSPECIFIED"
	TradingStatusNotAvailable             SecurityTradingStatus = "NOT_AVAILABLE_FOR_TRADING"
	TradingStatusOpeningPeriod            SecurityTradingStatus = "OPENING_PERIOD"
	TradingStatusClosingPeriod            SecurityTradingStatus = "CLOSING_PERIOD"
	TradingStatusBreakInTrading           SecurityTradingStatus = "BREAK_IN_TRADING"
	TradingStatusNormalTrading            SecurityTradingStatus = "NORMAL_TRADING"
	TradingStatusClosed                   SecurityTradingStatus = "CLOSED"
	TradingStatusDealerNormalTrading      SecurityTradingStatus = "DEALER_NORMAL_TRADING"
	TradingStatusDealerBreakInTrading     SecurityTradingStatus = "DEALER_BREAK_IN_TRADING"
	TradingStatusDealerNotAvailable       SecurityTradingStatus = "DEALER_NOT_AVAILABLE_FOR_TRADING"
	TradingStatusSessionAssigned          SecurityTradingStatus = "SESSION_ASSIGNED"
	TradingStatusSessionClose             SecurityTradingStatus = "SESSION_CLOSE"
	TradingStatusSessionOpen              SecurityTradingStatus = "SESSION_OPEN"
	TradingStatusDealerSessionAssigned    SecurityTradingStatus = "DEALER_SESSION_ASSIGNED"
	TradingStatusDealerSessionClose       SecurityTradingStatus = "DEALER_SESSION_CLOSE"
	TradingStatusDealerSessionOpen        SecurityTradingStatus = "DEALER_SESSION_OPEN"
	TradingStatusPremarketBreakInTrading  SecurityTradingStatus = "PREMARKET_BREAK_IN_TRADING"
	TradingStatusPremarketClose           SecurityTradingStatus = "PREMARKET_CLOSE"
	TradingStatusPremarketOpen            SecurityTradingStatus = "PREMARKET_OPEN"
)

// ShareType mirrors the brokerage's share-type enum.
type ShareType string

const (
	ShareTypeUnspecified  ShareType = "UNSPECIFIED"
	ShareTypeCommon       ShareType = "COMMON"
	ShareTypePreferred    ShareType = "PREFERRED"
	ShareTypeADR          ShareType = "ADR"
	ShareTypeGDR          ShareType = "GDR"
	ShareTypeMLP          ShareType = "MLP"
	ShareTypeNY           ShareType = "NY_REG_SHRS"
	ShareTypeClosedFund   ShareType = "CLOSED_END_FUND"
	ShareTypeREIT         ShareType = "REIT"
)

// RealExchange mirrors the brokerage's settlement-exchange enum.
type RealExchange string

const (
	RealExchangeUnspecified RealExchange = "UNSPECIFIED"
	RealExchangeMOEX        RealExchange = "MOEX"
	RealExchangeRTS         RealExchange = "RTS"
	RealExchangeOTC         RealExchange = "OTC"
)

// RiskLevel mirrors a bond's risk coefficient, present only for bonds.
type RiskLevel string

const (
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelModerate RiskLevel = "MODERATE"
	RiskLevelLow      RiskLevel = "LOW"
)
