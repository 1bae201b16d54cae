package normalize

import (
	pb "github.com/russianinvestments/invest-api-go-sdk/proto"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/aristath/marketdata/internal/domain"
)

func fromCommon(
	figi, ticker, classCode, isin, uid, positionUID, currency, exchange, name string,
	realExchange pb.RealExchange,
	lot int32,
	countryOfRisk, countryOfRiskName, sector string,
	tradingStatus pb.SecurityTradingStatus,
	minPriceIncrement, klong, kshort, dlong, dshort, dlongMin, dshortMin *pb.Quotation,
	first1Min, first1Day *timestamppb.Timestamp,
	shortEnabled, otc, buyAvailable, sellAvailable, apiTradeAvailable,
	forIis, forQualInvestor, weekend, blockedTca, liquidity bool,
) domain.Common {
	return domain.Common{
		FigiValue:             figi,
		TickerValue:           ticker,
		ClassCode:             classCode,
		ISIN:                  isin,
		UID:                   uid,
		PositionUID:           positionUID,
		LotValue:              lot,
		CurrencyValue:         currency,
		Exchange:              exchange,
		RealExchange:          FromRealExchange(realExchange),
		NameValue:             name,
		CountryOfRisk:         countryOfRisk,
		CountryOfRiskName:     countryOfRiskName,
		Sector:                sector,
		TradingStatus:         FromTradingStatus(tradingStatus),
		MinPriceIncrement:     FromQuotationPtr(minPriceIncrement),
		Klong:                 FromQuotationPtr(klong),
		Kshort:                FromQuotationPtr(kshort),
		Dlong:                 FromQuotationPtr(dlong),
		Dshort:                FromQuotationPtr(dshort),
		DlongMin:              FromQuotationPtr(dlongMin),
		DshortMin:             FromQuotationPtr(dshortMin),
		First1MinCandle:       FromTimestampPB(first1Min),
		First1DayCandle:       FromTimestampPB(first1Day),
		ShortEnabledFlag:      shortEnabled,
		OtcFlag:               otc,
		BuyAvailableFlag:      buyAvailable,
		SellAvailableFlag:     sellAvailable,
		ApiTradeAvailableFlag: apiTradeAvailable,
		ForIisFlag:            forIis,
		ForQualInvestorFlag:   forQualInvestor,
		WeekendFlag:           weekend,
		BlockedTcaFlag:        blockedTca,
		LiquidityFlag:         liquidity,
	}
}

// FromShare converts a wire Share to domain.Share.
func FromShare(s *pb.Share) domain.Share {
	common := fromCommon(
		s.GetFigi(), s.GetTicker(), s.GetClassCode(), s.GetIsin(), s.GetUid(), s.GetPositionUid(),
		s.GetCurrency(), s.GetExchange(), s.GetName(), s.GetRealExchange(), s.GetLot(),
		s.GetCountryOfRisk(), s.GetCountryOfRiskName(), s.GetSector(), s.GetTradingStatus(),
		s.GetMinPriceIncrement(), s.GetKlong(), s.GetKshort(), s.GetDlong(), s.GetDshort(), s.GetDlongMin(), s.GetDshortMin(),
		s.GetFirst_1MinCandleDate(), s.GetFirst_1DayCandleDate(),
		s.GetShortEnabledFlag(), s.GetOtcFlag(), s.GetBuyAvailableFlag(), s.GetSellAvailableFlag(), s.GetApiTradeAvailableFlag(),
		s.GetForIisFlag(), s.GetForQualInvestorFlag(), s.GetWeekendFlag(), s.GetBlockedTcaFlag(), s.GetLiquidityFlag(),
	)
	return domain.Share{
		Common:        common,
		ShareType:     FromShareType(s.GetShareType()),
		IPODate:       FromTimestampPB(s.GetIpoDate()),
		IssueSize:     s.GetIssueSize(),
		IssueSizePlan: s.GetIssueSizePlan(),
		Nominal:       FromMoneyValue(s.GetNominal()),
		DivYieldFlag:  s.GetDivYieldFlag(),
	}
}

// FromBond converts a wire Bond to domain.Bond.
func FromBond(b *pb.Bond) domain.Bond {
	common := fromCommon(
		b.GetFigi(), b.GetTicker(), b.GetClassCode(), b.GetIsin(), b.GetUid(), b.GetPositionUid(),
		b.GetCurrency(), b.GetExchange(), b.GetName(), b.GetRealExchange(), b.GetLot(),
		b.GetCountryOfRisk(), b.GetCountryOfRiskName(), b.GetSector(), b.GetTradingStatus(),
		b.GetMinPriceIncrement(), b.GetKlong(), b.GetKshort(), b.GetDlong(), b.GetDshort(), b.GetDlongMin(), b.GetDshortMin(),
		b.GetFirst_1MinCandleDate(), b.GetFirst_1DayCandleDate(),
		b.GetShortEnabledFlag(), b.GetOtcFlag(), b.GetBuyAvailableFlag(), b.GetSellAvailableFlag(), b.GetApiTradeAvailableFlag(),
		b.GetForIisFlag(), b.GetForQualInvestorFlag(), b.GetWeekendFlag(), b.GetBlockedTcaFlag(), b.GetLiquidityFlag(),
	)
	return domain.Bond{
		Common:                common,
		IssueSize:             b.GetIssueSize(),
		IssueSizePlan:         b.GetIssueSizePlan(),
		Nominal:               FromMoneyValue(b.GetNominal()),
		InitialNominal:        FromMoneyValue(b.GetInitialNominal()),
		PlacementPrice:        FromMoneyValue(b.GetPlacementPrice()),
		AciValue:              FromMoneyValue(b.GetAciValue()),
		IssueKind:             b.GetIssueKind(),
		CouponQuantityPerYear: b.GetCouponQuantityPerYear(),
		MaturityDate:          FromTimestampPB(b.GetMaturityDate()),
		StateRegDate:          FromTimestampPB(b.GetStateRegDate()),
		PlacementDate:         FromTimestampPB(b.GetPlacementDate()),
		RiskLevel:             FromRiskLevel(int32(b.GetRiskLevel())),
		FloatingCouponFlag:    b.GetFloatingCouponFlag(),
		PerpetualFlag:         b.GetPerpetualFlag(),
		AmortizationFlag:      b.GetAmortizationFlag(),
		SubordinatedFlag:      b.GetSubordinatedFlag(),
	}
}

// FromEtf converts a wire Etf to domain.Etf.
func FromEtf(e *pb.Etf) domain.Etf {
	common := fromCommon(
		e.GetFigi(), e.GetTicker(), e.GetClassCode(), e.GetIsin(), e.GetUid(), e.GetPositionUid(),
		e.GetCurrency(), e.GetExchange(), e.GetName(), e.GetRealExchange(), e.GetLot(),
		e.GetCountryOfRisk(), e.GetCountryOfRiskName(), e.GetSector(), e.GetTradingStatus(),
		e.GetMinPriceIncrement(), e.GetKlong(), e.GetKshort(), e.GetDlong(), e.GetDshort(), e.GetDlongMin(), e.GetDshortMin(),
		e.GetFirst_1MinCandleDate(), e.GetFirst_1DayCandleDate(),
		e.GetShortEnabledFlag(), e.GetOtcFlag(), e.GetBuyAvailableFlag(), e.GetSellAvailableFlag(), e.GetApiTradeAvailableFlag(),
		e.GetForIisFlag(), e.GetForQualInvestorFlag(), e.GetWeekendFlag(), e.GetBlockedTcaFlag(), e.GetLiquidityFlag(),
	)
	return domain.Etf{
		Common:          common,
		FixedCommission: FromQuotationPtr(e.GetFixedCommission()),
		FocusType:       e.GetFocusType(),
		ReleasedDate:    FromTimestampPB(e.GetReleasedDate()),
		NumShares:       FromQuotationPtr(e.GetNumShares()),
		RebalancingFreq: e.GetRebalancingFreq(),
	}
}

// FromFuture converts a wire Future to domain.Future. Futures carry no ISIN.
func FromFuture(f *pb.Future) domain.Future {
	common := fromCommon(
		f.GetFigi(), f.GetTicker(), f.GetClassCode(), "", f.GetUid(), f.GetPositionUid(),
		f.GetCurrency(), f.GetExchange(), f.GetName(), f.GetRealExchange(), f.GetLot(),
		f.GetCountryOfRisk(), f.GetCountryOfRiskName(), f.GetSector(), f.GetTradingStatus(),
		f.GetMinPriceIncrement(), f.GetKlong(), f.GetKshort(), f.GetDlong(), f.GetDshort(), f.GetDlongMin(), f.GetDshortMin(),
		f.GetFirst_1MinCandleDate(), f.GetFirst_1DayCandleDate(),
		f.GetShortEnabledFlag(), f.GetOtcFlag(), f.GetBuyAvailableFlag(), f.GetSellAvailableFlag(), f.GetApiTradeAvailableFlag(),
		f.GetForIisFlag(), f.GetForQualInvestorFlag(), f.GetWeekendFlag(), f.GetBlockedTcaFlag(), f.GetLiquidityFlag(),
	)
	return domain.Future{
		Common:                common,
		FirstTradeDate:        FromTimestampPB(f.GetFirstTradeDate()),
		LastTradeDate:         FromTimestampPB(f.GetLastTradeDate()),
		ExpirationDate:        FromTimestampPB(f.GetExpirationDate()),
		FuturesType:           f.GetFuturesType(),
		AssetType:             f.GetAssetType(),
		BasicAsset:            f.GetBasicAsset(),
		BasicAssetSize:        FromQuotationPtr(f.GetBasicAssetSize()),
		BasicAssetPositionUID: f.GetBasicAssetPositionUid(),
	}
}
