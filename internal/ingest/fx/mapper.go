package fx

import (
	"fmt"
	"math"

	"github.com/aristath/marketdata/internal/domain"
	"github.com/aristath/marketdata/internal/moex"
)

// currencyConfig is one row of the fixed three-currency table this
// refresher understands, grounded on MoexRatesMapper::CURRENCIES.
type currencyConfig struct {
	Code, Name, Symbol string

	CbrfKey       string // "" if this currency has no central-bank record
	CbrfChangeKey string
	CbrfDateKey   string

	ExchangePriceKey  string // "" if this currency has no exchange sub-record
	ExchangeChangeKey string
	ExchangeDateKey   string

	WapSecurityID string // "" if this currency has no WAP sub-record
}

var currencies = []currencyConfig{
	{
		Code: "USD", Name: "Доллар США", Symbol: "$",
		CbrfKey: "CBRF_USD_LAST", CbrfChangeKey: "CBRF_USD_LASTCHANGEPRCNT", CbrfDateKey: "CBRF_USD_TRADEDATE",
		ExchangePriceKey: "USDTOM_UTS_CLOSEPRICE", ExchangeChangeKey: "USDTOM_UTS_CLOSEPRICETOPREVPRCN", ExchangeDateKey: "USDTOM_UTS_TRADEDATE",
	},
	{
		Code: "EUR", Name: "Евро", Symbol: "€",
		CbrfKey: "CBRF_EUR_LAST", CbrfChangeKey: "CBRF_EUR_LASTCHANGEPRCNT", CbrfDateKey: "CBRF_EUR_TRADEDATE",
	},
	{
		Code: "CNY", Name: "Китайский юань", Symbol: "¥",
		WapSecurityID: "CNYRUB_TOM",
	},
}

// mapRates converts the exchange's raw rates table into the stored
// document. An empty cbrf table yields the zero-date FxRates the
// empty-cbrf edge case expects.
func mapRates(resp *moex.RatesResponse) domain.FxRates {
	if len(resp.CBRF.Data) == 0 {
		return domain.FxRates{}
	}

	cbrfIdx := resp.CBRF.ColumnIndex()
	wapIdx := resp.WapRates.ColumnIndex()
	row0 := resp.CBRF.Data[0]

	out := domain.FxRates{
		Date: resp.CBRF.String(row0, cbrfIdx, "TODAY_DATE"),
		TodayVolume: &domain.TradingVolume{
			Rubles: resp.CBRF.Float(row0, cbrfIdx, "TODAY_VALTODAY"),
			USD:    resp.CBRF.Float(row0, cbrfIdx, "TODAY_VALTODAY_USD"),
		},
		Currencies:  map[string]domain.CurrencyInfo{},
		DisplayInfo: map[string]domain.CurrencyDisplayInfo{},
	}

	for _, cfg := range currencies {
		info, display := mapCurrency(cfg, resp, row0, cbrfIdx, wapIdx)
		out.Currencies[cfg.Code] = info
		if display != nil {
			out.DisplayInfo[cfg.Code] = *display
		}
	}
	return out
}

func mapCurrency(cfg currencyConfig, resp *moex.RatesResponse, row0 []interface{}, cbrfIdx, wapIdx map[string]int) (domain.CurrencyInfo, *domain.CurrencyDisplayInfo) {
	var centralBank *domain.RateInfo
	if cfg.CbrfKey != "" {
		rate := rateFrom(resp.CBRF, row0, cbrfIdx, cfg.CbrfKey, cfg.CbrfChangeKey, cfg.CbrfDateKey)
		centralBank = &rate
	}

	var exchange *domain.ExchangeRateInfo
	if cfg.ExchangePriceKey != "" {
		rate := rateFrom(resp.CBRF, row0, cbrfIdx, cfg.ExchangePriceKey, cfg.ExchangeChangeKey, cfg.ExchangeDateKey)
		exchange = &domain.ExchangeRateInfo{RateInfo: rate}
	}

	var wapRate *domain.WapRateInfo
	if cfg.WapSecurityID != "" {
		wapRate = findWapRate(resp.WapRates, wapIdx, cfg.WapSecurityID)
	}

	info := domain.CurrencyInfo{
		Name:        cfg.Name,
		Symbol:      cfg.Symbol,
		CentralBank: centralBank,
		Exchange:    exchange,
		WapRate:     wapRate,
	}

	return info, displayFor(cfg, centralBank, wapRate)
}

func rateFrom(t moex.Table, row0 []interface{}, idx map[string]int, priceKey, changeKey, dateKey string) domain.RateInfo {
	current := t.Float(row0, idx, priceKey)
	changePercent := t.Float(row0, idx, changeKey)
	previous := current / (1 + changePercent/100)
	return domain.RateInfo{
		CurrentRate:  current,
		PreviousRate: previous,
		Change:       domain.RateChange{Absolute: current - previous, Percent: changePercent},
		Date:         t.String(row0, idx, dateKey),
	}
}

func findWapRate(t moex.Table, idx map[string]int, securityID string) *domain.WapRateInfo {
	secIdx, ok := idx["secid"]
	if !ok {
		return nil
	}
	for _, row := range t.Data {
		if secIdx >= len(row) || row[secIdx] == nil {
			continue
		}
		sec, _ := row[secIdx].(string)
		if sec != securityID {
			continue
		}

		current := t.Float(row, idx, "price")
		changePercent := t.Float(row, idx, "lasttoprevprice")
		nominal := t.Float(row, idx, "nominal")
		if _, ok := idx["nominal"]; !ok {
			nominal = 1.0
		}
		return &domain.WapRateInfo{
			CurrentRate:   current,
			ChangePercent: changePercent,
			PreviousRate:  current / (1 + changePercent/100),
			Date:          t.String(row, idx, "tradedate"),
			Time:          t.String(row, idx, "tradetime"),
			Nominal:       nominal,
			Precision:     uint8(t.Float(row, idx, "decimals")),
			SecurityID:    securityID,
		}
	}
	return nil
}

func displayFor(cfg currencyConfig, cb *domain.RateInfo, wap *domain.WapRateInfo) *domain.CurrencyDisplayInfo {
	switch {
	case cb != nil:
		trend, sign := trendAndSign(cb.Change.Percent)
		display := &domain.CurrencyDisplayInfo{
			Text:       fmt.Sprintf("%.2f ₽ за %s1 (вчера: %.2f ₽)", cb.CurrentRate, cfg.Symbol, cb.PreviousRate),
			Trend:      trend,
			ChangeText: fmt.Sprintf("%s%.2f%% (%s%.2f ₽)", sign, cb.Change.Percent, sign, math.Abs(cb.Change.Absolute)),
		}
		if wap != nil {
			wapText := fmt.Sprintf("WAP: %.2f ₽ (%.2f%%, вчера: %.2f ₽)", wap.CurrentRate, wap.ChangePercent, wap.PreviousRate)
			display.WapText = &wapText
		}
		return display
	case wap != nil:
		trend, sign := trendAndSign(wap.ChangePercent)
		return &domain.CurrencyDisplayInfo{
			Text:       fmt.Sprintf("WAP: %.2f ₽ за %s1 (вчера: %.2f ₽)", wap.CurrentRate, cfg.Symbol, wap.PreviousRate),
			Trend:      trend,
			ChangeText: fmt.Sprintf("%s%.2f%% (%s%.2f ₽)", sign, wap.ChangePercent, sign, math.Abs(wap.CurrentRate-wap.PreviousRate)),
		}
	default:
		return nil
	}
}

func trendAndSign(changePercent float64) (trend, sign string) {
	if changePercent > 0 {
		return "рост", "+"
	}
	return "снижение", ""
}
