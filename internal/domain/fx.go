package domain

// RateChange is an absolute/percent delta against the previous rate.
type RateChange struct {
	Absolute float64 `bson:"absolute"`
	Percent  float64 `bson:"percent"`
}

// RateInfo is a single central-bank style rate observation.
type RateInfo struct {
	CurrentRate  float64    `bson:"current_rate"`
	PreviousRate float64    `bson:"previous_rate"`
	Change       RateChange `bson:"change"`
	Date         string     `bson:"date"`
}

// ExchangeRateInfo is an exchange-traded rate observation, carrying an
// optional display precision alongside the same fields as RateInfo.
type ExchangeRateInfo struct {
	RateInfo  `bson:",inline"`
	Precision *uint8 `bson:"precision,omitempty"`
}

// WapRateInfo is a weighted-average-price rate, the only kind published for
// CNY.
type WapRateInfo struct {
	CurrentRate   float64 `bson:"current_rate"`
	ChangePercent float64 `bson:"change_percent"`
	PreviousRate  float64 `bson:"previous_rate"`
	Date          string  `bson:"date"`
	Time          string  `bson:"time"`
	Nominal       float64 `bson:"nominal"`
	Precision     uint8   `bson:"precision"`
	SecurityID    string  `bson:"security_id"`
}

// CurrencyInfo groups the sub-records available for a single currency code.
// At most one of CentralBank/WapRate carries the "is this currency's
// canonical quote" role; Exchange is USD-only supplemental data.
type CurrencyInfo struct {
	Name        string            `bson:"name"`
	Symbol      string            `bson:"symbol"`
	CentralBank *RateInfo         `bson:"central_bank,omitempty"`
	Exchange    *ExchangeRateInfo `bson:"exchange,omitempty"`
	WapRate     *WapRateInfo      `bson:"wap_rate,omitempty"`
}

// CurrencyDisplayInfo is the precomposed Russian-language text shown to
// downstream consumers.
type CurrencyDisplayInfo struct {
	Text       string  `bson:"text"`
	Trend      string  `bson:"trend"`
	ChangeText string  `bson:"change_text"`
	WapText    *string `bson:"wap_text,omitempty"`
}

// TradingVolume is today's traded volume in rubles and USD.
type TradingVolume struct {
	Rubles float64 `bson:"rubles"`
	USD    float64 `bson:"usd"`
}

// FxRates is the single document held by the currency_rates collection.
type FxRates struct {
	Date        string                          `bson:"date"`
	TodayVolume *TradingVolume                  `bson:"today_volume,omitempty"`
	Currencies  map[string]CurrencyInfo         `bson:"currencies"`
	DisplayInfo map[string]CurrencyDisplayInfo  `bson:"display_info"`
}
