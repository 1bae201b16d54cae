package domain

// CandleCore is the OHLCV body shared by historical and live candles.
type CandleCore struct {
	FIGI   string    `bson:"figi"`
	Volume int64     `bson:"volume"`
	Open   Quotation `bson:"open"`
	High   Quotation `bson:"high"`
	Low    Quotation `bson:"low"`
	Close  Quotation `bson:"close"`
	Time   Timestamp `bson:"time"`
}

// HistoricalCandle is a single day-sliced 1-minute candle written by the
// backfill pipeline, carrying a Moscow-local display rendering of Time.
type HistoricalCandle struct {
	CandleCore      `bson:",inline"`
	DisplayTimeLocal string `bson:"display_time"`
}

// LiveCandle is a single candle pushed over the market-data stream. It
// optionally carries the exchange's last-trade timestamp.
type LiveCandle struct {
	CandleCore  `bson:",inline"`
	LastTradeTS *Timestamp `bson:"last_trade_ts,omitempty"`
}

// HistoryStatus is the per-FIGI backfill progress record, keyed by FIGI.
type HistoryStatus struct {
	FIGI                string `bson:"figi"`
	FirstCandleSeconds  int64  `bson:"first_candle_seconds"`
	LastCandleSeconds   int64  `bson:"last_candle_seconds"`
	FirstDisplay        string `bson:"first_display"`
	LastDisplay         string `bson:"last_display"`
	CandleCount         int64  `bson:"candle_count"`
	UpdatedAt           string `bson:"updated_at"`
}
