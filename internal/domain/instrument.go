package domain

// Instrument is the shared accessor surface over the four catalog variants.
// Prefer this narrow interface over inheritance: each variant is a distinct
// struct with its own kind-specific fields, extracted through these methods
// wherever pipeline code only needs the common identity/candle-date fields.
type Instrument interface {
	FIGI() string
	Ticker() string
	Name() string
	Currency() string
	Lot() int32
	First1MinCandleDate() *Timestamp
	First1DayCandleDate() *Timestamp
	Kind() string
}

// Common carries the catalog fields shared by all four instrument kinds.
type Common struct {
	FigiValue             string                `bson:"figi"`
	TickerValue           string                `bson:"ticker"`
	ClassCode             string                `bson:"class_code"`
	ISIN                  string                `bson:"isin,omitempty"`
	UID                   string                `bson:"uid"`
	PositionUID           string                `bson:"position_uid"`
	LotValue              int32                 `bson:"lot"`
	CurrencyValue         string                `bson:"currency"`
	Exchange              string                `bson:"exchange"`
	RealExchange          RealExchange          `bson:"real_exchange"`
	NameValue             string                `bson:"name"`
	CountryOfRisk         string                `bson:"country_of_risk,omitempty"`
	CountryOfRiskName     string                `bson:"country_of_risk_name,omitempty"`
	Sector                string                `bson:"sector,omitempty"`
	TradingStatus         SecurityTradingStatus `bson:"trading_status"`
	MinPriceIncrement     *Quotation            `bson:"min_price_increment,omitempty"`
	Klong                 *Quotation            `bson:"klong,omitempty"`
	Kshort                *Quotation            `bson:"kshort,omitempty"`
	Dlong                 *Quotation            `bson:"dlong,omitempty"`
	Dshort                *Quotation            `bson:"dshort,omitempty"`
	DlongMin              *Quotation            `bson:"dlong_min,omitempty"`
	DshortMin             *Quotation            `bson:"dshort_min,omitempty"`
	First1MinCandle       *Timestamp            `bson:"first_1min_candle_date,omitempty"`
	First1DayCandle       *Timestamp            `bson:"first_1day_candle_date,omitempty"`
	ShortEnabledFlag      bool                  `bson:"short_enabled_flag"`
	OtcFlag               bool                  `bson:"otc_flag"`
	BuyAvailableFlag      bool                  `bson:"buy_available_flag"`
	SellAvailableFlag     bool                  `bson:"sell_available_flag"`
	ApiTradeAvailableFlag bool                  `bson:"api_trade_available_flag"`
	ForIisFlag            bool                  `bson:"for_iis_flag"`
	ForQualInvestorFlag   bool                  `bson:"for_qual_investor_flag"`
	WeekendFlag           bool                  `bson:"weekend_flag"`
	BlockedTcaFlag        bool                  `bson:"blocked_tca_flag"`
	LiquidityFlag         bool                  `bson:"liquidity_flag"`
}

func (c Common) FIGI() string                     { return c.FigiValue }
func (c Common) Ticker() string                   { return c.TickerValue }
func (c Common) Name() string                     { return c.NameValue }
func (c Common) Currency() string                 { return c.CurrencyValue }
func (c Common) Lot() int32                       { return c.LotValue }
func (c Common) First1MinCandleDate() *Timestamp   { return c.First1MinCandle }
func (c Common) First1DayCandleDate() *Timestamp   { return c.First1DayCandle }

// Share is a traded equity instrument.
type Share struct {
	Common        `bson:",inline"`
	ShareType     ShareType `bson:"share_type"`
	IPODate       *Timestamp `bson:"ipo_date,omitempty"`
	IssueSize     int64      `bson:"issue_size"`
	IssueSizePlan int64      `bson:"issue_size_plan"`
	Nominal       *Money     `bson:"nominal,omitempty"`
	DivYieldFlag  bool       `bson:"div_yield_flag"`
}

func (Share) Kind() string { return "share" }

// Bond is a fixed-income instrument.
type Bond struct {
	Common                `bson:",inline"`
	IssueSize             int64      `bson:"issue_size"`
	IssueSizePlan         int64      `bson:"issue_size_plan"`
	Nominal               *Money     `bson:"nominal,omitempty"`
	InitialNominal        *Money     `bson:"initial_nominal,omitempty"`
	PlacementPrice        *Money     `bson:"placement_price,omitempty"`
	AciValue              *Money     `bson:"aci_value,omitempty"`
	IssueKind             string     `bson:"issue_kind"`
	CouponQuantityPerYear int32      `bson:"coupon_quantity_per_year"`
	MaturityDate          *Timestamp `bson:"maturity_date,omitempty"`
	StateRegDate          *Timestamp `bson:"state_reg_date,omitempty"`
	PlacementDate         *Timestamp `bson:"placement_date,omitempty"`
	RiskLevel             *RiskLevel `bson:"risk_level,omitempty"`
	FloatingCouponFlag    bool       `bson:"floating_coupon_flag"`
	PerpetualFlag         bool       `bson:"perpetual_flag"`
	AmortizationFlag      bool       `bson:"amortization_flag"`
	SubordinatedFlag      bool       `bson:"subordinated_flag"`
}

func (Bond) Kind() string { return "bond" }

// Etf is an exchange-traded fund.
type Etf struct {
	Common          `bson:",inline"`
	FixedCommission *Quotation `bson:"fixed_commission,omitempty"`
	FocusType       string     `bson:"focus_type,omitempty"`
	ReleasedDate    *Timestamp `bson:"released_date,omitempty"`
	NumShares       *Quotation `bson:"num_shares,omitempty"`
	RebalancingFreq string     `bson:"rebalancing_freq,omitempty"`
}

func (Etf) Kind() string { return "etf" }

// Future is a derivatives contract. Futures carry no ISIN.
type Future struct {
	Common                 `bson:",inline"`
	FirstTradeDate         *Timestamp `bson:"first_trade_date,omitempty"`
	LastTradeDate          *Timestamp `bson:"last_trade_date,omitempty"`
	ExpirationDate         *Timestamp `bson:"expiration_date,omitempty"`
	FuturesType            string     `bson:"futures_type,omitempty"`
	AssetType              string     `bson:"asset_type,omitempty"`
	BasicAsset             string     `bson:"basic_asset,omitempty"`
	BasicAssetSize         *Quotation `bson:"basic_asset_size,omitempty"`
	BasicAssetPositionUID  string     `bson:"basic_asset_position_uid,omitempty"`
}

func (Future) Kind() string { return "future" }
