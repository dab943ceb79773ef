package schemas

// StockQuote is the quote payload of GET /api/stock/{ticker}.
type StockQuote struct {
	Symbol           string  `json:"symbol"`
	LongName         string  `json:"longName"`
	Currency         string  `json:"currency"`
	CurrentPrice     float64 `json:"currentPrice"`
	PreviousClose    float64 `json:"previousClose"`
	MarketCap        float64 `json:"marketCap"`
	Volume           int64   `json:"volume"`
	DayLow           float64 `json:"dayLow"`
	DayHigh          float64 `json:"dayHigh"`
	FiftyTwoWeekLow  float64 `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh float64 `json:"fiftyTwoWeekHigh"`
	TrailingPE       float64 `json:"trailingPE"`
	EPS              float64 `json:"trailingEps"`
	Beta             float64 `json:"beta"`
	DividendYield    float64 `json:"dividendYield"`
	TargetMeanPrice  float64 `json:"targetMeanPrice"`
	Website          string  `json:"website"`
}

// Bar is one daily OHLCV sample of GET /api/stock_history/{ticker}.
type Bar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}
