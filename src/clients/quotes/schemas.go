package quotes

// Quote carries the per-ticker fields the gateway can resolve. The three
// price fields keep pointer semantics so the fallback chain can tell "absent"
// from zero.
type Quote struct {
	Symbol           string
	LongName         string
	Currency         string
	Website          string
	RegularPrice     *float64
	PostMarketPrice  *float64
	PreviousClose    *float64
	MarketCap        float64
	Volume           int64
	DayLow           float64
	DayHigh          float64
	FiftyTwoWeekLow  float64
	FiftyTwoWeekHigh float64
	TrailingPE       float64
	EPS              float64
	Beta             float64
	DividendYield    float64
	TargetMeanPrice  float64
}

// ResolvePrice walks the fallback chain: live regular-market price, then
// post-market price, then previous close. ok is false when none is present.
func (q *Quote) ResolvePrice() (price float64, ok bool) {
	for _, p := range []*float64{q.RegularPrice, q.PostMarketPrice, q.PreviousClose} {
		if p != nil {
			return *p, true
		}
	}
	return 0, false
}

// Bar is one daily OHLCV sample as returned by the gateway.
type Bar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Wire shapes of the upstream chart/quote API.

type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
		Error  interface{}   `json:"error"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                     string   `json:"symbol"`
	LongName                   string   `json:"longName"`
	Currency                   string   `json:"currency"`
	Website                    string   `json:"website"`
	RegularMarketPrice         *float64 `json:"regularMarketPrice"`
	PostMarketPrice            *float64 `json:"postMarketPrice"`
	RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
	MarketCap                  float64  `json:"marketCap"`
	RegularMarketVolume        int64    `json:"regularMarketVolume"`
	RegularMarketDayLow        float64  `json:"regularMarketDayLow"`
	RegularMarketDayHigh       float64  `json:"regularMarketDayHigh"`
	FiftyTwoWeekLow            float64  `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh           float64  `json:"fiftyTwoWeekHigh"`
	TrailingPE                 float64  `json:"trailingPE"`
	EpsTrailingTwelveMonths    float64  `json:"epsTrailingTwelveMonths"`
	Beta                       float64  `json:"beta"`
	DividendYield              float64  `json:"dividendYield"`
	TargetMeanPrice            float64  `json:"targetMeanPrice"`
}

func (r quoteResult) toQuote() *Quote {
	return &Quote{
		Symbol:           r.Symbol,
		LongName:         r.LongName,
		Currency:         r.Currency,
		Website:          r.Website,
		RegularPrice:     r.RegularMarketPrice,
		PostMarketPrice:  r.PostMarketPrice,
		PreviousClose:    r.RegularMarketPreviousClose,
		MarketCap:        r.MarketCap,
		Volume:           r.RegularMarketVolume,
		DayLow:           r.RegularMarketDayLow,
		DayHigh:          r.RegularMarketDayHigh,
		FiftyTwoWeekLow:  r.FiftyTwoWeekLow,
		FiftyTwoWeekHigh: r.FiftyTwoWeekHigh,
		TrailingPE:       r.TrailingPE,
		EPS:              r.EpsTrailingTwelveMonths,
		Beta:             r.Beta,
		DividendYield:    r.DividendYield,
		TargetMeanPrice:  r.TargetMeanPrice,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}
