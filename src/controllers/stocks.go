package controllers

import (
	"context"
	"strings"
	"time"

	"tradeledger/src/schemas"
	"tradeledger/src/services"
	"tradeledger/src/utils"
)

// StockQuote returns the current quote with its derived fields for one ticker.
func (c *Controller) StockQuote(ctx context.Context, ticker string) (*schemas.StockQuote, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, utils.ValidationError("ticker is required")
	}

	quote, err := c.Quotes.GetQuote(ctx, ticker)
	if err != nil {
		return nil, utils.UnresolvablePrice("could not look up " + ticker)
	}
	price, _ := quote.ResolvePrice()

	out := &schemas.StockQuote{
		Symbol:           quote.Symbol,
		LongName:         quote.LongName,
		Currency:         quote.Currency,
		CurrentPrice:     price,
		MarketCap:        quote.MarketCap,
		Volume:           quote.Volume,
		DayLow:           quote.DayLow,
		DayHigh:          quote.DayHigh,
		FiftyTwoWeekLow:  quote.FiftyTwoWeekLow,
		FiftyTwoWeekHigh: quote.FiftyTwoWeekHigh,
		TrailingPE:       quote.TrailingPE,
		EPS:              quote.EPS,
		Beta:             quote.Beta,
		DividendYield:    quote.DividendYield,
		TargetMeanPrice:  quote.TargetMeanPrice,
		Website:          quote.Website,
	}
	if quote.PreviousClose != nil {
		out.PreviousClose = *quote.PreviousClose
	}
	return out, nil
}

// StockHistory returns the daily OHLCV series for a ticker, downsampled to at
// most services.MaxSeriesPoints samples.
func (c *Controller) StockHistory(ctx context.Context, ticker, rng string) ([]schemas.Bar, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return nil, utils.ValidationError("ticker is required")
	}
	if rng == "" {
		rng = "1mo"
	}

	now := time.Now().UTC()
	start, err := utils.RangeStart(now, rng)
	if err != nil {
		return nil, utils.ValidationError(err.Error())
	}

	bars, err := c.Quotes.GetDailyHistory(ctx, ticker, start, now)
	if err != nil {
		return nil, utils.UnresolvablePrice("could not fetch history for " + ticker)
	}

	out := make([]schemas.Bar, len(bars))
	for i, b := range bars {
		out[i] = schemas.Bar{Date: b.Date, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
	}
	return services.Downsample(out), nil
}
