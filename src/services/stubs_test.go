package services

import (
	"context"
	"time"
	"tradeledger/src/clients/quotes"
)

// stubQuotes is a canned in-memory stand-in for the market-data gateway.
type stubQuotes struct {
	quotes     map[string]*quotes.Quote
	quotesErr  error
	history    map[string][]quotes.Bar
	historyErr map[string]error
}

func (s *stubQuotes) GetQuote(ctx context.Context, ticker string) (*quotes.Quote, error) {
	if s.quotesErr != nil {
		return nil, s.quotesErr
	}
	q, ok := s.quotes[ticker]
	if !ok {
		return nil, quotes.ErrNoQuote
	}
	return q, nil
}

func (s *stubQuotes) GetQuotes(ctx context.Context, tickers []string) (map[string]*quotes.Quote, error) {
	if s.quotesErr != nil {
		return nil, s.quotesErr
	}
	out := make(map[string]*quotes.Quote, len(tickers))
	for _, t := range tickers {
		if q, ok := s.quotes[t]; ok {
			out[t] = q
		}
	}
	return out, nil
}

func (s *stubQuotes) GetDailyHistory(ctx context.Context, ticker string, start, end time.Time) ([]quotes.Bar, error) {
	if err := s.historyErr[ticker]; err != nil {
		return nil, err
	}
	bars, ok := s.history[ticker]
	if !ok {
		return nil, quotes.ErrNoSeries
	}
	return bars, nil
}

func fptr(v float64) *float64 { return &v }
