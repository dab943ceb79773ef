package services

import (
	"context"
	"errors"
	"testing"
	"tradeledger/src/clients/quotes"
	"tradeledger/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueComputesUnrealizedPL(t *testing.T) {
	stub := &stubQuotes{quotes: map[string]*quotes.Quote{
		"AAPL": {Symbol: "AAPL", RegularPrice: fptr(120), Website: "https://www.apple.com/investor"},
	}}
	s := NewValuationService(stub)

	details, err := s.Value(context.Background(), map[string]*models.Position{
		"AAPL": {Ticker: "AAPL", Quantity: 10, CostBasis: 100, PurchaseDate: day(0)},
	})
	require.NoError(t, err)
	require.Len(t, details, 1)

	d := details[0]
	assert.Equal(t, "AAPL", d.Ticker)
	assert.Equal(t, 120.0, d.CurrentPrice)
	assert.Equal(t, 1200.0, d.TotalValue)
	assert.Equal(t, 200.0, d.UnrealizedPL)
	assert.Equal(t, "2025-01-01", d.PurchaseDate)
	assert.Equal(t, "apple.com", d.CompanyLogo)
	assert.False(t, d.PriceUnavailable)
}

func TestValueFallsBackToPreviousClose(t *testing.T) {
	stub := &stubQuotes{quotes: map[string]*quotes.Quote{
		"MSFT": {Symbol: "MSFT", PreviousClose: fptr(310)},
	}}
	s := NewValuationService(stub)

	details, err := s.Value(context.Background(), map[string]*models.Position{
		"MSFT": {Ticker: "MSFT", Quantity: 2, CostBasis: 300},
	})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, 310.0, details[0].CurrentPrice)
	assert.False(t, details[0].PriceUnavailable)
}

func TestValueFlagsUnpricedTickers(t *testing.T) {
	stub := &stubQuotes{quotes: map[string]*quotes.Quote{
		"AAPL": {Symbol: "AAPL", RegularPrice: fptr(120)},
	}}
	s := NewValuationService(stub)

	details, err := s.Value(context.Background(), map[string]*models.Position{
		"AAPL":  {Ticker: "AAPL", Quantity: 10, CostBasis: 100},
		"WEIRD": {Ticker: "WEIRD", Quantity: 3, CostBasis: 50},
	})
	require.NoError(t, err)
	require.Len(t, details, 2)

	// sorted by ticker: AAPL first
	assert.False(t, details[0].PriceUnavailable)
	assert.Equal(t, 1200.0, details[0].TotalValue)

	assert.True(t, details[1].PriceUnavailable)
	assert.Equal(t, 0.0, details[1].CurrentPrice)
	assert.Equal(t, 0.0, details[1].TotalValue)
	assert.Equal(t, -150.0, details[1].UnrealizedPL)
	assert.Equal(t, "weird.com", details[1].CompanyLogo)
}

func TestValueSurvivesGatewayOutage(t *testing.T) {
	stub := &stubQuotes{quotesErr: errors.New("gateway down")}
	s := NewValuationService(stub)

	details, err := s.Value(context.Background(), map[string]*models.Position{
		"AAPL": {Ticker: "AAPL", Quantity: 10, CostBasis: 100},
	})
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.True(t, details[0].PriceUnavailable)
	assert.Equal(t, 0.0, details[0].CurrentPrice)
}

func TestLogoDomain(t *testing.T) {
	tests := []struct {
		name     string
		ticker   string
		quote    *quotes.Quote
		expected string
	}{
		{"no quote falls back to ticker", "AAPL", nil, "aapl.com"},
		{"strips scheme and www", "AAPL", &quotes.Quote{Website: "https://www.apple.com"}, "apple.com"},
		{"strips path", "MSFT", &quotes.Quote{Website: "http://microsoft.com/en-us"}, "microsoft.com"},
		{"empty website falls back", "GOOG", &quotes.Quote{}, "goog.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, logoDomain(tt.ticker, tt.quote))
		})
	}
}
