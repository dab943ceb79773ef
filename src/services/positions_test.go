package services

import (
	"testing"
	"time"
	"tradeledger/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func tx(id int64, ticker string, qty int64, txType models.TransactionType, price float64, created time.Time) models.Transaction {
	return models.Transaction{
		ID:              id,
		Ticker:          ticker,
		Quantity:        qty,
		TransactionType: txType,
		Price:           price,
		CreatedAt:       created,
	}
}

func TestAggregateWeightedAverage(t *testing.T) {
	s := NewPositionService()

	t.Run("single buy sets basis to its price", func(t *testing.T) {
		positions := s.Aggregate([]models.Transaction{
			tx(1, "AAPL", 10, models.TransactionBuy, 123.45, day(0)),
		})
		require.Contains(t, positions, "AAPL")
		assert.Equal(t, int64(10), positions["AAPL"].Quantity)
		assert.Equal(t, 123.45, positions["AAPL"].CostBasis)
	})

	t.Run("two buys average by weight", func(t *testing.T) {
		positions := s.Aggregate([]models.Transaction{
			tx(1, "AAPL", 10, models.TransactionBuy, 100, day(0)),
			tx(2, "AAPL", 10, models.TransactionBuy, 200, day(1)),
		})
		require.Contains(t, positions, "AAPL")
		assert.Equal(t, int64(20), positions["AAPL"].Quantity)
		assert.Equal(t, 150.0, positions["AAPL"].CostBasis)
	})

	t.Run("partial sell keeps remaining basis", func(t *testing.T) {
		positions := s.Aggregate([]models.Transaction{
			tx(1, "AAPL", 10, models.TransactionBuy, 100, day(0)),
			tx(2, "AAPL", 5, models.TransactionSell, 140, day(1)),
		})
		require.Contains(t, positions, "AAPL")
		assert.Equal(t, int64(5), positions["AAPL"].Quantity)
		assert.Equal(t, 100.0, positions["AAPL"].CostBasis)
	})
}

func TestAggregateNetQuantity(t *testing.T) {
	s := NewPositionService()
	transactions := []models.Transaction{
		tx(1, "MSFT", 7, models.TransactionBuy, 300, day(0)),
		tx(2, "MSFT", 3, models.TransactionBuy, 310, day(1)),
		tx(3, "MSFT", 4, models.TransactionSell, 320, day(2)),
		tx(4, "GOOG", 2, models.TransactionBuy, 150, day(2)),
	}

	positions := s.Aggregate(transactions)
	// quantity == sum(buys) - sum(sells), per ticker
	assert.Equal(t, int64(6), positions["MSFT"].Quantity)
	assert.Equal(t, int64(2), positions["GOOG"].Quantity)
}

func TestAggregatePrunesFlatPositions(t *testing.T) {
	s := NewPositionService()
	positions := s.Aggregate([]models.Transaction{
		tx(1, "NVDA", 10, models.TransactionBuy, 500, day(0)),
		tx(2, "NVDA", 10, models.TransactionSell, 550, day(1)),
		tx(3, "AMD", 1, models.TransactionBuy, 120, day(1)),
	})

	assert.NotContains(t, positions, "NVDA")
	assert.Contains(t, positions, "AMD")
}

func TestAggregateFullLiquidationZerosBasis(t *testing.T) {
	s := NewPositionService()
	positions := s.Aggregate([]models.Transaction{
		tx(1, "TSLA", 10, models.TransactionBuy, 200, day(0)),
		tx(2, "TSLA", 10, models.TransactionSell, 250, day(1)),
		tx(3, "TSLA", 4, models.TransactionBuy, 260, day(2)),
	})

	require.Contains(t, positions, "TSLA")
	assert.Equal(t, int64(4), positions["TSLA"].Quantity)
	assert.Equal(t, 260.0, positions["TSLA"].CostBasis)
	// the new lot's purchase date starts fresh after the liquidation
	assert.Equal(t, day(2), positions["TSLA"].PurchaseDate)
}

func TestAggregateOversellGoesNegative(t *testing.T) {
	s := NewPositionService()
	positions := s.Aggregate([]models.Transaction{
		tx(1, "AAPL", 5, models.TransactionSell, 100, day(0)),
	})

	// oversell is not clamped; the negative position survives the fold
	require.Contains(t, positions, "AAPL")
	assert.Equal(t, int64(-5), positions["AAPL"].Quantity)
	assert.Equal(t, 0.0, positions["AAPL"].CostBasis)
}

func TestAggregatePurchaseDate(t *testing.T) {
	s := NewPositionService()
	positions := s.Aggregate([]models.Transaction{
		tx(1, "AAPL", 10, models.TransactionBuy, 100, day(0)),
		tx(2, "AAPL", 5, models.TransactionSell, 110, day(3)),
		tx(3, "AAPL", 5, models.TransactionBuy, 120, day(5)),
	})

	// earliest buy of the still-open position, not reset by the partial sell
	require.Contains(t, positions, "AAPL")
	assert.Equal(t, day(0), positions["AAPL"].PurchaseDate)
}

func TestAggregateReplayOrderIsDeterministic(t *testing.T) {
	s := NewPositionService()
	// same timestamp: insertion (id) order breaks the tie
	same := day(0)
	transactions := []models.Transaction{
		tx(2, "AAPL", 10, models.TransactionSell, 110, same),
		tx(1, "AAPL", 10, models.TransactionBuy, 100, same),
	}

	positions := s.Aggregate(transactions)
	assert.NotContains(t, positions, "AAPL")
}
