package services

import (
	"sort"
	"time"
	"tradeledger/src/models"
	"tradeledger/src/utils"
)

type PositionServiceI interface {
	Aggregate(transactions []models.Transaction) map[string]*models.Position
}

// PositionService folds the append-only ledger into per-ticker positions.
// Positions are recomputed from scratch on every read; there is no cached
// materialized view.
type PositionService struct{}

func NewPositionService() *PositionService {
	return &PositionService{}
}

// Aggregate replays transactions in (created_at, id) order and returns the
// open positions keyed by ticker. Buys re-average the cost basis; sells
// remove shares at the current average so the remaining basis is unchanged.
// Tickers whose final quantity is exactly zero are pruned. Selling more than
// held is not rejected here, so a quantity may end up negative; callers that
// care warn about it but the fold itself keeps the arithmetic honest.
func (s *PositionService) Aggregate(transactions []models.Transaction) map[string]*models.Position {
	ordered := make([]models.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})

	positions := make(map[string]*models.Position)
	for _, t := range ordered {
		p, ok := positions[t.Ticker]
		if !ok {
			p = &models.Position{Ticker: t.Ticker}
			positions[t.Ticker] = p
		}
		applyTransaction(p, t)
	}

	for ticker, p := range positions {
		if p.Quantity == 0 {
			delete(positions, ticker)
		}
	}
	return positions
}

func applyTransaction(p *models.Position, t models.Transaction) {
	switch t.TransactionType {
	case models.TransactionBuy:
		totalCost := p.CostBasis*float64(p.Quantity) + t.Price*float64(t.Quantity)
		p.Quantity += t.Quantity
		if p.Quantity != 0 {
			p.CostBasis = totalCost / float64(p.Quantity)
		} else {
			p.CostBasis = 0
		}
		if p.PurchaseDate.IsZero() || t.CreatedAt.Before(p.PurchaseDate) {
			p.PurchaseDate = t.CreatedAt
		}
	case models.TransactionSell:
		totalCost := p.CostBasis * float64(p.Quantity)
		totalCost -= p.CostBasis * float64(t.Quantity)
		p.Quantity -= t.Quantity
		if p.Quantity > 0 {
			p.CostBasis = totalCost / float64(p.Quantity)
		} else {
			p.CostBasis = 0
		}
	}
	// A full liquidation closes the lot; the next buy opens a fresh one with
	// its own purchase date.
	if p.Quantity == 0 {
		p.PurchaseDate = time.Time{}
	}
}

// quantitiesAsOf is the incremental variant used by the as-traded history
// replay: it advances through ordered transactions up to (and including) the
// cutoff day and maintains net share counts only.
type quantityReplay struct {
	ordered    []models.Transaction
	next       int
	quantities map[string]int64
}

func newQuantityReplay(transactions []models.Transaction) *quantityReplay {
	ordered := make([]models.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID < ordered[j].ID
	})
	return &quantityReplay{ordered: ordered, quantities: make(map[string]int64)}
}

// advanceTo applies every transaction created up to the end of day (UTC).
// Days must be visited in ascending order.
func (r *quantityReplay) advanceTo(day time.Time) map[string]int64 {
	endOfDay := utils.Day(day).Add(24 * time.Hour)
	for r.next < len(r.ordered) && r.ordered[r.next].CreatedAt.Before(endOfDay) {
		t := r.ordered[r.next]
		switch t.TransactionType {
		case models.TransactionBuy:
			r.quantities[t.Ticker] += t.Quantity
		case models.TransactionSell:
			r.quantities[t.Ticker] -= t.Quantity
		}
		r.next++
	}
	return r.quantities
}
