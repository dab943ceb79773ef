package models

import (
	"time"
)

// Position is the derived per-ticker state from replaying the ledger. It is
// recomputed on every read and never persisted.
type Position struct {
	Ticker   string
	Quantity int64
	// CostBasis is the weighted-average price per share of the open position,
	// 0 when Quantity is 0.
	CostBasis float64
	// PurchaseDate is the earliest BUY contributing to the currently open
	// position. Partial sells do not reset it; a full liquidation does.
	PurchaseDate time.Time
}
