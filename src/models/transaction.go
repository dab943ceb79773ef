package models

import (
	"time"
)

type TransactionType string

const (
	TransactionBuy  TransactionType = "BUY"
	TransactionSell TransactionType = "SELL"
)

func (t TransactionType) Valid() bool {
	return t == TransactionBuy || t == TransactionSell
}

// Transaction is one immutable row of the append-only trade ledger. IDs are
// store-assigned and monotonic; replay order is (created_at, id).
type Transaction struct {
	ID              int64           `db:"id"`
	Ticker          string          `db:"ticker"`
	Quantity        int64           `db:"quantity"`
	TransactionType TransactionType `db:"transaction_type"`
	Price           float64         `db:"price"`
	CreatedAt       time.Time       `db:"created_at"`
}
