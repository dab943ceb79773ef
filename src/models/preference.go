package models

// Preference is a generic (user_id, key) -> value row. The cash balance is
// stored under the reserved key below as a string-encoded decimal.
type Preference struct {
	ID     int64  `db:"id"`
	UserID string `db:"user_id"`
	Key    string `db:"key"`
	Value  string `db:"value"`
}

const BalanceKey = "portfolio_balance"
