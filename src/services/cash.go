package services

import (
	"context"
	"strconv"

	"tradeledger/src/models"
	"tradeledger/src/repositories"

	"github.com/jackc/pgx/v5"
)

type CashLedgerI interface {
	Balance(ctx context.Context) (float64, error)
	ApplyTrade(ctx context.Context, tx pgx.Tx, delta float64) (float64, error)
}

// CashLedger tracks the single scalar cash balance stored as a string-encoded
// decimal under the reserved preference key. Buys debit it, sells credit it.
// No lower bound is enforced; the balance may go negative.
type CashLedger struct {
	prefs  repositories.PreferenceRepository
	userID string
}

func NewCashLedger(prefs repositories.PreferenceRepository) *CashLedger {
	return &CashLedger{prefs: prefs, userID: ""}
}

// Balance reads the current balance; an unset key reads as 0.
func (l *CashLedger) Balance(ctx context.Context) (float64, error) {
	p, err := l.prefs.Get(ctx, l.userID, models.BalanceKey)
	if err == pgx.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return ParseBalance(p.Value)
}

// ApplyTrade adjusts the balance by delta (negative for a buy, positive for a
// sell) inside the caller's transaction. The preference row is locked for the
// duration of tx, so concurrent trades serialize instead of losing updates.
// The caller commits tx together with the ledger insert as one atomic unit.
func (l *CashLedger) ApplyTrade(ctx context.Context, tx pgx.Tx, delta float64) (float64, error) {
	balance := 0.0
	p, found, err := l.prefs.GetForUpdate(ctx, l.userID, models.BalanceKey, tx)
	if err != nil {
		return 0, err
	}
	if found {
		balance, err = ParseBalance(p.Value)
		if err != nil {
			return 0, err
		}
	}

	balance += delta
	updated := &models.Preference{UserID: l.userID, Key: models.BalanceKey, Value: FormatBalance(balance)}
	if err := l.prefs.Upsert(ctx, updated, tx); err != nil {
		return 0, err
	}
	return balance, nil
}

func ParseBalance(raw string) (float64, error) {
	return strconv.ParseFloat(raw, 64)
}

func FormatBalance(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
