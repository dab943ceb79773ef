package controllers

import (
	"context"
	"os"
	"testing"

	"tradeledger/src/clients/quotes"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The tests below run against the database named by TEST_DATABASE_URL (schema
// already migrated) and are skipped otherwise.
func integrationPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestBuyPersistsBalanceAndLedgerAtomically(t *testing.T) {
	pool := integrationPool(t)
	q := &fakeQuotes{quotes: map[string]*quotes.Quote{
		"AAPL": {Symbol: "AAPL", RegularPrice: price(120)},
	}}
	c := NewController(pool, q)
	ctx := context.Background()

	before, err := c.Cash.Balance(ctx)
	require.NoError(t, err)
	ledgerBefore, err := c.Transactions.GetAll(ctx)
	require.NoError(t, err)

	resp, err := c.Buy(ctx, "AAPL", 10)
	require.NoError(t, err)
	assert.NotZero(t, resp.TransactionID)
	assert.Equal(t, before-1200, resp.Balance)

	after, err := c.Cash.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, before-1200, after)

	ledgerAfter, err := c.Transactions.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, ledgerAfter, len(ledgerBefore)+1)
	assert.Equal(t, resp.TransactionID, ledgerAfter[len(ledgerAfter)-1].ID)
}

func TestFailedInsertRollsBackCashDebit(t *testing.T) {
	pool := integrationPool(t)
	// a negative resolved price violates the ledger's price check, so the
	// insert fails after the balance row was already updated inside the
	// transaction
	q := &fakeQuotes{quotes: map[string]*quotes.Quote{
		"BAD": {Symbol: "BAD", RegularPrice: price(-5)},
	}}
	c := NewController(pool, q)
	ctx := context.Background()

	before, err := c.Cash.Balance(ctx)
	require.NoError(t, err)
	ledgerBefore, err := c.Transactions.GetAll(ctx)
	require.NoError(t, err)

	_, err = c.Buy(ctx, "BAD", 1)
	require.Error(t, err)

	after, err := c.Cash.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	ledgerAfter, err := c.Transactions.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, ledgerAfter, len(ledgerBefore))
}
