package services

import (
	"context"
	"testing"
	"tradeledger/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePrefs keeps preferences in a map and ignores the transaction handle.
type fakePrefs struct {
	rows map[string]*models.Preference
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{rows: make(map[string]*models.Preference)}
}

func (f *fakePrefs) Get(ctx context.Context, userID, key string) (*models.Preference, error) {
	p, ok := f.rows[userID+"/"+key]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (f *fakePrefs) GetForUpdate(ctx context.Context, userID, key string, tx pgx.Tx) (*models.Preference, bool, error) {
	p, ok := f.rows[userID+"/"+key]
	return p, ok, nil
}

func (f *fakePrefs) Upsert(ctx context.Context, p *models.Preference, tx pgx.Tx) error {
	f.rows[p.UserID+"/"+p.Key] = p
	return nil
}

func TestCashLedgerBalance(t *testing.T) {
	prefs := newFakePrefs()
	ledger := NewCashLedger(prefs)

	t.Run("unset key reads as zero", func(t *testing.T) {
		balance, err := ledger.Balance(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0.0, balance)
	})

	t.Run("reads the stored decimal", func(t *testing.T) {
		require.NoError(t, prefs.Upsert(context.Background(), &models.Preference{
			Key:   models.BalanceKey,
			Value: "2500.75",
		}, nil))

		balance, err := ledger.Balance(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2500.75, balance)
	})
}

func TestCashLedgerApplyTrade(t *testing.T) {
	prefs := newFakePrefs()
	ledger := NewCashLedger(prefs)
	ctx := context.Background()

	// sell credits
	balance, err := ledger.ApplyTrade(ctx, nil, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, balance)

	// buy debits, and may push the balance negative
	balance, err = ledger.ApplyTrade(ctx, nil, -1500.50)
	require.NoError(t, err)
	assert.Equal(t, -500.50, balance)

	stored, err := prefs.Get(ctx, "", models.BalanceKey)
	require.NoError(t, err)
	assert.Equal(t, "-500.50", stored.Value)
}

func TestBalanceEncoding(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{0, "0.00"},
		{2500.756, "2500.76"},
		{-10, "-10.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatBalance(tt.value))
	}

	parsed, err := ParseBalance("1234.56")
	require.NoError(t, err)
	assert.Equal(t, 1234.56, parsed)

	_, err = ParseBalance("not-a-number")
	assert.Error(t, err)
}
