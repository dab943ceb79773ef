package repositories

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"tradeledger/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool connects to the database named by TEST_DATABASE_URL. The schema is
// expected to be migrated already (go run ./migrations against the test
// database). Tests are skipped when the variable is unset so the unit suite
// stays self-contained.
func testPool(t *testing.T) *pgxpool.Pool {
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

func TestTransactionRepository(t *testing.T) {
	pool := testPool(t)
	repo := NewTransactionRepository(pool)
	ctx := context.Background()

	ticker := fmt.Sprintf("TST%d", time.Now().UnixNano()%100000)

	first := &models.Transaction{Ticker: ticker, Quantity: 10, TransactionType: models.TransactionBuy, Price: 100}
	require.NoError(t, repo.Create(ctx, first, nil))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &models.Transaction{Ticker: ticker, Quantity: 4, TransactionType: models.TransactionSell, Price: 110}
	require.NoError(t, repo.Create(ctx, second, nil))
	assert.Greater(t, second.ID, first.ID)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)

	var mine []models.Transaction
	for _, transaction := range all {
		if transaction.Ticker == ticker {
			mine = append(mine, transaction)
		}
	}
	require.Len(t, mine, 2)
	assert.Equal(t, first.ID, mine[0].ID)
	assert.Equal(t, models.TransactionSell, mine[1].TransactionType)
}

func TestPreferenceRepositoryUpsert(t *testing.T) {
	pool := testPool(t)
	repo := NewPreferenceRepository(pool)
	ctx := context.Background()

	userID := fmt.Sprintf("user-%d", time.Now().UnixNano())

	p := &models.Preference{UserID: userID, Key: "theme", Value: "dark"}
	require.NoError(t, repo.Upsert(ctx, p, nil))
	assert.NotZero(t, p.ID)

	// second upsert replaces the value, keeping one row per (user_id, key)
	p2 := &models.Preference{UserID: userID, Key: "theme", Value: "light"}
	require.NoError(t, repo.Upsert(ctx, p2, nil))
	assert.Equal(t, p.ID, p2.ID)

	stored, err := repo.Get(ctx, userID, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", stored.Value)
}

func TestPreferenceRepositoryGetForUpdate(t *testing.T) {
	pool := testPool(t)
	repo := NewPreferenceRepository(pool)
	ctx := context.Background()

	userID := fmt.Sprintf("user-%d", time.Now().UnixNano())

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	// absent row reports found=false without an error
	_, found, err := repo.GetForUpdate(ctx, userID, "balance", tx)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Upsert(ctx, &models.Preference{UserID: userID, Key: "balance", Value: "100.00"}, tx))

	stored, found, err := repo.GetForUpdate(ctx, userID, "balance", tx)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "100.00", stored.Value)
}
