package repositories

import (
	"context"

	"tradeledger/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository interface {
	GetAll(ctx context.Context) ([]models.Transaction, error)
	Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

// GetAll returns the whole ledger in replay order (created_at, then id).
func (r *transactionRepo) GetAll(ctx context.Context) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, ticker, quantity, transaction_type, price, created_at
		 FROM transactions
		 ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.Ticker, &t.Quantity, &t.TransactionType, &t.Price, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

// Create appends one transaction. The id and created_at are store-assigned
// and written back to t. When tx is nil a throwaway transaction is opened;
// trade execution always passes the shared tx so the insert commits
// atomically with the cash-balance update.
func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error {
	query := `
		INSERT INTO transactions (ticker, quantity, transaction_type, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	var err error
	if tx == nil {
		tx, err = r.db.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback(ctx)
			}
		}()

		err = tx.QueryRow(ctx, query,
			t.Ticker, t.Quantity, t.TransactionType, t.Price,
		).Scan(&t.ID, &t.CreatedAt)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	return tx.QueryRow(ctx, query,
		t.Ticker, t.Quantity, t.TransactionType, t.Price,
	).Scan(&t.ID, &t.CreatedAt)
}
