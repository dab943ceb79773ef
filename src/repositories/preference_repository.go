package repositories

import (
	"context"

	"tradeledger/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PreferenceRepository interface {
	Get(ctx context.Context, userID, key string) (*models.Preference, error)
	// GetForUpdate reads a preference row inside tx with a row-level lock,
	// serializing concurrent writers on the same (user_id, key).
	GetForUpdate(ctx context.Context, userID, key string, tx pgx.Tx) (*models.Preference, bool, error)
	Upsert(ctx context.Context, p *models.Preference, tx pgx.Tx) error
}

type preferenceRepo struct {
	db *pgxpool.Pool
}

func NewPreferenceRepository(db *pgxpool.Pool) PreferenceRepository {
	return &preferenceRepo{db: db}
}

func (r *preferenceRepo) Get(ctx context.Context, userID, key string) (*models.Preference, error) {
	var p models.Preference
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, key, value FROM preferences WHERE user_id = $1 AND key = $2`,
		userID, key,
	).Scan(&p.ID, &p.UserID, &p.Key, &p.Value)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *preferenceRepo) GetForUpdate(ctx context.Context, userID, key string, tx pgx.Tx) (*models.Preference, bool, error) {
	var p models.Preference
	err := tx.QueryRow(ctx,
		`SELECT id, user_id, key, value FROM preferences WHERE user_id = $1 AND key = $2 FOR UPDATE`,
		userID, key,
	).Scan(&p.ID, &p.UserID, &p.Key, &p.Value)
	if err == pgx.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

// Upsert inserts or replaces the value for (user_id, key). When tx is nil the
// write runs in its own transaction; trade execution passes the shared tx.
func (r *preferenceRepo) Upsert(ctx context.Context, p *models.Preference, tx pgx.Tx) error {
	query := `
		INSERT INTO preferences (user_id, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value
		RETURNING id`

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

		err = tx.QueryRow(ctx, query, p.UserID, p.Key, p.Value).Scan(&p.ID)
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	return tx.QueryRow(ctx, query, p.UserID, p.Key, p.Value).Scan(&p.ID)
}
