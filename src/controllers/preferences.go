package controllers

import (
	"context"

	"tradeledger/src/models"
	"tradeledger/src/schemas"
	"tradeledger/src/utils"

	"github.com/jackc/pgx/v5"
)

// GetPreference looks up a single (user_id, key) value.
func (c *Controller) GetPreference(ctx context.Context, userID, key string) (*schemas.PreferenceResponse, error) {
	if key == "" {
		return nil, utils.ValidationError("key is required")
	}

	p, err := c.Preferences.Get(ctx, userID, key)
	if err == pgx.ErrNoRows {
		return nil, utils.NotFound("no preference stored under " + key)
	}
	if err != nil {
		return nil, utils.PersistenceError("could not read preference")
	}
	return &schemas.PreferenceResponse{Key: p.Key, Value: p.Value}, nil
}

// SetPreference upserts a (user_id, key) value.
func (c *Controller) SetPreference(ctx context.Context, userID, key, value string) error {
	if key == "" {
		return utils.ValidationError("key is required")
	}

	p := &models.Preference{UserID: userID, Key: key, Value: value}
	if err := c.Preferences.Upsert(ctx, p, nil); err != nil {
		return utils.PersistenceError("could not store preference")
	}
	return nil
}
