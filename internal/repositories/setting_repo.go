package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// SettingRepository stores opaque string values under unique keys with
// upsert semantics.
type SettingRepository interface {
	// Get returns the stored value, or "" with found=false when the key
	// has never been set.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

type settingRepo struct {
	db DB
}

func NewSettingRepository(db DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := `SELECT value FROM app_settings WHERE key=$1`
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *settingRepo) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO app_settings (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value=excluded.value, updated_at=NOW()
	`
	_, err := r.db.Exec(ctx, query, key, value)
	return err
}
