package repositories

import (
	"context"
	"time"
)

// TokenRepository stores the opaque bearer tokens issued at login.
type TokenRepository interface {
	Insert(ctx context.Context, token, username string, expiresAt time.Time) error
	// GetUsername resolves a token that has not expired yet; it returns
	// pgx.ErrNoRows for unknown or expired tokens.
	GetUsername(ctx context.Context, token string) (string, error)
	DeleteByUsername(ctx context.Context, username string) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type tokenRepo struct {
	db DB
}

func NewTokenRepository(db DB) TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) Insert(ctx context.Context, token, username string, expiresAt time.Time) error {
	query := `INSERT INTO admin_tokens (token, username, expires_at) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(ctx, query, token, username, expiresAt)
	return err
}

func (r *tokenRepo) GetUsername(ctx context.Context, token string) (string, error) {
	var username string
	query := `SELECT username FROM admin_tokens WHERE token=$1 AND expires_at > NOW()`
	if err := r.db.QueryRow(ctx, query, token).Scan(&username); err != nil {
		return "", err
	}
	return username, nil
}

func (r *tokenRepo) DeleteByUsername(ctx context.Context, username string) error {
	query := `DELETE FROM admin_tokens WHERE username=$1`
	_, err := r.db.Exec(ctx, query, username)
	return err
}

// DeleteByToken is idempotent: deleting an absent token is not an error.
func (r *tokenRepo) DeleteByToken(ctx context.Context, token string) error {
	query := `DELETE FROM admin_tokens WHERE token=$1`
	_, err := r.db.Exec(ctx, query, token)
	return err
}

func (r *tokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	query := `DELETE FROM admin_tokens WHERE expires_at <= NOW()`
	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
