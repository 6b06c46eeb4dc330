package repositories

import (
	"context"
)

// AdminRepository stores the single administrator account. The table
// holds zero or one row, set exactly once through the setup endpoint.
type AdminRepository interface {
	Exists(ctx context.Context) (bool, error)
	Create(ctx context.Context, username, password string) error
	GetPassword(ctx context.Context, username string) (string, error)
}

type adminRepo struct {
	db DB
}

func NewAdminRepository(db DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Exists(ctx context.Context) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM admins)`
	if err := r.db.QueryRow(ctx, query).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *adminRepo) Create(ctx context.Context, username, password string) error {
	query := `INSERT INTO admins (username, password) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, username, password)
	return err
}

// GetPassword returns pgx.ErrNoRows for an unknown username.
func (r *adminRepo) GetPassword(ctx context.Context, username string) (string, error) {
	var password string
	query := `SELECT password FROM admins WHERE username=$1`
	if err := r.db.QueryRow(ctx, query, username).Scan(&password); err != nil {
		return "", err
	}
	return password, nil
}
