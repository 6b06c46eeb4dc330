package repositories

import (
	"context"
	"fmt"
	"strings"

	"agora/internal/common"
	"agora/internal/models"
)

// Ledger tables.
const (
	TableIncomes  = "incomes"
	TableExpenses = "expenses"
)

// LedgerListOptions bounds the date column inclusively when Start/End
// are set.
type LedgerListOptions struct {
	Start  string
	End    string
	Limit  int
	Offset int
}

type LedgerRepository interface {
	Create(ctx context.Context, table string, entry *models.LedgerEntry) error
	GetByID(ctx context.Context, table, id string) (*models.LedgerEntry, error)
	Exists(ctx context.Context, table, id string) (bool, error)
	List(ctx context.Context, table string, opts LedgerListOptions) ([]*models.LedgerEntry, error)
	Update(ctx context.Context, table, id string, update *common.UpdateBuilder) error
	Delete(ctx context.Context, table, id string) error
}

type ledgerRepo struct {
	db DB
}

func NewLedgerRepository(db DB) LedgerRepository {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) Create(ctx context.Context, table string, e *models.LedgerEntry) error {
	query := fmt.Sprintf("INSERT INTO %s (id, date, description, amount) VALUES ($1, $2, $3, $4)", table)
	_, err := r.db.Exec(ctx, query, e.ID, e.Date, e.Description, e.Amount)
	return err
}

func (r *ledgerRepo) GetByID(ctx context.Context, table, id string) (*models.LedgerEntry, error) {
	e := &models.LedgerEntry{}
	query := fmt.Sprintf("SELECT id, date, description, amount FROM %s WHERE id=$1", table)
	if err := r.db.QueryRow(ctx, query, id).Scan(&e.ID, &e.Date, &e.Description, &e.Amount); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ledgerRepo) Exists(ctx context.Context, table, id string) (bool, error) {
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id=$1)", table)
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *ledgerRepo) List(ctx context.Context, table string, opts LedgerListOptions) ([]*models.LedgerEntry, error) {
	var (
		conditions []string
		args       []any
	)
	if opts.Start != "" {
		args = append(args, opts.Start)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if opts.End != "" {
		args = append(args, opts.End)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, opts.Limit, opts.Offset)

	query := fmt.Sprintf(`
		SELECT id, date, description, amount
		FROM %s
		%s
		ORDER BY date DESC
		LIMIT $%d OFFSET $%d
	`, table, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.LedgerEntry
	for rows.Next() {
		e := &models.LedgerEntry{}
		if err := rows.Scan(&e.ID, &e.Date, &e.Description, &e.Amount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *ledgerRepo) Update(ctx context.Context, table, id string, update *common.UpdateBuilder) error {
	if update.Empty() {
		return nil
	}
	query, args := update.SQL(table, id)
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *ledgerRepo) Delete(ctx context.Context, table, id string) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id=$1", table), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
