package repositories

import (
	"context"
	"fmt"

	"agora/internal/models"
)

// ReportRepository backs the dashboard aggregation.
type ReportRepository interface {
	CountCustomers(ctx context.Context) (int, error)
	CountActive(ctx context.Context, table string) (int, error)
	// CountExpired counts rows that are still active but whose end_date
	// lies strictly before today.
	CountExpired(ctx context.Context, table, today string) (int, error)
	// TopExpired returns the up to 5 soonest-expired active rows joined
	// with the owning customer's display name, end_date ascending.
	TopExpired(ctx context.Context, table, today string) ([]*models.ExpiringService, error)
}

type reportRepo struct {
	db DB
}

func NewReportRepository(db DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) CountCustomers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(1) FROM customers`).Scan(&n)
	return n, err
}

func (r *reportRepo) CountActive(ctx context.Context, table string) (int, error) {
	var n int
	query := fmt.Sprintf("SELECT COUNT(1) FROM %s WHERE status=1", table)
	err := r.db.QueryRow(ctx, query).Scan(&n)
	return n, err
}

func (r *reportRepo) CountExpired(ctx context.Context, table, today string) (int, error) {
	var n int
	query := fmt.Sprintf("SELECT COUNT(1) FROM %s WHERE status=1 AND end_date < $1", table)
	err := r.db.QueryRow(ctx, query, today).Scan(&n)
	return n, err
}

func (r *reportRepo) TopExpired(ctx context.Context, table, today string) ([]*models.ExpiringService, error) {
	query := fmt.Sprintf(`
		SELECT
			t.id,
			t.domain_name,
			t.end_date,
			t.status,
			(c.first_name || ' ' || c.last_name) AS customer_name
		FROM %s t
		JOIN customers c ON c.id = t.customer_id
		WHERE t.status=1 AND t.end_date < $1
		ORDER BY t.end_date ASC
		LIMIT 5
	`, table)

	rows, err := r.db.Query(ctx, query, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expiring []*models.ExpiringService
	for rows.Next() {
		e := &models.ExpiringService{}
		if err := rows.Scan(&e.ID, &e.DomainName, &e.EndDate, &e.Status, &e.CustomerName); err != nil {
			return nil, err
		}
		expiring = append(expiring, e)
	}
	return expiring, rows.Err()
}
