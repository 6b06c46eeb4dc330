package repositories

import (
	"context"
	"fmt"
	"strings"

	"agora/internal/common"
	"agora/internal/models"
)

// CustomerListOptions carries the list filters. Query is matched
// case-insensitively as a substring across the contact columns.
type CustomerListOptions struct {
	Query  string
	Sort   string // name|company|customer_no|renewals
	Dir    string // asc|desc
	Limit  int
	Offset int
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Exists(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, opts CustomerListOptions) ([]*models.Customer, error)
	NextCustomerNo(ctx context.Context) (int, error)
	Update(ctx context.Context, id string, update *common.UpdateBuilder) error
	Delete(ctx context.Context, id string) error
}

type customerRepo struct {
	db DB
}

func NewCustomerRepository(db DB) CustomerRepository {
	return &customerRepo{db: db}
}

const customerColumns = `id, customer_no, password, first_name, last_name, company, registration_date,
		email1, email2, email3, phone1, phone2, address, city, tax_office, tax_no, description`

func (r *customerRepo) Create(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.CustomerNo, c.Password, c.FirstName, c.LastName, c.Company, c.RegistrationDate,
		c.Email1, c.Email2, c.Email3, c.Phone1, c.Phone2, c.Address, c.City, c.TaxOffice, c.TaxNo, c.Description)
	return err
}

func (r *customerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	c := &models.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.CustomerNo, &c.Password, &c.FirstName, &c.LastName, &c.Company, &c.RegistrationDate,
		&c.Email1, &c.Email2, &c.Email3, &c.Phone1, &c.Phone2, &c.Address, &c.City, &c.TaxOffice, &c.TaxNo, &c.Description)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM customers WHERE id=$1)`
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// customerSortColumn allow-lists the sort key, matched
// case-insensitively; anything unknown falls back to the customer's
// display name.
func customerSortColumn(sort string) string {
	switch strings.ToLower(sort) {
	case "company":
		return "c.company"
	case "customer_no":
		return "c.customer_no"
	case "renewals":
		return "total_renewals"
	default:
		return "full_name"
	}
}

func sortDirection(dir string) string {
	if strings.EqualFold(dir, "desc") {
		return "DESC"
	}
	return "ASC"
}

func (r *customerRepo) List(ctx context.Context, opts CustomerListOptions) ([]*models.Customer, error) {
	var (
		where string
		args  []any
	)
	if q := strings.TrimSpace(opts.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		where = `
		WHERE
			CAST(c.customer_no AS TEXT) LIKE $1 OR
			LOWER(c.first_name) LIKE $1 OR
			LOWER(c.last_name) LIKE $1 OR
			LOWER(c.company) LIKE $1 OR
			LOWER(c.email1) LIKE $1 OR
			LOWER(COALESCE(c.email2,'')) LIKE $1 OR
			LOWER(COALESCE(c.email3,'')) LIKE $1 OR
			LOWER(c.phone1) LIKE $1 OR
			LOWER(COALESCE(c.phone2,'')) LIKE $1`
		args = append(args, like)
	}

	orderBy := fmt.Sprintf("%s %s", customerSortColumn(opts.Sort), sortDirection(opts.Dir))
	args = append(args, opts.Limit, opts.Offset)

	query := fmt.Sprintf(`
		SELECT
			c.id, c.customer_no, c.password, c.first_name, c.last_name, c.company, c.registration_date,
			c.email1, c.email2, c.email3, c.phone1, c.phone2, c.address, c.city, c.tax_office, c.tax_no, c.description,
			(c.first_name || ' ' || c.last_name) AS full_name,
			(
				COALESCE((SELECT SUM(renewal_count) FROM hostings h WHERE h.customer_id=c.id),0) +
				COALESCE((SELECT SUM(renewal_count) FROM domains d WHERE d.customer_id=c.id),0) +
				COALESCE((SELECT SUM(renewal_count) FROM ssls s WHERE s.customer_id=c.id),0)
			) AS total_renewals
		FROM customers c
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, where, orderBy, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c := &models.Customer{}
		var totalRenewals int
		if err := rows.Scan(
			&c.ID, &c.CustomerNo, &c.Password, &c.FirstName, &c.LastName, &c.Company, &c.RegistrationDate,
			&c.Email1, &c.Email2, &c.Email3, &c.Phone1, &c.Phone2, &c.Address, &c.City, &c.TaxOffice, &c.TaxNo, &c.Description,
			&c.FullName, &totalRenewals); err != nil {
			return nil, err
		}
		c.TotalRenewals = &totalRenewals
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// NextCustomerNo returns max(customer_no)+1, starting from 1 on an
// empty table.
func (r *customerRepo) NextCustomerNo(ctx context.Context) (int, error) {
	var next int
	query := `SELECT COALESCE(MAX(customer_no),0)+1 FROM customers`
	if err := r.db.QueryRow(ctx, query).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}

func (r *customerRepo) Update(ctx context.Context, id string, update *common.UpdateBuilder) error {
	if update.Empty() {
		return nil
	}
	query, args := update.SQL("customers", id)
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *customerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
