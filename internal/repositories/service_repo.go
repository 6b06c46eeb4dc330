package repositories

import (
	"context"
	"fmt"
	"strings"

	"agora/internal/common"
	"agora/internal/models"
)

// Service tables. Every query in this repository takes the table name
// from these constants, never from request input.
const (
	TableDomains  = "domains"
	TableHostings = "hostings"
	TableSsls     = "ssls"
)

// ServiceTables lists the three service tables in dashboard order.
var ServiceTables = []string{TableHostings, TableDomains, TableSsls}

// serviceExtraColumns are the type-specific columns appended to the
// shared renewal/expiry shape.
var serviceExtraColumns = map[string][]string{
	TableDomains:  {"ns1", "ns2"},
	TableHostings: {"ftp_username", "ftp_password"},
	TableSsls:     {"url"},
}

// ServiceListOptions carries the list filters for one service table.
type ServiceListOptions struct {
	Query  string
	Status string // active|passive|all
	Sort   string // domain_name|customer|renewal_count|end_date
	Dir    string // asc|desc
	Limit  int
	Offset int
	Today  string // ISO date used for the is_expired flag
}

type ServiceRepository interface {
	Create(ctx context.Context, table string, svc *models.Service) error
	GetByID(ctx context.Context, table, id string) (*models.Service, error)
	Exists(ctx context.Context, table, id string) (bool, error)
	List(ctx context.Context, table string, opts ServiceListOptions) ([]*models.Service, error)
	ListByCustomer(ctx context.Context, table, customerID string) ([]*models.Service, error)
	// ExpiringBetween returns rows whose end_date falls in [start, end]
	// inclusive, tagged with the table name and joined customer info.
	ExpiringBetween(ctx context.Context, table, start, end string) ([]*models.Service, error)
	Update(ctx context.Context, table, id string, update *common.UpdateBuilder) error
	Delete(ctx context.Context, table, id string) error
}

type serviceRepo struct {
	db DB
}

func NewServiceRepository(db DB) ServiceRepository {
	return &serviceRepo{db: db}
}

func serviceColumns(table, prefix string) string {
	base := []string{
		"id", "customer_id", "domain_name", "paid_amount", "start_date", "end_date",
		"renewal_count", "renewal_dates", "description", "status",
	}
	cols := append(base, serviceExtraColumns[table]...)
	if prefix != "" {
		for i, c := range cols {
			cols[i] = prefix + "." + c
		}
	}
	return strings.Join(cols, ", ")
}

// serviceScanDest builds the scan targets matching serviceColumns.
func serviceScanDest(table string, s *models.Service) []any {
	dest := []any{
		&s.ID, &s.CustomerID, &s.DomainName, &s.PaidAmount, &s.StartDate, &s.EndDate,
		&s.RenewalCount, &s.RenewalDates, &s.Description, &s.Status,
	}
	switch table {
	case TableDomains:
		dest = append(dest, &s.NS1, &s.NS2)
	case TableHostings:
		dest = append(dest, &s.FTPUsername, &s.FTPPassword)
	case TableSsls:
		dest = append(dest, &s.URL)
	}
	return dest
}

func (r *serviceRepo) Create(ctx context.Context, table string, s *models.Service) error {
	args := []any{
		s.ID, s.CustomerID, s.DomainName, s.PaidAmount, s.StartDate, s.EndDate,
		s.RenewalCount, s.RenewalDates, s.Description, s.Status,
	}
	switch table {
	case TableDomains:
		args = append(args, s.NS1, s.NS2)
	case TableHostings:
		args = append(args, s.FTPUsername, s.FTPPassword)
	case TableSsls:
		args = append(args, s.URL)
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, serviceColumns(table, ""), strings.Join(placeholders, ", "))
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *serviceRepo) GetByID(ctx context.Context, table, id string) (*models.Service, error) {
	s := &models.Service{}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id=$1", serviceColumns(table, ""), table)
	if err := r.db.QueryRow(ctx, query, id).Scan(serviceScanDest(table, s)...); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *serviceRepo) Exists(ctx context.Context, table, id string) (bool, error) {
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE id=$1)", table)
	if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func serviceSortColumn(sort string) string {
	switch strings.ToLower(sort) {
	case "domain_name":
		return "t.domain_name"
	case "customer":
		return "customer_name"
	case "renewal_count":
		return "t.renewal_count"
	default:
		return "t.end_date"
	}
}

func (r *serviceRepo) List(ctx context.Context, table string, opts ServiceListOptions) ([]*models.Service, error) {
	args := []any{opts.Today}
	var conditions []string
	if q := strings.TrimSpace(opts.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		args = append(args, like)
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(t.domain_name) LIKE $%d OR LOWER(COALESCE(t.description,'')) LIKE $%d)",
			len(args), len(args)))
	}
	switch opts.Status {
	case "active":
		conditions = append(conditions, "t.status=1")
	case "passive":
		conditions = append(conditions, "t.status=0")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}
	orderBy := fmt.Sprintf("%s %s", serviceSortColumn(opts.Sort), sortDirection(opts.Dir))
	args = append(args, opts.Limit, opts.Offset)

	query := fmt.Sprintf(`
		SELECT
			%s,
			(c.first_name || ' ' || c.last_name) AS customer_name,
			c.customer_no AS customer_no,
			CASE WHEN t.end_date < $1 THEN 1 ELSE 0 END AS is_expired
		FROM %s t
		JOIN customers c ON c.id = t.customer_id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, serviceColumns(table, "t"), table, where, orderBy, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		s := &models.Service{}
		var (
			customerNo int
			isExpired  int
		)
		dest := append(serviceScanDest(table, s), &s.CustomerName, &customerNo, &isExpired)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		s.CustomerNo = &customerNo
		s.IsExpired = &isExpired
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *serviceRepo) ListByCustomer(ctx context.Context, table, customerID string) ([]*models.Service, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE customer_id=$1", serviceColumns(table, ""), table)
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		s := &models.Service{}
		if err := rows.Scan(serviceScanDest(table, s)...); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *serviceRepo) ExpiringBetween(ctx context.Context, table, start, end string) ([]*models.Service, error) {
	query := fmt.Sprintf(`
		SELECT
			%s,
			(c.first_name || ' ' || c.last_name) AS customer_name,
			c.customer_no AS customer_no
		FROM %s t
		JOIN customers c ON c.id = t.customer_id
		WHERE t.end_date BETWEEN $1 AND $2
		ORDER BY t.end_date ASC
	`, serviceColumns(table, "t"), table)

	rows, err := r.db.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []*models.Service
	for rows.Next() {
		s := &models.Service{}
		var customerNo int
		dest := append(serviceScanDest(table, s), &s.CustomerName, &customerNo)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		s.CustomerNo = &customerNo
		s.ServiceType = table
		services = append(services, s)
	}
	return services, rows.Err()
}

func (r *serviceRepo) Update(ctx context.Context, table, id string, update *common.UpdateBuilder) error {
	if update.Empty() {
		return nil
	}
	query, args := update.SQL(table, id)
	_, err := r.db.Exec(ctx, query, args...)
	return err
}

func (r *serviceRepo) Delete(ctx context.Context, table, id string) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id=$1", table), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRowsAffected
	}
	return nil
}
