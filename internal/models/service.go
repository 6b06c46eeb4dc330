package models

// Service is a renewable service row: a domain registration, a hosting
// plan, or an SSL certificate. The three tables share the renewal/expiry
// shape; the type-specific columns are pointers and stay nil for the
// other two tables.
type Service struct {
	ID           string  `json:"id" db:"id"`
	CustomerID   string  `json:"customer_id" db:"customer_id"`
	DomainName   string  `json:"domain_name" db:"domain_name"`
	PaidAmount   float64 `json:"paid_amount" db:"paid_amount"`
	StartDate    string  `json:"start_date" db:"start_date"`
	EndDate      string  `json:"end_date" db:"end_date"`
	RenewalCount int     `json:"renewal_count" db:"renewal_count"`
	RenewalDates string  `json:"renewal_dates" db:"renewal_dates"`
	Description  *string `json:"description" db:"description"`
	Status       int     `json:"status" db:"status"`

	// domains
	NS1 *string `json:"ns1,omitempty" db:"ns1"`
	NS2 *string `json:"ns2,omitempty" db:"ns2"`
	// hostings
	FTPUsername *string `json:"ftp_username,omitempty" db:"ftp_username"`
	FTPPassword *string `json:"ftp_password,omitempty" db:"ftp_password"`
	// ssls
	URL *string `json:"url,omitempty" db:"url"`

	// Computed by list and renewal queries.
	CustomerName string `json:"customer_name,omitempty" db:"-"`
	CustomerNo   *int   `json:"customer_no,omitempty" db:"-"`
	IsExpired    *int   `json:"is_expired,omitempty" db:"-"`
	ServiceType  string `json:"service_type,omitempty" db:"-"`
}

// ExpiringService is the compact row shape the dashboard shows for the
// soonest-expiring services of each type.
type ExpiringService struct {
	ID           string `json:"id"`
	DomainName   string `json:"domain_name"`
	EndDate      string `json:"end_date"`
	Status       int    `json:"status"`
	CustomerName string `json:"customer_name"`
}
