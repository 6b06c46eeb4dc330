package models

// Customer is an agency customer record. Contact and tax fields beyond
// the first email/phone are optional.
type Customer struct {
	ID               string  `json:"id" db:"id"`
	CustomerNo       int     `json:"customer_no" db:"customer_no"`
	Password         string  `json:"password" db:"password"`
	FirstName        string  `json:"first_name" db:"first_name"`
	LastName         string  `json:"last_name" db:"last_name"`
	Company          string  `json:"company" db:"company"`
	RegistrationDate string  `json:"registration_date" db:"registration_date"`
	Email1           string  `json:"email1" db:"email1"`
	Email2           *string `json:"email2" db:"email2"`
	Email3           *string `json:"email3" db:"email3"`
	Phone1           string  `json:"phone1" db:"phone1"`
	Phone2           *string `json:"phone2" db:"phone2"`
	Address          *string `json:"address" db:"address"`
	City             *string `json:"city" db:"city"`
	TaxOffice        *string `json:"tax_office" db:"tax_office"`
	TaxNo            *int64  `json:"tax_no" db:"tax_no"`
	Description      *string `json:"description" db:"description"`

	// Computed by list queries.
	FullName      string `json:"full_name,omitempty" db:"-"`
	TotalRenewals *int   `json:"total_renewals,omitempty" db:"-"`
}
