package services

import (
	"context"
	"errors"
	"strings"

	"agora/internal/common"
	"agora/internal/models"
	"agora/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrMissingNameFields       = errors.New("first name, last name and company are required")
	ErrInvalidRegistrationDate = errors.New("registration date must be a valid ISO date")
	ErrMissingContact          = errors.New("email1 and phone1 are required")
)

// CreateCustomerInput distinguishes supplied values from defaults:
// CustomerNo nil means assign the next sequential number, Password ""
// means generate one.
type CreateCustomerInput struct {
	CustomerNo       *int    `json:"customer_no"`
	Password         string  `json:"password"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	Company          string  `json:"company"`
	RegistrationDate string  `json:"registration_date"`
	Email1           string  `json:"email1"`
	Email2           *string `json:"email2"`
	Email3           *string `json:"email3"`
	Phone1           string  `json:"phone1"`
	Phone2           *string `json:"phone2"`
	Address          *string `json:"address"`
	City             *string `json:"city"`
	TaxOffice        *string `json:"tax_office"`
	TaxNo            *int64  `json:"tax_no"`
	Description      *string `json:"description"`
}

type CustomerService interface {
	// Create validates the input, fills in id, customer_no and password
	// defaults and stores the row. generated is true when the password
	// was auto-assigned.
	Create(ctx context.Context, input CreateCustomerInput) (customer *models.Customer, generated bool, err error)
}

type customerService struct {
	customerRepo repositories.CustomerRepository
}

func NewCustomerService(customerRepo repositories.CustomerRepository) CustomerService {
	return &customerService{customerRepo: customerRepo}
}

func (s *customerService) Create(ctx context.Context, input CreateCustomerInput) (*models.Customer, bool, error) {
	customer := &models.Customer{
		ID:               uuid.NewString(),
		FirstName:        strings.TrimSpace(input.FirstName),
		LastName:         strings.TrimSpace(input.LastName),
		Company:          strings.TrimSpace(input.Company),
		RegistrationDate: strings.TrimSpace(input.RegistrationDate),
		Email1:           strings.TrimSpace(input.Email1),
		Email2:           trimOptional(input.Email2),
		Email3:           trimOptional(input.Email3),
		Phone1:           strings.TrimSpace(input.Phone1),
		Phone2:           trimOptional(input.Phone2),
		Address:          trimOptional(input.Address),
		City:             trimOptional(input.City),
		TaxOffice:        trimOptional(input.TaxOffice),
		TaxNo:            input.TaxNo,
		Description:      trimOptional(input.Description),
	}

	if customer.FirstName == "" || customer.LastName == "" || customer.Company == "" {
		return nil, false, ErrMissingNameFields
	}
	if !common.IsISODate(customer.RegistrationDate) {
		return nil, false, ErrInvalidRegistrationDate
	}
	if customer.Email1 == "" || customer.Phone1 == "" {
		return nil, false, ErrMissingContact
	}

	if input.CustomerNo != nil {
		customer.CustomerNo = *input.CustomerNo
	} else {
		next, err := s.customerRepo.NextCustomerNo(ctx)
		if err != nil {
			return nil, false, err
		}
		customer.CustomerNo = next
	}

	generated := false
	customer.Password = strings.TrimSpace(input.Password)
	if customer.Password == "" {
		customer.Password = common.GenerateCustomerPassword()
		generated = true
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, false, err
	}
	return customer, generated, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
