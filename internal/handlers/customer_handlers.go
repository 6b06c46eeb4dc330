package handlers

import (
	"errors"
	"net/http"

	"agora/internal/caching"
	"agora/internal/common"
	"agora/internal/repositories"
	"agora/internal/services"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// customerUpdateColumns is the allow-list of mutable customer columns
// for partial updates.
var customerUpdateColumns = []common.Column{
	{Name: "customer_no", Kind: common.ColInt},
	{Name: "password", Kind: common.ColString},
	{Name: "first_name", Kind: common.ColString},
	{Name: "last_name", Kind: common.ColString},
	{Name: "company", Kind: common.ColString},
	{Name: "registration_date", Kind: common.ColString},
	{Name: "email1", Kind: common.ColString},
	{Name: "email2", Kind: common.ColNullableString},
	{Name: "email3", Kind: common.ColNullableString},
	{Name: "phone1", Kind: common.ColString},
	{Name: "phone2", Kind: common.ColNullableString},
	{Name: "address", Kind: common.ColNullableString},
	{Name: "city", Kind: common.ColNullableString},
	{Name: "tax_office", Kind: common.ColNullableString},
	{Name: "tax_no", Kind: common.ColNullableInt},
	{Name: "description", Kind: common.ColNullableString},
}

// CustomerHandlers handles the /customers routes.
type CustomerHandlers struct {
	customerService services.CustomerService
	customerRepo    repositories.CustomerRepository
	serviceRepo     repositories.ServiceRepository
	cacheService    caching.CacheService
}

func NewCustomerHandlers(
	customerService services.CustomerService,
	customerRepo repositories.CustomerRepository,
	serviceRepo repositories.ServiceRepository,
	cacheService caching.CacheService,
) *CustomerHandlers {
	return &CustomerHandlers{
		customerService: customerService,
		customerRepo:    customerRepo,
		serviceRepo:     serviceRepo,
		cacheService:    cacheService,
	}
}

// ListCustomersRequest represents the list query parameters.
type ListCustomersRequest struct {
	Query  string `query:"q"`
	Sort   string `query:"sort"`
	Dir    string `query:"dir"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (h *CustomerHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListCustomersRequest
	if err := c.Bind(&req); err != nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidFields)
	}
	limit, offset := common.ClampPage(req.Limit, req.Offset)

	customers, err := h.customerRepo.List(ctx, repositories.CustomerListOptions{
		Query:  req.Query,
		Sort:   req.Sort,
		Dir:    req.Dir,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return common.ServerError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ok":     true,
		"items":  emptyIfNil(customers),
		"limit":  limit,
		"offset": offset,
	})
}

func (h *CustomerHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var input services.CreateCustomerInput
	if err := c.Bind(&input); err != nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidJSON)
	}

	customer, generated, err := h.customerService.Create(ctx, input)
	if err != nil {
		switch err {
		case services.ErrMissingNameFields:
			return common.Fail(c, http.StatusBadRequest, common.CodeMissingNameFields)
		case services.ErrInvalidRegistrationDate:
			return common.FailField(c, http.StatusBadRequest, common.CodeInvalidRegistrationDate,
				"received", input.RegistrationDate)
		case services.ErrMissingContact:
			return common.Fail(c, http.StatusBadRequest, common.CodeMissingContact)
		default:
			return common.ServerError(c, err)
		}
	}

	h.invalidateDashboard(c)

	var generatedPassword any
	if generated {
		generatedPassword = customer.Password
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"ok":                 true,
		"item":               customer,
		"generated_password": generatedPassword,
	})
}

// Get returns the customer together with all of its service rows.
func (h *CustomerHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	customer, err := h.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.Fail(c, http.StatusNotFound, common.CodeNotFound)
		}
		return common.ServerError(c, err)
	}

	related := echo.Map{}
	for _, table := range []string{repositories.TableDomains, repositories.TableHostings, repositories.TableSsls} {
		items, err := h.serviceRepo.ListByCustomer(ctx, table, id)
		if err != nil {
			return common.ServerError(c, err)
		}
		related[table] = emptyIfNil(items)
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": customer, "services": related})
}

func (h *CustomerHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	body, err := common.BindObject(c)
	if err != nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidJSON)
	}

	exists, err := h.customerRepo.Exists(ctx, id)
	if err != nil {
		return common.ServerError(c, err)
	}
	if !exists {
		return common.Fail(c, http.StatusNotFound, common.CodeNotFound)
	}

	update := common.BuildUpdate(body, customerUpdateColumns)
	if err := h.customerRepo.Update(ctx, id, update); err != nil {
		return common.ServerError(c, err)
	}

	h.invalidateDashboard(c)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *CustomerHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.customerRepo.Delete(ctx, id); err != nil {
		if err == repositories.ErrNoRowsAffected {
			return common.Fail(c, http.StatusBadRequest, common.CodeDeleteFailed)
		}
		return common.ServerError(c, err)
	}

	h.invalidateDashboard(c)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *CustomerHandlers) invalidateDashboard(c echo.Context) {
	if h.cacheService == nil {
		return
	}
	// Stale-cache cleanup only; a failure here never fails the request.
	_ = h.cacheService.InvalidateDashboard(c.Request().Context())
}

// emptyIfNil keeps empty result sets serialized as [] instead of null.
func emptyIfNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
