package handlers

import (
	"errors"
	"net/http"
	"strings"

	"agora/internal/caching"
	"agora/internal/common"
	"agora/internal/models"
	"agora/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// serviceUpdateColumns returns the allow-list of mutable columns for the
// given service table. The shared columns are the same for all three
// tables; the tail differs per table.
func serviceUpdateColumns(table string) []common.Column {
	cols := []common.Column{
		{Name: "customer_id", Kind: common.ColString},
		{Name: "domain_name", Kind: common.ColString},
		{Name: "paid_amount", Kind: common.ColFloat},
		{Name: "start_date", Kind: common.ColString},
		{Name: "end_date", Kind: common.ColString},
		{Name: "renewal_count", Kind: common.ColInt},
		{Name: "renewal_dates", Kind: common.ColStringOrEmpty},
		{Name: "description", Kind: common.ColNullableString},
		{Name: "status", Kind: common.ColStatus},
	}
	switch table {
	case repositories.TableDomains:
		cols = append(cols,
			common.Column{Name: "ns1", Kind: common.ColNullableString},
			common.Column{Name: "ns2", Kind: common.ColNullableString})
	case repositories.TableHostings:
		cols = append(cols,
			common.Column{Name: "ftp_username", Kind: common.ColNullableString},
			common.Column{Name: "ftp_password", Kind: common.ColNullableString})
	case repositories.TableSsls:
		cols = append(cols, common.Column{Name: "url", Kind: common.ColNullableString})
	}
	return cols
}

// ServiceHandlers serves one of the /domains, /hostings or /ssls route
// groups; the table name is fixed at construction time.
type ServiceHandlers struct {
	table        string
	serviceRepo  repositories.ServiceRepository
	customerRepo repositories.CustomerRepository
	cacheService caching.CacheService
}

func NewServiceHandlers(
	table string,
	serviceRepo repositories.ServiceRepository,
	customerRepo repositories.CustomerRepository,
	cacheService caching.CacheService,
) *ServiceHandlers {
	return &ServiceHandlers{
		table:        table,
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		cacheService: cacheService,
	}
}

// ListServicesRequest represents the list query parameters.
type ListServicesRequest struct {
	Query  string `query:"q"`
	Status string `query:"status"`
	Sort   string `query:"sort"`
	Dir    string `query:"dir"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (h *ServiceHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListServicesRequest
	if err := c.Bind(&req); err != nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidFields)
	}
	limit, offset := common.ClampPage(req.Limit, req.Offset)
	today := common.Today()

	items, err := h.serviceRepo.List(ctx, h.table, repositories.ServiceListOptions{
		Query:  req.Query,
		Status: req.Status,
		Sort:   req.Sort,
		Dir:    req.Dir,
		Limit:  limit,
		Offset: offset,
		Today:  today,
	})
	if err != nil {
		return common.ServerError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ok":     true,
		"items":  emptyIfNil(items),
		"limit":  limit,
		"offset": offset,
		"today":  today,
	})
}

// CreateServiceRequest carries the create payload. Status is loosely
// typed on the wire (number, string or bool); a missing or null status
// means active.
type CreateServiceRequest struct {
	CustomerID   string  `json:"customer_id"`
	DomainName   string  `json:"domain_name"`
	PaidAmount   float64 `json:"paid_amount"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	RenewalCount int     `json:"renewal_count"`
	RenewalDates string  `json:"renewal_dates"`
	Description  *string `json:"description"`
	Status       any     `json:"status"`
	NS1          *string `json:"ns1"`
	NS2          *string `json:"ns2"`
	FTPUsername  *string `json:"ftp_username"`
	FTPPassword  *string `json:"ftp_password"`
	URL          *string `json:"url"`
}

func (h *ServiceHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateServiceRequest
	if err := c.Bind(&req); err != nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidJSON)
	}

	req.CustomerID = strings.TrimSpace(req.CustomerID)
	req.DomainName = strings.TrimSpace(req.DomainName)
	req.StartDate = strings.TrimSpace(req.StartDate)
	req.EndDate = strings.TrimSpace(req.EndDate)

	if req.CustomerID == "" {
		return common.Fail(c, http.StatusBadRequest, common.CodeCustomerRequired)
	}
	if req.DomainName == "" {
		return common.Fail(c, http.StatusBadRequest, common.CodeDomainRequired)
	}
	if !common.IsISODate(req.StartDate) {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidStartDate)
	}
	if req.EndDate == "" {
		req.EndDate = common.AddOneYear(req.StartDate)
	} else if !common.IsISODate(req.EndDate) {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidEndDate)
	}

	service := &models.Service{
		ID:           uuid.NewString(),
		CustomerID:   req.CustomerID,
		DomainName:   req.DomainName,
		PaidAmount:   req.PaidAmount,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		RenewalCount: req.RenewalCount,
		RenewalDates: strings.TrimSpace(req.RenewalDates),
		Description:  req.Description,
		Status:       common.CoerceStatus(req.Status),
	}
	switch h.table {
	case repositories.TableDomains:
		service.NS1 = req.NS1
		service.NS2 = req.NS2
	case repositories.TableHostings:
		service.FTPUsername = req.FTPUsername
		service.FTPPassword = req.FTPPassword
	case repositories.TableSsls:
		service.URL = req.URL
	}

	if err := h.serviceRepo.Create(ctx, h.table, service); err != nil {
		return common.ServerError(c, err)
	}

	h.invalidateDashboard(c)
	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": service})
}

// Get returns the service row along with its owning customer; the
// customer is null when the customer_id no longer resolves.
func (h *ServiceHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	service, err := h.serviceRepo.GetByID(ctx, h.table, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.Fail(c, http.StatusNotFound, common.CodeNotFound)
		}
		return common.ServerError(c, err)
	}

	var customer *models.Customer
	if service.CustomerID != "" {
		customer, err = h.customerRepo.GetByID(ctx, service.CustomerID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return common.ServerError(c, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": service, "customer": customer})
}

func (h *ServiceHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	body, err := common.BindObject(c)
	if err != nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidJSON)
	}

	exists, err := h.serviceRepo.Exists(ctx, h.table, id)
	if err != nil {
		return common.ServerError(c, err)
	}
	if !exists {
		return common.Fail(c, http.StatusNotFound, common.CodeNotFound)
	}

	update := common.BuildUpdate(body, serviceUpdateColumns(h.table))
	if err := h.serviceRepo.Update(ctx, h.table, id, update); err != nil {
		return common.ServerError(c, err)
	}

	h.invalidateDashboard(c)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *ServiceHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.serviceRepo.Delete(ctx, h.table, id); err != nil {
		if err == repositories.ErrNoRowsAffected {
			return common.Fail(c, http.StatusBadRequest, common.CodeDeleteFailed)
		}
		return common.ServerError(c, err)
	}

	h.invalidateDashboard(c)
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *ServiceHandlers) invalidateDashboard(c echo.Context) {
	if h.cacheService == nil {
		return
	}
	_ = h.cacheService.InvalidateDashboard(c.Request().Context())
}
