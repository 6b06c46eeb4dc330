package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"agora/internal/caching"
	"agora/internal/common"
	"agora/internal/models"
	"agora/internal/repositories"

	"github.com/labstack/echo/v4"
)

// ReportHandlers serves the dashboard, renewal-window and CSV export
// routes.
type ReportHandlers struct {
	reportRepo   repositories.ReportRepository
	serviceRepo  repositories.ServiceRepository
	exportRepo   repositories.ExportRepository
	cacheService caching.CacheService
}

func NewReportHandlers(
	reportRepo repositories.ReportRepository,
	serviceRepo repositories.ServiceRepository,
	exportRepo repositories.ExportRepository,
	cacheService caching.CacheService,
) *ReportHandlers {
	return &ReportHandlers{
		reportRepo:   reportRepo,
		serviceRepo:  serviceRepo,
		exportRepo:   exportRepo,
		cacheService: cacheService,
	}
}

// Dashboard aggregates per-table counts and the soonest-expired rows.
// The payload is cached briefly; writes to any underlying table
// invalidate it.
func (h *ReportHandlers) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()

	if h.cacheService != nil {
		if cached, err := h.cacheService.GetDashboard(ctx); err == nil && cached != nil {
			return c.JSONBlob(http.StatusOK, cached)
		}
	}

	today := common.Today()

	totalCustomers, err := h.reportRepo.CountCustomers(ctx)
	if err != nil {
		return common.ServerError(c, err)
	}

	counts := map[string]echo.Map{}
	expired := echo.Map{}
	for _, table := range repositories.ServiceTables {
		active, err := h.reportRepo.CountActive(ctx, table)
		if err != nil {
			return common.ServerError(c, err)
		}
		expiredCount, err := h.reportRepo.CountExpired(ctx, table, today)
		if err != nil {
			return common.ServerError(c, err)
		}
		counts[table] = echo.Map{"active": active, "expired": expiredCount}

		top, err := h.reportRepo.TopExpired(ctx, table, today)
		if err != nil {
			return common.ServerError(c, err)
		}
		expired[table] = emptyIfNil(top)
	}

	payload := echo.Map{
		"ok":        true,
		"today":     today,
		"customers": echo.Map{"total": totalCustomers},
		"hosting":   counts[repositories.TableHostings],
		"domains":   counts[repositories.TableDomains],
		"ssls":      counts[repositories.TableSsls],
		"expired":   expired,
	}

	if h.cacheService != nil {
		if raw, err := json.Marshal(payload); err == nil {
			_ = h.cacheService.SetDashboard(ctx, raw, caching.DashboardTTL)
		}
	}
	return c.JSON(http.StatusOK, payload)
}

// renewalTables maps the type query parameter onto the tables to scan.
// Anything unrecognized means all three.
func renewalTables(kind string) []string {
	switch kind {
	case "hosting":
		return []string{repositories.TableHostings}
	case "domain":
		return []string{repositories.TableDomains}
	case "ssl":
		return []string{repositories.TableSsls}
	}
	return repositories.ServiceTables
}

// Renewals lists the services whose end_date falls inside the
// inclusive [start, end] window.
func (h *ReportHandlers) Renewals(c echo.Context) error {
	ctx := c.Request().Context()

	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if !common.IsISODate(start) || !common.IsISODate(end) {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidDateRange)
	}

	items := []*models.Service{}
	for _, table := range renewalTables(c.QueryParam("type")) {
		expiring, err := h.serviceRepo.ExpiringBetween(ctx, table, start, end)
		if err != nil {
			return common.ServerError(c, err)
		}
		items = append(items, expiring...)
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "items": items})
}

// Export streams one table as a CSV attachment.
func (h *ReportHandlers) Export(c echo.Context) error {
	ctx := c.Request().Context()

	table := c.Param("table")
	if !repositories.IsExportable(table) {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidTable)
	}

	columns, rows, err := h.exportRepo.Rows(ctx, table)
	if err != nil {
		return common.ServerError(c, err)
	}

	csv := common.EncodeCSV(columns, rows)
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", table+".csv"))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}
