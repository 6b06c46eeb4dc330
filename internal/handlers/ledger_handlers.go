package handlers

import (
	"errors"
	"net/http"
	"strings"

	"agora/internal/common"
	"agora/internal/models"
	"agora/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

var ledgerUpdateColumns = []common.Column{
	{Name: "date", Kind: common.ColString},
	{Name: "description", Kind: common.ColString},
	{Name: "amount", Kind: common.ColFloat},
}

// LedgerHandlers serves the /incomes or /expenses route group; the
// table name is fixed at construction time.
type LedgerHandlers struct {
	table      string
	ledgerRepo repositories.LedgerRepository
}

func NewLedgerHandlers(table string, ledgerRepo repositories.LedgerRepository) *LedgerHandlers {
	return &LedgerHandlers{table: table, ledgerRepo: ledgerRepo}
}

// ListLedgerRequest represents the list query parameters. Start and end
// bounds are only applied when they are well-formed dates.
type ListLedgerRequest struct {
	Start  string `query:"start"`
	End    string `query:"end"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

func (h *LedgerHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()

	var req ListLedgerRequest
	if err := c.Bind(&req); err != nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidFields)
	}
	limit, offset := common.ClampPage(req.Limit, req.Offset)

	opts := repositories.LedgerListOptions{Limit: limit, Offset: offset}
	if common.IsISODate(req.Start) {
		opts.Start = req.Start
	}
	if common.IsISODate(req.End) {
		opts.End = req.End
	}

	entries, err := h.ledgerRepo.List(ctx, h.table, opts)
	if err != nil {
		return common.ServerError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ok":     true,
		"items":  emptyIfNil(entries),
		"limit":  limit,
		"offset": offset,
	})
}

// CreateLedgerRequest carries the create payload. Amount is a pointer
// so an absent amount is rejected rather than silently stored as zero.
type CreateLedgerRequest struct {
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
}

func (h *LedgerHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateLedgerRequest
	if err := c.Bind(&req); err != nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidJSON)
	}

	req.Date = strings.TrimSpace(req.Date)
	req.Description = strings.TrimSpace(req.Description)
	if !common.IsISODate(req.Date) || req.Description == "" || req.Amount == nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidFields)
	}

	entry := &models.LedgerEntry{
		ID:          uuid.NewString(),
		Date:        req.Date,
		Description: req.Description,
		Amount:      *req.Amount,
	}
	if err := h.ledgerRepo.Create(ctx, h.table, entry); err != nil {
		return common.ServerError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"ok": true, "item": entry})
}

func (h *LedgerHandlers) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	entry, err := h.ledgerRepo.GetByID(ctx, h.table, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return common.Fail(c, http.StatusNotFound, common.CodeNotFound)
		}
		return common.ServerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "item": entry})
}

func (h *LedgerHandlers) Update(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	body, err := common.BindObject(c)
	if err != nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidJSON)
	}

	exists, err := h.ledgerRepo.Exists(ctx, h.table, id)
	if err != nil {
		return common.ServerError(c, err)
	}
	if !exists {
		return common.Fail(c, http.StatusNotFound, common.CodeNotFound)
	}

	update := common.BuildUpdate(body, ledgerUpdateColumns)
	if err := h.ledgerRepo.Update(ctx, h.table, id, update); err != nil {
		return common.ServerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

func (h *LedgerHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.ledgerRepo.Delete(ctx, h.table, id); err != nil {
		if err == repositories.ErrNoRowsAffected {
			return common.Fail(c, http.StatusBadRequest, common.CodeDeleteFailed)
		}
		return common.ServerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
