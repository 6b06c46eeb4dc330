package handlers

import (
	"errors"
	"net/http"
	"strings"

	"agora/internal/common"
	"agora/internal/middleware"
	"agora/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles admin setup, login and logout.
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// CredentialsRequest is the payload for both setup and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SetupAdmin creates the single admin account. A second call always
// fails with ADMIN_ALREADY_SET no matter the payload.
func (h *AuthHandlers) SetupAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidJSON)
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidFields)
	}

	if err := h.authService.SetupAdmin(ctx, username, password); err != nil {
		if errors.Is(err, services.ErrAdminAlreadySet) {
			return common.Fail(c, http.StatusConflict, common.CodeAdminAlreadySet)
		}
		return common.ServerError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// Login checks the credentials and issues a fresh bearer token,
// invalidating every prior token for the username.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidJSON)
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidFields)
	}

	token, err := h.authService.Login(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminNotSet):
			return common.Fail(c, http.StatusBadRequest, common.CodeAdminNotSet)
		case errors.Is(err, services.ErrInvalidCredentials):
			return common.Fail(c, http.StatusUnauthorized, common.CodeInvalidCredentials)
		default:
			return common.ServerError(c, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"ok": true, "token": token})
}

// Logout revokes the presented token. Revoking an already-absent token
// still succeeds.
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if token := middleware.BearerToken(c); token != "" {
		if err := h.authService.Logout(ctx, token); err != nil {
			return common.ServerError(c, err)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
