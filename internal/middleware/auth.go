package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"agora/internal/common"
	"agora/internal/services"

	"github.com/labstack/echo/v4"
)

// BearerToken extracts the credential from the Authorization header,
// or "" when the header is missing or malformed. The scheme name is
// matched case-insensitively.
func BearerToken(c echo.Context) string {
	const scheme = "bearer "
	header := c.Request().Header.Get("Authorization")
	if len(header) < len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return ""
	}
	return strings.TrimSpace(header[len(scheme):])
}

// RequireAdmin authenticates the bearer token against the token store
// and carries the resolved admin username in the request context. The
// identity is re-derived on every request; there is no session state.
func RequireAdmin(authService services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, err := authService.Authenticate(c.Request().Context(), BearerToken(c))
			if errors.Is(err, services.ErrUnauthorized) {
				return common.Fail(c, http.StatusUnauthorized, common.CodeUnauthorized)
			}
			if err != nil {
				return common.ServerError(c, err)
			}

			ctx := context.WithValue(c.Request().Context(), common.AdminUsernameKey, username)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
