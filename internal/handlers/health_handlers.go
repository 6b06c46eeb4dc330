package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness; it is the only route besides setup and
// login that requires no authentication.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "service": "agora-api"})
}
