package handlers

import (
	"encoding/json"
	"net/http"

	"agora/internal/common"
	"agora/internal/models"
	"agora/internal/repositories"

	"github.com/labstack/echo/v4"
)

const smtpSettingsKey = "smtp_settings"

// SettingsHandlers stores and returns the SMTP relay configuration.
// Nothing in the API sends mail; the settings are opaque to it.
type SettingsHandlers struct {
	settingRepo repositories.SettingRepository
}

func NewSettingsHandlers(settingRepo repositories.SettingRepository) *SettingsHandlers {
	return &SettingsHandlers{settingRepo: settingRepo}
}

// GetSMTP returns the stored settings, or null when never configured.
func (h *SettingsHandlers) GetSMTP(c echo.Context) error {
	ctx := c.Request().Context()

	raw, found, err := h.settingRepo.Get(ctx, smtpSettingsKey)
	if err != nil {
		return common.ServerError(c, err)
	}
	if !found {
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "smtp": nil})
	}

	var smtp models.SMTPSettings
	if err := json.Unmarshal([]byte(raw), &smtp); err != nil {
		return common.ServerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "smtp": smtp})
}

// PutSMTP upserts the settings; host and port are required.
func (h *SettingsHandlers) PutSMTP(c echo.Context) error {
	ctx := c.Request().Context()

	var req models.SMTPSettings
	if err := c.Bind(&req); err != nil {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidJSON)
	}
	if req.Host == "" || req.Port <= 0 {
		return common.Fail(c, http.StatusBadRequest, common.CodeInvalidSMTP)
	}

	value, err := json.Marshal(req)
	if err != nil {
		return common.ServerError(c, err)
	}
	if err := h.settingRepo.Set(ctx, smtpSettingsKey, string(value)); err != nil {
		return common.ServerError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
