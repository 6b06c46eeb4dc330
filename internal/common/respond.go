package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Stable error codes surfaced in the {ok:false, error:CODE} envelope.
const (
	CodeInvalidFields           = "INVALID_FIELDS"
	CodeInvalidJSON             = "INVALID_JSON"
	CodeMissingNameFields       = "MISSING_NAME_FIELDS"
	CodeMissingContact          = "MISSING_CONTACT"
	CodeInvalidRegistrationDate = "INVALID_REGISTRATION_DATE"
	CodeCustomerRequired        = "CUSTOMER_REQUIRED"
	CodeDomainRequired          = "DOMAIN_REQUIRED"
	CodeInvalidStartDate        = "INVALID_START_DATE"
	CodeInvalidEndDate          = "INVALID_END_DATE"
	CodeInvalidTable            = "INVALID_TABLE"
	CodeInvalidSMTP             = "INVALID_SMTP"
	CodeInvalidDateRange        = "INVALID_DATE_RANGE"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeInvalidCredentials      = "INVALID_CREDENTIALS"
	CodeAdminNotSet             = "ADMIN_NOT_SET"
	CodeAdminAlreadySet         = "ADMIN_ALREADY_SET"
	CodeNotFound                = "NOT_FOUND"
	CodeMethodNotAllowed        = "METHOD_NOT_ALLOWED"
	CodeDeleteFailed            = "DELETE_FAILED"
	CodeServerError             = "SERVER_ERROR"
)

// Fail writes the error envelope with the given status and code.
func Fail(c echo.Context, status int, code string) error {
	return c.JSON(status, echo.Map{"ok": false, "error": code})
}

// FailField writes the error envelope with one extra field, e.g. the
// rejected input value.
func FailField(c echo.Context, status int, code, key string, value any) error {
	return c.JSON(status, echo.Map{"ok": false, "error": code, key: value})
}

// ServerError maps any repository or encoding failure to the uniform
// 500 envelope, exposing the underlying message.
func ServerError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"ok":      false,
		"error":   CodeServerError,
		"message": err.Error(),
	})
}

// BindObject decodes the request body into a generic JSON object so
// partial updates can distinguish absent keys from explicit nulls.
// Anything that is not a JSON object yields an error.
func BindObject(c echo.Context) (map[string]any, error) {
	var body map[string]any
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty body")
		}
		return nil, err
	}
	// A literal null decodes into a nil map without error.
	if body == nil {
		return nil, fmt.Errorf("body is not a JSON object")
	}
	return body, nil
}

// HTTPErrorHandler keeps every failure inside the {ok:false} contract:
// echo's routing errors become NOT_FOUND / METHOD_NOT_ALLOWED and
// anything uncaught degrades to a 500 SERVER_ERROR response instead of
// leaking echo's default error shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusNotFound:
			_ = Fail(c, http.StatusNotFound, CodeNotFound)
		case http.StatusMethodNotAllowed:
			_ = Fail(c, http.StatusMethodNotAllowed, CodeMethodNotAllowed)
		case http.StatusUnauthorized:
			_ = Fail(c, http.StatusUnauthorized, CodeUnauthorized)
		default:
			_ = c.JSON(he.Code, echo.Map{
				"ok":      false,
				"error":   CodeServerError,
				"message": fmt.Sprintf("%v", he.Message),
			})
		}
		return
	}

	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"ok":      false,
		"error":   CodeServerError,
		"message": err.Error(),
	})
}
