package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func errorHandlerResponse(t *testing.T, err error) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	HTTPErrorHandler(err, e.NewContext(req, rec))
	return rec
}

func TestHTTPErrorHandler_RoutingErrors(t *testing.T) {
	rec := errorHandlerResponse(t, echo.NewHTTPError(http.StatusNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"NOT_FOUND"`)

	rec = errorHandlerResponse(t, echo.NewHTTPError(http.StatusMethodNotAllowed))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"METHOD_NOT_ALLOWED"`)
}

func TestHTTPErrorHandler_UncaughtError(t *testing.T) {
	rec := errorHandlerResponse(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"SERVER_ERROR"`)
	assert.Contains(t, rec.Body.String(), `"message":"boom"`)
	assert.Contains(t, rec.Body.String(), `"ok":false`)
}

func TestBindObject(t *testing.T) {
	e := echo.New()

	newCtx := func(body string) echo.Context {
		req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		return e.NewContext(req, httptest.NewRecorder())
	}

	body, err := BindObject(newCtx(`{"a":1,"b":null}`))
	assert.NoError(t, err)
	assert.Equal(t, float64(1), body["a"])
	value, present := body["b"]
	assert.True(t, present)
	assert.Nil(t, value)

	_, err = BindObject(newCtx(""))
	assert.Error(t, err)

	_, err = BindObject(newCtx(`not json`))
	assert.Error(t, err)

	_, err = BindObject(newCtx(`[1,2,3]`))
	assert.Error(t, err)

	_, err = BindObject(newCtx(`null`))
	assert.Error(t, err)
}
