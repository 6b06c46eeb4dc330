package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agora/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SetupAdmin(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

type AuthHandlersTestSuite struct {
	suite.Suite
	authService *MockAuthService
	handlers    *AuthHandlers
	echo        *echo.Echo
}

func (suite *AuthHandlersTestSuite) SetupTest() {
	suite.authService = new(MockAuthService)
	suite.handlers = NewAuthHandlers(suite.authService)
	suite.echo = echo.New()
}

func TestAuthHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlersTestSuite))
}

func (suite *AuthHandlersTestSuite) jsonRequest(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return suite.echo.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (suite *AuthHandlersTestSuite) TestSetupAdmin_Success() {
	suite.authService.On("SetupAdmin", mock.Anything, "admin", "pw").Return(nil)

	c, rec := suite.jsonRequest(http.MethodPost, "/setup/admin", `{"username":"admin","password":"pw"}`)
	assert.NoError(suite.T(), suite.handlers.SetupAdmin(c))

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), true, decodeBody(suite.T(), rec)["ok"])
}

func (suite *AuthHandlersTestSuite) TestSetupAdmin_BlankCredentials() {
	c, rec := suite.jsonRequest(http.MethodPost, "/setup/admin", `{"username":"  ","password":""}`)
	assert.NoError(suite.T(), suite.handlers.SetupAdmin(c))

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "INVALID_FIELDS", decodeBody(suite.T(), rec)["error"])
	suite.authService.AssertNotCalled(suite.T(), "SetupAdmin", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthHandlersTestSuite) TestSetupAdmin_SecondCallConflicts() {
	suite.authService.On("SetupAdmin", mock.Anything, "other", "pw").Return(services.ErrAdminAlreadySet)

	c, rec := suite.jsonRequest(http.MethodPost, "/setup/admin", `{"username":"other","password":"pw"}`)
	assert.NoError(suite.T(), suite.handlers.SetupAdmin(c))

	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
	assert.Equal(suite.T(), "ADMIN_ALREADY_SET", decodeBody(suite.T(), rec)["error"])
}

func (suite *AuthHandlersTestSuite) TestLogin_ReturnsToken() {
	suite.authService.On("Login", mock.Anything, "admin", "pw").Return("tok123", nil)

	c, rec := suite.jsonRequest(http.MethodPost, "/auth/login", `{"username":"admin","password":"pw"}`)
	assert.NoError(suite.T(), suite.handlers.Login(c))

	body := decodeBody(suite.T(), rec)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), true, body["ok"])
	assert.Equal(suite.T(), "tok123", body["token"])
}

func (suite *AuthHandlersTestSuite) TestLogin_AdminNotSet() {
	suite.authService.On("Login", mock.Anything, "admin", "pw").Return("", services.ErrAdminNotSet)

	c, rec := suite.jsonRequest(http.MethodPost, "/auth/login", `{"username":"admin","password":"pw"}`)
	assert.NoError(suite.T(), suite.handlers.Login(c))

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "ADMIN_NOT_SET", decodeBody(suite.T(), rec)["error"])
}

func (suite *AuthHandlersTestSuite) TestLogin_WrongCredentials() {
	suite.authService.On("Login", mock.Anything, "admin", "bad").Return("", services.ErrInvalidCredentials)

	c, rec := suite.jsonRequest(http.MethodPost, "/auth/login", `{"username":"admin","password":"bad"}`)
	assert.NoError(suite.T(), suite.handlers.Login(c))

	assert.Equal(suite.T(), http.StatusUnauthorized, rec.Code)
	assert.Equal(suite.T(), "INVALID_CREDENTIALS", decodeBody(suite.T(), rec)["error"])
}

func (suite *AuthHandlersTestSuite) TestLogout_RevokesPresentedToken() {
	suite.authService.On("Logout", mock.Anything, "tok123").Return(nil)

	c, rec := suite.jsonRequest(http.MethodPost, "/auth/logout", "")
	c.Request().Header.Set("Authorization", "Bearer tok123")
	assert.NoError(suite.T(), suite.handlers.Logout(c))

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	suite.authService.AssertExpectations(suite.T())
}

func (suite *AuthHandlersTestSuite) TestLogout_NoTokenStillOK() {
	c, rec := suite.jsonRequest(http.MethodPost, "/auth/logout", "")
	assert.NoError(suite.T(), suite.handlers.Logout(c))

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), true, decodeBody(suite.T(), rec)["ok"])
	suite.authService.AssertNotCalled(suite.T(), "Logout", mock.Anything, mock.Anything)
}
