package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockSettingRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

type SettingsHandlersTestSuite struct {
	suite.Suite
	settingRepo *MockSettingRepository
	handlers    *SettingsHandlers
	echo        *echo.Echo
}

func (suite *SettingsHandlersTestSuite) SetupTest() {
	suite.settingRepo = new(MockSettingRepository)
	suite.handlers = NewSettingsHandlers(suite.settingRepo)
	suite.echo = echo.New()
}

func TestSettingsHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(SettingsHandlersTestSuite))
}

func (suite *SettingsHandlersTestSuite) jsonRequest(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return suite.echo.NewContext(req, rec), rec
}

func (suite *SettingsHandlersTestSuite) TestGetSMTP_NeverConfigured() {
	suite.settingRepo.On("Get", mock.Anything, "smtp_settings").Return("", false, nil)

	c, rec := suite.jsonRequest(http.MethodGet, "/settings/smtp", "")
	assert.NoError(suite.T(), suite.handlers.GetSMTP(c))

	body := decodeBody(suite.T(), rec)
	assert.Equal(suite.T(), true, body["ok"])
	assert.Nil(suite.T(), body["smtp"])
}

func (suite *SettingsHandlersTestSuite) TestGetSMTP_ReturnsStoredSettings() {
	stored := `{"host":"smtp.example.com","port":587,"secure":true,"username":"mailer","password":"pw"}`
	suite.settingRepo.On("Get", mock.Anything, "smtp_settings").Return(stored, true, nil)

	c, rec := suite.jsonRequest(http.MethodGet, "/settings/smtp", "")
	assert.NoError(suite.T(), suite.handlers.GetSMTP(c))

	smtp := decodeBody(suite.T(), rec)["smtp"].(map[string]any)
	assert.Equal(suite.T(), "smtp.example.com", smtp["host"])
	assert.Equal(suite.T(), float64(587), smtp["port"])
	assert.Equal(suite.T(), true, smtp["secure"])
}

func (suite *SettingsHandlersTestSuite) TestPutSMTP_RequiresHostAndPort() {
	payloads := []string{
		`{"port":587}`,
		`{"host":"smtp.example.com"}`,
		`{"host":"smtp.example.com","port":0}`,
	}
	for _, payload := range payloads {
		c, rec := suite.jsonRequest(http.MethodPut, "/settings/smtp", payload)
		assert.NoError(suite.T(), suite.handlers.PutSMTP(c))
		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code, payload)
		assert.Equal(suite.T(), "INVALID_SMTP", decodeBody(suite.T(), rec)["error"], payload)
	}
	suite.settingRepo.AssertNotCalled(suite.T(), "Set", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettingsHandlersTestSuite) TestPutSMTP_Upserts() {
	suite.settingRepo.On("Set", mock.Anything, "smtp_settings", mock.AnythingOfType("string")).Return(nil)

	c, rec := suite.jsonRequest(http.MethodPut, "/settings/smtp",
		`{"host":"smtp.example.com","port":587,"secure":true,"username":"mailer","password":"pw"}`)
	assert.NoError(suite.T(), suite.handlers.PutSMTP(c))

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	suite.settingRepo.AssertExpectations(suite.T())
}
