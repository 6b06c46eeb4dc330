package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"agora/internal/common"
	"agora/internal/models"
	"agora/internal/repositories"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Create(ctx context.Context, table string, entry *models.LedgerEntry) error {
	args := m.Called(ctx, table, entry)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, table, id string) (*models.LedgerEntry, error) {
	args := m.Called(ctx, table, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) Exists(ctx context.Context, table, id string) (bool, error) {
	args := m.Called(ctx, table, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) List(ctx context.Context, table string, opts repositories.LedgerListOptions) ([]*models.LedgerEntry, error) {
	args := m.Called(ctx, table, opts)
	return args.Get(0).([]*models.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) Update(ctx context.Context, table, id string, update *common.UpdateBuilder) error {
	args := m.Called(ctx, table, id, update)
	return args.Error(0)
}

func (m *MockLedgerRepository) Delete(ctx context.Context, table, id string) error {
	args := m.Called(ctx, table, id)
	return args.Error(0)
}

type LedgerHandlersTestSuite struct {
	suite.Suite
	ledgerRepo *MockLedgerRepository
	handlers   *LedgerHandlers
	echo       *echo.Echo
}

func (suite *LedgerHandlersTestSuite) SetupTest() {
	suite.ledgerRepo = new(MockLedgerRepository)
	suite.handlers = NewLedgerHandlers(repositories.TableIncomes, suite.ledgerRepo)
	suite.echo = echo.New()
}

func TestLedgerHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlersTestSuite))
}

func (suite *LedgerHandlersTestSuite) jsonRequest(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return suite.echo.NewContext(req, rec), rec
}

func (suite *LedgerHandlersTestSuite) TestList_IgnoresMalformedBounds() {
	suite.ledgerRepo.On("List", mock.Anything, repositories.TableIncomes, repositories.LedgerListOptions{
		Start: "2025-01-01", Limit: 50, Offset: 0,
	}).Return([]*models.LedgerEntry{}, nil)

	c, rec := suite.jsonRequest(http.MethodGet, "/incomes?start=2025-01-01&end=not-a-date", "")
	assert.NoError(suite.T(), suite.handlers.List(c))

	body := decodeBody(suite.T(), rec)
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), []any{}, body["items"])
	suite.ledgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerHandlersTestSuite) TestCreate_RequiresAllFields() {
	payloads := []string{
		`{"description":"hosting","amount":10}`,
		`{"date":"2025-05-01","amount":10}`,
		`{"date":"2025-05-01","description":"   ","amount":10}`,
		`{"date":"2025-05-01","description":"hosting"}`,
		`{"date":"05/01/2025","description":"hosting","amount":10}`,
	}
	for _, payload := range payloads {
		c, rec := suite.jsonRequest(http.MethodPost, "/incomes", payload)
		assert.NoError(suite.T(), suite.handlers.Create(c))
		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code, payload)
		assert.Equal(suite.T(), "INVALID_FIELDS", decodeBody(suite.T(), rec)["error"], payload)
	}
	suite.ledgerRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerHandlersTestSuite) TestCreate_ZeroAmountAllowed() {
	suite.ledgerRepo.On("Create", mock.Anything, repositories.TableIncomes, mock.MatchedBy(func(e *models.LedgerEntry) bool {
		return e.Amount == 0 && e.ID != ""
	})).Return(nil)

	c, rec := suite.jsonRequest(http.MethodPost, "/incomes", `{"date":"2025-05-01","description":"adjustment","amount":0}`)
	assert.NoError(suite.T(), suite.handlers.Create(c))

	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	suite.ledgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerHandlersTestSuite) TestUpdate_PartialFields() {
	suite.ledgerRepo.On("Exists", mock.Anything, repositories.TableIncomes, "i1").Return(true, nil)
	suite.ledgerRepo.On("Update", mock.Anything, repositories.TableIncomes, "i1", mock.MatchedBy(func(u *common.UpdateBuilder) bool {
		_, args := u.SQL("incomes", "i1")
		return len(args) == 2 && args[0] == 120.5
	})).Return(nil)

	c, rec := suite.jsonRequest(http.MethodPatch, "/incomes/i1", `{"amount":120.5}`)
	c.SetParamNames("id")
	c.SetParamValues("i1")
	assert.NoError(suite.T(), suite.handlers.Update(c))

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
}

func (suite *LedgerHandlersTestSuite) TestDelete_MissingRowFails() {
	suite.ledgerRepo.On("Delete", mock.Anything, repositories.TableIncomes, "missing").Return(repositories.ErrNoRowsAffected)

	c, rec := suite.jsonRequest(http.MethodDelete, "/incomes/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	assert.NoError(suite.T(), suite.handlers.Delete(c))

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Equal(suite.T(), "DELETE_FAILED", decodeBody(suite.T(), rec)["error"])
}
