package services

import (
	"context"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Exists(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepository) Create(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func (m *MockAdminRepository) GetPassword(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) Insert(ctx context.Context, token, username string, expiresAt time.Time) error {
	args := m.Called(ctx, token, username, expiresAt)
	return args.Error(0)
}

func (m *MockTokenRepository) GetUsername(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func (m *MockTokenRepository) DeleteByUsername(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type AuthServiceTestSuite struct {
	suite.Suite
	adminRepo *MockAdminRepository
	tokenRepo *MockTokenRepository
	service   AuthService
	context   context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.adminRepo = new(MockAdminRepository)
	suite.tokenRepo = new(MockTokenRepository)
	suite.service = NewAuthService(suite.adminRepo, suite.tokenRepo)
	suite.context = context.Background()
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) TestSetupAdmin_FirstTime() {
	suite.adminRepo.On("Exists", suite.context).Return(false, nil)
	suite.adminRepo.On("Create", suite.context, "admin", "pw").Return(nil)

	err := suite.service.SetupAdmin(suite.context, "admin", "pw")
	assert.NoError(suite.T(), err)
	suite.adminRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestSetupAdmin_AlreadySet() {
	suite.adminRepo.On("Exists", suite.context).Return(true, nil)

	err := suite.service.SetupAdmin(suite.context, "other", "pw")
	assert.ErrorIs(suite.T(), err, ErrAdminAlreadySet)
	suite.adminRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_AdminNotSet() {
	suite.adminRepo.On("Exists", suite.context).Return(false, nil)

	_, err := suite.service.Login(suite.context, "admin", "pw")
	assert.ErrorIs(suite.T(), err, ErrAdminNotSet)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownUsername() {
	suite.adminRepo.On("Exists", suite.context).Return(true, nil)
	suite.adminRepo.On("GetPassword", suite.context, "ghost").Return("", pgx.ErrNoRows)

	_, err := suite.service.Login(suite.context, "ghost", "pw")
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	suite.adminRepo.On("Exists", suite.context).Return(true, nil)
	suite.adminRepo.On("GetPassword", suite.context, "admin").Return("right", nil)

	_, err := suite.service.Login(suite.context, "admin", "wrong")
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
	suite.tokenRepo.AssertNotCalled(suite.T(), "Insert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_RotatesTokens() {
	suite.adminRepo.On("Exists", suite.context).Return(true, nil)
	suite.adminRepo.On("GetPassword", suite.context, "admin").Return("pw", nil)
	suite.tokenRepo.On("DeleteByUsername", suite.context, "admin").Return(nil)
	suite.tokenRepo.On("Insert", suite.context, mock.AnythingOfType("string"), "admin", mock.AnythingOfType("time.Time")).Return(nil)

	token, err := suite.service.Login(suite.context, "admin", "pw")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), token, 64)
	suite.tokenRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestAuthenticate_EmptyToken() {
	_, err := suite.service.Authenticate(suite.context, "")
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)
	suite.tokenRepo.AssertNotCalled(suite.T(), "GetUsername", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_UnknownToken() {
	suite.tokenRepo.On("GetUsername", suite.context, "stale").Return("", pgx.ErrNoRows)

	_, err := suite.service.Authenticate(suite.context, "stale")
	assert.ErrorIs(suite.T(), err, ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_ValidToken() {
	suite.tokenRepo.On("GetUsername", suite.context, "tok").Return("admin", nil)

	username, err := suite.service.Authenticate(suite.context, "tok")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "admin", username)
}

func (suite *AuthServiceTestSuite) TestLogout_Idempotent() {
	suite.tokenRepo.On("DeleteByToken", suite.context, "gone").Return(nil)

	err := suite.service.Logout(suite.context, "gone")
	assert.NoError(suite.T(), err)
}
