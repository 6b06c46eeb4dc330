package services

import (
	"context"
	"errors"
	"time"

	"agora/internal/common"
	"agora/internal/repositories"

	"github.com/jackc/pgx/v5"
)

// TokenLifetime is how long a bearer token stays valid after login.
const TokenLifetime = 30 * 24 * time.Hour

var (
	ErrAdminAlreadySet    = errors.New("admin already set")
	ErrAdminNotSet        = errors.New("admin not set")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

type AuthService interface {
	// SetupAdmin stores the admin credentials exactly once; every later
	// call fails with ErrAdminAlreadySet regardless of payload.
	SetupAdmin(ctx context.Context, username, password string) error
	// Login verifies the credentials, rotates out all prior tokens for
	// the username and returns a fresh bearer token.
	Login(ctx context.Context, username, password string) (string, error)
	// Logout revokes the token; revoking an absent token succeeds.
	Logout(ctx context.Context, token string) error
	// Authenticate resolves a non-expired token to the admin username.
	Authenticate(ctx context.Context, token string) (string, error)
}

type authService struct {
	adminRepo repositories.AdminRepository
	tokenRepo repositories.TokenRepository
}

func NewAuthService(adminRepo repositories.AdminRepository, tokenRepo repositories.TokenRepository) AuthService {
	return &authService{
		adminRepo: adminRepo,
		tokenRepo: tokenRepo,
	}
}

func (s *authService) SetupAdmin(ctx context.Context, username, password string) error {
	exists, err := s.adminRepo.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return ErrAdminAlreadySet
	}
	return s.adminRepo.Create(ctx, username, password)
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	exists, err := s.adminRepo.Exists(ctx)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrAdminNotSet
	}

	stored, err := s.adminRepo.GetPassword(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	// Passwords are stored verbatim and compared directly.
	if stored != password {
		return "", ErrInvalidCredentials
	}

	// Rotation is two statements, not a transaction. A crash in between
	// leaves the admin logged out until the next login (known gap).
	if err := s.tokenRepo.DeleteByUsername(ctx, username); err != nil {
		return "", err
	}

	token := common.GenerateToken()
	expiresAt := time.Now().Add(TokenLifetime)
	if err := s.tokenRepo.Insert(ctx, token, username, expiresAt); err != nil {
		return "", err
	}
	return token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.tokenRepo.DeleteByToken(ctx, token)
}

func (s *authService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthorized
	}
	username, err := s.tokenRepo.GetUsername(ctx, token)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	return username, nil
}
