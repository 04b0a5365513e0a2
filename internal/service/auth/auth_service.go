package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/skybook/internal/domain"
	"github.com/Domenick1991/skybook/internal/repository"
	"github.com/Domenick1991/skybook/pkg/logger"
)

type AuthUseCase interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (string, error)
}

// SessionStore keeps opaque session tokens. Implemented by the Redis cache.
type SessionStore interface {
	CreateSession(ctx context.Context, username string) (string, error)
	GetSession(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, token string) error
}

type AuthService struct {
	users    repository.UserRepository
	sessions SessionStore
	log      logger.Logger
}

func NewAuthService(users repository.UserRepository, sessions SessionStore, log logger.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, log: log}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, username, hash)
	if err != nil {
		return nil, err
	}
	s.log.Info("user registered", "username", username)
	return user, nil
}

// Login verifies credentials and returns a new session token. Credential
// failures are indistinguishable from unknown users.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.sessions.CreateSession(ctx, user.Username)
	if err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeleteSession(ctx, token)
}

// Authenticate resolves a session token to a username.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	return s.sessions.GetSession(ctx, token)
}

var _ AuthUseCase = (*AuthService)(nil)
