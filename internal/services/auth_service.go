package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/isdelr/tasklist/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceProvider defines registration and credential checks.
type AuthServiceProvider interface {
	Register(ctx context.Context, username, password string) error
	Authenticate(ctx context.Context, username, password string) (models.User, error)
}

// AuthService hashes and verifies passwords on top of user storage.
type AuthService struct {
	users UserServiceProvider
	cost  int
}

// NewAuthService creates a new AuthService using the given bcrypt cost.
func NewAuthService(users UserServiceProvider, cost int) *AuthService {
	return &AuthService{users: users, cost: cost}
}

// Register creates an account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return ErrValidation
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return ErrDuplicateUsername
	} else if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// The UNIQUE constraint still decides races between concurrent registrations.
	_, err = s.users.CreateUser(ctx, username, string(hashedPassword))
	return err
}

// Authenticate verifies a user's credentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return models.User{}, ErrValidation
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't hand the hash to callers
	user.PasswordHash = ""
	return user, nil
}
