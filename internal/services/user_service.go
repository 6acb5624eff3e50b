package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/voltpay/billpay-auth-be/internal/auth"
	"github.com/voltpay/billpay-auth-be/internal/models"
)

var (
	// ErrUsernameTaken is returned by Signup when the username is already registered.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials covers both unknown-user and wrong-password signin
	// failures so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound is returned by store lookups for absent users.
	ErrNotFound = errors.New("user not found")
)

// UserStore is the persistence contract the credential service relies on.
// Create must reject duplicate usernames atomically (ErrUsernameTaken) even
// when the preceding existence check raced with another signup.
type UserStore interface {
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user models.User) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
}

// UserServiceProvider defines the interface for credential services.
type UserServiceProvider interface {
	Signup(ctx context.Context, username, password string) (models.User, error)
	Signin(ctx context.Context, username, password string) (models.User, string, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
}

// UserService provides signup and signin on top of a UserStore and a
// TokenManager.
type UserService struct {
	store  UserStore
	tokens *auth.TokenManager
}

// NewUserService creates a new UserService.
func NewUserService(store UserStore, tokens *auth.TokenManager) *UserService {
	return &UserService{store: store, tokens: tokens}
}

// Signup registers a new account: uniqueness check, hash, persist. No token
// is issued at signup.
func (s *UserService) Signup(ctx context.Context, username, password string) (models.User, error) {
	taken, err := s.store.Exists(ctx, username)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return models.User{}, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.store.Create(ctx, user); err != nil {
		// Two signups can race past the existence check; the store's
		// uniqueness constraint settles it here.
		if errors.Is(err, ErrUsernameTaken) {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	// Return user without password hash
	user.PasswordHash = ""
	return user, nil
}

// Signin verifies a user's credentials and issues a bearer token. Unknown
// usernames and wrong passwords both come back as ErrInvalidCredentials; the
// distinction only reaches the server log.
func (s *UserService) Signin(ctx context.Context, username, password string) (models.User, string, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn().Str("username", username).Msg("Signin attempt for unknown user")
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		log.Warn().Str("username", username).Msg("Signin attempt with incorrect password")
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username, time.Now())
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to issue token: %w", err)
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, token, nil
}

// GetUserByID retrieves a single user by their ID, without the password hash.
func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	user, err := s.store.FindByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}
