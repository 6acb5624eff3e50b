package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/voltpay/billpay-auth-be/internal/auth"
	"github.com/voltpay/billpay-auth-be/internal/models"
)

// fakeStore is an in-memory UserStore keyed by username.
type fakeStore struct {
	users map[string]models.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]models.User)}
}

func (f *fakeStore) Exists(_ context.Context, username string) (bool, error) {
	_, ok := f.users[username]
	return ok, nil
}

func (f *fakeStore) Create(_ context.Context, user models.User) error {
	if _, ok := f.users[user.Username]; ok {
		return ErrUsernameTaken
	}
	f.users[user.Username] = user
	return nil
}

func (f *fakeStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func newTestService() (*UserService, *fakeStore, *auth.TokenManager) {
	store := newFakeStore()
	tokens := auth.NewTokenManager([]byte("0123456789abcdef0123456789abcdef"))
	return NewUserService(store, tokens), store, tokens
}

func TestSignup_Success(t *testing.T) {
	svc, store, _ := newTestService()

	user, err := svc.Signup(context.Background(), "alice", "Secret123")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Empty(t, user.PasswordHash)

	stored := store.users["alice"]
	require.NotEmpty(t, stored.PasswordHash)
	require.NotEqual(t, "Secret123", stored.PasswordHash)

	ok, err := auth.CheckPassword("Secret123", stored.PasswordHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	svc, store, _ := newTestService()

	_, err := svc.Signup(context.Background(), "alice", "Secret123")
	require.NoError(t, err)
	originalHash := store.users["alice"].PasswordHash

	_, err = svc.Signup(context.Background(), "alice", "Another456")
	require.ErrorIs(t, err, ErrUsernameTaken)

	// The existing record must be untouched.
	require.Equal(t, originalHash, store.users["alice"].PasswordHash)
}

func TestSignin_Success(t *testing.T) {
	svc, _, tokens := newTestService()

	created, err := svc.Signup(context.Background(), "alice", "Secret123")
	require.NoError(t, err)

	user, token, err := svc.Signin(context.Background(), "alice", "Secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, created.ID, user.ID)
	require.Empty(t, user.PasswordHash)

	claims, err := tokens.Validate(token, time.Now())
	require.NoError(t, err)
	require.Equal(t, created.ID, claims.UserID)
	require.Equal(t, "alice", claims.Username)
}

func TestSignin_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService()

	_, _, err := svc.Signin(context.Background(), "nobody", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Signup(context.Background(), "alice", "Secret123")
	require.NoError(t, err)

	_, _, err = svc.Signin(context.Background(), "alice", "wrong")
	// Same sentinel as the unknown-user case.
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignin_MalformedStoredHash(t *testing.T) {
	svc, store, _ := newTestService()

	store.users["alice"] = models.User{ID: "u1", Username: "alice", PasswordHash: "corrupted"}

	_, _, err := svc.Signin(context.Background(), "alice", "Secret123")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}
