package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/voltpay/billpay-auth-be/internal/models"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteUserStore implements UserStore on a SQLite database. The users table
// carries a UNIQUE constraint on username, which is what gives Create its
// atomic duplicate rejection.
type SQLiteUserStore struct {
	db *sql.DB
}

// NewSQLiteUserStore creates a new SQLiteUserStore.
func NewSQLiteUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

// Exists reports whether a username is already registered.
func (s *SQLiteUserStore) Exists(ctx context.Context, username string) (bool, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM users WHERE username = ?", username)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new user record. A duplicate username maps to
// ErrUsernameTaken via the unique constraint.
func (s *SQLiteUserStore) Create(ctx context.Context, user models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users(id, username, password_hash) VALUES(?, ?, ?)",
		user.ID, user.Username, user.PasswordHash)
	if err != nil {
		var serr *sqlite.Error
		if errors.As(err, &serr) && serr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// FindByUsername retrieves a user by username, including the password hash.
func (s *SQLiteUserStore) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username = ?", username)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// FindByID retrieves a user by ID, including the password hash.
func (s *SQLiteUserStore) FindByID(ctx context.Context, id string) (models.User, error) {
	var user models.User
	row := s.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE id = ?", id)
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
