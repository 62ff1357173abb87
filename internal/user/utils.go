package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

const (
	maxNameLength     = 64
	maxEmailLength    = 254
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordLength = 72
)

func SuitableForRestrictions(user *User) bool {
	return len(user.FirstName) <= maxNameLength &&
		len(user.LastName) <= maxNameLength &&
		len(user.Email) <= maxEmailLength &&
		len(user.Password) >= minPasswordLength &&
		len(user.Password) <= maxPasswordLength
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type Storage interface {
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	// Create inserts the user together with the user's empty cart.
	Create(ctx context.Context, user *User, passwordHash string) (int64, error)
	// FindCredentials returns nil without error for an unknown email.
	FindCredentials(ctx context.Context, email string) (*Credentials, error)
}

type sqlStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	return &sqlStorage{db: db}
}

func (s *sqlStorage) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE email = $1", email).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *sqlStorage) Create(ctx context.Context, user *User, passwordHash string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx,
		"INSERT INTO users (first_name, last_name, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING user_id",
		user.FirstName, user.LastName, user.Email, passwordHash).Scan(&id)
	if err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, "INSERT INTO carts (user_id, quantity) VALUES ($1, 0)", id); err != nil {
		return 0, err
	}
	return id, tx.Commit()
}

func (s *sqlStorage) FindCredentials(ctx context.Context, email string) (*Credentials, error) {
	var creds Credentials
	err := s.db.QueryRowContext(ctx, "SELECT user_id, password_hash FROM users WHERE email = $1", email).
		Scan(&creds.UserID, &creds.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &creds, nil
}
