package session

import (
	"context"
	"database/sql"
	"errors"
)

type sqlStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	return &sqlStorage{db: db}
}

func (s *sqlStorage) SetToken(ctx context.Context, userID int64, token string) (string, error) {
	var previous sql.NullString
	err := s.db.QueryRowContext(ctx,
		`UPDATE users u SET session_token = $1
		FROM (SELECT user_id, session_token FROM users WHERE user_id = $2 FOR UPDATE) old
		WHERE u.user_id = old.user_id
		RETURNING old.session_token`,
		token, userID).Scan(&previous)
	if err != nil {
		return "", err
	}
	return previous.String, nil
}

func (s *sqlStorage) ClearToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "UPDATE users SET session_token = NULL WHERE session_token = $1", token)
	return err
}

func (s *sqlStorage) FindByToken(ctx context.Context, token string) (*Identity, error) {
	var identity Identity
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, first_name, last_name FROM users WHERE session_token = $1", token).
		Scan(&identity.UserID, &identity.FirstName, &identity.LastName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &identity, nil
}
