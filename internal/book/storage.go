package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const listingColumns = "book_id, title, author, price, genre, format, publisher, image"

type Storage interface {
	All(ctx context.Context) ([]Book, error)
	Search(ctx context.Context, filter Filter, query string) ([]Book, error)
	// Find returns nil without error for an unknown id.
	Find(ctx context.Context, id int64) (*Details, error)
}

type sqlStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	return &sqlStorage{db: db}
}

// EscapeLike makes query match literally inside a LIKE pattern.
func EscapeLike(query string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
}

func searchCondition(filter Filter) (string, error) {
	switch filter {
	case FilterTitle, FilterAuthor, FilterGenre:
		return string(filter) + " ILIKE $1", nil
	case FilterAll:
		return "(title ILIKE $1 OR author ILIKE $1)", nil
	}
	return "", fmt.Errorf("unknown search filter %q", filter)
}

func (s *sqlStorage) All(ctx context.Context) ([]Book, error) {
	return s.list(ctx, "SELECT "+listingColumns+" FROM books ORDER BY title")
}

func (s *sqlStorage) Search(ctx context.Context, filter Filter, query string) ([]Book, error) {
	condition, err := searchCondition(filter)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, "SELECT "+listingColumns+" FROM books WHERE "+condition+" ORDER BY title",
		"%"+EscapeLike(query)+"%")
}

func (s *sqlStorage) list(ctx context.Context, query string, args ...interface{}) ([]Book, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := make([]Book, 0)
	for rows.Next() {
		var b Book
		if err = rows.Scan(&b.ID, &b.Title, &b.Author, &b.Price, &b.Genre, &b.Format, &b.Publisher, &b.Image); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (s *sqlStorage) Find(ctx context.Context, id int64) (*Details, error) {
	var d Details
	err := s.db.QueryRowContext(ctx,
		"SELECT "+listingColumns+", description, quantity FROM books WHERE book_id = $1", id).
		Scan(&d.ID, &d.Title, &d.Author, &d.Price, &d.Genre, &d.Format, &d.Publisher, &d.Image,
			&d.Description, &d.Quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}
