package review

import (
	"context"
	"database/sql"
)

type Storage interface {
	BookExists(ctx context.Context, bookID int64) (bool, error)
	Insert(ctx context.Context, review *Review) error
	Summary(ctx context.Context, bookID int64) (Summary, error)
	// List returns the reviews of a book newest first.
	List(ctx context.Context, bookID int64) ([]Review, error)
}

type sqlStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	return &sqlStorage{db: db}
}

func (s *sqlStorage) BookExists(ctx context.Context, bookID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM books WHERE book_id = $1)", bookID).Scan(&exists)
	return exists, err
}

func (s *sqlStorage) Insert(ctx context.Context, review *Review) error {
	return s.db.QueryRowContext(ctx,
		`INSERT INTO reviews (user_id, book_id, rating, review) VALUES ($1, $2, $3, $4)
		RETURNING review_id, created_at`,
		review.UserID, review.BookID, review.Rating, review.Text).Scan(&review.ID, &review.CreatedAt)
}

func (s *sqlStorage) Summary(ctx context.Context, bookID int64) (Summary, error) {
	var (
		summary Summary
		average sql.NullFloat64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT AVG(rating)::float8, COUNT(rating) FROM reviews WHERE book_id = $1", bookID).
		Scan(&average, &summary.Count)
	if err != nil {
		return Summary{}, err
	}
	if average.Valid {
		summary.Average = &average.Float64
	}
	return summary, nil
}

func (s *sqlStorage) List(ctx context.Context, bookID int64) ([]Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.review_id, r.user_id, u.first_name, u.last_name, r.book_id, r.rating, r.review, r.created_at
		FROM reviews r
		JOIN users u ON u.user_id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.created_at DESC, r.review_id DESC`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		var r Review
		if err = rows.Scan(&r.ID, &r.UserID, &r.FirstName, &r.LastName, &r.BookID, &r.Rating, &r.Text, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
