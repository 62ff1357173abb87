package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Tx is the set of line operations available while a cart is locked.
type Tx interface {
	BookExists(ctx context.Context, bookID int64) (bool, error)
	// Line returns 0 when the book is not in the cart.
	Line(ctx context.Context, bookID int64) (int, error)
	InsertLine(ctx context.Context, bookID int64, quantity int) error
	UpdateLine(ctx context.Context, bookID int64, quantity int) error
	DeleteLine(ctx context.Context, bookID int64) error
	Quantities(ctx context.Context) ([]int, error)
	SetCount(ctx context.Context, count int) error
}

type Storage interface {
	// WithCart runs fn in one transaction that holds the user's cart row lock.
	// The cart is created when the user has none yet.
	WithCart(ctx context.Context, userID int64, fn func(tx Tx) error) error
	Items(ctx context.Context, userID int64) ([]Item, error)
}

type sqlStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	return &sqlStorage{db: db}
}

// LockCart makes sure the user has a cart and locks its row for the rest of tx.
func LockCart(ctx context.Context, tx *sql.Tx, userID int64) (int64, error) {
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO carts (user_id, quantity) VALUES ($1, 0) ON CONFLICT (user_id) DO NOTHING", userID); err != nil {
		return 0, fmt.Errorf("ensure cart: %w", err)
	}
	var cartID int64
	if err := tx.QueryRowContext(ctx,
		"SELECT cart_id FROM carts WHERE user_id = $1 FOR UPDATE", userID).Scan(&cartID); err != nil {
		return 0, fmt.Errorf("lock cart: %w", err)
	}
	return cartID, nil
}

func (s *sqlStorage) WithCart(ctx context.Context, userID int64, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	cartID, err := LockCart(ctx, tx, userID)
	if err != nil {
		return err
	}
	if err = fn(&sqlTx{tx: tx, cartID: cartID}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *sqlStorage) Items(ctx context.Context, userID int64) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.book_id, b.title, b.description, b.price, ci.quantity, b.image
		FROM carts c
		JOIN cart_items ci ON c.cart_id = ci.cart_id
		JOIN books b ON ci.book_id = b.book_id
		WHERE c.user_id = $1
		ORDER BY ci.cart_item_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err = rows.Scan(&it.BookID, &it.Title, &it.Description, &it.Price, &it.Quantity, &it.Image); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type sqlTx struct {
	tx     *sql.Tx
	cartID int64
}

func (t *sqlTx) BookExists(ctx context.Context, bookID int64) (bool, error) {
	var exists bool
	err := t.tx.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM books WHERE book_id = $1)", bookID).Scan(&exists)
	return exists, err
}

func (t *sqlTx) Line(ctx context.Context, bookID int64) (int, error) {
	var quantity int
	err := t.tx.QueryRowContext(ctx,
		"SELECT quantity FROM cart_items WHERE cart_id = $1 AND book_id = $2", t.cartID, bookID).Scan(&quantity)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return quantity, err
}

func (t *sqlTx) InsertLine(ctx context.Context, bookID int64, quantity int) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO cart_items (cart_id, book_id, quantity) VALUES ($1, $2, $3)", t.cartID, bookID, quantity)
	return err
}

func (t *sqlTx) UpdateLine(ctx context.Context, bookID int64, quantity int) error {
	_, err := t.tx.ExecContext(ctx,
		"UPDATE cart_items SET quantity = $1 WHERE cart_id = $2 AND book_id = $3", quantity, t.cartID, bookID)
	return err
}

func (t *sqlTx) DeleteLine(ctx context.Context, bookID int64) error {
	_, err := t.tx.ExecContext(ctx, "DELETE FROM cart_items WHERE cart_id = $1 AND book_id = $2", t.cartID, bookID)
	return err
}

func (t *sqlTx) Quantities(ctx context.Context) ([]int, error) {
	rows, err := t.tx.QueryContext(ctx, "SELECT quantity FROM cart_items WHERE cart_id = $1", t.cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quantities []int
	for rows.Next() {
		var q int
		if err = rows.Scan(&q); err != nil {
			return nil, err
		}
		quantities = append(quantities, q)
	}
	return quantities, rows.Err()
}

func (t *sqlTx) SetCount(ctx context.Context, count int) error {
	_, err := t.tx.ExecContext(ctx, "UPDATE carts SET quantity = $1 WHERE cart_id = $2", count, t.cartID)
	return err
}
