package order

import (
	"bookStore/internal/cart"
	"context"
	"database/sql"
)

// Tx exposes the writes of one checkout. It is scoped to the acting user's cart.
type Tx interface {
	CartLines(ctx context.Context) ([]Line, error)
	InsertOrder(ctx context.Context, order Order) (int64, error)
	InsertItems(ctx context.Context, orderID int64, lines []Line) error
	InsertPayment(ctx context.Context, payment Payment) error
	InsertShipping(ctx context.Context, shipment Shipment) error
	DecrementStock(ctx context.Context, lines []Line) error
	ClearCart(ctx context.Context) error
}

type Storage interface {
	// Checkout runs fn in one transaction with the user's cart locked and commits only if fn succeeds.
	Checkout(ctx context.Context, userID int64, fn func(tx Tx) error) error
	History(ctx context.Context, userID int64) ([]HistoryRow, error)
}

type sqlStorage struct {
	db *sql.DB
}

func NewStorage(db *sql.DB) Storage {
	return &sqlStorage{db: db}
}

func (s *sqlStorage) Checkout(ctx context.Context, userID int64, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	cartID, err := cart.LockCart(ctx, tx, userID)
	if err != nil {
		return err
	}
	if err = fn(&sqlTx{tx: tx, cartID: cartID}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *sqlStorage) History(ctx context.Context, userID int64) ([]HistoryRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT o.order_id, o.order_date, o.total_amount, u.first_name, u.last_name,
			s.delivery_date, s.shipping_method, s.shipping_cost, s.tracking_number, s.shipped_date,
			b.book_id, b.title, b.description, b.image, oi.price, oi.quantity
		FROM orders o
		JOIN users u ON u.user_id = o.user_id
		JOIN shipping s ON s.order_id = o.order_id
		JOIN order_items oi ON oi.order_id = o.order_id
		JOIN books b ON b.book_id = oi.book_id
		WHERE o.user_id = $1
		ORDER BY o.order_date, o.order_id, oi.order_item_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []HistoryRow
	for rows.Next() {
		var r HistoryRow
		err = rows.Scan(&r.OrderID, &r.OrderDate, &r.TotalAmount, &r.FirstName, &r.LastName,
			&r.DeliveryDate, &r.ShippingMethod, &r.ShippingCost, &r.TrackingNumber, &r.ShippedDate,
			&r.BookID, &r.Title, &r.Description, &r.Image, &r.Price, &r.Quantity)
		if err != nil {
			return nil, err
		}
		history = append(history, r)
	}
	return history, rows.Err()
}

type sqlTx struct {
	tx     *sql.Tx
	cartID int64
}

func (t *sqlTx) CartLines(ctx context.Context) ([]Line, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT ci.book_id, b.title, b.price, ci.quantity, b.quantity
		FROM cart_items ci
		JOIN books b ON b.book_id = ci.book_id
		WHERE ci.cart_id = $1
		ORDER BY ci.cart_item_id
		FOR UPDATE OF b`, t.cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err = rows.Scan(&l.BookID, &l.Title, &l.Price, &l.Quantity, &l.Stock); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (t *sqlTx) InsertOrder(ctx context.Context, order Order) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx,
		`INSERT INTO orders (user_id, order_status, total_amount, shipping_address, billing_address, order_date)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING order_id`,
		order.UserID, order.Status, order.TotalAmount, order.ShippingAddress, order.BillingAddress, order.OrderDate).
		Scan(&id)
	return id, err
}

func (t *sqlTx) InsertItems(ctx context.Context, orderID int64, lines []Line) error {
	for _, l := range lines {
		if _, err := t.tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, book_id, price, quantity) VALUES ($1, $2, $3, $4)",
			orderID, l.BookID, l.Price, l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (t *sqlTx) InsertPayment(ctx context.Context, payment Payment) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO payments (order_id, amount, payment_method, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5)`,
		payment.OrderID, payment.Amount, payment.Method, payment.Status, payment.TransactionID)
	return err
}

func (t *sqlTx) InsertShipping(ctx context.Context, shipment Shipment) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO shipping (order_id, shipping_method, shipping_cost, tracking_number, shipped_date, delivery_date)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		shipment.OrderID, shipment.Method, shipment.Cost, shipment.TrackingNumber,
		shipment.ShippedDate.Format(dateLayout), shipment.DeliveryDate.Format(dateLayout))
	return err
}

func (t *sqlTx) DecrementStock(ctx context.Context, lines []Line) error {
	for _, l := range lines {
		if _, err := t.tx.ExecContext(ctx,
			"UPDATE books SET quantity = quantity - $1 WHERE book_id = $2", l.Quantity, l.BookID); err != nil {
			return err
		}
	}
	return nil
}

func (t *sqlTx) ClearCart(ctx context.Context) error {
	if _, err := t.tx.ExecContext(ctx, "DELETE FROM cart_items WHERE cart_id = $1", t.cartID); err != nil {
		return err
	}
	_, err := t.tx.ExecContext(ctx, "UPDATE carts SET quantity = 0 WHERE cart_id = $1", t.cartID)
	return err
}
