package order

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

type memBook struct {
	Title string
	Price decimal.Decimal
	Stock int
}

type cartLine struct {
	BookID   int64
	Quantity int
}

type shopState struct {
	books     map[int64]memBook
	carts     map[int64][]cartLine
	orders    map[int64]Order
	items     map[int64][]Line
	payments  map[int64]Payment
	shipments map[int64]Shipment
	nextID    int64
}

func (s *shopState) clone() *shopState {
	c := &shopState{
		books:     map[int64]memBook{},
		carts:     map[int64][]cartLine{},
		orders:    map[int64]Order{},
		items:     map[int64][]Line{},
		payments:  map[int64]Payment{},
		shipments: map[int64]Shipment{},
		nextID:    s.nextID,
	}
	for k, v := range s.books {
		c.books[k] = v
	}
	for k, v := range s.carts {
		c.carts[k] = append([]cartLine(nil), v...)
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.items {
		c.items[k] = append([]Line(nil), v...)
	}
	for k, v := range s.payments {
		c.payments[k] = v
	}
	for k, v := range s.shipments {
		c.shipments[k] = v
	}
	return c
}

// memoryShop commits a checkout only when the callback succeeds, like a database transaction.
type memoryShop struct {
	mu     sync.Mutex
	state  *shopState
	failOn string
}

func newMemoryShop() *memoryShop {
	return &memoryShop{state: &shopState{
		books: map[int64]memBook{
			1: {Title: "Dune", Price: decimal.RequireFromString("10.00"), Stock: 5},
			2: {Title: "Emma", Price: decimal.RequireFromString("5.00"), Stock: 3},
			3: {Title: "Ulysses", Price: decimal.RequireFromString("12.50"), Stock: 1},
		},
		carts:     map[int64][]cartLine{},
		orders:    map[int64]Order{},
		items:     map[int64][]Line{},
		payments:  map[int64]Payment{},
		shipments: map[int64]Shipment{},
	}}
}

func (m *memoryShop) fill(userID int64, lines ...cartLine) {
	m.state.carts[userID] = lines
}

func (m *memoryShop) Checkout(_ context.Context, userID int64, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	work := m.state.clone()
	if err := fn(&memoryTx{state: work, userID: userID, failOn: m.failOn}); err != nil {
		return err
	}
	m.state = work
	return nil
}

func (m *memoryShop) History(_ context.Context, userID int64) ([]HistoryRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for id, o := range m.state.orders {
		if o.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var rows []HistoryRow
	for _, id := range ids {
		o := m.state.orders[id]
		s := m.state.shipments[id]
		for _, l := range m.state.items[id] {
			rows = append(rows, HistoryRow{
				OrderID:        id,
				OrderDate:      o.OrderDate,
				TotalAmount:    o.TotalAmount,
				FirstName:      "Ada",
				LastName:       "Lovelace",
				DeliveryDate:   s.DeliveryDate,
				ShippingMethod: s.Method,
				ShippingCost:   s.Cost,
				TrackingNumber: s.TrackingNumber,
				ShippedDate:    s.ShippedDate,
				BookID:         l.BookID,
				Title:          l.Title,
				Price:          l.Price,
				Quantity:       l.Quantity,
			})
		}
	}
	return rows, nil
}

type memoryTx struct {
	state  *shopState
	userID int64
	failOn string
}

func (t *memoryTx) fail(step string) error {
	if t.failOn == step {
		return errors.New(step + " failed")
	}
	return nil
}

func (t *memoryTx) CartLines(context.Context) ([]Line, error) {
	var lines []Line
	for _, cl := range t.state.carts[t.userID] {
		b := t.state.books[cl.BookID]
		lines = append(lines, Line{BookID: cl.BookID, Title: b.Title, Price: b.Price, Quantity: cl.Quantity, Stock: b.Stock})
	}
	return lines, t.fail("lines")
}

func (t *memoryTx) InsertOrder(_ context.Context, order Order) (int64, error) {
	if err := t.fail("order"); err != nil {
		return 0, err
	}
	t.state.nextID++
	t.state.orders[t.state.nextID] = order
	return t.state.nextID, nil
}

func (t *memoryTx) InsertItems(_ context.Context, orderID int64, lines []Line) error {
	t.state.items[orderID] = append([]Line(nil), lines...)
	return t.fail("items")
}

func (t *memoryTx) InsertPayment(_ context.Context, payment Payment) error {
	t.state.payments[payment.OrderID] = payment
	return t.fail("payment")
}

func (t *memoryTx) InsertShipping(_ context.Context, shipment Shipment) error {
	t.state.shipments[shipment.OrderID] = shipment
	return t.fail("shipping")
}

func (t *memoryTx) DecrementStock(_ context.Context, lines []Line) error {
	for _, l := range lines {
		b := t.state.books[l.BookID]
		b.Stock -= l.Quantity
		t.state.books[l.BookID] = b
	}
	return t.fail("stock")
}

func (t *memoryTx) ClearCart(context.Context) error {
	delete(t.state.carts, t.userID)
	return t.fail("clear")
}
