package cart

import (
	"bookStore/internal/apperror"
	"context"
	"fmt"
)

const notInCartMessage = "The book is not in the cart."

// Manager mutates a user's cart. After every mutation the cart counter is
// recomputed from all lines, so it always equals their quantity sum.
type Manager struct {
	storage Storage
}

func NewManager(storage Storage) *Manager {
	return &Manager{storage: storage}
}

func (m *Manager) AddOne(ctx context.Context, userID, bookID int64) error {
	return m.mutate(ctx, userID, func(tx Tx) error {
		exists, err := tx.BookExists(ctx, bookID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.InvalidParam(apperror.BookNotFoundMessage)
		}

		quantity, err := tx.Line(ctx, bookID)
		if err != nil {
			return err
		}
		if quantity == 0 {
			return tx.InsertLine(ctx, bookID, 1)
		}
		return tx.UpdateLine(ctx, bookID, quantity+1)
	})
}

func (m *Manager) Remove(ctx context.Context, userID, bookID int64) error {
	return m.mutate(ctx, userID, func(tx Tx) error {
		return tx.DeleteLine(ctx, bookID)
	})
}

// SetQuantity sets the line to quantity, deleting it when quantity is zero.
func (m *Manager) SetQuantity(ctx context.Context, userID, bookID int64, quantity int) error {
	if quantity < 0 {
		return apperror.InvalidParam("Quantity can not be negative.")
	}
	return m.mutate(ctx, userID, func(tx Tx) error {
		current, err := tx.Line(ctx, bookID)
		if err != nil {
			return err
		}
		if current == 0 {
			return apperror.InvalidParam(notInCartMessage)
		}
		if quantity == 0 {
			return tx.DeleteLine(ctx, bookID)
		}
		return tx.UpdateLine(ctx, bookID, quantity)
	})
}

func (m *Manager) Get(ctx context.Context, userID int64) ([]Item, error) {
	items, err := m.storage.Items(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if items == nil {
		items = make([]Item, 0)
	}
	return items, nil
}

func (m *Manager) mutate(ctx context.Context, userID int64, change func(tx Tx) error) error {
	err := m.storage.WithCart(ctx, userID, func(tx Tx) error {
		if err := change(tx); err != nil {
			return err
		}
		return recount(ctx, tx)
	})
	if err != nil && !apperror.IsInvalidParam(err) {
		return fmt.Errorf("update cart of user %d: %w", userID, err)
	}
	return err
}

func recount(ctx context.Context, tx Tx) error {
	quantities, err := tx.Quantities(ctx)
	if err != nil {
		return err
	}
	total := 0
	for _, q := range quantities {
		total += q
	}
	return tx.SetCount(ctx, total)
}
