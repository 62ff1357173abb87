package order

import (
	"bookStore/internal/apperror"
	"bookStore/package/logger"
	"context"
	"encoding/json"
	"fmt"
	"github.com/sirupsen/logrus"
	"strconv"
	"strings"
	"time"
)

const emptyCartMessage = "Cart is empty."

// Publisher delivers a keyed message to the order topic.
type Publisher interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// Workflow turns a user's cart into an order. Every table write of one
// checkout happens in a single transaction: all of them land or none do.
type Workflow struct {
	storage   Storage
	publisher Publisher
	now       func() time.Time
}

func NewWorkflow(storage Storage, publisher Publisher) *Workflow {
	return &Workflow{storage: storage, publisher: publisher, now: time.Now}
}

func (w *Workflow) Place(ctx context.Context, userID int64, request PlaceRequest) (*Placement, error) {
	address := strings.TrimSpace(request.ShippingAddress)
	if address == "" {
		return nil, apperror.InvalidParam(apperror.MissingParamsMessage)
	}
	quote := QuoteShipping(request.ShippingMethod)

	var placement *Placement
	err := w.storage.Checkout(ctx, userID, func(tx Tx) error {
		lines, err := tx.CartLines(ctx)
		if err != nil {
			return fmt.Errorf("read cart: %w", err)
		}
		if len(lines) == 0 {
			return apperror.InvalidParam(emptyCartMessage)
		}
		for _, l := range lines {
			if l.Stock < l.Quantity {
				return apperror.InvalidParam(fmt.Sprintf("Not enough copies of %q in stock.", l.Title))
			}
		}

		subtotal := Subtotal(lines)
		total := Total(subtotal)
		placedAt := w.now().UTC()

		orderID, err := tx.InsertOrder(ctx, Order{
			UserID:          userID,
			Status:          StatusCompleted,
			TotalAmount:     total,
			ShippingAddress: address,
			BillingAddress:  address,
			OrderDate:       placedAt,
		})
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		if err = tx.InsertItems(ctx, orderID, lines); err != nil {
			return fmt.Errorf("insert order items: %w", err)
		}

		payment := Payment{
			OrderID:       orderID,
			Amount:        total,
			Method:        PaymentMethod,
			Status:        PaymentStatus,
			TransactionID: NewTransactionID(),
		}
		if err = tx.InsertPayment(ctx, payment); err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}

		tracking, err := NewTrackingNumber()
		if err != nil {
			return err
		}
		shipped := truncateDay(placedAt)
		shipment := Shipment{
			OrderID:        orderID,
			Method:         quote.Method,
			Cost:           quote.Cost,
			TrackingNumber: tracking,
			ShippedDate:    shipped,
			DeliveryDate:   shipped.AddDate(0, 0, quote.Days),
		}
		if err = tx.InsertShipping(ctx, shipment); err != nil {
			return fmt.Errorf("insert shipping: %w", err)
		}

		if err = tx.DecrementStock(ctx, lines); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if err = tx.ClearCart(ctx); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		placement = &Placement{
			OrderID:     orderID,
			UserID:      userID,
			Subtotal:    subtotal,
			TotalAmount: total,
			Payment:     payment,
			Shipment:    shipment,
			Lines:       lines,
		}
		return nil
	})
	if err != nil {
		if apperror.IsInvalidParam(err) {
			return nil, err
		}
		return nil, fmt.Errorf("place order for user %d: %w", userID, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"order_id": placement.OrderID,
		"user_id":  userID,
		"total":    placement.TotalAmount.StringFixed(2),
	}).Info("Order placed")

	w.publish(ctx, placement)
	return placement, nil
}

// publish is best effort: the order is already committed.
func (w *Workflow) publish(ctx context.Context, placement *Placement) {
	if w.publisher == nil {
		return
	}

	event := Event{
		OrderID:        placement.OrderID,
		UserID:         placement.UserID,
		TotalAmount:    placement.TotalAmount,
		TrackingNumber: placement.Shipment.TrackingNumber,
		TransactionID:  placement.Payment.TransactionID,
		PlacedAt:       w.now().UTC(),
		Items:          make([]EventItem, 0, len(placement.Lines)),
	}
	for _, l := range placement.Lines {
		event.Items = append(event.Items, EventItem{BookID: l.BookID, Price: l.Price, Quantity: l.Quantity})
	}

	value, err := json.Marshal(event)
	if err != nil {
		logger.Log.WithError(err).Error("Can not encode order event")
		return
	}
	if err = w.publisher.Publish(ctx, strconv.FormatInt(placement.OrderID, 10), value); err != nil {
		logger.Log.WithError(err).WithField("order_id", placement.OrderID).Warn("Order event was not published")
	}
}

func (w *Workflow) History(ctx context.Context, userID int64) (HistoryOrders, error) {
	rows, err := w.storage.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load order history for user %d: %w", userID, err)
	}
	return FormatHistory(rows), nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
