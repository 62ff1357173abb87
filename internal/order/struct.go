package order

import (
	"github.com/shopspring/decimal"
	"time"
)

const (
	StatusCompleted = "completed"
	PaymentMethod   = "credit card"
	PaymentStatus   = "processing"
)

// Line is a cart line read at checkout, priced with the book's current price.
type Line struct {
	BookID   int64
	Title    string
	Price    decimal.Decimal
	Quantity int
	Stock    int
}

type Order struct {
	UserID          int64
	Status          string
	TotalAmount     decimal.Decimal
	ShippingAddress string
	BillingAddress  string
	OrderDate       time.Time
}

type Payment struct {
	OrderID       int64
	Amount        decimal.Decimal
	Method        string
	Status        string
	TransactionID string
}

type Shipment struct {
	OrderID        int64
	Method         string
	Cost           decimal.Decimal
	TrackingNumber string
	ShippedDate    time.Time
	DeliveryDate   time.Time
}

// Placement is what a successful checkout produced.
type Placement struct {
	OrderID     int64
	UserID      int64
	Subtotal    decimal.Decimal
	TotalAmount decimal.Decimal
	Payment     Payment
	Shipment    Shipment
	Lines       []Line
}

type PlaceRequest struct {
	SessionToken    string `json:"session_token" form:"session_token"`
	ShippingAddress string `json:"shipping_address" form:"shipping_address"`
	ShippingMethod  string `json:"shipping_method" form:"shipping_method"`
}

type PlaceResponse struct {
	ConfirmationNumber string `json:"confirmationNumber"`
}

// HistoryRow is one purchased item of one order, flattened with its order and shipment.
type HistoryRow struct {
	OrderID        int64
	OrderDate      time.Time
	TotalAmount    decimal.Decimal
	FirstName      string
	LastName       string
	DeliveryDate   time.Time
	ShippingMethod string
	ShippingCost   decimal.Decimal
	TrackingNumber string
	ShippedDate    time.Time
	BookID         int64
	Title          string
	Description    string
	Image          string
	Price          decimal.Decimal
	Quantity       int
}

type HistoryUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type HistoryShipping struct {
	DeliveryDate   string          `json:"deliveryDate"`
	ShippingMethod string          `json:"shippingMethod"`
	ShippingCost   decimal.Decimal `json:"shippingCost"`
	TrackingNumber string          `json:"trackingNumber"`
	ShippedDate    string          `json:"shippedDate"`
}

type HistoryItem struct {
	BookID      int64           `json:"bookId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

type HistoryOrder struct {
	OrderDate   time.Time       `json:"orderDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	User        HistoryUser     `json:"user"`
	Shipping    HistoryShipping `json:"shipping"`
	Items       []HistoryItem   `json:"items"`
}

type HistoryResponse struct {
	Orders HistoryOrders `json:"orders"`
}

// Event is published on the order topic after a checkout commits.
type Event struct {
	OrderID        int64           `json:"order_id"`
	UserID         int64           `json:"user_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	TrackingNumber string          `json:"tracking_number"`
	TransactionID  string          `json:"transaction_id"`
	PlacedAt       time.Time       `json:"placed_at"`
	Items          []EventItem     `json:"items"`
}

type EventItem struct {
	BookID   int64           `json:"book_id"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}
