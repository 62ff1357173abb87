package cart

import "github.com/shopspring/decimal"

// Item is one cart line joined with the book it refers to.
type Item struct {
	BookID      int64           `json:"book_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Image       string          `json:"image"`
}

type Response struct {
	Cart []Item `json:"cart"`
}

type ItemRequest struct {
	SessionToken string `json:"session_token" form:"session_token"`
	BookID       int64  `json:"bookId" form:"bookId"`
}

type QuantityRequest struct {
	SessionToken string `json:"session_token" form:"session_token"`
	BookID       int64  `json:"bookId" form:"bookId"`
	Quantity     *int   `json:"quantity" form:"quantity"`
}
