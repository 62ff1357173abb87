package review

import (
	"encoding/json"
	"time"
)

type Review struct {
	ID        int64     `json:"review_id"`
	UserID    int64     `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BookID    int64     `json:"book_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"review"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary is the rating aggregate of one book. Average is nil while the book has no reviews.
type Summary struct {
	Average *float64
	Count   int
}

// AddRequest accepts rating and bookid as numbers or numeric strings, in JSON or form bodies.
type AddRequest struct {
	Rating json.Number `json:"rating" form:"rating"`
	Review string      `json:"review" form:"review"`
	BookID json.Number `json:"bookid" form:"bookid"`
}

type AddResponse struct {
	Review
	AvgRating   *float64 `json:"avgRating"`
	RatingCount int      `json:"ratingCount"`
}

type ListResponse struct {
	Reviews   []Review `json:"reviews"`
	AvgRating *float64 `json:"avgRating"`
}
