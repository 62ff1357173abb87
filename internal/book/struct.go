package book

import "github.com/shopspring/decimal"

// Book is the listing view returned by catalog search.
type Book struct {
	ID        int64           `json:"book_id"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	Price     decimal.Decimal `json:"price"`
	Genre     string          `json:"genre"`
	Format    string          `json:"format"`
	Publisher string          `json:"publisher"`
	Image     string          `json:"image"`
}

// Details is the full row served on a product page.
type Details struct {
	Book
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

type Filter string

const (
	FilterTitle  Filter = "title"
	FilterAuthor Filter = "author"
	FilterGenre  Filter = "genre"
	FilterAll    Filter = "all"
)

func ParseFilter(raw string) (Filter, bool) {
	switch f := Filter(raw); f {
	case FilterTitle, FilterAuthor, FilterGenre, FilterAll:
		return f, true
	}
	return "", false
}

type SearchResponse struct {
	Books []Book `json:"books"`
}
