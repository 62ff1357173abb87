package order

import (
	"github.com/shopspring/decimal"
	"strings"
)

const (
	ShippingExpress  = "express"
	ShippingStandard = "standard"

	expressDays  = 2
	standardDays = 5
)

var (
	TaxRate     = decimal.RequireFromString("0.10")
	expressCost = decimal.RequireFromString("6.99")
)

type ShippingQuote struct {
	Method string
	Cost   decimal.Decimal
	Days   int
}

// QuoteShipping prices express delivery; any other method ships free as standard.
func QuoteShipping(method string) ShippingQuote {
	if strings.EqualFold(strings.TrimSpace(method), ShippingExpress) {
		return ShippingQuote{Method: ShippingExpress, Cost: expressCost, Days: expressDays}
	}
	return ShippingQuote{Method: ShippingStandard, Cost: decimal.Zero, Days: standardDays}
}

func Subtotal(lines []Line) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return subtotal
}

// Total adds tax to subtotal and rounds to cents.
func Total(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(subtotal.Mul(TaxRate)).Round(2)
}
