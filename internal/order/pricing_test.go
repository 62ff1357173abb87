package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTotal(t *testing.T) {
	cases := []struct {
		name     string
		lines    []Line
		subtotal string
		total    string
	}{
		{"two lines", []Line{{Price: d("10.00"), Quantity: 2}, {Price: d("5.00"), Quantity: 1}}, "25.00", "27.50"},
		{"rounds up", []Line{{Price: d("9.99"), Quantity: 3}}, "29.97", "32.97"},
		{"half cent", []Line{{Price: d("0.05"), Quantity: 1}}, "0.05", "0.06"},
		{"cents add up", []Line{{Price: d("19.99"), Quantity: 1}, {Price: d("0.01"), Quantity: 1}}, "20.00", "22.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			subtotal := Subtotal(tc.lines)
			assert.True(t, d(tc.subtotal).Equal(subtotal), "subtotal %s", subtotal)
			assert.Equal(t, tc.total, Total(subtotal).StringFixed(2))
		})
	}
}

func TestQuoteShipping(t *testing.T) {
	express := QuoteShipping("express")
	assert.Equal(t, ShippingExpress, express.Method)
	assert.Equal(t, "6.99", express.Cost.StringFixed(2))
	assert.Equal(t, 2, express.Days)

	assert.Equal(t, ShippingExpress, QuoteShipping(" Express ").Method)

	for _, method := range []string{"standard", "", "overnight"} {
		quote := QuoteShipping(method)
		assert.Equal(t, ShippingStandard, quote.Method, method)
		assert.True(t, quote.Cost.IsZero(), method)
		assert.Equal(t, 5, quote.Days, method)
	}
}

func TestIdentifiers(t *testing.T) {
	assert.Regexp(t, `^[0-9a-f]{32}$`, NewTransactionID())
	assert.NotEqual(t, NewTransactionID(), NewTransactionID())

	tracking, err := NewTrackingNumber()
	assert.NoError(t, err)
	assert.Regexp(t, `^[0-9a-f]{16}$`, tracking)
}
