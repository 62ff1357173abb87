package order

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
)

const dateLayout = "2006-01-02"

// HistoryOrders maps order id to order. It encodes as a JSON object whose
// keys follow ascending order id.
type HistoryOrders map[string]*HistoryOrder

func (h HistoryOrders) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(h))
	for key := range h {
		keys = append(keys, key)
	}
	// ids are decimal without leading zeros
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, err := json.Marshal(h[key])
		if err != nil {
			return nil, err
		}
		buf.WriteString(strconv.Quote(key))
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FormatHistory groups flattened rows by order id. Rows of one order keep their relative order as items.
func FormatHistory(rows []HistoryRow) HistoryOrders {
	orders := make(HistoryOrders)
	for _, row := range rows {
		key := strconv.FormatInt(row.OrderID, 10)
		o, ok := orders[key]
		if !ok {
			o = &HistoryOrder{
				OrderDate:   row.OrderDate,
				TotalAmount: row.TotalAmount,
				User:        HistoryUser{FirstName: row.FirstName, LastName: row.LastName},
				Shipping: HistoryShipping{
					DeliveryDate:   row.DeliveryDate.Format(dateLayout),
					ShippingMethod: row.ShippingMethod,
					ShippingCost:   row.ShippingCost,
					TrackingNumber: row.TrackingNumber,
					ShippedDate:    row.ShippedDate.Format(dateLayout),
				},
				Items: make([]HistoryItem, 0, 1),
			}
			orders[key] = o
		}
		o.Items = append(o.Items, HistoryItem{
			BookID:      row.BookID,
			Title:       row.Title,
			Description: row.Description,
			Image:       row.Image,
			Price:       row.Price,
			Quantity:    row.Quantity,
		})
	}
	return orders
}
