package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one cart line. Title, restaurant, and unit price are snapshots
// taken when the deal was added; later edits to the deal do not rewrite them.
type Item struct {
	DealID         uuid.UUID       `json:"dealId"`
	Title          string          `json:"title"`
	RestaurantName string          `json:"restaurantName"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       int             `json:"quantity"`
}

// CartResponse carries the items plus the derived totals. Count and Total
// are recomputed from the items on every read, never stored.
type CartResponse struct {
	Items []Item          `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

func buildResponse(items []Item) *CartResponse {
	count := 0
	total := decimal.Zero
	for _, item := range items {
		count += item.Quantity
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if items == nil {
		items = []Item{}
	}
	return &CartResponse{Items: items, Count: count, Total: total}
}
