package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/restodeals/backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

type PlaceOrderInput struct {
	PaymentRef string `json:"paymentRef" validate:"required,max=120"`
}

type OrderItemResponse struct {
	DealID         uuid.UUID       `json:"dealId"`
	Title          string          `json:"title"`
	RestaurantName string          `json:"restaurantName"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Quantity       int             `json:"quantity"`
}

type OrderResponse struct {
	ID         uuid.UUID           `json:"id"`
	Total      decimal.Decimal     `json:"total"`
	PaymentRef string              `json:"paymentRef"`
	Items      []OrderItemResponse `json:"items"`
	CreatedAt  time.Time           `json:"createdAt"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

func toOrderResponse(order models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			DealID:         item.DealID,
			Title:          item.Title,
			RestaurantName: item.RestaurantName,
			UnitPrice:      item.UnitPrice,
			Quantity:       item.Quantity,
		})
	}
	return OrderResponse{
		ID:         order.ID,
		Total:      order.Total,
		PaymentRef: order.PaymentRef,
		Items:      items,
		CreatedAt:  order.CreatedAt,
	}
}
