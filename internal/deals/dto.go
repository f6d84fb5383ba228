package deals

import (
	"time"

	"github.com/google/uuid"
	"github.com/restodeals/backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

type CreateDealInput struct {
	Title          string  `json:"title" validate:"required,min=3,max=160"`
	Description    string  `json:"description" validate:"required,max=4000"`
	RestaurantName string  `json:"restaurantName" validate:"required,max=160"`
	DealType       string  `json:"dealType" validate:"required,oneof=Lunch Carryout Delivery Other"`
	DiscountType   string  `json:"discountType" validate:"required,oneof=percent amount bogo other"`
	DiscountValue  string  `json:"discountValue" validate:"required"`
	Price          *string `json:"price,omitempty"`
}

// UpdateDealInput carries partial edits. Nil fields are left untouched.
type UpdateDealInput struct {
	Title          *string `json:"title,omitempty" validate:"omitempty,min=3,max=160"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=4000"`
	RestaurantName *string `json:"restaurantName,omitempty" validate:"omitempty,max=160"`
	DealType       *string `json:"dealType,omitempty" validate:"omitempty,oneof=Lunch Carryout Delivery Other"`
	DiscountType   *string `json:"discountType,omitempty" validate:"omitempty,oneof=percent amount bogo other"`
	DiscountValue  *string `json:"discountValue,omitempty"`
	Price          *string `json:"price,omitempty"`
}

type RejectDealInput struct {
	Reason string `json:"reason" validate:"required,min=1,max=2000"`
}

type DealResponse struct {
	ID              uuid.UUID        `json:"id"`
	OwnerID         uuid.UUID        `json:"ownerId"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	RestaurantName  string           `json:"restaurantName"`
	DealType        string           `json:"dealType"`
	DiscountType    string           `json:"discountType"`
	DiscountValue   decimal.Decimal  `json:"discountValue"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Status          string           `json:"status"`
	RejectionReason *string          `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type ListDealsResponse struct {
	Deals      []DealResponse `json:"deals"`
	NextCursor string         `json:"nextCursor,omitempty"`
}

func toDealResponse(deal models.Deal) DealResponse {
	return DealResponse{
		ID:              deal.ID,
		OwnerID:         deal.OwnerID,
		Title:           deal.Title,
		Description:     deal.Description,
		RestaurantName:  deal.RestaurantName,
		DealType:        deal.DealType.String(),
		DiscountType:    deal.DiscountType.String(),
		DiscountValue:   deal.DiscountValue,
		Price:           deal.Price,
		Status:          deal.Status.String(),
		RejectionReason: deal.RejectionReason,
		CreatedAt:       deal.CreatedAt,
		UpdatedAt:       deal.UpdatedAt,
	}
}

func toDealResponses(records []models.Deal) []DealResponse {
	out := make([]DealResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toDealResponse(record))
	}
	return out
}
