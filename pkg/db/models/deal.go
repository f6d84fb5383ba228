package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/restodeals/backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Deal is an owner-authored offer moving through the review lifecycle.
// RejectionReason is meaningful only while Status is REJECTED; resubmission
// clears it. Price is optional: only priced deals are cart-eligible.
type Deal struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID         uuid.UUID          `gorm:"column:owner_id;type:uuid;not null;index"`
	Title           string             `gorm:"column:title;type:text;not null"`
	Description     string             `gorm:"column:description;type:text;not null"`
	RestaurantName  string             `gorm:"column:restaurant_name;type:text;not null"`
	DealType        enums.DealType     `gorm:"column:deal_type;type:text;not null"`
	DiscountType    enums.DiscountType `gorm:"column:discount_type;type:text;not null"`
	DiscountValue   decimal.Decimal    `gorm:"column:discount_value;type:numeric(10,2);not null"`
	Price           *decimal.Decimal   `gorm:"column:price;type:numeric(10,2)"`
	Status          enums.DealStatus   `gorm:"column:status;type:text;not null;index"`
	RejectionReason *string            `gorm:"column:rejection_reason;type:text"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
