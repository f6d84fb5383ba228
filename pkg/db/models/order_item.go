package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem captures the snapshot of each cart entry within an order.
type OrderItem struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	DealID         uuid.UUID       `gorm:"column:deal_id;type:uuid;not null"`
	Title          string          `gorm:"column:title;type:text;not null"`
	RestaurantName string          `gorm:"column:restaurant_name;type:text;not null"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Quantity       int             `gorm:"column:quantity;not null"`
}
