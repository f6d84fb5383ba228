package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a placed order. Totals and line snapshots are frozen from the
// cart at placement time.
type Order struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"column:user_id;type:uuid;not null;index"`
	Total      decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null"`
	PaymentRef string          `gorm:"column:payment_ref;type:text;not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}
