package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a user to a saved deal. One row per (user, deal).
type Favorite struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_favorites_user_deal"`
	DealID    uuid.UUID `gorm:"column:deal_id;type:uuid;not null;uniqueIndex:idx_favorites_user_deal"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
