package favorites

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restodeals/backend/pkg/db/models"
	"gorm.io/gorm"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

type Repository interface {
	Create(ctx context.Context, favorite *models.Favorite) error
	Delete(ctx context.Context, userID uuid.UUID, dealID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error)
	WithTx(tx *gorm.DB) Repository
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, favorite *models.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, userID uuid.UUID, dealID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND deal_id = ?", userID, dealID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Favorite, error) {
	var records []models.Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
