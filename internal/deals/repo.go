package deals

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/restodeals/backend/pkg/db/models"
	"github.com/restodeals/backend/pkg/enums"
	"gorm.io/gorm"
)

var ErrDealNotFound = errors.New("deal not found")

// ListFilter narrows list queries. Zero values mean "no constraint".
type ListFilter struct {
	OwnerID  uuid.UUID
	Status   enums.DealStatus
	DealType enums.DealType
	// Keyset position: rows strictly older than (CreatedAt, ID) are returned.
	CursorCreatedAt *time.Time
	CursorID        *uuid.UUID
	Limit           int
}

type Repository interface {
	Create(ctx context.Context, deal *models.Deal) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Deal, error)
	Update(ctx context.Context, deal *models.Deal) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]models.Deal, error)
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

func (r *repositoryImpl) Create(ctx context.Context, deal *models.Deal) error {
	return r.db.WithContext(ctx).Create(deal).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Deal, error) {
	var deal models.Deal
	err := r.db.WithContext(ctx).First(&deal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *repositoryImpl) Update(ctx context.Context, deal *models.Deal) error {
	return r.db.WithContext(ctx).Save(deal).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Deal{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDealNotFound
	}
	return nil
}

func (r *repositoryImpl) List(ctx context.Context, filter ListFilter) ([]models.Deal, error) {
	query := r.db.WithContext(ctx).Model(&models.Deal{})
	if filter.OwnerID != uuid.Nil {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DealType != "" {
		query = query.Where("deal_type = ?", filter.DealType)
	}
	if filter.CursorCreatedAt != nil && filter.CursorID != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			*filter.CursorCreatedAt, *filter.CursorCreatedAt, *filter.CursorID,
		)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var records []models.Deal
	if err := query.Order("created_at DESC, id DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
