package favorites

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/restodeals/backend/internal/deals"
	"github.com/restodeals/backend/pkg/db"
	"github.com/restodeals/backend/pkg/db/models"
	"github.com/restodeals/backend/pkg/enums"
	pkgerrors "github.com/restodeals/backend/pkg/errors"
	"github.com/restodeals/backend/pkg/logger"
)

type AddFavoriteInput struct {
	DealID uuid.UUID `json:"dealId" validate:"required"`
}

type FavoriteResponse struct {
	DealID    uuid.UUID `json:"dealId"`
	CreatedAt time.Time `json:"createdAt"`
}

type ListFavoritesResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

// DealSource mirrors the lookup the cart uses. Satisfied by the deals
// repository.
type DealSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Deal, error)
}

type Service interface {
	Add(ctx context.Context, userID uuid.UUID, dealID uuid.UUID) error
	Remove(ctx context.Context, userID uuid.UUID, dealID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) (*ListFavoritesResponse, error)
}

type service struct {
	repo  Repository
	deals DealSource
	logg  *logger.Logger
}

func NewService(repo Repository, dealSource DealSource, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("favorites: repository is required")
	}
	if dealSource == nil {
		return nil, errors.New("favorites: deal source is required")
	}
	if logg == nil {
		return nil, errors.New("favorites: logger is required")
	}
	return &service{repo: repo, deals: dealSource, logg: logg}, nil
}

// Add saves a published deal. Saving one twice is a no-op so the endpoint
// can be retried freely.
func (s *service) Add(ctx context.Context, userID uuid.UUID, dealID uuid.UUID) error {
	deal, err := s.deals.FindByID(ctx, dealID)
	if errors.Is(err, deals.ErrDealNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load deal")
	}
	if deal.Status != enums.DealStatusPublished {
		return pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
	}

	favorite := &models.Favorite{ID: uuid.New(), UserID: userID, DealID: dealID}
	if err := s.repo.Create(ctx, favorite); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save favorite")
	}
	return nil
}

// Remove unfavorites a deal. Removing one that was never saved is fine.
func (s *service) Remove(ctx context.Context, userID uuid.UUID, dealID uuid.UUID) error {
	err := s.repo.Delete(ctx, userID, dealID)
	if errors.Is(err, ErrFavoriteNotFound) {
		return nil
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove favorite")
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) (*ListFavoritesResponse, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list favorites")
	}
	out := make([]FavoriteResponse, 0, len(records))
	for _, record := range records {
		out = append(out, FavoriteResponse{DealID: record.DealID, CreatedAt: record.CreatedAt})
	}
	return &ListFavoritesResponse{Favorites: out}, nil
}
