package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restodeals/backend/internal/deals"
	"github.com/restodeals/backend/pkg/db/models"
	"github.com/restodeals/backend/pkg/enums"
	pkgerrors "github.com/restodeals/backend/pkg/errors"
	"github.com/restodeals/backend/pkg/logger"
)

type AddItemInput struct {
	DealID uuid.UUID `json:"dealId" validate:"required"`
}

// DealSource looks deals up when a snapshot is needed. Satisfied by the
// deals repository.
type DealSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Deal, error)
}

type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error)
	Add(ctx context.Context, userID uuid.UUID, dealID uuid.UUID) (*CartResponse, error)
	Decrement(ctx context.Context, userID uuid.UUID, dealID uuid.UUID) (*CartResponse, error)
	Remove(ctx context.Context, userID uuid.UUID, dealID uuid.UUID) (*CartResponse, error)
	// Clear empties the cart outright. Not routed: order placement is the
	// only caller.
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	store Store
	deals DealSource
	logg  *logger.Logger
}

func NewService(store Store, dealSource DealSource, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, errors.New("cart: store is required")
	}
	if dealSource == nil {
		return nil, errors.New("cart: deal source is required")
	}
	if logg == nil {
		return nil, errors.New("cart: logger is required")
	}
	return &service{store: store, deals: dealSource, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	items, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return buildResponse(items), nil
}

// Add snapshots the deal into the cart. Only published, priced deals are
// cart-eligible; adding one already present bumps its quantity.
func (s *service) Add(ctx context.Context, userID uuid.UUID, dealID uuid.UUID) (*CartResponse, error) {
	deal, err := s.deals.FindByID(ctx, dealID)
	if errors.Is(err, deals.ErrDealNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load deal")
	}
	if deal.Status != enums.DealStatusPublished {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
	}
	if deal.Price == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "deal has no price and cannot be ordered")
	}

	items, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].DealID == dealID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, Item{
			DealID:         deal.ID,
			Title:          deal.Title,
			RestaurantName: deal.RestaurantName,
			UnitPrice:      *deal.Price,
			Quantity:       1,
		})
	}

	return s.save(ctx, userID, items)
}

// Decrement lowers the quantity by one and drops the line at zero. A deal
// that is not in the cart is a no-op, not an error.
func (s *service) Decrement(ctx context.Context, userID uuid.UUID, dealID uuid.UUID) (*CartResponse, error) {
	items, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].DealID != dealID {
			continue
		}
		items[i].Quantity--
		if items[i].Quantity <= 0 {
			items = append(items[:i], items[i+1:]...)
		}
		return s.save(ctx, userID, items)
	}

	return buildResponse(items), nil
}

// Remove drops the line regardless of quantity.
func (s *service) Remove(ctx context.Context, userID uuid.UUID, dealID uuid.UUID) (*CartResponse, error) {
	items, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].DealID == dealID {
			items = append(items[:i], items[i+1:]...)
			return s.save(ctx, userID, items)
		}
	}

	return buildResponse(items), nil
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) load(ctx context.Context, userID uuid.UUID) ([]Item, error) {
	items, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return items, nil
}

func (s *service) save(ctx context.Context, userID uuid.UUID, items []Item) (*CartResponse, error) {
	if err := s.store.Save(ctx, userID, items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return buildResponse(items), nil
}
