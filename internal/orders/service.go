package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/restodeals/backend/internal/cart"
	"github.com/restodeals/backend/pkg/db/models"
	pkgerrors "github.com/restodeals/backend/pkg/errors"
	"github.com/restodeals/backend/pkg/logger"
	"github.com/restodeals/backend/pkg/metrics"
	"gorm.io/gorm"
)

// TxRunner runs fn inside a database transaction. Satisfied by db.Client.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type Service interface {
	Place(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*OrderResponse, error)
	List(ctx context.Context, userID uuid.UUID) (*ListOrdersResponse, error)
	Get(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*OrderResponse, error)
}

type service struct {
	repo    Repository
	carts   cart.Service
	tx      TxRunner
	metrics *metrics.DealMetrics
	logg    *logger.Logger
}

func NewService(repo Repository, carts cart.Service, tx TxRunner, dealMetrics *metrics.DealMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("orders: repository is required")
	}
	if carts == nil {
		return nil, errors.New("orders: cart service is required")
	}
	if tx == nil {
		return nil, errors.New("orders: tx runner is required")
	}
	if logg == nil {
		return nil, errors.New("orders: logger is required")
	}
	return &service{repo: repo, carts: carts, tx: tx, metrics: dealMetrics, logg: logg}, nil
}

// Place freezes the current cart into an order. The cart is cleared only
// after the order commits; a failed placement leaves the cart intact.
func (s *service) Place(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*OrderResponse, error) {
	snapshot, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(snapshot.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := &models.Order{
		ID:         uuid.New(),
		UserID:     userID,
		Total:      snapshot.Total,
		PaymentRef: input.PaymentRef,
		Items:      make([]models.OrderItem, 0, len(snapshot.Items)),
	}
	for _, item := range snapshot.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:             uuid.New(),
			OrderID:        order.ID,
			DealID:         item.DealID,
			Title:          item.Title,
			RestaurantName: item.RestaurantName,
			UnitPrice:      item.UnitPrice,
			Quantity:       item.Quantity,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "place order")
	}

	if err := s.carts.Clear(ctx, userID); err != nil {
		// The order is committed; a lingering cart is an annoyance, not a
		// reason to fail the placement.
		s.logg.Error(ctx, "clear cart after order", err)
	}

	s.metrics.IncOrderPlaced()
	logCtx := s.logg.WithFields(ctx, map[string]any{"order_id": order.ID, "total": order.Total.String()})
	s.logg.Info(logCtx, "order placed")

	response := toOrderResponse(*order)
	return &response, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) (*ListOrdersResponse, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	out := make([]OrderResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toOrderResponse(record))
	}
	return &ListOrdersResponse{Orders: out}, nil
}

func (s *service) Get(ctx context.Context, userID uuid.UUID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if errors.Is(err, ErrOrderNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if order.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	response := toOrderResponse(*order)
	return &response, nil
}
