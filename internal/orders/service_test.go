package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/restodeals/backend/internal/cart"
	"github.com/restodeals/backend/pkg/db/models"
	pkgerrors "github.com/restodeals/backend/pkg/errors"
	"github.com/restodeals/backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeOrderRepo struct {
	createFn     func(ctx context.Context, order *models.Order) error
	findByIDFn   func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	listByUserFn func(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, order)
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if f.findByIDFn == nil {
		return nil, ErrOrderNotFound
	}
	return f.findByIDFn(ctx, id)
}

func (f *fakeOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	if f.listByUserFn == nil {
		return nil, nil
	}
	return f.listByUserFn(ctx, userID)
}

func (f *fakeOrderRepo) WithTx(tx *gorm.DB) Repository { return f }

type fakeCartService struct {
	response *cart.CartResponse
	cleared  bool
	clearErr error
}

func (f *fakeCartService) Get(ctx context.Context, userID uuid.UUID) (*cart.CartResponse, error) {
	if f.response == nil {
		return &cart.CartResponse{Items: []cart.Item{}, Total: decimal.Zero}, nil
	}
	return f.response, nil
}

func (f *fakeCartService) Add(ctx context.Context, userID, dealID uuid.UUID) (*cart.CartResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeCartService) Decrement(ctx context.Context, userID, dealID uuid.UUID) (*cart.CartResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeCartService) Remove(ctx context.Context, userID, dealID uuid.UUID) (*cart.CartResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeCartService) Clear(ctx context.Context, userID uuid.UUID) error {
	f.cleared = true
	return f.clearErr
}

type fakeTxRunner struct {
	err error
}

func (f *fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

func filledCart() *cart.CartResponse {
	return &cart.CartResponse{
		Items: []cart.Item{
			{
				DealID:         uuid.New(),
				Title:          "Burger combo",
				RestaurantName: "Patty Shack",
				UnitPrice:      decimal.RequireFromString("10.00"),
				Quantity:       1,
			},
			{
				DealID:         uuid.New(),
				Title:          "Pho special",
				RestaurantName: "Hanoi House",
				UnitPrice:      decimal.RequireFromString("5.50"),
				Quantity:       2,
			},
		},
		Count: 3,
		Total: decimal.RequireFromString("21.00"),
	}
}

func newTestOrders(t *testing.T, repo Repository, carts cart.Service, tx TxRunner) Service {
	t.Helper()
	svc, err := NewService(repo, carts, tx, nil, logger.New(logger.Options{Level: logger.ParseLevel("error")}))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func wantCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	appErr := pkgerrors.As(err)
	if appErr == nil {
		t.Fatalf("error = %v, want coded error %s", err, code)
	}
	if appErr.Code() != code {
		t.Fatalf("code = %s, want %s", appErr.Code(), code)
	}
}

func TestPlaceFreezesCartIntoOrder(t *testing.T) {
	var stored *models.Order
	repo := &fakeOrderRepo{
		createFn: func(ctx context.Context, order *models.Order) error {
			stored = order
			return nil
		},
	}
	carts := &fakeCartService{response: filledCart()}
	svc := newTestOrders(t, repo, carts, &fakeTxRunner{})

	resp, err := svc.Place(context.Background(), uuid.New(), PlaceOrderInput{PaymentRef: "pay_123"})
	if err != nil {
		t.Fatalf("Place() error = %v", err)
	}
	if stored == nil {
		t.Fatal("expected order to be persisted")
	}
	if len(stored.Items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(stored.Items))
	}
	if !stored.Total.Equal(decimal.RequireFromString("21.00")) {
		t.Fatalf("total = %s, want 21.00", stored.Total)
	}
	if !carts.cleared {
		t.Fatal("cart must be cleared after a committed order")
	}
	if resp.PaymentRef != "pay_123" {
		t.Fatalf("payment ref = %s", resp.PaymentRef)
	}
}

func TestPlaceEmptyCart(t *testing.T) {
	carts := &fakeCartService{}
	svc := newTestOrders(t, &fakeOrderRepo{}, carts, &fakeTxRunner{})

	_, err := svc.Place(context.Background(), uuid.New(), PlaceOrderInput{PaymentRef: "pay_123"})
	wantCode(t, err, pkgerrors.CodeValidation)
	if carts.cleared {
		t.Fatal("a failed placement must not clear the cart")
	}
}

func TestPlaceKeepsCartOnCommitFailure(t *testing.T) {
	carts := &fakeCartService{response: filledCart()}
	svc := newTestOrders(t, &fakeOrderRepo{}, carts, &fakeTxRunner{err: errors.New("deadlock")})

	_, err := svc.Place(context.Background(), uuid.New(), PlaceOrderInput{PaymentRef: "pay_123"})
	wantCode(t, err, pkgerrors.CodeInternal)
	if carts.cleared {
		t.Fatal("cart must survive a failed commit")
	}
}

func TestPlaceSurvivesClearFailure(t *testing.T) {
	carts := &fakeCartService{response: filledCart(), clearErr: errors.New("redis down")}
	svc := newTestOrders(t, &fakeOrderRepo{}, carts, &fakeTxRunner{})

	if _, err := svc.Place(context.Background(), uuid.New(), PlaceOrderInput{PaymentRef: "pay_123"}); err != nil {
		t.Fatalf("Place() error = %v, committed orders must not fail on cart cleanup", err)
	}
}

func TestGetHidesForeignOrder(t *testing.T) {
	order := &models.Order{ID: uuid.New(), UserID: uuid.New(), Total: decimal.RequireFromString("5.00")}
	repo := &fakeOrderRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Order, error) { return order, nil },
	}
	svc := newTestOrders(t, repo, &fakeCartService{}, &fakeTxRunner{})

	_, err := svc.Get(context.Background(), uuid.New(), order.ID)
	wantCode(t, err, pkgerrors.CodeNotFound)
}

func TestListReturnsUsersOrders(t *testing.T) {
	userID := uuid.New()
	repo := &fakeOrderRepo{
		listByUserFn: func(ctx context.Context, id uuid.UUID) ([]models.Order, error) {
			return []models.Order{{ID: uuid.New(), UserID: id, Total: decimal.RequireFromString("9.00")}}, nil
		},
	}
	svc := newTestOrders(t, repo, &fakeCartService{}, &fakeTxRunner{})

	resp, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resp.Orders) != 1 {
		t.Fatalf("len(orders) = %d, want 1", len(resp.Orders))
	}
}
