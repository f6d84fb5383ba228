package deals

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/restodeals/backend/pkg/db/models"
	"github.com/restodeals/backend/pkg/enums"
	pkgerrors "github.com/restodeals/backend/pkg/errors"
	"github.com/restodeals/backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn   func(ctx context.Context, deal *models.Deal) error
	findByIDFn func(ctx context.Context, id uuid.UUID) (*models.Deal, error)
	updateFn   func(ctx context.Context, deal *models.Deal) error
	deleteFn   func(ctx context.Context, id uuid.UUID) error
	listFn     func(ctx context.Context, filter ListFilter) ([]models.Deal, error)
}

func (f *fakeRepo) Create(ctx context.Context, deal *models.Deal) error {
	if f.createFn == nil {
		return nil
	}
	return f.createFn(ctx, deal)
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Deal, error) {
	if f.findByIDFn == nil {
		return nil, ErrDealNotFound
	}
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) Update(ctx context.Context, deal *models.Deal) error {
	if f.updateFn == nil {
		return nil
	}
	return f.updateFn(ctx, deal)
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn == nil {
		return nil
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]models.Deal, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, filter)
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

type fakeNotifier struct {
	approved []uuid.UUID
	rejected []string
}

func (f *fakeNotifier) DealApproved(ctx context.Context, ownerID uuid.UUID, dealTitle string) {
	f.approved = append(f.approved, ownerID)
}

func (f *fakeNotifier) DealRejected(ctx context.Context, ownerID uuid.UUID, dealTitle, reason string) {
	f.rejected = append(f.rejected, reason)
}

func newTestService(t *testing.T, repo Repository, notifier Notifier) Service {
	t.Helper()
	svc, err := NewService(repo, notifier, nil, logger.New(logger.Options{Level: logger.ParseLevel("error")}))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func draftDeal(ownerID uuid.UUID) *models.Deal {
	price := decimal.RequireFromString("12.50")
	return &models.Deal{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Title:          "Two-for-one tacos",
		Description:    "Every weekday after 3pm",
		RestaurantName: "Casa Azul",
		DealType:       enums.DealTypeLunch,
		DiscountType:   enums.DiscountTypeBogo,
		DiscountValue:  decimal.RequireFromString("50"),
		Price:          &price,
		Status:         enums.DealStatusDraft,
	}
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

func TestCreateDraftPersistsDraftStatus(t *testing.T) {
	ownerID := uuid.New()
	var stored *models.Deal
	repo := &fakeRepo{
		createFn: func(ctx context.Context, deal *models.Deal) error {
			stored = deal
			return nil
		},
	}
	svc := newTestService(t, repo, nil)

	price := "9.99"
	resp, err := svc.CreateDraft(context.Background(), ownerID, CreateDealInput{
		Title:          "Lunch special",
		Description:    "Soup and sandwich",
		RestaurantName: "The Corner",
		DealType:       "Lunch",
		DiscountType:   "amount",
		DiscountValue:  "4.00",
		Price:          &price,
	})
	if err != nil {
		t.Fatalf("CreateDraft() error = %v", err)
	}
	if stored == nil {
		t.Fatal("expected repo create to be called")
	}
	if stored.Status != enums.DealStatusDraft {
		t.Fatalf("status = %s, want DRAFT", stored.Status)
	}
	if stored.ID == uuid.Nil {
		t.Fatal("expected a generated deal id")
	}
	if resp.Status != "DRAFT" {
		t.Fatalf("response status = %s, want DRAFT", resp.Status)
	}
	if resp.Price == nil || !resp.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("response price = %v, want 9.99", resp.Price)
	}
}

func TestCreateDraftRejectsBadMoney(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, nil)

	_, err := svc.CreateDraft(context.Background(), uuid.New(), CreateDealInput{
		Title:          "Lunch special",
		Description:    "Soup and sandwich",
		RestaurantName: "The Corner",
		DealType:       "Lunch",
		DiscountType:   "amount",
		DiscountValue:  "-4.00",
	})
	wantCode(t, err, pkgerrors.CodeValidation)
}

func TestCreateDraftRejectsZeroPrice(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, nil)

	price := "0"
	_, err := svc.CreateDraft(context.Background(), uuid.New(), CreateDealInput{
		Title:          "Lunch special",
		Description:    "Soup and sandwich",
		RestaurantName: "The Corner",
		DealType:       "Lunch",
		DiscountType:   "amount",
		DiscountValue:  "4.00",
		Price:          &price,
	})
	wantCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateAppliesPartialEdit(t *testing.T) {
	ownerID := uuid.New()
	deal := draftDeal(ownerID)
	var saved *models.Deal
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Deal, error) { return deal, nil },
		updateFn: func(ctx context.Context, d *models.Deal) error {
			saved = d
			return nil
		},
	}
	svc := newTestService(t, repo, nil)

	title := "Three-for-one tacos"
	resp, err := svc.Update(context.Background(), ownerID, deal.ID, UpdateDealInput{Title: &title})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if saved == nil || saved.Title != title {
		t.Fatalf("saved title = %v, want %q", saved, title)
	}
	if saved.Description != "Every weekday after 3pm" {
		t.Fatal("untouched fields must survive a partial edit")
	}
	if resp.Status != "DRAFT" {
		t.Fatalf("status = %s, edits must not change status", resp.Status)
	}
}

func TestUpdateRejectsSubmittedDeal(t *testing.T) {
	ownerID := uuid.New()
	deal := draftDeal(ownerID)
	deal.Status = enums.DealStatusSubmitted
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Deal, error) { return deal, nil },
		updateFn: func(ctx context.Context, d *models.Deal) error {
			t.Fatal("update must not be called for an illegal edit")
			return nil
		},
	}
	svc := newTestService(t, repo, nil)

	title := "New title"
	_, err := svc.Update(context.Background(), ownerID, deal.ID, UpdateDealInput{Title: &title})
	wantCode(t, err, pkgerrors.CodeStateConflict)
}

func TestUpdateHidesForeignDeal(t *testing.T) {
	deal := draftDeal(uuid.New())
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Deal, error) { return deal, nil },
	}
	svc := newTestService(t, repo, nil)

	title := "New title"
	_, err := svc.Update(context.Background(), uuid.New(), deal.ID, UpdateDealInput{Title: &title})
	wantCode(t, err, pkgerrors.CodeNotFound)
}

func TestSubmitClearsRejectionReason(t *testing.T) {
	ownerID := uuid.New()
	reason := "price missing"
	deal := draftDeal(ownerID)
	deal.Status = enums.DealStatusRejected
	deal.RejectionReason = &reason

	var saved *models.Deal
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Deal, error) { return deal, nil },
		updateFn: func(ctx context.Context, d *models.Deal) error {
			saved = d
			return nil
		},
	}
	svc := newTestService(t, repo, nil)

	resp, err := svc.Submit(context.Background(), ownerID, deal.ID)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if saved.Status != enums.DealStatusSubmitted {
		t.Fatalf("status = %s, want SUBMITTED", saved.Status)
	}
	if saved.RejectionReason != nil {
		t.Fatal("resubmission must clear the rejection reason")
	}
	if resp.RejectionReason != nil {
		t.Fatal("response must not carry a stale rejection reason")
	}
}

func TestDeleteOnlyDrafts(t *testing.T) {
	ownerID := uuid.New()
	deal := draftDeal(ownerID)
	deal.Status = enums.DealStatusPublished
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Deal, error) { return deal, nil },
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			t.Fatal("delete must not reach the store for a published deal")
			return nil
		},
	}
	svc := newTestService(t, repo, nil)

	err := svc.Delete(context.Background(), ownerID, deal.ID)
	wantCode(t, err, pkgerrors.CodeStateConflict)
}

func TestApproveNotifiesOwner(t *testing.T) {
	ownerID := uuid.New()
	deal := draftDeal(ownerID)
	deal.Status = enums.DealStatusSubmitted
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Deal, error) { return deal, nil },
	}
	notifier := &fakeNotifier{}
	svc := newTestService(t, repo, notifier)

	resp, err := svc.Approve(context.Background(), uuid.New(), deal.ID)
	if err != nil {
		t.Fatalf("Approve() error = %v", err)
	}
	if resp.Status != "PUBLISHED" {
		t.Fatalf("status = %s, want PUBLISHED", resp.Status)
	}
	if len(notifier.approved) != 1 || notifier.approved[0] != ownerID {
		t.Fatalf("approved notifications = %v, want one for the owner", notifier.approved)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Deal, error) {
			t.Fatal("lookup must not happen without a reason")
			return nil, nil
		},
	}
	svc := newTestService(t, repo, nil)

	_, err := svc.Reject(context.Background(), uuid.New(), uuid.New(), RejectDealInput{Reason: "   "})
	wantCode(t, err, pkgerrors.CodeValidation)
}

func TestRejectStoresReasonAndNotifies(t *testing.T) {
	ownerID := uuid.New()
	deal := draftDeal(ownerID)
	deal.Status = enums.DealStatusSubmitted
	var saved *models.Deal
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Deal, error) { return deal, nil },
		updateFn: func(ctx context.Context, d *models.Deal) error {
			saved = d
			return nil
		},
	}
	notifier := &fakeNotifier{}
	svc := newTestService(t, repo, notifier)

	resp, err := svc.Reject(context.Background(), uuid.New(), deal.ID, RejectDealInput{Reason: "needs a price"})
	if err != nil {
		t.Fatalf("Reject() error = %v", err)
	}
	if saved.Status != enums.DealStatusRejected {
		t.Fatalf("status = %s, want REJECTED", saved.Status)
	}
	if saved.RejectionReason == nil || *saved.RejectionReason != "needs a price" {
		t.Fatalf("rejection reason = %v, want stored verbatim", saved.RejectionReason)
	}
	if resp.RejectionReason == nil || *resp.RejectionReason != "needs a price" {
		t.Fatal("response must surface the rejection reason")
	}
	if len(notifier.rejected) != 1 || notifier.rejected[0] != "needs a price" {
		t.Fatalf("rejected notifications = %v", notifier.rejected)
	}
}

func TestApproveTwiceConflicts(t *testing.T) {
	ownerID := uuid.New()
	deal := draftDeal(ownerID)
	deal.Status = enums.DealStatusSubmitted
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Deal, error) { return deal, nil },
	}
	svc := newTestService(t, repo, &fakeNotifier{})

	if _, err := svc.Approve(context.Background(), uuid.New(), deal.ID); err != nil {
		t.Fatalf("first Approve() error = %v", err)
	}
	_, err := svc.Approve(context.Background(), uuid.New(), deal.ID)
	wantCode(t, err, pkgerrors.CodeStateConflict)
}

func TestGetPublishedHidesUnpublished(t *testing.T) {
	deal := draftDeal(uuid.New())
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*models.Deal, error) { return deal, nil },
	}
	svc := newTestService(t, repo, nil)

	_, err := svc.GetPublished(context.Background(), deal.ID)
	wantCode(t, err, pkgerrors.CodeNotFound)
}

func TestListPublishedFiltersByType(t *testing.T) {
	var gotFilter ListFilter
	repo := &fakeRepo{
		listFn: func(ctx context.Context, filter ListFilter) ([]models.Deal, error) {
			gotFilter = filter
			return nil, nil
		},
	}
	svc := newTestService(t, repo, nil)

	if _, err := svc.ListPublished(context.Background(), ListQuery{DealType: "Carryout"}); err != nil {
		t.Fatalf("ListPublished() error = %v", err)
	}
	if gotFilter.Status != enums.DealStatusPublished {
		t.Fatalf("status filter = %s, want PUBLISHED", gotFilter.Status)
	}
	if gotFilter.DealType != enums.DealTypeCarryout {
		t.Fatalf("deal type filter = %s, want Carryout", gotFilter.DealType)
	}
}

func TestListPublishedRejectsBadType(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, nil)

	_, err := svc.ListPublished(context.Background(), ListQuery{DealType: "Breakfast"})
	wantCode(t, err, pkgerrors.CodeValidation)
}

func TestListOwnedPaginates(t *testing.T) {
	ownerID := uuid.New()
	repo := &fakeRepo{
		listFn: func(ctx context.Context, filter ListFilter) ([]models.Deal, error) {
			out := make([]models.Deal, filter.Limit)
			for i := range out {
				out[i] = *draftDeal(ownerID)
			}
			return out, nil
		},
	}
	svc := newTestService(t, repo, nil)

	resp, err := svc.ListOwned(context.Background(), ownerID, ListQuery{Limit: 2})
	if err != nil {
		t.Fatalf("ListOwned() error = %v", err)
	}
	if len(resp.Deals) != 2 {
		t.Fatalf("len(deals) = %d, want 2", len(resp.Deals))
	}
	if resp.NextCursor == "" {
		t.Fatal("expected a next cursor when a full page plus one row comes back")
	}
}
