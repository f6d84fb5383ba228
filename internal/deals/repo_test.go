package deals

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/restodeals/backend/pkg/db/models"
	"github.com/restodeals/backend/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:deals_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Deal{}); err != nil {
		t.Fatalf("migrate deals: %v", err)
	}
	return db
}

func seedDeal(t *testing.T, db *gorm.DB, ownerID uuid.UUID, status enums.DealStatus, createdAt time.Time) models.Deal {
	t.Helper()
	deal := models.Deal{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Title:          "Weekday lunch",
		Description:    "Half-price mains",
		RestaurantName: "Saltgrass",
		DealType:       enums.DealTypeLunch,
		DiscountType:   enums.DiscountTypePercent,
		DiscountValue:  decimal.RequireFromString("50"),
		Status:         status,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	if err := db.Create(&deal).Error; err != nil {
		t.Fatalf("seed deal: %v", err)
	}
	return deal
}

func TestRepoCreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	price := decimal.RequireFromString("8.25")
	deal := &models.Deal{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		Title:          "Carryout combo",
		Description:    "Any two sides",
		RestaurantName: "Smoke Shack",
		DealType:       enums.DealTypeCarryout,
		DiscountType:   enums.DiscountTypeAmount,
		DiscountValue:  decimal.RequireFromString("3.00"),
		Price:          &price,
		Status:         enums.DealStatusDraft,
	}
	if err := repo.Create(ctx, deal); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	found, err := repo.FindByID(ctx, deal.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != deal.Title || found.Status != enums.DealStatusDraft {
		t.Fatalf("found = %+v", found)
	}
	if found.Price == nil || !found.Price.Equal(price) {
		t.Fatalf("price = %v, want %s", found.Price, price)
	}
}

func TestRepoFindMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	if _, err := repo.FindByID(context.Background(), uuid.New()); err != ErrDealNotFound {
		t.Fatalf("FindByID() error = %v, want ErrDealNotFound", err)
	}
}

func TestRepoDeleteMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)

	if err := repo.Delete(context.Background(), uuid.New()); err != ErrDealNotFound {
		t.Fatalf("Delete() error = %v, want ErrDealNotFound", err)
	}
}

func TestRepoListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ownerA := uuid.New()
	ownerB := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)
	seedDeal(t, db, ownerA, enums.DealStatusDraft, base.Add(-3*time.Minute))
	seedDeal(t, db, ownerA, enums.DealStatusPublished, base.Add(-2*time.Minute))
	seedDeal(t, db, ownerB, enums.DealStatusPublished, base.Add(-1*time.Minute))

	byOwner, err := repo.List(ctx, ListFilter{OwnerID: ownerA})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(byOwner) != 2 {
		t.Fatalf("len(byOwner) = %d, want 2", len(byOwner))
	}

	published, err := repo.List(ctx, ListFilter{Status: enums.DealStatusPublished})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("len(published) = %d, want 2", len(published))
	}
	if !published[0].CreatedAt.After(published[1].CreatedAt) {
		t.Fatal("expected newest-first ordering")
	}
}

func TestRepoListCursor(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	ownerID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)
	oldest := seedDeal(t, db, ownerID, enums.DealStatusPublished, base.Add(-3*time.Minute))
	middle := seedDeal(t, db, ownerID, enums.DealStatusPublished, base.Add(-2*time.Minute))
	seedDeal(t, db, ownerID, enums.DealStatusPublished, base.Add(-1*time.Minute))

	page, err := repo.List(ctx, ListFilter{
		OwnerID:         ownerID,
		CursorCreatedAt: &middle.CreatedAt,
		CursorID:        &middle.ID,
	})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(page) != 1 || page[0].ID != oldest.ID {
		t.Fatalf("page = %+v, want only the oldest deal", page)
	}
}

func TestRepoUpdatePersistsStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	deal := seedDeal(t, db, uuid.New(), enums.DealStatusDraft, time.Now().UTC())
	deal.Status = enums.DealStatusSubmitted
	if err := repo.Update(ctx, &deal); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := repo.FindByID(ctx, deal.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Status != enums.DealStatusSubmitted {
		t.Fatalf("status = %s, want SUBMITTED", found.Status)
	}
}
