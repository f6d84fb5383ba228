package notifications

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/restodeals/backend/pkg/db/models"
	"github.com/restodeals/backend/pkg/enums"
	pkgerrors "github.com/restodeals/backend/pkg/errors"
	"github.com/restodeals/backend/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:notifications_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Notification{}); err != nil {
		t.Fatalf("migrate notifications: %v", err)
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(conn), logger.New(logger.Options{Level: logger.ParseLevel("error")}))
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	return svc
}

func TestDealLifecycleFanOut(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ownerID := uuid.New()
	ctx := context.Background()

	svc.DealApproved(ctx, ownerID, "Taco Tuesday")
	svc.DealRejected(ctx, ownerID, "Mystery Meat", "needs a price")

	resp, err := svc.List(ctx, ownerID, ListQuery{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resp.Notifications) != 2 {
		t.Fatalf("len(notifications) = %d, want 2", len(resp.Notifications))
	}
	if resp.UnreadCount != 2 {
		t.Fatalf("unread = %d, want 2", resp.UnreadCount)
	}

	types := map[string]bool{}
	for _, n := range resp.Notifications {
		types[n.Type] = true
	}
	if !types[enums.NotificationTypeDealApproved.String()] || !types[enums.NotificationTypeDealRejected.String()] {
		t.Fatalf("types = %v", types)
	}
}

func TestMarkReadScopedToOwner(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ownerID := uuid.New()
	ctx := context.Background()

	svc.DealApproved(ctx, ownerID, "Taco Tuesday")

	resp, err := svc.List(ctx, ownerID, ListQuery{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	notificationID := resp.Notifications[0].ID

	err = svc.MarkRead(ctx, uuid.New(), notificationID)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("foreign MarkRead() error = %v, want NOT_FOUND", err)
	}

	if err := svc.MarkRead(ctx, ownerID, notificationID); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	// Second read is a no-op.
	if err := svc.MarkRead(ctx, ownerID, notificationID); err != nil {
		t.Fatalf("repeat MarkRead() error = %v", err)
	}

	resp, err = svc.List(ctx, ownerID, ListQuery{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.UnreadCount != 0 {
		t.Fatalf("unread = %d, want 0", resp.UnreadCount)
	}
	if resp.Notifications[0].ReadAt == nil {
		t.Fatal("read timestamp must be set")
	}
}

func TestMarkAllReadScopesToUser(t *testing.T) {
	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ownerID := uuid.New()
	otherID := uuid.New()
	ctx := context.Background()

	svc.DealApproved(ctx, ownerID, "Taco Tuesday")
	svc.DealRejected(ctx, ownerID, "Mystery Meat", "needs a price")
	svc.DealApproved(ctx, otherID, "Pho Friday")

	if err := svc.MarkAllRead(ctx, ownerID); err != nil {
		t.Fatalf("MarkAllRead() error = %v", err)
	}

	resp, err := svc.List(ctx, ownerID, ListQuery{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.UnreadCount != 0 {
		t.Fatalf("unread = %d, want 0", resp.UnreadCount)
	}

	otherResp, err := svc.List(ctx, otherID, ListQuery{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if otherResp.UnreadCount != 1 {
		t.Fatalf("other user's unread = %d, want 1", otherResp.UnreadCount)
	}
}

func TestListUnreadOnlyAndPagination(t *testing.T) {
	conn := newTestDB(t)
	repo := NewRepository(conn)
	svc := newTestService(t, conn)
	ownerID := uuid.New()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		notification := &models.Notification{
			ID:        uuid.New(),
			UserID:    ownerID,
			Type:      enums.NotificationTypeSystem,
			Title:     "Heads up",
			Message:   "maintenance window",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, notification); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	first, err := svc.List(ctx, ownerID, ListQuery{Limit: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(first.Notifications) != 2 || first.NextCursor == "" {
		t.Fatalf("first page = %d items, cursor %q", len(first.Notifications), first.NextCursor)
	}

	second, err := svc.List(ctx, ownerID, ListQuery{Limit: 2, Cursor: first.NextCursor})
	if err != nil {
		t.Fatalf("List() second page error = %v", err)
	}
	if len(second.Notifications) != 1 || second.NextCursor != "" {
		t.Fatalf("second page = %d items, cursor %q", len(second.Notifications), second.NextCursor)
	}

	if err := svc.MarkRead(ctx, ownerID, first.Notifications[0].ID); err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	unread, err := svc.List(ctx, ownerID, ListQuery{UnreadOnly: true})
	if err != nil {
		t.Fatalf("List() unread error = %v", err)
	}
	if len(unread.Notifications) != 2 {
		t.Fatalf("unread list = %d, want 2", len(unread.Notifications))
	}
}
