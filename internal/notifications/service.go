package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/restodeals/backend/pkg/db/models"
	"github.com/restodeals/backend/pkg/enums"
	pkgerrors "github.com/restodeals/backend/pkg/errors"
	"github.com/restodeals/backend/pkg/logger"
	"github.com/restodeals/backend/pkg/pagination"
)

type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unreadCount"`
	NextCursor    string                 `json:"nextCursor,omitempty"`
}

type ListQuery struct {
	UnreadOnly bool
	Limit      int
	Cursor     string
}

type Service interface {
	List(ctx context.Context, userID uuid.UUID, query ListQuery) (*ListNotificationsResponse, error)
	MarkRead(ctx context.Context, userID uuid.UUID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) error

	// Lifecycle fan-out, called by the deals service. Errors are swallowed
	// after logging so review decisions never fail on inbox writes.
	DealApproved(ctx context.Context, ownerID uuid.UUID, dealTitle string)
	DealRejected(ctx context.Context, ownerID uuid.UUID, dealTitle, reason string)
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("notifications: repository is required")
	}
	if logg == nil {
		return nil, errors.New("notifications: logger is required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, query ListQuery) (*ListNotificationsResponse, error) {
	cursor, err := pagination.ParseCursor(query.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	filter := ListFilter{
		UserID:     userID,
		UnreadOnly: query.UnreadOnly,
		Limit:      pagination.LimitWithBuffer(query.Limit),
	}
	if cursor != nil {
		filter.CursorCreatedAt = &cursor.CreatedAt
		filter.CursorID = &cursor.ID
	}

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notifications")
	}

	limit := pagination.NormalizeLimit(query.Limit)
	next := ""
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count unread")
	}

	out := make([]NotificationResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NotificationResponse{
			ID:        record.ID,
			Type:      record.Type.String(),
			Title:     record.Title,
			Message:   record.Message,
			ReadAt:    record.ReadAt,
			CreatedAt: record.CreatedAt,
		})
	}
	return &ListNotificationsResponse{Notifications: out, UnreadCount: unread, NextCursor: next}, nil
}

func (s *service) MarkRead(ctx context.Context, userID uuid.UUID, notificationID uuid.UUID) error {
	notification, err := s.repo.FindByID(ctx, notificationID)
	if errors.Is(err, ErrNotificationNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load notification")
	}
	if notification.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	if notification.ReadAt != nil {
		return nil
	}
	if err := s.repo.MarkRead(ctx, notificationID, s.now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notification read")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.MarkAllRead(ctx, userID, s.now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark all notifications read")
	}
	return nil
}

func (s *service) DealApproved(ctx context.Context, ownerID uuid.UUID, dealTitle string) {
	s.deliver(ctx, &models.Notification{
		ID:      uuid.New(),
		UserID:  ownerID,
		Type:    enums.NotificationTypeDealApproved,
		Title:   "Deal approved",
		Message: fmt.Sprintf("%q is now live.", dealTitle),
	})
}

func (s *service) DealRejected(ctx context.Context, ownerID uuid.UUID, dealTitle, reason string) {
	s.deliver(ctx, &models.Notification{
		ID:      uuid.New(),
		UserID:  ownerID,
		Type:    enums.NotificationTypeDealRejected,
		Title:   "Deal rejected",
		Message: fmt.Sprintf("%q was rejected: %s", dealTitle, reason),
	})
}

func (s *service) deliver(ctx context.Context, notification *models.Notification) {
	if err := s.repo.Create(ctx, notification); err != nil {
		logCtx := s.logg.WithField(ctx, "user_id", notification.UserID)
		s.logg.Error(logCtx, "deliver notification", err)
	}
}
