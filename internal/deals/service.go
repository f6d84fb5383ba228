package deals

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/restodeals/backend/pkg/db/models"
	"github.com/restodeals/backend/pkg/enums"
	pkgerrors "github.com/restodeals/backend/pkg/errors"
	"github.com/restodeals/backend/pkg/logger"
	"github.com/restodeals/backend/pkg/metrics"
	"github.com/restodeals/backend/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ListQuery carries the common list knobs parsed off the query string.
type ListQuery struct {
	Status   string
	DealType string
	Limit    int
	Cursor   string
}

type Service interface {
	// Owner surface.
	CreateDraft(ctx context.Context, ownerID uuid.UUID, input CreateDealInput) (*DealResponse, error)
	ListOwned(ctx context.Context, ownerID uuid.UUID, query ListQuery) (*ListDealsResponse, error)
	GetOwned(ctx context.Context, ownerID uuid.UUID, dealID uuid.UUID) (*DealResponse, error)
	Update(ctx context.Context, ownerID uuid.UUID, dealID uuid.UUID, input UpdateDealInput) (*DealResponse, error)
	Submit(ctx context.Context, ownerID uuid.UUID, dealID uuid.UUID) (*DealResponse, error)
	Delete(ctx context.Context, ownerID uuid.UUID, dealID uuid.UUID) error

	// Admin review surface.
	ListSubmitted(ctx context.Context, query ListQuery) (*ListDealsResponse, error)
	Approve(ctx context.Context, adminID uuid.UUID, dealID uuid.UUID) (*DealResponse, error)
	Reject(ctx context.Context, adminID uuid.UUID, dealID uuid.UUID, input RejectDealInput) (*DealResponse, error)

	// Public catalog.
	ListPublished(ctx context.Context, query ListQuery) (*ListDealsResponse, error)
	GetPublished(ctx context.Context, dealID uuid.UUID) (*DealResponse, error)
}

// Notifier fans lifecycle outcomes out to the owner's inbox. Failures are
// logged, never surfaced: review decisions must not fail because a
// notification could not be written.
type Notifier interface {
	DealApproved(ctx context.Context, ownerID uuid.UUID, dealTitle string)
	DealRejected(ctx context.Context, ownerID uuid.UUID, dealTitle, reason string)
}

type service struct {
	repo     Repository
	notifier Notifier
	metrics  *metrics.DealMetrics
	logg     *logger.Logger
}

func NewService(repo Repository, notifier Notifier, dealMetrics *metrics.DealMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("deals: repository is required")
	}
	if logg == nil {
		return nil, errors.New("deals: logger is required")
	}
	return &service{repo: repo, notifier: notifier, metrics: dealMetrics, logg: logg}, nil
}

func (s *service) CreateDraft(ctx context.Context, ownerID uuid.UUID, input CreateDealInput) (*DealResponse, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing authenticated owner")
	}

	discountValue, err := parseMoney(input.DiscountValue, "discountValue")
	if err != nil {
		return nil, err
	}
	price, err := parseOptionalPrice(input.Price)
	if err != nil {
		return nil, err
	}
	dealType, err := enums.ParseDealType(input.DealType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid deal type")
	}
	discountType, err := enums.ParseDiscountType(input.DiscountType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount type")
	}

	deal := &models.Deal{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Title:          strings.TrimSpace(input.Title),
		Description:    strings.TrimSpace(input.Description),
		RestaurantName: strings.TrimSpace(input.RestaurantName),
		DealType:       dealType,
		DiscountType:   discountType,
		DiscountValue:  discountValue,
		Price:          price,
		Status:         enums.DealStatusDraft,
	}
	if err := s.repo.Create(ctx, deal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create deal")
	}

	s.metrics.IncTransition(enums.DealActionCreate.String(), true)
	logCtx := s.logg.WithFields(ctx, map[string]any{"deal_id": deal.ID, "owner_id": ownerID})
	s.logg.Info(logCtx, "deal draft created")
	response := toDealResponse(*deal)
	return &response, nil
}

func (s *service) ListOwned(ctx context.Context, ownerID uuid.UUID, query ListQuery) (*ListDealsResponse, error) {
	filter := ListFilter{OwnerID: ownerID}
	if query.Status != "" {
		status, err := enums.ParseDealStatus(query.Status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
		filter.Status = status
	}
	return s.list(ctx, filter, query)
}

func (s *service) GetOwned(ctx context.Context, ownerID uuid.UUID, dealID uuid.UUID) (*DealResponse, error) {
	deal, err := s.findOwned(ctx, ownerID, dealID)
	if err != nil {
		return nil, err
	}
	response := toDealResponse(*deal)
	return &response, nil
}

func (s *service) Update(ctx context.Context, ownerID uuid.UUID, dealID uuid.UUID, input UpdateDealInput) (*DealResponse, error) {
	deal, err := s.findOwned(ctx, ownerID, dealID)
	if err != nil {
		return nil, err
	}

	if _, err := Transition(deal.Status, enums.DealActionEdit, enums.RoleOwner); err != nil {
		s.metrics.IncTransition(enums.DealActionEdit.String(), false)
		return nil, err
	}

	if err := applyUpdate(deal, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update deal")
	}

	s.metrics.IncTransition(enums.DealActionEdit.String(), true)
	response := toDealResponse(*deal)
	return &response, nil
}

func (s *service) Submit(ctx context.Context, ownerID uuid.UUID, dealID uuid.UUID) (*DealResponse, error) {
	deal, err := s.findOwned(ctx, ownerID, dealID)
	if err != nil {
		return nil, err
	}

	next, err := Transition(deal.Status, enums.DealActionSubmit, enums.RoleOwner)
	if err != nil {
		s.metrics.IncTransition(enums.DealActionSubmit.String(), false)
		return nil, err
	}

	deal.Status = next
	if ClearsRejectionReason(enums.DealActionSubmit) {
		deal.RejectionReason = nil
	}
	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "submit deal")
	}

	s.metrics.IncTransition(enums.DealActionSubmit.String(), true)
	logCtx := s.logg.WithField(ctx, "deal_id", deal.ID)
	s.logg.Info(logCtx, "deal submitted for review")
	response := toDealResponse(*deal)
	return &response, nil
}

func (s *service) Delete(ctx context.Context, ownerID uuid.UUID, dealID uuid.UUID) error {
	deal, err := s.findOwned(ctx, ownerID, dealID)
	if err != nil {
		return err
	}

	if _, err := Transition(deal.Status, enums.DealActionDelete, enums.RoleOwner); err != nil {
		s.metrics.IncTransition(enums.DealActionDelete.String(), false)
		return err
	}
	if err := s.repo.Delete(ctx, dealID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete deal")
	}

	s.metrics.IncTransition(enums.DealActionDelete.String(), true)
	logCtx := s.logg.WithField(ctx, "deal_id", dealID)
	s.logg.Info(logCtx, "deal draft deleted")
	return nil
}

func (s *service) ListSubmitted(ctx context.Context, query ListQuery) (*ListDealsResponse, error) {
	return s.list(ctx, ListFilter{Status: enums.DealStatusSubmitted}, query)
}

func (s *service) Approve(ctx context.Context, adminID uuid.UUID, dealID uuid.UUID) (*DealResponse, error) {
	deal, err := s.findByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	next, err := Transition(deal.Status, enums.DealActionApprove, enums.RoleAdmin)
	if err != nil {
		s.metrics.IncTransition(enums.DealActionApprove.String(), false)
		return nil, err
	}

	deal.Status = next
	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve deal")
	}

	s.metrics.IncTransition(enums.DealActionApprove.String(), true)
	logCtx := s.logg.WithFields(ctx, map[string]any{"deal_id": deal.ID, "admin_id": adminID})
	s.logg.Info(logCtx, "deal approved")
	if s.notifier != nil {
		s.notifier.DealApproved(ctx, deal.OwnerID, deal.Title)
	}
	response := toDealResponse(*deal)
	return &response, nil
}

func (s *service) Reject(ctx context.Context, adminID uuid.UUID, dealID uuid.UUID, input RejectDealInput) (*DealResponse, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rejection reason is required")
	}

	deal, err := s.findByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	next, err := Transition(deal.Status, enums.DealActionReject, enums.RoleAdmin)
	if err != nil {
		s.metrics.IncTransition(enums.DealActionReject.String(), false)
		return nil, err
	}

	deal.Status = next
	deal.RejectionReason = &reason
	if err := s.repo.Update(ctx, deal); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reject deal")
	}

	s.metrics.IncTransition(enums.DealActionReject.String(), true)
	logCtx := s.logg.WithFields(ctx, map[string]any{"deal_id": deal.ID, "admin_id": adminID})
	s.logg.Info(logCtx, "deal rejected")
	if s.notifier != nil {
		s.notifier.DealRejected(ctx, deal.OwnerID, deal.Title, reason)
	}
	response := toDealResponse(*deal)
	return &response, nil
}

func (s *service) ListPublished(ctx context.Context, query ListQuery) (*ListDealsResponse, error) {
	filter := ListFilter{Status: enums.DealStatusPublished}
	if query.DealType != "" {
		dealType, err := enums.ParseDealType(query.DealType)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid deal type filter")
		}
		filter.DealType = dealType
	}
	return s.list(ctx, filter, query)
}

func (s *service) GetPublished(ctx context.Context, dealID uuid.UUID) (*DealResponse, error) {
	deal, err := s.findByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.Status != enums.DealStatusPublished {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
	}
	response := toDealResponse(*deal)
	return &response, nil
}

func (s *service) list(ctx context.Context, filter ListFilter, query ListQuery) (*ListDealsResponse, error) {
	cursor, err := pagination.ParseCursor(query.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if cursor != nil {
		filter.CursorCreatedAt = &cursor.CreatedAt
		filter.CursorID = &cursor.ID
	}

	limit := pagination.NormalizeLimit(query.Limit)
	filter.Limit = pagination.LimitWithBuffer(query.Limit)

	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list deals")
	}

	next := ""
	if len(records) > limit {
		records = records[:limit]
		last := records[len(records)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return &ListDealsResponse{Deals: toDealResponses(records), NextCursor: next}, nil
}

// findOwned loads a deal and enforces ownership. Deals owned by someone else
// read as absent so the owner surface never confirms another owner's IDs.
func (s *service) findOwned(ctx context.Context, ownerID uuid.UUID, dealID uuid.UUID) (*models.Deal, error) {
	deal, err := s.findByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if deal.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
	}
	return deal, nil
}

func (s *service) findByID(ctx context.Context, dealID uuid.UUID) (*models.Deal, error) {
	deal, err := s.repo.FindByID(ctx, dealID)
	if errors.Is(err, ErrDealNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "deal not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load deal")
	}
	return deal, nil
}

func applyUpdate(deal *models.Deal, input UpdateDealInput) error {
	if input.Title != nil {
		deal.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		deal.Description = strings.TrimSpace(*input.Description)
	}
	if input.RestaurantName != nil {
		deal.RestaurantName = strings.TrimSpace(*input.RestaurantName)
	}
	if input.DealType != nil {
		dealType, err := enums.ParseDealType(*input.DealType)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid deal type")
		}
		deal.DealType = dealType
	}
	if input.DiscountType != nil {
		discountType, err := enums.ParseDiscountType(*input.DiscountType)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid discount type")
		}
		deal.DiscountType = discountType
	}
	if input.DiscountValue != nil {
		value, err := parseMoney(*input.DiscountValue, "discountValue")
		if err != nil {
			return err
		}
		deal.DiscountValue = value
	}
	if input.Price != nil {
		price, err := parseOptionalPrice(input.Price)
		if err != nil {
			return err
		}
		deal.Price = price
	}
	return nil
}

func parseMoney(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("invalid %s", field))
	}
	if value.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must not be negative", field))
	}
	return value, nil
}

// parseOptionalPrice treats an empty string the same as absent: the deal
// stays unpriced and therefore outside the cart.
func parseOptionalPrice(raw *string) (*decimal.Decimal, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value, err := parseMoney(*raw, "price")
	if err != nil {
		return nil, err
	}
	if value.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be greater than zero")
	}
	return &value, nil
}
