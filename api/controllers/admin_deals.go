package controllers

import (
	"net/http"

	"github.com/restodeals/backend/api/responses"
	"github.com/restodeals/backend/api/validators"
	"github.com/restodeals/backend/internal/deals"
	pkgerrors "github.com/restodeals/backend/pkg/errors"
	"github.com/restodeals/backend/pkg/logger"
)

// AdminDealsSubmitted returns the review queue.
func AdminDealsSubmitted(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "deals service unavailable"))
			return
		}

		limit, err := limitQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.ListSubmitted(ctx, deals.ListQuery{Limit: limit, Cursor: cursorQuery(r)})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}

// AdminDealsApprove publishes a submitted deal.
func AdminDealsApprove(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "deals service unavailable"))
			return
		}

		adminID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		dealID, err := uuidParam(r, "dealID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Approve(ctx, adminID, dealID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}

// AdminDealsReject bounces a submitted deal back to its owner with a reason.
func AdminDealsReject(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "deals service unavailable"))
			return
		}

		adminID, err := actorID(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		dealID, err := uuidParam(r, "dealID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var input deals.RejectDealInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.Reject(ctx, adminID, dealID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}
