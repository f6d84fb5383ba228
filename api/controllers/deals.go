package controllers

import (
	"net/http"
	"strings"

	"github.com/restodeals/backend/api/responses"
	"github.com/restodeals/backend/internal/deals"
	pkgerrors "github.com/restodeals/backend/pkg/errors"
	"github.com/restodeals/backend/pkg/logger"
)

// DealsList returns the published catalog, optionally filtered by deal type.
func DealsList(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
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

		resp, err := svc.ListPublished(ctx, deals.ListQuery{
			DealType: strings.TrimSpace(r.URL.Query().Get("type")),
			Limit:    limit,
			Cursor:   cursorQuery(r),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}

// DealsGet returns one published deal.
func DealsGet(svc deals.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "deals service unavailable"))
			return
		}

		dealID, err := uuidParam(r, "dealID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp, err := svc.GetPublished(ctx, dealID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}
