package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/batoolapp/lenses-backend/api/responses"
	"github.com/batoolapp/lenses-backend/api/validators"
	internalorders "github.com/batoolapp/lenses-backend/internal/orders"
	"github.com/batoolapp/lenses-backend/pkg/enums"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
	"github.com/batoolapp/lenses-backend/pkg/pagination"
)

type orderDecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accept reject"`
}

// AdminListOrders returns a cursor-paginated order list, newest first,
// optionally filtered by status or customer phone.
func AdminListOrders(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := internalorders.ListFilters{
			Phone: validators.TrimmedQuery(r, "phone"),
		}
		if raw := validators.TrimmedQuery(r, "status"); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filters.Status = &status
		}

		params := pagination.Params{
			Limit:  limit,
			Cursor: validators.TrimmedQuery(r, "cursor"),
		}

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminGetOrder returns one order with its line items.
func AdminGetOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminGetOrderByCode looks an order up by the short code shoppers quote in
// WhatsApp messages, with or without the leading "#".
func AdminGetOrderByCode(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimPrefix(strings.TrimSpace(chi.URLParam(r, "orderCode")), "#")
		if code == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "order code is required"))
			return
		}

		order, err := svc.GetByCode(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AdminDecideOrder accepts or rejects a pending order and returns the
// WhatsApp notification link.
func AdminDecideOrder(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := parseOrderID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req orderDecisionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Decide(r.Context(), orderID, internalorders.Decision(req.Decision))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"order":       result.Order,
			"whatsappUrl": result.WhatsAppURL,
		})
	}
}

func parseOrderID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "orderId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	orderID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id")
	}
	return orderID, nil
}
