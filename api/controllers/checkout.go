package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/batoolapp/lenses-backend/api/middleware"
	"github.com/batoolapp/lenses-backend/api/responses"
	"github.com/batoolapp/lenses-backend/api/validators"
	"github.com/batoolapp/lenses-backend/internal/cart"
	"github.com/batoolapp/lenses-backend/internal/checkout"
	"github.com/batoolapp/lenses-backend/internal/invoice"
	"github.com/batoolapp/lenses-backend/pkg/config"
	"github.com/batoolapp/lenses-backend/pkg/enums"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
)

type checkoutStepRequest struct {
	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Governorate  string `json:"governorate"`
	City         string `json:"city"`
}

type checkoutStateResponse struct {
	State        string        `json:"state"`
	Form         checkout.Form `json:"form"`
	Dismissable  bool          `json:"dismissable"`
	CartSubtotal string        `json:"cartSubtotal"`
	CartCount    int           `json:"cartCount"`
}

func checkoutState(store *cart.Store, wf *checkout.Workflow) checkoutStateResponse {
	form := wf.Form()
	form.Receipt = nil
	return checkoutStateResponse{
		State:        wf.State().String(),
		Form:         form,
		Dismissable:  wf.Dismissable(),
		CartSubtotal: store.Subtotal().StringFixed(2),
		CartCount:    store.Len(),
	}
}

// GetCheckout returns the session's checkout position and collected fields.
func GetCheckout(carts *cart.Registry, sessions *checkout.Sessions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		responses.WriteSuccess(w, checkoutState(carts.Get(sessionID), sessions.Get(sessionID)))
	}
}

// AdvanceCheckout moves the flow one step forward, merging any provided
// fields first. Leaving the contact step validates name, phone, governorate
// and city.
func AdvanceCheckout(carts *cart.Registry, sessions *checkout.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutStepRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		store := carts.Get(sessionID)
		wf := sessions.Get(sessionID)

		if wf.State() == checkout.StateCart && store.Len() == 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
			return
		}

		if err := wf.Advance(checkout.Form{
			CustomerName: req.CustomerName,
			Phone:        req.Phone,
			Governorate:  req.Governorate,
			City:         req.City,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, checkoutState(store, wf))
	}
}

// BackCheckout moves the flow one step backward without revalidating.
func BackCheckout(carts *cart.Registry, sessions *checkout.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		store := carts.Get(sessionID)
		wf := sessions.Get(sessionID)

		if err := wf.Back(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, checkoutState(store, wf))
	}
}

// ResetCheckout abandons the flow and clears collected fields. Blocked while
// a submission is in flight.
func ResetCheckout(carts *cart.Registry, sessions *checkout.Sessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		store := carts.Get(sessionID)
		wf := sessions.Get(sessionID)

		if err := wf.Reset(); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, checkoutState(store, wf))
	}
}

// SubmitCheckout accepts the multipart submission (contact fields plus the
// payment receipt) and runs the full order pipeline.
func SubmitCheckout(
	carts *cart.Registry,
	sessions *checkout.Sessions,
	svc checkout.Service,
	cfg config.CheckoutConfig,
	logg *logger.Logger,
) http.HandlerFunc {
	maxBytes := int64(cfg.MaxReceiptMB) << 20

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		fields := checkout.Form{
			CustomerName: strings.TrimSpace(r.FormValue("customerName")),
			Phone:        strings.TrimSpace(r.FormValue("phone")),
			Governorate:  strings.TrimSpace(r.FormValue("governorate")),
			City:         strings.TrimSpace(r.FormValue("city")),
		}

		file, header, err := r.FormFile("paymentReceipt")
		if err == nil {
			defer file.Close()
			data, readErr := io.ReadAll(file)
			if readErr != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, readErr, "reading payment receipt"))
				return
			}
			fields.Receipt = &checkout.ReceiptFile{
				FileName:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			}
		} else if err != http.ErrMissingFile {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "reading payment receipt"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		store := carts.Get(sessionID)
		wf := sessions.Get(sessionID)

		result, err := svc.Submit(r.Context(), sessionID, store, wf, fields)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// GetInvoice renders the HTML invoice for the session's latest order.
func GetInvoice(invoices *invoice.Store, renderer *invoice.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())

		doc, err := renderer.Render(r.Context(), invoices.Get(sessionID))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(doc)
	}
}

// ListGovernorates returns the fixed delivery regions for the contact form.
func ListGovernorates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, enums.Governorates())
	}
}
