package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/batoolapp/lenses-backend/api/middleware"
	"github.com/batoolapp/lenses-backend/api/responses"
	"github.com/batoolapp/lenses-backend/api/validators"
	"github.com/batoolapp/lenses-backend/internal/cart"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
)

type addItemRequest struct {
	ID            string           `json:"id" validate:"required"`
	Name          string           `json:"name" validate:"required"`
	ImageURL      string           `json:"image_url"`
	Price         decimal.Decimal  `json:"price" validate:"required"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Quantity      int              `json:"quantity"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

type cartResponse struct {
	Items    []cart.Item     `json:"items"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	IsOpen   bool            `json:"isOpen"`
}

func cartState(store *cart.Store) cartResponse {
	items := store.Items()
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return cartResponse{
		Items:    items,
		Count:    count,
		Subtotal: store.Subtotal(),
		IsOpen:   store.IsOpen(),
	}
}

func sessionStore(r *http.Request, registry *cart.Registry) *cart.Store {
	return registry.Get(middleware.SessionIDFromContext(r.Context()))
}

// GetCart returns the session's current cart contents.
func GetCart(registry *cart.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cartState(sessionStore(r, registry)))
	}
}

// AddCartItem adds a product line or merges quantity into an existing one.
func AddCartItem(registry *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if req.Price.IsNegative() {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative"))
			return
		}

		store := sessionStore(r, registry)
		store.AddItem(cart.Item{
			ID:            req.ID,
			Name:          req.Name,
			ImageURL:      req.ImageURL,
			Price:         req.Price,
			OriginalPrice: req.OriginalPrice,
			Quantity:      req.Quantity,
		})
		responses.WriteSuccessStatus(w, http.StatusCreated, cartState(store))
	}
}

// UpdateCartItem changes the quantity of one line. Quantities below one are
// rejected; removal is a separate endpoint.
func UpdateCartItem(registry *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var req updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store := sessionStore(r, registry)
		if err := store.UpdateQuantity(itemID, req.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cartState(store))
	}
}

// RemoveCartItem deletes one line. Removing an absent id is a no-op.
func RemoveCartItem(registry *cart.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		store := sessionStore(r, registry)
		store.RemoveItem(itemID)
		responses.WriteSuccess(w, cartState(store))
	}
}

// ClearCart empties the session's cart.
func ClearCart(registry *cart.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionStore(r, registry)
		store.Clear()
		responses.WriteSuccess(w, cartState(store))
	}
}

// OpenCart and CloseCart track the cart sheet visibility so reconnecting
// clients can restore it.
func OpenCart(registry *cart.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionStore(r, registry)
		store.SetOpen(true)
		responses.WriteSuccess(w, cartState(store))
	}
}

func CloseCart(registry *cart.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store := sessionStore(r, registry)
		store.SetOpen(false)
		responses.WriteSuccess(w, cartState(store))
	}
}
