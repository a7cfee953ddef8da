package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batoolapp/lenses-backend/api/middleware"
	"github.com/batoolapp/lenses-backend/internal/cart"
	"github.com/batoolapp/lenses-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func cartRequest(method, target, body, sessionID string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestAddCartItem(t *testing.T) {
	registry := cart.NewRegistry()
	logg := testLogger()
	sessionID := uuid.NewString()

	t.Run("adds a line", func(t *testing.T) {
		body := `{"id":"lens-1","name":"عدسات رمادية","price":"50.00","quantity":2}`
		rec := httptest.NewRecorder()
		AddCartItem(registry, logg).ServeHTTP(rec, cartRequest(http.MethodPost, "/api/v1/cart/items", body, sessionID))

		require.Equal(t, http.StatusCreated, rec.Code)
		data := decodeCart(t, rec)
		assert.EqualValues(t, 2, data["count"])
		assert.Equal(t, "100", data["subtotal"])
	})

	t.Run("rejects negative price", func(t *testing.T) {
		body := `{"id":"lens-2","name":"عدسات زرقاء","price":"-1"}`
		rec := httptest.NewRecorder()
		AddCartItem(registry, logg).ServeHTTP(rec, cartRequest(http.MethodPost, "/api/v1/cart/items", body, sessionID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		body := `{"id":"lens-3","name":"x","price":"1","bogus":true}`
		rec := httptest.NewRecorder()
		AddCartItem(registry, logg).ServeHTTP(rec, cartRequest(http.MethodPost, "/api/v1/cart/items", body, sessionID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateCartItem(t *testing.T) {
	registry := cart.NewRegistry()
	logg := testLogger()
	sessionID := uuid.NewString()
	registry.Get(sessionID).AddItem(cart.Item{ID: "lens-1", Name: "عدسات رمادية", Quantity: 1})

	withItemParam := func(req *http.Request, itemID string) *http.Request {
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("itemId", itemID)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	}

	t.Run("updates quantity", func(t *testing.T) {
		req := withItemParam(cartRequest(http.MethodPatch, "/api/v1/cart/items/lens-1", `{"quantity":3}`, sessionID), "lens-1")
		rec := httptest.NewRecorder()
		UpdateCartItem(registry, logg).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.EqualValues(t, 3, decodeCart(t, rec)["count"])
	})

	t.Run("rejects quantity below one", func(t *testing.T) {
		req := withItemParam(cartRequest(http.MethodPatch, "/api/v1/cart/items/lens-1", `{"quantity":-2}`, sessionID), "lens-1")
		rec := httptest.NewRecorder()
		UpdateCartItem(registry, logg).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCart_SessionsAreIsolated(t *testing.T) {
	registry := cart.NewRegistry()
	first := uuid.NewString()
	second := uuid.NewString()
	registry.Get(first).AddItem(cart.Item{ID: "lens-1", Name: "عدسات رمادية", Quantity: 1})

	rec := httptest.NewRecorder()
	GetCart(registry).ServeHTTP(rec, cartRequest(http.MethodGet, "/api/v1/cart", "", second))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, decodeCart(t, rec)["count"])
}
