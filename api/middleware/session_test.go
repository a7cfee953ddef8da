package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionEcho(t *testing.T) (http.Handler, *string) {
	t.Helper()
	var seen string
	handler := Session(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
		require.NotEmpty(t, seen)
		w.WriteHeader(http.StatusNoContent)
	}))
	return handler, &seen
}

func TestSession_KeepsValidHeader(t *testing.T) {
	handler, seen := sessionEcho(t)
	sessionID := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("X-Session-ID", sessionID)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, sessionID, *seen)
	assert.Equal(t, sessionID, rec.Header().Get("X-Session-ID"))
}

func TestSession_MintsWhenMissing(t *testing.T) {
	handler, seen := sessionEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.NoError(t, uuid.Validate(*seen))
	assert.Equal(t, *seen, rec.Header().Get("X-Session-ID"))
}

func TestSession_ReplacesMalformedHeader(t *testing.T) {
	handler, seen := sessionEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("X-Session-ID", "not-a-uuid")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.NotEqual(t, "not-a-uuid", *seen)
	require.NoError(t, uuid.Validate(*seen))
}
