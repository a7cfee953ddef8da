package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/batoolapp/lenses-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-ID"

// Session reads the shopper session id from the request header, minting a new
// one when absent. The id is echoed back so browsers with no session yet can
// adopt the minted one. Sessions carry no credentials; they only key the
// in-memory cart and checkout state.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(sessionIDHeader)
			if sessionID == "" || uuid.Validate(sessionID) != nil {
				sessionID = uuid.NewString()
			}

			w.Header().Set(sessionIDHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
