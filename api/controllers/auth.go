package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/batoolapp/lenses-backend/api/middleware"
	"github.com/batoolapp/lenses-backend/api/responses"
	"github.com/batoolapp/lenses-backend/api/validators"
	internalauth "github.com/batoolapp/lenses-backend/internal/auth"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
}

// AdminLogin authenticates a back-office operator and returns a bearer token.
func AdminLogin(svc internalauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, loginResponse{
			AccessToken: result.AccessToken,
			ExpiresAt:   result.ExpiresAt,
			Email:       result.Admin.Email,
			Name:        result.Admin.Name,
		})
	}
}

// AdminMe returns the profile behind the presented token.
func AdminMe(svc internalauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID, err := uuid.Parse(middleware.AdminIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token subject"))
			return
		}

		admin, err := svc.GetAdmin(r.Context(), adminID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, admin)
	}
}
