package controllers

import (
	"net/http"

	"github.com/batoolapp/lenses-backend/api/responses"
	"github.com/batoolapp/lenses-backend/api/validators"
	internalsettings "github.com/batoolapp/lenses-backend/internal/settings"
	"github.com/batoolapp/lenses-backend/pkg/db/models"
	"github.com/batoolapp/lenses-backend/pkg/logger"
)

type updateSettingsRequest struct {
	LogoURL              string `json:"logoUrl" validate:"omitempty,url"`
	CurrencyImageURL     string `json:"currencyImageUrl" validate:"omitempty,url"`
	BankAccountImage1URL string `json:"bankAccountImage1Url" validate:"omitempty,url"`
	BankAccountImage2URL string `json:"bankAccountImage2Url" validate:"omitempty,url"`
	WebsiteBarcodeURL    string `json:"websiteBarcodeUrl" validate:"omitempty,url"`
}

// GetSettings returns storefront branding. Public: the shop UI needs it
// before any session exists.
func GetSettings(svc internalsettings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		row, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}

// AdminUpdateSettings replaces the branding asset URLs.
func AdminUpdateSettings(svc internalsettings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Update(r.Context(), &models.SiteSettings{
			LogoURL:              req.LogoURL,
			CurrencyImageURL:     req.CurrencyImageURL,
			BankAccountImage1URL: req.BankAccountImage1URL,
			BankAccountImage2URL: req.BankAccountImage2URL,
			WebsiteBarcodeURL:    req.WebsiteBarcodeURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, row)
	}
}
