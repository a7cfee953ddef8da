package models

import (
	"time"

	"github.com/google/uuid"
)

// SiteSettings is a single-row table holding storefront branding assets.
// Every URL may be empty; consumers fall back to textual rendering.
type SiteSettings struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LogoURL              string    `gorm:"column:logo_url;not null;default:''" json:"logo_url"`
	CurrencyImageURL     string    `gorm:"column:currency_image_url;not null;default:''" json:"currency_image_url"`
	BankAccountImage1URL string    `gorm:"column:bank_account_image1_url;not null;default:''" json:"bank_account_image1_url"`
	BankAccountImage2URL string    `gorm:"column:bank_account_image2_url;not null;default:''" json:"bank_account_image2_url"`
	WebsiteBarcodeURL    string    `gorm:"column:website_barcode_image_url;not null;default:''" json:"website_barcode_image_url"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
