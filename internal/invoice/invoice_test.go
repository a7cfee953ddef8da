package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batoolapp/lenses-backend/pkg/db/models"
	"github.com/batoolapp/lenses-backend/pkg/enums"
)

func sampleOrder() *models.Order {
	return &models.Order{
		ID:              uuid.New(),
		OrderCode:       "BT-123456",
		CustomerName:    "أحمد علي",
		CustomerPhone:   "701234567",
		CustomerAddress: "صنعاء, حي السبعين",
		Date:            time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
		Status:          enums.OrderStatusPreparing,
		Total:           decimal.RequireFromString("200.00"),
		Items: []models.OrderItem{
			{
				ProductID: "lens-1",
				Name:      "عدسات رمادية",
				ImageURL:  "https://cdn.example.com/lens-1.jpg",
				UnitPrice: decimal.RequireFromString("100.00"),
				Quantity:  2,
				LineTotal: decimal.RequireFromString("200.00"),
			},
		},
	}
}

func TestFromOrder_CapturesBrandingAndLines(t *testing.T) {
	settings := &models.SiteSettings{
		LogoURL:           "https://cdn.example.com/logo.png",
		CurrencyImageURL:  "https://cdn.example.com/sar.png",
		WebsiteBarcodeURL: "https://cdn.example.com/barcode.png",
	}

	snap := FromOrder(sampleOrder(), settings, "ر.س")

	assert.Equal(t, "BT-123456", snap.OrderCode)
	assert.Equal(t, "صنعاء, حي السبعين", snap.Address)
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 2, snap.Lines[0].Quantity)
	assert.Equal(t, "https://cdn.example.com/logo.png", snap.LogoURL)
}

func TestFromOrder_NilSettingsFallsBackToText(t *testing.T) {
	snap := FromOrder(sampleOrder(), nil, "ر.س")
	assert.Empty(t, snap.LogoURL)
	assert.Equal(t, "ر.س", snap.CurrencySymbol)
}

func TestRender_ProducesArabicInvoice(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	snap := FromOrder(sampleOrder(), nil, "ر.س")
	doc, err := renderer.Render(context.Background(), snap)
	require.NoError(t, err)

	html := string(doc)
	assert.Contains(t, html, `dir="rtl"`)
	assert.Contains(t, html, "فاتورة الطلب")
	assert.Contains(t, html, "#BT-123456")
	assert.Contains(t, html, "+967 701234567")
	assert.Contains(t, html, "عدسات رمادية")
	assert.Contains(t, html, "200.00")
	assert.Contains(t, html, "شكرًا لتسوقك مع عدسات بتول!")
	assert.NotContains(t, html, "logo.png", "no logo without branding settings")
}

func TestRender_NilSnapshotIsNotFound(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	_, err = renderer.Render(context.Background(), nil)
	require.Error(t, err)
}

func TestStore_SnapshotSurvivesIndependently(t *testing.T) {
	store := NewStore()
	snap := FromOrder(sampleOrder(), nil, "ر.س")

	store.Put("s1", snap)
	assert.Same(t, snap, store.Get("s1"))
	assert.Nil(t, store.Get("s2"))

	store.Drop("s1")
	assert.Nil(t, store.Get("s1"))
}
