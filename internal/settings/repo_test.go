package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/batoolapp/lenses-backend/pkg/db/models"
)

func setupSettingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE site_settings (
  id TEXT PRIMARY KEY,
  logo_url TEXT NOT NULL DEFAULT '',
  currency_image_url TEXT NOT NULL DEFAULT '',
  bank_account_image1_url TEXT NOT NULL DEFAULT '',
  bank_account_image2_url TEXT NOT NULL DEFAULT '',
  website_barcode_image_url TEXT NOT NULL DEFAULT '',
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestGet_EmptyTableIsNotFound(t *testing.T) {
	repo := NewRepository(setupSettingsTestDB(t))

	_, err := repo.Get(context.Background())
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestSave_CreatesThenUpdatesSingleRow(t *testing.T) {
	db := setupSettingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Save(ctx, &models.SiteSettings{
		ID:      uuid.New(),
		LogoURL: "https://cdn.example.com/logo.png",
	})
	require.NoError(t, err)

	updated, err := repo.Save(ctx, &models.SiteSettings{
		ID:               uuid.New(),
		LogoURL:          "https://cdn.example.com/logo-v2.png",
		CurrencyImageURL: "https://cdn.example.com/sar.png",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "saving always targets the one existing row")

	var count int64
	require.NoError(t, db.Model(&models.SiteSettings{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/logo-v2.png", got.LogoURL)
	assert.Equal(t, "https://cdn.example.com/sar.png", got.CurrencyImageURL)
}
