package customers

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/batoolapp/lenses-backend/pkg/db/models"
	"github.com/batoolapp/lenses-backend/pkg/enums"
)

func setupCustomersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE customers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL,
  city TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'نشط',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newCustomer(phone string) *models.Customer {
	return &models.Customer{
		ID:     uuid.New(),
		Name:   "أحمد علي",
		Email:  SyntheticEmail(phone, "batool.app"),
		Phone:  phone,
		City:   "صنعاء",
		Status: enums.CustomerStatusActive,
	}
}

func TestUpsert_CreatesThenUpdatesSameEmail(t *testing.T) {
	db := setupCustomersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	first, err := repo.Upsert(ctx, newCustomer("701234567"))
	require.NoError(t, err)

	second := newCustomer("701234567")
	second.Name = "أحمد محمد"
	second.City = "عدن"

	updated, err := repo.Upsert(ctx, second)
	require.NoError(t, err)

	// same row, refreshed fields
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "أحمد محمد", updated.Name)
	assert.Equal(t, "عدن", updated.City)

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpsert_DistinctPhonesCreateDistinctRows(t *testing.T) {
	db := setupCustomersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, newCustomer("701234567"))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, newCustomer("781234567"))
	require.NoError(t, err)

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestFindByEmail_MissingRowIsNotFound(t *testing.T) {
	db := setupCustomersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByEmail(context.Background(), "nobody@batool.app")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestSyntheticEmail(t *testing.T) {
	assert.Equal(t, "701234567@batool.app", SyntheticEmail("701234567", "batool.app"))
}
