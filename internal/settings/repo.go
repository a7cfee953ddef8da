package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/batoolapp/lenses-backend/pkg/db/models"
)

// Repository defines persistence for the single-row site settings table.
type Repository interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Save(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a settings repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*models.SiteSettings, error) {
	var row models.SiteSettings
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Save writes the settings row, creating it on first use. The table only ever
// holds one row.
func (r *repository) Save(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error) {
	existing, err := r.Get(ctx)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Create(settings).Error; err != nil {
			return nil, err
		}
		return settings, nil
	}

	settings.ID = existing.ID
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// IsNotFound reports whether err is the record-missing sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
