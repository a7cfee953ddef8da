package customers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/batoolapp/lenses-backend/pkg/db/models"
)

// Repository defines persistence operations for the customers table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	FindByEmail(ctx context.Context, email string) (*models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a customers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Upsert inserts the customer or, when a row with the same email already
// exists, refreshes its contact fields in place. The stored row is returned
// either way.
func (r *repository) Upsert(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "city", "status", "updated_at"}),
		}).
		Create(customer).Error
	if err != nil {
		return nil, err
	}
	return r.findByEmail(ctx, customer.Email)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return r.findByEmail(ctx, email)
}

func (r *repository) findByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) List(ctx context.Context) ([]models.Customer, error) {
	var rows []models.Customer
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// IsNotFound reports whether err is the record-missing sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
