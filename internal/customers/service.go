package customers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/batoolapp/lenses-backend/pkg/db/models"
	"github.com/batoolapp/lenses-backend/pkg/enums"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
)

// Service exposes customer operations to checkout and the back office.
type Service interface {
	UpsertFromCheckout(ctx context.Context, name, phone, governorate string) (*models.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context) ([]models.Customer, error)
}

type service struct {
	repo        Repository
	logg        *logger.Logger
	emailDomain string
}

// NewService wires the customers service.
func NewService(repo Repository, logg *logger.Logger, emailDomain string) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers: repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("customers: logger is required")
	}
	if emailDomain == "" {
		return nil, fmt.Errorf("customers: email domain is required")
	}
	return &service{repo: repo, logg: logg, emailDomain: emailDomain}, nil
}

// SyntheticEmail derives the upsert identity for a shopper. No real email is
// collected at checkout, so the phone number is used as the local part.
func SyntheticEmail(phone, domain string) string {
	return phone + "@" + domain
}

// UpsertFromCheckout records the shopper, keyed by their phone-derived email.
// Repeat purchases refresh the stored contact details rather than creating a
// second row. The governorate doubles as the stored city.
func (s *service) UpsertFromCheckout(ctx context.Context, name, phone, governorate string) (*models.Customer, error) {
	customer := &models.Customer{
		Name:   name,
		Email:  SyntheticEmail(phone, s.emailDomain),
		Phone:  phone,
		City:   governorate,
		Status: enums.CustomerStatusActive,
	}

	stored, err := s.repo.Upsert(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upserting customer")
	}
	return stored, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finding customer")
	}
	return customer, nil
}

func (s *service) List(ctx context.Context) ([]models.Customer, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing customers")
	}
	return rows, nil
}
