package settings

import (
	"context"
	"fmt"

	"github.com/batoolapp/lenses-backend/pkg/db/models"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
)

// Service exposes storefront branding settings. Reads are forgiving: when no
// row exists yet an empty settings object is returned rather than an error,
// so rendering paths never fail on a missing row.
type Service interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Update(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the settings service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings: repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("settings: logger is required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Get(ctx context.Context) (*models.SiteSettings, error) {
	row, err := s.repo.Get(ctx)
	if err != nil {
		if IsNotFound(err) {
			return &models.SiteSettings{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading site settings")
	}
	return row, nil
}

func (s *service) Update(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error) {
	stored, err := s.repo.Save(ctx, settings)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving site settings")
	}
	s.logg.Info(ctx, "site settings updated")
	return stored, nil
}
