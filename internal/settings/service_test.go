package settings

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/batoolapp/lenses-backend/pkg/db/models"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
)

type stubSettingsRepo struct {
	row     *models.SiteSettings
	getErr  error
	saveErr error
}

func (s *stubSettingsRepo) Get(_ context.Context) (*models.SiteSettings, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	if s.row == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.row, nil
}

func (s *stubSettingsRepo) Save(_ context.Context, settings *models.SiteSettings) (*models.SiteSettings, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.row = settings
	return settings, nil
}

func newSettingsService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	require.NoError(t, err)
	return svc
}

func TestGet_MissingRowReturnsEmptySettings(t *testing.T) {
	svc := newSettingsService(t, &stubSettingsRepo{})

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.LogoURL)
}

func TestGet_RepoFailureIsDependencyError(t *testing.T) {
	svc := newSettingsService(t, &stubSettingsRepo{getErr: gorm.ErrInvalidDB})

	_, err := svc.Get(context.Background())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeDependency, pkgerrors.As(err).Code())
}

func TestUpdate_PersistsThroughRepo(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc := newSettingsService(t, repo)

	stored, err := svc.Update(context.Background(), &models.SiteSettings{LogoURL: "https://cdn.example.com/logo.png"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/logo.png", stored.LogoURL)
	assert.Same(t, repo.row, stored)
}
