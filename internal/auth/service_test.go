package auth

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	pkgauth "github.com/batoolapp/lenses-backend/pkg/auth"
	"github.com/batoolapp/lenses-backend/pkg/config"
	"github.com/batoolapp/lenses-backend/pkg/db/models"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
	"github.com/batoolapp/lenses-backend/pkg/security"
)

type stubRepo struct {
	admin       *models.AdminUser
	touchedAt   *time.Time
	touchErr    error
	findByIDErr error
}

func (s *stubRepo) FindByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	if s.admin == nil || s.admin.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.admin, nil
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*models.AdminUser, error) {
	if s.findByIDErr != nil {
		return nil, s.findByIDErr
	}
	if s.admin == nil || s.admin.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.admin, nil
}

func (s *stubRepo) TouchLastLogin(_ context.Context, _ uuid.UUID, at time.Time) error {
	if s.touchErr != nil {
		return s.touchErr
	}
	s.touchedAt = &at
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-please-rotate",
		Issuer:            "batool-lenses",
		ExpirationMinutes: 30,
	}
}

func testAdmin(t *testing.T, password string) *models.AdminUser {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	})
	require.NoError(t, err)
	return &models.AdminUser{
		ID:           uuid.New(),
		Email:        "admin@batool.app",
		PasswordHash: hash,
		Name:         "بتول",
		IsActive:     true,
	}
}

func newService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}), testJWTConfig())
	require.NoError(t, err)
	return svc
}

func TestLogin_Success(t *testing.T) {
	repo := &stubRepo{admin: testAdmin(t, "correct horse battery")}
	svc := newService(t, repo)

	res, err := svc.Login(context.Background(), "  Admin@Batool.app ", "correct horse battery")
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), res.ExpiresAt, 5*time.Second)
	require.NotNil(t, repo.touchedAt)
	require.NotNil(t, res.Admin.LastLoginAt)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, repo.admin.ID, claims.AdminID)
	assert.Equal(t, "admin@batool.app", claims.Email)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newService(t, &stubRepo{admin: testAdmin(t, "correct horse battery")})

	_, err := svc.Login(context.Background(), "admin@batool.app", "not the password")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc := newService(t, &stubRepo{})

	_, err := svc.Login(context.Background(), "nobody@batool.app", "whatever")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
	assert.Equal(t, "invalid credentials", pkgerrors.As(err).Message())
}

func TestLogin_DisabledAccountForbidden(t *testing.T) {
	admin := testAdmin(t, "correct horse battery")
	admin.IsActive = false
	svc := newService(t, &stubRepo{admin: admin})

	_, err := svc.Login(context.Background(), "admin@batool.app", "correct horse battery")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())
}

func TestLogin_LastLoginFailureIsNonFatal(t *testing.T) {
	repo := &stubRepo{admin: testAdmin(t, "correct horse battery"), touchErr: gorm.ErrInvalidDB}
	svc := newService(t, repo)

	res, err := svc.Login(context.Background(), "admin@batool.app", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
}

func TestGetAdmin_Missing(t *testing.T) {
	svc := newService(t, &stubRepo{})

	_, err := svc.GetAdmin(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
