package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/batoolapp/lenses-backend/pkg/auth"
	"github.com/batoolapp/lenses-backend/pkg/config"
	"github.com/batoolapp/lenses-backend/pkg/db/models"
	pkgerrors "github.com/batoolapp/lenses-backend/pkg/errors"
	"github.com/batoolapp/lenses-backend/pkg/logger"
	"github.com/batoolapp/lenses-backend/pkg/security"
)

// LoginResult carries the minted token plus the operator it belongs to.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Admin       *models.AdminUser
}

// Service authenticates back-office operators.
type Service interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (*models.AdminUser, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
	jwt  config.JWTConfig
}

// NewService wires the auth service.
func NewService(repo Repository, logg *logger.Logger, jwtCfg config.JWTConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("auth: repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("auth: logger is required")
	}
	return &service{repo: repo, logg: logg, jwt: jwtCfg}, nil
}

// Login verifies credentials and mints an access token. Unknown emails and
// wrong passwords return the same unauthorized error.
func (s *service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finding admin")
	}
	if !admin.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is disabled")
	}

	ok, err := security.VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := time.Now().UTC()
	token, err := auth.MintAccessToken(s.jwt, now, auth.AccessTokenPayload{
		AdminID: admin.ID,
		Email:   admin.Email,
		JTI:     uuid.NewString(),
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	if err := s.repo.TouchLastLogin(ctx, admin.ID, now); err != nil {
		s.logg.Warn(ctx, "updating last login failed")
	}
	loginAt := now
	admin.LastLoginAt = &loginAt

	s.logg.Info(s.logg.WithField(ctx, "admin_email", admin.Email), "admin logged in")

	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   now.Add(time.Duration(s.jwt.ExpirationMinutes) * time.Minute),
		Admin:       admin,
	}, nil
}

func (s *service) GetAdmin(ctx context.Context, id uuid.UUID) (*models.AdminUser, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "admin not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finding admin")
	}
	return admin, nil
}
