package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/request-analytics/internal/auth"
	"github.com/spec-kit/request-analytics/internal/config"
	"github.com/spec-kit/request-analytics/internal/domain"
	"github.com/spec-kit/request-analytics/internal/events"
	"github.com/spec-kit/request-analytics/internal/repository"
	apperrors "github.com/spec-kit/request-analytics/pkg/util/errorutil"
)

// LoginResult is returned on successful staff login.
type LoginResult struct {
	Staff     *domain.StaffMember
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates staff login.
type AuthService struct {
	staff      repository.StaffRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	StaffRepo  repository.StaffRepository
	Dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		staff:      deps.StaffRepo,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
	}
}

// LoginStaff verifies credentials and issues an access token.
func (s *AuthService) LoginStaff(ctx context.Context, email, password string) (*LoginResult, error) {
	staff, err := s.staff.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if !staff.Active {
		return nil, apperrors.NewUnauthorized("staff inactive")
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(staff)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventStaffLoggedIn,
			StaffID:   staff.ID,
			Timestamp: time.Now(),
			Payload:   events.StaffLoggedInPayload{Email: staff.Email, Role: string(staff.Role)},
		})
	}
	return &LoginResult{Staff: staff, Token: token, ExpiresAt: exp}, nil
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
