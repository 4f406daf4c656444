package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

const minPasswordLength = 8

var validate = validator.New()

// AuthSettings holds token and session lifetimes
type AuthSettings struct {
	AccessTTL  time.Duration
	SessionTTL time.Duration
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	profileRepo domain.ProfileRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	audit       domain.AuditLogger
	settings    AuthSettings
	log         logrus.FieldLogger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	profileRepo domain.ProfileRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	audit domain.AuditLogger,
	settings AuthSettings,
	log logrus.FieldLogger,
) domain.AuthService {
	if settings.AccessTTL <= 0 {
		settings.AccessTTL = 15 * time.Minute
	}
	if settings.SessionTTL <= 0 {
		settings.SessionTTL = 7 * 24 * time.Hour
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		audit:       audit,
		settings:    settings,
		log:         log.WithField("component", "auth_service"),
	}
}

// Register implements domain.AuthService.
// Students start active; artisans start inactive with a pending provider profile.
func (s *AuthServiceImpl) Register(ctx context.Context, req domain.RegistrationRequest) (*domain.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil && existingUser != nil {
		return nil, domain.ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hashedPassword, err := s.passwordSvc.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hashedPassword,
		Role:         req.Role,
		FullName:     strings.TrimSpace(req.FullName),
		MatricNumber: strings.TrimSpace(req.MatricNumber),
		IsActive:     req.Role == domain.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	switch req.Role {
	case domain.RoleArtisan:
		profile := &domain.ProviderProfile{
			BusinessName:            strings.TrimSpace(req.BusinessName),
			Status:                  domain.StatusPending,
			VerificationSubmittedAt: &now,
		}
		if err := s.profileRepo.CreateWithOwner(ctx, user, profile); err != nil {
			return nil, fmt.Errorf("failed to create artisan: %w", err)
		}
	default:
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	event := domain.NewAuditEvent(domain.UserRegisteredEvent, user.ID, domain.ResourceUser, user.ID).
		WithChange(nil, map[string]interface{}{"role": user.Role, "is_active": user.IsActive})
	if err := s.audit.LogEvent(ctx, event); err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Warn("audit registration failed")
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("user registered")
	return user, nil
}

func validateRegistration(req domain.RegistrationRequest) error {
	switch {
	case req.Role != domain.RoleStudent && req.Role != domain.RoleArtisan:
		return fmt.Errorf("%w: role must be student or artisan", domain.ErrInvalidInput)
	case req.Email == "":
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	case len(req.Password) < minPasswordLength:
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, minPasswordLength)
	case strings.TrimSpace(req.FullName) == "":
		return fmt.Errorf("%w: full name is required", domain.ErrInvalidInput)
	case req.Role == domain.RoleArtisan && strings.TrimSpace(req.MatricNumber) == "":
		return fmt.Errorf("%w: artisans must provide a matric number", domain.ErrInvalidInput)
	}
	if err := validate.Var(req.Email, "email"); err != nil {
		return fmt.Errorf("%w: email is malformed", domain.ErrInvalidInput)
	}
	return nil
}

// Login implements domain.AuthService.
// Inactive artisans may sign in so they can upload verification evidence.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive && user.Role != domain.RoleArtisan {
		return nil, domain.ErrUserInactive
	}

	now := time.Now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.settings.SessionTTL),
		CreatedAt: now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, string(user.Role), session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.ID, string(user.Role), session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	s.log.WithFields(logrus.Fields{"user_id": user.ID, "session_id": session.ID}).Info("user logged in")
	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.settings.AccessTTL.Seconds()),
	}, nil
}

// RefreshToken implements domain.AuthService
func (s *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	session, err := s.sessionRepo.FindByID(ctx, claims.SessionID)
	if err != nil {
		return nil, err
	}
	if session.ExpiresAt.Before(time.Now()) {
		return nil, domain.ErrSessionExpired
	}
	if session.UserID != claims.UserID {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive && user.Role != domain.RoleArtisan {
		return nil, domain.ErrUserInactive
	}

	accessToken, err := s.tokenSvc.GenerateAccessToken(user.ID, string(user.Role), session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SessionID:    session.ID,
		ExpiresIn:    int64(s.settings.AccessTTL.Seconds()),
	}, nil
}

// Logout implements domain.AuthService
func (s *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// GetUserProfile implements domain.AuthService
func (s *AuthServiceImpl) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
