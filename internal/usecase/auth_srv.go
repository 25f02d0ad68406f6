package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chakai-booking/internal/data/entity"
	"chakai-booking/internal/data/repository"
	"chakai-booking/internal/dto/request"
	"chakai-booking/internal/dto/response"
	"chakai-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.LoginResponse, error)
	Logout(ctx context.Context, token string) error
	// PurgeSessions drops sessions that expired over a week ago.
	PurgeSessions(ctx context.Context) (int64, error)
	// EnsureAdmin creates the configured admin account when no user exists yet.
	EnsureAdmin(ctx context.Context, config utils.AdminConfig) error
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, userAgent, ip string) (*response.LoginResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, NewValidationError(errs)
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		s.log.Warn("User not found for login", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.NewBaseSimple(now),
		UserID:     user.ID,
		Token:      utils.GenerateSessionToken(),
		ExpiresAt:  now.Add(time.Duration(s.config.Session.ExpiryHours) * time.Hour),
	}
	if userAgent != "" {
		session.UserAgent = &userAgent
	}
	if ip != "" {
		session.IPAddress = &ip
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.LoginToResponse(user, session)
	return &resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	sessionToken, err := uuid.Parse(token)
	if err != nil {
		return ErrInvalidCredentials
	}

	if err := s.repo.Session.Revoke(ctx, sessionToken); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("revoke session: %w", err)
	}

	s.log.Info("User logged out")
	return nil
}

const sessionRetention = 7 * 24 * time.Hour

func (s *authService) PurgeSessions(ctx context.Context) (int64, error) {
	removed, err := s.repo.Session.PurgeExpired(ctx, time.Now().Add(-sessionRetention))
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.log.Info("Purged expired sessions", zap.Int64("count", removed))
	}
	return removed, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, config utils.AdminConfig) error {
	count, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if config.Password == "" {
		s.log.Warn("No users exist and ADMIN_PASSWORD is empty, admin API is unusable")
		return nil
	}

	hash, err := utils.HashPassword(config.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	user := &entity.User{
		Base:         entity.NewBase(time.Now()),
		Username:     config.Username,
		Email:        config.Email,
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		return err
	}

	s.log.Info("Seeded admin account", zap.String("username", user.Username))
	return nil
}
