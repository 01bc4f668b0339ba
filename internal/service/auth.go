package service

import (
	"context"
	"fmt"
	"strings"

	"restaurante-backend/internal/auth"
	"restaurante-backend/internal/domain"
	"restaurante-backend/internal/logger"
	"restaurante-backend/internal/repository"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenResponse, error)
	UserByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AuthService struct {
	log    *logger.Logger
	users  repository.UsersRepositoryInterface
	tokens *auth.Manager
}

func NewAuthService(lg *logger.Logger, users repository.UsersRepositoryInterface, tokens *auth.Manager) AuthServiceInterface {
	return &AuthService{log: lg, users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email: %w", domain.ErrInvalidRequest)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("password too short: %w", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("full name is required: %w", domain.ErrInvalidRequest)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Create(ctx, email, strings.TrimSpace(req.FullName), hash, domain.RoleCliente)
	if err != nil {
		return nil, err
	}
	s.log.Info("user_registered", map[string]any{"user_id": user.ID})
	return user, nil
}

// Login verifies credentials and issues a bearer token. Wrong password and
// unknown email both come back as ErrForbidden so the response does not leak
// which part failed.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrForbidden)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrForbidden)
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return nil, err
	}
	s.log.Info("user_logged_in", map[string]any{"user_id": user.ID})
	return &domain.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *AuthService) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}
