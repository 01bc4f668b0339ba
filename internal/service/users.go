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

type UsersServiceInterface interface {
	UpdateProfile(ctx context.Context, actor *domain.User, upd domain.UserUpdate) (*domain.User, error)
	List(ctx context.Context, actor *domain.User, skip, limit int) ([]domain.User, error)
	UpdateUser(ctx context.Context, actor *domain.User, id int64, upd domain.UserUpdate) (*domain.User, error)
}

type UsersService struct {
	log   *logger.Logger
	users repository.UsersRepositoryInterface
}

func NewUsersService(lg *logger.Logger, users repository.UsersRepositoryInterface) UsersServiceInterface {
	return &UsersService{log: lg, users: users}
}

// UpdateProfile lets a user edit their own email, name or password.
func (s *UsersService) UpdateProfile(ctx context.Context, actor *domain.User, upd domain.UserUpdate) (*domain.User, error) {
	return s.apply(ctx, actor.ID, upd)
}

func (s *UsersService) List(ctx context.Context, actor *domain.User, skip, limit int) ([]domain.User, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("listing users: %w", domain.ErrForbidden)
	}
	return s.users.List(ctx, skip, limit)
}

func (s *UsersService) UpdateUser(ctx context.Context, actor *domain.User, id int64, upd domain.UserUpdate) (*domain.User, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("editing users: %w", domain.ErrForbidden)
	}
	return s.apply(ctx, id, upd)
}

func (s *UsersService) apply(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	var email, fullName, passwordHash *string

	if upd.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*upd.Email))
		if e == "" || !strings.Contains(e, "@") {
			return nil, fmt.Errorf("invalid email: %w", domain.ErrInvalidRequest)
		}
		email = &e
	}
	if upd.FullName != nil {
		n := strings.TrimSpace(*upd.FullName)
		if n == "" {
			return nil, fmt.Errorf("full name is required: %w", domain.ErrInvalidRequest)
		}
		fullName = &n
	}
	if upd.Password != nil {
		if len(*upd.Password) < 6 {
			return nil, fmt.Errorf("password too short: %w", domain.ErrInvalidRequest)
		}
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	}
	if email == nil && fullName == nil && passwordHash == nil {
		return s.users.GetByID(ctx, id)
	}

	user, err := s.users.Update(ctx, id, email, fullName, passwordHash)
	if err != nil {
		return nil, err
	}
	s.log.Info("user_updated", map[string]any{"user_id": id})
	return user, nil
}
