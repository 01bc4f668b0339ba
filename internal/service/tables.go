package service

import (
	"context"
	"fmt"

	"restaurante-backend/internal/domain"
	"restaurante-backend/internal/repository"
)

type TablesServiceInterface interface {
	List(ctx context.Context) ([]domain.Table, error)
	ListAvailable(ctx context.Context) ([]domain.Table, error)
	Get(ctx context.Context, id int64) (*domain.Table, error)
	Status(ctx context.Context, actor *domain.User) ([]domain.TableStatusView, error)
	Create(ctx context.Context, actor *domain.User, req domain.TableCreate) (*domain.Table, error)
	Update(ctx context.Context, actor *domain.User, id int64, upd domain.TableUpdate) (*domain.Table, error)
	UpdatePosition(ctx context.Context, actor *domain.User, id int64, pos domain.TablePosition) (*domain.Table, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}

type TablesService struct {
	tables repository.TablesRepositoryInterface
}

func NewTablesService(tables repository.TablesRepositoryInterface) TablesServiceInterface {
	return &TablesService{tables: tables}
}

func (s *TablesService) List(ctx context.Context) ([]domain.Table, error) {
	return s.tables.List(ctx, true)
}

func (s *TablesService) ListAvailable(ctx context.Context) ([]domain.Table, error) {
	return s.tables.ListAvailable(ctx)
}

func (s *TablesService) Get(ctx context.Context, id int64) (*domain.Table, error) {
	return s.tables.GetByID(ctx, id)
}

// Status is the staff floor plan; it exposes other customers' orders, so it
// stays admin-only.
func (s *TablesService) Status(ctx context.Context, actor *domain.User) ([]domain.TableStatusView, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("table status: %w", domain.ErrForbidden)
	}
	return s.tables.StatusViews(ctx)
}

func (s *TablesService) Create(ctx context.Context, actor *domain.User, req domain.TableCreate) (*domain.Table, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("creating tables: %w", domain.ErrForbidden)
	}
	if req.Number < 1 || req.Capacity < 1 {
		return nil, fmt.Errorf("number and capacity must be positive: %w", domain.ErrInvalidRequest)
	}
	return s.tables.Create(ctx, req)
}

func (s *TablesService) Update(ctx context.Context, actor *domain.User, id int64, upd domain.TableUpdate) (*domain.Table, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("updating tables: %w", domain.ErrForbidden)
	}
	return s.tables.Update(ctx, id, upd)
}

func (s *TablesService) UpdatePosition(ctx context.Context, actor *domain.User, id int64, pos domain.TablePosition) (*domain.Table, error) {
	if !isAdmin(actor) {
		return nil, fmt.Errorf("moving tables: %w", domain.ErrForbidden)
	}
	return s.tables.UpdatePosition(ctx, id, pos)
}

func (s *TablesService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if !isAdmin(actor) {
		return fmt.Errorf("deleting tables: %w", domain.ErrForbidden)
	}
	return s.tables.Deactivate(ctx, id)
}
