package service

import (
	"context"

	"restaurante-backend/internal/domain"
	"restaurante-backend/internal/repository"
)

type CartsServiceInterface interface {
	Get(ctx context.Context, actor *domain.User) (*domain.CartView, error)
	Summary(ctx context.Context, actor *domain.User) (*domain.CartSummary, error)
	AddItem(ctx context.Context, actor *domain.User, req domain.CartItemCreate) (*domain.CartView, error)
	UpdateItem(ctx context.Context, actor *domain.User, itemID int64, upd domain.CartItemUpdate) (*domain.CartView, error)
	RemoveItem(ctx context.Context, actor *domain.User, itemID int64) error
	Clear(ctx context.Context, actor *domain.User) error
}

type CartsService struct {
	carts repository.CartsRepositoryInterface
}

func NewCartsService(carts repository.CartsRepositoryInterface) CartsServiceInterface {
	return &CartsService{carts: carts}
}

func (s *CartsService) Get(ctx context.Context, actor *domain.User) (*domain.CartView, error) {
	return s.carts.GetCart(ctx, actor.ID)
}

func (s *CartsService) Summary(ctx context.Context, actor *domain.User) (*domain.CartSummary, error) {
	return s.carts.GetSummary(ctx, actor.ID)
}

func (s *CartsService) AddItem(ctx context.Context, actor *domain.User, req domain.CartItemCreate) (*domain.CartView, error) {
	return s.carts.AddItem(ctx, actor.ID, req)
}

func (s *CartsService) UpdateItem(ctx context.Context, actor *domain.User, itemID int64, upd domain.CartItemUpdate) (*domain.CartView, error) {
	return s.carts.UpdateItem(ctx, actor.ID, itemID, upd)
}

func (s *CartsService) RemoveItem(ctx context.Context, actor *domain.User, itemID int64) error {
	return s.carts.RemoveItem(ctx, actor.ID, itemID)
}

func (s *CartsService) Clear(ctx context.Context, actor *domain.User) error {
	return s.carts.Clear(ctx, actor.ID)
}
