package service

import (
	"context"

	"restaurante-backend/internal/domain"
	"restaurante-backend/internal/repository"
)

type FavoritesServiceInterface interface {
	Add(ctx context.Context, actor *domain.User, productID int64) error
	Remove(ctx context.Context, actor *domain.User, productID int64) error
	List(ctx context.Context, actor *domain.User) ([]domain.Product, error)
}

type FavoritesService struct {
	favorites repository.FavoritesRepositoryInterface
}

func NewFavoritesService(favorites repository.FavoritesRepositoryInterface) FavoritesServiceInterface {
	return &FavoritesService{favorites: favorites}
}

func (s *FavoritesService) Add(ctx context.Context, actor *domain.User, productID int64) error {
	return s.favorites.Add(ctx, actor.ID, productID)
}

func (s *FavoritesService) Remove(ctx context.Context, actor *domain.User, productID int64) error {
	return s.favorites.Remove(ctx, actor.ID, productID)
}

func (s *FavoritesService) List(ctx context.Context, actor *domain.User) ([]domain.Product, error) {
	return s.favorites.ListProducts(ctx, actor.ID)
}
