package service

import (
	"context"
	"fmt"

	"restaurante-backend/internal/domain"
	"restaurante-backend/internal/repository"
)

type ReviewsServiceInterface interface {
	Create(ctx context.Context, actor *domain.User, req domain.ReviewCreate) (*domain.ReviewView, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.ReviewView, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}

type ReviewsService struct {
	reviews repository.ReviewsRepositoryInterface
}

func NewReviewsService(reviews repository.ReviewsRepositoryInterface) ReviewsServiceInterface {
	return &ReviewsService{reviews: reviews}
}

func (s *ReviewsService) Create(ctx context.Context, actor *domain.User, req domain.ReviewCreate) (*domain.ReviewView, error) {
	return s.reviews.Create(ctx, actor.ID, req)
}

func (s *ReviewsService) ListByProduct(ctx context.Context, productID int64) ([]domain.ReviewView, error) {
	return s.reviews.ListByProduct(ctx, productID)
}

func (s *ReviewsService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !isAdmin(actor) && review.UserID != actor.ID {
		return fmt.Errorf("review %d belongs to another user: %w", id, domain.ErrForbidden)
	}
	return s.reviews.Delete(ctx, id)
}
