package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurante-backend/internal/domain"
)

type ReviewsRepositoryInterface interface {
	Create(ctx context.Context, userID int64, req domain.ReviewCreate) (*domain.ReviewView, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.ReviewView, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	Delete(ctx context.Context, id int64) error
}

type ReviewsRepository struct {
	db *pgxpool.Pool
}

func NewReviewsRepository(db *pgxpool.Pool) *ReviewsRepository {
	return &ReviewsRepository{db: db}
}

func (r *ReviewsRepository) Create(ctx context.Context, userID int64, req domain.ReviewCreate) (*domain.ReviewView, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5: %w", domain.ErrInvalidRequest)
	}

	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, req.ProductID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("product %d: %w", req.ProductID, domain.ErrNotFound)
	}

	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO reviews (user_id, product_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id`,
		userID, req.ProductID, req.Rating, req.Comment).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return r.getView(ctx, id)
}

func (r *ReviewsRepository) getView(ctx context.Context, id int64) (*domain.ReviewView, error) {
	var v domain.ReviewView
	err := r.db.QueryRow(ctx, `
		SELECT r.id, r.user_id, r.product_id, r.rating, r.comment,
		       COALESCE(u.full_name, 'Usuario'), r.created_at
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.id = $1`, id,
	).Scan(&v.ID, &v.UserID, &v.ProductID, &v.Rating, &v.Comment, &v.UserName, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("review %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	return &v, nil
}

func (r *ReviewsRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.ReviewView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.user_id, r.product_id, r.rating, r.comment,
		       COALESCE(u.full_name, 'Usuario'), r.created_at
		FROM reviews r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.product_id = $1
		ORDER BY r.created_at DESC`, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []domain.ReviewView{}
	for rows.Next() {
		var v domain.ReviewView
		if err := rows.Scan(&v.ID, &v.UserID, &v.ProductID, &v.Rating,
			&v.Comment, &v.UserName, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reviews: %w", err)
	}
	return reviews, nil
}

func (r *ReviewsRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rev domain.Review
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, product_id, rating, comment, created_at
		FROM reviews WHERE id = $1`, id,
	).Scan(&rev.ID, &rev.UserID, &rev.ProductID, &rev.Rating, &rev.Comment, &rev.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("review %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load review: %w", err)
	}
	return &rev, nil
}

func (r *ReviewsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("review %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
