package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"restaurante-backend/internal/domain"
)

type FavoritesRepositoryInterface interface {
	Add(ctx context.Context, userID, productID int64) error
	Remove(ctx context.Context, userID, productID int64) error
	ListProducts(ctx context.Context, userID int64) ([]domain.Product, error)
}

type FavoritesRepository struct {
	db *pgxpool.Pool
}

func NewFavoritesRepository(db *pgxpool.Pool) *FavoritesRepository {
	return &FavoritesRepository{db: db}
}

func (r *FavoritesRepository) Add(ctx context.Context, userID, productID int64) error {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return fmt.Errorf("product %d: %w", productID, domain.ErrNotFound)
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO favorites (user_id, product_id, created_at)
		VALUES ($1, $2, NOW())`, userID, productID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("product %d already in favorites: %w", productID, domain.ErrConflict)
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *FavoritesRepository) Remove(ctx context.Context, userID, productID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("favorite %d: %w", productID, domain.ErrNotFound)
	}
	return nil
}

func (r *FavoritesRepository) ListProducts(ctx context.Context, userID int64) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.id, p.name, p.description, p.price, p.category_id, p.image_url,
		       p.is_available, p.stock, p.created_at, p.updated_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}
	return products, nil
}
