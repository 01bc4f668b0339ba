package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurante-backend/internal/domain"
)

type CategoriesRepositoryInterface interface {
	List(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, req domain.CategoryCreate) (*domain.Category, error)
	Update(ctx context.Context, id int64, upd domain.CategoryUpdate) (*domain.Category, error)
	Delete(ctx context.Context, id int64) error
}

type CategoriesRepository struct {
	db *pgxpool.Pool
}

func NewCategoriesRepository(db *pgxpool.Pool) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

const categoryColumns = `id, name, description, image_url, created_at, updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoriesRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return categories, nil
}

func (r *CategoriesRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return c, nil
}

func (r *CategoriesRepository) Create(ctx context.Context, req domain.CategoryCreate) (*domain.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `
		INSERT INTO categories (name, description, image_url, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING `+categoryColumns,
		req.Name, req.Description, req.ImageURL))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category %q already exists: %w", req.Name, domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

func (r *CategoriesRepository) Update(ctx context.Context, id int64, upd domain.CategoryUpdate) (*domain.Category, error) {
	c, err := scanCategory(r.db.QueryRow(ctx, `
		UPDATE categories SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			image_url = COALESCE($3, image_url),
			updated_at = NOW()
		WHERE id = $4
		RETURNING `+categoryColumns,
		upd.Name, upd.Description, upd.ImageURL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("category name taken: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return c, nil
}

// Delete detaches the category's products rather than removing them.
func (r *CategoriesRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`UPDATE products SET category_id = NULL, updated_at = NOW() WHERE category_id = $1`, id); err != nil {
		return fmt.Errorf("failed to detach products: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %d: %w", id, domain.ErrNotFound)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
