package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurante-backend/internal/domain"
)

type ProductFilter struct {
	CategoryID *int64
	Available  *bool
	Skip       int
	Limit      int
}

type ProductsRepositoryInterface interface {
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Create(ctx context.Context, req domain.ProductCreate) (*domain.Product, error)
	Update(ctx context.Context, id int64, upd domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type ProductsRepository struct {
	db *pgxpool.Pool
}

func NewProductsRepository(db *pgxpool.Pool) *ProductsRepository {
	return &ProductsRepository{db: db}
}

const productColumns = `id, name, description, price, category_id, image_url, is_available, stock, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CategoryID,
		&p.ImageURL, &p.IsAvailable, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductsRepository) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	if f.Limit <= 0 {
		f.Limit = 100
	}
	where := []string{}
	args := []any{}
	n := 1
	if f.CategoryID != nil {
		where = append(where, fmt.Sprintf("category_id = $%d", n))
		args = append(args, *f.CategoryID)
		n++
	}
	if f.Available != nil {
		where = append(where, fmt.Sprintf("is_available = $%d", n))
		args = append(args, *f.Available)
		n++
	}
	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += fmt.Sprintf(` ORDER BY id OFFSET $%d LIMIT $%d`, n, n+1)
	args = append(args, f.Skip, f.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return products, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product: %w", err)
	}
	return p, nil
}

func (r *ProductsRepository) Create(ctx context.Context, req domain.ProductCreate) (*domain.Product, error) {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	p, err := scanProduct(r.db.QueryRow(ctx, `
		INSERT INTO products (name, description, price, category_id, image_url, is_available, stock, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING `+productColumns,
		req.Name, req.Description, req.Price, req.CategoryID, req.ImageURL, available, req.Stock))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

func (r *ProductsRepository) Update(ctx context.Context, id int64, upd domain.ProductUpdate) (*domain.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `
		UPDATE products SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			price = COALESCE($3, price),
			category_id = COALESCE($4, category_id),
			image_url = COALESCE($5, image_url),
			is_available = COALESCE($6, is_available),
			stock = COALESCE($7, stock),
			updated_at = NOW()
		WHERE id = $8
		RETURNING `+productColumns,
		upd.Name, upd.Description, upd.Price, upd.CategoryID, upd.ImageURL,
		upd.IsAvailable, upd.Stock, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return p, nil
}

// Delete removes the product; surviving order items keep their price snapshot
// and fall back to the placeholder name on read.
func (r *ProductsRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
