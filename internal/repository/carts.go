package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurante-backend/internal/domain"
)

type CartsRepositoryInterface interface {
	GetCart(ctx context.Context, userID int64) (*domain.CartView, error)
	GetSummary(ctx context.Context, userID int64) (*domain.CartSummary, error)
	AddItem(ctx context.Context, userID int64, req domain.CartItemCreate) (*domain.CartView, error)
	UpdateItem(ctx context.Context, userID int64, itemID int64, upd domain.CartItemUpdate) (*domain.CartView, error)
	RemoveItem(ctx context.Context, userID int64, itemID int64) error
	Clear(ctx context.Context, userID int64) error
}

type CartsRepository struct {
	db *pgxpool.Pool
}

func NewCartsRepository(db *pgxpool.Pool) *CartsRepository {
	return &CartsRepository{db: db}
}

// each user has exactly one cart, created lazily on first access
func (r *CartsRepository) ensureCart(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, userID int64) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO carts (user_id, created_at) VALUES ($1, NOW())
		ON CONFLICT (user_id) DO UPDATE SET updated_at = NOW()
		RETURNING id`, userID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to ensure cart: %w", err)
	}
	return id, nil
}

// GetCart returns the user's cart with its priced lines. Line subtotals use
// the catalog's current price; the cart never locks prices in.
func (r *CartsRepository) GetCart(ctx context.Context, userID int64) (*domain.CartView, error) {
	cartID, err := r.ensureCart(ctx, r.db, userID)
	if err != nil {
		return nil, err
	}

	var view domain.CartView
	err = r.db.QueryRow(ctx,
		`SELECT id, user_id, created_at FROM carts WHERE id = $1`, cartID,
	).Scan(&view.ID, &view.UserID, &view.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT ci.id, ci.product_id, ci.quantity, ci.special_instructions,
		       p.name, p.price, p.image_url
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	defer rows.Close()

	view.Items = []domain.CartItemView{}
	for rows.Next() {
		var (
			it    domain.CartItemView
			name  *string
			price *float64
		)
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity,
			&it.SpecialInstructions, &name, &price, &it.ProductImage); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		it.ProductName = domain.MissingProductName
		if name != nil {
			it.ProductName = *name
		}
		if price != nil {
			it.ProductPrice = *price
		}
		it.Subtotal = it.ProductPrice * float64(it.Quantity)
		view.TotalAmount += it.Subtotal
		view.ItemsCount += it.Quantity
		view.Items = append(view.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cart items: %w", err)
	}
	return &view, nil
}

func (r *CartsRepository) GetSummary(ctx context.Context, userID int64) (*domain.CartSummary, error) {
	view, err := r.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.CartSummary{
		ID:          view.ID,
		UserID:      view.UserID,
		TotalAmount: view.TotalAmount,
		ItemsCount:  view.ItemsCount,
		CreatedAt:   view.CreatedAt,
	}, nil
}

// AddItem appends a product to the cart, merging quantities when the product
// is already there.
func (r *CartsRepository) AddItem(ctx context.Context, userID int64, req domain.CartItemCreate) (*domain.CartView, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrInvalidRequest)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		name      string
		available bool
	)
	err = tx.QueryRow(ctx,
		`SELECT name, is_available FROM products WHERE id = $1`,
		req.ProductID).Scan(&name, &available)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("product %d: %w", req.ProductID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if !available {
		return nil, fmt.Errorf("producto %s no disponible: %w", name, domain.ErrInvalidRequest)
	}

	cartID, err := r.ensureCart(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	var itemID int64
	err = tx.QueryRow(ctx,
		`SELECT id FROM cart_items WHERE cart_id = $1 AND product_id = $2 FOR UPDATE`,
		cartID, req.ProductID).Scan(&itemID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		_, err = tx.Exec(ctx, `
			INSERT INTO cart_items (cart_id, product_id, quantity, special_instructions, created_at)
			VALUES ($1, $2, $3, $4, NOW())`,
			cartID, req.ProductID, req.Quantity, req.SpecialInstructions)
		if err != nil {
			return nil, fmt.Errorf("failed to insert cart item: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to check cart item: %w", err)
	default:
		_, err = tx.Exec(ctx, `
			UPDATE cart_items
			SET quantity = quantity + $1,
			    special_instructions = COALESCE($2, special_instructions)
			WHERE id = $3`,
			req.Quantity, req.SpecialInstructions, itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to merge cart item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return r.GetCart(ctx, userID)
}

func (r *CartsRepository) UpdateItem(ctx context.Context, userID int64, itemID int64, upd domain.CartItemUpdate) (*domain.CartView, error) {
	if upd.Quantity != nil && *upd.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be positive: %w", domain.ErrInvalidRequest)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE cart_items ci
		SET quantity = COALESCE($1, ci.quantity),
		    special_instructions = COALESCE($2, ci.special_instructions)
		FROM carts c
		WHERE ci.id = $3 AND ci.cart_id = c.id AND c.user_id = $4`,
		upd.Quantity, upd.SpecialInstructions, itemID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("cart item %d: %w", itemID, domain.ErrNotFound)
	}
	return r.GetCart(ctx, userID)
}

func (r *CartsRepository) RemoveItem(ctx context.Context, userID int64, itemID int64) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.id = $1 AND ci.cart_id = c.id AND c.user_id = $2`,
		itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("cart item %d: %w", itemID, domain.ErrNotFound)
	}
	return nil
}

func (r *CartsRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id AND c.user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
