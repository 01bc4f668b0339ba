package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurante-backend/internal/domain"
)

// OrdersRepositoryInterface is the order store: durable read/write of the
// order aggregate with its items and extras, including the stock and
// table-occupancy side effects of creation and completion. All mutating
// methods run in a single transaction.
type OrdersRepositoryInterface interface {
	CreateOrder(ctx context.Context, userID int64, req domain.OrderCreate) (*domain.OrderView, error)
	CheckoutCart(ctx context.Context, userID int64, req domain.CheckoutRequest) (*domain.OrderView, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.OrderView, error)
	ListOrders(ctx context.Context, f ListOrdersFilter) ([]domain.OrderView, error)
	UpdateOrderFields(ctx context.Context, id int64, upd domain.OrderUpdate) (*domain.OrderView, error)
	SetStatus(ctx context.Context, id int64, status string) (*domain.OrderView, error)
	DeleteOrder(ctx context.Context, id int64) error
	AddExtras(ctx context.Context, orderID int64, extras []domain.OrderExtraCreate) ([]domain.OrderExtraView, error)
	ListOrderExtras(ctx context.Context, orderID int64) ([]domain.OrderExtraView, error)
	GetOrderExtra(ctx context.Context, orderExtraID int64) (*domain.OrderExtra, error)
	RemoveExtra(ctx context.Context, orderExtraID int64) error
}

type ListOrdersFilter struct {
	UserID *int64
	Skip   int
	Limit  int
}

type OrdersRepository struct {
	db *pgxpool.Pool
}

func NewOrdersRepository(db *pgxpool.Pool) *OrdersRepository {
	return &OrdersRepository{db: db}
}

func (r *OrdersRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateOrder builds the aggregate from an explicit item list: validates the
// table (dine-in), re-checks product stock under row locks, snapshots unit
// prices, decrements stock and occupies the table — all in one transaction.
func (r *OrdersRepository) CreateOrder(ctx context.Context, userID int64, req domain.OrderCreate) (*domain.OrderView, error) {
	var orderID int64
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		id, err := r.createOrderInTx(ctx, tx, userID, req)
		if err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetOrderByID(ctx, orderID)
}

// CheckoutCart converts the user's cart into an order and clears the cart,
// atomically. Cart line prices are re-fetched from the catalog at checkout
// time; the cart is not price-locked.
func (r *OrdersRepository) CheckoutCart(ctx context.Context, userID int64, req domain.CheckoutRequest) (*domain.OrderView, error) {
	var orderID int64
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		// Locking the cart row serializes concurrent checkouts of the same
		// cart: the loser sees the cleared items and gets ErrEmptyCart.
		var cartID int64
		err := tx.QueryRow(ctx, `SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, userID).Scan(&cartID)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("checkout for user %d: %w", userID, domain.ErrEmptyCart)
		}
		if err != nil {
			return fmt.Errorf("failed to load cart: %w", err)
		}

		rows, err := tx.Query(ctx, `
			SELECT product_id, quantity, special_instructions
			FROM cart_items WHERE cart_id = $1 ORDER BY id`, cartID)
		if err != nil {
			return fmt.Errorf("failed to load cart items: %w", err)
		}
		var items []domain.OrderItemCreate
		for rows.Next() {
			var it domain.OrderItemCreate
			if err := rows.Scan(&it.ProductID, &it.Quantity, &it.SpecialInstructions); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan cart item: %w", err)
			}
			items = append(items, it)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to read cart items: %w", err)
		}
		if len(items) == 0 {
			return fmt.Errorf("checkout for user %d: %w", userID, domain.ErrEmptyCart)
		}

		id, err := r.createOrderInTx(ctx, tx, userID, domain.OrderCreate{
			OrderType:           req.OrderType,
			TableID:             req.TableID,
			DeliveryAddress:     req.DeliveryAddress,
			SpecialInstructions: req.SpecialInstructions,
			Items:               items,
		})
		if err != nil {
			return err
		}
		orderID = id

		if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetOrderByID(ctx, orderID)
}

func (r *OrdersRepository) createOrderInTx(ctx context.Context, tx pgx.Tx, userID int64, req domain.OrderCreate) (int64, error) {
	if len(req.Items) == 0 {
		return 0, fmt.Errorf("order without items: %w", domain.ErrInvalidRequest)
	}

	tableID := req.TableID
	if req.OrderType != domain.OrderTypeDineIn {
		tableID = nil
	}
	if tableID != nil {
		var available, active bool
		err := tx.QueryRow(ctx,
			`SELECT is_available, is_active FROM tables WHERE id = $1 FOR UPDATE`,
			*tableID).Scan(&available, &active)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("table %d: %w", *tableID, domain.ErrNotFound)
		}
		if err != nil {
			return 0, fmt.Errorf("failed to lock table: %w", err)
		}
		if !available || !active {
			return 0, fmt.Errorf("table %d: %w", *tableID, domain.ErrTableUnavailable)
		}
	}

	// Lock every product row first so the whole batch fails before any
	// mutation when one line is short on stock.
	type line struct {
		item      domain.OrderItemCreate
		unitPrice float64
		subtotal  float64
	}
	lines := make([]line, 0, len(req.Items))
	var total float64
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return 0, fmt.Errorf("product %d quantity: %w", item.ProductID, domain.ErrInvalidRequest)
		}
		var (
			name  string
			price float64
			stock int
		)
		err := tx.QueryRow(ctx,
			`SELECT name, price, stock FROM products WHERE id = $1 FOR UPDATE`,
			item.ProductID).Scan(&name, &price, &stock)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("product %d: %w", item.ProductID, domain.ErrNotFound)
		}
		if err != nil {
			return 0, fmt.Errorf("failed to lock product: %w", err)
		}
		if stock < item.Quantity {
			return 0, fmt.Errorf("%s (disponible: %d): %w", name, stock, domain.ErrInsufficientStock)
		}
		subtotal := float64(item.Quantity) * price
		total += subtotal
		lines = append(lines, line{item: item, unitPrice: price, subtotal: subtotal})
	}

	var orderID int64
	err := tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, table_id, order_type, status, special_instructions,
			delivery_address, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id`,
		userID, tableID, req.OrderType, domain.StatusRecibido,
		req.SpecialInstructions, req.DeliveryAddress, total,
	).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, l := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price, subtotal, special_instructions)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			orderID, l.item.ProductID, l.item.Quantity, l.unitPrice, l.subtotal, l.item.SpecialInstructions,
		); err != nil {
			return 0, fmt.Errorf("failed to insert order item %d: %w", l.item.ProductID, err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE products SET stock = GREATEST(stock - $1, 0), updated_at = NOW() WHERE id = $2`,
			l.item.Quantity, l.item.ProductID,
		); err != nil {
			return 0, fmt.Errorf("failed to decrement stock: %w", err)
		}
	}

	if tableID != nil {
		if _, err := tx.Exec(ctx,
			`UPDATE tables SET is_available = FALSE, updated_at = NOW() WHERE id = $1`,
			*tableID,
		); err != nil {
			return 0, fmt.Errorf("failed to occupy table: %w", err)
		}
	}
	return orderID, nil
}

const orderViewSelect = `
	SELECT o.id, o.user_id, COALESCE(u.full_name, 'Usuario'), o.order_type,
	       o.table_id, t.number, t.capacity, o.delivery_address,
	       o.special_instructions, o.status, o.total_amount, o.estimated_time,
	       o.is_paid, o.created_at, o.updated_at
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id
	LEFT JOIN tables t ON t.id = o.table_id`

func scanOrderView(row pgx.Row) (*domain.OrderView, error) {
	var o domain.OrderView
	err := row.Scan(&o.ID, &o.UserID, &o.UserName, &o.OrderType,
		&o.TableID, &o.TableNumber, &o.TableCapacity, &o.DeliveryAddress,
		&o.SpecialInstructions, &o.Status, &o.TotalAmount, &o.EstimatedTime,
		&o.IsPaid, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Items = []domain.OrderItemView{}
	o.Extras = []domain.OrderExtraView{}
	return &o, nil
}

// GetOrderByID loads the order with its items, extras and display fields.
// Items whose product has been deleted render the placeholder name.
func (r *OrdersRepository) GetOrderByID(ctx context.Context, id int64) (*domain.OrderView, error) {
	o, err := scanOrderView(r.db.QueryRow(ctx, orderViewSelect+` WHERE o.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	items, extras, err := r.loadLines(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]
	o.Extras = extras[id]
	if o.Items == nil {
		o.Items = []domain.OrderItemView{}
	}
	if o.Extras == nil {
		o.Extras = []domain.OrderExtraView{}
	}
	return o, nil
}

// ListOrders returns a page of orders newest-first, optionally filtered to a
// single user.
func (r *OrdersRepository) ListOrders(ctx context.Context, f ListOrdersFilter) ([]domain.OrderView, error) {
	if f.Limit <= 0 {
		f.Limit = 100
	}
	query := orderViewSelect
	args := []any{}
	if f.UserID != nil {
		query += ` WHERE o.user_id = $1 ORDER BY o.created_at DESC OFFSET $2 LIMIT $3`
		args = append(args, *f.UserID, f.Skip, f.Limit)
	} else {
		query += ` ORDER BY o.created_at DESC OFFSET $1 LIMIT $2`
		args = append(args, f.Skip, f.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.OrderView{}
	ids := []int64{}
	for rows.Next() {
		o, err := scanOrderView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, extras, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if v := items[orders[i].ID]; v != nil {
			orders[i].Items = v
		}
		if v := extras[orders[i].ID]; v != nil {
			orders[i].Extras = v
		}
	}
	return orders, nil
}

func (r *OrdersRepository) loadLines(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItemView, map[int64][]domain.OrderExtraView, error) {
	itemRows, err := r.db.Query(ctx, `
		SELECT i.order_id, i.id, i.product_id, i.quantity, i.unit_price, i.subtotal,
		       i.special_instructions, p.name, p.image_url
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.id`, orderIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer itemRows.Close()

	items := make(map[int64][]domain.OrderItemView)
	for itemRows.Next() {
		var (
			orderID int64
			it      domain.OrderItemView
			name    *string
			image   *string
		)
		if err := itemRows.Scan(&orderID, &it.ID, &it.ProductID, &it.Quantity,
			&it.UnitPrice, &it.Subtotal, &it.SpecialInstructions, &name, &image); err != nil {
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		it.ProductName = domain.MissingProductName
		if name != nil {
			it.ProductName = *name
		}
		if image != nil {
			it.ProductImage = *image
		}
		items[orderID] = append(items[orderID], it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read order items: %w", err)
	}

	extraRows, err := r.db.Query(ctx, `
		SELECT e.order_id, e.id, e.extra_id, e.quantity, e.unit_price, e.subtotal,
		       x.name, x.image_url
		FROM order_extras e
		LEFT JOIN extras x ON x.id = e.extra_id
		WHERE e.order_id = ANY($1)
		ORDER BY e.id`, orderIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load order extras: %w", err)
	}
	defer extraRows.Close()

	extras := make(map[int64][]domain.OrderExtraView)
	for extraRows.Next() {
		var (
			orderID int64
			ev      domain.OrderExtraView
			name    *string
		)
		if err := extraRows.Scan(&orderID, &ev.ID, &ev.ExtraID, &ev.Quantity,
			&ev.UnitPrice, &ev.Subtotal, &name, &ev.ExtraImage); err != nil {
			return nil, nil, fmt.Errorf("failed to scan order extra: %w", err)
		}
		ev.ExtraName = "Extra"
		if name != nil {
			ev.ExtraName = *name
		}
		ev.IsFree = ev.UnitPrice == 0
		extras[orderID] = append(extras[orderID], ev)
	}
	if err := extraRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read order extras: %w", err)
	}
	return items, extras, nil
}

// UpdateOrderFields applies only the supplied fields. No lifecycle rules run
// here; status changes that must release tables go through SetStatus.
func (r *OrdersRepository) UpdateOrderFields(ctx context.Context, id int64, upd domain.OrderUpdate) (*domain.OrderView, error) {
	sets := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	add := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, v)
		n++
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.SpecialInstructions != nil {
		add("special_instructions", *upd.SpecialInstructions)
	}
	if upd.DeliveryAddress != nil {
		add("delivery_address", *upd.DeliveryAddress)
	}
	if upd.EstimatedTime != nil {
		add("estimated_time", *upd.EstimatedTime)
	}
	if upd.IsPaid != nil {
		add("is_paid", *upd.IsPaid)
	}
	args = append(args, id)

	tag, err := r.db.Exec(ctx,
		fmt.Sprintf(`UPDATE orders SET %s WHERE id = $%d`, strings.Join(sets, ", "), n),
		args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return r.GetOrderByID(ctx, id)
}

// SetStatus persists the new status and applies the terminal-state side
// effect: entering "completado" on a dine-in order releases its table.
func (r *OrdersRepository) SetStatus(ctx context.Context, id int64, status string) (*domain.OrderView, error) {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var (
			orderType string
			tableID   *int64
		)
		err := tx.QueryRow(ctx,
			`SELECT order_type, table_id FROM orders WHERE id = $1 FOR UPDATE`,
			id).Scan(&orderType, &tableID)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock order: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
			status, id); err != nil {
			return fmt.Errorf("failed to update status: %w", err)
		}

		if status == domain.StatusCompletado && orderType == domain.OrderTypeDineIn && tableID != nil {
			if _, err := tx.Exec(ctx,
				`UPDATE tables SET is_available = TRUE, updated_at = NOW() WHERE id = $1`,
				*tableID); err != nil {
				return fmt.Errorf("failed to release table: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetOrderByID(ctx, id)
}

// DeleteOrder cascades item/extra deletion and releases the table when a
// dine-in order is removed before completion.
func (r *OrdersRepository) DeleteOrder(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		var (
			orderType string
			status    string
			tableID   *int64
		)
		err := tx.QueryRow(ctx,
			`SELECT order_type, status, table_id FROM orders WHERE id = $1 FOR UPDATE`,
			id).Scan(&orderType, &status, &tableID)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock order: %w", err)
		}

		if orderType == domain.OrderTypeDineIn && tableID != nil && status != domain.StatusCompletado {
			if _, err := tx.Exec(ctx,
				`UPDATE tables SET is_available = TRUE, updated_at = NOW() WHERE id = $1`,
				*tableID); err != nil {
				return fmt.Errorf("failed to release table: %w", err)
			}
		}
		if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}

// AddExtras validates the whole batch (availability and stock, under row
// locks) before any mutation, then appends the lines, decrements extra stock
// and bumps the order total. No partial application.
func (r *OrdersRepository) AddExtras(ctx context.Context, orderID int64, extras []domain.OrderExtraCreate) ([]domain.OrderExtraView, error) {
	if len(extras) == 0 {
		return nil, fmt.Errorf("empty extras batch: %w", domain.ErrInvalidRequest)
	}

	var added []domain.OrderExtraView
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, orderID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check order: %w", err)
		}
		if !exists {
			return fmt.Errorf("order %d: %w", orderID, domain.ErrNotFound)
		}

		type picked struct {
			req       domain.OrderExtraCreate
			name      string
			image     *string
			unitPrice float64
			subtotal  float64
			isFree    bool
		}
		batch := make([]picked, 0, len(extras))
		var total float64
		for _, req := range extras {
			if req.Quantity < 1 {
				return fmt.Errorf("extra %d quantity: %w", req.ExtraID, domain.ErrInvalidRequest)
			}
			var (
				name      string
				image     *string
				price     float64
				available bool
				isFree    bool
				stock     int
			)
			err := tx.QueryRow(ctx, `
				SELECT name, image_url, price, is_available, is_free, stock
				FROM extras WHERE id = $1 FOR UPDATE`,
				req.ExtraID).Scan(&name, &image, &price, &available, &isFree, &stock)
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("extra %d: %w", req.ExtraID, domain.ErrNotFound)
			}
			if err != nil {
				return fmt.Errorf("failed to lock extra: %w", err)
			}
			if !available {
				return fmt.Errorf("extra %s no disponible: %w", name, domain.ErrInvalidRequest)
			}
			if stock < req.Quantity {
				return fmt.Errorf("%s (disponible: %d): %w", name, stock, domain.ErrInsufficientStock)
			}
			unitPrice := price
			if isFree {
				unitPrice = 0
			}
			subtotal := unitPrice * float64(req.Quantity)
			total += subtotal
			batch = append(batch, picked{req: req, name: name, image: image, unitPrice: unitPrice, subtotal: subtotal, isFree: isFree})
		}

		for _, p := range batch {
			var (
				id        int64
				createdAt time.Time
			)
			err := tx.QueryRow(ctx, `
				INSERT INTO order_extras (order_id, extra_id, quantity, unit_price, subtotal, created_at)
				VALUES ($1, $2, $3, $4, $5, NOW())
				RETURNING id, created_at`,
				orderID, p.req.ExtraID, p.req.Quantity, p.unitPrice, p.subtotal,
			).Scan(&id, &createdAt)
			if err != nil {
				return fmt.Errorf("failed to insert order extra: %w", err)
			}
			if _, err := tx.Exec(ctx,
				`UPDATE extras SET stock = GREATEST(stock - $1, 0), updated_at = NOW() WHERE id = $2`,
				p.req.Quantity, p.req.ExtraID); err != nil {
				return fmt.Errorf("failed to decrement extra stock: %w", err)
			}
			added = append(added, domain.OrderExtraView{
				ID:         id,
				ExtraID:    p.req.ExtraID,
				Quantity:   p.req.Quantity,
				UnitPrice:  p.unitPrice,
				Subtotal:   p.subtotal,
				ExtraName:  p.name,
				ExtraImage: p.image,
				IsFree:     p.isFree,
			})
		}

		if _, err := tx.Exec(ctx,
			`UPDATE orders SET total_amount = total_amount + $1, updated_at = NOW() WHERE id = $2`,
			total, orderID); err != nil {
			return fmt.Errorf("failed to update order total: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

func (r *OrdersRepository) ListOrderExtras(ctx context.Context, orderID int64) ([]domain.OrderExtraView, error) {
	_, extras, err := r.loadLines(ctx, []int64{orderID})
	if err != nil {
		return nil, err
	}
	if extras[orderID] == nil {
		return []domain.OrderExtraView{}, nil
	}
	return extras[orderID], nil
}

func (r *OrdersRepository) GetOrderExtra(ctx context.Context, orderExtraID int64) (*domain.OrderExtra, error) {
	var e domain.OrderExtra
	err := r.db.QueryRow(ctx, `
		SELECT id, order_id, extra_id, quantity, unit_price, subtotal, created_at
		FROM order_extras WHERE id = $1`, orderExtraID,
	).Scan(&e.ID, &e.OrderID, &e.ExtraID, &e.Quantity, &e.UnitPrice, &e.Subtotal, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("order extra %d: %w", orderExtraID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order extra: %w", err)
	}
	return &e, nil
}

// RemoveExtra restores the extra's stock, decrements the order total (clamped
// at zero) and deletes the line, in one transaction.
func (r *OrdersRepository) RemoveExtra(ctx context.Context, orderExtraID int64) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		var (
			orderID  int64
			extraID  int64
			quantity int
			subtotal float64
		)
		err := tx.QueryRow(ctx, `
			SELECT order_id, extra_id, quantity, subtotal
			FROM order_extras WHERE id = $1 FOR UPDATE`,
			orderExtraID).Scan(&orderID, &extraID, &quantity, &subtotal)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("order extra %d: %w", orderExtraID, domain.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to lock order extra: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE extras SET stock = stock + $1, updated_at = NOW() WHERE id = $2`,
			quantity, extraID); err != nil {
			return fmt.Errorf("failed to restore extra stock: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE orders SET total_amount = GREATEST(total_amount - $1, 0), updated_at = NOW() WHERE id = $2`,
			subtotal, orderID); err != nil {
			return fmt.Errorf("failed to update order total: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_extras WHERE id = $1`, orderExtraID); err != nil {
			return fmt.Errorf("failed to delete order extra: %w", err)
		}
		return nil
	})
}
