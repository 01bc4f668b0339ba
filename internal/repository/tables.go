package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurante-backend/internal/domain"
)

type TablesRepositoryInterface interface {
	List(ctx context.Context, activeOnly bool) ([]domain.Table, error)
	ListAvailable(ctx context.Context) ([]domain.Table, error)
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
	Create(ctx context.Context, req domain.TableCreate) (*domain.Table, error)
	Update(ctx context.Context, id int64, upd domain.TableUpdate) (*domain.Table, error)
	UpdatePosition(ctx context.Context, id int64, pos domain.TablePosition) (*domain.Table, error)
	Deactivate(ctx context.Context, id int64) error
	StatusViews(ctx context.Context) ([]domain.TableStatusView, error)
}

type TablesRepository struct {
	db *pgxpool.Pool
}

func NewTablesRepository(db *pgxpool.Pool) *TablesRepository {
	return &TablesRepository{db: db}
}

const tableColumns = `id, number, capacity, position_x, position_y, is_available, is_active, created_at, updated_at`

func scanTable(row pgx.Row) (*domain.Table, error) {
	var t domain.Table
	err := row.Scan(&t.ID, &t.Number, &t.Capacity, &t.PositionX, &t.PositionY,
		&t.IsAvailable, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TablesRepository) List(ctx context.Context, activeOnly bool) ([]domain.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY number`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()
	return collectTables(rows)
}

func (r *TablesRepository) ListAvailable(ctx context.Context) ([]domain.Table, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+tableColumns+` FROM tables WHERE is_active AND is_available ORDER BY number`)
	if err != nil {
		return nil, fmt.Errorf("failed to list available tables: %w", err)
	}
	defer rows.Close()
	return collectTables(rows)
}

func collectTables(rows pgx.Rows) ([]domain.Table, error) {
	tables := []domain.Table{}
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tables: %w", err)
	}
	return tables, nil
}

func (r *TablesRepository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	t, err := scanTable(r.db.QueryRow(ctx,
		`SELECT `+tableColumns+` FROM tables WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load table: %w", err)
	}
	return t, nil
}

func (r *TablesRepository) Create(ctx context.Context, req domain.TableCreate) (*domain.Table, error) {
	t, err := scanTable(r.db.QueryRow(ctx, `
		INSERT INTO tables (number, capacity, position_x, position_y, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING `+tableColumns,
		req.Number, req.Capacity, req.PositionX, req.PositionY))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("table number %d taken: %w", req.Number, domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return t, nil
}

func (r *TablesRepository) Update(ctx context.Context, id int64, upd domain.TableUpdate) (*domain.Table, error) {
	t, err := scanTable(r.db.QueryRow(ctx, `
		UPDATE tables SET
			number = COALESCE($1, number),
			capacity = COALESCE($2, capacity),
			position_x = COALESCE($3, position_x),
			position_y = COALESCE($4, position_y),
			is_available = COALESCE($5, is_available),
			is_active = COALESCE($6, is_active),
			updated_at = NOW()
		WHERE id = $7
		RETURNING `+tableColumns,
		upd.Number, upd.Capacity, upd.PositionX, upd.PositionY,
		upd.IsAvailable, upd.IsActive, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("table number taken: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update table: %w", err)
	}
	return t, nil
}

func (r *TablesRepository) UpdatePosition(ctx context.Context, id int64, pos domain.TablePosition) (*domain.Table, error) {
	t, err := scanTable(r.db.QueryRow(ctx, `
		UPDATE tables SET position_x = $1, position_y = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+tableColumns,
		pos.PositionX, pos.PositionY, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("table %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to move table: %w", err)
	}
	return t, nil
}

// Deactivate soft-deletes: historical orders keep their table reference.
func (r *TablesRepository) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tables SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("table %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// StatusViews is the floor plan: every active table with its in-flight orders.
func (r *TablesRepository) StatusViews(ctx context.Context) ([]domain.TableStatusView, error) {
	tables, err := r.List(ctx, true)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT table_id, id, status, created_at
		FROM orders
		WHERE table_id IS NOT NULL AND status = ANY($1)
		ORDER BY created_at`, domain.ActiveStatuses())
	if err != nil {
		return nil, fmt.Errorf("failed to load active orders: %w", err)
	}
	defer rows.Close()

	active := make(map[int64][]domain.ActiveOrderInfo)
	for rows.Next() {
		var (
			tableID int64
			info    domain.ActiveOrderInfo
		)
		if err := rows.Scan(&tableID, &info.OrderID, &info.Status, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan active order: %w", err)
		}
		active[tableID] = append(active[tableID], info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read active orders: %w", err)
	}

	views := make([]domain.TableStatusView, 0, len(tables))
	for _, t := range tables {
		orders := active[t.ID]
		if orders == nil {
			orders = []domain.ActiveOrderInfo{}
		}
		views = append(views, domain.TableStatusView{
			ID:                t.ID,
			Number:            t.Number,
			Capacity:          t.Capacity,
			PositionX:         t.PositionX,
			PositionY:         t.PositionY,
			IsAvailable:       t.IsAvailable,
			ActiveOrders:      orders,
			ActiveOrdersCount: len(orders),
		})
	}
	return views, nil
}
