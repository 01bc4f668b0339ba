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

type ExtraFilter struct {
	Category  *string
	Available *bool
	Free      *bool
}

type ExtrasRepositoryInterface interface {
	List(ctx context.Context, f ExtraFilter) ([]domain.Extra, error)
	GetByID(ctx context.Context, id int64) (*domain.Extra, error)
	Create(ctx context.Context, req domain.ExtraCreate) (*domain.Extra, error)
	Update(ctx context.Context, id int64, upd domain.ExtraUpdate) (*domain.Extra, error)
	Delete(ctx context.Context, id int64) error
}

type ExtrasRepository struct {
	db *pgxpool.Pool
}

func NewExtrasRepository(db *pgxpool.Pool) *ExtrasRepository {
	return &ExtrasRepository{db: db}
}

const extraColumns = `id, name, description, price, category, is_available, is_free, stock, image_url, created_at, updated_at`

func scanExtra(row pgx.Row) (*domain.Extra, error) {
	var e domain.Extra
	err := row.Scan(&e.ID, &e.Name, &e.Description, &e.Price, &e.Category,
		&e.IsAvailable, &e.IsFree, &e.Stock, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExtrasRepository) List(ctx context.Context, f ExtraFilter) ([]domain.Extra, error) {
	where := []string{}
	args := []any{}
	n := 1
	if f.Category != nil {
		where = append(where, fmt.Sprintf("category = $%d", n))
		args = append(args, *f.Category)
		n++
	}
	if f.Available != nil {
		where = append(where, fmt.Sprintf("is_available = $%d", n))
		args = append(args, *f.Available)
		n++
	}
	if f.Free != nil {
		where = append(where, fmt.Sprintf("is_free = $%d", n))
		args = append(args, *f.Free)
		n++
	}
	query := `SELECT ` + extraColumns + ` FROM extras`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list extras: %w", err)
	}
	defer rows.Close()

	extras := []domain.Extra{}
	for rows.Next() {
		e, err := scanExtra(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan extra: %w", err)
		}
		extras = append(extras, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read extras: %w", err)
	}
	return extras, nil
}

func (r *ExtrasRepository) GetByID(ctx context.Context, id int64) (*domain.Extra, error) {
	e, err := scanExtra(r.db.QueryRow(ctx,
		`SELECT `+extraColumns+` FROM extras WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("extra %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load extra: %w", err)
	}
	return e, nil
}

func (r *ExtrasRepository) Create(ctx context.Context, req domain.ExtraCreate) (*domain.Extra, error) {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	free := false
	if req.IsFree != nil {
		free = *req.IsFree
	}
	e, err := scanExtra(r.db.QueryRow(ctx, `
		INSERT INTO extras (name, description, price, category, is_available, is_free, stock, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING `+extraColumns,
		req.Name, req.Description, req.Price, req.Category, available, free, req.Stock, req.ImageURL))
	if err != nil {
		return nil, fmt.Errorf("failed to create extra: %w", err)
	}
	return e, nil
}

func (r *ExtrasRepository) Update(ctx context.Context, id int64, upd domain.ExtraUpdate) (*domain.Extra, error) {
	e, err := scanExtra(r.db.QueryRow(ctx, `
		UPDATE extras SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			price = COALESCE($3, price),
			category = COALESCE($4, category),
			is_available = COALESCE($5, is_available),
			is_free = COALESCE($6, is_free),
			stock = COALESCE($7, stock),
			image_url = COALESCE($8, image_url),
			updated_at = NOW()
		WHERE id = $9
		RETURNING `+extraColumns,
		upd.Name, upd.Description, upd.Price, upd.Category, upd.IsAvailable,
		upd.IsFree, upd.Stock, upd.ImageURL, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("extra %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update extra: %w", err)
	}
	return e, nil
}

func (r *ExtrasRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM extras WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete extra: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("extra %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
