package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"sanjose-park/backend/internal/warehouse/domain"
)

const uniqueViolation = "23505"

// warehouseColumns is the column list every row scan uses; keep in sync with
// scanWarehouse.
const warehouseColumns = `id, nombre, slug, descripcion, sector, logotipo_url,
	sitio_web, contacto_email, contacto_telefono, direccion_bodega, estado,
	fecha_creacion, fecha_actualizacion`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Warehouse, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+warehouseColumns+` FROM warehouse ORDER BY fecha_creacion DESC`)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var out []*domain.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// GetByID returns the listing for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Warehouse, error) {
	w, err := scanWarehouse(r.db.QueryRowContext(ctx,
		`SELECT `+warehouseColumns+` FROM warehouse WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

func (r *PostgresRepository) Create(ctx context.Context, w *domain.Warehouse) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO warehouse (id, nombre, slug, descripcion, sector, logotipo_url,
			sitio_web, contacto_email, contacto_telefono, direccion_bodega, estado,
			fecha_creacion, fecha_actualizacion)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		w.ID, w.Name, w.Slug, w.Description, w.Sector, w.LogoURL,
		w.Website, w.ContactEmail, w.ContactPhone, w.Address, w.Status,
		w.CreatedAt, w.UpdatedAt)
	if err != nil {
		return translateUnique(err)
	}
	return nil
}

// warehouseUpdateColumns maps patchable change keys to columns, in a fixed
// order so generated SQL is deterministic.
var warehouseUpdateColumns = []string{"nombre", "slug", "descripcion", "sector",
	"logotipo_url", "sitio_web", "contacto_email", "contacto_telefono",
	"direccion_bodega", "estado"}

// Update applies the given column changes and returns the stored row, or nil
// when no row matched. fecha_actualizacion is always refreshed.
func (r *PostgresRepository) Update(ctx context.Context, id string, changes map[string]any) (*domain.Warehouse, error) {
	var sets []string
	var args []any
	for _, col := range warehouseUpdateColumns {
		v, ok := changes[col]
		if !ok {
			continue
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(sets) == 0 {
		return nil, nil
	}
	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("fecha_actualizacion = $%d", len(args)))
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE warehouse SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
		args...)
	if err != nil {
		return nil, translateUnique(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

// Delete removes the listing row. Returns false when no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM warehouse WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete warehouse: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWarehouse(row rowScanner) (*domain.Warehouse, error) {
	var w domain.Warehouse
	err := row.Scan(&w.ID, &w.Name, &w.Slug, &w.Description, &w.Sector,
		&w.LogoURL, &w.Website, &w.ContactEmail, &w.ContactPhone,
		&w.Address, &w.Status, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return fmt.Errorf("db error: %w", err)
}
