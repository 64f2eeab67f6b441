package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"sanjose-park/backend/internal/user/domain"
)

const uniqueViolation = "23505"

// userColumns is the column list every row scan uses; keep in sync with scanUser.
const userColumns = `id, nombre_usuario, email, contrasena, rol, activo,
	two_factor_enabled, two_factor_code, two_factor_expires_at, created_at, updated_at`

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository backed by the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM usuarios ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetByID returns the user for id, or nil if not found. It returns an error
// only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id)
}

// GetByHandle returns the user with the given handle, or nil if not found.
func (r *PostgresRepository) GetByHandle(ctx context.Context, handle string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM usuarios WHERE nombre_usuario = $1`, handle)
}

// FindByHandleOrEmail returns any user holding either unique value, or nil.
func (r *PostgresRepository) FindByHandleOrEmail(ctx context.Context, handle, email string) (*domain.User, error) {
	return r.getOne(ctx,
		`SELECT `+userColumns+` FROM usuarios WHERE nombre_usuario = $1 OR email = $2`,
		handle, email)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// Create persists the user. The user must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO usuarios (id, nombre_usuario, email, contrasena, rol, activo,
			two_factor_enabled, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Handle, u.Email, u.PasswordHash, string(u.Role), u.Active,
		u.TwoFactorEnabled, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return translateUnique(err)
	}
	return nil
}

// userUpdateColumns maps patchable change keys to columns, in a fixed order
// so generated SQL is deterministic.
var userUpdateColumns = []string{"nombre_usuario", "email", "contrasena", "rol", "activo", "two_factor_enabled"}

// Update applies the given column changes to the user row. Keys not in the
// allowed set are ignored. Returns false when no row matched.
func (r *PostgresRepository) Update(ctx context.Context, id string, changes map[string]any) (bool, error) {
	var sets []string
	var args []any
	for _, col := range userUpdateColumns {
		v, ok := changes[col]
		if !ok {
			continue
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if len(sets) == 0 {
		return false, nil
	}
	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`UPDATE usuarios SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
		args...)
	if err != nil {
		return false, translateUnique(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes the user row. Returns false when no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PostgresRepository) SetChallenge(ctx context.Context, id, code string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE usuarios SET two_factor_code = $1, two_factor_expires_at = $2, updated_at = $3 WHERE id = $4`,
		code, expiresAt, time.Now().UTC(), id)
	return err
}

func (r *PostgresRepository) ClearChallenge(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE usuarios SET two_factor_code = NULL, two_factor_expires_at = NULL, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	return err
}

func (r *PostgresRepository) SetTwoFactorEnabled(ctx context.Context, id string, enabled bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE usuarios SET two_factor_enabled = $1,
			two_factor_code = CASE WHEN $1 THEN two_factor_code ELSE NULL END,
			two_factor_expires_at = CASE WHEN $1 THEN two_factor_expires_at ELSE NULL END,
			updated_at = $2
		 WHERE id = $3`,
		enabled, time.Now().UTC(), id)
	return err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u       domain.User
		role    string
		code    sql.NullString
		expires sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Handle, &u.Email, &u.PasswordHash, &role, &u.Active,
		&u.TwoFactorEnabled, &code, &expires, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	if code.Valid {
		u.TwoFactorCode = code.String
	}
	if expires.Valid {
		u.TwoFactorExpiresAt = expires.Time
	}
	return &u, nil
}

func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &DuplicateError{Constraint: pgErr.ConstraintName}
	}
	return fmt.Errorf("db error: %w", err)
}
