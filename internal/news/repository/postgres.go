package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"sanjose-park/backend/internal/news/domain"
)

const uniqueViolation = "23505"

// newsColumns is the column list every row scan uses; keep in sync with scanArticle.
const newsColumns = `id, titulo, slug, resumen, contenido, imagen_destacada,
	categoria, autor, estado, created_at, updated_at`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Article, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+newsColumns+` FROM news ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	var out []*domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GetByID returns the article for id, or nil if not found.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Article, error) {
	a, err := scanArticle(r.db.QueryRowContext(ctx,
		`SELECT `+newsColumns+` FROM news WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a *domain.Article) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO news (id, titulo, slug, resumen, contenido, imagen_destacada,
			categoria, autor, estado, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.Title, a.Slug, a.Summary, a.Content, a.FeaturedImage,
		a.Category, a.Author, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return translateUnique(err)
	}
	return nil
}

// newsUpdateColumns maps patchable change keys to columns, in a fixed order
// so generated SQL is deterministic.
var newsUpdateColumns = []string{"titulo", "slug", "resumen", "contenido",
	"imagen_destacada", "categoria", "autor", "estado"}

// Update applies the given column changes. Keys not in the allowed set are
// ignored. Returns false when no row matched.
func (r *PostgresRepository) Update(ctx context.Context, id string, changes map[string]any) (bool, error) {
	var sets []string
	var args []any
	for _, col := range newsUpdateColumns {
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
		fmt.Sprintf(`UPDATE news SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args)),
		args...)
	if err != nil {
		return false, translateUnique(err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes the article row. Returns false when no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete news: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	var a domain.Article
	err := row.Scan(&a.ID, &a.Title, &a.Slug, &a.Summary, &a.Content,
		&a.FeaturedImage, &a.Category, &a.Author, &a.Status,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateSlug
	}
	return fmt.Errorf("db error: %w", err)
}
