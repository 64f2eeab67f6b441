// Package repository persists news articles.
package repository

import (
	"context"
	"errors"

	"sanjose-park/backend/internal/news/domain"
)

// ErrDuplicateSlug is returned when an insert or update collides with the
// unique slug constraint.
var ErrDuplicateSlug = errors.New("news: duplicate slug")

type Repository interface {
	List(ctx context.Context) ([]*domain.Article, error)
	GetByID(ctx context.Context, id string) (*domain.Article, error)
	Create(ctx context.Context, a *domain.Article) error
	Update(ctx context.Context, id string, changes map[string]any) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
