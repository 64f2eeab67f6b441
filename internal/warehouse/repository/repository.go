// Package repository persists warehouse listings.
package repository

import (
	"context"
	"errors"

	"sanjose-park/backend/internal/warehouse/domain"
)

// ErrDuplicate is returned when an insert or update collides with the unique
// nombre or slug constraints.
var ErrDuplicate = errors.New("warehouse: duplicate nombre or slug")

type Repository interface {
	List(ctx context.Context) ([]*domain.Warehouse, error)
	GetByID(ctx context.Context, id string) (*domain.Warehouse, error)
	Create(ctx context.Context, w *domain.Warehouse) error
	Update(ctx context.Context, id string, changes map[string]any) (*domain.Warehouse, error)
	Delete(ctx context.Context, id string) (bool, error)
}
