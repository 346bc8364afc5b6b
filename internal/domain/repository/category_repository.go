// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the interface for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a single category.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]*entity.Category, error)

	// CountByIDs counts how many of the given IDs exist. Used to validate
	// category references on product create/update in one query.
	CountByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// Update modifies an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category. Products keep dangling references; the
	// catalog tolerates those on read.
	Delete(ctx context.Context, id uuid.UUID) error
}
