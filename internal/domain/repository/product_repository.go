// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for catalog persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrVariantNotFound is returned when a variant is not found on the product.
	ErrVariantNotFound = errors.New("variant not found")
	// ErrInsufficientStock is returned when a conditional stock decrement matched no row,
	// meaning the remaining stock was lower than the requested quantity.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ProductRepository defines the standard operations for catalog persistence.
// The application layer depends on this interface, not the concrete implementation.
type ProductRepository interface {
	// FindByID retrieves a product with its variants. Returns a point-in-time
	// read; callers must not assume price or stock stay valid afterwards.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindVariant retrieves a single variant of a product.
	FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*entity.Variant, error)

	// List retrieves all products, newest first.
	List(ctx context.Context) ([]*entity.Product, error)

	// Create persists a new product, including any variants.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product's own fields (not its variants).
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product and its variants.
	Delete(ctx context.Context, id uuid.UUID) error

	// CreateVariant appends a variant to a product.
	CreateVariant(ctx context.Context, variant *entity.Variant) error

	// UpdateVariant modifies an existing variant.
	UpdateVariant(ctx context.Context, variant *entity.Variant) error

	// DeleteVariant removes a variant from a product.
	DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error

	// DecrementStock atomically subtracts quantity from the product's flat stock
	// (variantID nil) or the variant's stock. The update is conditional: it only
	// applies when the remaining stock is at least quantity. A missed write is
	// classified as ErrProductNotFound/ErrVariantNotFound when the target row
	// is gone, and ErrInsufficientStock otherwise. This is the guarantee that
	// makes stock enforcement safe under concurrent requests.
	DecrementStock(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int64) error
}
