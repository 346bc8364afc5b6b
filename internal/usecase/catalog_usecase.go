package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateProductInput defines the data required to create a flat-priced product.
// Variants are attached afterwards through AddVariant.
type CreateProductInput struct {
	Name        string
	Description string
	CategoryIDs []uuid.UUID
	Price       int64
	Stock       int64
	HasVariants bool
	Images      []string
}

// UpdateProductInput carries optional field updates; nil pointers leave the
// current value untouched.
type UpdateProductInput struct {
	Name        *string
	Description *string
	CategoryIDs []uuid.UUID
	Price       *int64
	Stock       *int64
	Images      []string
}

// AddVariantInput defines the data required to attach a variant to a product.
type AddVariantInput struct {
	SKU        string
	Attributes entity.Attributes
	Price      int64
	Stock      int64
	Images     []string
}

// UpdateVariantInput carries optional variant field updates. Incoming
// attributes are merged into the existing set by key, then re-normalized.
type UpdateVariantInput struct {
	Attributes entity.Attributes
	Price      *int64
	Stock      *int64
	Images     []string
}

// CatalogUsecase defines the interface for catalog browsing and administration.
type CatalogUsecase interface {
	// ListProducts returns the whole catalog, newest first.
	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// GetProduct returns one product with its variants.
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// CreateProduct creates a product. Admin capability required.
	CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error)

	// UpdateProduct updates a product's own fields. Admin capability required.
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*entity.Product, error)

	// DeleteProduct removes a product and its variants. Admin capability required.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// AddVariant attaches a variant, enforcing normalized attribute uniqueness
	// within the product and switching the product to variant pricing.
	AddVariant(ctx context.Context, productID uuid.UUID, input AddVariantInput) (*entity.Variant, error)

	// UpdateVariant updates a variant, re-checking attribute uniqueness.
	UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, input UpdateVariantInput) (*entity.Variant, error)

	// DeleteVariant removes a variant. Admin capability required.
	DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error
}

// CategoryInput defines the data for category create/update.
type CategoryInput struct {
	Name        string
	Description string
}

// CategoryUsecase defines the interface for category management.
type CategoryUsecase interface {
	// ListCategories returns all categories ordered by name.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// GetCategory returns one category.
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// CreateCategory creates a category. Admin capability required.
	CreateCategory(ctx context.Context, input CategoryInput) (*entity.Category, error)

	// UpdateCategory updates a category. Admin capability required.
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*entity.Category, error)

	// DeleteCategory removes a category. Admin capability required.
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
