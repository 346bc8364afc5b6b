// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartLineView is the presentation shape of one cart line. For a
// variant-bearing line only the chosen variant's attributes and images are
// surfaced, never the product's full variant list; for a plain line the
// Variant field is omitted entirely. This is a read-only projection and must
// not be confused with the persisted line shape.
type CartLineView struct {
	ProductID   uuid.UUID         `json:"productId"`
	ProductName string            `json:"productName"`
	Thumbnail   string            `json:"thumbnail,omitempty"`
	Variant     *CartVariantView  `json:"variant,omitempty"`
	Quantity    int64             `json:"quantity"`
	UnitPrice   int64             `json:"unitPrice"`
	LineTotal   int64             `json:"lineTotal"`
}

// CartVariantView carries only the chosen variant's details.
type CartVariantView struct {
	VariantID  uuid.UUID         `json:"variantId"`
	Attributes entity.Attributes `json:"attributes"`
	Images     []string          `json:"images,omitempty"`
}

// CartView is the presentation shape of the whole cart.
type CartView struct {
	Lines []CartLineView `json:"lines"`
	Total int64          `json:"total"`
}

// CartUsecase defines the interface for cart management use cases.
type CartUsecase interface {
	// AddLine resolves the unit price from the catalog and adds or merges a
	// line for the (product, variant) pair, persisting the updated cart.
	AddLine(ctx context.Context, userID, productID uuid.UUID, variantID *uuid.UUID, quantity int64) (*entity.Cart, error)

	// ChangeLineQuantity applies a +1/-1 delta with a live stock check; a line
	// dropping below quantity 1 is removed entirely.
	ChangeLineQuantity(ctx context.Context, userID, productID uuid.UUID, variantID *uuid.UUID, delta int64) (*entity.Cart, error)

	// RemoveLine deletes the matching line; removing an absent line is not an error.
	RemoveLine(ctx context.Context, userID, productID uuid.UUID, variantID *uuid.UUID) (*entity.Cart, error)

	// Clear empties the user's cart.
	Clear(ctx context.Context, userID uuid.UUID) error

	// GetCart returns the presentation view of the user's cart. A user with no
	// cart yet gets an empty view, not an error.
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)
}
