// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// ErrCartNotFound is returned when no cart exists for the user.
var ErrCartNotFound = errors.New("cart not found")

// CartRepository defines the interface for cart persistence. A user has at
// most one cart; carts are created lazily on the first add.
type CartRepository interface {
	// FindByUserID retrieves the user's cart with all lines.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// Save upserts the cart: the full line set and the cached total are
	// replaced in one atomic write.
	Save(ctx context.Context, cart *entity.Cart) error

	// Clear empties the user's cart lines and zeroes the total.
	Clear(ctx context.Context, userID uuid.UUID) error
}
