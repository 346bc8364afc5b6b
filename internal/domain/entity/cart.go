// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one entry in a cart: a product, an optional variant, and a
// quantity with the unit price captured at add-time. A nil VariantID means the
// product's flat price applies; variant-less and variant-bearing lines for the
// same product are distinct lines.
type CartLine struct {
	ProductID uuid.UUID  // The referenced product.
	VariantID *uuid.UUID // The chosen variant, nil for flat-priced products.
	Quantity  int64      // Always >= 1; a line that would drop below 1 is removed instead.
	UnitPrice int64      // Unit price in minor units, captured when the line was added.
	LineTotal int64      // UnitPrice * Quantity, kept in sync on every mutation.
}

// Matches reports whether the line targets the given (product, variant) pair.
func (l *CartLine) Matches(productID uuid.UUID, variantID *uuid.UUID) bool {
	if l.ProductID != productID {
		return false
	}

	return sameVariantRef(l.VariantID, variantID)
}

// Cart is the per-user mutable collection of cart lines with a cached total.
// Every mutation must go through the methods below so the invariant
// Total == sum of line totals holds after each change.
type Cart struct {
	ID        uuid.UUID
	UserID    uuid.UUID // Owner; exactly one cart exists per user.
	Lines     []CartLine
	Total     int64 // Cached sum of LineTotal over all lines, in minor units.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCart creates an empty cart for the user. Carts are created lazily on the
// first add.
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		ID:     uuid.New(),
		UserID: userID,
	}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// FindLine returns the line matching the (product, variant) pair, or nil.
func (c *Cart) FindLine(productID uuid.UUID, variantID *uuid.UUID) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].Matches(productID, variantID) {
			return &c.Lines[i]
		}
	}

	return nil
}

// AddLine merges the quantity into an existing line for the same
// (product, variant) pair, or appends a new line. The unit price of an
// existing line is kept; price is captured once, at first add.
func (c *Cart) AddLine(productID uuid.UUID, variantID *uuid.UUID, quantity, unitPrice int64) {
	if line := c.FindLine(productID, variantID); line != nil {
		line.Quantity += quantity
		line.LineTotal = line.UnitPrice * line.Quantity
		c.recalculateTotal()

		return
	}

	c.Lines = append(c.Lines, CartLine{
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		LineTotal: unitPrice * quantity,
	})
	c.recalculateTotal()
}

// AdjustLineQuantity applies a signed delta to the matching line. When the
// resulting quantity drops below 1 the line is removed entirely, never clamped
// to zero. Returns false if no matching line exists.
func (c *Cart) AdjustLineQuantity(productID uuid.UUID, variantID *uuid.UUID, delta int64) bool {
	for i := range c.Lines {
		if !c.Lines[i].Matches(productID, variantID) {
			continue
		}

		newQuantity := c.Lines[i].Quantity + delta
		if newQuantity < 1 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		} else {
			c.Lines[i].Quantity = newQuantity
			c.Lines[i].LineTotal = c.Lines[i].UnitPrice * newQuantity
		}
		c.recalculateTotal()

		return true
	}

	return false
}

// RemoveLine deletes the matching line if present. Removing an absent line is
// not an error; the call is idempotent.
func (c *Cart) RemoveLine(productID uuid.UUID, variantID *uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].Matches(productID, variantID) {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)

			break
		}
	}
	c.recalculateTotal()
}

// Clear empties all lines and zeroes the total.
func (c *Cart) Clear() {
	c.Lines = nil
	c.Total = 0
}

func (c *Cart) recalculateTotal() {
	var total int64
	for i := range c.Lines {
		total += c.Lines[i].LineTotal
	}
	c.Total = total
}

// sameVariantRef compares two optional variant references. Two nils match;
// a nil never matches a concrete variant.
func sameVariantRef(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}
