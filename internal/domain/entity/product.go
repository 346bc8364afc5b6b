// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item. Exactly one pricing mode is active at a time:
// either the flat Price/Stock pair (HasVariants false) or the Variants list
// (HasVariants true, flat fields zeroed).
type Product struct {
	ID          uuid.UUID   // The unique identifier of the product.
	Name        string      // The display name shown in listings and frozen into orders.
	Description string      // Free-form product description.
	CategoryIDs []uuid.UUID // References to the categories this product belongs to.
	Price       int64       // Flat unit price in minor units; meaningful only when HasVariants is false.
	Stock       int64       // Flat stock quantity; meaningful only when HasVariants is false.
	HasVariants bool        // Pricing mode switch.
	Variants    []Variant   // Priced and stocked configurations; empty when HasVariants is false.
	Images      []string    // Image URLs, stored as opaque strings.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant is a specific priced/stocked configuration of a product,
// distinguished by its normalized attribute set.
type Variant struct {
	ID         uuid.UUID  // The unique identifier of the variant.
	ProductID  uuid.UUID  // The owning product.
	SKU        string     // Stock keeping unit.
	Attributes Attributes // Normalized attribute set, unique within the product.
	Price      int64      // Unit price in minor units.
	Stock      int64      // Available stock quantity.
	Images     []string   // Variant image URLs.
}

// FindVariant returns the variant with the given ID, or nil if absent.
func (p *Product) FindVariant(variantID uuid.UUID) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}

	return nil
}

// HasDuplicateVariant reports whether any variant other than excludeID already
// carries the given normalized attribute set.
func (p *Product) HasDuplicateVariant(attrs Attributes, excludeID uuid.UUID) bool {
	for i := range p.Variants {
		if p.Variants[i].ID == excludeID {
			continue
		}
		if p.Variants[i].Attributes.Equal(attrs) {
			return true
		}
	}

	return false
}

// SwitchToVariantPricing converts a flat-priced product to variant pricing,
// clearing the flat price and stock so only one mode is ever active.
func (p *Product) SwitchToVariantPricing() {
	if p.HasVariants {
		return
	}
	p.HasVariants = true
	p.Price = 0
	p.Stock = 0
}

// SwitchToFlatPricing converts a variant-priced product back to flat pricing.
// Called when the last variant is removed.
func (p *Product) SwitchToFlatPricing(price, stock int64) {
	p.HasVariants = false
	p.Variants = nil
	p.Price = price
	p.Stock = stock
}
