package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertTotalInvariant checks that the cached total equals the sum of line totals.
func assertTotalInvariant(t *testing.T, cart *Cart) {
	t.Helper()

	var sum int64
	for _, line := range cart.Lines {
		sum += line.LineTotal
	}
	assert.Equal(t, sum, cart.Total)
}

func TestCart_AddLine_MergesSamePair(t *testing.T) {
	cart := NewCart(uuid.New())
	productID := uuid.New()

	cart.AddLine(productID, nil, 2, 1000)
	cart.AddLine(productID, nil, 3, 1000)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, int64(5), cart.Lines[0].Quantity)
	assert.Equal(t, int64(5000), cart.Lines[0].LineTotal)
	assertTotalInvariant(t, cart)
}

func TestCart_AddLine_VariantAndFlatAreDistinctLines(t *testing.T) {
	cart := NewCart(uuid.New())
	productID := uuid.New()
	variantID := uuid.New()

	cart.AddLine(productID, nil, 1, 1000)
	cart.AddLine(productID, &variantID, 1, 1500)

	require.Len(t, cart.Lines, 2)
	assert.Equal(t, int64(2500), cart.Total)
	assertTotalInvariant(t, cart)
}

func TestCart_AdjustLineQuantity_RemovesOnUnderflow(t *testing.T) {
	cart := NewCart(uuid.New())
	productID := uuid.New()
	cart.AddLine(productID, nil, 1, 1000)

	ok := cart.AdjustLineQuantity(productID, nil, -1)

	require.True(t, ok)
	assert.Empty(t, cart.Lines)
	assert.Zero(t, cart.Total)
}

func TestCart_AdjustLineQuantity_MissingLine(t *testing.T) {
	cart := NewCart(uuid.New())

	assert.False(t, cart.AdjustLineQuantity(uuid.New(), nil, 1))
}

func TestCart_RemoveLine_IsIdempotent(t *testing.T) {
	cart := NewCart(uuid.New())
	productID := uuid.New()
	variantID := uuid.New()
	cart.AddLine(productID, &variantID, 2, 500)

	cart.RemoveLine(productID, &variantID)
	cart.RemoveLine(productID, &variantID) // absent line, not an error

	assert.Empty(t, cart.Lines)
	assert.Zero(t, cart.Total)
}

func TestCart_RemoveLine_MatchesVariantExactly(t *testing.T) {
	cart := NewCart(uuid.New())
	productID := uuid.New()
	variantID := uuid.New()
	cart.AddLine(productID, nil, 1, 1000)
	cart.AddLine(productID, &variantID, 1, 1500)

	// Removing the flat line must not touch the variant line.
	cart.RemoveLine(productID, nil)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, &variantID, cart.Lines[0].VariantID)
	assertTotalInvariant(t, cart)
}

func TestCart_TotalInvariantAcrossMutations(t *testing.T) {
	cart := NewCart(uuid.New())
	p1, p2 := uuid.New(), uuid.New()
	v1 := uuid.New()

	cart.AddLine(p1, nil, 3, 1000)
	assertTotalInvariant(t, cart)

	cart.AddLine(p2, &v1, 2, 2500)
	assertTotalInvariant(t, cart)

	cart.AdjustLineQuantity(p1, nil, -1)
	assertTotalInvariant(t, cart)

	cart.AdjustLineQuantity(p2, &v1, 1)
	assertTotalInvariant(t, cart)

	cart.RemoveLine(p1, nil)
	assertTotalInvariant(t, cart)

	cart.Clear()
	assert.Zero(t, cart.Total)
	assertTotalInvariant(t, cart)
}
