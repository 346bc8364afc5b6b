package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"_to_"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_IsCancellable(t *testing.T) {
	assert.True(t, OrderStatusPending.IsCancellable())
	assert.True(t, OrderStatusProcessing.IsCancellable())
	assert.False(t, OrderStatusShipped.IsCancellable())
	assert.False(t, OrderStatusDelivered.IsCancellable())
	assert.False(t, OrderStatusCancelled.IsCancellable())
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

func TestNewOrderFromCart_FreezesLines(t *testing.T) {
	cart := NewCart(uuid.New())
	productID := uuid.New()
	variantID := uuid.New()
	cart.AddLine(productID, &variantID, 2, 2000)

	attrs := Attributes{{Key: "color", Value: "red"}}
	address := Address{Street: "1 Main St", City: "Taipei", State: "TW", Country: "Taiwan"}

	order := NewOrderFromCart(cart, []string{"Shirt"}, []Attributes{attrs}, address, PaymentMethodCard)

	require.Len(t, order.Lines, 1)
	assert.Equal(t, "Shirt", order.Lines[0].ProductName)
	assert.Equal(t, attrs, order.Lines[0].Attributes)
	assert.Equal(t, int64(4000), order.Lines[0].LineTotal)
	assert.Equal(t, int64(4000), order.TotalPrice)
	assert.Equal(t, cart.UserID, order.UserID)
	assert.Equal(t, OrderStatusPending, order.OrderStatus)
	assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
	assert.Empty(t, order.PaymentReference)
}
