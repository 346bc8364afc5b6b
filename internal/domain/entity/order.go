// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	// OrderStatusPending is the initial state set at checkout.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing is set once payment is confirmed.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusShipped means the order has left the warehouse.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered is a terminal state.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled is terminal and reachable only from pending or processing.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderTransitions is the state machine's transition table.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]

	return ok
}

// IsTerminal reports whether no further transitions exist from this state.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether the state machine permits moving to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// IsCancellable reports whether the order may still be cancelled by its owner.
func (s OrderStatus) IsCancellable() bool {
	return s.CanTransitionTo(OrderStatusCancelled)
}

// PaymentStatus represents the payment state of an order.
type PaymentStatus string

const (
	// PaymentStatusPending means no successful gateway confirmation has been applied.
	PaymentStatusPending PaymentStatus = "pending"
	// PaymentStatusPaid means a gateway confirmation was reconciled exactly once.
	PaymentStatusPaid PaymentStatus = "paid"
	// PaymentStatusFailed marks a definitively failed payment.
	PaymentStatusFailed PaymentStatus = "failed"
)

// String returns the string representation of the PaymentStatus.
func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentMethod represents how the customer pays for an order.
type PaymentMethod string

const (
	// PaymentMethodCard pays through the external card gateway. Default.
	PaymentMethodCard PaymentMethod = "card"
	// PaymentMethodBank pays by bank transfer.
	PaymentMethodBank PaymentMethod = "bank"
	// PaymentMethodCashOnDelivery pays on delivery.
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// OrderLine is the frozen copy of a cart line captured at checkout. Later
// catalog edits or deletions never alter these values.
type OrderLine struct {
	ProductID   uuid.UUID  // The product as referenced at checkout time; may no longer exist.
	ProductName string     // Name captured at checkout.
	VariantID   *uuid.UUID // The chosen variant, nil for flat-priced lines.
	Attributes  Attributes // Variant attributes captured at checkout, nil for flat lines.
	Quantity    int64
	UnitPrice   int64 // Unit price in minor units, as charged.
	LineTotal   int64 // UnitPrice * Quantity at checkout.
}

// Order is created once from a non-empty cart and is immutable afterwards
// except for its status fields and payment reference. Orders are never
// physically deleted.
type Order struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Lines            []OrderLine
	TotalPrice       int64 // Sum of frozen line totals at creation, in minor units.
	DeliveryAddress  Address
	PaymentMethod    PaymentMethod
	PaymentStatus    PaymentStatus
	OrderStatus      OrderStatus
	PaymentReference string // Set once a gateway interaction has been initiated; empty before.
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewOrderFromCart freezes the cart's lines into a new pending order. The
// product names and variant attributes must already be resolved by the caller
// against the catalog, matched by position with the cart lines.
func NewOrderFromCart(cart *Cart, names []string, attrs []Attributes, address Address, method PaymentMethod) *Order {
	lines := make([]OrderLine, 0, len(cart.Lines))
	var total int64
	for i, cl := range cart.Lines {
		lines = append(lines, OrderLine{
			ProductID:   cl.ProductID,
			ProductName: names[i],
			VariantID:   cl.VariantID,
			Attributes:  attrs[i],
			Quantity:    cl.Quantity,
			UnitPrice:   cl.UnitPrice,
			LineTotal:   cl.LineTotal,
		})
		total += cl.LineTotal
	}

	return &Order{
		ID:              uuid.New(),
		UserID:          cart.UserID,
		Lines:           lines,
		TotalPrice:      total,
		DeliveryAddress: address,
		PaymentMethod:   method,
		PaymentStatus:   PaymentStatusPending,
		OrderStatus:     OrderStatusPending,
	}
}
