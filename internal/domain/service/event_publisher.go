package service

import (
	"context"
)

// Order event kinds consumed by the mail worker.
const (
	OrderEventCreated       = "order_created"
	OrderEventPaymentPaid   = "payment_paid"
	OrderEventStatusUpdated = "status_updated"
)

// OrderEvent is an outbound notification event. Events are published after the
// state transition commits; delivery is best-effort and a publish failure must
// never fail the transaction that produced it.
type OrderEvent struct {
	RequestID      string `json:"request_id,omitempty"` // For distributed tracing
	Kind           string `json:"kind"`
	OrderID        string `json:"order_id"`
	UserID         string `json:"user_id"`
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
	TotalPrice     int64  `json:"total_price"`
	OrderStatus    string `json:"order_status,omitempty"`
}

// EventPublisher defines the interface for publishing order events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
