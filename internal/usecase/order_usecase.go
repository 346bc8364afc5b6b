package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutInput defines the data required to convert a cart into an order.
type CheckoutInput struct {
	DeliveryAddress entity.Address
	PaymentMethod   entity.PaymentMethod // Defaults to card when empty.
}

// OrderUsecase defines the interface for order management use cases.
type OrderUsecase interface {
	// Checkout freezes the user's cart into a new pending order and clears the
	// cart in the same transaction. Checkout is not safely repeatable and must
	// not be retried automatically by the caller.
	Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*entity.Order, error)

	// GetMyOrders returns the user's orders, newest first, excluding cancelled.
	GetMyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// CancelOrder cancels the user's own order while the state machine allows it.
	CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)

	// GetAllOrders returns every order. Admin capability required at the delivery layer.
	GetAllOrders(ctx context.Context) ([]*entity.Order, error)

	// GetUserOrders returns a specific user's orders. Admin capability required.
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// UpdateOrderStatus moves the order along the state machine. Admin
	// capability required. When the new status is shipped or delivered a
	// notification event is published best-effort; a publish failure never
	// rolls back the status change.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, next entity.OrderStatus) (*entity.Order, error)
}
