// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrStatusConflict is returned when a conditional status update matched no
	// row because the order was no longer in an allowed source state.
	ErrStatusConflict = errors.New("order status conflict")
	// ErrPaymentAlreadyApplied is returned when a conditional payment
	// confirmation matched no row because the order was already paid.
	ErrPaymentAlreadyApplied = errors.New("payment already applied")
	// ErrOrderCancelled is returned when a conditional payment confirmation
	// matched no row because the order was cancelled in the meantime.
	ErrOrderCancelled = errors.New("order cancelled")
)

// OrderRepository defines the interface for order persistence. Orders are
// immutable after creation except for their status fields and payment
// reference; they are never physically deleted.
type OrderRepository interface {
	// Create persists a new order with its frozen lines.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order regardless of owner.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByIDForUser retrieves an order only if it belongs to the user.
	// An order owned by someone else is reported as not found, not forbidden.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error)

	// FindByUser retrieves the user's orders, newest first. Cancelled orders
	// are included only when includeCancelled is true.
	FindByUser(ctx context.Context, userID uuid.UUID, includeCancelled bool) ([]*entity.Order, error)

	// FindAll retrieves every order, newest first.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// FindByPaymentReference retrieves the order carrying the reference.
	FindByPaymentReference(ctx context.Context, reference string) (*entity.Order, error)

	// SetPaymentReference stores (or replaces) the payment reference on the order.
	SetPaymentReference(ctx context.Context, id uuid.UUID, reference string) error

	// TransitionStatus moves the order to next only if its current status is
	// one of from. The update is a single conditional write; when no row
	// matches, ErrStatusConflict is returned (or ErrOrderNotFound when the
	// order does not exist at all).
	TransitionStatus(ctx context.Context, id uuid.UUID, next entity.OrderStatus, from ...entity.OrderStatus) error

	// ConfirmPayment atomically sets paymentStatus=paid while the payment is
	// still pending and the order is not cancelled; the order status moves to
	// processing only when it is still pending, otherwise it is left alone so
	// a confirmation landing after an admin transition still records the
	// payment. Returns ErrPaymentAlreadyApplied when the order was already
	// paid (callers treat this as idempotent success) and ErrOrderCancelled
	// when the order was cancelled before the confirmation landed.
	ConfirmPayment(ctx context.Context, id uuid.UUID) error
}
