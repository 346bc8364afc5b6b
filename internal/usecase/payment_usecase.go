package usecase

import (
	"context"

	"github.com/google/uuid"
)

// InitiatePaymentOutput returns the gateway redirect target and the reference
// correlating this order with the external transaction.
type InitiatePaymentOutput struct {
	CheckoutURL string `json:"checkoutUrl"`
	Reference   string `json:"reference"`
}

// ReconcileOutput reports the outcome of applying a gateway confirmation.
type ReconcileOutput struct {
	Verified       bool      `json:"verified"`       // Whether the gateway confirmed the payment.
	AlreadyApplied bool      `json:"alreadyApplied"` // True when the order was already paid (idempotent replay).
	OrderID        uuid.UUID `json:"orderId"`
}

// PaymentUsecase defines the interface for payment initiation and reconciliation.
type PaymentUsecase interface {
	// Initiate generates a payment reference, stores it on the order, registers
	// the transaction with the gateway and returns the checkout URL.
	// Re-initiating before confirmation replaces the stored reference.
	Initiate(ctx context.Context, userID, orderID uuid.UUID) (*InitiatePaymentOutput, error)

	// Reconcile applies an external payment confirmation to the order carrying
	// the reference, exactly once. A duplicate confirmation returns success
	// without re-applying side effects. A failed gateway verification is
	// reported through the output, not as an error. Reconciling a cancelled
	// order is rejected.
	Reconcile(ctx context.Context, reference string) (*ReconcileOutput, error)

	// CheckoutQR renders the order's current checkout URL as a scan-to-pay QR
	// code, initiating a payment first if none is pending.
	CheckoutQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error)
}
