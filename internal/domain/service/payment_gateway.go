// Package service defines interfaces for core, stateless domain logic and
// for external collaborators the use cases depend on.
package service

import "context"

// GatewayInitResult is the gateway's answer to a transaction initialization.
type GatewayInitResult struct {
	CheckoutURL string // Where the customer completes the payment.
	Reference   string // The reference echoed back by the gateway.
}

// GatewayVerification is the gateway's answer to a verification call.
// Success reports whether the transaction was confirmed; Metadata carries the
// correlating order id the gateway stored at initialization time.
type GatewayVerification struct {
	Success  bool
	Metadata map[string]string
}

// PaymentGateway defines the contract with the external payment provider.
// The core treats it as a black box: initialize returns a checkout URL,
// verify returns a success flag plus metadata.
type PaymentGateway interface {
	// InitializeTransaction registers a pending transaction with the gateway.
	// Amount is in minor units. The callback URL is where the gateway (or the
	// customer's browser) lands after payment, carrying the reference.
	InitializeTransaction(ctx context.Context, email string, amount int64, reference, callbackURL string, metadata map[string]string) (*GatewayInitResult, error)

	// VerifyTransaction asks the gateway whether the referenced transaction
	// succeeded. A failed verification is a reported outcome, not an error;
	// errors mean the gateway was unreachable or returned an unexpected shape.
	VerifyTransaction(ctx context.Context, reference string) (*GatewayVerification, error)
}
