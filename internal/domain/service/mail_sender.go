package service

import "context"

// Mail is a rendered message ready for delivery.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// MailSender defines the interface for outbound customer mail. Implementations
// are fire-and-forget from the caller's perspective: a delivery failure is
// logged by the caller and never propagated as a transaction failure.
type MailSender interface {
	// Send delivers one mail message.
	Send(ctx context.Context, mail Mail) error
}
