package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateCheckoutQR renders the gateway checkout URL as a scan-to-pay QR code PNG.
	GenerateCheckoutQR(checkoutURL string) ([]byte, error)
}
