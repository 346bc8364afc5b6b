package qrcode

import (
	"testing"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "M"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(&config.Config{
				QRCode: &config.QRCodeConfig{Size: tt.size, ErrorCorrectionLevel: tt.errorCorrectionLevel},
			})
			assert.NotNil(t, service)
		})
	}
}

func TestQRCodeService_GenerateCheckoutQR(t *testing.T) {
	service := NewQRCodeService(nil)

	qrBytes, err := service.GenerateCheckoutQR("https://gateway.example.com/pay/ORDER_abc_123")
	require.NoError(t, err)
	assert.NotEmpty(t, qrBytes)

	// Verify it's a valid PNG (starts with PNG magic number)
	assert.Equal(t, byte(0x89), qrBytes[0])
	assert.Equal(t, byte(0x50), qrBytes[1])
	assert.Equal(t, byte(0x4E), qrBytes[2])
	assert.Equal(t, byte(0x47), qrBytes[3])
}

func TestQRCodeService_GenerateCheckoutQR_DifferentSizes(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"Small QR", 128},
		{"Medium QR", 256},
		{"Large QR", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewQRCodeService(&config.Config{
				QRCode: &config.QRCodeConfig{Size: tt.size, ErrorCorrectionLevel: "M"},
			})

			qrBytes, err := service.GenerateCheckoutQR("https://gateway.example.com/pay/x")
			require.NoError(t, err)
			assert.NotEmpty(t, qrBytes)
		})
	}
}

func TestQRCodeService_GenerateCheckoutQR_EmptyURL(t *testing.T) {
	service := NewQRCodeService(nil)

	_, err := service.GenerateCheckoutQR("")
	assert.Error(t, err)
}
