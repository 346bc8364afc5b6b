package payment

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, handler http.Handler) (*httptest.Server, *paystackGateway) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gateway, err := NewPaystackGateway(GatewayParams{
		Config: &config.Config{
			Payment: &config.PaymentConfig{
				BaseURL:   server.URL,
				SecretKey: "sk_test_secret",
				Timeout:   5 * time.Second,
			},
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return server, gateway.(*paystackGateway)
}

func TestPaystackGateway_InitializeTransaction(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.example.com/abc",
				"reference": "ORDER_x_1"
			}
		}`))
	})
	_, gateway := newTestGateway(t, handler)

	result, err := gateway.InitializeTransaction(context.Background(),
		"buyer@example.com", 4500, "ORDER_x_1", "https://shop.example.com/api/payments/verify/ORDER_x_1",
		map[string]string{"order_id": "x"})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.example.com/abc", result.CheckoutURL)
	assert.Equal(t, "ORDER_x_1", result.Reference)
	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
	assert.Equal(t, "buyer@example.com", gotBody["email"])
	assert.Equal(t, float64(4500), gotBody["amount"])
	assert.Equal(t, "ORDER_x_1", gotBody["reference"])
}

func TestPaystackGateway_VerifyTransaction_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transaction/verify/ORDER_x_1", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "success",
				"metadata": {"order_id": "x"}
			}
		}`))
	})
	_, gateway := newTestGateway(t, handler)

	verification, err := gateway.VerifyTransaction(context.Background(), "ORDER_x_1")
	require.NoError(t, err)
	assert.True(t, verification.Success)
	assert.Equal(t, "x", verification.Metadata["order_id"])
}

func TestPaystackGateway_VerifyTransaction_Declined(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {"status": "failed"}
		}`))
	})
	_, gateway := newTestGateway(t, handler)

	verification, err := gateway.VerifyTransaction(context.Background(), "ORDER_x_1")
	require.NoError(t, err)
	assert.False(t, verification.Success)
}

func TestPaystackGateway_NonSuccessStatusIsAnError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"status": false, "message": "Invalid key"}`, http.StatusUnauthorized)
	})
	_, gateway := newTestGateway(t, handler)

	_, err := gateway.VerifyTransaction(context.Background(), "ORDER_x_1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestNewPaystackGateway_RequiresConfiguration(t *testing.T) {
	_, err := NewPaystackGateway(GatewayParams{
		Config: &config.Config{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	assert.Error(t, err)
}
