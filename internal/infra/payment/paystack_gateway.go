// Package payment provides the PaymentGateway implementation backed by the
// Paystack transaction API.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultTimeout = 15 * time.Second

// paystackGateway talks to the Paystack transaction API.
type paystackGateway struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
	logger     *slog.Logger
}

// GatewayParams holds dependencies for the payment gateway, injected by Fx.
type GatewayParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewPaystackGateway creates the gateway client from configuration.
func NewPaystackGateway(params GatewayParams) (service.PaymentGateway, error) {
	cfg := params.Config.Payment
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("payment gateway base URL must be configured")
	}
	if cfg.SecretKey == "" {
		return nil, errors.New("payment gateway secret key must be configured")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &paystackGateway{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: params.Logger,
	}, nil
}

// initializeRequest is the wire shape of a transaction initialization call.
type initializeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// apiEnvelope is the common response wrapper of the transaction API.
type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status   string            `json:"status"`
	Metadata map[string]string `json:"metadata"`
}

// InitializeTransaction registers a pending transaction and returns the
// hosted checkout URL the customer is redirected to.
func (g *paystackGateway) InitializeTransaction(ctx context.Context, email string, amount int64, reference, callbackURL string, metadata map[string]string) (*service.GatewayInitResult, error) {
	payload := initializeRequest{
		Email:       email,
		Amount:      amount,
		Reference:   reference,
		CallbackURL: callbackURL,
		Metadata:    metadata,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/transaction/initialize", bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	envelope, err := g.do(req)
	if err != nil {
		return nil, err
	}

	var data initializeData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, errors.Wrap(err, "failed to decode initialize response")
	}

	g.logger.Info("[Paystack] Transaction initialized",
		slog.String("reference", data.Reference),
	)

	return &service.GatewayInitResult{
		CheckoutURL: data.AuthorizationURL,
		Reference:   data.Reference,
	}, nil
}

// VerifyTransaction asks the gateway whether the referenced transaction
// succeeded. A declined or pending transaction is a reported outcome.
func (g *paystackGateway) VerifyTransaction(ctx context.Context, reference string) (*service.GatewayVerification, error) {
	endpoint := g.baseURL + "/transaction/verify/" + url.PathEscape(reference)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)

	envelope, err := g.do(req)
	if err != nil {
		return nil, err
	}

	var data verifyData
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return nil, errors.Wrap(err, "failed to decode verify response")
	}

	return &service.GatewayVerification{
		Success:  envelope.Status && data.Status == "success",
		Metadata: data.Metadata,
	}, nil
}

// do executes the request and decodes the common response envelope.
func (g *paystackGateway) do(req *http.Request) (*apiEnvelope, error) {
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("gateway returned status %d: %s", resp.StatusCode, string(raw))
	}

	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errors.Wrap(err, "failed to decode gateway response")
	}

	return &envelope, nil
}
