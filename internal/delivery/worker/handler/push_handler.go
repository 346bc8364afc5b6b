// Package handler contains the Pub/Sub push handlers for the mail worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// PushHandler turns order events pushed by Pub/Sub into customer mail.
type PushHandler struct {
	logger     *slog.Logger
	mailSender service.MailSender
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config     *config.Config
	Logger     *slog.Logger
	MailSender service.MailSender
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	return &PushHandler{
		logger:     params.Logger,
		mailSender: params.MailSender,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse order event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))

	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing order event",
		slog.String("kind", event.Kind),
		slog.String("order_id", event.OrderID),
	)

	if err := h.processOrderEvent(ctx, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process order event",
			slog.String("order_id", event.OrderID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		// Return 503 for retryable errors to trigger Pub/Sub retry
		// Return 200 for non-retryable errors to prevent infinite retries
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Order event processed successfully",
		slog.String("order_id", event.OrderID),
	)

	return c.NoContent(http.StatusOK)
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.OrderEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// processOrderEvent renders the mail for the event kind and sends it.
func (h *PushHandler) processOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	if event.RecipientEmail == "" {
		// Nothing to deliver; dropping is better than a retry loop.
		return nil
	}

	mail, ok := renderOrderMail(event)
	if !ok {
		h.logger.Warn("[Worker] Unknown order event kind, dropping",
			slog.String("kind", event.Kind),
			slog.String("order_id", event.OrderID),
		)

		return nil
	}

	if err := h.mailSender.Send(ctx, mail); err != nil {
		// SMTP hiccups are worth a redelivery attempt.
		return newRetryableError(err)
	}

	return nil
}

// renderOrderMail builds the customer-facing message for an event kind.
func renderOrderMail(event *service.OrderEvent) (service.Mail, bool) {
	name := event.RecipientName
	if name == "" {
		name = "顧客"
	}

	switch event.Kind {
	case service.OrderEventCreated:
		return service.Mail{
			To:      event.RecipientEmail,
			Subject: fmt.Sprintf("訂單確認通知 - %s", event.OrderID),
			Body: fmt.Sprintf("%s 您好：\n\n我們已收到您的訂單 %s，金額 %d。\n完成付款後將儘速為您安排出貨。\n\n感謝您的購買!",
				name, event.OrderID, event.TotalPrice),
		}, true
	case service.OrderEventPaymentPaid:
		return service.Mail{
			To:      event.RecipientEmail,
			Subject: fmt.Sprintf("付款成功通知 - %s", event.OrderID),
			Body: fmt.Sprintf("%s 您好：\n\n您的訂單 %s 已完成付款，金額 %d。\n我們正在為您準備商品。\n\n感謝您的購買!",
				name, event.OrderID, event.TotalPrice),
		}, true
	case service.OrderEventStatusUpdated:
		return service.Mail{
			To:      event.RecipientEmail,
			Subject: fmt.Sprintf("訂單狀態更新 - %s", event.OrderID),
			Body: fmt.Sprintf("%s 您好：\n\n您的訂單 %s 狀態已更新為 %s。\n\n感謝您的購買!",
				name, event.OrderID, event.OrderStatus),
		}, true
	default:
		return service.Mail{}, false
	}
}
