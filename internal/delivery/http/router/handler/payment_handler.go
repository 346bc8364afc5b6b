// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentHandler holds dependencies for payment handlers.
type PaymentHandler struct {
	uc     usecase.PaymentUsecase
	logger *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler, injected by Fx.
func NewPaymentHandler(uc usecase.PaymentUsecase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		uc:     uc,
		logger: logger,
	}
}

// Initiate registers the order with the gateway and returns the checkout URL.
func (h *PaymentHandler) Initiate(c echo.Context) error {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "缺少使用者身分")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "無效的訂單編號")
	}

	output, err := h.uc.Initiate(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Payment initiated")
}

// Verify is the gateway return URL. It reconciles the confirmation carried by
// the reference; replays are reported as success without side effects. The
// route is unauthenticated because the shopper arrives here via gateway
// redirect, outside any API session.
func (h *PaymentHandler) Verify(c echo.Context) error {
	reference := c.Param("reference")

	output, err := h.uc.Reconcile(c.Request().Context(), reference)
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Payment verified"
	if !output.Verified && !output.AlreadyApplied {
		message = "Payment not confirmed"
	}

	return response.Success(c, http.StatusOK, output, message)
}

// CheckoutQR renders the order's checkout URL as a scan-to-pay PNG.
func (h *PaymentHandler) CheckoutQR(c echo.Context) error {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "缺少使用者身分")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "無效的訂單編號")
	}

	png, err := h.uc.CheckoutQR(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
