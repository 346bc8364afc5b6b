package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// paymentService implements the PaymentUsecase interface.
type paymentService struct {
	orderRepo     repository.OrderRepository
	userRepo      repository.UserRepository
	gateway       service.PaymentGateway
	qrcodeService service.QRCodeService
	publisher     service.EventPublisher
	baseURL       string
	logger        *slog.Logger
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	OrderRepo     repository.OrderRepository
	UserRepo      repository.UserRepository
	Gateway       service.PaymentGateway
	QRCodeService service.QRCodeService
	Publisher     service.EventPublisher
	Config        *config.Config
	Logger        *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentUsecase {
	baseURL := ""
	if params.Config != nil {
		baseURL = params.Config.HTTP.BaseURL
	}

	return &paymentService{
		orderRepo:     params.OrderRepo,
		userRepo:      params.UserRepo,
		gateway:       params.Gateway,
		qrcodeService: params.QRCodeService,
		publisher:     params.Publisher,
		baseURL:       baseURL,
		logger:        params.Logger,
	}
}

// newPaymentReference builds a reference that is unique per initiation and
// still resolvable back to the order by prefix.
func newPaymentReference(orderID uuid.UUID) string {
	return fmt.Sprintf("ORDER_%s_%d", orderID, time.Now().UnixNano())
}

// Initiate registers a pending transaction with the gateway for the user's
// own order. The fresh reference is stored before the gateway call so a
// confirmation landing at any later time can always be resolved; re-initiating
// an unpaid order simply replaces the previous reference.
func (s *paymentService) Initiate(ctx context.Context, userID, orderID uuid.UUID) (*usecase.InitiatePaymentOutput, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if order.OrderStatus == entity.OrderStatusCancelled {
		return nil, domainerrors.ErrOrderCancelled
	}
	if order.PaymentStatus == entity.PaymentStatusPaid {
		return nil, domainerrors.ErrInvalidTransition.WithDetails("訂單已付款")
	}

	user, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find order owner")
	}

	reference := newPaymentReference(order.ID)
	if err := s.orderRepo.SetPaymentReference(ctx, order.ID, reference); err != nil {
		return nil, errors.Wrap(err, "failed to store payment reference")
	}

	callbackURL := s.baseURL + "/api/payments/verify/" + reference
	result, err := s.gateway.InitializeTransaction(ctx, user.Email, order.TotalPrice, reference, callbackURL, map[string]string{
		"order_id": order.ID.String(),
	})
	if err != nil {
		s.logger.Error("payment gateway initialization failed",
			slog.String("order_id", order.ID.String()),
			slog.String("reference", reference),
			slog.Any("error", err))

		return nil, domainerrors.ErrPaymentGatewayFailure
	}

	return &usecase.InitiatePaymentOutput{
		CheckoutURL: result.CheckoutURL,
		Reference:   result.Reference,
	}, nil
}

// Reconcile applies an external confirmation to the order carrying the
// reference. The payment flip is a conditional write, so a confirmation is
// applied at most once no matter how many times it is delivered.
func (s *paymentService) Reconcile(ctx context.Context, reference string) (*usecase.ReconcileOutput, error) {
	if reference == "" {
		return nil, domainerrors.ErrPaymentReferenceRequired
	}

	order, err := s.orderRepo.FindByPaymentReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by payment reference")
	}

	if order.OrderStatus == entity.OrderStatusCancelled {
		return nil, domainerrors.ErrOrderCancelled
	}

	// Duplicate delivery of an already applied confirmation: succeed without
	// side effects.
	if order.PaymentStatus == entity.PaymentStatusPaid {
		return &usecase.ReconcileOutput{Verified: true, AlreadyApplied: true, OrderID: order.ID}, nil
	}

	verification, err := s.gateway.VerifyTransaction(ctx, reference)
	if err != nil {
		s.logger.Error("payment gateway verification failed",
			slog.String("reference", reference),
			slog.Any("error", err))

		return nil, domainerrors.ErrPaymentGatewayFailure
	}

	if !verification.Success {
		return &usecase.ReconcileOutput{Verified: false, OrderID: order.ID}, nil
	}

	if err := s.orderRepo.ConfirmPayment(ctx, order.ID); err != nil {
		switch {
		case errors.Is(err, repository.ErrPaymentAlreadyApplied):
			// Lost the race against a concurrent confirmation. The payment is
			// applied, so report success without publishing a second event.
			return &usecase.ReconcileOutput{Verified: true, AlreadyApplied: true, OrderID: order.ID}, nil
		case errors.Is(err, repository.ErrOrderCancelled):
			return nil, domainerrors.ErrOrderCancelled
		case errors.Is(err, repository.ErrStatusConflict):
			return nil, domainerrors.ErrInvalidTransition.WithDetails("訂單狀態不允許付款")
		default:
			return nil, errors.Wrap(err, "failed to confirm payment")
		}
	}

	order.PaymentStatus = entity.PaymentStatusPaid
	if order.OrderStatus == entity.OrderStatusPending {
		order.OrderStatus = entity.OrderStatusProcessing
	}

	publishOrderEvent(ctx, s.publisher, s.userRepo, s.logger, service.OrderEventPaymentPaid, order)

	return &usecase.ReconcileOutput{Verified: true, OrderID: order.ID}, nil
}

// CheckoutQR initiates a payment and renders the checkout URL as a QR code.
func (s *paymentService) CheckoutQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error) {
	out, err := s.Initiate(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	png, err := s.qrcodeService.GenerateCheckoutQR(out.CheckoutURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate checkout QR")
	}

	return png, nil
}
