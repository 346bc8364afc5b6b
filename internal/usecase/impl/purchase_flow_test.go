package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	mockRepo "storefront/internal/mocks/repository"
	mockService "storefront/internal/mocks/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestPurchaseFlow walks one purchase end to end through the use case layer:
// add to cart, checkout, initiate a payment and reconcile the confirmation.
// The repositories are stateful fakes built on the generated mocks so the
// same data flows through every step.
func TestPurchaseFlow(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	product := flatProduct(1000, 5)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var (
		storedCart  *entity.Cart
		storedOrder *entity.Order
		paid        bool
	)

	cartRepo := mockRepo.NewMockCartRepository(t)
	cartRepo.EXPECT().
		FindByUserID(mock.Anything, userID).
		RunAndReturn(func(context.Context, uuid.UUID) (*entity.Cart, error) {
			if storedCart == nil {
				return nil, repository.ErrCartNotFound
			}
			return storedCart, nil
		}).
		Maybe()
	cartRepo.EXPECT().
		Save(mock.Anything, mock.AnythingOfType("*entity.Cart")).
		RunAndReturn(func(_ context.Context, cart *entity.Cart) error {
			storedCart = cart
			return nil
		}).
		Maybe()
	cartRepo.EXPECT().
		Clear(mock.Anything, userID).
		RunAndReturn(func(context.Context, uuid.UUID) error {
			storedCart = nil
			return nil
		}).
		Maybe()

	productRepo := mockRepo.NewMockProductRepository(t)
	productRepo.EXPECT().
		FindByID(mock.Anything, product.ID).
		Return(product, nil).
		Maybe()
	productRepo.EXPECT().
		DecrementStock(mock.Anything, product.ID, (*uuid.UUID)(nil), mock.AnythingOfType("int64")).
		RunAndReturn(func(_ context.Context, _ uuid.UUID, _ *uuid.UUID, quantity int64) error {
			if product.Stock < quantity {
				return repository.ErrInsufficientStock
			}
			product.Stock -= quantity
			return nil
		}).
		Maybe()

	orderRepo := mockRepo.NewMockOrderRepository(t)
	orderRepo.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*entity.Order")).
		RunAndReturn(func(_ context.Context, order *entity.Order) error {
			storedOrder = order
			return nil
		}).
		Maybe()
	orderRepo.EXPECT().
		FindByIDForUser(mock.Anything, mock.AnythingOfType("uuid.UUID"), userID).
		RunAndReturn(func(_ context.Context, id uuid.UUID, _ uuid.UUID) (*entity.Order, error) {
			if storedOrder == nil || storedOrder.ID != id {
				return nil, repository.ErrOrderNotFound
			}
			return storedOrder, nil
		}).
		Maybe()
	orderRepo.EXPECT().
		SetPaymentReference(mock.Anything, mock.AnythingOfType("uuid.UUID"), mock.AnythingOfType("string")).
		RunAndReturn(func(_ context.Context, _ uuid.UUID, reference string) error {
			storedOrder.PaymentReference = reference
			return nil
		}).
		Maybe()
	orderRepo.EXPECT().
		FindByPaymentReference(mock.Anything, mock.AnythingOfType("string")).
		RunAndReturn(func(_ context.Context, reference string) (*entity.Order, error) {
			if storedOrder == nil || storedOrder.PaymentReference != reference {
				return nil, repository.ErrOrderNotFound
			}
			return storedOrder, nil
		}).
		Maybe()
	orderRepo.EXPECT().
		ConfirmPayment(mock.Anything, mock.AnythingOfType("uuid.UUID")).
		RunAndReturn(func(context.Context, uuid.UUID) error {
			if paid {
				return repository.ErrPaymentAlreadyApplied
			}
			paid = true
			return nil
		}).
		Maybe()

	userRepo := mockRepo.NewMockUserRepository(t)
	userRepo.EXPECT().
		FindByID(mock.Anything, userID).
		Return(testRecipient(userID), nil).
		Maybe()

	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewProductRepository().Return(productRepo).Maybe()
	factory.EXPECT().NewOrderRepository().Return(orderRepo).Maybe()
	factory.EXPECT().NewCartRepository().Return(cartRepo).Maybe()
	txManager := mockRepo.NewMockTransactionManager(t)
	txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		}).
		Maybe()

	var publishedKinds []string
	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().
		PublishOrderEvent(mock.Anything, mock.AnythingOfType("*service.OrderEvent")).
		RunAndReturn(func(_ context.Context, event *service.OrderEvent) error {
			publishedKinds = append(publishedKinds, event.Kind)
			return nil
		}).
		Maybe()

	gateway := mockService.NewMockPaymentGateway(t)
	gateway.EXPECT().
		InitializeTransaction(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, _ string, _ int64, reference, _ string, _ map[string]string) (*service.GatewayInitResult, error) {
			return &service.GatewayInitResult{CheckoutURL: "https://gateway.example.com/pay/" + reference, Reference: reference}, nil
		}).
		Maybe()
	gateway.EXPECT().
		VerifyTransaction(mock.Anything, mock.AnythingOfType("string")).
		Return(&service.GatewayVerification{Success: true}, nil).
		Maybe()

	cfg := &config.Config{}
	cfg.HTTP.BaseURL = "https://shop.example.com"

	cartService := NewCartService(CartServiceParams{
		CartRepo:    cartRepo,
		ProductRepo: productRepo,
		Logger:      logger,
	})
	orderService := NewOrderService(OrderServiceParams{
		TxManager:   txManager,
		CartRepo:    cartRepo,
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		UserRepo:    userRepo,
		Publisher:   publisher,
		Logger:      logger,
	})
	paymentService := NewPaymentService(PaymentServiceParams{
		OrderRepo:     orderRepo,
		UserRepo:      userRepo,
		Gateway:       gateway,
		QRCodeService: mockService.NewMockQRCodeService(t),
		Publisher:     publisher,
		Config:        cfg,
		Logger:        logger,
	})

	// Shop: three bottles at 1000 each.
	cart, err := cartService.AddLine(ctx, userID, product.ID, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), cart.Total)

	// Checkout freezes the cart into a pending order and clears the cart.
	order, err := orderService.Checkout(ctx, userID, usecase.CheckoutInput{DeliveryAddress: testAddress()})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), order.TotalPrice)
	assert.Equal(t, int64(2), product.Stock)
	assert.Nil(t, storedCart)

	view, err := cartService.GetCart(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	// Pay: initiate against the gateway, then reconcile the confirmation.
	initiated, err := paymentService.Initiate(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, storedOrder.PaymentReference, initiated.Reference)

	out, err := paymentService.Reconcile(ctx, initiated.Reference)
	require.NoError(t, err)
	assert.True(t, out.Verified)
	assert.False(t, out.AlreadyApplied)
	assert.Equal(t, entity.PaymentStatusPaid, storedOrder.PaymentStatus)
	assert.Equal(t, entity.OrderStatusProcessing, storedOrder.OrderStatus)

	// A duplicate confirmation is absorbed without a second event.
	replay, err := paymentService.Reconcile(ctx, initiated.Reference)
	require.NoError(t, err)
	assert.True(t, replay.AlreadyApplied)

	assert.Equal(t, []string{service.OrderEventCreated, service.OrderEventPaymentPaid}, publishedKinds)
}
