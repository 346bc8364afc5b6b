package impl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
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

// orderServiceFixtures holds all test dependencies for order service tests.
type orderServiceFixtures struct {
	service     usecase.OrderUsecase
	txManager   *mockRepo.MockTransactionManager
	cartRepo    *mockRepo.MockCartRepository
	orderRepo   *mockRepo.MockOrderRepository
	productRepo *mockRepo.MockProductRepository
	userRepo    *mockRepo.MockUserRepository
	publisher   *mockService.MockEventPublisher
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	cartRepo := mockRepo.NewMockCartRepository(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	publisher := mockService.NewMockEventPublisher(t)
	svc := NewOrderService(OrderServiceParams{
		TxManager:   txManager,
		CartRepo:    cartRepo,
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		UserRepo:    userRepo,
		Publisher:   publisher,
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return orderServiceFixtures{
		service:     svc,
		txManager:   txManager,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// expectTransaction wires the transaction manager mock to invoke the callback
// with a repository factory backed by the given tx-scoped mocks.
func (fx orderServiceFixtures) expectTransaction(t *testing.T, factory *mockRepo.MockRepositoryFactory) {
	t.Helper()
	fx.txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func testAddress() entity.Address {
	return entity.Address{
		Street:  "中山北路 100 號",
		City:    "台北市",
		State:   "中山區",
		Country: "台灣",
	}
}

func testRecipient(userID uuid.UUID) *entity.User {
	return &entity.User{
		ID:       userID,
		FullName: "王小明",
		Email:    "buyer@example.com",
		Role:     entity.RoleUser,
	}
}

func TestOrderService_Checkout_FreezesCartIntoPendingOrder(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := flatProduct(1000, 10)
	variantOwner, variant := variantProduct(2500, 8)

	cart := entity.NewCart(userID)
	cart.AddLine(product.ID, nil, 2, 1000)
	cart.AddLine(variantOwner.ID, &variant.ID, 1, 2500)

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)
	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)
	fx.productRepo.EXPECT().FindByID(ctx, variantOwner.ID).Return(variantOwner, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txProductRepo := mockRepo.NewMockProductRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	txCartRepo := mockRepo.NewMockCartRepository(t)
	factory.EXPECT().NewProductRepository().Return(txProductRepo)
	factory.EXPECT().NewOrderRepository().Return(txOrderRepo)
	factory.EXPECT().NewCartRepository().Return(txCartRepo)
	txProductRepo.EXPECT().
		DecrementStock(ctx, product.ID, (*uuid.UUID)(nil), int64(2)).
		Return(nil)
	txProductRepo.EXPECT().
		DecrementStock(ctx, variantOwner.ID, &variant.ID, int64(1)).
		Return(nil)
	txOrderRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		Return(nil)
	txCartRepo.EXPECT().Clear(ctx, userID).Return(nil)
	fx.expectTransaction(t, factory)

	fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(testRecipient(userID), nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(mock.Anything, mock.AnythingOfType("*service.OrderEvent")).
		Return(nil)

	order, err := fx.service.Checkout(ctx, userID, usecase.CheckoutInput{DeliveryAddress: testAddress()})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, entity.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, entity.PaymentMethodCard, order.PaymentMethod)
	assert.Equal(t, int64(4500), order.TotalPrice)
	require.Len(t, order.Lines, 2)
	assert.Equal(t, product.Name, order.Lines[0].ProductName)
	assert.Equal(t, variantOwner.Name, order.Lines[1].ProductName)
	assert.Equal(t, variant.Attributes, order.Lines[1].Attributes)
	assert.Equal(t, testAddress(), order.DeliveryAddress)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(entity.NewCart(userID), nil)

	_, err := fx.service.Checkout(ctx, userID, usecase.CheckoutInput{DeliveryAddress: testAddress()})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestOrderService_Checkout_MissingCartIsEmptyCart(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.cartRepo.EXPECT().
		FindByUserID(ctx, userID).
		Return(nil, repository.ErrCartNotFound)

	_, err := fx.service.Checkout(ctx, userID, usecase.CheckoutInput{DeliveryAddress: testAddress()})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestOrderService_Checkout_IncompleteAddress(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()

	cart := entity.NewCart(userID)
	cart.AddLine(uuid.New(), nil, 1, 1000)

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)

	input := usecase.CheckoutInput{DeliveryAddress: entity.Address{City: "台北市"}}
	_, err := fx.service.Checkout(ctx, userID, input)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidDeliveryAddress)
}

func TestOrderService_Checkout_InsufficientStockAbortsTransaction(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := flatProduct(1000, 1)

	cart := entity.NewCart(userID)
	cart.AddLine(product.ID, nil, 3, 1000)

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)
	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txProductRepo := mockRepo.NewMockProductRepository(t)
	factory.EXPECT().NewProductRepository().Return(txProductRepo)
	txProductRepo.EXPECT().
		DecrementStock(ctx, product.ID, (*uuid.UUID)(nil), int64(3)).
		Return(repository.ErrInsufficientStock)
	fx.expectTransaction(t, factory)

	// No order create, no cart clear, no event: the transaction aborts on the
	// failed decrement.
	_, err := fx.service.Checkout(ctx, userID, usecase.CheckoutInput{DeliveryAddress: testAddress()})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrOutOfStock.ErrorCode(), appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), product.Name)
}

func TestOrderService_Checkout_ProductVanishedMidTransaction(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := flatProduct(1000, 5)

	cart := entity.NewCart(userID)
	cart.AddLine(product.ID, nil, 2, 1000)

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)
	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	// The product is deleted between the pre-transaction read and the
	// decrement; that is a vanished product, not a stock shortfall.
	factory := mockRepo.NewMockRepositoryFactory(t)
	txProductRepo := mockRepo.NewMockProductRepository(t)
	factory.EXPECT().NewProductRepository().Return(txProductRepo)
	txProductRepo.EXPECT().
		DecrementStock(ctx, product.ID, (*uuid.UUID)(nil), int64(2)).
		Return(repository.ErrProductNotFound)
	fx.expectTransaction(t, factory)

	_, err := fx.service.Checkout(ctx, userID, usecase.CheckoutInput{DeliveryAddress: testAddress()})
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrProductNotFound.ErrorCode(), appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), product.Name)
}

func TestOrderService_Checkout_TotalMismatch(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := flatProduct(1000, 10)

	cart := entity.NewCart(userID)
	cart.AddLine(product.ID, nil, 2, 1000)
	cart.Total = 1999 // Corrupted cached total.

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)
	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	_, err := fx.service.Checkout(ctx, userID, usecase.CheckoutInput{DeliveryAddress: testAddress()})
	assert.ErrorIs(t, err, domainerrors.ErrCartTotalMismatch)
}

func TestOrderService_Checkout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	product := flatProduct(1000, 10)

	cart := entity.NewCart(userID)
	cart.AddLine(product.ID, nil, 1, 1000)

	fx.cartRepo.EXPECT().FindByUserID(ctx, userID).Return(cart, nil)
	fx.productRepo.EXPECT().FindByID(ctx, product.ID).Return(product, nil)

	factory := mockRepo.NewMockRepositoryFactory(t)
	txProductRepo := mockRepo.NewMockProductRepository(t)
	txOrderRepo := mockRepo.NewMockOrderRepository(t)
	txCartRepo := mockRepo.NewMockCartRepository(t)
	factory.EXPECT().NewProductRepository().Return(txProductRepo)
	factory.EXPECT().NewOrderRepository().Return(txOrderRepo)
	factory.EXPECT().NewCartRepository().Return(txCartRepo)
	txProductRepo.EXPECT().
		DecrementStock(ctx, product.ID, (*uuid.UUID)(nil), int64(1)).
		Return(nil)
	txOrderRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.Order")).Return(nil)
	txCartRepo.EXPECT().Clear(ctx, userID).Return(nil)
	fx.expectTransaction(t, factory)

	fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(testRecipient(userID), nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(mock.Anything, mock.AnythingOfType("*service.OrderEvent")).
		Return(errors.New("broker unavailable"))

	order, err := fx.service.Checkout(ctx, userID, usecase.CheckoutInput{DeliveryAddress: testAddress()})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, order.OrderStatus)
}

func TestOrderService_CancelOrder_Pending(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, UserID: userID, OrderStatus: entity.OrderStatusPending}
	fx.orderRepo.EXPECT().FindByIDForUser(ctx, orderID, userID).Return(order, nil)
	fx.orderRepo.EXPECT().
		TransitionStatus(ctx, orderID, entity.OrderStatusCancelled,
			entity.OrderStatusPending, entity.OrderStatusProcessing).
		Return(nil)

	cancelled, err := fx.service.CancelOrder(ctx, userID, orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, cancelled.OrderStatus)
}

func TestOrderService_CancelOrder_ShippedIsNotCancellable(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, UserID: userID, OrderStatus: entity.OrderStatusShipped}
	fx.orderRepo.EXPECT().FindByIDForUser(ctx, orderID, userID).Return(order, nil)

	_, err := fx.service.CancelOrder(ctx, userID, orderID)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrInvalidTransition.ErrorCode(), appErr.ErrorCode())
}

func TestOrderService_CancelOrder_LosesConditionalWriteRace(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, UserID: userID, OrderStatus: entity.OrderStatusProcessing}
	fx.orderRepo.EXPECT().FindByIDForUser(ctx, orderID, userID).Return(order, nil)
	fx.orderRepo.EXPECT().
		TransitionStatus(ctx, orderID, entity.OrderStatusCancelled,
			entity.OrderStatusPending, entity.OrderStatusProcessing).
		Return(repository.ErrStatusConflict)

	_, err := fx.service.CancelOrder(ctx, userID, orderID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestOrderService_CancelOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	fx.orderRepo.EXPECT().
		FindByIDForUser(ctx, orderID, userID).
		Return(nil, repository.ErrOrderNotFound)

	_, err := fx.service.CancelOrder(ctx, userID, orderID)
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_UpdateOrderStatus_ShippedPublishesEvent(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	userID := uuid.New()
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, UserID: userID, OrderStatus: entity.OrderStatusProcessing}
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(order, nil)
	fx.orderRepo.EXPECT().
		TransitionStatus(ctx, orderID, entity.OrderStatusShipped, entity.OrderStatusProcessing).
		Return(nil)
	fx.userRepo.EXPECT().FindByID(mock.Anything, userID).Return(testRecipient(userID), nil)
	fx.publisher.EXPECT().
		PublishOrderEvent(mock.Anything, mock.MatchedBy(func(event *service.OrderEvent) bool {
			return event.Kind == service.OrderEventStatusUpdated &&
				event.OrderStatus == entity.OrderStatusShipped.String()
		})).
		Return(nil)

	updated, err := fx.service.UpdateOrderStatus(ctx, orderID, entity.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, updated.OrderStatus)
}

func TestOrderService_UpdateOrderStatus_RejectsIllegalTransition(t *testing.T) {
	fx := createTestOrderService(t)

	ctx := context.Background()
	orderID := uuid.New()

	order := &entity.Order{ID: orderID, UserID: uuid.New(), OrderStatus: entity.OrderStatusDelivered}
	fx.orderRepo.EXPECT().FindByID(ctx, orderID).Return(order, nil)

	_, err := fx.service.UpdateOrderStatus(ctx, orderID, entity.OrderStatusPending)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrInvalidTransition.ErrorCode(), appErr.ErrorCode())
}

func TestOrderService_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	fx := createTestOrderService(t)

	_, err := fx.service.UpdateOrderStatus(context.Background(), uuid.New(), entity.OrderStatus("teleported"))
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
}
