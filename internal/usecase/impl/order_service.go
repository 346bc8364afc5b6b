package impl

import (
	"context"
	"log/slog"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager   repository.TransactionManager
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:   params.TxManager,
		cartRepo:    params.CartRepo,
		orderRepo:   params.OrderRepo,
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

// Checkout freezes the user's cart into a new pending order. The order
// insert, the per-line stock decrements and the cart clear all commit in one
// transaction, so a failed checkout leaves the cart intact and a successful
// one can never leave both the cart and the order behind.
func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, input usecase.CheckoutInput) (*entity.Order, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return nil, domainerrors.ErrEmptyCart
		}

		return nil, errors.Wrap(err, "failed to find cart")
	}
	if cart.IsEmpty() {
		return nil, domainerrors.ErrEmptyCart
	}

	if !input.DeliveryAddress.IsComplete() {
		return nil, domainerrors.ErrInvalidDeliveryAddress
	}

	method := input.PaymentMethod
	if method == "" {
		method = entity.PaymentMethodCard
	}

	names, attrs, err := s.resolveLineDetails(ctx, cart)
	if err != nil {
		return nil, err
	}

	order := entity.NewOrderFromCart(cart, names, attrs, input.DeliveryAddress, method)
	if order.TotalPrice != cart.Total {
		s.logger.Error("cart total diverged from line totals",
			slog.String("cart_id", cart.ID.String()),
			slog.Int64("cart_total", cart.Total),
			slog.Int64("line_total", order.TotalPrice))

		return nil, domainerrors.ErrCartTotalMismatch
	}

	err = s.txManager.Execute(ctx, func(txRepoFactory repository.RepositoryFactory) error {
		productRepo := txRepoFactory.NewProductRepository()
		for _, line := range order.Lines {
			if err := productRepo.DecrementStock(ctx, line.ProductID, line.VariantID, line.Quantity); err != nil {
				switch {
				case errors.Is(err, repository.ErrInsufficientStock):
					return domainerrors.ErrOutOfStock.WithDetails("商品 " + line.ProductName + " 庫存不足")
				case errors.Is(err, repository.ErrProductNotFound):
					return domainerrors.ErrProductNotFound.WithDetails("商品 " + line.ProductName + " 已下架")
				case errors.Is(err, repository.ErrVariantNotFound):
					return domainerrors.ErrVariantNotFound.WithDetails("商品 " + line.ProductName + " 的規格已不存在")
				default:
					return errors.Wrap(err, "failed to decrement stock")
				}
			}
		}

		if err := txRepoFactory.NewOrderRepository().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		if err := txRepoFactory.NewCartRepository().Clear(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}

		return nil
	})
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, domainerrors.ErrTransactionFailed.WrapMessage(err.Error())
	}

	publishOrderEvent(ctx, s.publisher, s.userRepo, s.logger, service.OrderEventCreated, order)

	return order, nil
}

// resolveLineDetails resolves the current product name and, for variant
// lines, the variant attributes for every cart line, matched by position.
func (s *orderService) resolveLineDetails(ctx context.Context, cart *entity.Cart) ([]string, []entity.Attributes, error) {
	names := make([]string, len(cart.Lines))
	attrs := make([]entity.Attributes, len(cart.Lines))
	products := make(map[uuid.UUID]*entity.Product, len(cart.Lines))

	for i, line := range cart.Lines {
		product, ok := products[line.ProductID]
		if !ok {
			var err error
			product, err = s.productRepo.FindByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrProductNotFound) {
					return nil, nil, domainerrors.ErrProductNotFound
				}

				return nil, nil, errors.Wrap(err, "failed to find product")
			}
			products[line.ProductID] = product
		}

		names[i] = product.Name
		if line.VariantID != nil {
			variant := product.FindVariant(*line.VariantID)
			if variant == nil {
				return nil, nil, domainerrors.ErrVariantNotFound
			}
			attrs[i] = variant.Attributes
		}
	}

	return names, attrs, nil
}

// GetMyOrders returns the user's own orders, newest first, without cancelled ones.
func (s *orderService) GetMyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	return orders, nil
}

// CancelOrder cancels the user's own order. The transition is applied with a
// conditional write so two concurrent requests cannot both move the order out
// of the same state.
func (s *orderService) CancelOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if !order.OrderStatus.IsCancellable() {
		return nil, domainerrors.ErrInvalidTransition.WithDetails("訂單狀態為 " + order.OrderStatus.String() + "，無法取消")
	}

	err = s.orderRepo.TransitionStatus(ctx, orderID, entity.OrderStatusCancelled,
		entity.OrderStatusPending, entity.OrderStatusProcessing)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, domainerrors.ErrInvalidTransition
		}

		return nil, errors.Wrap(err, "failed to cancel order")
	}

	order.OrderStatus = entity.OrderStatusCancelled

	return order, nil
}

// GetAllOrders returns every order, newest first.
func (s *orderService) GetAllOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find all orders")
	}

	return orders, nil
}

// GetUserOrders returns a specific user's orders including cancelled ones.
func (s *orderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	orders, err := s.orderRepo.FindByUser(ctx, userID, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	return orders, nil
}

// UpdateOrderStatus moves the order along the fulfilment state machine.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, next entity.OrderStatus) (*entity.Order, error) {
	if !next.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("未知的訂單狀態 " + next.String())
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	if !order.OrderStatus.CanTransitionTo(next) {
		return nil, domainerrors.ErrInvalidTransition.WithDetails(order.OrderStatus.String() + " 無法轉換為 " + next.String())
	}

	if err := s.orderRepo.TransitionStatus(ctx, orderID, next, order.OrderStatus); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, domainerrors.ErrInvalidTransition
		}

		return nil, errors.Wrap(err, "failed to update order status")
	}

	order.OrderStatus = next

	if next == entity.OrderStatusShipped || next == entity.OrderStatusDelivered {
		publishOrderEvent(ctx, s.publisher, s.userRepo, s.logger, service.OrderEventStatusUpdated, order)
	}

	return order, nil
}
