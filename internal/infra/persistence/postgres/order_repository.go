// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// Create persists a new order with its frozen lines.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required order information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	// Update the entity with generated values
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// FindByID retrieves an order regardless of owner.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// FindByIDForUser retrieves an order only if it belongs to the user. An order
// owned by someone else reads as not found, never as forbidden.
func (repo *orderRepository) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order for user")
	}

	return toOrderDomain(&orderM), nil
}

// FindByUser retrieves the user's orders, newest first.
func (repo *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID, includeCancelled bool) ([]*entity.Order, error) {
	query := repo.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeCancelled {
		query = query.Where("order_status <> ?", entity.OrderStatusCancelled.String())
	}

	var orderModels []*model.OrderModel
	if err := query.Order("created_at DESC").Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by user")
	}

	return toOrderDomainList(orderModels), nil
}

// FindAll retrieves every order, newest first.
func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomainList(orderModels), nil
}

// FindByPaymentReference retrieves the order carrying the reference.
func (repo *orderRepository) FindByPaymentReference(ctx context.Context, reference string) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Where("payment_reference = ?", reference).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by payment reference")
	}

	return toOrderDomain(&orderM), nil
}

// SetPaymentReference stores (or replaces) the payment reference on the order.
func (repo *orderRepository) SetPaymentReference(ctx context.Context, id uuid.UUID, reference string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("payment_reference", reference)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrConflict.WrapMessage("payment reference already in use")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to set payment reference")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// TransitionStatus moves the order to next only while its current status is
// one of from. The state check and the write happen in one conditional
// statement, so two racing transitions cannot both win.
func (repo *orderRepository) TransitionStatus(ctx context.Context, id uuid.UUID, next entity.OrderStatus, from ...entity.OrderStatus) error {
	fromStatuses := make([]string, 0, len(from))
	for _, status := range from {
		fromStatuses = append(fromStatuses, status.String())
	}

	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND order_status IN ?", id, fromStatuses).
		Update("order_status", next.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to transition order status")
	}
	if result.RowsAffected == 0 {
		return repo.classifyMissedWrite(ctx, id, repository.ErrStatusConflict)
	}

	return nil
}

// ConfirmPayment atomically marks the order paid while the payment is still
// pending and the order has not been cancelled. The order moves to processing
// only when it is still pending; an order an admin already advanced keeps its
// status and just gets the payment recorded. A replayed confirmation matches
// no row and reads back as ErrPaymentAlreadyApplied.
func (repo *orderRepository) ConfirmPayment(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ? AND payment_status = ? AND order_status <> ?",
			id, entity.PaymentStatusPending.String(), entity.OrderStatusCancelled.String()).
		Updates(map[string]any{
			"payment_status": entity.PaymentStatusPaid.String(),
			"order_status": gorm.Expr("CASE WHEN order_status = ? THEN ? ELSE order_status END",
				entity.OrderStatusPending.String(), entity.OrderStatusProcessing.String()),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to confirm payment")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// No row matched: read the order back to tell a replay apart from a
	// cancelled order or another genuine state conflict.
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrOrderNotFound
		}

		return errors.Wrap(err, "failed to re-read order after missed payment confirmation")
	}
	if orderM.PaymentStatus == entity.PaymentStatusPaid.String() {
		return repository.ErrPaymentAlreadyApplied
	}
	if orderM.OrderStatus == entity.OrderStatusCancelled.String() {
		return repository.ErrOrderCancelled
	}

	return repository.ErrStatusConflict
}

// classifyMissedWrite distinguishes a missing order from a lost conditional
// write after a zero-row update.
func (repo *orderRepository) classifyMissedWrite(ctx context.Context, id uuid.UUID, conflictErr error) error {
	var count int64
	if err := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check order existence")
	}
	if count == 0 {
		return repository.ErrOrderNotFound
	}

	return conflictErr
}

func toOrderDomainList(orderModels []*model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders
}

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	var reference string
	if data.PaymentReference != nil {
		reference = *data.PaymentReference
	}

	return &entity.Order{
		ID:               data.ID,
		UserID:           data.UserID,
		Lines:            data.Lines,
		TotalPrice:       data.TotalPrice,
		DeliveryAddress:  entity.Address(data.DeliveryAddress),
		PaymentMethod:    entity.PaymentMethod(data.PaymentMethod),
		PaymentStatus:    entity.PaymentStatus(data.PaymentStatus),
		OrderStatus:      entity.OrderStatus(data.OrderStatus),
		PaymentReference: reference,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromOrderDomain converts a domain Order entity to a GORM OrderModel.
func fromOrderDomain(data *entity.Order) *model.OrderModel {
	if data == nil {
		return nil
	}

	var reference *string
	if data.PaymentReference != "" {
		reference = &data.PaymentReference
	}

	return &model.OrderModel{
		ID:               data.ID,
		UserID:           data.UserID,
		Lines:            model.OrderLinesColumn(data.Lines),
		TotalPrice:       data.TotalPrice,
		DeliveryAddress:  model.AddressColumn(data.DeliveryAddress),
		PaymentMethod:    string(data.PaymentMethod),
		PaymentStatus:    data.PaymentStatus.String(),
		OrderStatus:      data.OrderStatus.String(),
		PaymentReference: reference,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}
