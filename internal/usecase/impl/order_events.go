package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
)

// publishOrderEvent publishes a notification event for the order after the
// producing transaction has committed. Delivery is best-effort: any failure is
// logged and swallowed so it can never undo the state change it describes.
func publishOrderEvent(ctx context.Context, publisher service.EventPublisher, userRepo repository.UserRepository, logger *slog.Logger, kind string, order *entity.Order) {
	log := deliverycontext.GetLoggerOrDefault(ctx, logger)

	user, err := userRepo.FindByID(ctx, order.UserID)
	if err != nil {
		log.Warn("skipping order event, recipient lookup failed",
			slog.String("kind", kind),
			slog.String("order_id", order.ID.String()),
			slog.Any("error", err))

		return
	}

	event := &service.OrderEvent{
		RequestID:      deliverycontext.GetRequestIDFromContext(ctx),
		Kind:           kind,
		OrderID:        order.ID.String(),
		UserID:         order.UserID.String(),
		RecipientEmail: user.Email,
		RecipientName:  user.FullName,
		TotalPrice:     order.TotalPrice,
		OrderStatus:    order.OrderStatus.String(),
	}

	if err := publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Warn("failed to publish order event",
			slog.String("kind", kind),
			slog.String("order_id", order.ID.String()),
			slog.Any("error", err))
	}
}
