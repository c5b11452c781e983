package services

import (
	"context"
	"time"

	"ordermgr/internal/models"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventPublisher delivers order lifecycle events to a message broker.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event models.OrderEvent) error
}

// publishOrderEvent sends an event if a publisher is configured. Delivery
// failures are logged; the state change they describe is already committed.
func publishOrderEvent(ctx context.Context, publisher EventPublisher, eventType string, order *models.Order, total decimal.Decimal, now time.Time) {
	if publisher == nil {
		log.Debugf("No event publisher configured, skipping %s for order %d", eventType, order.ID)
		return
	}
	event := models.OrderEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Total:      total,
		OccurredAt: now,
	}
	if err := publisher.PublishOrderEvent(ctx, event); err != nil {
		log.Warnf("Failed to publish %s event for order %d: %v", eventType, order.ID, err)
		return
	}
	log.Infow("Published order event", "type", eventType, "order_id", order.ID, "event_id", event.ID)
}
