package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle event types published to the message broker.
const (
	OrderEventCreated   = "order.created"
	OrderEventConcluded = "order.concluded"
)

// OrderEvent is the message body published when an order changes state.
type OrderEvent struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OrderID    uint            `json:"order_id"`
	CustomerID uint            `json:"customer_id"`
	Total      decimal.Decimal `json:"total"`
	OccurredAt time.Time       `json:"occurred_at"`
}
