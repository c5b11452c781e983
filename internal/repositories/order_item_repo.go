package repositories

import (
	"context"

	"ordermgr/internal/models"
)

// OrderItemRepository defines the interface for order item data access.
// Lines are items joined against the current product table.
type OrderItemRepository interface {
	GetByID(ctx context.Context, id uint) (*models.OrderItem, error)
	ListLines(ctx context.Context, orderID uint) ([]models.OrderItemLine, error)
	ListAllLines(ctx context.Context) ([]models.OrderItemLine, error)
	Create(ctx context.Context, item *models.OrderItem) error
	Update(ctx context.Context, item *models.OrderItem) error
	Delete(ctx context.Context, id uint) error
	DeleteByOrder(ctx context.Context, orderID uint) error
}
