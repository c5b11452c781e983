package repositories

import (
	"context"

	"ordermgr/internal/models"
)

// OrderRepository defines the interface for order data access. The *IfOpen
// methods are conditional writes that only touch orders that are not
// concluded and report whether a row was changed.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.OrderView, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	GetViewByID(ctx context.Context, id uint) (*models.OrderView, error)
	// LockByID reads the order and holds a row lock on it until the
	// surrounding transaction ends.
	LockByID(ctx context.Context, id uint) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateCustomerIfOpen(ctx context.Context, id, customerID uint) (bool, error)
	MarkConcluded(ctx context.Context, id uint) error
	DeleteIfOpen(ctx context.Context, id uint) (bool, error)
}
