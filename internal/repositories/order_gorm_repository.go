package repositories

import (
	"context"

	"ordermgr/internal/errs"
	"ordermgr/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityOrder = "order"

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func (r *GORMOrderRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("orders").
		Select("orders.id, orders.customer_id, customers.name AS customer_name, orders.order_date, orders.concluded").
		Joins("LEFT JOIN customers ON customers.id = orders.customer_id")
}

// GetAll retrieves all orders joined with their customer names.
func (r *GORMOrderRepository) GetAll(ctx context.Context) ([]models.OrderView, error) {
	var orders []models.OrderView
	if err := r.views(ctx).Order("orders.id").Scan(&orders).Error; err != nil {
		return nil, translateError(err, "list", entityOrder, nil)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, translateError(err, "get", entityOrder, id)
	}
	return &order, nil
}

// GetViewByID retrieves a single order joined with its customer name.
func (r *GORMOrderRepository) GetViewByID(ctx context.Context, id uint) (*models.OrderView, error) {
	var orders []models.OrderView
	if err := r.views(ctx).Where("orders.id = ?", id).Limit(1).Scan(&orders).Error; err != nil {
		return nil, translateError(err, "get", entityOrder, id)
	}
	if len(orders) == 0 {
		return nil, errs.NewNotFoundError(entityOrder, id)
	}
	return &orders[0], nil
}

// LockByID reads an order with SELECT ... FOR UPDATE. SQLite has no row
// locks; there the single write transaction serialises callers instead.
func (r *GORMOrderRepository) LockByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error
	if err != nil {
		return nil, translateError(err, "lock", entityOrder, id)
	}
	return &order, nil
}

// Create inserts a new order.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return translateError(err, "create", entityOrder, nil)
	}
	return nil
}

// UpdateCustomerIfOpen reassigns the customer of an open order in a single
// conditional statement.
func (r *GORMOrderRepository) UpdateCustomerIfOpen(ctx context.Context, id, customerID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND concluded = ?", id, false).
		Update("customer_id", customerID)
	if res.Error != nil {
		return false, translateError(res.Error, "update", entityOrder, id)
	}
	return res.RowsAffected > 0, nil
}

// MarkConcluded sets the concluded flag. Concluding a concluded order is a
// no-op that still succeeds.
func (r *GORMOrderRepository) MarkConcluded(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("concluded", true)
	if res.Error != nil {
		return translateError(res.Error, "conclude", entityOrder, id)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(entityOrder, id)
	}
	return nil
}

// DeleteIfOpen deletes the order only if it is not concluded.
func (r *GORMOrderRepository) DeleteIfOpen(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND concluded = ?", id, false).
		Delete(&models.Order{})
	if res.Error != nil {
		return false, translateError(res.Error, "delete", entityOrder, id)
	}
	return res.RowsAffected > 0, nil
}
