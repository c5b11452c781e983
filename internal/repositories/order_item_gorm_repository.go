package repositories

import (
	"context"

	"ordermgr/internal/errs"
	"ordermgr/internal/models"

	"gorm.io/gorm"
)

const entityOrderItem = "order item"

// GORMOrderItemRepository is a GORM implementation of OrderItemRepository.
type GORMOrderItemRepository struct {
	db *gorm.DB
}

// NewGORMOrderItemRepository creates a new instance of GORMOrderItemRepository.
func NewGORMOrderItemRepository(db *gorm.DB) *GORMOrderItemRepository {
	return &GORMOrderItemRepository{db: db}
}

// lines selects order items with the current price of their product. A
// missing product yields a NULL name and a zero price.
func (r *GORMOrderItemRepository) lines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("order_items").
		Select("order_items.id, order_items.order_id, order_items.product_id, " +
			"products.name AS product_name, COALESCE(products.price, 0) AS price, order_items.quantity").
		Joins("LEFT JOIN products ON products.id = order_items.product_id").
		Order("order_items.id")
}

// GetByID retrieves a single order item by its ID.
func (r *GORMOrderItemRepository) GetByID(ctx context.Context, id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translateError(err, "get", entityOrderItem, id)
	}
	return &item, nil
}

// ListLines returns the lines of one order.
func (r *GORMOrderItemRepository) ListLines(ctx context.Context, orderID uint) ([]models.OrderItemLine, error) {
	var lines []models.OrderItemLine
	if err := r.lines(ctx).Where("order_items.order_id = ?", orderID).Scan(&lines).Error; err != nil {
		return nil, translateError(err, "list", entityOrderItem, nil)
	}
	return lines, nil
}

// ListAllLines returns the lines of every order.
func (r *GORMOrderItemRepository) ListAllLines(ctx context.Context) ([]models.OrderItemLine, error) {
	var lines []models.OrderItemLine
	if err := r.lines(ctx).Scan(&lines).Error; err != nil {
		return nil, translateError(err, "list", entityOrderItem, nil)
	}
	return lines, nil
}

// Create inserts a new order item.
func (r *GORMOrderItemRepository) Create(ctx context.Context, item *models.OrderItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return translateError(err, "create", entityOrderItem, nil)
	}
	return nil
}

// Update changes product and quantity of an item. The order_id column is
// never rewritten.
func (r *GORMOrderItemRepository) Update(ctx context.Context, item *models.OrderItem) error {
	res := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{"product_id": item.ProductID, "quantity": item.Quantity})
	if res.Error != nil {
		return translateError(res.Error, "update", entityOrderItem, item.ID)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(entityOrderItem, item.ID)
	}
	return nil
}

// Delete removes a single order item.
func (r *GORMOrderItemRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.OrderItem{}, id)
	if res.Error != nil {
		return translateError(res.Error, "delete", entityOrderItem, id)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(entityOrderItem, id)
	}
	return nil
}

// DeleteByOrder removes every item of an order.
func (r *GORMOrderItemRepository) DeleteByOrder(ctx context.Context, orderID uint) error {
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error
	if err != nil {
		return translateError(err, "delete", entityOrderItem, nil)
	}
	return nil
}
