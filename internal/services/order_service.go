package services

import (
	"context"
	"fmt"
	"time"

	"ordermgr/internal/errs"
	"ordermgr/internal/models"
	"ordermgr/internal/repositories"

	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"
)

// OrderService manages the order lifecycle. An order is open when created
// and becomes concluded through ConcludeOrder; from then on the order and its
// items reject every mutation with errs.ErrOrderLocked.
//
// Checks on the concluded flag and the writes they guard happen atomically:
// either as one conditional UPDATE/DELETE or inside a transaction holding a
// lock on the order row.
type OrderService struct {
	uow       repositories.UnitOfWork
	totals    *OrderTotalService
	publisher EventPublisher
	now       func() time.Time
}

// NewOrderService creates a new OrderService. publisher may be nil; now
// defaults to time.Now.
func NewOrderService(uow repositories.UnitOfWork, publisher EventPublisher, now func() time.Time) *OrderService {
	if now == nil {
		now = time.Now
	}
	return &OrderService{
		uow:       uow,
		totals:    NewOrderTotalService(uow.Orders(), uow.OrderItems()),
		publisher: publisher,
		now:       now,
	}
}

// Totals exposes the aggregation service bound to the same store.
func (s *OrderService) Totals() *OrderTotalService {
	return s.totals
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	return s.uow.Orders().GetByID(ctx, id)
}

// GetOrderItemByID retrieves a single order item by its ID.
func (s *OrderService) GetOrderItemByID(ctx context.Context, id uint) (*models.OrderItem, error) {
	return s.uow.OrderItems().GetByID(ctx, id)
}

// CreateOrder opens a new order for an existing customer, dated now.
func (s *OrderService) CreateOrder(ctx context.Context, customerID uint) (*models.Order, error) {
	order := &models.Order{CustomerID: customerID, OrderDate: s.now().UTC()}
	if err := validateEntity("order", order); err != nil {
		return nil, err
	}

	err := s.uow.Transaction(ctx, func(tx repositories.UnitOfWork) error {
		if _, err := tx.Customers().GetByID(ctx, customerID); err != nil {
			return err
		}
		return tx.Orders().Create(ctx, order)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	log.Infow("Order created", "order_id", order.ID, "customer_id", customerID)
	publishOrderEvent(ctx, s.publisher, models.OrderEventCreated, order, decimal.Zero, s.now())
	return order, nil
}

// EditOrder reassigns an open order to another existing customer.
func (s *OrderService) EditOrder(ctx context.Context, orderID, customerID uint) (*models.Order, error) {
	var updated *models.Order
	err := s.uow.Transaction(ctx, func(tx repositories.UnitOfWork) error {
		order, err := tx.Orders().GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Concluded {
			return errs.OrderLocked(orderID)
		}
		if _, err := tx.Customers().GetByID(ctx, customerID); err != nil {
			return err
		}

		changed, err := tx.Orders().UpdateCustomerIfOpen(ctx, orderID, customerID)
		if err != nil {
			return err
		}
		if !changed {
			// Concluded between the read and the write.
			return errs.OrderLocked(orderID)
		}
		order.CustomerID = customerID
		updated = order
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to edit order %d: %w", orderID, err)
	}
	return updated, nil
}

// ConcludeOrder marks an order as concluded. It has no precondition other
// than the order existing and may be repeated.
func (s *OrderService) ConcludeOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	if err := s.uow.Orders().MarkConcluded(ctx, orderID); err != nil {
		return nil, fmt.Errorf("failed to conclude order %d: %w", orderID, err)
	}
	order, err := s.uow.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	total, err := s.totals.OrderTotal(ctx, orderID)
	if err != nil {
		log.Warnf("Failed to compute total of concluded order %d: %v", orderID, err)
	}
	log.Infow("Order concluded", "order_id", orderID, "total", total.StringFixed(2))
	publishOrderEvent(ctx, s.publisher, models.OrderEventConcluded, order, total, s.now())
	return order, nil
}

// DeleteOrder deletes an open order together with its items. A concluded
// order is left untouched.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uint) error {
	err := s.uow.Transaction(ctx, func(tx repositories.UnitOfWork) error {
		if _, err := lockOpenOrder(ctx, tx, orderID); err != nil {
			return err
		}
		if err := tx.OrderItems().DeleteByOrder(ctx, orderID); err != nil {
			return err
		}
		deleted, err := tx.Orders().DeleteIfOpen(ctx, orderID)
		if err != nil {
			return err
		}
		if !deleted {
			return errs.OrderLocked(orderID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete order %d: %w", orderID, err)
	}
	log.Infow("Order deleted", "order_id", orderID)
	return nil
}

// AddOrderItem appends a line to an open order.
func (s *OrderService) AddOrderItem(ctx context.Context, orderID, productID uint, quantity int) (*models.OrderItem, error) {
	item := &models.OrderItem{OrderID: orderID, ProductID: productID, Quantity: quantity}
	err := s.uow.Transaction(ctx, func(tx repositories.UnitOfWork) error {
		if _, err := lockOpenOrder(ctx, tx, orderID); err != nil {
			return err
		}
		if err := s.checkItem(ctx, tx, item); err != nil {
			return err
		}
		return tx.OrderItems().Create(ctx, item)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add item to order %d: %w", orderID, err)
	}
	return item, nil
}

// EditOrderItem changes product and quantity of an item whose order is open.
// The item stays on its order.
func (s *OrderService) EditOrderItem(ctx context.Context, itemID, productID uint, quantity int) (*models.OrderItem, error) {
	var item *models.OrderItem
	err := s.uow.Transaction(ctx, func(tx repositories.UnitOfWork) error {
		existing, err := tx.OrderItems().GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if _, err := lockOpenOrder(ctx, tx, existing.OrderID); err != nil {
			return err
		}

		existing.ProductID = productID
		existing.Quantity = quantity
		if err := s.checkItem(ctx, tx, existing); err != nil {
			return err
		}
		if err := tx.OrderItems().Update(ctx, existing); err != nil {
			return err
		}
		item = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to edit order item %d: %w", itemID, err)
	}
	return item, nil
}

// DeleteOrderItem removes an item whose order is open and returns it.
func (s *OrderService) DeleteOrderItem(ctx context.Context, itemID uint) (*models.OrderItem, error) {
	var item *models.OrderItem
	err := s.uow.Transaction(ctx, func(tx repositories.UnitOfWork) error {
		existing, err := tx.OrderItems().GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if _, err := lockOpenOrder(ctx, tx, existing.OrderID); err != nil {
			return err
		}
		if err := tx.OrderItems().Delete(ctx, itemID); err != nil {
			return err
		}
		item = existing
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete order item %d: %w", itemID, err)
	}
	return item, nil
}

func (s *OrderService) checkItem(ctx context.Context, tx repositories.UnitOfWork, item *models.OrderItem) error {
	if err := validateEntity("order item", item); err != nil {
		return err
	}
	if _, err := tx.Products().GetByID(ctx, item.ProductID); err != nil {
		return err
	}
	return nil
}

// lockOpenOrder locks the order row for the rest of the transaction and fails
// with ErrOrderLocked if the order is concluded.
func lockOpenOrder(ctx context.Context, tx repositories.UnitOfWork, orderID uint) (*models.Order, error) {
	order, err := tx.Orders().LockByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Concluded {
		return nil, errs.OrderLocked(orderID)
	}
	return order, nil
}
