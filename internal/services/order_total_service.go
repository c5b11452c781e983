package services

import (
	"context"

	"ordermgr/internal/models"
	"ordermgr/internal/repositories"

	"github.com/shopspring/decimal"
)

// OrderTotalService derives monetary totals from order items and the current
// product prices. Totals are never stored.
type OrderTotalService struct {
	orders repositories.OrderRepository
	items  repositories.OrderItemRepository
}

// NewOrderTotalService creates a new OrderTotalService.
func NewOrderTotalService(orders repositories.OrderRepository, items repositories.OrderItemRepository) *OrderTotalService {
	return &OrderTotalService{
		orders: orders,
		items:  items,
	}
}

// LineTotal is price times quantity.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// SumLines fills in LineTotal on every line and returns their sum. An empty
// slice sums to zero.
func SumLines(lines []models.OrderItemLine) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		lines[i].LineTotal = LineTotal(lines[i].Price, lines[i].Quantity)
		total = total.Add(lines[i].LineTotal)
	}
	return total
}

// OrderTotal returns the total of an existing order.
func (s *OrderTotalService) OrderTotal(ctx context.Context, orderID uint) (decimal.Decimal, error) {
	if _, err := s.orders.GetByID(ctx, orderID); err != nil {
		return decimal.Zero, err
	}
	lines, err := s.items.ListLines(ctx, orderID)
	if err != nil {
		return decimal.Zero, err
	}
	return SumLines(lines), nil
}

// OrderDetail returns an order with its lines, line totals and total.
func (s *OrderTotalService) OrderDetail(ctx context.Context, orderID uint) (*models.OrderDetail, error) {
	order, err := s.orders.GetViewByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	lines, err := s.items.ListLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []models.OrderItemLine{}
	}
	total := SumLines(lines)
	return &models.OrderDetail{Order: *order, Items: lines, Total: total}, nil
}

// AllLines lists the items of every order with their line totals.
func (s *OrderTotalService) AllLines(ctx context.Context) ([]models.OrderItemLine, error) {
	lines, err := s.items.ListAllLines(ctx)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []models.OrderItemLine{}
	}
	SumLines(lines)
	return lines, nil
}

// OrderSummaries lists every order with its customer name and total.
func (s *OrderTotalService) OrderSummaries(ctx context.Context) ([]models.OrderSummary, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := s.items.ListAllLines(ctx)
	if err != nil {
		return nil, err
	}

	byOrder := make(map[uint][]models.OrderItemLine, len(orders))
	for _, line := range lines {
		byOrder[line.OrderID] = append(byOrder[line.OrderID], line)
	}

	summaries := make([]models.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, models.OrderSummary{
			OrderView: order,
			Total:     SumLines(byOrder[order.ID]),
		})
	}
	return summaries, nil
}
