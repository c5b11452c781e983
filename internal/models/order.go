package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a purchase record. An order starts open and becomes immutable,
// together with its items, once Concluded is set.
type Order struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CustomerID uint      `json:"customer_id" gorm:"index;not null" validate:"required"`
	OrderDate  time.Time `json:"order_date" gorm:"not null"`
	Concluded  bool      `json:"concluded" gorm:"not null;default:false"`
}

// OrderItem is a (product, quantity) line attached to exactly one order.
// There is no price snapshot: totals always use the current product price.
type OrderItem struct {
	ID        uint `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   uint `json:"order_id" gorm:"index;not null" validate:"required"`
	ProductID uint `json:"product_id" gorm:"index;not null" validate:"required"`
	Quantity  int  `json:"quantity" gorm:"not null" validate:"gt=0"`
}

// OrderView is an order joined with its customer's name.
type OrderView struct {
	ID           uint      `json:"id"`
	CustomerID   uint      `json:"customer_id"`
	CustomerName *string   `json:"customer_name"`
	OrderDate    time.Time `json:"order_date"`
	Concluded    bool      `json:"concluded"`
}

// OrderItemLine is an order item joined with the current price of its
// product. ProductName is nil and Price zero when the product was deleted.
type OrderItemLine struct {
	ID          uint            `json:"id"`
	OrderID     uint            `json:"order_id"`
	ProductID   uint            `json:"product_id"`
	ProductName *string         `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total" gorm:"-"`
}

// OrderSummary is a row of the order list.
type OrderSummary struct {
	OrderView
	Total decimal.Decimal `json:"total"`
}

// OrderDetail is an order with its lines and derived total.
type OrderDetail struct {
	Order OrderView       `json:"order"`
	Items []OrderItemLine `json:"items"`
	Total decimal.Decimal `json:"total"`
}
