package models

import "github.com/shopspring/decimal"

// Product represents a product in the store.
type Product struct {
	ID         uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name       string          `json:"name" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	CategoryID *uint           `json:"category_id" gorm:"index"`
}

// ProductView is a product joined with its category name. CategoryName is nil
// when the product has no category or the category no longer exists.
type ProductView struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	CategoryID   *uint           `json:"category_id"`
	CategoryName *string         `json:"category_name"`
}
