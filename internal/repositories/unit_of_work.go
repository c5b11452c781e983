package repositories

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork hands out repositories bound to one database handle. Inside
// Transaction the repositories share a single transaction that commits when
// fn returns nil and rolls back otherwise.
type UnitOfWork interface {
	Categories() CategoryRepository
	Products() ProductRepository
	Customers() CustomerRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Transaction(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// GORMUnitOfWork is a GORM implementation of UnitOfWork.
type GORMUnitOfWork struct {
	db *gorm.DB
}

// NewGORMUnitOfWork creates a unit of work over db.
func NewGORMUnitOfWork(db *gorm.DB) *GORMUnitOfWork {
	return &GORMUnitOfWork{db: db}
}

func (u *GORMUnitOfWork) Categories() CategoryRepository {
	return NewGORMCategoryRepository(u.db)
}

func (u *GORMUnitOfWork) Products() ProductRepository {
	return NewGORMProductRepository(u.db)
}

func (u *GORMUnitOfWork) Customers() CustomerRepository {
	return NewGORMCustomerRepository(u.db)
}

func (u *GORMUnitOfWork) Orders() OrderRepository {
	return NewGORMOrderRepository(u.db)
}

func (u *GORMUnitOfWork) OrderItems() OrderItemRepository {
	return NewGORMOrderItemRepository(u.db)
}

// Transaction runs fn inside a database transaction. Nested calls use
// savepoints.
func (u *GORMUnitOfWork) Transaction(ctx context.Context, fn func(uow UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GORMUnitOfWork{db: tx})
	})
}
