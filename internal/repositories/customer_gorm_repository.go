package repositories

import (
	"context"
	"errors"
	"fmt"

	"ordermgr/internal/errs"
	"ordermgr/internal/models"

	"gorm.io/gorm"
)

const entityCustomer = "customer"

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db: db,
	}
}

// GetAll retrieves all customers ordered by ID.
func (r *GORMCustomerRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, translateError(err, "list", entityCustomer, nil)
	}
	return customers, nil
}

// GetByID retrieves a customer by their ID from the database.
func (r *GORMCustomerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, translateError(err, "get", entityCustomer, id)
	}
	return &customer, nil
}

// GetByEmail retrieves a customer by their email from the database.
func (r *GORMCustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewNotFoundError(entityCustomer, email)
		}
		return nil, fmt.Errorf("failed to get customer by email %s: %w", email, err)
	}
	return &customer, nil
}

// Create creates a new customer. A duplicate email is a constraint violation.
func (r *GORMCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return translateError(err, "create", entityCustomer, nil)
	}
	return nil
}

// Update overwrites name and email of an existing customer.
func (r *GORMCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	res := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ?", customer.ID).
		Updates(map[string]any{"name": customer.Name, "email": customer.Email})
	if res.Error != nil {
		return translateError(res.Error, "update", entityCustomer, customer.ID)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(entityCustomer, customer.ID)
	}
	return nil
}

// Delete deletes a customer by their ID. Orders keep their customer_id and
// render the customer as absent.
func (r *GORMCustomerRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, id)
	if res.Error != nil {
		return translateError(res.Error, "delete", entityCustomer, id)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(entityCustomer, id)
	}
	return nil
}
