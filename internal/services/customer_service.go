package services

import (
	"context"
	"errors"
	"fmt"

	"ordermgr/internal/errs"
	"ordermgr/internal/models"
	"ordermgr/internal/repositories"
)

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo repositories.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.repo.GetAll(ctx)
}

func (s *CustomerService) GetCustomerByID(ctx context.Context, id uint) (*models.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateCustomer registers a new customer. The email must not be in use.
func (s *CustomerService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if err := validateEntity("customer", customer); err != nil {
		return err
	}
	if err := s.ensureEmailFree(ctx, customer.Email, 0); err != nil {
		return err
	}
	return s.repo.Create(ctx, customer)
}

// UpdateCustomer changes name and email. The email may not belong to another
// customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	if err := validateEntity("customer", customer); err != nil {
		return err
	}
	if err := s.ensureEmailFree(ctx, customer.Email, customer.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, customer)
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// ensureEmailFree fails when email belongs to a customer other than ownerID.
// The unique index still guards against concurrent inserts.
func (s *CustomerService) ensureEmailFree(ctx context.Context, email string, ownerID uint) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("failed to check email %s: %w", email, err)
	case existing.ID != ownerID:
		return errs.NewConstraintViolationError("customer", fmt.Sprintf("email '%s' already registered", email))
	default:
		return nil
	}
}
