package services_test

import (
	"context"
	"testing"

	"ordermgr/internal/errs"
	"ordermgr/internal/models"
	"ordermgr/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCustomerService_CreateCustomer(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := services.NewCustomerService(mockRepo)
	ctx := context.Background()

	customer := &models.Customer{Name: "A", Email: "a@x.com"}

	// Test successful registration
	mockRepo.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, errs.NewNotFoundError("customer", "a@x.com")).Once()
	mockRepo.On("Create", mock.Anything, customer).Return(nil).Once()
	err := service.CreateCustomer(ctx, customer)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByEmail", mock.Anything, "a@x.com").Return(&models.Customer{ID: 1, Email: "a@x.com"}, nil).Once()
	err = service.CreateCustomer(ctx, &models.Customer{Name: "B", Email: "a@x.com"})
	assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	assert.Contains(t, err.Error(), "email 'a@x.com' already registered")
	mockRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestCustomerService_CreateCustomer_MissingEmail(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := services.NewCustomerService(mockRepo)

	err := service.CreateCustomer(context.Background(), &models.Customer{Name: "A"})
	assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCustomerService_UpdateCustomer(t *testing.T) {
	mockRepo := new(MockCustomerRepository)
	service := services.NewCustomerService(mockRepo)
	ctx := context.Background()

	// Keeping one's own email is allowed
	own := &models.Customer{ID: 1, Name: "A2", Email: "a@x.com"}
	mockRepo.On("GetByEmail", mock.Anything, "a@x.com").Return(&models.Customer{ID: 1, Email: "a@x.com"}, nil).Once()
	mockRepo.On("Update", mock.Anything, own).Return(nil).Once()
	assert.NoError(t, service.UpdateCustomer(ctx, own))

	// Taking someone else's email is not
	mockRepo.On("GetByEmail", mock.Anything, "b@x.com").Return(&models.Customer{ID: 2, Email: "b@x.com"}, nil).Once()
	err := service.UpdateCustomer(ctx, &models.Customer{ID: 1, Name: "A", Email: "b@x.com"})
	assert.ErrorIs(t, err, errs.ErrConstraintViolation)

	mockRepo.AssertExpectations(t)
}

func TestCategoryService_CreateCategory(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	service := services.NewCategoryService(mockRepo)
	ctx := context.Background()

	category := &models.Category{Name: "Beverages"}
	mockRepo.On("Create", mock.Anything, category).Return(nil).Once()
	assert.NoError(t, service.CreateCategory(ctx, category))

	err := service.CreateCategory(ctx, &models.Category{})
	assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	mockRepo.AssertExpectations(t)
}
