package services

import (
	"context"
	"fmt"

	"ordermgr/internal/errs"
	"ordermgr/internal/models"
	"ordermgr/internal/repositories"

	"github.com/shopspring/decimal"
)

// PricePlaces is the number of decimal places a price is stored with.
const PricePlaces = 2

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository) *ProductService {
	return &ProductService{
		repo:       repo,
		categories: categories,
	}
}

// GetAllProducts retrieves all products with their category names.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.ProductView, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct creates a new product. A category, when given, must exist.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := s.check(ctx, product); err != nil {
		return err
	}
	return s.repo.Create(ctx, product)
}

// UpdateProduct updates an existing product. Price changes apply to every
// order that references the product, concluded or not.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if err := s.check(ctx, product); err != nil {
		return err
	}
	return s.repo.Update(ctx, product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// RequirePrice returns the submitted price, or a constraint violation when
// none was submitted.
func RequirePrice(price *decimal.Decimal) (decimal.Decimal, error) {
	if price == nil {
		return decimal.Zero, errs.NewConstraintViolationError("product", "price is required")
	}
	return *price, nil
}

func (s *ProductService) check(ctx context.Context, product *models.Product) error {
	if err := validateEntity("product", product); err != nil {
		return err
	}
	product.Price = product.Price.Round(PricePlaces)
	if product.CategoryID == nil {
		return nil
	}
	if _, err := s.categories.GetByID(ctx, *product.CategoryID); err != nil {
		return fmt.Errorf("invalid category for product: %w", err)
	}
	return nil
}
