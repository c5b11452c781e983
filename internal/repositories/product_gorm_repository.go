package repositories

import (
	"context"

	"ordermgr/internal/errs"
	"ordermgr/internal/models"

	"gorm.io/gorm"
)

const entityProduct = "product"

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products with their category names. A product whose
// category is missing is returned with a nil CategoryName.
func (r *GORMProductRepository) GetAll(ctx context.Context) ([]models.ProductView, error) {
	var products []models.ProductView
	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.id, products.name, products.price, products.category_id, categories.name AS category_name").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Order("products.id").
		Scan(&products).Error
	if err != nil {
		return nil, translateError(err, "list", entityProduct, nil)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, translateError(err, "get", entityProduct, id)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return translateError(err, "create", entityProduct, nil)
	}
	return nil
}

// Update overwrites name, price and category of an existing product.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]any{
			"name":        product.Name,
			"price":       product.Price,
			"category_id": product.CategoryID,
		})
	if res.Error != nil {
		return translateError(res.Error, "update", entityProduct, product.ID)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(entityProduct, product.ID)
	}
	return nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return translateError(res.Error, "delete", entityProduct, id)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(entityProduct, id)
	}
	return nil
}
