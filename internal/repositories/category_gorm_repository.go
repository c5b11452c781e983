package repositories

import (
	"context"

	"ordermgr/internal/errs"
	"ordermgr/internal/models"

	"gorm.io/gorm"
)

const entityCategory = "category"

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// GetAll retrieves all categories ordered by ID.
func (r *GORMCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, translateError(err, "list", entityCategory, nil)
	}
	return categories, nil
}

// GetByID retrieves a single category by its ID.
func (r *GORMCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translateError(err, "get", entityCategory, id)
	}
	return &category, nil
}

// Create inserts a new category and fills in its ID.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return translateError(err, "create", entityCategory, nil)
	}
	return nil
}

// Update renames an existing category.
func (r *GORMCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	res := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]any{"name": category.Name})
	if res.Error != nil {
		return translateError(res.Error, "update", entityCategory, category.ID)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(entityCategory, category.ID)
	}
	return nil
}

// Delete removes a category. Products in it get a NULL category_id in the
// same transaction.
func (r *GORMCategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
		if err != nil {
			return translateError(err, "detach products from", entityCategory, id)
		}

		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return translateError(res.Error, "delete", entityCategory, id)
		}
		if res.RowsAffected == 0 {
			return errs.NewNotFoundError(entityCategory, id)
		}
		return nil
	})
}
