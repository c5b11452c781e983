package repositories

import (
	"context"

	"ordermgr/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	// Delete removes the category and clears the reference on every product
	// that pointed to it. Products themselves are kept.
	Delete(ctx context.Context, id uint) error
}
