package services

import (
	"context"

	"ordermgr/internal/models"
	"ordermgr/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetAll(ctx)
}

func (s *CategoryService) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := validateEntity("category", category); err != nil {
		return err
	}
	return s.repo.Create(ctx, category)
}

func (s *CategoryService) UpdateCategory(ctx context.Context, category *models.Category) error {
	if err := validateEntity("category", category); err != nil {
		return err
	}
	return s.repo.Update(ctx, category)
}

// DeleteCategory deletes a category. Its products stay, uncategorised.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
