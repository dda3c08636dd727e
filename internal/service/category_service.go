package service

import (
	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/repository"
)

// CategoryService covers category management.
type CategoryService struct {
	categories repository.CategoryRepository
}

// NewCategoryService creates the category service.
func NewCategoryService(categories repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// List returns one page of categories.
func (s *CategoryService) List(filter repository.CategoryListFilter) ([]models.Category, int64, error) {
	return s.categories.List(filter)
}

// Get fetches one category.
func (s *CategoryService) Get(id string) (*models.Category, error) {
	category, err := s.categories.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

// Create inserts a category.
func (s *CategoryService) Create(category *models.Category) error {
	return s.categories.Create(category)
}

// Update saves a category.
func (s *CategoryService) Update(category *models.Category) error {
	return s.categories.Update(category)
}

// Delete removes a category.
func (s *CategoryService) Delete(id string) error {
	ok, err := s.categories.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
