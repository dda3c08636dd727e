package service

import (
	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/repository"
)

// ProductService covers the admin catalog views.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService creates the product service.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// List returns one page of products.
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.products.List(filter)
}

// Get fetches one product.
func (s *ProductService) Get(id string) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create inserts a product.
func (s *ProductService) Create(product *models.Product) error {
	return s.products.Create(product)
}

// Update saves a product.
func (s *ProductService) Update(product *models.Product) error {
	return s.products.Update(product)
}

// SetAvailability toggles whether the product is listed.
func (s *ProductService) SetAvailability(id string, available bool) (*models.Product, error) {
	ok, err := s.products.SetAvailability(id, available)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.products.GetByID(id)
}

// SetFeatured toggles the featured flag.
func (s *ProductService) SetFeatured(id string, featured bool) (*models.Product, error) {
	ok, err := s.products.SetFeatured(id, featured)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.products.GetByID(id)
}
