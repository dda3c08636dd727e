package service

import (
	"time"

	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/repository"
)

// OrderService covers the admin order views.
type OrderService struct {
	orders repository.OrderRepository
}

// NewOrderService creates the order service.
func NewOrderService(orders repository.OrderRepository) *OrderService {
	return &OrderService{orders: orders}
}

// List returns one page of orders.
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orders.List(filter)
}

// ListToday returns orders created since local midnight.
func (s *OrderService) ListToday(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	filter.CreatedFrom = &todayStart
	return s.orders.List(filter)
}

// Get fetches one order with its items.
func (s *OrderService) Get(id string) (*models.Order, error) {
	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// UpdateStatus moves an order to a new status.
func (s *OrderService) UpdateStatus(id, status string) (*models.Order, error) {
	if !constants.IsValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}
	ok, err := s.orders.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return s.orders.GetByID(id)
}
