package service

import (
	"errors"
	"testing"
	"time"

	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewOrderService(repository.NewOrderRepository(db)), db
}

func seedOrder(t *testing.T, db *gorm.DB, number, status string, createdAt time.Time) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNumber:   number,
		CustomerName:  "Alisher Karimov",
		CustomerPhone: "+998901234567",
		Status:        status,
		TotalAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(250000)),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("created_at", createdAt).Error; err != nil {
		t.Fatalf("backdate order failed: %v", err)
	}
	return order
}

func TestUpdateStatusValidatesValue(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	order := seedOrder(t, db, "JS-2001", constants.OrderStatusPending, time.Now())

	if _, err := svc.UpdateStatus(order.ID, "shippedd"); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("expected ErrInvalidOrderStatus, got %v", err)
	}

	updated, err := svc.UpdateStatus(order.ID, constants.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != constants.OrderStatusConfirmed {
		t.Fatalf("status = %s", updated.Status)
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)
	if _, err := svc.UpdateStatus("missing-id", constants.OrderStatusConfirmed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListTodayFiltersByMidnight(t *testing.T) {
	svc, db := setupOrderServiceTest(t)
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	seedOrder(t, db, "JS-2002", constants.OrderStatusPending, todayStart.Add(time.Hour))
	seedOrder(t, db, "JS-2003", constants.OrderStatusPending, todayStart.Add(-time.Hour))

	orders, total, err := svc.ListToday(repository.OrderListFilter{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("list today failed: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("expected 1 order, got total=%d len=%d", total, len(orders))
	}
	if orders[0].OrderNumber != "JS-2002" {
		t.Fatalf("unexpected order: %s", orders[0].OrderNumber)
	}
}
