package repository

import (
	"time"

	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository aggregates dashboard counters. It only queries;
// business rules live in the service layer.
type DashboardRepository interface {
	GetOverview(todayStart time.Time) (DashboardOverviewRow, error)
}

// DashboardOverviewRow holds raw dashboard counters. Pending covers
// orders still waiting for a decision (pending or confirmed),
// Completed counts delivered orders, Revenue sums delivered order
// totals.
type DashboardOverviewRow struct {
	TotalOrders     int64
	TodayOrders     int64
	PendingOrders   int64
	CompletedOrders int64
	TotalProducts   int64
	TotalRevenue    float64
}

// GormDashboardRepository is the GORM implementation.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates a dashboard repository.
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview collects the dashboard counters.
func (r *GormDashboardRepository) GetOverview(todayStart time.Time) (DashboardOverviewRow, error) {
	result := DashboardOverviewRow{}

	if err := r.db.Model(&models.Order{}).Count(&result.TotalOrders).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("created_at >= ?", todayStart).
		Count(&result.TodayOrders).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("status IN ?", []string{constants.OrderStatusPending, constants.OrderStatusConfirmed}).
		Count(&result.PendingOrders).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Order{}).
		Where("status = ?", constants.OrderStatusDelivered).
		Count(&result.CompletedOrders).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).
		Where("is_available = ?", true).
		Count(&result.TotalProducts).Error; err != nil {
		return result, err
	}
	err := r.db.Model(&models.Order{}).
		Where("status = ?", constants.OrderStatusDelivered).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.TotalRevenue).Error
	return result, err
}
