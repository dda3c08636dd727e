package service

import (
	"context"
	"time"

	"github.com/jamolstroy/admin-api/internal/cache"
	"github.com/jamolstroy/admin-api/internal/logger"
	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	dashboardStatsCacheKey = "dashboard:stats"
	dashboardStatsCacheTTL = 30 * time.Second
)

// DashboardStats is the admin home screen summary. Revenue counts
// delivered orders only.
type DashboardStats struct {
	TotalOrders     int64        `json:"totalOrders"`
	TodayOrders     int64        `json:"todayOrders"`
	PendingOrders   int64        `json:"pendingOrders"`
	CompletedOrders int64        `json:"completedOrders"`
	TotalProducts   int64        `json:"totalProducts"`
	TotalRevenue    models.Money `json:"totalRevenue"`
}

// DashboardService aggregates dashboard statistics.
type DashboardService struct {
	dashboards repository.DashboardRepository
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(dashboards repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboards: dashboards}
}

// GetStats returns the dashboard summary, cached briefly to keep the
// admin home screen cheap.
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	hit, err := cache.GetJSON(ctx, dashboardStatsCacheKey, &cached)
	if err != nil {
		logger.Warnw("dashboard_stats_cache_read_failed", "error", err)
	}
	if hit {
		return &cached, nil
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	row, err := s.dashboards.GetOverview(todayStart)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalOrders:     row.TotalOrders,
		TodayOrders:     row.TodayOrders,
		PendingOrders:   row.PendingOrders,
		CompletedOrders: row.CompletedOrders,
		TotalProducts:   row.TotalProducts,
		TotalRevenue:    models.NewMoneyFromDecimal(decimal.NewFromFloat(row.TotalRevenue)),
	}

	if err := cache.SetJSON(ctx, dashboardStatsCacheKey, stats, dashboardStatsCacheTTL); err != nil {
		logger.Warnw("dashboard_stats_cache_write_failed", "error", err)
	}
	return stats, nil
}
