package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bimod/internal/client/models"
)

// StatsSource tells which endpoint the dashboard numbers came from.
type StatsSource int

const (
	StatsFromDashboard StatsSource = iota
	StatsFromReports
	StatsEmpty
)

type DashboardService interface {
	// Stats returns displayable KPIs. When the stats endpoint fails it falls
	// back to counting /api/reports/, and to zeros when that fails too; the
	// error is non-nil only in the zero case.
	Stats(ctx context.Context) (models.DashboardStats, StatsSource, error)
}

type dashboardService struct {
	api API
}

func NewDashboardService(api API) DashboardService {
	return &dashboardService{api: api}
}

func (d *dashboardService) Stats(ctx context.Context) (models.DashboardStats, StatsSource, error) {
	var stats models.DashboardStats
	if err := d.api.GetJSON(ctx, "/api/dashboard/stats", nil, &stats); err == nil {
		return stats, StatsFromDashboard, nil
	}

	var reports []models.Report
	if err := d.api.GetJSON(ctx, "/api/reports/", nil, &reports); err != nil {
		return models.DashboardStats{}, StatsEmpty, fmt.Errorf("dashboard stats: %w", err)
	}
	return models.DashboardStats{TotalReports: len(reports)}, StatsFromReports, nil
}
