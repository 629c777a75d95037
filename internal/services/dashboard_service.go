package services

import (
	"context"
	"database/sql"
	"fmt"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/repositories"
)

// DefaultLowStockThreshold applies when no threshold is configured.
const DefaultLowStockThreshold = 10

// DashboardService aggregates the headline numbers of the admin dashboard.
type DashboardService interface {
	Summary(ctx context.Context) (*models.DashboardSummary, error)
}

type dashboardService struct {
	repo              repositories.DashboardRepository
	db                *sql.DB
	lowStockThreshold int
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(repo repositories.DashboardRepository, db *sql.DB, lowStockThreshold int) DashboardService {
	if lowStockThreshold < 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &dashboardService{repo: repo, db: db, lowStockThreshold: lowStockThreshold}
}

func (s *dashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	summary, err := s.repo.GetSummary(ctx, s.db, s.lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard summary: %w", err)
	}
	return summary, nil
}
