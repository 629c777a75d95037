package repositories

import (
	"context"
	"fmt"

	"snack_factory_backend/internal/models"
)

// DashboardRepository aggregates counts across the factory tables.
type DashboardRepository interface {
	GetSummary(ctx context.Context, executor SQLExecutor, lowStockThreshold int) (*models.DashboardSummary, error)
}

type dashboardRepository struct{}

// NewDashboardRepository creates a new instance of DashboardRepository.
func NewDashboardRepository() DashboardRepository {
	return &dashboardRepository{}
}

func (r *dashboardRepository) GetSummary(ctx context.Context, executor SQLExecutor, lowStockThreshold int) (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{
		LowStockThreshold:      lowStockThreshold,
		CustomerOrdersByStatus: []models.StatusCount{},
	}

	err := executor.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM materials`).
		Scan(&summary.MaterialCount, &summary.MaterialTotalQuantity)
	if err != nil {
		return nil, fmt.Errorf("%w: material totals: %v", ErrDatabaseError, err)
	}

	err = executor.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0), COUNT(*) FILTER (WHERE quantity <= $1) FROM inventory`, lowStockThreshold,
	).Scan(&summary.InventoryCount, &summary.InventoryTotalQuantity, &summary.LowStockItemsCount)
	if err != nil {
		return nil, fmt.Errorf("%w: inventory totals: %v", ErrDatabaseError, err)
	}

	err = executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, models.OrderPending).
		Scan(&summary.PendingOrdersCount)
	if err != nil {
		return nil, fmt.Errorf("%w: pending orders count: %v", ErrDatabaseError, err)
	}

	err = executor.QueryRowContext(ctx, `SELECT COUNT(*) FROM productions`).Scan(&summary.ProductionCount)
	if err != nil {
		return nil, fmt.Errorf("%w: production count: %v", ErrDatabaseError, err)
	}

	rows, err := executor.QueryContext(ctx, `SELECT status, COUNT(*) FROM customer_orders GROUP BY status ORDER BY status`)
	if err != nil {
		return nil, fmt.Errorf("%w: customer orders by status: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	for rows.Next() {
		var sc models.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("%w: scanning status count: %v", ErrDatabaseError, err)
		}
		summary.CustomerOrdersByStatus = append(summary.CustomerOrdersByStatus, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating status counts: %v", ErrDatabaseError, err)
	}
	return summary, nil
}
