package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"snack_factory_backend/internal/models"
)

const defaultMovementLimit = 100

// StockMovementRepository defines the interface for stock movement audit records.
type StockMovementRepository interface {
	CreateMovement(ctx context.Context, executor SQLExecutor, movement *models.StockMovement) error
	GetMovements(ctx context.Context, executor SQLExecutor, filters models.MovementFilters) ([]models.StockMovement, error)
}

type stockMovementRepository struct{}

// NewStockMovementRepository creates a new instance of StockMovementRepository.
func NewStockMovementRepository() StockMovementRepository {
	return &stockMovementRepository{}
}

func (r *stockMovementRepository) CreateMovement(ctx context.Context, executor SQLExecutor, movement *models.StockMovement) error {
	query := `INSERT INTO stock_movements
	          (id, resource_type, resource_id, movement_type, quantity_changed, reason, reference_id, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now().UTC()
	}
	_, err := executor.ExecContext(ctx, query,
		movement.ID, movement.ResourceType, movement.ResourceID, movement.MovementType,
		movement.QuantityChanged, movement.Reason, movement.ReferenceID, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: creating stock movement: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *stockMovementRepository) GetMovements(ctx context.Context, executor SQLExecutor, filters models.MovementFilters) ([]models.StockMovement, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, resource_type, resource_id, movement_type, quantity_changed, reason, reference_id, created_at
	  FROM stock_movements`)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.ResourceType != nil && *filters.ResourceType != "" {
		conditions = append(conditions, fmt.Sprintf("resource_type = $%d", argCount))
		args = append(args, *filters.ResourceType)
		argCount++
	}
	if filters.ResourceID != nil && *filters.ResourceID != "" {
		conditions = append(conditions, fmt.Sprintf("resource_id = $%d", argCount))
		args = append(args, *filters.ResourceID)
		argCount++
	}
	if filters.MovementType != nil && *filters.MovementType != "" {
		conditions = append(conditions, fmt.Sprintf("movement_type = $%d", argCount))
		args = append(args, *filters.MovementType)
		argCount++
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultMovementLimit
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argCount))
	args = append(args, limit)

	rows, err := executor.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting stock movements: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	movements := []models.StockMovement{}
	for rows.Next() {
		var m models.StockMovement
		var reason, reference sql.NullString
		if err := rows.Scan(&m.ID, &m.ResourceType, &m.ResourceID, &m.MovementType,
			&m.QuantityChanged, &reason, &reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning stock movement: %v", ErrDatabaseError, err)
		}
		if reason.Valid {
			m.Reason = &reason.String
		}
		if reference.Valid {
			m.ReferenceID = &reference.String
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating stock movements: %v", ErrDatabaseError, err)
	}
	return movements, nil
}
