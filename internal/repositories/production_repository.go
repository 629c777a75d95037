package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"snack_factory_backend/internal/models"
)

// ProductionRepository defines the interface for production record database operations.
type ProductionRepository interface {
	Create(ctx context.Context, executor SQLExecutor, production *models.Production) error
	List(ctx context.Context, executor SQLExecutor) ([]models.Production, error)
	GetByID(ctx context.Context, executor SQLExecutor, id string) (*models.Production, error)
	Update(ctx context.Context, executor SQLExecutor, production *models.Production) error
	Delete(ctx context.Context, executor SQLExecutor, id string) error
}

type productionRepository struct{}

// NewProductionRepository creates a new instance of ProductionRepository.
func NewProductionRepository() ProductionRepository {
	return &productionRepository{}
}

const productionColumns = `id, snack_name, quantity, date, material_used, status, created_at, updated_at`

func scanProduction(s scanner) (*models.Production, error) {
	var p models.Production
	if err := s.Scan(&p.ID, &p.SnackName, &p.Quantity, &p.Date, &p.MaterialUsed, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if p.MaterialUsed == nil {
		p.MaterialUsed = models.MaterialUsageList{}
	}
	return &p, nil
}

func (r *productionRepository) Create(ctx context.Context, executor SQLExecutor, production *models.Production) error {
	query := `INSERT INTO productions (` + productionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	now := time.Now().UTC()
	production.CreatedAt, production.UpdatedAt = now, now
	_, err := executor.ExecContext(ctx, query,
		production.ID, production.SnackName, production.Quantity, production.Date,
		production.MaterialUsed, production.Status, production.CreatedAt, production.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: creating production: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *productionRepository) List(ctx context.Context, executor SQLExecutor) ([]models.Production, error) {
	rows, err := executor.QueryContext(ctx, `SELECT `+productionColumns+` FROM productions ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing productions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	productions := []models.Production{}
	for rows.Next() {
		p, err := scanProduction(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning production: %v", ErrDatabaseError, err)
		}
		productions = append(productions, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating productions: %v", ErrDatabaseError, err)
	}
	return productions, nil
}

func (r *productionRepository) GetByID(ctx context.Context, executor SQLExecutor, id string) (*models.Production, error) {
	p, err := scanProduction(executor.QueryRowContext(ctx, `SELECT `+productionColumns+` FROM productions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting production %s: %v", ErrDatabaseError, id, err)
	}
	return p, nil
}

func (r *productionRepository) Update(ctx context.Context, executor SQLExecutor, production *models.Production) error {
	query := `UPDATE productions SET snack_name = $1, quantity = $2, date = $3, material_used = $4, status = $5, updated_at = $6
	          WHERE id = $7 RETURNING created_at`
	production.UpdatedAt = time.Now().UTC()
	err := executor.QueryRowContext(ctx, query,
		production.SnackName, production.Quantity, production.Date, production.MaterialUsed,
		production.Status, production.UpdatedAt, production.ID,
	).Scan(&production.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: updating production %s: %v", ErrDatabaseError, production.ID, err)
	}
	return nil
}

func (r *productionRepository) Delete(ctx context.Context, executor SQLExecutor, id string) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM productions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting production %s: %v", ErrDatabaseError, id, err)
	}
	if err := rowsAffectedOrNotFound(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: deleting production %s: %v", ErrDatabaseError, id, err)
	}
	return nil
}
