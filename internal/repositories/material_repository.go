package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"snack_factory_backend/internal/models"
)

// MaterialRepository defines the interface for raw material database operations.
type MaterialRepository interface {
	Create(ctx context.Context, executor SQLExecutor, material *models.Material) error
	List(ctx context.Context, executor SQLExecutor) ([]models.Material, error)
	GetByID(ctx context.Context, executor SQLExecutor, id string) (*models.Material, error)
	GetForUpdate(ctx context.Context, executor SQLExecutor, id string) (*models.Material, error)
	Update(ctx context.Context, executor SQLExecutor, material *models.Material) error
	Delete(ctx context.Context, executor SQLExecutor, id string) error
	// DecrementQuantity subtracts amount only when at least amount is on hand.
	DecrementQuantity(ctx context.Context, executor SQLExecutor, id string, amount float64) (*models.Material, error)
}

type materialRepository struct{}

// NewMaterialRepository creates a new instance of MaterialRepository.
func NewMaterialRepository() MaterialRepository {
	return &materialRepository{}
}

const materialColumns = `id, name, quantity, unit, price, created_at, updated_at`

func scanMaterial(s scanner) (*models.Material, error) {
	var m models.Material
	if err := s.Scan(&m.ID, &m.Name, &m.Quantity, &m.Unit, &m.Price, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepository) Create(ctx context.Context, executor SQLExecutor, material *models.Material) error {
	query := `INSERT INTO materials (` + materialColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	now := time.Now().UTC()
	material.CreatedAt, material.UpdatedAt = now, now
	_, err := executor.ExecContext(ctx, query,
		material.ID, material.Name, material.Quantity, material.Unit, material.Price, material.CreatedAt, material.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: creating material: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *materialRepository) List(ctx context.Context, executor SQLExecutor) ([]models.Material, error) {
	rows, err := executor.QueryContext(ctx, `SELECT `+materialColumns+` FROM materials ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing materials: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	materials := []models.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning material: %v", ErrDatabaseError, err)
		}
		materials = append(materials, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating materials: %v", ErrDatabaseError, err)
	}
	return materials, nil
}

func (r *materialRepository) GetByID(ctx context.Context, executor SQLExecutor, id string) (*models.Material, error) {
	return r.getOne(ctx, executor, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

func (r *materialRepository) GetForUpdate(ctx context.Context, executor SQLExecutor, id string) (*models.Material, error) {
	return r.getOne(ctx, executor, `SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
}

func (r *materialRepository) getOne(ctx context.Context, executor SQLExecutor, query, id string) (*models.Material, error) {
	m, err := scanMaterial(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting material %s: %v", ErrDatabaseError, id, err)
	}
	return m, nil
}

func (r *materialRepository) Update(ctx context.Context, executor SQLExecutor, material *models.Material) error {
	query := `UPDATE materials SET name = $1, quantity = $2, unit = $3, price = $4, updated_at = $5
	          WHERE id = $6 RETURNING created_at`
	material.UpdatedAt = time.Now().UTC()
	err := executor.QueryRowContext(ctx, query,
		material.Name, material.Quantity, material.Unit, material.Price, material.UpdatedAt, material.ID,
	).Scan(&material.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: updating material %s: %v", ErrDatabaseError, material.ID, err)
	}
	return nil
}

func (r *materialRepository) Delete(ctx context.Context, executor SQLExecutor, id string) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting material %s: %v", ErrDatabaseError, id, err)
	}
	if err := rowsAffectedOrNotFound(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: deleting material %s: %v", ErrDatabaseError, id, err)
	}
	return nil
}

func (r *materialRepository) DecrementQuantity(ctx context.Context, executor SQLExecutor, id string, amount float64) (*models.Material, error) {
	query := `UPDATE materials SET quantity = quantity - $1, updated_at = $2
	          WHERE id = $3 AND quantity >= $1
	          RETURNING ` + materialColumns
	m, err := scanMaterial(executor.QueryRowContext(ctx, query, amount, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConditionNotMet
		}
		return nil, fmt.Errorf("%w: decrementing material %s: %v", ErrDatabaseError, id, err)
	}
	return m, nil
}
