package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"snack_factory_backend/internal/models"

	"github.com/lib/pq"
)

// SnackRepository defines the interface for catalog database operations.
type SnackRepository interface {
	Create(ctx context.Context, executor SQLExecutor, snack *models.Snack) error
	List(ctx context.Context, executor SQLExecutor, filters models.SnackFilters) ([]models.Snack, error)
	GetByID(ctx context.Context, executor SQLExecutor, id string) (*models.Snack, error)
	Update(ctx context.Context, executor SQLExecutor, snack *models.Snack) error
	Delete(ctx context.Context, executor SQLExecutor, id string) error
}

type snackRepository struct{}

// NewSnackRepository creates a new instance of SnackRepository.
func NewSnackRepository() SnackRepository {
	return &snackRepository{}
}

const snackColumns = `id, name, description, price, image, category, packet_types, in_stock, rating, ingredients, created_at, updated_at`

func scanSnack(s scanner) (*models.Snack, error) {
	var sn models.Snack
	var ingredients pq.StringArray
	if err := s.Scan(&sn.ID, &sn.Name, &sn.Description, &sn.Price, &sn.Image, &sn.Category,
		&sn.PacketTypes, &sn.InStock, &sn.Rating, &ingredients, &sn.CreatedAt, &sn.UpdatedAt); err != nil {
		return nil, err
	}
	sn.Ingredients = []string(ingredients)
	if sn.Ingredients == nil {
		sn.Ingredients = []string{}
	}
	if sn.PacketTypes == nil {
		sn.PacketTypes = models.PacketTypes{}
	}
	return &sn, nil
}

func (r *snackRepository) Create(ctx context.Context, executor SQLExecutor, snack *models.Snack) error {
	query := `INSERT INTO snacks (` + snackColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now().UTC()
	snack.CreatedAt, snack.UpdatedAt = now, now
	_, err := executor.ExecContext(ctx, query,
		snack.ID, snack.Name, snack.Description, snack.Price, snack.Image, snack.Category,
		snack.PacketTypes, snack.InStock, snack.Rating, pq.Array(snack.Ingredients), snack.CreatedAt, snack.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: creating snack: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *snackRepository) List(ctx context.Context, executor SQLExecutor, filters models.SnackFilters) ([]models.Snack, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + snackColumns + ` FROM snacks`)

	var conditions []string
	var args []interface{}
	argCount := 1
	if filters.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, *filters.Category)
		argCount++
	}
	if filters.InStock != nil {
		conditions = append(conditions, fmt.Sprintf("in_stock = $%d", argCount))
		args = append(args, *filters.InStock)
	}
	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := executor.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing snacks: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	snacks := []models.Snack{}
	for rows.Next() {
		sn, err := scanSnack(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning snack: %v", ErrDatabaseError, err)
		}
		snacks = append(snacks, *sn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating snacks: %v", ErrDatabaseError, err)
	}
	return snacks, nil
}

func (r *snackRepository) GetByID(ctx context.Context, executor SQLExecutor, id string) (*models.Snack, error) {
	sn, err := scanSnack(executor.QueryRowContext(ctx, `SELECT `+snackColumns+` FROM snacks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting snack %s: %v", ErrDatabaseError, id, err)
	}
	return sn, nil
}

func (r *snackRepository) Update(ctx context.Context, executor SQLExecutor, snack *models.Snack) error {
	query := `UPDATE snacks SET name = $1, description = $2, price = $3, image = $4, category = $5,
	          packet_types = $6, in_stock = $7, rating = $8, ingredients = $9, updated_at = $10
	          WHERE id = $11 RETURNING created_at`
	snack.UpdatedAt = time.Now().UTC()
	err := executor.QueryRowContext(ctx, query,
		snack.Name, snack.Description, snack.Price, snack.Image, snack.Category, snack.PacketTypes,
		snack.InStock, snack.Rating, pq.Array(snack.Ingredients), snack.UpdatedAt, snack.ID,
	).Scan(&snack.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: updating snack %s: %v", ErrDatabaseError, snack.ID, err)
	}
	return nil
}

func (r *snackRepository) Delete(ctx context.Context, executor SQLExecutor, id string) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM snacks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting snack %s: %v", ErrDatabaseError, id, err)
	}
	if err := rowsAffectedOrNotFound(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: deleting snack %s: %v", ErrDatabaseError, id, err)
	}
	return nil
}
