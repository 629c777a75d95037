package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"snack_factory_backend/internal/models"
)

// InventoryRepository defines the interface for finished-goods inventory database operations.
type InventoryRepository interface {
	Create(ctx context.Context, executor SQLExecutor, item *models.InventoryItem) error
	List(ctx context.Context, executor SQLExecutor) ([]models.InventoryItem, error)
	GetByID(ctx context.Context, executor SQLExecutor, id string) (*models.InventoryItem, error)
	// Update writes descriptive fields only; quantity changes go through the guarded methods below.
	Update(ctx context.Context, executor SQLExecutor, item *models.InventoryItem) error
	Delete(ctx context.Context, executor SQLExecutor, id string) error
	// DecrementQuantity subtracts amount only when at least amount is in stock.
	DecrementQuantity(ctx context.Context, executor SQLExecutor, id string, amount int) (*models.InventoryItem, error)
	IncrementQuantity(ctx context.Context, executor SQLExecutor, id string, amount int) (*models.InventoryItem, error)
	// SetQuantity overwrites the stock level and returns the quantity it replaced.
	SetQuantity(ctx context.Context, executor SQLExecutor, id string, quantity int) (*models.InventoryItem, int, error)
}

type inventoryRepository struct{}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository() InventoryRepository {
	return &inventoryRepository{}
}

const inventoryColumns = `id, item_name, quantity, unit, price, sku, category, created_at, updated_at`

func scanInventoryItem(s scanner) (*models.InventoryItem, error) {
	var item models.InventoryItem
	var sku sql.NullString
	if err := s.Scan(&item.ID, &item.ItemName, &item.Quantity, &item.Unit, &item.Price,
		&sku, &item.Category, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	if sku.Valid {
		item.SKU = &sku.String
	}
	return &item, nil
}

func (r *inventoryRepository) Create(ctx context.Context, executor SQLExecutor, item *models.InventoryItem) error {
	query := `INSERT INTO inventory (` + inventoryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	now := time.Now().UTC()
	item.CreatedAt, item.UpdatedAt = now, now
	_, err := executor.ExecContext(ctx, query,
		item.ID, item.ItemName, item.Quantity, item.Unit, item.Price, item.SKU, item.Category, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if pqErr, ok := isUniqueViolation(err); ok {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating inventory item: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *inventoryRepository) List(ctx context.Context, executor SQLExecutor) ([]models.InventoryItem, error) {
	rows, err := executor.QueryContext(ctx, `SELECT `+inventoryColumns+` FROM inventory ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing inventory: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	items := []models.InventoryItem{}
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning inventory item: %v", ErrDatabaseError, err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating inventory: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *inventoryRepository) GetByID(ctx context.Context, executor SQLExecutor, id string) (*models.InventoryItem, error) {
	item, err := scanInventoryItem(executor.QueryRowContext(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting inventory item %s: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

func (r *inventoryRepository) Update(ctx context.Context, executor SQLExecutor, item *models.InventoryItem) error {
	query := `UPDATE inventory SET item_name = $1, unit = $2, price = $3, sku = $4, category = $5, updated_at = $6
	          WHERE id = $7 RETURNING quantity, created_at`
	item.UpdatedAt = time.Now().UTC()
	err := executor.QueryRowContext(ctx, query,
		item.ItemName, item.Unit, item.Price, item.SKU, item.Category, item.UpdatedAt, item.ID,
	).Scan(&item.Quantity, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if pqErr, ok := isUniqueViolation(err); ok {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: updating inventory item %s: %v", ErrDatabaseError, item.ID, err)
	}
	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, executor SQLExecutor, id string) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting inventory item %s: %v", ErrDatabaseError, id, err)
	}
	if err := rowsAffectedOrNotFound(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: deleting inventory item %s: %v", ErrDatabaseError, id, err)
	}
	return nil
}

func (r *inventoryRepository) DecrementQuantity(ctx context.Context, executor SQLExecutor, id string, amount int) (*models.InventoryItem, error) {
	query := `UPDATE inventory SET quantity = quantity - $1, updated_at = $2
	          WHERE id = $3 AND quantity >= $1
	          RETURNING ` + inventoryColumns
	item, err := scanInventoryItem(executor.QueryRowContext(ctx, query, amount, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConditionNotMet
		}
		return nil, fmt.Errorf("%w: decrementing inventory item %s: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

func (r *inventoryRepository) IncrementQuantity(ctx context.Context, executor SQLExecutor, id string, amount int) (*models.InventoryItem, error) {
	query := `UPDATE inventory SET quantity = quantity + $1, updated_at = $2
	          WHERE id = $3
	          RETURNING ` + inventoryColumns
	item, err := scanInventoryItem(executor.QueryRowContext(ctx, query, amount, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: incrementing inventory item %s: %v", ErrDatabaseError, id, err)
	}
	return item, nil
}

func (r *inventoryRepository) SetQuantity(ctx context.Context, executor SQLExecutor, id string, quantity int) (*models.InventoryItem, int, error) {
	// The CTE reads the pre-update row under the same statement snapshot.
	query := `WITH prev AS (SELECT quantity FROM inventory WHERE id = $3 FOR UPDATE)
	          UPDATE inventory SET quantity = $1, updated_at = $2
	          FROM prev WHERE inventory.id = $3
	          RETURNING inventory.id, inventory.item_name, inventory.quantity, inventory.unit, inventory.price,
	                    inventory.sku, inventory.category, inventory.created_at, inventory.updated_at, prev.quantity`
	var item models.InventoryItem
	var sku sql.NullString
	var previous int
	err := executor.QueryRowContext(ctx, query, quantity, time.Now().UTC(), id).Scan(
		&item.ID, &item.ItemName, &item.Quantity, &item.Unit, &item.Price,
		&sku, &item.Category, &item.CreatedAt, &item.UpdatedAt, &previous)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: setting quantity of inventory item %s: %v", ErrDatabaseError, id, err)
	}
	if sku.Valid {
		item.SKU = &sku.String
	}
	return &item, previous, nil
}
