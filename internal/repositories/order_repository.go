package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"snack_factory_backend/internal/models"
)

// OrderRepository defines the interface for dispatch order database operations.
type OrderRepository interface {
	CreateOrder(ctx context.Context, executor SQLExecutor, order *models.Order) error
	GetOrders(ctx context.Context, executor SQLExecutor, status *string) ([]models.Order, error)
	GetOrderByID(ctx context.Context, executor SQLExecutor, id string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, executor SQLExecutor, id, status string, dispatchDate *time.Time) error
	// DeleteOrder removes the order and returns the row as it was at deletion.
	DeleteOrder(ctx context.Context, executor SQLExecutor, id string) (*models.Order, error)
}

type orderRepository struct{}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository() OrderRepository {
	return &orderRepository{}
}

const orderSelect = `SELECT
	    o.id, o.order_number, o.item_id, o.item_name, o.quantity, o.customer_name, o.status,
	    o.order_date, o.dispatch_date, o.notes, o.created_at, o.updated_at,
	    i.id, i.item_name, i.quantity, i.unit, i.price, i.sku, i.category, i.created_at, i.updated_at
	  FROM orders o
	  LEFT JOIN inventory i ON o.item_id = i.id`

// scanOrderWithItem populates the order and, when the join matched, the current inventory item.
func scanOrderWithItem(s scanner) (*models.Order, error) {
	var o models.Order
	var dispatch sql.NullTime
	var itemID, itemName, itemUnit, itemSKU, itemCategory sql.NullString
	var itemQty sql.NullInt64
	var itemPrice sql.NullFloat64
	var itemCreated, itemUpdated sql.NullTime

	err := s.Scan(
		&o.ID, &o.OrderNumber, &o.ItemID, &o.ItemName, &o.Quantity, &o.CustomerName, &o.Status,
		&o.OrderDate, &dispatch, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		&itemID, &itemName, &itemQty, &itemUnit, &itemPrice, &itemSKU, &itemCategory, &itemCreated, &itemUpdated,
	)
	if err != nil {
		return nil, err
	}
	if dispatch.Valid {
		t := dispatch.Time
		o.DispatchDate = &t
	}
	if itemID.Valid {
		item := &models.InventoryItem{
			ID:        itemID.String,
			ItemName:  itemName.String,
			Quantity:  int(itemQty.Int64),
			Unit:      itemUnit.String,
			Price:     itemPrice.Float64,
			Category:  itemCategory.String,
			CreatedAt: itemCreated.Time,
			UpdatedAt: itemUpdated.Time,
		}
		if itemSKU.Valid {
			item.SKU = &itemSKU.String
		}
		o.Item = item
	}
	return &o, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, executor SQLExecutor, order *models.Order) error {
	query := `INSERT INTO orders
	          (id, order_number, item_id, item_name, quantity, customer_name, status, order_date, dispatch_date, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now().UTC()
	order.CreatedAt, order.UpdatedAt = now, now
	if order.OrderDate.IsZero() {
		order.OrderDate = now
	}
	_, err := executor.ExecContext(ctx, query,
		order.ID, order.OrderNumber, order.ItemID, order.ItemName, order.Quantity, order.CustomerName,
		order.Status, order.OrderDate, order.DispatchDate, order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := isUniqueViolation(err); ok {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating order: %v", ErrDatabaseError, err)
	}
	return nil
}

func (r *orderRepository) GetOrders(ctx context.Context, executor SQLExecutor, status *string) ([]models.Order, error) {
	query := orderSelect
	var args []interface{}
	if status != nil {
		query += ` WHERE o.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY o.created_at DESC`

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getting orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrderWithItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating orders: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, executor SQLExecutor, id string) (*models.Order, error) {
	o, err := scanOrderWithItem(executor.QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting order %s: %v", ErrDatabaseError, id, err)
	}
	return o, nil
}

// UpdateOrderStatus sets the status; dispatch_date is only overwritten when dispatchDate is non-nil.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, executor SQLExecutor, id, status string, dispatchDate *time.Time) error {
	query := `UPDATE orders SET status = $1, dispatch_date = COALESCE($2, dispatch_date), updated_at = $3 WHERE id = $4`
	res, err := executor.ExecContext(ctx, query, status, dispatchDate, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%w: updating order status %s: %v", ErrDatabaseError, id, err)
	}
	if err := rowsAffectedOrNotFound(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: updating order status %s: %v", ErrDatabaseError, id, err)
	}
	return nil
}

func (r *orderRepository) DeleteOrder(ctx context.Context, executor SQLExecutor, id string) (*models.Order, error) {
	query := `DELETE FROM orders WHERE id = $1
	          RETURNING id, order_number, item_id, item_name, quantity, customer_name, status,
	                    order_date, dispatch_date, notes, created_at, updated_at`
	var o models.Order
	var dispatch sql.NullTime
	err := executor.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.OrderNumber, &o.ItemID, &o.ItemName, &o.Quantity, &o.CustomerName, &o.Status,
		&o.OrderDate, &dispatch, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: deleting order %s: %v", ErrDatabaseError, id, err)
	}
	if dispatch.Valid {
		t := dispatch.Time
		o.DispatchDate = &t
	}
	return &o, nil
}
