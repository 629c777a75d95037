package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"snack_factory_backend/internal/models"
)

// CustomerOrderRepository defines the interface for storefront order database operations.
type CustomerOrderRepository interface {
	Create(ctx context.Context, executor SQLExecutor, order *models.CustomerOrder) error
	List(ctx context.Context, executor SQLExecutor, userID *string) ([]models.CustomerOrder, error)
	GetByID(ctx context.Context, executor SQLExecutor, id string) (*models.CustomerOrder, error)
	UpdateStatus(ctx context.Context, executor SQLExecutor, id, status string) (*models.CustomerOrder, error)
	Delete(ctx context.Context, executor SQLExecutor, id string) error
}

type customerOrderRepository struct{}

// NewCustomerOrderRepository creates a new instance of CustomerOrderRepository.
func NewCustomerOrderRepository() CustomerOrderRepository {
	return &customerOrderRepository{}
}

const customerOrderColumns = `id, order_number, user_id, items, customer, delivery_address, total_amount,
	status, payment_method, notes, created_at, updated_at`

func scanCustomerOrder(s scanner) (*models.CustomerOrder, error) {
	var o models.CustomerOrder
	if err := s.Scan(&o.ID, &o.OrderNumber, &o.UserID, &o.Items, &o.Customer, &o.DeliveryAddress,
		&o.TotalAmount, &o.Status, &o.PaymentMethod, &o.Notes, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if o.Items == nil {
		o.Items = models.OrderLineItems{}
	}
	return &o, nil
}

func (r *customerOrderRepository) Create(ctx context.Context, executor SQLExecutor, order *models.CustomerOrder) error {
	query := `INSERT INTO customer_orders (` + customerOrderColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now().UTC()
	order.CreatedAt, order.UpdatedAt = now, now
	_, err := executor.ExecContext(ctx, query,
		order.ID, order.OrderNumber, order.UserID, order.Items, order.Customer, order.DeliveryAddress,
		order.TotalAmount, order.Status, order.PaymentMethod, order.Notes, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := isUniqueViolation(err); ok {
			return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
		}
		return fmt.Errorf("%w: creating customer order: %v", ErrDatabaseError, err)
	}
	return nil
}

// List returns orders newest first, restricted to one user when userID is set.
func (r *customerOrderRepository) List(ctx context.Context, executor SQLExecutor, userID *string) ([]models.CustomerOrder, error) {
	query := `SELECT ` + customerOrderColumns + ` FROM customer_orders`
	var args []interface{}
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing customer orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	orders := []models.CustomerOrder{}
	for rows.Next() {
		o, err := scanCustomerOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning customer order: %v", ErrDatabaseError, err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating customer orders: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

func (r *customerOrderRepository) GetByID(ctx context.Context, executor SQLExecutor, id string) (*models.CustomerOrder, error) {
	o, err := scanCustomerOrder(executor.QueryRowContext(ctx, `SELECT `+customerOrderColumns+` FROM customer_orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer order %s: %v", ErrDatabaseError, id, err)
	}
	return o, nil
}

func (r *customerOrderRepository) UpdateStatus(ctx context.Context, executor SQLExecutor, id, status string) (*models.CustomerOrder, error) {
	query := `UPDATE customer_orders SET status = $1, updated_at = $2 WHERE id = $3 RETURNING ` + customerOrderColumns
	o, err := scanCustomerOrder(executor.QueryRowContext(ctx, query, status, time.Now().UTC(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updating customer order %s: %v", ErrDatabaseError, id, err)
	}
	return o, nil
}

func (r *customerOrderRepository) Delete(ctx context.Context, executor SQLExecutor, id string) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM customer_orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: deleting customer order %s: %v", ErrDatabaseError, id, err)
	}
	if err := rowsAffectedOrNotFound(res); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: deleting customer order %s: %v", ErrDatabaseError, id, err)
	}
	return nil
}
