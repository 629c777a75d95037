package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/repositories"

	"github.com/google/uuid"
)

const orderNumberPrefix = "ORD"

// --- Data Transfer Objects (DTOs) ---

// CreateOrderRequest is used for dispatching a finished good to a customer.
type CreateOrderRequest struct {
	ItemID       string `json:"itemId" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required"`
	CustomerName string `json:"customerName" binding:"required"`
	Notes        string `json:"notes"`
}

// UpdateOrderStatusRequest is used for updating the status of an order.
type UpdateOrderStatusRequest struct {
	Status       string     `json:"status" binding:"required"`
	DispatchDate *time.Time `json:"dispatchDate"`
}

// --- End of DTOs ---

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error)
	GetOrders(ctx context.Context) ([]models.Order, error)
	GetOrdersByStatus(ctx context.Context, status string) ([]models.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, req UpdateOrderStatusRequest) (*models.Order, error)
	DeleteOrder(ctx context.Context, orderID string) (*models.Order, error)
}

// --- orderService Implementation ---
type orderService struct {
	orderRepo repositories.OrderRepository
	ledger    StockLedger
	txManager repositories.TxManager
	db        *sql.DB
	now       func() time.Time
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(or repositories.OrderRepository, ledger StockLedger, txm repositories.TxManager, db *sql.DB) OrderService {
	return &orderService{
		orderRepo: or,
		ledger:    ledger,
		txManager: txm,
		db:        db,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// --- Method Implementations ---

// CreateOrder reserves stock and records the order atomically.
func (s *orderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	customer := strings.TrimSpace(req.CustomerName)
	if strings.TrimSpace(req.ItemID) == "" || customer == "" {
		return nil, validationError("itemId, quantity and customerName are required")
	}
	if req.Quantity < 1 {
		return nil, validationError("quantity must be at least 1")
	}

	order := &models.Order{
		ID:           uuid.NewString(),
		OrderNumber:  newOrderNumber(orderNumberPrefix),
		ItemID:       req.ItemID,
		Quantity:     req.Quantity,
		CustomerName: customer,
		Status:       models.OrderPending,
		OrderDate:    s.now(),
		Notes:        req.Notes,
	}

	err := s.txManager.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		item, err := s.ledger.ReserveForOrder(ctx, tx, req.ItemID, req.Quantity, order.ID)
		if err != nil {
			return err
		}
		order.ItemName = item.ItemName
		order.Item = item
		if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.GetOrders(ctx, s.db, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetOrdersByStatus(ctx context.Context, status string) ([]models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, validationError("invalid order status %q", status)
	}
	orders, err := s.orderRepo.GetOrders(ctx, s.db, &status)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders with status %s: %w", status, err)
	}
	return orders, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, s.db, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	return order, nil
}

// UpdateOrderStatus accepts any known status. Shipping stamps the dispatch date.
func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID string, req UpdateOrderStatusRequest) (*models.Order, error) {
	if !models.IsValidOrderStatus(req.Status) {
		return nil, validationError("invalid order status %q", req.Status)
	}

	var dispatchDate *time.Time
	if req.Status == models.OrderShipped {
		d := s.now()
		if req.DispatchDate != nil && !req.DispatchDate.IsZero() {
			d = req.DispatchDate.UTC()
		}
		dispatchDate = &d
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, s.db, orderID, req.Status, dispatchDate); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status for order %s: %w", orderID, err)
	}
	return s.GetOrderByID(ctx, orderID)
}

// DeleteOrder removes the order and returns its stock when it was still Pending.
func (s *orderService) DeleteOrder(ctx context.Context, orderID string) (*models.Order, error) {
	var deleted *models.Order
	err := s.txManager.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		order, err := s.orderRepo.DeleteOrder(ctx, tx, orderID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("failed to delete order %s: %w", orderID, err)
		}
		if _, err := s.ledger.ReleaseForOrder(ctx, tx, order); err != nil {
			return err
		}
		deleted = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
