package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const customerOrderNumberPrefix = "CO"

// --- DTOs ---

// OrderLineItemRequest is one cart entry. Either snackName or name may carry the display name.
type OrderLineItemRequest struct {
	SnackID    string   `json:"snackId" binding:"required"`
	SnackName  string   `json:"snackName"`
	Name       string   `json:"name"`
	Price      float64  `json:"price" binding:"gte=0"`
	Quantity   int      `json:"quantity" binding:"required,gte=1"`
	PacketType string   `json:"packetType"`
	Subtotal   *float64 `json:"subtotal" binding:"omitempty,gte=0"`
}

// PlaceCustomerOrderRequest is a storefront checkout.
type PlaceCustomerOrderRequest struct {
	Items           []OrderLineItemRequest `json:"items" binding:"required,min=1,dive"`
	Customer        models.CustomerContact `json:"customer"`
	DeliveryAddress models.DeliveryAddress `json:"deliveryAddress"`
	TotalAmount     *float64               `json:"totalAmount" binding:"omitempty,gte=0"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"omitempty,payment_method"`
	Notes           string                 `json:"notes"`
}

// UpdateCustomerOrderStatusRequest moves an order to a new status.
type UpdateCustomerOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --- End of DTOs ---

// CustomerOrderService handles storefront purchases. It never touches stock.
type CustomerOrderService interface {
	PlaceOrder(ctx context.Context, userID string, req PlaceCustomerOrderRequest) (*models.CustomerOrder, error)
	GetAll(ctx context.Context) ([]models.CustomerOrder, error)
	GetByID(ctx context.Context, id string) (*models.CustomerOrder, error)
	GetUserHistory(ctx context.Context, userID string) ([]models.CustomerOrder, error)
	UpdateStatus(ctx context.Context, id string, req UpdateCustomerOrderStatusRequest) (*models.CustomerOrder, error)
	Delete(ctx context.Context, id string) error
}

type customerOrderService struct {
	repo repositories.CustomerOrderRepository
	db   *sql.DB
}

// NewCustomerOrderService creates a new instance of CustomerOrderService.
func NewCustomerOrderService(repo repositories.CustomerOrderRepository, db *sql.DB) CustomerOrderService {
	return &customerOrderService{repo: repo, db: db}
}

// buildLineItems snapshots the cart and returns the summed subtotals.
func buildLineItems(reqItems []OrderLineItemRequest) (models.OrderLineItems, decimal.Decimal, error) {
	items := make(models.OrderLineItems, 0, len(reqItems))
	total := decimal.Zero
	for i, it := range reqItems {
		if strings.TrimSpace(it.SnackID) == "" {
			return nil, decimal.Zero, validationError("items[%d].snackId is required", i)
		}
		if it.Quantity < 1 {
			return nil, decimal.Zero, validationError("items[%d].quantity must be at least 1", i)
		}
		if it.Price < 0 {
			return nil, decimal.Zero, validationError("items[%d].price must not be negative", i)
		}

		name := strings.TrimSpace(it.SnackName)
		if name == "" {
			name = strings.TrimSpace(it.Name)
		}
		if name == "" {
			name = "Item-" + it.SnackID
		}

		subtotal := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
		if it.Subtotal != nil {
			subtotal = decimal.NewFromFloat(*it.Subtotal).Round(2)
		}
		total = total.Add(subtotal)

		items = append(items, models.OrderLineItem{
			SnackID:    it.SnackID,
			SnackName:  name,
			Price:      it.Price,
			Quantity:   it.Quantity,
			PacketType: it.PacketType,
			Subtotal:   subtotal.InexactFloat64(),
		})
	}
	return items, total, nil
}

func (s *customerOrderService) PlaceOrder(ctx context.Context, userID string, req PlaceCustomerOrderRequest) (*models.CustomerOrder, error) {
	if len(req.Items) == 0 {
		return nil, validationError("order must contain at least one item")
	}
	customer := models.CustomerContact{
		Name:  strings.TrimSpace(req.Customer.Name),
		Email: strings.TrimSpace(req.Customer.Email),
		Phone: strings.TrimSpace(req.Customer.Phone),
	}
	if customer.Name == "" || customer.Email == "" || customer.Phone == "" {
		return nil, validationError("customer name, email and phone are required")
	}

	paymentMethod := models.PaymentCashOnDelivery
	if req.PaymentMethod != "" {
		if !models.IsValidPaymentMethod(req.PaymentMethod) {
			return nil, validationError("invalid payment method %q", req.PaymentMethod)
		}
		paymentMethod = req.PaymentMethod
	}

	items, total, err := buildLineItems(req.Items)
	if err != nil {
		return nil, err
	}
	if req.TotalAmount != nil {
		total = decimal.NewFromFloat(*req.TotalAmount).Round(2)
	}

	order := &models.CustomerOrder{
		ID:              uuid.NewString(),
		OrderNumber:     newOrderNumber(customerOrderNumberPrefix),
		UserID:          userID,
		Items:           items,
		Customer:        customer,
		DeliveryAddress: req.DeliveryAddress,
		TotalAmount:     total.InexactFloat64(),
		Status:          models.CustomerOrderPending,
		PaymentMethod:   paymentMethod,
		Notes:           req.Notes,
	}
	if err := s.repo.Create(ctx, s.db, order); err != nil {
		return nil, fmt.Errorf("failed to place customer order: %w", err)
	}
	return order, nil
}

func (s *customerOrderService) GetAll(ctx context.Context) ([]models.CustomerOrder, error) {
	orders, err := s.repo.List(ctx, s.db, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer orders: %w", err)
	}
	return orders, nil
}

func (s *customerOrderService) GetByID(ctx context.Context, id string) (*models.CustomerOrder, error) {
	order, err := s.repo.GetByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerOrderNotFound
		}
		return nil, fmt.Errorf("failed to get customer order %s: %w", id, err)
	}
	return order, nil
}

func (s *customerOrderService) GetUserHistory(ctx context.Context, userID string) ([]models.CustomerOrder, error) {
	orders, err := s.repo.List(ctx, s.db, &userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order history for user %s: %w", userID, err)
	}
	return orders, nil
}

// UpdateStatus accepts any known status, so Cancelled is reachable from every state.
func (s *customerOrderService) UpdateStatus(ctx context.Context, id string, req UpdateCustomerOrderStatusRequest) (*models.CustomerOrder, error) {
	if !models.IsValidCustomerOrderStatus(req.Status) {
		return nil, validationError("invalid order status %q", req.Status)
	}
	order, err := s.repo.UpdateStatus(ctx, s.db, id, req.Status)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerOrderNotFound
		}
		return nil, fmt.Errorf("failed to update customer order %s: %w", id, err)
	}
	return order, nil
}

func (s *customerOrderService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCustomerOrderNotFound
		}
		return fmt.Errorf("failed to delete customer order %s: %w", id, err)
	}
	return nil
}
