package handlers

import (
	"context"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/services"

	"github.com/stretchr/testify/mock"
)

type mockOrderService struct{ mock.Mock }

func (m *mockOrderService) CreateOrder(ctx context.Context, req services.CreateOrderRequest) (*models.Order, error) {
	args := m.Called(ctx, req)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrderService) GetOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).([]models.Order)
	return o, args.Error(1)
}

func (m *mockOrderService) GetOrdersByStatus(ctx context.Context, status string) ([]models.Order, error) {
	args := m.Called(ctx, status)
	o, _ := args.Get(0).([]models.Order)
	return o, args.Error(1)
}

func (m *mockOrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrderService) UpdateOrderStatus(ctx context.Context, id string, req services.UpdateOrderStatusRequest) (*models.Order, error) {
	args := m.Called(ctx, id, req)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *mockOrderService) DeleteOrder(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

type mockInventoryService struct{ mock.Mock }

func (m *mockInventoryService) CreateItem(ctx context.Context, req services.CreateInventoryItemRequest) (*models.InventoryItem, error) {
	args := m.Called(ctx, req)
	i, _ := args.Get(0).(*models.InventoryItem)
	return i, args.Error(1)
}

func (m *mockInventoryService) GetItems(ctx context.Context) ([]models.InventoryItem, error) {
	args := m.Called(ctx)
	i, _ := args.Get(0).([]models.InventoryItem)
	return i, args.Error(1)
}

func (m *mockInventoryService) GetItemByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	args := m.Called(ctx, id)
	i, _ := args.Get(0).(*models.InventoryItem)
	return i, args.Error(1)
}

func (m *mockInventoryService) UpdateItem(ctx context.Context, id string, req services.UpdateInventoryItemRequest) (*models.InventoryItem, error) {
	args := m.Called(ctx, id, req)
	i, _ := args.Get(0).(*models.InventoryItem)
	return i, args.Error(1)
}

func (m *mockInventoryService) DeleteItem(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInventoryService) UpdateStock(ctx context.Context, req services.UpdateStockRequest) (*models.InventoryItem, error) {
	args := m.Called(ctx, req)
	i, _ := args.Get(0).(*models.InventoryItem)
	return i, args.Error(1)
}

func (m *mockInventoryService) ReduceStock(ctx context.Context, req services.ReduceStockRequest) (*models.InventoryItem, error) {
	args := m.Called(ctx, req)
	i, _ := args.Get(0).(*models.InventoryItem)
	return i, args.Error(1)
}

func (m *mockInventoryService) GetMovements(ctx context.Context, filters models.MovementFilters) ([]models.StockMovement, error) {
	args := m.Called(ctx, filters)
	s, _ := args.Get(0).([]models.StockMovement)
	return s, args.Error(1)
}

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, req services.RegisterRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*services.AuthResponse)
	return r, args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, req services.LoginRequest) (*services.AuthResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*services.AuthResponse)
	return r, args.Error(1)
}

func (m *mockAuthService) GetUserProfile(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockAuthService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAuthService) EnsureAdmin(ctx context.Context, req services.EnsureAdminRequest) (*models.User, bool, error) {
	args := m.Called(ctx, req)
	u, _ := args.Get(0).(*models.User)
	return u, args.Bool(1), args.Error(2)
}

type mockCustomerOrderService struct{ mock.Mock }

func (m *mockCustomerOrderService) PlaceOrder(ctx context.Context, userID string, req services.PlaceCustomerOrderRequest) (*models.CustomerOrder, error) {
	args := m.Called(ctx, userID, req)
	o, _ := args.Get(0).(*models.CustomerOrder)
	return o, args.Error(1)
}

func (m *mockCustomerOrderService) GetAll(ctx context.Context) ([]models.CustomerOrder, error) {
	args := m.Called(ctx)
	o, _ := args.Get(0).([]models.CustomerOrder)
	return o, args.Error(1)
}

func (m *mockCustomerOrderService) GetByID(ctx context.Context, id string) (*models.CustomerOrder, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*models.CustomerOrder)
	return o, args.Error(1)
}

func (m *mockCustomerOrderService) GetUserHistory(ctx context.Context, userID string) ([]models.CustomerOrder, error) {
	args := m.Called(ctx, userID)
	o, _ := args.Get(0).([]models.CustomerOrder)
	return o, args.Error(1)
}

func (m *mockCustomerOrderService) UpdateStatus(ctx context.Context, id string, req services.UpdateCustomerOrderStatusRequest) (*models.CustomerOrder, error) {
	args := m.Called(ctx, id, req)
	o, _ := args.Get(0).(*models.CustomerOrder)
	return o, args.Error(1)
}

func (m *mockCustomerOrderService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockSnackService struct{ mock.Mock }

func (m *mockSnackService) CreateSnack(ctx context.Context, req services.CreateSnackRequest) (*models.Snack, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*models.Snack)
	return s, args.Error(1)
}

func (m *mockSnackService) GetSnacks(ctx context.Context, filters models.SnackFilters) ([]models.Snack, error) {
	args := m.Called(ctx, filters)
	s, _ := args.Get(0).([]models.Snack)
	return s, args.Error(1)
}

func (m *mockSnackService) GetSnackByID(ctx context.Context, id string) (*models.Snack, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*models.Snack)
	return s, args.Error(1)
}

func (m *mockSnackService) UpdateSnack(ctx context.Context, id string, req services.UpdateSnackRequest) (*models.Snack, error) {
	args := m.Called(ctx, id, req)
	s, _ := args.Get(0).(*models.Snack)
	return s, args.Error(1)
}

func (m *mockSnackService) DeleteSnack(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }
