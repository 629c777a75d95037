package services

import (
	"context"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/repositories"

	"github.com/stretchr/testify/mock"
)

type mockCustomerOrderRepo struct{ mock.Mock }

func (m *mockCustomerOrderRepo) Create(ctx context.Context, _ repositories.SQLExecutor, order *models.CustomerOrder) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockCustomerOrderRepo) List(ctx context.Context, _ repositories.SQLExecutor, userID *string) ([]models.CustomerOrder, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]models.CustomerOrder)
	return orders, args.Error(1)
}

func (m *mockCustomerOrderRepo) GetByID(ctx context.Context, _ repositories.SQLExecutor, id string) (*models.CustomerOrder, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*models.CustomerOrder)
	return order, args.Error(1)
}

func (m *mockCustomerOrderRepo) UpdateStatus(ctx context.Context, _ repositories.SQLExecutor, id, status string) (*models.CustomerOrder, error) {
	args := m.Called(ctx, id, status)
	order, _ := args.Get(0).(*models.CustomerOrder)
	return order, args.Error(1)
}

func (m *mockCustomerOrderRepo) Delete(ctx context.Context, _ repositories.SQLExecutor, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockSnackRepo struct{ mock.Mock }

func (m *mockSnackRepo) Create(ctx context.Context, _ repositories.SQLExecutor, snack *models.Snack) error {
	return m.Called(ctx, snack).Error(0)
}

func (m *mockSnackRepo) List(ctx context.Context, _ repositories.SQLExecutor, filters models.SnackFilters) ([]models.Snack, error) {
	args := m.Called(ctx, filters)
	snacks, _ := args.Get(0).([]models.Snack)
	return snacks, args.Error(1)
}

func (m *mockSnackRepo) GetByID(ctx context.Context, _ repositories.SQLExecutor, id string) (*models.Snack, error) {
	args := m.Called(ctx, id)
	snack, _ := args.Get(0).(*models.Snack)
	return snack, args.Error(1)
}

func (m *mockSnackRepo) Update(ctx context.Context, _ repositories.SQLExecutor, snack *models.Snack) error {
	return m.Called(ctx, snack).Error(0)
}

func (m *mockSnackRepo) Delete(ctx context.Context, _ repositories.SQLExecutor, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockFeedbackRepo struct{ mock.Mock }

func (m *mockFeedbackRepo) Create(ctx context.Context, _ repositories.SQLExecutor, feedback *models.Feedback) error {
	return m.Called(ctx, feedback).Error(0)
}

func (m *mockFeedbackRepo) List(ctx context.Context, _ repositories.SQLExecutor, userID *string) ([]models.Feedback, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]models.Feedback)
	return list, args.Error(1)
}

func (m *mockFeedbackRepo) GetByID(ctx context.Context, _ repositories.SQLExecutor, id string) (*models.Feedback, error) {
	args := m.Called(ctx, id)
	fb, _ := args.Get(0).(*models.Feedback)
	return fb, args.Error(1)
}

func (m *mockFeedbackRepo) UpdateStatus(ctx context.Context, _ repositories.SQLExecutor, id, status string) (*models.Feedback, error) {
	args := m.Called(ctx, id, status)
	fb, _ := args.Get(0).(*models.Feedback)
	return fb, args.Error(1)
}

func (m *mockFeedbackRepo) Delete(ctx context.Context, _ repositories.SQLExecutor, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockFeedbackRepo) Stats(ctx context.Context, _ repositories.SQLExecutor) (*models.FeedbackStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*models.FeedbackStats)
	return stats, args.Error(1)
}

type mockAuthRepo struct{ mock.Mock }

func (m *mockAuthRepo) CreateUser(ctx context.Context, _ repositories.SQLExecutor, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockAuthRepo) FindUserByEmail(ctx context.Context, _ repositories.SQLExecutor, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockAuthRepo) FindUserByID(ctx context.Context, _ repositories.SQLExecutor, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockAuthRepo) SetAdmin(ctx context.Context, _ repositories.SQLExecutor, userID string, isAdmin bool) error {
	return m.Called(ctx, userID, isAdmin).Error(0)
}

type mockDashboardRepo struct{ mock.Mock }

func (m *mockDashboardRepo) GetSummary(ctx context.Context, _ repositories.SQLExecutor, lowStockThreshold int) (*models.DashboardSummary, error) {
	args := m.Called(ctx, lowStockThreshold)
	summary, _ := args.Get(0).(*models.DashboardSummary)
	return summary, args.Error(1)
}

type stubTokenIssuer struct {
	token string
	err   error
}

func (s stubTokenIssuer) Generate(userID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.token + ":" + userID, nil
}
