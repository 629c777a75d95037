package services

import (
	"context"
	"errors"
	"testing"

	"snack_factory_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

func newInventoryFixture() (*ledgerFixture, InventoryService) {
	f := newLedgerFixture()
	return f, NewInventoryService(f.invRepo, f.movRepo, f.ledger, f.tx, nil)
}

func TestInventoryService_CreateItem_Defaults(t *testing.T) {
	_, svc := newInventoryFixture()

	item, err := svc.CreateItem(context.Background(), CreateInventoryItemRequest{ItemName: " Salted Peanuts ", Quantity: intPtr(12)})

	require.NoError(t, err)
	assert.Equal(t, "Salted Peanuts", item.ItemName)
	assert.Equal(t, models.DefaultInventoryUnit, item.Unit)
	assert.Equal(t, models.DefaultInventoryCategory, item.Category)
	assert.Nil(t, item.SKU)
}

func TestInventoryService_CreateItem_Validation(t *testing.T) {
	_, svc := newInventoryFixture()

	_, err := svc.CreateItem(context.Background(), CreateInventoryItemRequest{ItemName: "x", Quantity: intPtr(-1)})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.CreateItem(context.Background(), CreateInventoryItemRequest{ItemName: "  ", Quantity: intPtr(1)})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestInventoryService_UpdateItem_QuantityGoesThroughLedger(t *testing.T) {
	f, svc := newInventoryFixture()
	f.store.addItem("item-1", "Chips", 10)

	item, err := svc.UpdateItem(context.Background(), "item-1", UpdateInventoryItemRequest{
		ItemName: strPtr("Masala Chips"), Quantity: intPtr(25), Price: floatPtr(1.5),
	})

	require.NoError(t, err)
	assert.Equal(t, "Masala Chips", item.ItemName)
	assert.Equal(t, 25, item.Quantity)
	assert.Equal(t, 25, f.store.itemQuantity("item-1"))
	moves := f.store.movementLog()
	require.Len(t, moves, 1)
	assert.Equal(t, models.MovementStockAdjust, moves[0].MovementType)
	assert.Equal(t, 15.0, moves[0].QuantityChanged)
}

func TestInventoryService_UpdateItem_NotFoundRollsBack(t *testing.T) {
	_, svc := newInventoryFixture()

	_, err := svc.UpdateItem(context.Background(), "missing", UpdateInventoryItemRequest{Quantity: intPtr(3)})

	assert.True(t, errors.Is(err, ErrInventoryItemNotFound))
}

func TestInventoryService_UpdateStockAndReduceStock(t *testing.T) {
	f, svc := newInventoryFixture()
	f.store.addItem("item-1", "Chips", 10)

	item, err := svc.UpdateStock(context.Background(), UpdateStockRequest{ID: "item-1", Quantity: intPtr(40)})
	require.NoError(t, err)
	assert.Equal(t, 40, item.Quantity)

	item, err = svc.ReduceStock(context.Background(), ReduceStockRequest{ID: "item-1", QuantityToReduce: 15})
	require.NoError(t, err)
	assert.Equal(t, 25, item.Quantity)

	_, err = svc.ReduceStock(context.Background(), ReduceStockRequest{ID: "item-1", QuantityToReduce: 26})
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Equal(t, 25, f.store.itemQuantity("item-1"))

	_, err = svc.UpdateStock(context.Background(), UpdateStockRequest{ID: "item-1"})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestInventoryService_GetMovements(t *testing.T) {
	f, svc := newInventoryFixture()
	f.store.addItem("item-1", "Chips", 10)
	_, err := svc.ReduceStock(context.Background(), ReduceStockRequest{ID: "item-1", QuantityToReduce: 2})
	require.NoError(t, err)

	rt := models.ResourceInventory
	moves, err := svc.GetMovements(context.Background(), models.MovementFilters{ResourceType: &rt})
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Equal(t, "item-1", moves[0].ResourceID)

	bad := "warehouse"
	_, err = svc.GetMovements(context.Background(), models.MovementFilters{ResourceType: &bad})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestMaterialService_ReduceQuantity(t *testing.T) {
	f := newLedgerFixture()
	svc := NewMaterialService(f.matRepo, f.ledger, f.tx, nil)
	salt := uuid.NewString()
	f.store.addMaterial(salt, "Salt", 8, models.UnitKg)

	m, err := svc.ReduceQuantity(context.Background(), ReduceMaterialRequest{ID: salt, QuantityToReduce: 3})
	require.NoError(t, err)
	assert.Equal(t, 5.0, m.Quantity)

	_, err = svc.ReduceQuantity(context.Background(), ReduceMaterialRequest{ID: salt, QuantityToReduce: 6})
	assert.True(t, errors.Is(err, ErrInsufficientQuantity))
	assert.Equal(t, 5.0, f.store.materialQuantity(salt))
}

func TestMaterialService_CreateMaterial_Validation(t *testing.T) {
	f := newLedgerFixture()
	svc := NewMaterialService(f.matRepo, f.ledger, f.tx, nil)

	_, err := svc.CreateMaterial(context.Background(), CreateMaterialRequest{Name: "Salt", Quantity: floatPtr(1), Unit: "tons"})
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = svc.CreateMaterial(context.Background(), CreateMaterialRequest{Name: "Salt", Quantity: floatPtr(-1), Unit: models.UnitKg})
	assert.True(t, errors.Is(err, ErrValidation))

	m, err := svc.CreateMaterial(context.Background(), CreateMaterialRequest{Name: "Salt", Quantity: floatPtr(4), Unit: models.UnitKg})
	require.NoError(t, err)
	assert.Equal(t, 4.0, f.store.materialQuantity(m.ID))
}

func TestDashboardService_Summary_PassesThreshold(t *testing.T) {
	repo := new(mockDashboardRepo)
	repo.On("GetSummary", mock.Anything, 25).Return(&models.DashboardSummary{LowStockThreshold: 25, LowStockItemsCount: 2}, nil)
	svc := NewDashboardService(repo, nil, 25)

	summary, err := svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, summary.LowStockItemsCount)
	repo.AssertExpectations(t)
}
