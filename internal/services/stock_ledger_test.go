package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"snack_factory_backend/internal/metrics"
	"snack_factory_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockLedger_ReserveForOrder_Decrements(t *testing.T) {
	f := newLedgerFixture()
	f.store.addItem("item-1", "Masala Chips", 10)

	item, err := f.ledger.ReserveForOrder(context.Background(), nil, "item-1", 5, "order-1")

	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 5, f.store.itemQuantity("item-1"))

	moves := f.store.movementLog()
	require.Len(t, moves, 1)
	assert.Equal(t, models.MovementOrderReserve, moves[0].MovementType)
	assert.Equal(t, models.ResourceInventory, moves[0].ResourceType)
	assert.Equal(t, -5.0, moves[0].QuantityChanged)
	require.NotNil(t, moves[0].ReferenceID)
	assert.Equal(t, "order-1", *moves[0].ReferenceID)
	assert.Equal(t, metrics.OutcomeSuccess, f.recorder.last(opReserveForOrder))
}

func TestStockLedger_ReserveForOrder_InsufficientDoesNotClamp(t *testing.T) {
	f := newLedgerFixture()
	f.store.addItem("item-1", "Masala Chips", 3)

	_, err := f.ledger.ReserveForOrder(context.Background(), nil, "item-1", 5, "order-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Contains(t, err.Error(), "insufficient stock for Masala Chips. Requested: 5, Available: 3")
	assert.Equal(t, 3, f.store.itemQuantity("item-1"))
	assert.Empty(t, f.store.movementLog())
	assert.Equal(t, metrics.OutcomeRejected, f.recorder.last(opReserveForOrder))
}

func TestStockLedger_ReserveForOrder_UnknownItem(t *testing.T) {
	f := newLedgerFixture()

	_, err := f.ledger.ReserveForOrder(context.Background(), nil, "missing", 1, "order-1")

	assert.True(t, errors.Is(err, ErrInventoryItemNotFound))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, metrics.OutcomeNotFound, f.recorder.last(opReserveForOrder))
}

func TestStockLedger_ReserveForOrder_RejectsNonPositive(t *testing.T) {
	f := newLedgerFixture()
	f.store.addItem("item-1", "Masala Chips", 10)

	for _, q := range []int{0, -3} {
		_, err := f.ledger.ReserveForOrder(context.Background(), nil, "item-1", q, "order-1")
		assert.True(t, errors.Is(err, ErrValidation), "quantity %d", q)
	}
	assert.Equal(t, 10, f.store.itemQuantity("item-1"))
}

func TestStockLedger_ReserveForOrder_ConcurrentOnlyOneWins(t *testing.T) {
	f := newLedgerFixture()
	f.store.addItem("item-1", "Banana Chips", 10)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.ReserveForOrder(context.Background(), nil, "item-1", 6, uuid.NewString())
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if errors.Is(err, ErrInsufficientStock) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, rejected)
	assert.Equal(t, 4, f.store.itemQuantity("item-1"))
}

func TestStockLedger_ReleaseForOrder(t *testing.T) {
	tests := []struct {
		name         string
		status       string
		wantReleased bool
		wantQuantity int
	}{
		{name: "pending order returns stock", status: models.OrderPending, wantReleased: true, wantQuantity: 10},
		{name: "processing order keeps stock", status: models.OrderProcessing, wantQuantity: 5},
		{name: "shipped order keeps stock", status: models.OrderShipped, wantQuantity: 5},
		{name: "delivered order keeps stock", status: models.OrderDelivered, wantQuantity: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture()
			f.store.addItem("item-1", "Masala Chips", 5)
			order := &models.Order{ID: "order-1", ItemID: "item-1", Quantity: 5, Status: tt.status}

			released, err := f.ledger.ReleaseForOrder(context.Background(), nil, order)

			require.NoError(t, err)
			assert.Equal(t, tt.wantReleased, released)
			assert.Equal(t, tt.wantQuantity, f.store.itemQuantity("item-1"))
			if tt.wantReleased {
				moves := f.store.movementLog()
				require.Len(t, moves, 1)
				assert.Equal(t, models.MovementOrderRelease, moves[0].MovementType)
				assert.Equal(t, 5.0, moves[0].QuantityChanged)
			} else {
				assert.Empty(t, f.store.movementLog())
				assert.Equal(t, metrics.OutcomeSkipped, f.recorder.last(opReleaseForOrder))
			}
		})
	}
}

func TestStockLedger_ReleaseForOrder_ItemGone(t *testing.T) {
	f := newLedgerFixture()
	order := &models.Order{ID: "order-1", ItemID: "deleted-item", Quantity: 5, Status: models.OrderPending}

	released, err := f.ledger.ReleaseForOrder(context.Background(), nil, order)

	require.NoError(t, err)
	assert.False(t, released)
	assert.Empty(t, f.store.movementLog())
}

func TestStockLedger_ConsumeForProduction_Applies(t *testing.T) {
	f := newLedgerFixture()
	flour := uuid.NewString()
	sugar := uuid.NewString()
	f.store.addMaterial(flour, "Flour", 100, models.UnitKg)
	f.store.addMaterial(sugar, "Sugar", 20, models.UnitKg)

	err := f.ledger.ConsumeForProduction(context.Background(), nil, []models.MaterialUsage{
		{MaterialID: flour, QuantityUsed: 60},
		{MaterialID: sugar, QuantityUsed: 2.5},
	}, "prod-1")

	require.NoError(t, err)
	assert.Equal(t, 40.0, f.store.materialQuantity(flour))
	assert.Equal(t, 17.5, f.store.materialQuantity(sugar))

	moves := f.store.movementLog()
	require.Len(t, moves, 2)
	for _, mv := range moves {
		assert.Equal(t, models.ResourceMaterial, mv.ResourceType)
		assert.Equal(t, models.MovementProductionConsume, mv.MovementType)
		assert.Less(t, mv.QuantityChanged, 0.0)
	}
}

func TestStockLedger_ConsumeForProduction_DuplicateEntriesAreSummed(t *testing.T) {
	f := newLedgerFixture()
	flour := uuid.NewString()
	f.store.addMaterial(flour, "Flour", 100, models.UnitKg)

	err := f.ledger.ConsumeForProduction(context.Background(), nil, []models.MaterialUsage{
		{MaterialID: flour, QuantityUsed: 60},
		{MaterialID: flour, QuantityUsed: 60},
	}, "prod-1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientQuantity))
	assert.Contains(t, err.Error(), "Flour")
	assert.Equal(t, 100.0, f.store.materialQuantity(flour))
	assert.Empty(t, f.store.movementLog())
}

func TestStockLedger_ConsumeForProduction_NoPartialEffects(t *testing.T) {
	flour := uuid.NewString()
	sugar := uuid.NewString()

	tests := []struct {
		name    string
		entries []models.MaterialUsage
		wantErr error
	}{
		{
			name:    "second entry short",
			entries: []models.MaterialUsage{{MaterialID: flour, QuantityUsed: 10}, {MaterialID: sugar, QuantityUsed: 5}},
			wantErr: ErrInsufficientQuantity,
		},
		{
			name:    "unknown material",
			entries: []models.MaterialUsage{{MaterialID: flour, QuantityUsed: 10}, {MaterialID: uuid.NewString(), QuantityUsed: 1}},
			wantErr: ErrMaterialNotFound,
		},
		{
			name:    "malformed id",
			entries: []models.MaterialUsage{{MaterialID: flour, QuantityUsed: 10}, {MaterialID: "not-a-uuid", QuantityUsed: 1}},
			wantErr: ErrValidation,
		},
		{
			name:    "missing id",
			entries: []models.MaterialUsage{{MaterialID: flour, QuantityUsed: 10}, {QuantityUsed: 1}},
			wantErr: ErrValidation,
		},
		{
			name:    "zero quantity",
			entries: []models.MaterialUsage{{MaterialID: flour, QuantityUsed: 10}, {MaterialID: sugar, QuantityUsed: 0}},
			wantErr: ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLedgerFixture()
			f.store.addMaterial(flour, "Flour", 100, models.UnitKg)
			f.store.addMaterial(sugar, "Sugar", 1, models.UnitKg)

			err := f.ledger.ConsumeForProduction(context.Background(), nil, tt.entries, "prod-1")

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, 100.0, f.store.materialQuantity(flour))
			assert.Equal(t, 1.0, f.store.materialQuantity(sugar))
			assert.Empty(t, f.store.movementLog())
		})
	}
}

func TestStockLedger_ConsumeForProduction_EmptyIsNoop(t *testing.T) {
	f := newLedgerFixture()

	require.NoError(t, f.ledger.ConsumeForProduction(context.Background(), nil, nil, "prod-1"))
	assert.Empty(t, f.store.movementLog())
}

func TestStockLedger_AdjustStock_RecordsDelta(t *testing.T) {
	f := newLedgerFixture()
	f.store.addItem("item-1", "Masala Chips", 10)

	item, err := f.ledger.AdjustStock(context.Background(), nil, "item-1", 4)

	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
	moves := f.store.movementLog()
	require.Len(t, moves, 1)
	assert.Equal(t, models.MovementStockAdjust, moves[0].MovementType)
	assert.Equal(t, -6.0, moves[0].QuantityChanged)

	_, err = f.ledger.AdjustStock(context.Background(), nil, "item-1", -1)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, 4, f.store.itemQuantity("item-1"))
}

func TestStockLedger_ReduceStock(t *testing.T) {
	f := newLedgerFixture()
	f.store.addItem("item-1", "Masala Chips", 10)

	item, err := f.ledger.ReduceStock(context.Background(), nil, "item-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)

	_, err = f.ledger.ReduceStock(context.Background(), nil, "item-1", 8)
	assert.True(t, errors.Is(err, ErrInsufficientStock))
	assert.Equal(t, 7, f.store.itemQuantity("item-1"))
}

func TestStockLedger_ReduceMaterial(t *testing.T) {
	f := newLedgerFixture()
	oil := uuid.NewString()
	f.store.addMaterial(oil, "Oil", 5, models.UnitLiters)

	m, err := f.ledger.ReduceMaterial(context.Background(), nil, oil, 1.5)
	require.NoError(t, err)
	assert.Equal(t, 3.5, m.Quantity)

	_, err = f.ledger.ReduceMaterial(context.Background(), nil, oil, 10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientQuantity))
	assert.Contains(t, err.Error(), "Requested: 10 liters, Available: 3.5 liters")

	_, err = f.ledger.ReduceMaterial(context.Background(), nil, uuid.NewString(), 1)
	assert.True(t, errors.Is(err, ErrMaterialNotFound))
}
