package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"snack_factory_backend/internal/metrics"
	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Ledger operation names used for spans and metrics.
const (
	opReserveForOrder      = "reserve_for_order"
	opReleaseForOrder      = "release_for_order"
	opConsumeForProduction = "consume_for_production"
	opAdjustStock          = "adjust_stock"
	opReduceStock          = "reduce_stock"
	opReduceMaterial       = "reduce_material"
)

// LedgerRecorder receives one observation per ledger call.
type LedgerRecorder interface {
	RecordLedgerOperation(operation, outcome string, quantity float64)
}

type noopRecorder struct{}

func (noopRecorder) RecordLedgerOperation(string, string, float64) {}

// StockLedger owns every guarded change to inventory and material quantities.
// Every method runs on the caller's executor and commits or rolls back with the caller's transaction.
type StockLedger interface {
	ReserveForOrder(ctx context.Context, exec repositories.SQLExecutor, itemID string, quantity int, reference string) (*models.InventoryItem, error)
	ReleaseForOrder(ctx context.Context, exec repositories.SQLExecutor, order *models.Order) (bool, error)
	ConsumeForProduction(ctx context.Context, exec repositories.SQLExecutor, entries []models.MaterialUsage, reference string) error
	AdjustStock(ctx context.Context, exec repositories.SQLExecutor, itemID string, newQuantity int) (*models.InventoryItem, error)
	ReduceStock(ctx context.Context, exec repositories.SQLExecutor, itemID string, delta int) (*models.InventoryItem, error)
	ReduceMaterial(ctx context.Context, exec repositories.SQLExecutor, materialID string, delta float64) (*models.Material, error)
}

type stockLedger struct {
	inventoryRepo repositories.InventoryRepository
	materialRepo  repositories.MaterialRepository
	movementRepo  repositories.StockMovementRepository
	recorder      LedgerRecorder
	tracer        trace.Tracer
}

// NewStockLedger creates a StockLedger. recorder may be nil.
func NewStockLedger(
	ir repositories.InventoryRepository,
	mr repositories.MaterialRepository,
	smr repositories.StockMovementRepository,
	recorder LedgerRecorder,
) StockLedger {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &stockLedger{
		inventoryRepo: ir,
		materialRepo:  mr,
		movementRepo:  smr,
		recorder:      recorder,
		tracer:        otel.Tracer("snack_factory_backend/services/stock_ledger"),
	}
}

func (l *stockLedger) startSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return l.tracer.Start(ctx, "StockLedger."+op, trace.WithAttributes(attrs...))
}

// finish records the outcome of op on the span and in metrics.
func (l *stockLedger) finish(span trace.Span, op string, quantity float64, err error) {
	defer span.End()
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrInsufficientQuantity), errors.Is(err, ErrValidation):
		outcome = metrics.OutcomeRejected
	case errors.Is(err, ErrNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeError
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	l.recorder.RecordLedgerOperation(op, outcome, quantity)
}

func (l *stockLedger) recordMovement(ctx context.Context, exec repositories.SQLExecutor, resourceType, resourceID, movementType string, delta float64, reason, reference string) error {
	movement := &models.StockMovement{
		ID:              uuid.NewString(),
		ResourceType:    resourceType,
		ResourceID:      resourceID,
		MovementType:    movementType,
		QuantityChanged: delta,
	}
	if reason != "" {
		movement.Reason = &reason
	}
	if reference != "" {
		movement.ReferenceID = &reference
	}
	if err := l.movementRepo.CreateMovement(ctx, exec, movement); err != nil {
		return fmt.Errorf("recording %s movement for %s %s: %w", movementType, resourceType, resourceID, err)
	}
	return nil
}

// decrementInventory applies a guarded decrement and explains a miss as NotFound or InsufficientStock.
func (l *stockLedger) decrementInventory(ctx context.Context, exec repositories.SQLExecutor, itemID string, amount int) (*models.InventoryItem, error) {
	item, err := l.inventoryRepo.DecrementQuantity(ctx, exec, itemID, amount)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, repositories.ErrConditionNotMet) {
		return nil, fmt.Errorf("decrementing inventory item %s: %w", itemID, err)
	}

	current, getErr := l.inventoryRepo.GetByID(ctx, exec, itemID)
	if getErr != nil {
		if errors.Is(getErr, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInventoryItemNotFound, itemID)
		}
		return nil, fmt.Errorf("reading inventory item %s: %w", itemID, getErr)
	}
	log.Warn().Str("item_id", itemID).Int("requested", amount).Int("available", current.Quantity).Msg("Stock decrement rejected")
	return nil, fmt.Errorf("%w for %s. Requested: %d, Available: %d", ErrInsufficientStock, current.ItemName, amount, current.Quantity)
}

func (l *stockLedger) ReserveForOrder(ctx context.Context, exec repositories.SQLExecutor, itemID string, quantity int, reference string) (item *models.InventoryItem, err error) {
	ctx, span := l.startSpan(ctx, opReserveForOrder, attribute.String("inventory.id", itemID), attribute.Int("quantity", quantity))
	defer func() { l.finish(span, opReserveForOrder, float64(quantity), err) }()

	if quantity < 1 {
		return nil, validationError("quantity must be at least 1")
	}
	if itemID == "" {
		return nil, validationError("itemId is required")
	}

	item, err = l.decrementInventory(ctx, exec, itemID, quantity)
	if err != nil {
		return nil, err
	}
	if err = l.recordMovement(ctx, exec, models.ResourceInventory, itemID, models.MovementOrderReserve,
		-float64(quantity), "Order reservation", reference); err != nil {
		return nil, err
	}
	return item, nil
}

func (l *stockLedger) ReleaseForOrder(ctx context.Context, exec repositories.SQLExecutor, order *models.Order) (released bool, err error) {
	ctx, span := l.startSpan(ctx, opReleaseForOrder,
		attribute.String("order.id", order.ID), attribute.String("order.status", order.Status), attribute.Int("quantity", order.Quantity))
	defer func() {
		if err == nil && !released {
			span.SetAttributes(attribute.Bool("released", false))
			span.End()
			l.recorder.RecordLedgerOperation(opReleaseForOrder, metrics.OutcomeSkipped, 0)
			return
		}
		l.finish(span, opReleaseForOrder, float64(order.Quantity), err)
	}()

	if order.Status != models.OrderPending {
		return false, nil
	}

	_, err = l.inventoryRepo.IncrementQuantity(ctx, exec, order.ItemID, order.Quantity)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			log.Warn().Str("order_id", order.ID).Str("item_id", order.ItemID).Msg("Inventory item gone; reserved stock not returned")
			return false, nil
		}
		return false, fmt.Errorf("returning stock for order %s: %w", order.ID, err)
	}
	if err = l.recordMovement(ctx, exec, models.ResourceInventory, order.ItemID, models.MovementOrderRelease,
		float64(order.Quantity), "Pending order deleted", order.ID); err != nil {
		return false, err
	}
	return true, nil
}

// materialDemand is the aggregated draw on one material across a production's entries.
type materialDemand struct {
	materialID string
	amount     float64
	firstIndex int
}

func (l *stockLedger) ConsumeForProduction(ctx context.Context, exec repositories.SQLExecutor, entries []models.MaterialUsage, reference string) (err error) {
	var total float64
	ctx, span := l.startSpan(ctx, opConsumeForProduction, attribute.Int("entries", len(entries)))
	defer func() { l.finish(span, opConsumeForProduction, total, err) }()

	if len(entries) == 0 {
		return nil
	}

	// Validation pass: shape of every entry, aggregated per material.
	demands := map[string]*materialDemand{}
	for i, entry := range entries {
		if entry.MaterialID == "" {
			return validationError("materialUsed[%d]: materialId is required", i)
		}
		if _, parseErr := uuid.Parse(entry.MaterialID); parseErr != nil {
			return validationError("materialUsed[%d]: invalid materialId %q", i, entry.MaterialID)
		}
		if entry.QuantityUsed <= 0 || math.IsNaN(entry.QuantityUsed) || math.IsInf(entry.QuantityUsed, 0) {
			return validationError("materialUsed[%d]: quantityUsed must be greater than 0", i)
		}
		d, ok := demands[entry.MaterialID]
		if !ok {
			d = &materialDemand{materialID: entry.MaterialID, firstIndex: i}
			demands[entry.MaterialID] = d
		}
		d.amount += entry.QuantityUsed
		total += entry.QuantityUsed
	}

	// Lock rows in id order so concurrent productions cannot deadlock.
	lockOrder := make([]string, 0, len(demands))
	for id := range demands {
		lockOrder = append(lockOrder, id)
	}
	sort.Strings(lockOrder)
	locked := make(map[string]*models.Material, len(demands))
	for _, id := range lockOrder {
		m, getErr := l.materialRepo.GetForUpdate(ctx, exec, id)
		if getErr != nil {
			if errors.Is(getErr, repositories.ErrNotFound) {
				locked[id] = nil
				continue
			}
			return fmt.Errorf("locking material %s: %w", id, getErr)
		}
		locked[id] = m
	}

	// Check availability, reporting the first failing entry in request order.
	ordered := make([]*materialDemand, 0, len(demands))
	for _, d := range demands {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].firstIndex < ordered[j].firstIndex })
	for _, d := range ordered {
		m := locked[d.materialID]
		if m == nil {
			return fmt.Errorf("%w: %s", ErrMaterialNotFound, d.materialID)
		}
		if d.amount > m.Quantity {
			log.Warn().Str("material_id", m.ID).Float64("requested", d.amount).Float64("available", m.Quantity).Msg("Production consumption rejected")
			return fmt.Errorf("%w of %s. Requested: %g %s, Available: %g %s",
				ErrInsufficientQuantity, m.Name, d.amount, m.Unit, m.Quantity, m.Unit)
		}
	}

	// Apply pass: every entry has been checked against locked rows.
	for _, d := range ordered {
		if _, err = l.materialRepo.DecrementQuantity(ctx, exec, d.materialID, d.amount); err != nil {
			if errors.Is(err, repositories.ErrConditionNotMet) {
				return fmt.Errorf("%w of material %s", ErrInsufficientQuantity, d.materialID)
			}
			return fmt.Errorf("consuming material %s: %w", d.materialID, err)
		}
		if err = l.recordMovement(ctx, exec, models.ResourceMaterial, d.materialID, models.MovementProductionConsume,
			-d.amount, "Production run", reference); err != nil {
			return err
		}
	}
	return nil
}

func (l *stockLedger) AdjustStock(ctx context.Context, exec repositories.SQLExecutor, itemID string, newQuantity int) (item *models.InventoryItem, err error) {
	var delta int
	ctx, span := l.startSpan(ctx, opAdjustStock, attribute.String("inventory.id", itemID), attribute.Int("quantity", newQuantity))
	defer func() { l.finish(span, opAdjustStock, math.Abs(float64(delta)), err) }()

	if newQuantity < 0 {
		return nil, validationError("quantity cannot be negative")
	}

	var previous int
	item, previous, err = l.inventoryRepo.SetQuantity(ctx, exec, itemID, newQuantity)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrInventoryItemNotFound, itemID)
		}
		return nil, fmt.Errorf("adjusting stock of %s: %w", itemID, err)
	}
	delta = newQuantity - previous
	if err = l.recordMovement(ctx, exec, models.ResourceInventory, itemID, models.MovementStockAdjust,
		float64(delta), "Stock level set", ""); err != nil {
		return nil, err
	}
	return item, nil
}

func (l *stockLedger) ReduceStock(ctx context.Context, exec repositories.SQLExecutor, itemID string, delta int) (item *models.InventoryItem, err error) {
	ctx, span := l.startSpan(ctx, opReduceStock, attribute.String("inventory.id", itemID), attribute.Int("quantity", delta))
	defer func() { l.finish(span, opReduceStock, float64(delta), err) }()

	if delta < 1 {
		return nil, validationError("quantityToReduce must be at least 1")
	}
	item, err = l.decrementInventory(ctx, exec, itemID, delta)
	if err != nil {
		return nil, err
	}
	if err = l.recordMovement(ctx, exec, models.ResourceInventory, itemID, models.MovementStockReduce,
		-float64(delta), "Stock reduced", ""); err != nil {
		return nil, err
	}
	return item, nil
}

func (l *stockLedger) ReduceMaterial(ctx context.Context, exec repositories.SQLExecutor, materialID string, delta float64) (m *models.Material, err error) {
	ctx, span := l.startSpan(ctx, opReduceMaterial, attribute.String("material.id", materialID), attribute.Float64("quantity", delta))
	defer func() { l.finish(span, opReduceMaterial, delta, err) }()

	if delta <= 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return nil, validationError("quantityToReduce must be greater than 0")
	}

	m, err = l.materialRepo.DecrementQuantity(ctx, exec, materialID, delta)
	if err != nil {
		if !errors.Is(err, repositories.ErrConditionNotMet) {
			return nil, fmt.Errorf("reducing material %s: %w", materialID, err)
		}
		current, getErr := l.materialRepo.GetByID(ctx, exec, materialID)
		if getErr != nil {
			if errors.Is(getErr, repositories.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrMaterialNotFound, materialID)
			}
			return nil, fmt.Errorf("reading material %s: %w", materialID, getErr)
		}
		return nil, fmt.Errorf("%w of %s. Requested: %g %s, Available: %g %s",
			ErrInsufficientQuantity, current.Name, delta, current.Unit, current.Quantity, current.Unit)
	}
	if err = l.recordMovement(ctx, exec, models.ResourceMaterial, materialID, models.MovementStockReduce,
		-delta, "Material reduced", ""); err != nil {
		return nil, err
	}
	return m, nil
}
