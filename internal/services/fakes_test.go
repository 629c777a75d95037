package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/internal/repositories"
)

// fakeStore is an in-memory stand-in for the stock tables.
// Snapshots let fakeTxManager roll back a failed transaction.
type fakeStore struct {
	mu          sync.Mutex
	inventory   map[string]models.InventoryItem
	materials   map[string]models.Material
	movements   []models.StockMovement
	orders      map[string]models.Order
	productions map[string]models.Production
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		inventory:   map[string]models.InventoryItem{},
		materials:   map[string]models.Material{},
		orders:      map[string]models.Order{},
		productions: map[string]models.Production{},
	}
}

type storeSnapshot struct {
	inventory   map[string]models.InventoryItem
	materials   map[string]models.Material
	movements   []models.StockMovement
	orders      map[string]models.Order
	productions map[string]models.Production
}

func (s *fakeStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := storeSnapshot{
		inventory:   make(map[string]models.InventoryItem, len(s.inventory)),
		materials:   make(map[string]models.Material, len(s.materials)),
		movements:   append([]models.StockMovement(nil), s.movements...),
		orders:      make(map[string]models.Order, len(s.orders)),
		productions: make(map[string]models.Production, len(s.productions)),
	}
	for k, v := range s.inventory {
		snap.inventory[k] = v
	}
	for k, v := range s.materials {
		snap.materials[k] = v
	}
	for k, v := range s.orders {
		snap.orders[k] = v
	}
	for k, v := range s.productions {
		snap.productions[k] = v
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = snap.inventory
	s.materials = snap.materials
	s.movements = snap.movements
	s.orders = snap.orders
	s.productions = snap.productions
}

func (s *fakeStore) addItem(id, name string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory[id] = models.InventoryItem{ID: id, ItemName: name, Quantity: quantity, Unit: models.DefaultInventoryUnit}
}

func (s *fakeStore) addMaterial(id, name string, quantity float64, unit string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials[id] = models.Material{ID: id, Name: name, Quantity: quantity, Unit: unit}
}

func (s *fakeStore) itemQuantity(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inventory[id].Quantity
}

func (s *fakeStore) materialQuantity(id string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.materials[id].Quantity
}

func (s *fakeStore) movementLog() []models.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.StockMovement(nil), s.movements...)
}

// fakeTxManager serialises transactions and restores the store when fn fails.
type fakeTxManager struct {
	store *fakeStore
	txMu  sync.Mutex
}

func (m *fakeTxManager) WithinTx(ctx context.Context, fn func(tx repositories.SQLExecutor) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	snap := m.store.snapshot()
	if err := fn(nil); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// --- inventory ---

type fakeInventoryRepo struct{ s *fakeStore }

func (r *fakeInventoryRepo) Create(ctx context.Context, _ repositories.SQLExecutor, item *models.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.inventory[item.ID] = *item
	return nil
}

func (r *fakeInventoryRepo) List(ctx context.Context, _ repositories.SQLExecutor) ([]models.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := []models.InventoryItem{}
	for _, it := range r.s.inventory {
		items = append(items, it)
	}
	return items, nil
}

func (r *fakeInventoryRepo) GetByID(ctx context.Context, _ repositories.SQLExecutor, id string) (*models.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.inventory[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &it, nil
}

func (r *fakeInventoryRepo) Update(ctx context.Context, _ repositories.SQLExecutor, item *models.InventoryItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.inventory[item.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	item.Quantity = cur.Quantity
	r.s.inventory[item.ID] = *item
	return nil
}

func (r *fakeInventoryRepo) Delete(ctx context.Context, _ repositories.SQLExecutor, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.inventory[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.inventory, id)
	return nil
}

func (r *fakeInventoryRepo) DecrementQuantity(ctx context.Context, _ repositories.SQLExecutor, id string, amount int) (*models.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.inventory[id]
	if !ok || it.Quantity < amount {
		return nil, repositories.ErrConditionNotMet
	}
	it.Quantity -= amount
	r.s.inventory[id] = it
	return &it, nil
}

func (r *fakeInventoryRepo) IncrementQuantity(ctx context.Context, _ repositories.SQLExecutor, id string, amount int) (*models.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.inventory[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	it.Quantity += amount
	r.s.inventory[id] = it
	return &it, nil
}

func (r *fakeInventoryRepo) SetQuantity(ctx context.Context, _ repositories.SQLExecutor, id string, quantity int) (*models.InventoryItem, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.inventory[id]
	if !ok {
		return nil, 0, repositories.ErrNotFound
	}
	previous := it.Quantity
	it.Quantity = quantity
	r.s.inventory[id] = it
	return &it, previous, nil
}

// --- materials ---

type fakeMaterialRepo struct{ s *fakeStore }

func (r *fakeMaterialRepo) Create(ctx context.Context, _ repositories.SQLExecutor, m *models.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.materials[m.ID] = *m
	return nil
}

func (r *fakeMaterialRepo) List(ctx context.Context, _ repositories.SQLExecutor) ([]models.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Material{}
	for _, m := range r.s.materials {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeMaterialRepo) GetByID(ctx context.Context, _ repositories.SQLExecutor, id string) (*models.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.materials[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &m, nil
}

func (r *fakeMaterialRepo) GetForUpdate(ctx context.Context, exec repositories.SQLExecutor, id string) (*models.Material, error) {
	return r.GetByID(ctx, exec, id)
}

func (r *fakeMaterialRepo) Update(ctx context.Context, _ repositories.SQLExecutor, m *models.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[m.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.s.materials[m.ID] = *m
	return nil
}

func (r *fakeMaterialRepo) Delete(ctx context.Context, _ repositories.SQLExecutor, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.materials[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.materials, id)
	return nil
}

func (r *fakeMaterialRepo) DecrementQuantity(ctx context.Context, _ repositories.SQLExecutor, id string, amount float64) (*models.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.materials[id]
	if !ok || m.Quantity < amount {
		return nil, repositories.ErrConditionNotMet
	}
	m.Quantity -= amount
	r.s.materials[id] = m
	return &m, nil
}

// --- movements ---

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) CreateMovement(ctx context.Context, _ repositories.SQLExecutor, mv *models.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	mv.CreatedAt = time.Now().UTC()
	r.s.movements = append(r.s.movements, *mv)
	return nil
}

func (r *fakeMovementRepo) GetMovements(ctx context.Context, _ repositories.SQLExecutor, f models.MovementFilters) ([]models.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.StockMovement{}
	for _, mv := range r.s.movements {
		if f.ResourceType != nil && *f.ResourceType != mv.ResourceType {
			continue
		}
		if f.ResourceID != nil && *f.ResourceID != mv.ResourceID {
			continue
		}
		out = append(out, mv)
	}
	return out, nil
}

// --- dispatch orders ---

type fakeOrderRepo struct {
	s         *fakeStore
	createErr error
}

func (r *fakeOrderRepo) withItem(o models.Order) *models.Order {
	if it, ok := r.s.inventory[o.ItemID]; ok {
		o.Item = &it
	}
	return &o
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, _ repositories.SQLExecutor, o *models.Order) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o.CreatedAt, o.UpdatedAt = time.Now().UTC(), time.Now().UTC()
	stored := *o
	stored.Item = nil
	r.s.orders[o.ID] = stored
	return nil
}

func (r *fakeOrderRepo) GetOrders(ctx context.Context, _ repositories.SQLExecutor, status *string) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Order{}
	for _, o := range r.s.orders {
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, *r.withItem(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) GetOrderByID(ctx context.Context, _ repositories.SQLExecutor, id string) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r.withItem(o), nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, _ repositories.SQLExecutor, id, status string, dispatchDate *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return repositories.ErrNotFound
	}
	o.Status = status
	if dispatchDate != nil {
		d := *dispatchDate
		o.DispatchDate = &d
	}
	r.s.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) DeleteOrder(ctx context.Context, _ repositories.SQLExecutor, id string) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	delete(r.s.orders, id)
	return &o, nil
}

// --- productions ---

type fakeProductionRepo struct{ s *fakeStore }

func (r *fakeProductionRepo) Create(ctx context.Context, _ repositories.SQLExecutor, p *models.Production) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.productions[p.ID] = *p
	return nil
}

func (r *fakeProductionRepo) List(ctx context.Context, _ repositories.SQLExecutor) ([]models.Production, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Production{}
	for _, p := range r.s.productions {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductionRepo) GetByID(ctx context.Context, _ repositories.SQLExecutor, id string) (*models.Production, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.productions[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r *fakeProductionRepo) Update(ctx context.Context, _ repositories.SQLExecutor, p *models.Production) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.productions[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.s.productions[p.ID] = *p
	return nil
}

func (r *fakeProductionRepo) Delete(ctx context.Context, _ repositories.SQLExecutor, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.productions[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.s.productions, id)
	return nil
}

// recordingRecorder captures ledger observations.
type recordingRecorder struct {
	mu       sync.Mutex
	outcomes map[string][]string
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{outcomes: map[string][]string{}}
}

func (r *recordingRecorder) RecordLedgerOperation(op, outcome string, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes[op] = append(r.outcomes[op], outcome)
}

func (r *recordingRecorder) last(op string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.outcomes[op]
	if len(list) == 0 {
		return ""
	}
	return list[len(list)-1]
}

var errInjected = errors.New("injected failure")

// ledgerFixture wires a real StockLedger to the fake store.
type ledgerFixture struct {
	store    *fakeStore
	ledger   StockLedger
	tx       *fakeTxManager
	recorder *recordingRecorder
	invRepo  *fakeInventoryRepo
	matRepo  *fakeMaterialRepo
	movRepo  *fakeMovementRepo
}

func newLedgerFixture() *ledgerFixture {
	store := newFakeStore()
	f := &ledgerFixture{
		store:    store,
		tx:       &fakeTxManager{store: store},
		recorder: newRecordingRecorder(),
		invRepo:  &fakeInventoryRepo{s: store},
		matRepo:  &fakeMaterialRepo{s: store},
		movRepo:  &fakeMovementRepo{s: store},
	}
	f.ledger = NewStockLedger(f.invRepo, f.matRepo, f.movRepo, f.recorder)
	return f
}
