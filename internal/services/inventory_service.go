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
)

// --- DTOs ---

// CreateInventoryItemRequest is the payload for adding a finished good.
type CreateInventoryItemRequest struct {
	ItemName string   `json:"itemName" binding:"required"`
	Quantity *int     `json:"quantity" binding:"required,gte=0"`
	Unit     string   `json:"unit"`
	Price    *float64 `json:"price" binding:"omitempty,gte=0"`
	SKU      string   `json:"sku"`
	Category string   `json:"category"`
}

// UpdateInventoryItemRequest is a partial update; nil fields are left unchanged.
type UpdateInventoryItemRequest struct {
	ItemName *string  `json:"itemName"`
	Quantity *int     `json:"quantity" binding:"omitempty,gte=0"`
	Unit     *string  `json:"unit"`
	Price    *float64 `json:"price" binding:"omitempty,gte=0"`
	SKU      *string  `json:"sku"`
	Category *string  `json:"category"`
}

// UpdateStockRequest overwrites an item's stock level.
type UpdateStockRequest struct {
	ID       string `json:"id" binding:"required"`
	Quantity *int   `json:"quantity" binding:"required,gte=0"`
}

// ReduceStockRequest draws stock down outside of an order.
type ReduceStockRequest struct {
	ID               string `json:"id" binding:"required"`
	QuantityToReduce int    `json:"quantityToReduce" binding:"required,gt=0"`
}

// --- End of DTOs ---

// InventoryService manages finished goods and their stock levels.
type InventoryService interface {
	CreateItem(ctx context.Context, req CreateInventoryItemRequest) (*models.InventoryItem, error)
	GetItems(ctx context.Context) ([]models.InventoryItem, error)
	GetItemByID(ctx context.Context, id string) (*models.InventoryItem, error)
	UpdateItem(ctx context.Context, id string, req UpdateInventoryItemRequest) (*models.InventoryItem, error)
	DeleteItem(ctx context.Context, id string) error
	UpdateStock(ctx context.Context, req UpdateStockRequest) (*models.InventoryItem, error)
	ReduceStock(ctx context.Context, req ReduceStockRequest) (*models.InventoryItem, error)
	GetMovements(ctx context.Context, filters models.MovementFilters) ([]models.StockMovement, error)
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	movementRepo  repositories.StockMovementRepository
	ledger        StockLedger
	txManager     repositories.TxManager
	db            *sql.DB
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(
	ir repositories.InventoryRepository,
	smr repositories.StockMovementRepository,
	ledger StockLedger,
	txm repositories.TxManager,
	db *sql.DB,
) InventoryService {
	return &inventoryService{inventoryRepo: ir, movementRepo: smr, ledger: ledger, txManager: txm, db: db}
}

func optionalSKU(sku string) *string {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil
	}
	return &sku
}

func mapInventoryWriteError(err error, action string) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return ErrSKUExists
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrInventoryItemNotFound
	}
	return fmt.Errorf("failed to %s inventory item: %w", action, err)
}

func (s *inventoryService) CreateItem(ctx context.Context, req CreateInventoryItemRequest) (*models.InventoryItem, error) {
	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return nil, validationError("itemName is required")
	}
	if req.Quantity == nil || *req.Quantity < 0 {
		return nil, validationError("quantity must be a non-negative integer")
	}
	item := &models.InventoryItem{
		ID:       uuid.NewString(),
		ItemName: name,
		Quantity: *req.Quantity,
		Unit:     models.DefaultInventoryUnit,
		Category: models.DefaultInventoryCategory,
		SKU:      optionalSKU(req.SKU),
	}
	if u := strings.TrimSpace(req.Unit); u != "" {
		item.Unit = u
	}
	if c := strings.TrimSpace(req.Category); c != "" {
		item.Category = c
	}
	if req.Price != nil {
		if !validQuantity(*req.Price) {
			return nil, validationError("price must be a non-negative number")
		}
		item.Price = *req.Price
	}
	if err := s.inventoryRepo.Create(ctx, s.db, item); err != nil {
		return nil, mapInventoryWriteError(err, "create")
	}
	return item, nil
}

func (s *inventoryService) GetItems(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.inventoryRepo.List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	return items, nil
}

func (s *inventoryService) GetItemByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	item, err := s.inventoryRepo.GetByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item %s: %w", id, err)
	}
	return item, nil
}

// UpdateItem edits descriptive fields. A quantity change is applied as a ledger stock adjustment.
func (s *inventoryService) UpdateItem(ctx context.Context, id string, req UpdateInventoryItemRequest) (*models.InventoryItem, error) {
	var updated *models.InventoryItem
	err := s.txManager.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		item, err := s.inventoryRepo.GetByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return ErrInventoryItemNotFound
			}
			return fmt.Errorf("failed to load inventory item %s: %w", id, err)
		}
		if req.ItemName != nil {
			name := strings.TrimSpace(*req.ItemName)
			if name == "" {
				return validationError("itemName cannot be empty")
			}
			item.ItemName = name
		}
		if req.Unit != nil {
			item.Unit = strings.TrimSpace(*req.Unit)
		}
		if req.Category != nil {
			item.Category = strings.TrimSpace(*req.Category)
		}
		if req.SKU != nil {
			item.SKU = optionalSKU(*req.SKU)
		}
		if req.Price != nil {
			if !validQuantity(*req.Price) {
				return validationError("price must be a non-negative number")
			}
			item.Price = *req.Price
		}
		if req.Quantity != nil {
			if _, err := s.ledger.AdjustStock(ctx, tx, id, *req.Quantity); err != nil {
				return err
			}
		}
		if err := s.inventoryRepo.Update(ctx, tx, item); err != nil {
			return mapInventoryWriteError(err, "update")
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id string) error {
	if err := s.inventoryRepo.Delete(ctx, s.db, id); err != nil {
		return mapInventoryWriteError(err, "delete")
	}
	return nil
}

func (s *inventoryService) UpdateStock(ctx context.Context, req UpdateStockRequest) (*models.InventoryItem, error) {
	if req.Quantity == nil {
		return nil, validationError("quantity is required")
	}
	var item *models.InventoryItem
	err := s.txManager.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		var err error
		item, err = s.ledger.AdjustStock(ctx, tx, req.ID, *req.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) ReduceStock(ctx context.Context, req ReduceStockRequest) (*models.InventoryItem, error) {
	var item *models.InventoryItem
	err := s.txManager.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		var err error
		item, err = s.ledger.ReduceStock(ctx, tx, req.ID, req.QuantityToReduce)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *inventoryService) GetMovements(ctx context.Context, filters models.MovementFilters) ([]models.StockMovement, error) {
	if filters.ResourceType != nil && *filters.ResourceType != "" &&
		*filters.ResourceType != models.ResourceInventory && *filters.ResourceType != models.ResourceMaterial {
		return nil, validationError("resourceType must be %s or %s", models.ResourceInventory, models.ResourceMaterial)
	}
	movements, err := s.movementRepo.GetMovements(ctx, s.db, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get stock movements: %w", err)
	}
	return movements, nil
}
