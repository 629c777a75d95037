package models

import "time"

const (
	DefaultInventoryUnit     = "pieces"
	DefaultInventoryCategory = "General"
)

// InventoryItem is a finished good held in stock and reserved by dispatch orders.
type InventoryItem struct {
	ID        string    `json:"id" db:"id"`
	ItemName  string    `json:"itemName" db:"item_name"`
	Quantity  int       `json:"quantity" db:"quantity"`
	Unit      string    `json:"unit" db:"unit"`
	Price     float64   `json:"price" db:"price"`
	SKU       *string   `json:"sku,omitempty" db:"sku"`
	Category  string    `json:"category" db:"category"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Resource types tracked by stock movements.
const (
	ResourceInventory = "inventory"
	ResourceMaterial  = "material"
)

// Movement types written by the stock ledger.
const (
	MovementOrderReserve      = "order_reserve"
	MovementOrderRelease      = "order_release"
	MovementProductionConsume = "production_consume"
	MovementStockAdjust       = "stock_adjust"
	MovementStockReduce       = "stock_reduce"
)

// StockMovement is an audit entry for a single quantity change.
type StockMovement struct {
	ID              string    `json:"id" db:"id"`
	ResourceType    string    `json:"resourceType" db:"resource_type"`
	ResourceID      string    `json:"resourceId" db:"resource_id"`
	MovementType    string    `json:"movementType" db:"movement_type"`
	QuantityChanged float64   `json:"quantityChanged" db:"quantity_changed"`
	Reason          *string   `json:"reason,omitempty" db:"reason"`
	ReferenceID     *string   `json:"referenceId,omitempty" db:"reference_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// MovementFilters narrows a stock movement listing.
type MovementFilters struct {
	ResourceType *string
	ResourceID   *string
	MovementType *string
	Limit        int
}
