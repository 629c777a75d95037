package models

import "time"

// Dispatch order statuses.
const (
	OrderPending    = "Pending"
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
)

// IsValidOrderStatus reports whether status is a known dispatch order status.
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

// Order is a dispatch of a finished good to a named customer.
type Order struct {
	ID           string         `json:"id" db:"id"`
	OrderNumber  string         `json:"orderNumber" db:"order_number"`
	ItemID       string         `json:"itemId" db:"item_id"`
	ItemName     string         `json:"itemName" db:"item_name"`
	Quantity     int            `json:"quantity" db:"quantity"`
	CustomerName string         `json:"customerName" db:"customer_name"`
	Status       string         `json:"status" db:"status"`
	OrderDate    time.Time      `json:"orderDate" db:"order_date"`
	DispatchDate *time.Time     `json:"dispatchDate,omitempty" db:"dispatch_date"`
	Notes        string         `json:"notes" db:"notes"`
	CreatedAt    time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time      `json:"updatedAt" db:"updated_at"`
	Item         *InventoryItem `json:"item,omitempty"` // current inventory document, nil once deleted
}
