package models

// StatusCount is the number of records sharing one status value.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// DashboardSummary holds the headline numbers shown on the factory dashboard.
type DashboardSummary struct {
	MaterialCount          int           `json:"materialCount"`
	MaterialTotalQuantity  float64       `json:"materialTotalQuantity"`
	InventoryCount         int           `json:"inventoryCount"`
	InventoryTotalQuantity int           `json:"inventoryTotalQuantity"`
	LowStockItemsCount     int           `json:"lowStockItemsCount"`
	LowStockThreshold      int           `json:"lowStockThreshold"`
	PendingOrdersCount     int           `json:"pendingOrdersCount"`
	ProductionCount        int           `json:"productionCount"`
	CustomerOrdersByStatus []StatusCount `json:"customerOrdersByStatus"`
}
