package models

import (
	"database/sql/driver"
	"time"
)

// Production statuses.
const (
	ProductionPlanned    = "Planned"
	ProductionInProgress = "In Progress"
	ProductionCompleted  = "Completed"
)

// IsValidProductionStatus reports whether status is a known production status.
func IsValidProductionStatus(status string) bool {
	switch status {
	case ProductionPlanned, ProductionInProgress, ProductionCompleted:
		return true
	}
	return false
}

// MaterialUsage is one raw material line of a production run.
type MaterialUsage struct {
	MaterialID   string  `json:"materialId"`
	QuantityUsed float64 `json:"quantityUsed"`
	Unit         string  `json:"unit,omitempty"`
}

// MaterialUsageList is stored as a JSONB array.
type MaterialUsageList []MaterialUsage

// Value implements driver.Valuer.
func (l MaterialUsageList) Value() (driver.Value, error) {
	return marshalJSONB([]MaterialUsage(l), l == nil)
}

// Scan implements sql.Scanner.
func (l *MaterialUsageList) Scan(src interface{}) error {
	return scanJSONB(src, l)
}

// Production records a batch of snacks made and the materials it drew down.
type Production struct {
	ID           string            `json:"id" db:"id"`
	SnackName    string            `json:"snackName" db:"snack_name"`
	Quantity     int               `json:"quantity" db:"quantity"`
	Date         time.Time         `json:"date" db:"date"`
	MaterialUsed MaterialUsageList `json:"materialUsed" db:"material_used"`
	Status       string            `json:"status" db:"status"`
	CreatedAt    time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time         `json:"updatedAt" db:"updated_at"`
}
