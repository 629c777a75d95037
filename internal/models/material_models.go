package models

import "time"

// Allowed units for raw materials.
const (
	UnitKg      = "kg"
	UnitLiters  = "liters"
	UnitPieces  = "pieces"
	UnitBags    = "bags"
	UnitBottles = "bottles"
	UnitBoxes   = "boxes"
)

var materialUnits = map[string]struct{}{
	UnitKg: {}, UnitLiters: {}, UnitPieces: {}, UnitBags: {}, UnitBottles: {}, UnitBoxes: {},
}

// IsValidMaterialUnit reports whether unit is one of the accepted material units.
func IsValidMaterialUnit(unit string) bool {
	_, ok := materialUnits[unit]
	return ok
}

// MaterialUnits returns the accepted material units in display order.
func MaterialUnits() []string {
	return []string{UnitKg, UnitLiters, UnitPieces, UnitBags, UnitBottles, UnitBoxes}
}

// Material is a raw ingredient consumed by production runs.
type Material struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Quantity  float64   `json:"quantity" db:"quantity"`
	Unit      string    `json:"unit" db:"unit"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
