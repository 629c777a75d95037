package models

import (
	"database/sql/driver"
	"time"
)

const (
	DefaultSnackImage    = "https://via.placeholder.com/300?text=Snacks"
	DefaultSnackCategory = "Chips"
	DefaultSnackRating   = 4.5
)

var snackCategories = []string{
	"Chips",
	"Cookies",
	"Crackers",
	"Dry Fruits",
	"Packaged Mix",
	"Traditional Chips",
	"Sweet Delicacy",
	"Biscuits",
	"Fried Biscuits (Sweet/Salt)",
	"Savory Snacks",
	"Exotic Chips",
	"Banana Fritters",
}

// SnackCategories returns the closed set of catalog categories.
func SnackCategories() []string {
	out := make([]string, len(snackCategories))
	copy(out, snackCategories)
	return out
}

// IsValidSnackCategory reports whether category belongs to the catalog.
func IsValidSnackCategory(category string) bool {
	for _, c := range snackCategories {
		if c == category {
			return true
		}
	}
	return false
}

// PacketType is a purchasable pack size of a snack.
type PacketType struct {
	Size            string  `json:"size"`
	Weight          string  `json:"weight"`
	PriceMultiplier float64 `json:"priceMultiplier"`
}

// PacketTypes is stored as a JSONB array.
type PacketTypes []PacketType

func (p PacketTypes) Value() (driver.Value, error) {
	return marshalJSONB([]PacketType(p), p == nil)
}

func (p *PacketTypes) Scan(src interface{}) error {
	return scanJSONB(src, p)
}

// Snack is a storefront catalog entry.
type Snack struct {
	ID          string      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description string      `json:"description" db:"description"`
	Price       float64     `json:"price" db:"price"`
	Image       string      `json:"image" db:"image"`
	Category    string      `json:"category" db:"category"`
	PacketTypes PacketTypes `json:"packetTypes" db:"packet_types"`
	InStock     bool        `json:"inStock" db:"in_stock"`
	Rating      float64     `json:"rating" db:"rating"`
	Ingredients []string    `json:"ingredients" db:"ingredients"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time   `json:"updatedAt" db:"updated_at"`
}

// SnackFilters narrows a catalog listing.
type SnackFilters struct {
	Category *string
	InStock  *bool
}
