package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto de una farmacia.
const (
	CategoryTablets    = "tablets"
	CategorySyrups     = "syrups"
	CategoryInjections = "injections"
	CategoryCapsules   = "capsules"
	CategoryOintments  = "ointments"
	CategoryGeneral    = "general"
)

var categories = map[string]struct{}{
	CategoryTablets:    {},
	CategorySyrups:     {},
	CategoryInjections: {},
	CategoryCapsules:   {},
	CategoryOintments:  {},
	CategoryGeneral:    {},
}

// NormalizeCategory devuelve la categoría en minúsculas y si es válida. Vacío equivale a general.
func NormalizeCategory(s string) (string, bool) {
	c := strings.ToLower(strings.TrimSpace(s))
	if c == "" {
		return CategoryGeneral, true
	}
	_, ok := categories[c]
	return c, ok
}

// InventoryItem es una línea de inventario de un comercio. ItemID es único dentro del comercio.
type InventoryItem struct {
	MerchantID   string
	ItemID       string
	Name         string
	Category     string
	Quantity     int             // nunca negativo tras commit
	Price        decimal.Decimal // precio unitario de venta
	GSTRate      decimal.Decimal // porcentaje 0..100
	BatchNumber  string
	ExpiryDate   *time.Time
	Manufacturer string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockValue es quantity * price.
func (i *InventoryItem) StockValue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
