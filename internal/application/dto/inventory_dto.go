package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ManualItemRequest body para POST /api/inventory/manual.
// GSTRate nil toma la tasa por defecto de configuración.
type ManualItemRequest struct {
	Name         string           `json:"name" validate:"required,max=255"`
	Category     string           `json:"category" validate:"omitempty,oneof=tablets syrups injections capsules ointments general"`
	Quantity     int              `json:"quantity" validate:"min=0"`
	Price        decimal.Decimal  `json:"price"`
	GSTRate      *decimal.Decimal `json:"gstRate,omitempty"`
	BatchNumber  string           `json:"batchNumber,omitempty" validate:"max=100"`
	ExpiryDate   string           `json:"expiryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Manufacturer string           `json:"manufacturer,omitempty" validate:"max=255"`
}

// InventoryItemResponse item en respuestas.
type InventoryItemResponse struct {
	ItemID       string          `json:"itemId"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	GSTRate      decimal.Decimal `json:"gstRate"`
	BatchNumber  string          `json:"batchNumber,omitempty"`
	ExpiryDate   string          `json:"expiryDate,omitempty"`
	Manufacturer string          `json:"manufacturer,omitempty"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// UpsertItemResponse resultado de un alta manual.
type UpsertItemResponse struct {
	Item    InventoryItemResponse `json:"item"`
	Created bool                  `json:"created"`
	Message string                `json:"message"`
}

// ImportRowError fila rechazada de una importación Excel (Row es 1-based, incluye cabecera).
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult resumen de una importación Excel.
type ImportResult struct {
	Imported int              `json:"imported"`
	Updated  int              `json:"updated"`
	Skipped  int              `json:"skipped"`
	Errors   []ImportRowError `json:"errors"`
}

// StockMovementResponse movimiento en respuestas.
type StockMovementResponse struct {
	ID            int64     `json:"id"`
	ItemID        string    `json:"itemId"`
	MovementType  string    `json:"movementType"`
	Quantity      int       `json:"quantity"`
	ReferenceType string    `json:"referenceType"`
	ReferenceID   string    `json:"referenceId,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
