package entity

import "time"

// Dirección del movimiento.
const (
	MovementTypeIn         = "in"
	MovementTypeOut        = "out"
	MovementTypeAdjustment = "adjustment"
)

// Origen del movimiento.
const (
	ReferenceSale        = "sale"
	ReferencePurchase    = "purchase"
	ReferenceAdjustment  = "adjustment"
	ReferenceExcelUpload = "excel_upload"
)

// StockMovement es una entrada del registro append-only de cambios de stock.
type StockMovement struct {
	ID            int64
	MerchantID    string
	ItemID        string
	MovementType  string // in, out, adjustment
	Quantity      int    // magnitud, siempre positiva
	ReferenceType string // sale, purchase, adjustment, excel_upload
	ReferenceID   string // número de factura o id de compra
	Notes         string
	CreatedAt     time.Time
}
