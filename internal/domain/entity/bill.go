package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCustomerName se usa cuando la venta no registra cliente.
const DefaultCustomerName = "Walk-in Customer"

// Estados de pago de una factura de venta.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
)

// Bill es la cabecera inmutable de una venta.
type Bill struct {
	ID              int64 // asignado por el almacenamiento
	MerchantID      string
	BillNumber      string
	CustomerName    string
	CustomerPhone   string
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalGST        decimal.Decimal
	FinalAmount     decimal.Decimal
	PaymentStatus   string
	CreatedAt       time.Time
	Items           []BillItem
}

// BillItem es la foto de un item al momento de facturar.
type BillItem struct {
	ItemID    string
	ItemName  string
	Quantity  int
	UnitPrice decimal.Decimal
	GSTRate   decimal.Decimal
	ItemTotal decimal.Decimal // Quantity * UnitPrice
	GSTAmount decimal.Decimal
}

// BillSummary es la fila del listado de facturas.
type BillSummary struct {
	Bill
	ItemsSummary string // nombres de los items separados por coma
}
