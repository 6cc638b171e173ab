package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBillRequest body para POST /api/bills.
type CreateBillRequest struct {
	Items         []BillLineRequest `json:"items" validate:"required,min=1,dive"`
	Discount      decimal.Decimal   `json:"discount"`
	CustomerName  string            `json:"customerName,omitempty" validate:"max=255"`
	CustomerPhone string            `json:"customerPhone,omitempty" validate:"omitempty,phone"`
	PaymentStatus string            `json:"paymentStatus,omitempty" validate:"omitempty,oneof=paid pending"`
}

// BillLineRequest línea del carrito.
type BillLineRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"gt=0"`
}

// BillResponse factura completa.
type BillResponse struct {
	ID              int64              `json:"id"`
	BillNumber      string             `json:"billNumber"`
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone,omitempty"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	DiscountPercent decimal.Decimal    `json:"discountPercent"`
	DiscountAmount  decimal.Decimal    `json:"discountAmount"`
	TotalGST        decimal.Decimal    `json:"totalGst"`
	FinalAmount     decimal.Decimal    `json:"finalAmount"`
	PaymentStatus   string             `json:"paymentStatus"`
	CreatedAt       time.Time          `json:"createdAt"`
	Items           []BillItemResponse `json:"items"`
}

// BillItemResponse línea de factura.
type BillItemResponse struct {
	ItemID    string          `json:"itemId"`
	ItemName  string          `json:"itemName"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	GSTRate   decimal.Decimal `json:"gstRate"`
	ItemTotal decimal.Decimal `json:"itemTotal"`
	GSTAmount decimal.Decimal `json:"gstAmount"`
}

// BillSummaryResponse fila del listado GET /api/bills.
type BillSummaryResponse struct {
	ID            int64           `json:"id"`
	BillNumber    string          `json:"billNumber"`
	CustomerName  string          `json:"customerName"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalGST      decimal.Decimal `json:"totalGst"`
	FinalAmount   decimal.Decimal `json:"finalAmount"`
	PaymentStatus string          `json:"paymentStatus"`
	CreatedAt     time.Time       `json:"createdAt"`
	ItemsSummary  string          `json:"itemsSummary"`
}
