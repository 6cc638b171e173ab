package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPaymentTerms términos de pago si el proveedor no define otros.
const DefaultPaymentTerms = "Net 30"

// Supplier proveedor (droguería/agencia) de un comercio.
type Supplier struct {
	ID            string
	MerchantID    string
	AgencyName    string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
	GSTNumber     string
	PaymentTerms  string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Estados de una compra a proveedor.
const (
	PurchaseStatusPending = "pending"
	PurchaseStatusPartial = "partial"
	PurchaseStatusPaid    = "paid"
	PurchaseStatusOverdue = "overdue"
)

// Purchase compra a proveedor. BalanceAmount = TotalAmount - PaidAmount.
type Purchase struct {
	ID            string
	MerchantID    string
	SupplierID    string
	SupplierName  string // solo lectura, para listados
	InvoiceNumber string
	PurchaseDate  time.Time
	DueDate       *time.Time
	Subtotal      decimal.Decimal
	GSTAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	BalanceAmount decimal.Decimal
	PaymentStatus string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []PurchaseItem
}

// PurchaseItem línea de una compra. ItemID vacío = item no vinculado al inventario.
type PurchaseItem struct {
	ItemID      string
	ItemName    string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	BatchNumber string
	ExpiryDate  *time.Time
}

// PaymentStatusFor devuelve el estado según lo pagado frente al total.
func PaymentStatusFor(total, paid decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(total):
		return PurchaseStatusPaid
	case paid.IsPositive():
		return PurchaseStatusPartial
	default:
		return PurchaseStatusPending
	}
}

// Métodos de pago a proveedor.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCheque       = "cheque"
	PaymentMethodUPI          = "upi"
	PaymentMethodCard         = "card"
)

// SupplierPayment pago a proveedor, opcionalmente imputado a una compra.
type SupplierPayment struct {
	ID              string
	MerchantID      string
	SupplierID      string
	SupplierName    string
	PurchaseID      string
	InvoiceNumber   string
	Amount          decimal.Decimal
	PaymentDate     time.Time
	PaymentMethod   string
	ReferenceNumber string
	Notes           string
	CreatedAt       time.Time
}
