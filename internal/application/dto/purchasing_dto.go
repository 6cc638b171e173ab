package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	AgencyName    string `json:"agencyName" validate:"required,max=255"`
	ContactPerson string `json:"contactPerson,omitempty" validate:"max=255"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,phone"`
	Email         string `json:"email,omitempty" validate:"omitempty,email"`
	Address       string `json:"address,omitempty"`
	GSTNumber     string `json:"gstNumber,omitempty" validate:"omitempty,alphanum,max=15"`
	PaymentTerms  string `json:"paymentTerms,omitempty" validate:"max=100"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID            string    `json:"id"`
	AgencyName    string    `json:"agencyName"`
	ContactPerson string    `json:"contactPerson,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address,omitempty"`
	GSTNumber     string    `json:"gstNumber,omitempty"`
	PaymentTerms  string    `json:"paymentTerms"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreatePurchaseRequest body para POST /api/purchases. Fechas YYYY-MM-DD.
type CreatePurchaseRequest struct {
	SupplierID    string                `json:"supplierId" validate:"required"`
	InvoiceNumber string                `json:"invoiceNumber,omitempty" validate:"max=100"`
	PurchaseDate  string                `json:"purchaseDate" validate:"required,datetime=2006-01-02"`
	DueDate       string                `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Items         []PurchaseItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes         string                `json:"notes,omitempty"`
}

// PurchaseItemRequest línea de compra. ItemID opcional: si existe en inventario, entra al stock.
type PurchaseItemRequest struct {
	ItemName    string          `json:"itemName" validate:"required,max=255"`
	ItemID      string          `json:"itemId,omitempty"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	BatchNumber string          `json:"batchNumber,omitempty" validate:"max=100"`
	ExpiryDate  string          `json:"expiryDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// PurchaseResponse compra en respuestas.
type PurchaseResponse struct {
	ID            string                 `json:"id"`
	SupplierID    string                 `json:"supplierId"`
	SupplierName  string                 `json:"supplierName,omitempty"`
	InvoiceNumber string                 `json:"invoiceNumber,omitempty"`
	PurchaseDate  string                 `json:"purchaseDate"`
	DueDate       string                 `json:"dueDate,omitempty"`
	Subtotal      decimal.Decimal        `json:"subtotal"`
	GSTAmount     decimal.Decimal        `json:"gstAmount"`
	TotalAmount   decimal.Decimal        `json:"totalAmount"`
	PaidAmount    decimal.Decimal        `json:"paidAmount"`
	BalanceAmount decimal.Decimal        `json:"balanceAmount"`
	PaymentStatus string                 `json:"paymentStatus"`
	Notes         string                 `json:"notes,omitempty"`
	Items         []PurchaseItemResponse `json:"items,omitempty"`
}

// PurchaseItemResponse línea de compra en respuestas.
type PurchaseItemResponse struct {
	ItemID     string          `json:"itemId,omitempty"`
	ItemName   string          `json:"itemName"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// CreatePaymentRequest body para POST /api/payments.
type CreatePaymentRequest struct {
	SupplierID      string          `json:"supplierId" validate:"required"`
	PurchaseID      string          `json:"purchaseId,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     string          `json:"paymentDate" validate:"required,datetime=2006-01-02"`
	PaymentMethod   string          `json:"paymentMethod" validate:"required,oneof=cash bank_transfer cheque upi card"`
	ReferenceNumber string          `json:"referenceNumber,omitempty" validate:"max=100"`
	Notes           string          `json:"notes,omitempty"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID              string          `json:"id"`
	SupplierID      string          `json:"supplierId"`
	SupplierName    string          `json:"supplierName,omitempty"`
	PurchaseID      string          `json:"purchaseId,omitempty"`
	InvoiceNumber   string          `json:"invoiceNumber,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     string          `json:"paymentDate"`
	PaymentMethod   string          `json:"paymentMethod"`
	ReferenceNumber string          `json:"referenceNumber,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}
