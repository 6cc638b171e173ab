package entity

import "github.com/shopspring/decimal"

// Modelos de lectura para reportes. No se persisten.

// SalesSummary agregado de ventas de un periodo.
type SalesSummary struct {
	TotalBills    int
	TotalSales    decimal.Decimal // suma de subtotales
	TotalGST      decimal.Decimal
	TotalDiscount decimal.Decimal
	TotalRevenue  decimal.Decimal // suma de final_amount
	AvgBillValue  decimal.Decimal
}

// TopItem item más vendido por cantidad.
type TopItem struct {
	ItemName     string
	QuantitySold int
	Revenue      decimal.Decimal
}

// TrendPoint punto de la serie temporal de ventas. Period es YYYY-MM-DD o YYYY-MM.
type TrendPoint struct {
	Period  string
	Bills   int
	Revenue decimal.Decimal
}

// CategoryStock existencias agrupadas por categoría.
type CategoryStock struct {
	Category      string
	ItemCount     int
	TotalQuantity int
	TotalValue    decimal.Decimal
}

// SupplierBalance resumen de compras y saldo por proveedor.
type SupplierBalance struct {
	SupplierID     string
	AgencyName     string
	TotalPurchases int
	TotalAmount    decimal.Decimal
	PaidAmount     decimal.Decimal
	BalanceAmount  decimal.Decimal
}

// OverduePurchase compra vencida con saldo pendiente.
type OverduePurchase struct {
	Purchase
	DaysOverdue int
}
