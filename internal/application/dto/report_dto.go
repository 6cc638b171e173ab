package dto

import "github.com/shopspring/decimal"

// SalesReportResponse GET /api/reports/sales.
type SalesReportResponse struct {
	Period   string          `json:"period"`
	Summary  SalesSummaryDTO `json:"summary"`
	TopItems []TopItemDTO    `json:"topItems"`
	Trend    []TrendPointDTO `json:"trend"`
}

// SalesSummaryDTO totales de ventas.
type SalesSummaryDTO struct {
	TotalBills    int             `json:"totalBills"`
	TotalSales    decimal.Decimal `json:"totalSales"`
	TotalGST      decimal.Decimal `json:"totalGst"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	AvgBillValue  decimal.Decimal `json:"avgBillValue"`
}

// TopItemDTO item más vendido.
type TopItemDTO struct {
	ItemName     string          `json:"itemName"`
	QuantitySold int             `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// TrendPointDTO punto de la serie de ventas.
type TrendPointDTO struct {
	Period  string          `json:"period"`
	Bills   int             `json:"bills"`
	Revenue decimal.Decimal `json:"revenue"`
}

// InventoryReportResponse GET /api/reports/inventory.
type InventoryReportResponse struct {
	ByCategory []CategoryStockDTO      `json:"byCategory"`
	LowStock   []InventoryItemResponse `json:"lowStock"`
	OutOfStock []InventoryItemResponse `json:"outOfStock"`
	Totals     InventoryTotalsDTO      `json:"totals"`
}

// CategoryStockDTO existencias por categoría.
type CategoryStockDTO struct {
	Category      string          `json:"category"`
	ItemCount     int             `json:"itemCount"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalValue    decimal.Decimal `json:"totalValue"`
}

// InventoryTotalsDTO totales de inventario.
type InventoryTotalsDTO struct {
	TotalItems      int             `json:"totalItems"`
	TotalQuantity   int             `json:"totalQuantity"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	LowStockCount   int             `json:"lowStockCount"`
	OutOfStockCount int             `json:"outOfStockCount"`
}

// FinancialReportResponse GET /api/reports/financial.
type FinancialReportResponse struct {
	Suppliers      []SupplierBalanceDTO `json:"suppliers"`
	Overdue        []OverduePurchaseDTO `json:"overdue"`
	RecentPayments []PaymentResponse    `json:"recentPayments"`
	Totals         FinancialTotalsDTO   `json:"totals"`
}

// SupplierBalanceDTO saldo por proveedor.
type SupplierBalanceDTO struct {
	SupplierID     string          `json:"supplierId"`
	AgencyName     string          `json:"agencyName"`
	TotalPurchases int             `json:"totalPurchases"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	BalanceAmount  decimal.Decimal `json:"balanceAmount"`
}

// OverduePurchaseDTO compra vencida.
type OverduePurchaseDTO struct {
	PurchaseID    string          `json:"purchaseId"`
	SupplierName  string          `json:"supplierName"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"`
	DueDate       string          `json:"dueDate"`
	BalanceAmount decimal.Decimal `json:"balanceAmount"`
	DaysOverdue   int             `json:"daysOverdue"`
}

// FinancialTotalsDTO totales de cuentas por pagar.
type FinancialTotalsDTO struct {
	TotalPurchases   decimal.Decimal `json:"totalPurchases"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
	OverdueAmount    decimal.Decimal `json:"overdueAmount"`
}
