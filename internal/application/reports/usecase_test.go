package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstore-api/internal/application/billing"
	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/application/purchasing"
	"github.com/jhoicas/medstore-api/internal/application/reports"
	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/infrastructure/memory"
)

const merchant = "MERCH1"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedItem(t *testing.T, store *memory.Store, id, name, category string, qty int, price string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, store.Inventory().Create(context.Background(), &entity.InventoryItem{
		MerchantID: merchant, ItemID: id, Name: name, Category: category,
		Quantity: qty, Price: dec(price), GSTRate: dec("18"), CreatedAt: now, UpdatedAt: now,
	}))
}

func newReports(store *memory.Store) *reports.ReportsUseCase {
	return reports.NewReportsUseCase(store.Reports(), store.Payments(), 10)
}

func TestSalesReport(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, "A", "Amoxicillin", entity.CategoryTablets, 100, "100")
	seedItem(t, store, "B", "Cough Syrup", entity.CategorySyrups, 50, "50")

	bills := billing.NewCreateBillUseCase(store, store.Bills(), zerolog.Nop())
	ctx := context.Background()
	_, err := bills.CreateBill(ctx, merchant, dto.CreateBillRequest{Items: []dto.BillLineRequest{{ItemID: "A", Quantity: 2}}})
	require.NoError(t, err)
	_, err = bills.CreateBill(ctx, merchant, dto.CreateBillRequest{
		Items:    []dto.BillLineRequest{{ItemID: "B", Quantity: 1}, {ItemID: "A", Quantity: 1}},
		Discount: dec("10"),
	})
	require.NoError(t, err)

	uc := newReports(store)

	rep, err := uc.SalesReport(ctx, merchant, reports.PeriodLifetime)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Summary.TotalBills)
	// 236 + (150 + 27 - 15)
	assert.True(t, rep.Summary.TotalRevenue.Equal(dec("398")), rep.Summary.TotalRevenue.String())
	assert.True(t, rep.Summary.TotalDiscount.Equal(dec("15")))
	assert.True(t, rep.Summary.AvgBillValue.Equal(dec("199")))
	require.NotEmpty(t, rep.TopItems)
	assert.Equal(t, "Amoxicillin", rep.TopItems[0].ItemName)
	assert.Equal(t, 3, rep.TopItems[0].QuantitySold)
	require.Len(t, rep.Trend, 1)
	assert.Equal(t, time.Now().Format("2006-01"), rep.Trend[0].Period)

	daily, err := uc.SalesReport(ctx, merchant, reports.PeriodDaily)
	require.NoError(t, err)
	assert.Equal(t, 2, daily.Summary.TotalBills)
	assert.Empty(t, daily.Trend)

	other, err := uc.SalesReport(ctx, "MERCH2", "")
	require.NoError(t, err)
	assert.Equal(t, reports.PeriodMonthly, other.Period)
	assert.Zero(t, other.Summary.TotalBills)

	_, err = uc.SalesReport(ctx, merchant, "hourly")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInventoryReport(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, "A", "Amoxicillin", entity.CategoryTablets, 20, "10")
	seedItem(t, store, "B", "Cough Syrup", entity.CategorySyrups, 5, "50")
	seedItem(t, store, "C", "Insulin", entity.CategoryInjections, 0, "300")

	rep, err := newReports(store).InventoryReport(context.Background(), merchant)
	require.NoError(t, err)

	assert.Len(t, rep.ByCategory, 3)
	assert.Equal(t, 3, rep.Totals.TotalItems)
	assert.Equal(t, 25, rep.Totals.TotalQuantity)
	assert.True(t, rep.Totals.TotalValue.Equal(dec("450")))
	require.Len(t, rep.LowStock, 1)
	assert.Equal(t, "B", rep.LowStock[0].ItemID)
	require.Len(t, rep.OutOfStock, 1)
	assert.Equal(t, "C", rep.OutOfStock[0].ItemID)
	assert.Equal(t, 1, rep.Totals.LowStockCount)
	assert.Equal(t, 1, rep.Totals.OutOfStockCount)
}

func TestFinancialReport(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	pu := purchasing.NewPurchasingUseCase(store, store.Suppliers(), store.Purchases(), store.Payments(), 18, zerolog.Nop())

	s, err := pu.CreateSupplier(ctx, merchant, dto.CreateSupplierRequest{AgencyName: "Apex Pharma"})
	require.NoError(t, err)
	p, err := pu.CreatePurchase(ctx, merchant, dto.CreatePurchaseRequest{
		SupplierID: s.ID, PurchaseDate: "2025-01-01", DueDate: "2025-01-31", InvoiceNumber: "AP-1",
		Items: []dto.PurchaseItemRequest{{ItemName: "Gloves", Quantity: 100, UnitPrice: dec("1")}},
	})
	require.NoError(t, err)
	_, err = pu.CreatePayment(ctx, merchant, dto.CreatePaymentRequest{
		SupplierID: s.ID, PurchaseID: p.ID, Amount: dec("18"), PaymentDate: "2025-02-01", PaymentMethod: entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	rep, err := newReports(store).FinancialReport(ctx, merchant)
	require.NoError(t, err)

	require.Len(t, rep.Suppliers, 1)
	assert.True(t, rep.Suppliers[0].BalanceAmount.Equal(dec("100")))
	require.Len(t, rep.Overdue, 1)
	assert.Equal(t, "AP-1", rep.Overdue[0].InvoiceNumber)
	assert.Equal(t, "2025-01-31", rep.Overdue[0].DueDate)
	assert.Positive(t, rep.Overdue[0].DaysOverdue)
	require.Len(t, rep.RecentPayments, 1)
	assert.True(t, rep.Totals.TotalPurchases.Equal(dec("118")))
	assert.True(t, rep.Totals.TotalPaid.Equal(dec("18")))
	assert.True(t, rep.Totals.TotalOutstanding.Equal(dec("100")))
	assert.True(t, rep.Totals.OverdueAmount.Equal(dec("100")))
}
