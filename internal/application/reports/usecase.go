// Package reports contiene los reportes de ventas, inventario y cuentas por pagar.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/application/inventory"
	"github.com/jhoicas/medstore-api/internal/application/purchasing"
	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

const (
	topItemsLimit       = 10
	recentPaymentsLimit = 10
)

// Periodos aceptados por SalesReport.
const (
	PeriodDaily    = "daily"
	PeriodWeekly   = "weekly"
	PeriodMonthly  = "monthly"
	PeriodYearly   = "yearly"
	PeriodLifetime = "lifetime"
)

// ReportsUseCase arma los reportes a partir de consultas read-only.
type ReportsUseCase struct {
	reportRepo        repository.ReportRepository
	paymentRepo       repository.SupplierPaymentRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewReportsUseCase construye el caso de uso.
func NewReportsUseCase(reportRepo repository.ReportRepository, paymentRepo repository.SupplierPaymentRepository, lowStockThreshold int) *ReportsUseCase {
	return &ReportsUseCase{
		reportRepo:        reportRepo,
		paymentRepo:       paymentRepo,
		lowStockThreshold: lowStockThreshold,
		now:               time.Now,
	}
}

// periodStart devuelve el inicio del periodo y la granularidad de la serie ("" = sin serie).
func periodStart(period string, now time.Time) (time.Time, string, error) {
	switch period {
	case PeriodDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), "", nil
	case PeriodWeekly:
		return now.AddDate(0, 0, -7), repository.TrendDaily, nil
	case PeriodMonthly:
		return now.AddDate(0, -1, 0), repository.TrendDaily, nil
	case PeriodYearly:
		return now.AddDate(-1, 0, 0), repository.TrendMonthly, nil
	case PeriodLifetime:
		return time.Time{}, repository.TrendMonthly, nil
	default:
		return time.Time{}, "", domain.Invalid("invalid period %q", period)
	}
}

// SalesReport resumen, top items y serie de ventas del periodo.
//
// Las tres consultas corren en paralelo:
//  1. SalesSummary(from)
//  2. TopItems(from, 10)
//  3. SalesTrend(from, granularidad), omitida en daily
func (uc *ReportsUseCase) SalesReport(ctx context.Context, merchantID, period string) (*dto.SalesReportResponse, error) {
	if period == "" {
		period = PeriodMonthly
	}
	from, granularity, err := periodStart(period, uc.now())
	if err != nil {
		return nil, err
	}

	type summaryResult struct {
		s   entity.SalesSummary
		err error
	}
	type topResult struct {
		items []entity.TopItem
		err   error
	}
	type trendResult struct {
		points []entity.TrendPoint
		err    error
	}

	summaryCh := make(chan summaryResult, 1)
	topCh := make(chan topResult, 1)
	trendCh := make(chan trendResult, 1)

	go func() {
		s, err := uc.reportRepo.SalesSummary(ctx, merchantID, from)
		summaryCh <- summaryResult{s, err}
	}()
	go func() {
		items, err := uc.reportRepo.TopItems(ctx, merchantID, from, topItemsLimit)
		topCh <- topResult{items, err}
	}()
	go func() {
		if granularity == "" {
			trendCh <- trendResult{}
			return
		}
		points, err := uc.reportRepo.SalesTrend(ctx, merchantID, from, granularity)
		trendCh <- trendResult{points, err}
	}()

	summary := <-summaryCh
	top := <-topCh
	trend := <-trendCh

	if summary.err != nil {
		return nil, fmt.Errorf("sales report: summary: %w", summary.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("sales report: top items: %w", top.err)
	}
	if trend.err != nil {
		return nil, fmt.Errorf("sales report: trend: %w", trend.err)
	}

	resp := &dto.SalesReportResponse{
		Period: period,
		Summary: dto.SalesSummaryDTO{
			TotalBills:    summary.s.TotalBills,
			TotalSales:    summary.s.TotalSales.Round(2),
			TotalGST:      summary.s.TotalGST.Round(2),
			TotalDiscount: summary.s.TotalDiscount.Round(2),
			TotalRevenue:  summary.s.TotalRevenue.Round(2),
			AvgBillValue:  summary.s.AvgBillValue.Round(2),
		},
		TopItems: make([]dto.TopItemDTO, 0, len(top.items)),
		Trend:    make([]dto.TrendPointDTO, 0, len(trend.points)),
	}
	for _, t := range top.items {
		resp.TopItems = append(resp.TopItems, dto.TopItemDTO{ItemName: t.ItemName, QuantitySold: t.QuantitySold, Revenue: t.Revenue.Round(2)})
	}
	for _, p := range trend.points {
		resp.Trend = append(resp.Trend, dto.TrendPointDTO{Period: p.Period, Bills: p.Bills, Revenue: p.Revenue.Round(2)})
	}
	return resp, nil
}

// InventoryReport existencias por categoría, stock bajo y agotados.
func (uc *ReportsUseCase) InventoryReport(ctx context.Context, merchantID string) (*dto.InventoryReportResponse, error) {
	type categoriesResult struct {
		rows []entity.CategoryStock
		err  error
	}
	type itemsResult struct {
		items []*entity.InventoryItem
		err   error
	}

	catCh := make(chan categoriesResult, 1)
	lowCh := make(chan itemsResult, 1)
	outCh := make(chan itemsResult, 1)

	go func() {
		rows, err := uc.reportRepo.StockByCategory(ctx, merchantID)
		catCh <- categoriesResult{rows, err}
	}()
	go func() {
		items, err := uc.reportRepo.LowStock(ctx, merchantID, uc.lowStockThreshold)
		lowCh <- itemsResult{items, err}
	}()
	go func() {
		items, err := uc.reportRepo.OutOfStock(ctx, merchantID)
		outCh <- itemsResult{items, err}
	}()

	cats := <-catCh
	low := <-lowCh
	out := <-outCh

	if cats.err != nil {
		return nil, fmt.Errorf("inventory report: categories: %w", cats.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("inventory report: low stock: %w", low.err)
	}
	if out.err != nil {
		return nil, fmt.Errorf("inventory report: out of stock: %w", out.err)
	}

	resp := &dto.InventoryReportResponse{
		ByCategory: make([]dto.CategoryStockDTO, 0, len(cats.rows)),
		LowStock:   toItems(low.items),
		OutOfStock: toItems(out.items),
	}
	for _, c := range cats.rows {
		resp.ByCategory = append(resp.ByCategory, dto.CategoryStockDTO{
			Category:      c.Category,
			ItemCount:     c.ItemCount,
			TotalQuantity: c.TotalQuantity,
			TotalValue:    c.TotalValue.Round(2),
		})
		resp.Totals.TotalItems += c.ItemCount
		resp.Totals.TotalQuantity += c.TotalQuantity
		resp.Totals.TotalValue = resp.Totals.TotalValue.Add(c.TotalValue)
	}
	resp.Totals.TotalValue = resp.Totals.TotalValue.Round(2)
	resp.Totals.LowStockCount = len(low.items)
	resp.Totals.OutOfStockCount = len(out.items)
	return resp, nil
}

// FinancialReport saldos por proveedor, compras vencidas y pagos recientes.
func (uc *ReportsUseCase) FinancialReport(ctx context.Context, merchantID string) (*dto.FinancialReportResponse, error) {
	now := uc.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	type balancesResult struct {
		rows []entity.SupplierBalance
		err  error
	}
	type overdueResult struct {
		rows []entity.OverduePurchase
		err  error
	}
	type paymentsResult struct {
		rows []*entity.SupplierPayment
		err  error
	}

	balCh := make(chan balancesResult, 1)
	overdueCh := make(chan overdueResult, 1)
	payCh := make(chan paymentsResult, 1)

	go func() {
		rows, err := uc.reportRepo.SupplierBalances(ctx, merchantID)
		balCh <- balancesResult{rows, err}
	}()
	go func() {
		rows, err := uc.reportRepo.OverduePurchases(ctx, merchantID, today)
		overdueCh <- overdueResult{rows, err}
	}()
	go func() {
		rows, err := uc.paymentRepo.ListByMerchant(ctx, merchantID, recentPaymentsLimit)
		payCh <- paymentsResult{rows, err}
	}()

	bal := <-balCh
	overdue := <-overdueCh
	pays := <-payCh

	if bal.err != nil {
		return nil, fmt.Errorf("financial report: balances: %w", bal.err)
	}
	if overdue.err != nil {
		return nil, fmt.Errorf("financial report: overdue: %w", overdue.err)
	}
	if pays.err != nil {
		return nil, fmt.Errorf("financial report: payments: %w", pays.err)
	}

	resp := &dto.FinancialReportResponse{
		Suppliers:      make([]dto.SupplierBalanceDTO, 0, len(bal.rows)),
		Overdue:        make([]dto.OverduePurchaseDTO, 0, len(overdue.rows)),
		RecentPayments: make([]dto.PaymentResponse, 0, len(pays.rows)),
	}
	var totals struct{ purchases, paid, outstanding, overdue decimal.Decimal }
	for _, b := range bal.rows {
		resp.Suppliers = append(resp.Suppliers, dto.SupplierBalanceDTO{
			SupplierID:     b.SupplierID,
			AgencyName:     b.AgencyName,
			TotalPurchases: b.TotalPurchases,
			TotalAmount:    b.TotalAmount.Round(2),
			PaidAmount:     b.PaidAmount.Round(2),
			BalanceAmount:  b.BalanceAmount.Round(2),
		})
		totals.purchases = totals.purchases.Add(b.TotalAmount)
		totals.paid = totals.paid.Add(b.PaidAmount)
		totals.outstanding = totals.outstanding.Add(b.BalanceAmount)
	}
	for _, o := range overdue.rows {
		row := dto.OverduePurchaseDTO{
			PurchaseID:    o.ID,
			SupplierName:  o.SupplierName,
			InvoiceNumber: o.InvoiceNumber,
			BalanceAmount: o.BalanceAmount.Round(2),
			DaysOverdue:   o.DaysOverdue,
		}
		if o.DueDate != nil {
			row.DueDate = o.DueDate.Format("2006-01-02")
		}
		resp.Overdue = append(resp.Overdue, row)
		totals.overdue = totals.overdue.Add(o.BalanceAmount)
	}
	for _, p := range pays.rows {
		resp.RecentPayments = append(resp.RecentPayments, purchasing.ToPaymentResponse(p))
	}
	resp.Totals = dto.FinancialTotalsDTO{
		TotalPurchases:   totals.purchases.Round(2),
		TotalPaid:        totals.paid.Round(2),
		TotalOutstanding: totals.outstanding.Round(2),
		OverdueAmount:    totals.overdue.Round(2),
	}
	return resp, nil
}

func toItems(items []*entity.InventoryItem) []dto.InventoryItemResponse {
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, inventory.ToItemResponse(it))
	}
	return out
}
