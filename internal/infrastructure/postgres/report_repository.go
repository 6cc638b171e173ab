package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura. Se usa siempre con el pool.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

func (r *ReportRepo) SalesSummary(ctx context.Context, merchantID string, from time.Time) (entity.SalesSummary, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(subtotal), 0),
			COALESCE(SUM(total_gst), 0),
			COALESCE(SUM(discount_amount), 0),
			COALESCE(SUM(final_amount), 0)
		FROM bills
		WHERE merchant_id = $1 AND created_at >= $2`
	var s entity.SalesSummary
	if err := r.q.QueryRow(ctx, query, merchantID, from).Scan(
		&s.TotalBills, &s.TotalSales, &s.TotalGST, &s.TotalDiscount, &s.TotalRevenue,
	); err != nil {
		return s, fmt.Errorf("sales summary: %w", err)
	}
	if s.TotalBills > 0 {
		s.AvgBillValue = s.TotalRevenue.Div(decimal.NewFromInt(int64(s.TotalBills))).Round(2)
	}
	return s, nil
}

func (r *ReportRepo) TopItems(ctx context.Context, merchantID string, from time.Time, limit int) ([]entity.TopItem, error) {
	query := `
		SELECT bi.item_name, SUM(bi.quantity), SUM(bi.item_total + bi.gst_amount)
		FROM bill_items bi
		JOIN bills b ON b.id = bi.bill_id
		WHERE b.merchant_id = $1 AND b.created_at >= $2
		GROUP BY bi.item_name
		ORDER BY 2 DESC, 1
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, merchantID, from, limit)
	if err != nil {
		return nil, fmt.Errorf("top items: %w", err)
	}
	defer rows.Close()
	out := make([]entity.TopItem, 0)
	for rows.Next() {
		var t entity.TopItem
		if err := rows.Scan(&t.ItemName, &t.QuantitySold, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *ReportRepo) SalesTrend(ctx context.Context, merchantID string, from time.Time, granularity string) ([]entity.TrendPoint, error) {
	format := "YYYY-MM-DD"
	if granularity == repository.TrendMonthly {
		format = "YYYY-MM"
	}
	query := `
		SELECT to_char(created_at, $3) AS period, COUNT(*), COALESCE(SUM(final_amount), 0)
		FROM bills
		WHERE merchant_id = $1 AND created_at >= $2
		GROUP BY period
		ORDER BY period`
	rows, err := r.q.Query(ctx, query, merchantID, from, format)
	if err != nil {
		return nil, fmt.Errorf("sales trend: %w", err)
	}
	defer rows.Close()
	out := make([]entity.TrendPoint, 0)
	for rows.Next() {
		var p entity.TrendPoint
		if err := rows.Scan(&p.Period, &p.Bills, &p.Revenue); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ReportRepo) StockByCategory(ctx context.Context, merchantID string) ([]entity.CategoryStock, error) {
	query := `
		SELECT category, COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * price), 0)
		FROM inventory
		WHERE merchant_id = $1
		GROUP BY category
		ORDER BY category`
	rows, err := r.q.Query(ctx, query, merchantID)
	if err != nil {
		return nil, fmt.Errorf("stock by category: %w", err)
	}
	defer rows.Close()
	out := make([]entity.CategoryStock, 0)
	for rows.Next() {
		var c entity.CategoryStock
		if err := rows.Scan(&c.Category, &c.ItemCount, &c.TotalQuantity, &c.TotalValue); err != nil {
			return nil, fmt.Errorf("scan category stock: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ReportRepo) LowStock(ctx context.Context, merchantID string, threshold int) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE merchant_id = $1 AND quantity > 0 AND quantity < $2
		ORDER BY quantity, item_name`
	return queryItems(ctx, r.q, query, merchantID, threshold)
}

func (r *ReportRepo) OutOfStock(ctx context.Context, merchantID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE merchant_id = $1 AND quantity = 0
		ORDER BY item_name`
	return queryItems(ctx, r.q, query, merchantID)
}

func (r *ReportRepo) SupplierBalances(ctx context.Context, merchantID string) ([]entity.SupplierBalance, error) {
	query := `
		SELECT s.id, s.agency_name, COUNT(p.id),
			COALESCE(SUM(p.total_amount), 0),
			COALESCE(SUM(p.paid_amount), 0),
			COALESCE(SUM(p.balance_amount), 0) AS balance
		FROM suppliers s
		LEFT JOIN purchases p ON p.supplier_id = s.id AND p.merchant_id = s.merchant_id
		WHERE s.merchant_id = $1 AND s.is_active
		GROUP BY s.id, s.agency_name
		ORDER BY balance DESC, s.agency_name`
	rows, err := r.q.Query(ctx, query, merchantID)
	if err != nil {
		return nil, fmt.Errorf("supplier balances: %w", err)
	}
	defer rows.Close()
	out := make([]entity.SupplierBalance, 0)
	for rows.Next() {
		var b entity.SupplierBalance
		if err := rows.Scan(&b.SupplierID, &b.AgencyName, &b.TotalPurchases, &b.TotalAmount, &b.PaidAmount, &b.BalanceAmount); err != nil {
			return nil, fmt.Errorf("scan supplier balance: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *ReportRepo) OverduePurchases(ctx context.Context, merchantID string, asOf time.Time) ([]entity.OverduePurchase, error) {
	query := purchaseSelect + `
		WHERE p.merchant_id = $1 AND p.due_date < $2 AND p.balance_amount > 0
		ORDER BY p.due_date`
	rows, err := r.q.Query(ctx, query, merchantID, asOf)
	if err != nil {
		return nil, fmt.Errorf("overdue purchases: %w", err)
	}
	defer rows.Close()
	out := make([]entity.OverduePurchase, 0)
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan overdue purchase: %w", err)
		}
		o := entity.OverduePurchase{Purchase: *p}
		if p.DueDate != nil {
			o.DaysOverdue = int(asOf.Sub(*p.DueDate).Hours() / 24)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
