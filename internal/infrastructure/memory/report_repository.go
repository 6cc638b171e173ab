package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados calculados recorriendo el estado.
type ReportRepo struct{ v view }

func (r *ReportRepo) billsSince(merchantID string, from time.Time) []*entity.Bill {
	out := make([]*entity.Bill, 0)
	for _, b := range r.v.state().bills {
		if b.MerchantID == merchantID && !b.CreatedAt.Before(from) {
			out = append(out, b)
		}
	}
	return out
}

func (r *ReportRepo) SalesSummary(_ context.Context, merchantID string, from time.Time) (entity.SalesSummary, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	var s entity.SalesSummary
	for _, b := range r.billsSince(merchantID, from) {
		s.TotalBills++
		s.TotalSales = s.TotalSales.Add(b.Subtotal)
		s.TotalGST = s.TotalGST.Add(b.TotalGST)
		s.TotalDiscount = s.TotalDiscount.Add(b.DiscountAmount)
		s.TotalRevenue = s.TotalRevenue.Add(b.FinalAmount)
	}
	if s.TotalBills > 0 {
		s.AvgBillValue = s.TotalRevenue.Div(decimal.NewFromInt(int64(s.TotalBills))).Round(2)
	}
	return s, nil
}

func (r *ReportRepo) TopItems(_ context.Context, merchantID string, from time.Time, limit int) ([]entity.TopItem, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	byName := make(map[string]*entity.TopItem)
	for _, b := range r.billsSince(merchantID, from) {
		for _, it := range b.Items {
			t, ok := byName[it.ItemName]
			if !ok {
				t = &entity.TopItem{ItemName: it.ItemName}
				byName[it.ItemName] = t
			}
			t.QuantitySold += it.Quantity
			t.Revenue = t.Revenue.Add(it.ItemTotal).Add(it.GSTAmount)
		}
	}
	out := make([]entity.TopItem, 0, len(byName))
	for _, t := range byName {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuantitySold != out[j].QuantitySold {
			return out[i].QuantitySold > out[j].QuantitySold
		}
		return out[i].ItemName < out[j].ItemName
	})
	return paginate(out, limit, 0), nil
}

func (r *ReportRepo) SalesTrend(_ context.Context, merchantID string, from time.Time, granularity string) ([]entity.TrendPoint, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	layout := "2006-01-02"
	if granularity == repository.TrendMonthly {
		layout = "2006-01"
	}
	byPeriod := make(map[string]*entity.TrendPoint)
	for _, b := range r.billsSince(merchantID, from) {
		key := b.CreatedAt.Format(layout)
		p, ok := byPeriod[key]
		if !ok {
			p = &entity.TrendPoint{Period: key}
			byPeriod[key] = p
		}
		p.Bills++
		p.Revenue = p.Revenue.Add(b.FinalAmount)
	}
	out := make([]entity.TrendPoint, 0, len(byPeriod))
	for _, p := range byPeriod {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

func (r *ReportRepo) StockByCategory(_ context.Context, merchantID string) ([]entity.CategoryStock, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	byCat := make(map[string]*entity.CategoryStock)
	for _, it := range r.v.state().itemsOf(merchantID) {
		c, ok := byCat[it.Category]
		if !ok {
			c = &entity.CategoryStock{Category: it.Category}
			byCat[it.Category] = c
		}
		c.ItemCount++
		c.TotalQuantity += it.Quantity
		c.TotalValue = c.TotalValue.Add(it.StockValue())
	}
	out := make([]entity.CategoryStock, 0, len(byCat))
	for _, c := range byCat {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *ReportRepo) LowStock(_ context.Context, merchantID string, threshold int) ([]*entity.InventoryItem, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	out := make([]*entity.InventoryItem, 0)
	for _, it := range r.v.state().itemsOf(merchantID) {
		if it.Quantity > 0 && it.Quantity < threshold {
			out = append(out, it)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

func (r *ReportRepo) OutOfStock(_ context.Context, merchantID string) ([]*entity.InventoryItem, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	out := make([]*entity.InventoryItem, 0)
	for _, it := range r.v.state().itemsOf(merchantID) {
		if it.Quantity == 0 {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *ReportRepo) SupplierBalances(_ context.Context, merchantID string) ([]entity.SupplierBalance, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	st := r.v.state()
	bySupplier := make(map[string]*entity.SupplierBalance)
	for _, s := range st.suppliers {
		if s.MerchantID == merchantID && s.IsActive {
			bySupplier[s.ID] = &entity.SupplierBalance{SupplierID: s.ID, AgencyName: s.AgencyName}
		}
	}
	for _, p := range st.purchases {
		b, ok := bySupplier[p.SupplierID]
		if !ok || p.MerchantID != merchantID {
			continue
		}
		b.TotalPurchases++
		b.TotalAmount = b.TotalAmount.Add(p.TotalAmount)
		b.PaidAmount = b.PaidAmount.Add(p.PaidAmount)
		b.BalanceAmount = b.BalanceAmount.Add(p.BalanceAmount)
	}
	out := make([]entity.SupplierBalance, 0, len(bySupplier))
	for _, b := range bySupplier {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].BalanceAmount.Equal(out[j].BalanceAmount) {
			return out[i].BalanceAmount.GreaterThan(out[j].BalanceAmount)
		}
		return out[i].AgencyName < out[j].AgencyName
	})
	return out, nil
}

func (r *ReportRepo) OverduePurchases(_ context.Context, merchantID string, asOf time.Time) ([]entity.OverduePurchase, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	out := make([]entity.OverduePurchase, 0)
	for _, p := range r.v.state().purchasesOf(merchantID) {
		if p.DueDate == nil || !p.DueDate.Before(asOf) || !p.BalanceAmount.IsPositive() {
			continue
		}
		days := int(asOf.Sub(*p.DueDate).Hours() / 24)
		out = append(out, entity.OverduePurchase{Purchase: *p, DaysOverdue: days})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(*out[j].DueDate) })
	return out, nil
}
