package repository

import (
	"context"
	"time"

	"github.com/jhoicas/medstore-api/internal/domain/entity"
)

// Granularidad de la serie de ventas.
const (
	TrendDaily   = "day"
	TrendMonthly = "month"
)

// ReportRepository consultas de solo lectura para reportes.
// from cero significa sin límite inferior.
type ReportRepository interface {
	SalesSummary(ctx context.Context, merchantID string, from time.Time) (entity.SalesSummary, error)
	TopItems(ctx context.Context, merchantID string, from time.Time, limit int) ([]entity.TopItem, error)
	SalesTrend(ctx context.Context, merchantID string, from time.Time, granularity string) ([]entity.TrendPoint, error)
	StockByCategory(ctx context.Context, merchantID string) ([]entity.CategoryStock, error)
	// LowStock items con 0 < quantity < threshold.
	LowStock(ctx context.Context, merchantID string, threshold int) ([]*entity.InventoryItem, error)
	OutOfStock(ctx context.Context, merchantID string) ([]*entity.InventoryItem, error)
	SupplierBalances(ctx context.Context, merchantID string) ([]entity.SupplierBalance, error)
	// OverduePurchases compras con due_date < asOf y saldo > 0.
	OverduePurchases(ctx context.Context, merchantID string, asOf time.Time) ([]entity.OverduePurchase, error)
}
