package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medstore-api/internal/domain/entity"
)

// InventoryRepository puerto de inventario por comercio. Los métodos que devuelven un item
// retornan (nil, nil) si no existe.
type InventoryRepository interface {
	GetByID(ctx context.Context, merchantID, itemID string) (*entity.InventoryItem, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, merchantID, itemID string) (*entity.InventoryItem, error)
	// GetByNameForUpdate busca por nombre exacto (sin distinguir mayúsculas) y bloquea la fila.
	GetByNameForUpdate(ctx context.Context, merchantID, name string) (*entity.InventoryItem, error)
	Create(ctx context.Context, item *entity.InventoryItem) error
	// AddStock suma qty de forma atómica.
	AddStock(ctx context.Context, merchantID, itemID string, qty int) error
	// UpdatePricing actualiza precio y GST.
	UpdatePricing(ctx context.Context, merchantID, itemID string, price, gstRate decimal.Decimal) error
	// DecrementIfAvailable resta qty sólo si quantity >= qty. Devuelve false si no alcanzó.
	DecrementIfAvailable(ctx context.Context, merchantID, itemID string, qty int) (bool, error)
	ListByMerchant(ctx context.Context, merchantID string) ([]*entity.InventoryItem, error)
}
