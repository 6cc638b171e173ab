package repository

import (
	"context"

	"github.com/jhoicas/medstore-api/internal/domain/entity"
)

// StockMovementRepository registro append-only de movimientos de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	ListByItem(ctx context.Context, merchantID, itemID string, limit, offset int) ([]*entity.StockMovement, error)
}
