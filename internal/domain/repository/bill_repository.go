package repository

import (
	"context"

	"github.com/jhoicas/medstore-api/internal/domain/entity"
)

// BillRepository persiste facturas de venta con sus líneas.
type BillRepository interface {
	// Create inserta cabecera y líneas y asigna bill.ID. ErrDuplicate si el número ya existe.
	Create(ctx context.Context, bill *entity.Bill) error
	// GetByID devuelve la factura con sus líneas o (nil, nil).
	GetByID(ctx context.Context, merchantID string, id int64) (*entity.Bill, error)
	// ListByMerchant devuelve las más recientes primero.
	ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*entity.BillSummary, error)
}
