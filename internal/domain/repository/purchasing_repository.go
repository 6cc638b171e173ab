package repository

import (
	"context"

	"github.com/jhoicas/medstore-api/internal/domain/entity"
)

// SupplierRepository puerto de proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, merchantID, id string) (*entity.Supplier, error)
	ListByMerchant(ctx context.Context, merchantID string) ([]*entity.Supplier, error)
}

// PurchaseRepository puerto de compras a proveedores.
type PurchaseRepository interface {
	// Create inserta la compra y sus líneas.
	Create(ctx context.Context, p *entity.Purchase) error
	// GetForUpdate bloquea la compra para imputar pagos.
	GetForUpdate(ctx context.Context, merchantID, id string) (*entity.Purchase, error)
	// UpdatePayment persiste PaidAmount, BalanceAmount y PaymentStatus.
	UpdatePayment(ctx context.Context, p *entity.Purchase) error
	ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*entity.Purchase, error)
}

// SupplierPaymentRepository puerto de pagos a proveedores.
type SupplierPaymentRepository interface {
	Create(ctx context.Context, p *entity.SupplierPayment) error
	ListByMerchant(ctx context.Context, merchantID string, limit int) ([]*entity.SupplierPayment, error)
}
