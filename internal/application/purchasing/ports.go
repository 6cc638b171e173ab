package purchasing

import (
	"context"

	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con los repos de compras, pagos e inventario.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		inventoryRepo repository.InventoryRepository,
		movementRepo repository.StockMovementRepository,
		purchaseRepo repository.PurchaseRepository,
		paymentRepo repository.SupplierPaymentRepository,
	) error) error
}
