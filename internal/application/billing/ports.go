package billing

import (
	"context"

	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

// BillingTxRunner ejecuta fn dentro de una única transacción con repos de inventario,
// movimientos y facturas atados a ella. Si fn retorna error se hace rollback de todo.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		inventoryRepo repository.InventoryRepository,
		movementRepo repository.StockMovementRepository,
		billRepo repository.BillRepository,
	) error) error
}

// ReceiptGenerator genera el recibo imprimible de una factura.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, bill *entity.Bill, merchant *entity.Merchant) ([]byte, error)
}
