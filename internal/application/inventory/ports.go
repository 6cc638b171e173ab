package inventory

import (
	"context"
	"io"

	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		inventoryRepo repository.InventoryRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// SheetReader lee la primera hoja de un libro de cálculo como filas de celdas.
// La primera fila es la cabecera.
type SheetReader interface {
	ReadRows(r io.Reader) ([][]string, error)
}
