package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrItemNotFound       = errors.New("item not found")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// StockError identifica el item que hizo fallar una operación de stock.
// Unwrap devuelve ErrItemNotFound o ErrInsufficientStock.
type StockError struct {
	Item string // item id si no existe, nombre del item si no alcanza el stock
	Err  error
}

func (e *StockError) Error() string {
	if errors.Is(e.Err, ErrInsufficientStock) {
		return fmt.Sprintf("Insufficient stock for %s", e.Item)
	}
	return fmt.Sprintf("Item %s not found", e.Item)
}

func (e *StockError) Unwrap() error { return e.Err }

// NewItemNotFound construye el error para un item inexistente en el inventario del comercio.
func NewItemNotFound(itemID string) error {
	return &StockError{Item: itemID, Err: ErrItemNotFound}
}

// NewInsufficientStock construye el error para un item sin stock suficiente.
func NewInsufficientStock(itemName string) error {
	return &StockError{Item: itemName, Err: ErrInsufficientStock}
}

// Invalid envuelve ErrInvalidInput con un mensaje legible por el cliente.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
