// Package excel lee libros .xlsx para la carga masiva de inventario.
package excel

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/medstore-api/internal/application/inventory"
)

var _ inventory.SheetReader = (*Reader)(nil)

// ErrNoSheet el libro no tiene hojas.
var ErrNoSheet = errors.New("workbook has no sheets")

// Reader implementa inventory.SheetReader con excelize.
type Reader struct{}

// NewReader construye el lector.
func NewReader() *Reader { return &Reader{} }

// ReadRows devuelve las filas de la primera hoja. excelize omite las celdas vacías finales,
// por lo que las filas pueden tener longitudes distintas.
func (Reader) ReadRows(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}
