package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

// Columnas reconocidas en la cabecera (sin distinguir mayúsculas).
const (
	colName         = "name"
	colCategory     = "category"
	colQuantity     = "quantity"
	colPrice        = "price"
	colGST          = "gst"
	colBatchNumber  = "batch_number"
	colExpiryDate   = "expiry_date"
	colManufacturer = "manufacturer"
)

// ImportExcel carga el inventario desde la primera hoja de un .xlsx. Todas las filas válidas se
// aplican en una sola transacción; las inválidas se reportan y se omiten.
func (uc *InventoryUseCase) ImportExcel(ctx context.Context, merchantID string, file io.Reader) (*dto.ImportResult, error) {
	rows, err := uc.sheets.ReadRows(file)
	if err != nil {
		return nil, domain.Invalid("could not read spreadsheet: %v", err)
	}
	if len(rows) < 2 {
		return nil, domain.Invalid("spreadsheet has no data rows")
	}

	header := indexHeader(rows[0])
	for _, required := range []string{colName, colQuantity, colPrice} {
		if _, ok := header[required]; !ok {
			return nil, domain.Invalid("missing column %q", required)
		}
	}

	result := &dto.ImportResult{Errors: []dto.ImportRowError{}}
	inputs := make([]itemInput, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blankRow(row) {
			continue
		}
		in, err := uc.parseRow(header, row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, dto.ImportRowError{Row: rowNum, Message: rowMessage(err)})
			continue
		}
		inputs = append(inputs, in)
	}

	err = uc.txRunner.Run(ctx, func(itemRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		imported, updated := 0, 0
		for _, in := range inputs {
			_, created, err := uc.upsertInTx(ctx, itemRepo, movRepo, merchantID, in, entity.ReferenceExcelUpload, "Excel upload")
			if err != nil {
				return err
			}
			if created {
				imported++
			} else {
				updated++
			}
		}
		result.Imported, result.Updated = imported, updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("merchant_id", merchantID).
		Int("imported", result.Imported).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Msg("excel inventory import")
	return result, nil
}

func (uc *InventoryUseCase) parseRow(header map[string]int, row []string) (itemInput, error) {
	cell := func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	qty, err := parseQuantity(cell(colQuantity))
	if err != nil {
		return itemInput{}, err
	}
	price, err := decimal.NewFromString(cell(colPrice))
	if err != nil {
		return itemInput{}, domain.Invalid("invalid price %q", cell(colPrice))
	}
	var gst *decimal.Decimal
	if raw := cell(colGST); raw != "" {
		g, err := decimal.NewFromString(strings.TrimSuffix(raw, "%"))
		if err != nil {
			return itemInput{}, domain.Invalid("invalid gst %q", raw)
		}
		gst = &g
	}

	in, err := uc.normalize(cell(colName), cell(colCategory), qty, price, gst, cell(colExpiryDate))
	if err != nil {
		return itemInput{}, err
	}
	in.BatchNumber = cell(colBatchNumber)
	in.Manufacturer = cell(colManufacturer)
	return in, nil
}

// parseQuantity acepta enteros escritos como "12" o "12.0".
func parseQuantity(raw string) (int, error) {
	if raw == "" {
		return 0, domain.Invalid("quantity is required")
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || !d.IsInteger() {
		return 0, domain.Invalid("invalid quantity %q", raw)
	}
	return int(d.IntPart()), nil
}

func indexHeader(row []string) map[string]int {
	h := make(map[string]int, len(row))
	for i, c := range row {
		key := strings.ToLower(strings.TrimSpace(c))
		key = strings.ReplaceAll(key, " ", "_")
		if key == "gst_rate" {
			key = colGST
		}
		if _, dup := h[key]; !dup && key != "" {
			h[key] = i
		}
	}
	return h
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// rowMessage quita el prefijo del error de dominio para el reporte por fila.
func rowMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) {
		return strings.TrimPrefix(err.Error(), domain.ErrInvalidInput.Error()+": ")
	}
	return fmt.Sprint(err)
}
