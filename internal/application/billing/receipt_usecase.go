package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

// ReceiptUseCase arma el recibo PDF de una factura ya emitida.
type ReceiptUseCase struct {
	billRepo     repository.BillRepository
	merchantRepo repository.MerchantRepository
	generator    ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(billRepo repository.BillRepository, merchantRepo repository.MerchantRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{billRepo: billRepo, merchantRepo: merchantRepo, generator: generator}
}

// DownloadReceipt devuelve los bytes del PDF y el nombre de archivo sugerido.
// domain.ErrNotFound si la factura no existe o es de otro comercio.
func (uc *ReceiptUseCase) DownloadReceipt(ctx context.Context, merchantID string, billID int64) ([]byte, string, error) {
	bill, err := uc.billRepo.GetByID(ctx, merchantID, billID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: get bill: %w", err)
	}
	if bill == nil {
		return nil, "", domain.ErrNotFound
	}

	merchant, err := uc.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: get merchant: %w", err)
	}
	if merchant == nil {
		return nil, "", domain.ErrNotFound
	}

	pdf, err := uc.generator.GenerateReceipt(ctx, bill, merchant)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generate: %w", err)
	}
	return pdf, fmt.Sprintf("bill_%s.pdf", bill.BillNumber), nil
}
