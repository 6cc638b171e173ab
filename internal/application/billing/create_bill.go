package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/domain"
	domainbilling "github.com/jhoicas/medstore-api/internal/domain/billing"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

const (
	defaultBillPageSize = 50
	maxBillPageSize     = 200
)

var maxDiscount = decimal.NewFromInt(100)

// CreateBillUseCase genera facturas de venta: valida el carrito, descuenta stock, registra
// movimientos y guarda factura y líneas en una sola transacción.
type CreateBillUseCase struct {
	txRunner BillingTxRunner
	billRepo repository.BillRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewCreateBillUseCase construye el caso de uso.
func NewCreateBillUseCase(txRunner BillingTxRunner, billRepo repository.BillRepository, log zerolog.Logger) *CreateBillUseCase {
	return &CreateBillUseCase{
		txRunner: txRunner,
		billRepo: billRepo,
		log:      log,
		now:      time.Now,
	}
}

// CreateBill factura el carrito para el comercio.
//
// Errores:
//   - domain.ErrInvalidInput      carrito vacío, cantidad <= 0, item sin id o descuento fuera de [0,100].
//   - domain.ErrItemNotFound      el item no existe en el inventario del comercio (*domain.StockError).
//   - domain.ErrInsufficientStock el stock no alcanza para la línea (*domain.StockError).
//
// Cualquier otro error proviene del almacenamiento. En todos los casos no queda rastro de la operación.
func (uc *CreateBillUseCase) CreateBill(ctx context.Context, merchantID string, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if err := validateBillRequest(merchantID, &in); err != nil {
		return nil, err
	}

	now := uc.now()
	billNumber := newBillNumber(merchantID, now)
	var bill *entity.Bill

	err := uc.txRunner.RunBilling(ctx, func(
		inventoryRepo repository.InventoryRepository,
		movementRepo repository.StockMovementRepository,
		billRepo repository.BillRepository,
	) error {
		var totals domainbilling.Totals
		items := make([]entity.BillItem, 0, len(in.Items))

		// Cada línea se descuenta por separado; una línea repetida ve el stock dejado por la anterior.
		for _, line := range in.Items {
			item, err := inventoryRepo.GetForUpdate(ctx, merchantID, line.ItemID)
			if err != nil {
				return fmt.Errorf("load item %s: %w", line.ItemID, err)
			}
			if item == nil {
				return domain.NewItemNotFound(line.ItemID)
			}
			ok, err := inventoryRepo.DecrementIfAvailable(ctx, merchantID, line.ItemID, line.Quantity)
			if err != nil {
				return fmt.Errorf("decrement item %s: %w", line.ItemID, err)
			}
			if !ok {
				return domain.NewInsufficientStock(item.Name)
			}

			amounts := domainbilling.CalculateLine(line.Quantity, item.Price, item.GSTRate)
			totals.Add(amounts)
			items = append(items, entity.BillItem{
				ItemID:    item.ItemID,
				ItemName:  item.Name,
				Quantity:  line.Quantity,
				UnitPrice: item.Price,
				GSTRate:   item.GSTRate,
				ItemTotal: amounts.ItemTotal,
				GSTAmount: amounts.GSTAmount,
			})

			if err := movementRepo.Create(ctx, &entity.StockMovement{
				MerchantID:    merchantID,
				ItemID:        item.ItemID,
				MovementType:  entity.MovementTypeOut,
				Quantity:      line.Quantity,
				ReferenceType: entity.ReferenceSale,
				ReferenceID:   billNumber,
				Notes:         "Sale - Bill " + billNumber,
				CreatedAt:     now,
			}); err != nil {
				return fmt.Errorf("record movement for %s: %w", item.ItemID, err)
			}
		}

		discountAmount, finalAmount := totals.Settle(in.Discount)
		bill = &entity.Bill{
			MerchantID:      merchantID,
			BillNumber:      billNumber,
			CustomerName:    in.CustomerName,
			CustomerPhone:   in.CustomerPhone,
			Subtotal:        totals.Subtotal,
			DiscountPercent: in.Discount,
			DiscountAmount:  discountAmount,
			TotalGST:        totals.TotalGST,
			FinalAmount:     finalAmount,
			PaymentStatus:   in.PaymentStatus,
			CreatedAt:       now,
			Items:           items,
		}
		if err := billRepo.Create(ctx, bill); err != nil {
			return fmt.Errorf("save bill: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("merchant_id", merchantID).
		Str("bill_number", bill.BillNumber).
		Int("items", len(bill.Items)).
		Str("final_amount", bill.FinalAmount.StringFixed(2)).
		Msg("bill created")

	return ToBillResponse(bill), nil
}

// GetBill devuelve la factura con sus líneas. Las facturas de otro comercio no existen para el llamador.
func (uc *CreateBillUseCase) GetBill(ctx context.Context, merchantID string, id int64) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByID(ctx, merchantID, id)
	if err != nil {
		return nil, fmt.Errorf("get bill: %w", err)
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	return ToBillResponse(bill), nil
}

// ListBills devuelve las facturas más recientes del comercio (50 por defecto).
func (uc *CreateBillUseCase) ListBills(ctx context.Context, merchantID string, page dto.PageRequest) ([]dto.BillSummaryResponse, error) {
	page.DefaultPage(defaultBillPageSize)
	if page.Limit > maxBillPageSize {
		page.Limit = maxBillPageSize
	}
	rows, err := uc.billRepo.ListByMerchant(ctx, merchantID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	out := make([]dto.BillSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.BillSummaryResponse{
			ID:            r.ID,
			BillNumber:    r.BillNumber,
			CustomerName:  r.CustomerName,
			Subtotal:      r.Subtotal,
			TotalGST:      r.TotalGST,
			FinalAmount:   r.FinalAmount,
			PaymentStatus: r.PaymentStatus,
			CreatedAt:     r.CreatedAt,
			ItemsSummary:  r.ItemsSummary,
		})
	}
	return out, nil
}

// validateBillRequest normaliza y valida la entrada sin tocar el almacenamiento.
func validateBillRequest(merchantID string, in *dto.CreateBillRequest) error {
	if merchantID == "" {
		return domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return domain.Invalid("cart must contain at least one item")
	}
	for i := range in.Items {
		in.Items[i].ItemID = strings.TrimSpace(in.Items[i].ItemID)
		if in.Items[i].ItemID == "" {
			return domain.Invalid("item %d: itemId is required", i+1)
		}
		if in.Items[i].Quantity <= 0 {
			return domain.Invalid("item %d: quantity must be greater than 0", i+1)
		}
	}
	if in.Discount.IsNegative() || in.Discount.GreaterThan(maxDiscount) {
		return domain.Invalid("discount must be between 0 and 100")
	}

	in.CustomerName = strings.TrimSpace(in.CustomerName)
	if in.CustomerName == "" {
		in.CustomerName = entity.DefaultCustomerName
	}
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)

	switch in.PaymentStatus {
	case "":
		in.PaymentStatus = entity.PaymentStatusPaid
	case entity.PaymentStatusPaid, entity.PaymentStatusPending:
	default:
		return domain.Invalid("paymentStatus must be paid or pending")
	}
	return nil
}

// newBillNumber genera <merchant>-<unix ms>-<8 hex>. La tabla además exige unicidad.
func newBillNumber(merchantID string, now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%d-%s", merchantID, now.UnixMilli(), strings.ToUpper(suffix))
}

// ToBillResponse convierte la entidad a DTO.
func ToBillResponse(b *entity.Bill) *dto.BillResponse {
	resp := &dto.BillResponse{
		ID:              b.ID,
		BillNumber:      b.BillNumber,
		CustomerName:    b.CustomerName,
		CustomerPhone:   b.CustomerPhone,
		Subtotal:        b.Subtotal,
		DiscountPercent: b.DiscountPercent,
		DiscountAmount:  b.DiscountAmount,
		TotalGST:        b.TotalGST,
		FinalAmount:     b.FinalAmount,
		PaymentStatus:   b.PaymentStatus,
		CreatedAt:       b.CreatedAt,
		Items:           make([]dto.BillItemResponse, 0, len(b.Items)),
	}
	for _, it := range b.Items {
		resp.Items = append(resp.Items, dto.BillItemResponse{
			ItemID:    it.ItemID,
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			GSTRate:   it.GSTRate,
			ItemTotal: it.ItemTotal,
			GSTAmount: it.GSTAmount,
		})
	}
	return resp
}
