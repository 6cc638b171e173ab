// Package purchasing gestiona proveedores, compras y pagos a proveedores.
package purchasing

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
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

var hundred = decimal.NewFromInt(100)

// PurchasingUseCase casos de uso de cuentas por pagar.
type PurchasingUseCase struct {
	txRunner     TxRunner
	supplierRepo repository.SupplierRepository
	purchaseRepo repository.PurchaseRepository
	paymentRepo  repository.SupplierPaymentRepository
	gstRate      decimal.Decimal
	log          zerolog.Logger
	now          func() time.Time
}

// NewPurchasingUseCase construye el caso de uso. gstRate es el porcentaje de GST aplicado al subtotal de cada compra.
func NewPurchasingUseCase(
	txRunner TxRunner,
	supplierRepo repository.SupplierRepository,
	purchaseRepo repository.PurchaseRepository,
	paymentRepo repository.SupplierPaymentRepository,
	gstRate int,
	log zerolog.Logger,
) *PurchasingUseCase {
	return &PurchasingUseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		purchaseRepo: purchaseRepo,
		paymentRepo:  paymentRepo,
		gstRate:      decimal.NewFromInt(int64(gstRate)),
		log:          log,
		now:          time.Now,
	}
}

// ── Proveedores ──────────────────────────────────────────────────────────────

// CreateSupplier registra un proveedor del comercio.
func (uc *PurchasingUseCase) CreateSupplier(ctx context.Context, merchantID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.AgencyName)
	if name == "" {
		return nil, domain.Invalid("agencyName is required")
	}
	terms := strings.TrimSpace(in.PaymentTerms)
	if terms == "" {
		terms = entity.DefaultPaymentTerms
	}
	now := uc.now()
	s := &entity.Supplier{
		ID:            uuid.NewString(),
		MerchantID:    merchantID,
		AgencyName:    name,
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		Address:       strings.TrimSpace(in.Address),
		GSTNumber:     strings.ToUpper(strings.TrimSpace(in.GSTNumber)),
		PaymentTerms:  terms,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.supplierRepo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	resp := toSupplierResponse(s)
	return &resp, nil
}

// ListSuppliers proveedores activos ordenados por nombre.
func (uc *PurchasingUseCase) ListSuppliers(ctx context.Context, merchantID string) ([]dto.SupplierResponse, error) {
	list, err := uc.supplierRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// ── Compras ──────────────────────────────────────────────────────────────────

// CreatePurchase registra una compra. Las líneas con itemId entran al inventario
// (movimiento in/purchase) en la misma transacción.
func (uc *PurchasingUseCase) CreatePurchase(ctx context.Context, merchantID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalid("purchase must contain at least one item")
	}
	purchaseDate, err := parseDate(in.PurchaseDate, "purchaseDate")
	if err != nil {
		return nil, err
	}
	var dueDate *time.Time
	if in.DueDate != "" {
		d, err := parseDate(in.DueDate, "dueDate")
		if err != nil {
			return nil, err
		}
		if d.Before(purchaseDate) {
			return nil, domain.Invalid("dueDate cannot be before purchaseDate")
		}
		dueDate = &d
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, merchantID, in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	p := &entity.Purchase{
		ID:            uuid.NewString(),
		MerchantID:    merchantID,
		SupplierID:    supplier.ID,
		SupplierName:  supplier.AgencyName,
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		PurchaseDate:  purchaseDate,
		DueDate:       dueDate,
		PaidAmount:    decimal.Zero,
		PaymentStatus: entity.PurchaseStatusPending,
		Notes:         strings.TrimSpace(in.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for i, it := range in.Items {
		name := strings.TrimSpace(it.ItemName)
		if name == "" {
			return nil, domain.Invalid("item %d: itemName is required", i+1)
		}
		if it.Quantity <= 0 {
			return nil, domain.Invalid("item %d: quantity must be greater than 0", i+1)
		}
		if it.UnitPrice.IsNegative() {
			return nil, domain.Invalid("item %d: unitPrice cannot be negative", i+1)
		}
		line := entity.PurchaseItem{
			ItemID:      strings.TrimSpace(it.ItemID),
			ItemName:    name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
			BatchNumber: strings.TrimSpace(it.BatchNumber),
		}
		if it.ExpiryDate != "" {
			exp, err := parseDate(it.ExpiryDate, "expiryDate")
			if err != nil {
				return nil, err
			}
			line.ExpiryDate = &exp
		}
		p.Subtotal = p.Subtotal.Add(line.TotalPrice)
		p.Items = append(p.Items, line)
	}
	p.GSTAmount = p.Subtotal.Mul(uc.gstRate).Div(hundred).Round(2)
	p.TotalAmount = p.Subtotal.Add(p.GSTAmount)
	p.BalanceAmount = p.TotalAmount

	err = uc.txRunner.RunPurchasing(ctx, func(
		inventoryRepo repository.InventoryRepository,
		movementRepo repository.StockMovementRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.SupplierPaymentRepository,
	) error {
		for _, line := range p.Items {
			if line.ItemID == "" {
				continue
			}
			item, err := inventoryRepo.GetForUpdate(ctx, merchantID, line.ItemID)
			if err != nil {
				return fmt.Errorf("load item %s: %w", line.ItemID, err)
			}
			if item == nil {
				return domain.NewItemNotFound(line.ItemID)
			}
			if err := inventoryRepo.AddStock(ctx, merchantID, line.ItemID, line.Quantity); err != nil {
				return fmt.Errorf("add stock %s: %w", line.ItemID, err)
			}
			if err := movementRepo.Create(ctx, &entity.StockMovement{
				MerchantID:    merchantID,
				ItemID:        line.ItemID,
				MovementType:  entity.MovementTypeIn,
				Quantity:      line.Quantity,
				ReferenceType: entity.ReferencePurchase,
				ReferenceID:   p.ID,
				Notes:         "Purchase from " + supplier.AgencyName,
				CreatedAt:     now,
			}); err != nil {
				return fmt.Errorf("record movement %s: %w", line.ItemID, err)
			}
		}
		if err := purchaseRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("save purchase: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("merchant_id", merchantID).Str("purchase_id", p.ID).Str("total", p.TotalAmount.StringFixed(2)).Msg("purchase recorded")
	resp := toPurchaseResponse(p)
	return &resp, nil
}

// ListPurchases compras del comercio, más recientes primero.
func (uc *PurchasingUseCase) ListPurchases(ctx context.Context, merchantID string, page dto.PageRequest) ([]dto.PurchaseResponse, error) {
	page.DefaultPage(50)
	list, err := uc.purchaseRepo.ListByMerchant(ctx, merchantID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p))
	}
	return out, nil
}

// ── Pagos ────────────────────────────────────────────────────────────────────

// CreatePayment registra un pago. Si se imputa a una compra, actualiza pagado, saldo y estado
// en la misma transacción; no se admite pagar más que el saldo.
func (uc *PurchasingUseCase) CreatePayment(ctx context.Context, merchantID string, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("amount must be greater than 0")
	}
	paymentDate, err := parseDate(in.PaymentDate, "paymentDate")
	if err != nil {
		return nil, err
	}
	switch in.PaymentMethod {
	case entity.PaymentMethodCash, entity.PaymentMethodBankTransfer, entity.PaymentMethodCheque,
		entity.PaymentMethodUPI, entity.PaymentMethodCard:
	default:
		return nil, domain.Invalid("invalid payment method %q", in.PaymentMethod)
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, merchantID, in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	pay := &entity.SupplierPayment{
		ID:              uuid.NewString(),
		MerchantID:      merchantID,
		SupplierID:      supplier.ID,
		SupplierName:    supplier.AgencyName,
		PurchaseID:      strings.TrimSpace(in.PurchaseID),
		Amount:          in.Amount,
		PaymentDate:     paymentDate,
		PaymentMethod:   in.PaymentMethod,
		ReferenceNumber: strings.TrimSpace(in.ReferenceNumber),
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
	}

	err = uc.txRunner.RunPurchasing(ctx, func(
		_ repository.InventoryRepository,
		_ repository.StockMovementRepository,
		purchaseRepo repository.PurchaseRepository,
		paymentRepo repository.SupplierPaymentRepository,
	) error {
		if pay.PurchaseID != "" {
			p, err := purchaseRepo.GetForUpdate(ctx, merchantID, pay.PurchaseID)
			if err != nil {
				return fmt.Errorf("get purchase: %w", err)
			}
			if p == nil {
				return domain.ErrNotFound
			}
			if p.SupplierID != supplier.ID {
				return domain.Invalid("purchase does not belong to supplier")
			}
			if pay.Amount.GreaterThan(p.BalanceAmount) {
				return domain.Invalid("payment exceeds balance due of %s", p.BalanceAmount.StringFixed(2))
			}
			p.PaidAmount = p.PaidAmount.Add(pay.Amount)
			p.BalanceAmount = p.TotalAmount.Sub(p.PaidAmount)
			p.PaymentStatus = entity.PaymentStatusFor(p.TotalAmount, p.PaidAmount)
			p.UpdatedAt = now
			if err := purchaseRepo.UpdatePayment(ctx, p); err != nil {
				return fmt.Errorf("update purchase: %w", err)
			}
			pay.InvoiceNumber = p.InvoiceNumber
		}
		if err := paymentRepo.Create(ctx, pay); err != nil {
			return fmt.Errorf("save payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("merchant_id", merchantID).Str("payment_id", pay.ID).Str("amount", pay.Amount.StringFixed(2)).Msg("supplier payment recorded")
	resp := ToPaymentResponse(pay)
	return &resp, nil
}

// ListPayments pagos más recientes del comercio.
func (uc *PurchasingUseCase) ListPayments(ctx context.Context, merchantID string, limit int) ([]dto.PaymentResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.paymentRepo.ListByMerchant(ctx, merchantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToPaymentResponse(p))
	}
	return out, nil
}

func parseDate(s, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, domain.Invalid("%s must be YYYY-MM-DD", field)
	}
	return t, nil
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:            s.ID,
		AgencyName:    s.AgencyName,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		GSTNumber:     s.GSTNumber,
		PaymentTerms:  s.PaymentTerms,
		CreatedAt:     s.CreatedAt,
	}
}

func toPurchaseResponse(p *entity.Purchase) dto.PurchaseResponse {
	resp := dto.PurchaseResponse{
		ID:            p.ID,
		SupplierID:    p.SupplierID,
		SupplierName:  p.SupplierName,
		InvoiceNumber: p.InvoiceNumber,
		PurchaseDate:  p.PurchaseDate.Format(dateLayout),
		Subtotal:      p.Subtotal,
		GSTAmount:     p.GSTAmount,
		TotalAmount:   p.TotalAmount,
		PaidAmount:    p.PaidAmount,
		BalanceAmount: p.BalanceAmount,
		PaymentStatus: p.PaymentStatus,
		Notes:         p.Notes,
	}
	if p.DueDate != nil {
		resp.DueDate = p.DueDate.Format(dateLayout)
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ItemID:     it.ItemID,
			ItemName:   it.ItemName,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: it.TotalPrice,
		})
	}
	return resp
}

// ToPaymentResponse convierte la entidad a DTO.
func ToPaymentResponse(p *entity.SupplierPayment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:              p.ID,
		SupplierID:      p.SupplierID,
		SupplierName:    p.SupplierName,
		PurchaseID:      p.PurchaseID,
		InvoiceNumber:   p.InvoiceNumber,
		Amount:          p.Amount,
		PaymentDate:     p.PaymentDate.Format(dateLayout),
		PaymentMethod:   p.PaymentMethod,
		ReferenceNumber: p.ReferenceNumber,
		Notes:           p.Notes,
	}
}
