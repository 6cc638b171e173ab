package inventory

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

var maxGSTRate = decimal.NewFromInt(100)

// InventoryUseCase alta manual, importación Excel y consultas de inventario.
// Toda variación de cantidad pasa por los métodos atómicos del repositorio y deja un movimiento.
type InventoryUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.InventoryRepository
	movementRepo repository.StockMovementRepository
	sheets       SheetReader
	defaultGST   decimal.Decimal
	log          zerolog.Logger
	now          func() time.Time
}

// NewInventoryUseCase construye el caso de uso. defaultGST es el porcentaje usado cuando la entrada no trae GST.
func NewInventoryUseCase(
	txRunner TxRunner,
	itemRepo repository.InventoryRepository,
	movementRepo repository.StockMovementRepository,
	sheets SheetReader,
	defaultGST int,
	log zerolog.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		movementRepo: movementRepo,
		sheets:       sheets,
		defaultGST:   decimal.NewFromInt(int64(defaultGST)),
		log:          log,
		now:          time.Now,
	}
}

// ListItems devuelve el inventario ordenado por categoría y nombre.
func (uc *InventoryUseCase) ListItems(ctx context.Context, merchantID string) ([]dto.InventoryItemResponse, error) {
	items, err := uc.itemRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	out := make([]dto.InventoryItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemResponse(it))
	}
	return out, nil
}

// GetItem devuelve un item del comercio o domain.ErrNotFound.
func (uc *InventoryUseCase) GetItem(ctx context.Context, merchantID, itemID string) (*dto.InventoryItemResponse, error) {
	it, err := uc.itemRepo.GetByID(ctx, merchantID, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToItemResponse(it)
	return &resp, nil
}

// ListMovements historial de movimientos de un item, más recientes primero.
func (uc *InventoryUseCase) ListMovements(ctx context.Context, merchantID, itemID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	it, err := uc.itemRepo.GetByID(ctx, merchantID, itemID)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage(50)
	movs, err := uc.movementRepo.ListByItem(ctx, merchantID, itemID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	out := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.StockMovementResponse{
			ID:            m.ID,
			ItemID:        m.ItemID,
			MovementType:  m.MovementType,
			Quantity:      m.Quantity,
			ReferenceType: m.ReferenceType,
			ReferenceID:   m.ReferenceID,
			Notes:         m.Notes,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

// itemInput entrada normalizada para upsert (manual o fila de Excel).
type itemInput struct {
	Name         string
	Category     string
	Quantity     int
	Price        decimal.Decimal
	GSTRate      decimal.Decimal
	BatchNumber  string
	ExpiryDate   *time.Time
	Manufacturer string
}

func (uc *InventoryUseCase) normalize(name, category string, qty int, price decimal.Decimal, gst *decimal.Decimal, expiry string) (itemInput, error) {
	in := itemInput{Name: strings.TrimSpace(name), Quantity: qty, Price: price}
	if in.Name == "" {
		return in, domain.Invalid("name is required")
	}
	cat, ok := entity.NormalizeCategory(category)
	if !ok {
		return in, domain.Invalid("invalid category %q", category)
	}
	in.Category = cat
	if qty < 0 {
		return in, domain.Invalid("quantity cannot be negative")
	}
	if price.IsNegative() {
		return in, domain.Invalid("price cannot be negative")
	}
	in.GSTRate = uc.defaultGST
	if gst != nil {
		in.GSTRate = *gst
	}
	if in.GSTRate.IsNegative() || in.GSTRate.GreaterThan(maxGSTRate) {
		return in, domain.Invalid("gst must be between 0 and 100")
	}
	if expiry = strings.TrimSpace(expiry); expiry != "" {
		t, err := time.Parse(dateLayout, expiry)
		if err != nil {
			return in, domain.Invalid("expiry date must be YYYY-MM-DD")
		}
		in.ExpiryDate = &t
	}
	return in, nil
}

// AddManual agrega stock por nombre: si el item existe suma cantidad y actualiza precio y GST; si no, lo crea.
func (uc *InventoryUseCase) AddManual(ctx context.Context, merchantID string, req dto.ManualItemRequest) (*dto.UpsertItemResponse, error) {
	in, err := uc.normalize(req.Name, req.Category, req.Quantity, req.Price, req.GSTRate, req.ExpiryDate)
	if err != nil {
		return nil, err
	}
	in.BatchNumber = strings.TrimSpace(req.BatchNumber)
	in.Manufacturer = strings.TrimSpace(req.Manufacturer)

	var item *entity.InventoryItem
	var created bool
	err = uc.txRunner.Run(ctx, func(itemRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		var txErr error
		item, created, txErr = uc.upsertInTx(ctx, itemRepo, movRepo, merchantID, in, entity.ReferenceAdjustment, "Manual stock entry")
		return txErr
	})
	if err != nil {
		return nil, err
	}

	msg := "Stock updated successfully"
	if created {
		msg = "Item added successfully"
	}
	uc.log.Info().Str("merchant_id", merchantID).Str("item_id", item.ItemID).Bool("created", created).Msg("manual inventory entry")
	return &dto.UpsertItemResponse{Item: ToItemResponse(item), Created: created, Message: msg}, nil
}

// upsertInTx aplica la entrada dentro de la transacción del llamador y devuelve el item resultante.
func (uc *InventoryUseCase) upsertInTx(
	ctx context.Context,
	itemRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	merchantID string,
	in itemInput,
	referenceType, notes string,
) (*entity.InventoryItem, bool, error) {
	now := uc.now()
	existing, err := itemRepo.GetByNameForUpdate(ctx, merchantID, in.Name)
	if err != nil {
		return nil, false, fmt.Errorf("find item by name: %w", err)
	}

	var item *entity.InventoryItem
	created := existing == nil
	if created {
		item = &entity.InventoryItem{
			MerchantID:   merchantID,
			ItemID:       newItemID(now),
			Name:         in.Name,
			Category:     in.Category,
			Quantity:     in.Quantity,
			Price:        in.Price,
			GSTRate:      in.GSTRate,
			BatchNumber:  in.BatchNumber,
			ExpiryDate:   in.ExpiryDate,
			Manufacturer: in.Manufacturer,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := itemRepo.Create(ctx, item); err != nil {
			return nil, false, fmt.Errorf("create item: %w", err)
		}
	} else {
		if in.Quantity > 0 {
			if err := itemRepo.AddStock(ctx, merchantID, existing.ItemID, in.Quantity); err != nil {
				return nil, false, fmt.Errorf("add stock: %w", err)
			}
		}
		if err := itemRepo.UpdatePricing(ctx, merchantID, existing.ItemID, in.Price, in.GSTRate); err != nil {
			return nil, false, fmt.Errorf("update pricing: %w", err)
		}
		item = existing
		item.Quantity += in.Quantity
		item.Price = in.Price
		item.GSTRate = in.GSTRate
		item.UpdatedAt = now
	}

	if in.Quantity > 0 {
		if err := movRepo.Create(ctx, &entity.StockMovement{
			MerchantID:    merchantID,
			ItemID:        item.ItemID,
			MovementType:  entity.MovementTypeIn,
			Quantity:      in.Quantity,
			ReferenceType: referenceType,
			Notes:         notes,
			CreatedAt:     now,
		}); err != nil {
			return nil, false, fmt.Errorf("record movement: %w", err)
		}
	}
	return item, created, nil
}

func newItemID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ITEM%d%s", now.UnixMilli(), suffix)
}

// ToItemResponse convierte la entidad a DTO.
func ToItemResponse(it *entity.InventoryItem) dto.InventoryItemResponse {
	resp := dto.InventoryItemResponse{
		ItemID:       it.ItemID,
		Name:         it.Name,
		Category:     it.Category,
		Quantity:     it.Quantity,
		Price:        it.Price,
		GSTRate:      it.GSTRate,
		BatchNumber:  it.BatchNumber,
		Manufacturer: it.Manufacturer,
		UpdatedAt:    it.UpdatedAt,
	}
	if it.ExpiryDate != nil {
		resp.ExpiryDate = it.ExpiryDate.Format(dateLayout)
	}
	return resp
}
