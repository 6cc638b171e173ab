package billing_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstore-api/internal/application/billing"
	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/infrastructure/memory"
)

const merchant = "MERCH1"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedItem agrega un item al inventario del comercio.
func seedItem(t *testing.T, store *memory.Store, merchantID, itemID, name string, qty int, price, gst string) {
	t.Helper()
	err := store.Inventory().Create(context.Background(), &entity.InventoryItem{
		MerchantID: merchantID,
		ItemID:     itemID,
		Name:       name,
		Category:   entity.CategoryGeneral,
		Quantity:   qty,
		Price:      dec(price),
		GSTRate:    dec(gst),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	})
	require.NoError(t, err)
}

func quantityOf(t *testing.T, store *memory.Store, itemID string) int {
	t.Helper()
	it, err := store.Inventory().GetByID(context.Background(), merchant, itemID)
	require.NoError(t, err)
	require.NotNil(t, it)
	return it.Quantity
}

func newUseCase(store *memory.Store) *billing.CreateBillUseCase {
	return billing.NewCreateBillUseCase(store, store.Bills(), zerolog.Nop())
}

func cart(lines ...dto.BillLineRequest) dto.CreateBillRequest {
	return dto.CreateBillRequest{Items: lines}
}

func line(itemID string, qty int) dto.BillLineRequest {
	return dto.BillLineRequest{ItemID: itemID, Quantity: qty}
}

// ── Cálculo y efectos ────────────────────────────────────────────────────────

func TestCreateBill_SingleLine(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, merchant, "A", "Paracetamol", 10, "100", "18")

	bill, err := newUseCase(store).CreateBill(context.Background(), merchant, cart(line("A", 2)))
	require.NoError(t, err)

	assert.True(t, bill.Subtotal.Equal(dec("200")))
	assert.True(t, bill.TotalGST.Equal(dec("36")))
	assert.True(t, bill.DiscountAmount.IsZero())
	assert.True(t, bill.FinalAmount.Equal(dec("236")))
	assert.Equal(t, entity.DefaultCustomerName, bill.CustomerName)
	assert.Equal(t, entity.PaymentStatusPaid, bill.PaymentStatus)
	assert.True(t, strings.HasPrefix(bill.BillNumber, merchant+"-"))
	assert.Equal(t, 8, quantityOf(t, store, "A"))

	require.Len(t, bill.Items, 1)
	assert.Equal(t, "Paracetamol", bill.Items[0].ItemName)
	assert.True(t, bill.Items[0].ItemTotal.Equal(dec("200")))
	assert.True(t, bill.Items[0].GSTAmount.Equal(dec("36")))

	movs := store.Movements().All(merchant)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOut, movs[0].MovementType)
	assert.Equal(t, entity.ReferenceSale, movs[0].ReferenceType)
	assert.Equal(t, bill.BillNumber, movs[0].ReferenceID)
	assert.Equal(t, 2, movs[0].Quantity)
}

func TestCreateBill_TwoLinesWithDiscount(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, merchant, "A", "Syrup A", 5, "100", "10")
	seedItem(t, store, merchant, "C", "Tablet C", 5, "50", "5")

	req := cart(line("A", 1), line("C", 2))
	req.Discount = dec("10")
	req.CustomerName = "  Ravi  "
	bill, err := newUseCase(store).CreateBill(context.Background(), merchant, req)
	require.NoError(t, err)

	assert.True(t, bill.Subtotal.Equal(dec("200")))
	assert.True(t, bill.TotalGST.Equal(dec("15")))
	assert.True(t, bill.DiscountAmount.Equal(dec("20")))
	assert.True(t, bill.FinalAmount.Equal(dec("195")))
	assert.Equal(t, "Ravi", bill.CustomerName)
	assert.True(t, bill.FinalAmount.Equal(bill.Subtotal.Add(bill.TotalGST).Sub(bill.DiscountAmount)))
	assert.Len(t, store.Movements().All(merchant), 2)
}

func TestCreateBill_InsufficientStockLeavesNoTrace(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, merchant, "A", "Syrup A", 10, "100", "18")
	seedItem(t, store, merchant, "B", "Tablet B", 3, "10", "5")

	_, err := newUseCase(store).CreateBill(context.Background(), merchant, cart(line("A", 2), line("B", 5)))

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Tablet B", se.Item)

	assert.Equal(t, 10, quantityOf(t, store, "A"))
	assert.Equal(t, 3, quantityOf(t, store, "B"))
	assert.Empty(t, store.Movements().All(merchant))
	assert.Zero(t, store.Bills().Count(merchant))
}

func TestCreateBill_UnknownItem(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, merchant, "A", "Syrup A", 10, "100", "18")

	_, err := newUseCase(store).CreateBill(context.Background(), merchant, cart(line("A", 1), line("ZZZ", 1)))

	require.ErrorIs(t, err, domain.ErrItemNotFound)
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "ZZZ", se.Item)
	assert.Equal(t, 10, quantityOf(t, store, "A"))
}

func TestCreateBill_ItemOfAnotherMerchantIsNotFound(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, "MERCH2", "A", "Foreign", 10, "100", "18")

	_, err := newUseCase(store).CreateBill(context.Background(), merchant, cart(line("A", 1)))

	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestCreateBill_StorageFailureRollsBack(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, merchant, "A", "Syrup A", 10, "100", "18")
	store.FailBillCreate = errors.New("disk full")

	_, err := newUseCase(store).CreateBill(context.Background(), merchant, cart(line("A", 4)))

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, quantityOf(t, store, "A"))
	assert.Empty(t, store.Movements().All(merchant))
}

// ── Validación ───────────────────────────────────────────────────────────────

func TestCreateBill_Validation(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, merchant, "A", "Syrup A", 10, "100", "18")
	uc := newUseCase(store)

	over := cart(line("A", 1))
	over.Discount = dec("100.01")
	negative := cart(line("A", 1))
	negative.Discount = dec("-1")
	badStatus := cart(line("A", 1))
	badStatus.PaymentStatus = "refunded"

	cases := []struct {
		name string
		req  dto.CreateBillRequest
	}{
		{"carrito vacío", cart()},
		{"cantidad cero", cart(line("A", 0))},
		{"cantidad negativa", cart(line("A", -2))},
		{"item sin id", cart(line("  ", 1))},
		{"descuento mayor a 100", over},
		{"descuento negativo", negative},
		{"estado de pago inválido", badStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateBill(context.Background(), merchant, tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 10, quantityOf(t, store, "A"))
}

func TestCreateBill_FullDiscountAndPendingStatus(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, merchant, "A", "Syrup A", 10, "100", "18")

	req := cart(line("A", 1))
	req.Discount = dec("100")
	req.PaymentStatus = entity.PaymentStatusPending
	bill, err := newUseCase(store).CreateBill(context.Background(), merchant, req)
	require.NoError(t, err)

	assert.True(t, bill.DiscountAmount.Equal(dec("100")))
	assert.True(t, bill.FinalAmount.Equal(dec("18")))
	assert.Equal(t, entity.PaymentStatusPending, bill.PaymentStatus)
}

// ── Líneas repetidas ─────────────────────────────────────────────────────────

func TestCreateBill_DuplicateLinesExceedingStockFail(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, merchant, "A", "Syrup A", 5, "10", "0")

	_, err := newUseCase(store).CreateBill(context.Background(), merchant, cart(line("A", 3), line("A", 3)))

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, quantityOf(t, store, "A"))
}

func TestCreateBill_DuplicateLinesWithinStockAreKeptSeparate(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, merchant, "A", "Syrup A", 5, "10", "12")

	bill, err := newUseCase(store).CreateBill(context.Background(), merchant, cart(line("A", 2), line("A", 3)))
	require.NoError(t, err)

	assert.Len(t, bill.Items, 2)
	assert.Len(t, store.Movements().All(merchant), 2)
	assert.Equal(t, 0, quantityOf(t, store, "A"))
	assert.True(t, bill.Subtotal.Equal(dec("50")))
	assert.True(t, bill.TotalGST.Equal(dec("6")))
}

// ── Concurrencia ─────────────────────────────────────────────────────────────

func TestCreateBill_ConcurrentBillsNeverOversell(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, merchant, "A", "Syrup A", 10, "10", "0")
	uc := newUseCase(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.CreateBill(context.Background(), merchant, cart(line("A", 6)))
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 4, quantityOf(t, store, "A"))
	assert.Equal(t, 1, store.Bills().Count(merchant))
}

func TestCreateBill_BillNumbersAreUnique(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, merchant, "A", "Syrup A", 100, "1", "0")
	uc := newUseCase(store)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		bill, err := uc.CreateBill(context.Background(), merchant, cart(line("A", 1)))
		require.NoError(t, err)
		assert.False(t, seen[bill.BillNumber], bill.BillNumber)
		seen[bill.BillNumber] = true
	}
}

// ── Consultas ────────────────────────────────────────────────────────────────

func TestGetBillAndList(t *testing.T) {
	store := memory.NewStore()
	seedItem(t, store, merchant, "A", "Syrup A", 10, "100", "18")
	seedItem(t, store, merchant, "C", "Tablet C", 10, "50", "5")
	uc := newUseCase(store)
	ctx := context.Background()

	first, err := uc.CreateBill(ctx, merchant, cart(line("A", 1)))
	require.NoError(t, err)
	second, err := uc.CreateBill(ctx, merchant, cart(line("A", 1), line("C", 1)))
	require.NoError(t, err)

	got, err := uc.GetBill(ctx, merchant, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.BillNumber, got.BillNumber)
	require.Len(t, got.Items, 1)

	_, err = uc.GetBill(ctx, "MERCH2", first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.ListBills(ctx, merchant, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, "Syrup A, Tablet C", list[0].ItemsSummary)
}
