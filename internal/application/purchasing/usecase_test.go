package purchasing_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/application/purchasing"
	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/infrastructure/memory"
)

const merchant = "MERCH1"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCase(store *memory.Store) *purchasing.PurchasingUseCase {
	return purchasing.NewPurchasingUseCase(store, store.Suppliers(), store.Purchases(), store.Payments(), 18, zerolog.Nop())
}

func createSupplier(t *testing.T, uc *purchasing.PurchasingUseCase) string {
	t.Helper()
	s, err := uc.CreateSupplier(context.Background(), merchant, dto.CreateSupplierRequest{AgencyName: "Sun Distributors"})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultPaymentTerms, s.PaymentTerms)
	return s.ID
}

func TestCreatePurchase_TotalsAndStockReceipt(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Inventory().Create(ctx, &entity.InventoryItem{
		MerchantID: merchant, ItemID: "ITEM1", Name: "Paracetamol", Category: entity.CategoryTablets,
		Quantity: 2, Price: dec("3"), GSTRate: dec("12"), CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))
	uc := newUseCase(store)
	supplierID := createSupplier(t, uc)

	p, err := uc.CreatePurchase(ctx, merchant, dto.CreatePurchaseRequest{
		SupplierID:   supplierID,
		PurchaseDate: "2026-01-10",
		DueDate:      "2026-02-09",
		Items: []dto.PurchaseItemRequest{
			{ItemName: "Paracetamol", ItemID: "ITEM1", Quantity: 10, UnitPrice: dec("2")},
			{ItemName: "Bandages", Quantity: 5, UnitPrice: dec("16")},
		},
	})
	require.NoError(t, err)

	assert.True(t, p.Subtotal.Equal(dec("100")))
	assert.True(t, p.GSTAmount.Equal(dec("18")))
	assert.True(t, p.TotalAmount.Equal(dec("118")))
	assert.True(t, p.BalanceAmount.Equal(dec("118")))
	assert.Equal(t, entity.PurchaseStatusPending, p.PaymentStatus)

	item, err := store.Inventory().GetByID(ctx, merchant, "ITEM1")
	require.NoError(t, err)
	assert.Equal(t, 12, item.Quantity)

	movs := store.Movements().All(merchant)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.ReferencePurchase, movs[0].ReferenceType)
	assert.Equal(t, p.ID, movs[0].ReferenceID)
}

func TestCreatePurchase_UnknownSupplierOrItem(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()

	_, err := uc.CreatePurchase(ctx, merchant, dto.CreatePurchaseRequest{
		SupplierID: "nope", PurchaseDate: "2026-01-10",
		Items: []dto.PurchaseItemRequest{{ItemName: "X", Quantity: 1, UnitPrice: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	supplierID := createSupplier(t, uc)
	_, err = uc.CreatePurchase(ctx, merchant, dto.CreatePurchaseRequest{
		SupplierID: supplierID, PurchaseDate: "2026-01-10",
		Items: []dto.PurchaseItemRequest{{ItemName: "X", ItemID: "GHOST", Quantity: 1, UnitPrice: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	list, err := uc.ListPurchases(ctx, merchant, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreatePayment_UpdatesBalanceAndStatus(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	ctx := context.Background()
	supplierID := createSupplier(t, uc)

	p, err := uc.CreatePurchase(ctx, merchant, dto.CreatePurchaseRequest{
		SupplierID: supplierID, PurchaseDate: "2026-01-10", InvoiceNumber: "INV-9",
		Items: []dto.PurchaseItemRequest{{ItemName: "Syringes", Quantity: 10, UnitPrice: dec("10")}},
	})
	require.NoError(t, err)

	pay := func(amount string) error {
		_, err := uc.CreatePayment(ctx, merchant, dto.CreatePaymentRequest{
			SupplierID: supplierID, PurchaseID: p.ID, Amount: dec(amount),
			PaymentDate: "2026-01-20", PaymentMethod: entity.PaymentMethodUPI,
		})
		return err
	}

	require.NoError(t, pay("50"))
	list, err := uc.ListPurchases(ctx, merchant, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.PurchaseStatusPartial, list[0].PaymentStatus)
	assert.True(t, list[0].BalanceAmount.Equal(dec("68")))

	assert.ErrorIs(t, pay("68.01"), domain.ErrInvalidInput)

	require.NoError(t, pay("68"))
	list, err = uc.ListPurchases(ctx, merchant, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPaid, list[0].PaymentStatus)
	assert.True(t, list[0].BalanceAmount.IsZero())

	payments, err := uc.ListPayments(ctx, merchant, 0)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "INV-9", payments[0].InvoiceNumber)
	assert.Equal(t, "Sun Distributors", payments[0].SupplierName)
}

func TestCreatePayment_Validation(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store)
	supplierID := createSupplier(t, uc)

	cases := map[string]dto.CreatePaymentRequest{
		"monto cero":      {SupplierID: supplierID, Amount: dec("0"), PaymentDate: "2026-01-01", PaymentMethod: "cash"},
		"fecha invalida":  {SupplierID: supplierID, Amount: dec("1"), PaymentDate: "01-01-2026", PaymentMethod: "cash"},
		"metodo invalido": {SupplierID: supplierID, Amount: dec("1"), PaymentDate: "2026-01-01", PaymentMethod: "barter"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.CreatePayment(context.Background(), merchant, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := uc.CreatePayment(context.Background(), merchant, dto.CreatePaymentRequest{
		SupplierID: supplierID, PurchaseID: "missing", Amount: dec("1"), PaymentDate: "2026-01-01", PaymentMethod: "cash",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
