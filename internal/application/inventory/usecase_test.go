package inventory_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/application/inventory"
	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/infrastructure/memory"
)

const merchant = "MERCH1"

// fakeSheet devuelve filas fijas sin leer el archivo.
type fakeSheet struct {
	rows [][]string
	err  error
}

func (f fakeSheet) ReadRows(io.Reader) ([][]string, error) { return f.rows, f.err }

func newUseCase(store *memory.Store, sheet inventory.SheetReader) *inventory.InventoryUseCase {
	return inventory.NewInventoryUseCase(store, store.Inventory(), store.Movements(), sheet, 18, zerolog.Nop())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Alta manual ──────────────────────────────────────────────────────────────

func TestAddManual_CreatesItemWithDefaultGST(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, nil)

	resp, err := uc.AddManual(context.Background(), merchant, dto.ManualItemRequest{
		Name: "Paracetamol 500", Category: "Tablets", Quantity: 20, Price: dec("2.50"),
	})
	require.NoError(t, err)

	assert.True(t, resp.Created)
	assert.Equal(t, entity.CategoryTablets, resp.Item.Category)
	assert.True(t, resp.Item.GSTRate.Equal(dec("18")))
	assert.Equal(t, 20, resp.Item.Quantity)

	movs := store.Movements().All(merchant)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeIn, movs[0].MovementType)
	assert.Equal(t, entity.ReferenceAdjustment, movs[0].ReferenceType)
	assert.Equal(t, 20, movs[0].Quantity)
}

func TestAddManual_SameNameAddsQuantityAndUpdatesPrice(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, nil)
	ctx := context.Background()

	first, err := uc.AddManual(ctx, merchant, dto.ManualItemRequest{Name: "Cough Syrup", Category: "syrups", Quantity: 5, Price: dec("80")})
	require.NoError(t, err)

	gst := dec("12")
	second, err := uc.AddManual(ctx, merchant, dto.ManualItemRequest{Name: "cough syrup", Category: "syrups", Quantity: 7, Price: dec("85"), GSTRate: &gst})
	require.NoError(t, err)

	assert.False(t, second.Created)
	assert.Equal(t, first.Item.ItemID, second.Item.ItemID)

	item, err := uc.GetItem(ctx, merchant, first.Item.ItemID)
	require.NoError(t, err)
	assert.Equal(t, 12, item.Quantity)
	assert.True(t, item.Price.Equal(dec("85")))
	assert.True(t, item.GSTRate.Equal(dec("12")))
	assert.Len(t, store.Movements().All(merchant), 2)
}

func TestAddManual_Validation(t *testing.T) {
	uc := newUseCase(memory.NewStore(), nil)
	bad := dec("101")

	cases := map[string]dto.ManualItemRequest{
		"sin nombre":         {Name: " ", Quantity: 1, Price: dec("1")},
		"categoría inválida": {Name: "X", Category: "powders", Quantity: 1, Price: dec("1")},
		"cantidad negativa":  {Name: "X", Quantity: -1, Price: dec("1")},
		"precio negativo":    {Name: "X", Quantity: 1, Price: dec("-1")},
		"gst fuera de rango": {Name: "X", Quantity: 1, Price: dec("1"), GSTRate: &bad},
		"fecha inválida":     {Name: "X", Quantity: 1, Price: dec("1"), ExpiryDate: "31/12/2027"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.AddManual(context.Background(), merchant, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestGetItem_OtherMerchantIsNotFound(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, nil)

	resp, err := uc.AddManual(context.Background(), merchant, dto.ManualItemRequest{Name: "Ointment", Quantity: 1, Price: dec("10")})
	require.NoError(t, err)

	_, err = uc.GetItem(context.Background(), "MERCH2", resp.Item.ItemID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Importación Excel ────────────────────────────────────────────────────────

func TestImportExcel_ImportsUpdatesAndSkips(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	seed := newUseCase(store, nil)
	_, err := seed.AddManual(ctx, merchant, dto.ManualItemRequest{Name: "Amoxicillin", Category: "capsules", Quantity: 3, Price: dec("12")})
	require.NoError(t, err)

	sheet := fakeSheet{rows: [][]string{
		{"Name", "Category", "Quantity", "Price", "GST", "Batch_Number", "Manufacturer"},
		{"Amoxicillin", "capsules", "10", "12.5", "12", "B-77", "Cipla"},
		{"Insulin", "injections", "4.0", "450", "", "", "Novo"},
		{"", "", "", "", "", "", ""},
		{"Broken", "tablets", "abc", "10", "", "", ""},
		{"Weird", "powders", "1", "10", "", "", ""},
	}}
	uc := newUseCase(store, sheet)

	res, err := uc.ImportExcel(ctx, merchant, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Imported)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 5, res.Errors[0].Row)
	assert.Equal(t, 6, res.Errors[1].Row)

	items, err := uc.ListItems(ctx, merchant)
	require.NoError(t, err)
	require.Len(t, items, 2)
	byName := map[string]dto.InventoryItemResponse{}
	for _, it := range items {
		byName[it.Name] = it
	}
	assert.Equal(t, 13, byName["Amoxicillin"].Quantity)
	assert.True(t, byName["Amoxicillin"].GSTRate.Equal(dec("12")))
	assert.Equal(t, 4, byName["Insulin"].Quantity)
	assert.True(t, byName["Insulin"].GSTRate.Equal(dec("18")))

	var excel int
	for _, m := range store.Movements().All(merchant) {
		if m.ReferenceType == entity.ReferenceExcelUpload {
			excel++
			assert.Equal(t, "Excel upload", m.Notes)
		}
	}
	assert.Equal(t, 2, excel)
}

func TestImportExcel_MissingColumn(t *testing.T) {
	uc := newUseCase(memory.NewStore(), fakeSheet{rows: [][]string{{"name", "quantity"}, {"A", "1"}}})

	_, err := uc.ImportExcel(context.Background(), merchant, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportExcel_UnreadableFile(t *testing.T) {
	uc := newUseCase(memory.NewStore(), fakeSheet{err: errors.New("zip: not a valid zip file")})

	_, err := uc.ImportExcel(context.Background(), merchant, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_NewestFirst(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, nil)
	ctx := context.Background()

	r, err := uc.AddManual(ctx, merchant, dto.ManualItemRequest{Name: "Gel", Quantity: 1, Price: dec("5")})
	require.NoError(t, err)
	_, err = uc.AddManual(ctx, merchant, dto.ManualItemRequest{Name: "Gel", Quantity: 2, Price: dec("5")})
	require.NoError(t, err)

	movs, err := uc.ListMovements(ctx, merchant, r.Item.ItemID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, 2, movs[0].Quantity)
	assert.Equal(t, 1, movs[1].Quantity)
}
