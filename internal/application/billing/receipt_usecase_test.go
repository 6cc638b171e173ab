package billing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstore-api/internal/application/billing"
	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/infrastructure/memory"
)

type stubReceipt struct {
	gotBill     *entity.Bill
	gotMerchant *entity.Merchant
}

func (s *stubReceipt) GenerateReceipt(_ context.Context, bill *entity.Bill, m *entity.Merchant) ([]byte, error) {
	s.gotBill, s.gotMerchant = bill, m
	return []byte("%PDF-stub"), nil
}

func TestDownloadReceipt(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Merchants().Create(ctx, &entity.Merchant{ID: merchant, StoreName: "City Pharmacy", Email: "c@p.in", IsActive: true}))
	seedItem(t, store, merchant, "A", "Syrup A", 10, "100", "18")
	bill, err := newUseCase(store).CreateBill(ctx, merchant, cart(line("A", 1)))
	require.NoError(t, err)

	gen := &stubReceipt{}
	uc := billing.NewReceiptUseCase(store.Bills(), store.Merchants(), gen)

	pdf, filename, err := uc.DownloadReceipt(ctx, merchant, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), pdf)
	assert.Equal(t, "bill_"+bill.BillNumber+".pdf", filename)
	assert.Equal(t, "City Pharmacy", gen.gotMerchant.StoreName)
	assert.Len(t, gen.gotBill.Items, 1)

	_, _, err = uc.DownloadReceipt(ctx, merchant, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
