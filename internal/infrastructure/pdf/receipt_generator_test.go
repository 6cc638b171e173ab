package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/infrastructure/pdf"
)

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "Rs. 236.00", pdf.FormatINR(decimal.RequireFromString("236")))
	assert.Contains(t, pdf.FormatINR(decimal.RequireFromString("1234.5")), "1,234.50")
}

func TestGenerateReceipt(t *testing.T) {
	bill := &entity.Bill{
		ID:              1,
		BillNumber:      "MERCH1-1700000000000-ABCDEF12",
		CustomerName:    entity.DefaultCustomerName,
		Subtotal:        decimal.RequireFromString("200"),
		DiscountPercent: decimal.Zero,
		TotalGST:        decimal.RequireFromString("36"),
		FinalAmount:     decimal.RequireFromString("236"),
		PaymentStatus:   entity.PaymentStatusPaid,
		CreatedAt:       time.Now(),
		Items: []entity.BillItem{{
			ItemID: "A", ItemName: "Paracetamol 500mg", Quantity: 2,
			UnitPrice: decimal.RequireFromString("100"), GSTRate: decimal.RequireFromString("18"),
			ItemTotal: decimal.RequireFromString("200"), GSTAmount: decimal.RequireFromString("36"),
		}},
	}
	merchant := &entity.Merchant{ID: "MERCH1", StoreName: "City Pharmacy", GSTNumber: "27ABCDE1234F1Z5"}

	out, err := pdf.NewReceiptGenerator().GenerateReceipt(context.Background(), bill, merchant)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
