package billing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Line resultado de valorizar una línea de venta.
type Line struct {
	ItemTotal decimal.Decimal // qty * precio unitario, exacto
	GSTAmount decimal.Decimal // redondeado a 2 decimales
}

// CalculateLine valoriza una línea: ItemTotal = qty*price y GST = round2(ItemTotal*rate/100).
func CalculateLine(quantity int, unitPrice, gstRate decimal.Decimal) Line {
	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return Line{
		ItemTotal: total,
		GSTAmount: total.Mul(gstRate).Div(hundred).Round(2),
	}
}

// Totals acumula líneas. El resultado no depende del orden ni del agrupamiento de las líneas.
type Totals struct {
	Subtotal decimal.Decimal
	TotalGST decimal.Decimal
}

// Add suma una línea a los acumulados.
func (t *Totals) Add(l Line) {
	t.Subtotal = t.Subtotal.Add(l.ItemTotal)
	t.TotalGST = t.TotalGST.Add(l.GSTAmount)
}

// Settle aplica el descuento porcentual sobre el subtotal y devuelve el descuento y el total final.
// final = subtotal + gst - descuento, sin redondeo adicional.
func (t Totals) Settle(discountPercent decimal.Decimal) (discount, final decimal.Decimal) {
	discount = t.Subtotal.Mul(discountPercent).Div(hundred).Round(2)
	final = t.Subtotal.Add(t.TotalGST).Sub(discount)
	return discount, final
}
