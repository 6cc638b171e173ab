package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo persiste facturas y sus líneas. Create debe ejecutarse sobre la tx de facturación.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el repositorio. Pasar pool o tx.
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, merchant_id, bill_number, customer_name, customer_phone, subtotal, discount_percent,
	discount_amount, total_gst, final_amount, payment_status, created_at`

// Create inserta la cabecera (RETURNING id) y luego cada línea con el id asignado.
func (r *BillRepo) Create(ctx context.Context, b *entity.Bill) error {
	query := `
		INSERT INTO bills (merchant_id, bill_number, customer_name, customer_phone, subtotal, discount_percent,
			discount_amount, total_gst, final_amount, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		b.MerchantID, b.BillNumber, b.CustomerName, b.CustomerPhone, b.Subtotal, b.DiscountPercent,
		b.DiscountAmount, b.TotalGST, b.FinalAmount, b.PaymentStatus, b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bill: %w", err)
	}

	itemQuery := `
		INSERT INTO bill_items (bill_id, item_id, item_name, quantity, unit_price, gst_rate, item_total, gst_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range b.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			b.ID, it.ItemID, it.ItemName, it.Quantity, it.UnitPrice, it.GSTRate, it.ItemTotal, it.GSTAmount,
		); err != nil {
			return fmt.Errorf("insert bill item %s: %w", it.ItemID, err)
		}
	}
	return nil
}

func (r *BillRepo) GetByID(ctx context.Context, merchantID string, id int64) (*entity.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1 AND merchant_id = $2`
	var b entity.Bill
	err := r.q.QueryRow(ctx, query, id, merchantID).Scan(
		&b.ID, &b.MerchantID, &b.BillNumber, &b.CustomerName, &b.CustomerPhone, &b.Subtotal, &b.DiscountPercent,
		&b.DiscountAmount, &b.TotalGST, &b.FinalAmount, &b.PaymentStatus, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT item_id, item_name, quantity, unit_price, gst_rate, item_total, gst_amount
		FROM bill_items WHERE bill_id = $1 ORDER BY id`, b.ID)
	if err != nil {
		return nil, fmt.Errorf("get bill items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.BillItem
		if err := rows.Scan(&it.ItemID, &it.ItemName, &it.Quantity, &it.UnitPrice, &it.GSTRate, &it.ItemTotal, &it.GSTAmount); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		b.Items = append(b.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get bill items: %w", err)
	}
	return &b, nil
}

// ListByMerchant facturas más recientes con los nombres de sus items concatenados.
func (r *BillRepo) ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*entity.BillSummary, error) {
	query := `
		SELECT b.id, b.merchant_id, b.bill_number, b.customer_name, b.customer_phone, b.subtotal, b.discount_percent,
			b.discount_amount, b.total_gst, b.final_amount, b.payment_status, b.created_at,
			COALESCE((SELECT string_agg(bi.item_name, ', ' ORDER BY bi.id) FROM bill_items bi WHERE bi.bill_id = b.id), '')
		FROM bills b
		WHERE b.merchant_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, merchantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.BillSummary, 0)
	for rows.Next() {
		var s entity.BillSummary
		if err := rows.Scan(
			&s.ID, &s.MerchantID, &s.BillNumber, &s.CustomerName, &s.CustomerPhone, &s.Subtotal, &s.DiscountPercent,
			&s.DiscountAmount, &s.TotalGST, &s.FinalAmount, &s.PaymentStatus, &s.CreatedAt, &s.ItemsSummary,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
