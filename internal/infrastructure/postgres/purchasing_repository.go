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

var (
	_ repository.SupplierRepository        = (*SupplierRepo)(nil)
	_ repository.PurchaseRepository        = (*PurchaseRepo)(nil)
	_ repository.SupplierPaymentRepository = (*SupplierPaymentRepo)(nil)
)

// ── Proveedores ──────────────────────────────────────────────────────────────

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el repositorio. Pasar pool o tx.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, merchant_id, agency_name, contact_person, phone, email, address, gst_number,
	payment_terms, is_active, created_at, updated_at`

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.MerchantID, s.AgencyName, s.ContactPerson, s.Phone, s.Email, s.Address, s.GSTNumber,
		s.PaymentTerms, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.MerchantID, &s.AgencyName, &s.ContactPerson, &s.Phone, &s.Email, &s.Address,
		&s.GSTNumber, &s.PaymentTerms, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, merchantID, id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1 AND merchant_id = $2`
	s, err := scanSupplier(r.q.QueryRow(ctx, query, id, merchantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

func (r *SupplierRepo) ListByMerchant(ctx context.Context, merchantID string) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE merchant_id = $1 AND is_active ORDER BY agency_name`
	rows, err := r.q.Query(ctx, query, merchantID)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Supplier, 0)
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ── Compras ──────────────────────────────────────────────────────────────────

// PurchaseRepo compras y líneas de compra sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el repositorio. Pasar pool o tx.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseSelect = `
	SELECT p.id, p.merchant_id, p.supplier_id, s.agency_name, p.invoice_number, p.purchase_date, p.due_date,
		p.subtotal, p.gst_amount, p.total_amount, p.paid_amount, p.balance_amount, p.payment_status, p.notes,
		p.created_at, p.updated_at
	FROM purchases p
	JOIN suppliers s ON s.id = p.supplier_id`

func scanPurchase(row pgx.Row) (*entity.Purchase, error) {
	var p entity.Purchase
	err := row.Scan(&p.ID, &p.MerchantID, &p.SupplierID, &p.SupplierName, &p.InvoiceNumber, &p.PurchaseDate, &p.DueDate,
		&p.Subtotal, &p.GSTAmount, &p.TotalAmount, &p.PaidAmount, &p.BalanceAmount, &p.PaymentStatus, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `
		INSERT INTO purchases (id, merchant_id, supplier_id, invoice_number, purchase_date, due_date, subtotal,
			gst_amount, total_amount, paid_amount, balance_amount, payment_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	if _, err := r.q.Exec(ctx, query,
		p.ID, p.MerchantID, p.SupplierID, p.InvoiceNumber, p.PurchaseDate, p.DueDate, p.Subtotal,
		p.GSTAmount, p.TotalAmount, p.PaidAmount, p.BalanceAmount, p.PaymentStatus, p.Notes, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}

	itemQuery := `
		INSERT INTO purchase_items (purchase_id, item_id, item_name, quantity, unit_price, total_price, batch_number, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range p.Items {
		if _, err := r.q.Exec(ctx, itemQuery,
			p.ID, nullIfEmpty(it.ItemID), it.ItemName, it.Quantity, it.UnitPrice, it.TotalPrice, it.BatchNumber, it.ExpiryDate,
		); err != nil {
			return fmt.Errorf("insert purchase item: %w", err)
		}
	}
	return nil
}

// GetForUpdate bloquea la compra (FOR UPDATE OF p) para imputar un pago.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, merchantID, id string) (*entity.Purchase, error) {
	query := purchaseSelect + ` WHERE p.id = $1 AND p.merchant_id = $2 FOR UPDATE OF p`
	p, err := scanPurchase(r.q.QueryRow(ctx, query, id, merchantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

func (r *PurchaseRepo) UpdatePayment(ctx context.Context, p *entity.Purchase) error {
	query := `
		UPDATE purchases SET paid_amount = $3, balance_amount = $4, payment_status = $5, updated_at = $6
		WHERE id = $1 AND merchant_id = $2`
	tag, err := r.q.Exec(ctx, query, p.ID, p.MerchantID, p.PaidAmount, p.BalanceAmount, p.PaymentStatus, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update purchase payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseRepo) ListByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*entity.Purchase, error) {
	query := purchaseSelect + `
		WHERE p.merchant_id = $1
		ORDER BY p.purchase_date DESC, p.created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, merchantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Purchase, 0)
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ── Pagos ────────────────────────────────────────────────────────────────────

// SupplierPaymentRepo pagos a proveedores sobre PostgreSQL.
type SupplierPaymentRepo struct {
	q Querier
}

// NewSupplierPaymentRepository construye el repositorio. Pasar pool o tx.
func NewSupplierPaymentRepository(q Querier) *SupplierPaymentRepo {
	return &SupplierPaymentRepo{q: q}
}

func (r *SupplierPaymentRepo) Create(ctx context.Context, p *entity.SupplierPayment) error {
	query := `
		INSERT INTO supplier_payments (id, merchant_id, supplier_id, purchase_id, amount, payment_date,
			payment_method, reference_number, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.q.Exec(ctx, query,
		p.ID, p.MerchantID, p.SupplierID, nullIfEmpty(p.PurchaseID), p.Amount, p.PaymentDate,
		p.PaymentMethod, p.ReferenceNumber, p.Notes, p.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert supplier payment: %w", err)
	}
	return nil
}

func (r *SupplierPaymentRepo) ListByMerchant(ctx context.Context, merchantID string, limit int) ([]*entity.SupplierPayment, error) {
	query := `
		SELECT sp.id, sp.merchant_id, sp.supplier_id, s.agency_name, COALESCE(sp.purchase_id, ''),
			COALESCE(p.invoice_number, ''), sp.amount, sp.payment_date, sp.payment_method,
			sp.reference_number, sp.notes, sp.created_at
		FROM supplier_payments sp
		JOIN suppliers s ON s.id = sp.supplier_id
		LEFT JOIN purchases p ON p.id = sp.purchase_id
		WHERE sp.merchant_id = $1
		ORDER BY sp.payment_date DESC, sp.created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, merchantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list supplier payments: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.SupplierPayment, 0)
	for rows.Next() {
		var p entity.SupplierPayment
		if err := rows.Scan(&p.ID, &p.MerchantID, &p.SupplierID, &p.SupplierName, &p.PurchaseID,
			&p.InvoiceNumber, &p.Amount, &p.PaymentDate, &p.PaymentMethod,
			&p.ReferenceNumber, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier payment: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
