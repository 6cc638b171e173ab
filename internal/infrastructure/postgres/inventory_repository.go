package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `merchant_id, item_id, item_name, category, quantity, price, gst_rate,
	batch_number, expiry_date, manufacturer, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(
		&it.MerchantID, &it.ItemID, &it.Name, &it.Category, &it.Quantity, &it.Price, &it.GSTRate,
		&it.BatchNumber, &it.ExpiryDate, &it.Manufacturer, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *InventoryRepo) getOne(ctx context.Context, query string, args ...any) (*entity.InventoryItem, error) {
	it, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return it, nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, merchantID, itemID string) (*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE merchant_id = $1 AND item_id = $2`
	return r.getOne(ctx, query, merchantID, itemID)
}

// GetForUpdate obtiene el item y bloquea la fila (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, merchantID, itemID string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE merchant_id = $1 AND item_id = $2
		FOR UPDATE`
	return r.getOne(ctx, query, merchantID, itemID)
}

func (r *InventoryRepo) GetByNameForUpdate(ctx context.Context, merchantID, name string) (*entity.InventoryItem, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE merchant_id = $1 AND lower(item_name) = lower($2)
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE`
	return r.getOne(ctx, query, merchantID, name)
}

func (r *InventoryRepo) Create(ctx context.Context, it *entity.InventoryItem) error {
	query := `
		INSERT INTO inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		it.MerchantID, it.ItemID, it.Name, it.Category, it.Quantity, it.Price, it.GSTRate,
		it.BatchNumber, it.ExpiryDate, it.Manufacturer, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

func (r *InventoryRepo) AddStock(ctx context.Context, merchantID, itemID string, qty int) error {
	query := `
		UPDATE inventory SET quantity = quantity + $3, updated_at = now()
		WHERE merchant_id = $1 AND item_id = $2`
	tag, err := r.q.Exec(ctx, query, merchantID, itemID, qty)
	if err != nil {
		return fmt.Errorf("add stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewItemNotFound(itemID)
	}
	return nil
}

func (r *InventoryRepo) UpdatePricing(ctx context.Context, merchantID, itemID string, price, gstRate decimal.Decimal) error {
	query := `
		UPDATE inventory SET price = $3, gst_rate = $4, updated_at = now()
		WHERE merchant_id = $1 AND item_id = $2`
	tag, err := r.q.Exec(ctx, query, merchantID, itemID, price, gstRate)
	if err != nil {
		return fmt.Errorf("update pricing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewItemNotFound(itemID)
	}
	return nil
}

// DecrementIfAvailable descuenta qty en una sola sentencia condicionada a quantity >= qty.
// Cero filas afectadas significa stock insuficiente (o item inexistente).
func (r *InventoryRepo) DecrementIfAvailable(ctx context.Context, merchantID, itemID string, qty int) (bool, error) {
	query := `
		UPDATE inventory SET quantity = quantity - $3, updated_at = now()
		WHERE merchant_id = $1 AND item_id = $2 AND quantity >= $3`
	tag, err := r.q.Exec(ctx, query, merchantID, itemID, qty)
	if err != nil {
		if isCheckViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *InventoryRepo) ListByMerchant(ctx context.Context, merchantID string) ([]*entity.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE merchant_id = $1 ORDER BY category, item_name`
	return queryItems(ctx, r.q, query, merchantID)
}

func queryItems(ctx context.Context, q Querier, query string, args ...any) ([]*entity.InventoryItem, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.InventoryItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
