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

var _ repository.MerchantRepository = (*MerchantRepo)(nil)

// MerchantRepo implementación de MerchantRepository sobre PostgreSQL.
type MerchantRepo struct {
	q Querier
}

// NewMerchantRepository construye el repositorio. Pasar pool o tx.
func NewMerchantRepository(q Querier) *MerchantRepo {
	return &MerchantRepo{q: q}
}

const merchantColumns = `merchant_id, store_name, owner_name, email, password_hash, phone, address,
	gst_number, license_number, is_active, created_at, updated_at`

func (r *MerchantRepo) Create(ctx context.Context, m *entity.Merchant) error {
	query := `
		INSERT INTO merchants (` + merchantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.StoreName, m.OwnerName, m.Email, m.PasswordHash, m.Phone, m.Address,
		m.GSTNumber, m.LicenseNumber, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create merchant: %w", err)
	}
	return nil
}

func (r *MerchantRepo) GetByID(ctx context.Context, id string) (*entity.Merchant, error) {
	return r.getOne(ctx, `SELECT `+merchantColumns+` FROM merchants WHERE merchant_id = $1`, id)
}

func (r *MerchantRepo) GetByEmail(ctx context.Context, email string) (*entity.Merchant, error) {
	return r.getOne(ctx, `SELECT `+merchantColumns+` FROM merchants WHERE lower(email) = lower($1)`, email)
}

func (r *MerchantRepo) getOne(ctx context.Context, query string, arg string) (*entity.Merchant, error) {
	var m entity.Merchant
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.StoreName, &m.OwnerName, &m.Email, &m.PasswordHash, &m.Phone, &m.Address,
		&m.GSTNumber, &m.LicenseNumber, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get merchant: %w", err)
	}
	return &m, nil
}
