package repository

import (
	"context"

	"github.com/jhoicas/medstore-api/internal/domain/entity"
)

// MerchantRepository puerto de comercios (tenants).
type MerchantRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
	Create(ctx context.Context, m *entity.Merchant) error
	GetByID(ctx context.Context, id string) (*entity.Merchant, error)
	GetByEmail(ctx context.Context, email string) (*entity.Merchant, error)
}
