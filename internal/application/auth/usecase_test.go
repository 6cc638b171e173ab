package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/medstore-api/internal/application/auth"
	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/infrastructure/memory"
	"github.com/jhoicas/medstore-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(store *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Merchants(), auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "medstore-api"})
}

func register(t *testing.T, uc *auth.AuthUseCase, email string) string {
	t.Helper()
	resp, err := uc.Register(context.Background(), dto.RegisterRequest{
		StoreName: "City Pharmacy", OwnerName: "Asha", Email: email, Password: "secret1",
	})
	require.NoError(t, err)
	return resp.MerchantID
}

func TestRegisterAndLogin(t *testing.T) {
	store := memory.NewStore()
	uc := newAuth(store)

	id := register(t, uc, "Owner@City.in")
	assert.True(t, strings.HasPrefix(id, "MERCH"))

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: "owner@city.in", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, id, resp.Merchant.MerchantID)

	claims, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.MerchantID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc := newAuth(memory.NewStore())
	register(t, uc, "a@b.in")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{StoreName: "X", OwnerName: "Y", Email: "A@B.in", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_ShortPassword(t *testing.T) {
	uc := newAuth(memory.NewStore())

	_, err := uc.Register(context.Background(), dto.RegisterRequest{StoreName: "X", OwnerName: "Y", Email: "a@b.in", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_WrongPasswordAndUnknownEmail(t *testing.T) {
	uc := newAuth(memory.NewStore())
	register(t, uc, "a@b.in")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.in", Password: "nope"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "x@b.in", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestInactiveMerchant(t *testing.T) {
	store := memory.NewStore()
	uc := newAuth(store)
	id := register(t, uc, "a@b.in")
	store.Merchants().SetActive(id, false)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.in", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ActiveMerchant(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ActiveMerchant(context.Background(), "MERCH-missing")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
