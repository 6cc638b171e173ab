package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/medstore-api/internal/application/dto"
	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
	"github.com/jhoicas/medstore-api/pkg/jwt"
)

const minPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro y login de comercios.
type AuthUseCase struct {
	merchantRepo repository.MerchantRepository
	jwtCfg       JWTConfig
	now          func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(merchantRepo repository.MerchantRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{merchantRepo: merchantRepo, jwtCfg: jwtCfg, now: time.Now}
}

// Register crea el comercio con la contraseña hasheada con bcrypt.
// Devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || strings.TrimSpace(in.StoreName) == "" || strings.TrimSpace(in.OwnerName) == "" {
		return nil, domain.Invalid("storeName, ownerName and email are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, domain.Invalid("password must be at least %d characters", minPasswordLength)
	}

	existing, err := uc.merchantRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup merchant: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := uc.now()
	m := &entity.Merchant{
		ID:            newMerchantID(now),
		StoreName:     strings.TrimSpace(in.StoreName),
		OwnerName:     strings.TrimSpace(in.OwnerName),
		Email:         email,
		PasswordHash:  string(hash),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		GSTNumber:     strings.ToUpper(strings.TrimSpace(in.GSTNumber)),
		LicenseNumber: strings.TrimSpace(in.LicenseNumber),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.merchantRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{MerchantID: m.ID, Message: "Merchant registered successfully"}, nil
}

// Login verifica credenciales y emite el JWT del comercio.
// Credenciales inválidas: domain.ErrUnauthorized. Comercio inactivo: domain.ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	m, err := uc.merchantRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, fmt.Errorf("lookup merchant: %w", err)
	}
	if m == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !m.IsActive {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, m.ID, m.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Merchant: toMerchantResponse(m)}, nil
}

// ActiveMerchant devuelve el comercio si existe y está activo; lo usa el middleware en cada request.
func (uc *AuthUseCase) ActiveMerchant(ctx context.Context, merchantID string) (*entity.Merchant, error) {
	m, err := uc.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, fmt.Errorf("lookup merchant: %w", err)
	}
	if m == nil {
		return nil, domain.ErrUnauthorized
	}
	if !m.IsActive {
		return nil, domain.ErrForbidden
	}
	return m, nil
}

// Profile devuelve los datos públicos del comercio.
func (uc *AuthUseCase) Profile(ctx context.Context, merchantID string) (*dto.MerchantResponse, error) {
	m, err := uc.ActiveMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	resp := toMerchantResponse(m)
	return &resp, nil
}

func newMerchantID(now time.Time) string {
	return fmt.Sprintf("MERCH%d%s", now.UnixMilli(), strings.ToUpper(uuid.NewString()[:4]))
}

func toMerchantResponse(m *entity.Merchant) dto.MerchantResponse {
	return dto.MerchantResponse{
		MerchantID:    m.ID,
		StoreName:     m.StoreName,
		OwnerName:     m.OwnerName,
		Email:         m.Email,
		Phone:         m.Phone,
		Address:       m.Address,
		GSTNumber:     m.GSTNumber,
		LicenseNumber: m.LicenseNumber,
		CreatedAt:     m.CreatedAt,
	}
}
