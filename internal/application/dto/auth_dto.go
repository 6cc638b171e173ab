package dto

import "time"

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	StoreName     string `json:"storeName" validate:"required,max=255"`
	OwnerName     string `json:"ownerName" validate:"required,max=255"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	Phone         string `json:"phone,omitempty" validate:"omitempty,phone"`
	Address       string `json:"address,omitempty"`
	GSTNumber     string `json:"gstNumber,omitempty" validate:"omitempty,alphanum,max=15"`
	LicenseNumber string `json:"licenseNumber,omitempty" validate:"omitempty,max=100"`
}

// RegisterResponse respuesta del registro.
type RegisterResponse struct {
	MerchantID string `json:"merchantId"`
	Message    string `json:"message"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token y datos del comercio.
type LoginResponse struct {
	Token    string           `json:"token"`
	Merchant MerchantResponse `json:"merchant"`
}

// MerchantResponse comercio en respuestas (sin hash de contraseña).
type MerchantResponse struct {
	MerchantID    string    `json:"merchantId"`
	StoreName     string    `json:"storeName"`
	OwnerName     string    `json:"ownerName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	GSTNumber     string    `json:"gstNumber,omitempty"`
	LicenseNumber string    `json:"licenseNumber,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
