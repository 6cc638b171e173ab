package entity

import "time"

// Merchant es la tienda (tenant). Todo dato de inventario, facturación y compras cuelga de MerchantID.
type Merchant struct {
	ID            string // MERCH<unix ms><sufijo>
	StoreName     string
	OwnerName     string
	Email         string
	PasswordHash  string
	Phone         string
	Address       string
	GSTNumber     string
	LicenseNumber string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
