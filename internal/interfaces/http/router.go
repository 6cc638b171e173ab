package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/medstore-api/internal/application/auth"
	"github.com/jhoicas/medstore-api/internal/application/billing"
	"github.com/jhoicas/medstore-api/internal/application/inventory"
	"github.com/jhoicas/medstore-api/internal/application/purchasing"
	"github.com/jhoicas/medstore-api/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	InventoryUC    *inventory.InventoryUseCase
	BillingUC      *billing.CreateBillUseCase
	ReceiptUC      *billing.ReceiptUseCase
	PurchasingUC   *purchasing.PurchasingUseCase
	ReportsUC      *reports.ReportsUseCase
	Validator      *Validator
	JWTSecret      string
	UploadMaxBytes int64
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Validator)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (Bearer Token + comercio activo)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	protected.Get("/auth/me", authHandler.Me)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Validator, deps.UploadMaxBytes)
	inv := protected.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Post("/manual", inventoryHandler.AddManual)
	inv.Post("/excel", inventoryHandler.ImportExcel)
	inv.Get("/:itemId", inventoryHandler.Get)
	inv.Get("/:itemId/movements", inventoryHandler.Movements)

	// Facturas
	billHandler := NewBillHandler(deps.BillingUC, deps.ReceiptUC, deps.Validator)
	bills := protected.Group("/bills")
	bills.Post("/", billHandler.Create)
	bills.Get("/", billHandler.List)
	bills.Get("/:billId", billHandler.Get)
	bills.Get("/:billId/receipt", billHandler.Receipt)

	// Proveedores, compras y pagos
	purchasingHandler := NewPurchasingHandler(deps.PurchasingUC, deps.Validator)
	protected.Get("/suppliers", purchasingHandler.ListSuppliers)
	protected.Post("/suppliers", purchasingHandler.CreateSupplier)
	protected.Get("/purchases", purchasingHandler.ListPurchases)
	protected.Post("/purchases", purchasingHandler.CreatePurchase)
	protected.Get("/payments", purchasingHandler.ListPayments)
	protected.Post("/payments", purchasingHandler.CreatePayment)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportsUC)
	rep := protected.Group("/reports")
	rep.Get("/sales", reportHandler.Sales)
	rep.Get("/inventory", reportHandler.Inventory)
	rep.Get("/financial", reportHandler.Financial)
}
