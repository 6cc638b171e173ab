package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/medstore-api/internal/application/auth"
	"github.com/jhoicas/medstore-api/internal/application/billing"
	"github.com/jhoicas/medstore-api/internal/application/inventory"
	"github.com/jhoicas/medstore-api/internal/application/purchasing"
	"github.com/jhoicas/medstore-api/internal/application/reports"
	"github.com/jhoicas/medstore-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/medstore-api/internal/infrastructure/pdf"
	"github.com/jhoicas/medstore-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/medstore-api/internal/interfaces/http"
	"github.com/jhoicas/medstore-api/pkg/config"
	"github.com/jhoicas/medstore-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.App.MigrateOnStart {
		version, err := postgres.Migrate(cfg.DB.ConnectionString(), false)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Uint("version", version).Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	merchantRepo := postgres.NewMerchantRepository(pool)
	itemRepo := postgres.NewInventoryRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	paymentRepo := postgres.NewSupplierPaymentRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(merchantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	inventoryUC := inventory.NewInventoryUseCase(
		txRunner, itemRepo, movementRepo, excel.NewReader(),
		cfg.Billing.DefaultGSTRate, log.Component("inventory"),
	)
	billingUC := billing.NewCreateBillUseCase(txRunner, billRepo, log.Component("billing"))

	// PDF: recibo imprimible de la factura
	receiptUC := billing.NewReceiptUseCase(billRepo, merchantRepo, infrapdf.NewReceiptGenerator())

	purchasingUC := purchasing.NewPurchasingUseCase(
		txRunner, supplierRepo, purchaseRepo, paymentRepo,
		cfg.Billing.DefaultGSTRate, log.Component("purchasing"),
	)
	reportsUC := reports.NewReportsUseCase(reportRepo, paymentRepo, cfg.Inventory.LowStockThreshold)

	uploadMax := int64(cfg.HTTP.UploadMaxMB) << 20
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    int(uploadMax) + 1<<20,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "MedStore API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		InventoryUC:    inventoryUC,
		BillingUC:      billingUC,
		ReceiptUC:      receiptUC,
		PurchasingUC:   purchasingUC,
		ReportsUC:      reportsUC,
		Validator:      httpRouter.NewValidator(cfg.Billing.PhoneRegion),
		JWTSecret:      cfg.JWT.Secret,
		UploadMaxBytes: uploadMax,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
