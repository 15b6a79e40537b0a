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
	_ "github.com/rmelara/facturacion-sv/docs"
	appanalytics "github.com/rmelara/facturacion-sv/internal/application/analytics"
	"github.com/rmelara/facturacion-sv/internal/application/billing"
	"github.com/rmelara/facturacion-sv/internal/application/catalog"
	"github.com/rmelara/facturacion-sv/internal/application/inventory"
	infrapdf "github.com/rmelara/facturacion-sv/internal/infrastructure/pdf"
	"github.com/rmelara/facturacion-sv/internal/infrastructure/postgres"
	httpRouter "github.com/rmelara/facturacion-sv/internal/interfaces/http"
	"github.com/rmelara/facturacion-sv/pkg/config"
	"github.com/rmelara/facturacion-sv/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().Str("env", cfg.App.Env).Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	invoiceRepo := postgres.NewSalesInvoiceRepository(pool)
	purchaseRepo := postgres.NewPurchaseInvoiceRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledger := inventory.NewStockLedger(stockRepo)

	productUC := catalog.NewProductUseCase(productRepo, ledger, cfg.Billing.TaxRate)
	clientUC := catalog.NewClientUseCase(clientRepo)
	supplierUC := catalog.NewSupplierUseCase(supplierRepo)

	createInvoiceUC := billing.NewCreateSalesInvoiceUseCase(
		ledger, txRunner, clientRepo, productRepo, invoiceRepo, cfg.Billing.TaxRate,
	)
	createPurchaseUC := billing.NewCreatePurchaseInvoiceUseCase(
		ledger, txRunner, supplierRepo, productRepo, purchaseRepo,
	)

	issuer := billing.IssuerInfo{
		Name:    cfg.Company.Name,
		NIT:     cfg.Company.NIT,
		NRC:     cfg.Company.NRC,
		Giro:    cfg.Company.Giro,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
	}
	pdfGenerator := infrapdf.NewMarotoGenerator()
	pdfUC := billing.NewPDFUseCase(invoiceRepo, clientRepo, pdfGenerator, issuer, cfg.Billing.TaxRate)

	dashboardUC := appanalytics.NewDashboardUseCase(dashboardRepo, cfg.Billing.LowStockThreshold)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturación SV API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:      productUC,
		ClientUC:       clientUC,
		SupplierUC:     supplierUC,
		CreateInvoice:  createInvoiceUC,
		CreatePurchase: createPurchaseUC,
		PDFUC:          pdfUC,
		DashboardUC:    dashboardUC,
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
