package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rmelara/facturacion-sv/internal/application/analytics"
	"github.com/rmelara/facturacion-sv/internal/application/billing"
	"github.com/rmelara/facturacion-sv/internal/application/catalog"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *catalog.ProductUseCase
	ClientUC       *catalog.ClientUseCase
	SupplierUC     *catalog.SupplierUseCase
	CreateInvoice  *billing.CreateSalesInvoiceUseCase
	CreatePurchase *billing.CreatePurchaseInvoiceUseCase
	PDFUC          *billing.PDFUseCase
	DashboardUC    *analytics.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Productos
	products := api.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Put("/:id/stock", productHandler.CorrectStock)

	// Clientes
	clients := api.Group("/clientes")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)

	// Proveedores
	suppliers := api.Group("/proveedores")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Facturas de venta
	invoices := api.Group("/facturas")
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id/anular", invoiceHandler.Void)
	invoices.Get("/:id/pdf", invoiceHandler.RenderPDF)
	invoices.Get("/:id/ticket", invoiceHandler.RenderTicket)

	// Facturas de compra
	purchases := api.Group("/compras")
	purchaseHandler := NewPurchaseHandler(deps.CreatePurchase)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/resumen", dashboardHandler.Summary)
}
