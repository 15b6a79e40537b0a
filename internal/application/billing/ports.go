package billing

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/rmelara/facturacion-sv/internal/domain/entity"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

// Ledger puerto hacia el libro de inventario. Ambas operaciones son atómicas
// por producto; la compensación ante fallas parciales es responsabilidad de
// los motores de factura.
type Ledger interface {
	ReserveAndDeduct(ctx context.Context, productID string, qty int64) (int64, error)
	Replenish(ctx context.Context, productID string, qty int64) (int64, error)
}

// SalesTxRunner persiste una factura de venta (cabecera + detalles) dentro de
// una transacción, pasando un repositorio atado a esa tx.
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(repo repository.SalesInvoiceRepository) error) error
}

// PurchaseTxRunner análogo para facturas de compra.
type PurchaseTxRunner interface {
	RunPurchases(ctx context.Context, fn func(repo repository.PurchaseInvoiceRepository) error) error
}

// IssuerInfo identidad del emisor que se imprime en los documentos.
type IssuerInfo struct {
	Name    string
	NIT     string
	NRC     string
	Giro    string
	Address string
	Phone   string
	Email   string
}

// InvoiceDocumentData todo lo que el generador necesita para dibujar una
// representación (factura A4 o ticket). Es un snapshot: el generador no
// vuelve a tocar la base.
type InvoiceDocumentData struct {
	Invoice *entity.SalesInvoice
	Client  *entity.Client
	Issuer  IssuerInfo
	TaxRate decimal.Decimal // fracción (0.13); las etiquetas de IVA se arman de aquí
	Codigo  string          // código de generación
	QRData  string          // payload del QR
}

// DocumentGenerator puerto hacia el motor de renderizado de documentos.
// Ambas representaciones son funciones puras del snapshot; pueden invocarse
// cualquier número de veces para la misma factura.
type DocumentGenerator interface {
	GenerateInvoicePDF(ctx context.Context, data *InvoiceDocumentData) ([]byte, error)
	GenerateTicketPDF(ctx context.Context, data *InvoiceDocumentData) ([]byte, error)
}
