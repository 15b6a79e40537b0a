package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/rmelara/facturacion-sv/internal/domain"
	"github.com/rmelara/facturacion-sv/internal/domain/dte"
	"github.com/rmelara/facturacion-sv/internal/domain/entity"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

// PDFUseCase genera las dos representaciones impresas de una factura de venta:
// la factura de página completa y el ticket angosto. Ambas son lecturas puras
// del registro persistido; se generan bajo demanda y nunca se almacenan.
type PDFUseCase struct {
	invoiceRepo repository.SalesInvoiceRepository
	clientRepo  repository.ClientRepository
	generator   DocumentGenerator
	issuer      IssuerInfo
	taxRate     decimal.Decimal
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.SalesInvoiceRepository,
	clientRepo repository.ClientRepository,
	generator DocumentGenerator,
	issuer IssuerInfo,
	taxRate decimal.Decimal,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		generator:   generator,
		issuer:      issuer,
		taxRate:     taxRate,
	}
}

// RenderFull genera la factura A4. Retorna los bytes del PDF y el nombre de
// archivo sugerido.
func (uc *PDFUseCase) RenderFull(ctx context.Context, invoiceID string) ([]byte, string, error) {
	data, err := uc.load(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", data.Invoice.Number), nil
}

// RenderReceipt genera el ticket de 80 mm.
func (uc *PDFUseCase) RenderReceipt(ctx context.Context, invoiceID string) ([]byte, string, error) {
	data, err := uc.load(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateTicketPDF(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("ticket_%s.pdf", data.Invoice.Number), nil
}

// load arma el snapshot para el generador. Una factura anulada también se
// renderiza (el layout le estampa la marca ANULADA); solo la inexistente falla.
func (uc *PDFUseCase) load(ctx context.Context, invoiceID string) (*InvoiceDocumentData, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, &domain.NotFoundError{Resource: "factura", ID: invoiceID}
	}

	client, err := uc.clientRepo.GetByID(inv.ClientID)
	if err != nil {
		return nil, fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if client == nil {
		// El documento se emite igual; el bloque de cliente queda con guiones.
		client = &entity.Client{ID: inv.ClientID}
	}

	codigo := dte.CodigoGeneracion(inv.ID, inv.Date)
	return &InvoiceDocumentData{
		Invoice: inv,
		Client:  client,
		Issuer:  uc.issuer,
		TaxRate: uc.taxRate,
		Codigo:  codigo,
		QRData:  dte.BuildQRData(inv.Number, inv.Date, inv.GrandTotal, codigo),
	}, nil
}
