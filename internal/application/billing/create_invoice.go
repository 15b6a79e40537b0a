// Package billing contiene los motores de factura: venta (descuenta stock) y
// compra (repone stock), ambos con compensación explícita ante fallas
// parciales, más la generación de documentos.
package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/rmelara/facturacion-sv/internal/application/dto"
	"github.com/rmelara/facturacion-sv/internal/domain"
	domainbilling "github.com/rmelara/facturacion-sv/internal/domain/billing"
	"github.com/rmelara/facturacion-sv/internal/domain/entity"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

// CreateSalesInvoiceUseCase motor de facturas de venta: pone precio a cada
// línea, reserva y descuenta stock producto por producto, calcula IVA y
// totales, y persiste la factura como registro inmutable.
//
// La propiedad central es todo-o-nada sobre el stock: si cualquier línea
// falla (producto inexistente o stock insuficiente), o si la persistencia
// falla tras descontar, cada descuento ya aplicado se revierte con una
// reposición compensatoria. Nunca queda una factura sin su stock ni stock
// comprometido sin su factura.
type CreateSalesInvoiceUseCase struct {
	ledger      Ledger
	txRunner    SalesTxRunner
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	invoiceRepo repository.SalesInvoiceRepository
	taxRate     decimal.Decimal
}

// NewCreateSalesInvoiceUseCase construye el motor de ventas.
func NewCreateSalesInvoiceUseCase(
	ledger Ledger,
	txRunner SalesTxRunner,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.SalesInvoiceRepository,
	taxRate decimal.Decimal,
) *CreateSalesInvoiceUseCase {
	return &CreateSalesInvoiceUseCase{
		ledger:      ledger,
		txRunner:    txRunner,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		taxRate:     taxRate,
	}
}

// appliedDeduction descuento ya aplicado, pendiente de reversión si algo
// posterior falla en la misma operación.
type appliedDeduction struct {
	productID string
	quantity  int64
}

// PostSalesInvoice crea la factura. Ver el contrato de compensación en el
// comentario del tipo.
func (uc *CreateSalesInvoiceUseCase) PostSalesInvoice(ctx context.Context, in dto.CreateSalesInvoiceRequest) (*dto.SalesInvoiceResponse, error) {
	if in.ClientID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.DocumentType != entity.DocTypeTicket && in.DocumentType != entity.DocTypeTaxCredit {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || line.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}

	// Cliente (solo lectura, falla rápido sin efectos)
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if client == nil || client.Status != entity.StatusActive {
		return nil, &domain.NotFoundError{Resource: "cliente", ID: in.ClientID}
	}

	now := time.Now()
	var (
		applied []appliedDeduction
		details []entity.SalesInvoiceDetail
	)

	// Reservar y descontar línea por línea. Ante la primera falla se revierte
	// todo lo aplicado: ninguna factura parcial retiene stock parcial.
	for _, line := range in.Lines {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			uc.compensateDeductions(ctx, applied)
			return nil, fmt.Errorf("obtener producto %s: %w", line.ProductID, err)
		}
		if product == nil || product.Status != entity.StatusActive {
			uc.compensateDeductions(ctx, applied)
			return nil, &domain.NotFoundError{Resource: "producto", ID: line.ProductID}
		}

		if _, err := uc.ledger.ReserveAndDeduct(ctx, line.ProductID, line.Quantity); err != nil {
			uc.compensateDeductions(ctx, applied)
			return nil, err
		}
		applied = append(applied, appliedDeduction{productID: line.ProductID, quantity: line.Quantity})

		// Snapshot de nombre y precio al momento de reservar; el detalle queda
		// congelado aunque el producto cambie después.
		subtotal, tax, total := domainbilling.LineAmounts(product.UnitPrice, line.Quantity, uc.taxRate)
		details = append(details, entity.SalesInvoiceDetail{
			ProductID:   product.ID,
			Description: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.UnitPrice,
			Subtotal:    subtotal,
			Tax:         tax,
			Total:       total,
		})
	}

	var subTotal, taxTotal, grandTotal decimal.Decimal
	for _, d := range details {
		subTotal = subTotal.Add(d.Subtotal)
		taxTotal = taxTotal.Add(d.Tax)
		grandTotal = grandTotal.Add(d.Total)
	}

	invoiceID := uuid.New().String()
	inv := &entity.SalesInvoice{
		ID:           invoiceID,
		Number:       invoiceNumber(in.DocumentType, now, invoiceID),
		ClientID:     in.ClientID,
		DocumentType: in.DocumentType,
		Date:         now,
		Details:      details,
		SubTotal:     subTotal,
		TaxTotal:     taxTotal,
		GrandTotal:   grandTotal,
		Status:       entity.InvoiceStatusActive,
		CreatedAt:    now,
	}

	// Persistencia atómica de cabecera + detalles. Si falla, el stock ya
	// descontado se repone completo: sin factura no hay compromiso de stock.
	err = uc.txRunner.RunSales(ctx, func(repo repository.SalesInvoiceRepository) error {
		return repo.Create(inv)
	})
	if err != nil {
		uc.compensateDeductions(ctx, applied)
		return nil, fmt.Errorf("persistir factura: %w", err)
	}

	return toSalesResponse(inv, client.Name), nil
}

// compensateDeductions repone cada descuento aplicado, en orden inverso.
// Una reposición fallida se registra pero no detiene las demás.
func (uc *CreateSalesInvoiceUseCase) compensateDeductions(ctx context.Context, applied []appliedDeduction) {
	for i := len(applied) - 1; i >= 0; i-- {
		d := applied[i]
		if _, err := uc.ledger.Replenish(ctx, d.productID, d.quantity); err != nil {
			log.Error().Err(err).
				Str("producto", d.productID).
				Int64("cantidad", d.quantity).
				Msg("compensación de stock fallida; requiere corrección manual")
		}
	}
}

// invoiceNumber número de documento: prefijo por tipo + epoch de emisión +
// sufijo tomado del UUID de la factura. El epoch por sí solo colisiona cuando
// dos facturas se emiten en el mismo segundo; el sufijo lo hace único.
func invoiceNumber(docType string, now time.Time, invoiceID string) string {
	prefix := "TCK"
	if docType == entity.DocTypeTaxCredit {
		prefix = "CCF"
	}
	suffix := strings.ToUpper(strings.ReplaceAll(invoiceID, "-", ""))
	if len(suffix) > 8 {
		suffix = suffix[:8]
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.Unix(), suffix)
}

// GetInvoice obtiene una factura por ID con su detalle completo. Las facturas
// anuladas siguen siendo recuperables individualmente.
func (uc *CreateSalesInvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.SalesInvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, &domain.NotFoundError{Resource: "factura", ID: id}
	}
	clientName := ""
	if client, err := uc.clientRepo.GetByID(inv.ClientID); err == nil && client != nil {
		clientName = client.Name
	}
	return toSalesResponse(inv, clientName), nil
}

// ListInvoices lista facturas con filtros opcionales de cliente y rango de fechas.
func (uc *CreateSalesInvoiceUseCase) ListInvoices(ctx context.Context, filter repository.SalesInvoiceFilter, limit, offset int) ([]dto.SalesInvoiceResponse, error) {
	invoices, err := uc.invoiceRepo.List(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	out := make([]dto.SalesInvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, *toSalesResponse(inv, ""))
	}
	return out, nil
}

// VoidInvoice marca la factura como anulada. No repone stock: una devolución
// física se registra aparte con la corrección manual de inventario.
func (uc *CreateSalesInvoiceUseCase) VoidInvoice(ctx context.Context, id string) error {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return &domain.NotFoundError{Resource: "factura", ID: id}
	}
	if inv.Status == entity.InvoiceStatusVoided {
		return domain.ErrConflict
	}
	if err := uc.invoiceRepo.UpdateStatus(id, entity.InvoiceStatusVoided); err != nil {
		return fmt.Errorf("anular factura: %w", err)
	}
	return nil
}

func toSalesResponse(inv *entity.SalesInvoice, clientName string) *dto.SalesInvoiceResponse {
	resp := &dto.SalesInvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		ClientID:     inv.ClientID,
		ClientName:   clientName,
		DocumentType: inv.DocumentType,
		Date:         inv.Date,
		Details:      make([]dto.SalesLineResponse, 0, len(inv.Details)),
		SubTotal:     inv.SubTotal,
		TaxTotal:     inv.TaxTotal,
		GrandTotal:   inv.GrandTotal,
		Status:       inv.Status,
	}
	for _, d := range inv.Details {
		resp.Details = append(resp.Details, dto.SalesLineResponse{
			ProductID:   d.ProductID,
			Description: d.Description,
			Quantity:    d.Quantity,
			UnitPrice:   d.UnitPrice,
			Subtotal:    d.Subtotal,
			Tax:         d.Tax,
			Total:       d.Total,
		})
	}
	return resp
}
