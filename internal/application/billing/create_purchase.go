package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/rmelara/facturacion-sv/internal/application/dto"
	"github.com/rmelara/facturacion-sv/internal/domain"
	"github.com/rmelara/facturacion-sv/internal/domain/entity"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

// CreatePurchaseInvoiceUseCase motor de facturas de compra: registra la
// entrega de un proveedor, repone stock por línea y persiste la factura con
// los montos declarados por el proveedor (no se recalculan del catálogo).
//
// Espejo del motor de ventas: si la persistencia falla tras reponer, cada
// reposición aplicada se revierte con un descuento compensatorio. La unicidad
// del número externo se verifica ANTES de mover inventario.
type CreatePurchaseInvoiceUseCase struct {
	ledger       Ledger
	txRunner     PurchaseTxRunner
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseInvoiceRepository
}

// NewCreatePurchaseInvoiceUseCase construye el motor de compras.
func NewCreatePurchaseInvoiceUseCase(
	ledger Ledger,
	txRunner PurchaseTxRunner,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseInvoiceRepository,
) *CreatePurchaseInvoiceUseCase {
	return &CreatePurchaseInvoiceUseCase{
		ledger:       ledger,
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
	}
}

// PostPurchaseInvoice registra la compra y repone inventario.
func (uc *CreatePurchaseInvoiceUseCase) PostPurchaseInvoice(ctx context.Context, in dto.CreatePurchaseInvoiceRequest) (*dto.PurchaseInvoiceResponse, error) {
	if in.SupplierID == "" || in.Number == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Kind != entity.PurchaseKindTaxCredit && in.Kind != entity.PurchaseKindFinalConsumer {
		return nil, domain.ErrInvalidInput
	}
	switch in.PaymentTerms {
	case entity.PaymentCash, entity.PaymentTransfer, entity.PaymentCheck:
		// fecha_vencimiento no aplica fuera de crédito; se descarta si vino
		in.DueDate = nil
	case entity.PaymentCredit:
		if in.DueDate == nil {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Lines {
		if line.ProductID == "" || line.Quantity < 1 || line.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("obtener proveedor: %w", err)
	}
	if supplier == nil {
		return nil, &domain.NotFoundError{Resource: "proveedor", ID: in.SupplierID}
	}

	// Unicidad del número externo antes de cualquier mutación de stock: un
	// rechazo por duplicado con inventario ya movido no tiene reversa limpia.
	exists, err := uc.purchaseRepo.ExistsByNumber(in.Number)
	if err != nil {
		return nil, fmt.Errorf("verificar número de factura: %w", err)
	}
	if exists {
		return nil, &domain.DuplicateInvoiceNumberError{Number: in.Number}
	}

	now := time.Now()
	var (
		applied    []appliedDeduction // reposiciones aplicadas, por si hay que revertir
		details    []entity.PurchaseInvoiceDetail
		subTotal   decimal.Decimal
		taxTotal   decimal.Decimal
		grandTotal decimal.Decimal
	)

	for _, line := range in.Lines {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			uc.compensateReplenishments(ctx, applied)
			return nil, fmt.Errorf("obtener producto %s: %w", line.ProductID, err)
		}
		if product == nil {
			uc.compensateReplenishments(ctx, applied)
			return nil, &domain.NotFoundError{Resource: "producto", ID: line.ProductID}
		}

		if _, err := uc.ledger.Replenish(ctx, line.ProductID, line.Quantity); err != nil {
			uc.compensateReplenishments(ctx, applied)
			return nil, err
		}
		applied = append(applied, appliedDeduction{productID: line.ProductID, quantity: line.Quantity})

		// Montos declarados por el proveedor, acumulados tal cual
		subTotal = subTotal.Add(line.UnitCost.Mul(decimal.NewFromInt(line.Quantity)))
		taxTotal = taxTotal.Add(line.Tax)
		grandTotal = grandTotal.Add(line.Total)
		details = append(details, entity.PurchaseInvoiceDetail{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
			Tax:       line.Tax,
			Total:     line.Total,
		})
	}

	inv := &entity.PurchaseInvoice{
		ID:              uuid.New().String(),
		Number:          in.Number,
		Kind:            in.Kind,
		SupplierID:      in.SupplierID,
		Date:            now,
		ControlNumber:   in.ControlNumber,
		PaymentTerms:    in.PaymentTerms,
		DueDate:         in.DueDate,
		InventoryPosted: true,
		Details:         details,
		SubTotal:        subTotal,
		TaxTotal:        taxTotal,
		GrandTotal:      grandTotal,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = uc.txRunner.RunPurchases(ctx, func(repo repository.PurchaseInvoiceRepository) error {
		return repo.Create(inv)
	})
	if err != nil {
		uc.compensateReplenishments(ctx, applied)
		return nil, fmt.Errorf("persistir factura de compra: %w", err)
	}

	return toPurchaseResponse(inv, supplier.Name), nil
}

// compensateReplenishments revierte cada reposición aplicada descontándola.
// Si el stock repuesto ya fue vendido a medio vuelo, el descuento condicional
// falla; se registra para corrección manual en vez de dejar stock negativo.
func (uc *CreatePurchaseInvoiceUseCase) compensateReplenishments(ctx context.Context, applied []appliedDeduction) {
	for i := len(applied) - 1; i >= 0; i-- {
		d := applied[i]
		if _, err := uc.ledger.ReserveAndDeduct(ctx, d.productID, d.quantity); err != nil {
			log.Error().Err(err).
				Str("producto", d.productID).
				Int64("cantidad", d.quantity).
				Msg("reversa de reposición fallida; requiere corrección manual")
		}
	}
}

// GetPurchase obtiene una factura de compra con su detalle.
func (uc *CreatePurchaseInvoiceUseCase) GetPurchase(ctx context.Context, id string) (*dto.PurchaseInvoiceResponse, error) {
	inv, err := uc.purchaseRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("obtener compra: %w", err)
	}
	if inv == nil {
		return nil, &domain.NotFoundError{Resource: "factura de compra", ID: id}
	}
	supplierName := ""
	if supplier, err := uc.supplierRepo.GetByID(inv.SupplierID); err == nil && supplier != nil {
		supplierName = supplier.Name
	}
	return toPurchaseResponse(inv, supplierName), nil
}

// ListPurchases historial de compras con filtros de proveedor y fechas.
func (uc *CreatePurchaseInvoiceUseCase) ListPurchases(ctx context.Context, filter repository.PurchaseInvoiceFilter, limit, offset int) ([]dto.PurchaseInvoiceResponse, error) {
	invoices, err := uc.purchaseRepo.List(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar compras: %w", err)
	}
	out := make([]dto.PurchaseInvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, *toPurchaseResponse(inv, ""))
	}
	return out, nil
}

func toPurchaseResponse(inv *entity.PurchaseInvoice, supplierName string) *dto.PurchaseInvoiceResponse {
	resp := &dto.PurchaseInvoiceResponse{
		ID:              inv.ID,
		Number:          inv.Number,
		Kind:            inv.Kind,
		SupplierID:      inv.SupplierID,
		SupplierName:    supplierName,
		Date:            inv.Date,
		ControlNumber:   inv.ControlNumber,
		PaymentTerms:    inv.PaymentTerms,
		DueDate:         inv.DueDate,
		InventoryPosted: inv.InventoryPosted,
		Details:         make([]dto.PurchaseLineResponse, 0, len(inv.Details)),
		SubTotal:        inv.SubTotal,
		TaxTotal:        inv.TaxTotal,
		GrandTotal:      inv.GrandTotal,
		Notes:           inv.Notes,
	}
	for _, d := range inv.Details {
		resp.Details = append(resp.Details, dto.PurchaseLineResponse{
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitCost:  d.UnitCost,
			Tax:       d.Tax,
			Total:     d.Total,
		})
	}
	return resp
}
