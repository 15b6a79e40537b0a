package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseInvoiceRequest body para POST /api/compras.
// Los montos por línea son los declarados por el proveedor y se confían tal
// cual. fecha_vencimiento solo se toma en cuenta cuando forma_pago es Crédito.
type CreatePurchaseInvoiceRequest struct {
	SupplierID    string                `json:"proveedor" validate:"required"`
	Number        string                `json:"numero_factura" validate:"required"`
	Kind          string                `json:"tipo_factura" validate:"required,oneof='Crédito Fiscal' 'Consumidor Final'"`
	ControlNumber string                `json:"numero_control"`
	PaymentTerms  string                `json:"forma_pago" validate:"required,oneof=Efectivo Transferencia Cheque Crédito"`
	DueDate       *time.Time            `json:"fecha_vencimiento"`
	Notes         string                `json:"observaciones"`
	Lines         []PurchaseLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// PurchaseLineRequest línea de compra con montos declarados por el proveedor.
type PurchaseLineRequest struct {
	ProductID string          `json:"producto" validate:"required"`
	Quantity  int64           `json:"cantidad" validate:"required,min=1"`
	UnitCost  decimal.Decimal `json:"precio_unitario" validate:"required"`
	Tax       decimal.Decimal `json:"iva"`
	Total     decimal.Decimal `json:"total" validate:"required"`
}

// PurchaseInvoiceResponse factura de compra con su detalle.
type PurchaseInvoiceResponse struct {
	ID              string                 `json:"id"`
	Number          string                 `json:"numero_factura"`
	Kind            string                 `json:"tipo_factura"`
	SupplierID      string                 `json:"proveedor"`
	SupplierName    string                 `json:"proveedor_nombre,omitempty"`
	Date            time.Time              `json:"fecha"`
	ControlNumber   string                 `json:"numero_control,omitempty"`
	PaymentTerms    string                 `json:"forma_pago"`
	DueDate         *time.Time             `json:"fecha_vencimiento,omitempty"`
	InventoryPosted bool                   `json:"inventario_ingresado"`
	Details         []PurchaseLineResponse `json:"detalles"`
	SubTotal        decimal.Decimal        `json:"total_sin_iva"`
	TaxTotal        decimal.Decimal        `json:"total_iva"`
	GrandTotal      decimal.Decimal        `json:"total_con_iva"`
	Notes           string                 `json:"observaciones,omitempty"`
}

// PurchaseLineResponse línea de compra en la respuesta.
type PurchaseLineResponse struct {
	ProductID string          `json:"producto"`
	Quantity  int64           `json:"cantidad"`
	UnitCost  decimal.Decimal `json:"precio_unitario"`
	Tax       decimal.Decimal `json:"iva"`
	Total     decimal.Decimal `json:"total"`
}
