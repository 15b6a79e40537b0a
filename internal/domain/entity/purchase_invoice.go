package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de factura de compra.
const (
	PurchaseKindTaxCredit     = "Crédito Fiscal"
	PurchaseKindFinalConsumer = "Consumidor Final"
)

// Formas de pago de una compra.
const (
	PaymentCash     = "Efectivo"
	PaymentTransfer = "Transferencia"
	PaymentCheck    = "Cheque"
	PaymentCredit   = "Crédito"
)

// PurchaseInvoice factura de compra a proveedor.
// Number es el número de factura externo del proveedor, único en todo el
// histórico. DueDate solo tiene sentido cuando PaymentTerms es Crédito.
type PurchaseInvoice struct {
	ID              string
	Number          string // numero_factura del proveedor
	Kind            string // Crédito Fiscal | Consumidor Final
	SupplierID      string
	Date            time.Time
	ControlNumber   string
	PaymentTerms    string // Efectivo | Transferencia | Cheque | Crédito
	DueDate         *time.Time
	InventoryPosted bool
	Details         []PurchaseInvoiceDetail
	SubTotal        decimal.Decimal
	TaxTotal        decimal.Decimal
	GrandTotal      decimal.Decimal
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PurchaseInvoiceDetail línea de compra. Los montos son los declarados por el
// proveedor; no se recalculan contra el catálogo.
type PurchaseInvoiceDetail struct {
	ProductID string
	Quantity  int64
	UnitCost  decimal.Decimal
	Tax       decimal.Decimal
	Total     decimal.Decimal
}
