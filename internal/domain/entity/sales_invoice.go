package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de venta.
const (
	DocTypeTicket    = "Ticket"
	DocTypeTaxCredit = "Credito Fiscal"
)

// Estados de una factura de venta.
const (
	InvoiceStatusActive = "activo"
	InvoiceStatusVoided = "anulado"
)

// SalesInvoice cabecera de una factura de venta.
// Una vez persistida es un registro de punto en el tiempo: los precios de sus
// líneas no cambian aunque el producto cambie de precio después.
type SalesInvoice struct {
	ID           string
	Number       string
	ClientID     string
	DocumentType string // Ticket | Credito Fiscal
	Date         time.Time
	Details      []SalesInvoiceDetail
	SubTotal     decimal.Decimal // total_sin_iva
	TaxTotal     decimal.Decimal // total_iva
	GrandTotal   decimal.Decimal // total_con_iva
	Status       string          // activo | anulado
	CreatedAt    time.Time
}

// SalesInvoiceDetail línea de una factura de venta. Valor propiedad exclusiva de
// la factura; el producto solo se referencia.
type SalesInvoiceDetail struct {
	ProductID   string
	Description string // snapshot del nombre del producto al facturar
	Quantity    int64
	UnitPrice   decimal.Decimal // snapshot del precio al facturar
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	Total       decimal.Decimal
}
