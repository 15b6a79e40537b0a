package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSalesInvoiceRequest body para POST /api/facturas.
// El precio NO viene del cliente: se toma como snapshot del catálogo al
// momento de facturar.
type CreateSalesInvoiceRequest struct {
	ClientID     string             `json:"cliente" validate:"required"`
	DocumentType string             `json:"tipo_documento" validate:"required,oneof=Ticket 'Credito Fiscal'"`
	Lines        []SalesLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// SalesLineRequest línea solicitada: producto y cantidad.
type SalesLineRequest struct {
	ProductID string `json:"producto" validate:"required"`
	Quantity  int64  `json:"cantidad" validate:"required,min=1"`
}

// SalesInvoiceResponse factura de venta con su detalle.
type SalesInvoiceResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"numero"`
	ClientID     string              `json:"cliente"`
	ClientName   string              `json:"cliente_nombre,omitempty"`
	DocumentType string              `json:"tipo_documento"`
	Date         time.Time           `json:"fecha"`
	Details      []SalesLineResponse `json:"detalles"`
	SubTotal     decimal.Decimal     `json:"total_sin_iva"`
	TaxTotal     decimal.Decimal     `json:"total_iva"`
	GrandTotal   decimal.Decimal     `json:"total_con_iva"`
	Status       string              `json:"estado"`
}

// SalesLineResponse línea de detalle en la respuesta, con los snapshots
// tomados al facturar.
type SalesLineResponse struct {
	ProductID   string          `json:"producto"`
	Description string          `json:"descripcion"`
	Quantity    int64           `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"iva"`
	Total       decimal.Decimal `json:"total"`
}
