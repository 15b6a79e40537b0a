package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/productos.
// precio_venta no se acepta del cliente: siempre se deriva del costo.
type CreateProductRequest struct {
	Name        string          `json:"nombre" validate:"required"`
	Description string          `json:"descripcion"`
	Category    string          `json:"categoria"`
	Brand       string          `json:"marca"`
	Model       string          `json:"modelo"`
	SKU         string          `json:"sku"`
	UnitPrice   decimal.Decimal `json:"precio_unitario" validate:"required"`
	Stock       int64           `json:"stock" validate:"omitempty,min=0"`
	Location    string          `json:"ubicacion"`
}

// UpdateProductRequest body para PUT /api/productos/:id.
type UpdateProductRequest struct {
	Name        string           `json:"nombre"`
	Description string           `json:"descripcion"`
	Category    string           `json:"categoria"`
	Brand       string           `json:"marca"`
	Model       string           `json:"modelo"`
	UnitPrice   *decimal.Decimal `json:"precio_unitario"`
	Location    string           `json:"ubicacion"`
	Status      string           `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// StockCorrectionRequest body para PUT /api/productos/:id/stock (ajuste manual).
type StockCorrectionRequest struct {
	Stock int64 `json:"stock" validate:"min=0"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion,omitempty"`
	Category    string          `json:"categoria,omitempty"`
	Brand       string          `json:"marca,omitempty"`
	Model       string          `json:"modelo,omitempty"`
	SKU         string          `json:"sku,omitempty"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	SalePrice   decimal.Decimal `json:"precio_venta"`
	Stock       int64           `json:"stock"`
	Location    string          `json:"ubicacion,omitempty"`
	Status      string          `json:"estado"`
	EntryDate   time.Time       `json:"fecha_ingreso"`
}
