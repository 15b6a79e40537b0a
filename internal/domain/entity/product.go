package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados comunes de catálogo.
const (
	StatusActive   = "activo"
	StatusInactive = "inactivo"
)

// Product representa un producto del inventario.
// SalePrice se deriva del costo (UnitPrice × (1+IVA)) y se recalcula en cada
// escritura del costo, nunca de forma perezosa en lectura.
// Stock es un entero que jamás baja de cero; solo lo mutan los motores de
// factura (venta/compra) o la corrección manual administrativa.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Brand       string
	Model       string
	SKU         string
	UnitPrice   decimal.Decimal // costo unitario
	SalePrice   decimal.Decimal // precio de venta derivado (costo × 1.13)
	Stock       int64
	Location    string
	Status      string
	EntryDate   time.Time
}
