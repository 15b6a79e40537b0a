package repository

import (
	"time"

	"github.com/rmelara/facturacion-sv/internal/domain/entity"
)

// SalesInvoiceFilter filtros opcionales del historial de ventas.
type SalesInvoiceFilter struct {
	ClientID string
	From     *time.Time
	To       *time.Time
	Status   string
}

// SalesInvoiceRepository puerto de persistencia de facturas de venta.
// Create persiste cabecera y líneas juntas; el detalle no tiene ciclo de vida
// propio fuera de su factura.
type SalesInvoiceRepository interface {
	Create(invoice *entity.SalesInvoice) error
	GetByID(id string) (*entity.SalesInvoice, error)
	List(filter SalesInvoiceFilter, limit, offset int) ([]*entity.SalesInvoice, error)
	UpdateStatus(id, status string) error
}
