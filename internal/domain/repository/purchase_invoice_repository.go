package repository

import (
	"time"

	"github.com/rmelara/facturacion-sv/internal/domain/entity"
)

// PurchaseInvoiceFilter filtros del historial de compras (nombre de proveedor
// parcial, rango de fechas), como el listado original.
type PurchaseInvoiceFilter struct {
	SupplierName string
	From         *time.Time
	To           *time.Time
}

// PurchaseInvoiceRepository puerto de persistencia de facturas de compra.
type PurchaseInvoiceRepository interface {
	Create(invoice *entity.PurchaseInvoice) error
	GetByID(id string) (*entity.PurchaseInvoice, error)
	// ExistsByNumber verifica el número externo ANTES de tocar inventario,
	// para no rechazar por duplicado con stock ya movido.
	ExistsByNumber(number string) (bool, error)
	List(filter PurchaseInvoiceFilter, limit, offset int) ([]*entity.PurchaseInvoice, error)
}
