// Package inventory contiene el libro de inventario: la única puerta por la
// que se muta el stock de un producto.
package inventory

import (
	"context"

	"github.com/rmelara/facturacion-sv/internal/domain"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

// StockLedger reglas de mutación de stock. Los dos motores de factura
// (venta y compra) pasan por aquí; el único atajo es la corrección manual.
//
// El ledger no deduplica: un caller que reintenta una reserva que pudo haber
// aplicado ya, descuenta dos veces. La política de reintento es del caller.
type StockLedger struct {
	stockRepo repository.StockRepository
}

// NewStockLedger construye el ledger.
func NewStockLedger(stockRepo repository.StockRepository) *StockLedger {
	return &StockLedger{stockRepo: stockRepo}
}

// ReserveAndDeduct verifica stock >= qty y descuenta en un solo paso atómico
// respecto a cualquier otro caller concurrente del mismo producto. Si no
// alcanza no muta nada y retorna domain.InsufficientStockError.
func (l *StockLedger) ReserveAndDeduct(ctx context.Context, productID string, qty int64) (int64, error) {
	if qty < 1 {
		return 0, domain.ErrInvalidQuantity
	}
	return l.stockRepo.DeductIfAvailable(ctx, productID, qty)
}

// Replenish incrementa el stock sin condición. qty debe ser positivo.
func (l *StockLedger) Replenish(ctx context.Context, productID string, qty int64) (int64, error) {
	if qty < 1 {
		return 0, domain.ErrInvalidQuantity
	}
	return l.stockRepo.Replenish(ctx, productID, qty)
}

// Set corrección manual administrativa: fija el stock en un valor absoluto
// sin pasar por la contabilidad de facturas.
func (l *StockLedger) Set(ctx context.Context, productID string, qty int64) (int64, error) {
	if qty < 0 {
		return 0, domain.ErrInvalidQuantity
	}
	return l.stockRepo.Set(ctx, productID, qty)
}
