package repository

import "context"

// StockRepository único canal de mutación del stock.
//
// DeductIfAvailable debe ejecutar la verificación y el decremento como UNA
// operación indivisible contra el valor almacenado (UPDATE condicional), de
// modo que dos llamadas concurrentes sobre el mismo producto se serialicen y
// el stock jamás quede negativo. Llamadas sobre productos distintos no se
// bloquean entre sí.
type StockRepository interface {
	// DeductIfAvailable descuenta qty si stock >= qty y devuelve el stock
	// resultante. Si no alcanza: domain.InsufficientStockError. Si el producto
	// no existe: domain.NotFoundError.
	DeductIfAvailable(ctx context.Context, productID string, qty int64) (int64, error)

	// Replenish incrementa el stock sin condición y devuelve el resultante.
	Replenish(ctx context.Context, productID string, qty int64) (int64, error)

	// Set fija el stock en un valor absoluto (corrección manual administrativa;
	// no pasa por la contabilidad de facturas).
	Set(ctx context.Context, productID string, qty int64) (int64, error)
}
