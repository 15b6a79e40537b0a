package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rmelara/facturacion-sv/internal/domain"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo única puerta de escritura sobre products.stock.
//
// DeductIfAvailable es un UPDATE condicional: la verificación y el decremento
// ocurren en una sola sentencia, así que dos ventas concurrentes del mismo
// producto se serializan a nivel de fila y el stock nunca baja de cero.
// Productos distintos no se bloquean entre sí.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// DeductIfAvailable descuenta qty si hay suficiente y devuelve el restante.
func (r *StockRepo) DeductIfAvailable(ctx context.Context, productID string, qty int64) (int64, error) {
	var remaining int64
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock = stock - $2
		WHERE id = $1 AND stock >= $2
		RETURNING stock`,
		productID, qty,
	).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("deduct stock: %w", err)
	}

	// Sin fila afectada: distinguir producto inexistente de stock insuficiente
	var available int64
	err = r.q.QueryRow(ctx, `SELECT stock FROM products WHERE id = $1`, productID).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	if err != nil {
		return 0, fmt.Errorf("get stock: %w", err)
	}
	return 0, &domain.InsufficientStockError{ProductID: productID, Requested: qty, Available: available}
}

// Replenish incrementa el stock sin condición y devuelve el resultante.
func (r *StockRepo) Replenish(ctx context.Context, productID string, qty int64) (int64, error) {
	var remaining int64
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock = stock + $2
		WHERE id = $1
		RETURNING stock`,
		productID, qty,
	).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	if err != nil {
		return 0, fmt.Errorf("replenish stock: %w", err)
	}
	return remaining, nil
}

// Set fija el stock en un valor absoluto (corrección manual).
func (r *StockRepo) Set(ctx context.Context, productID string, qty int64) (int64, error) {
	var remaining int64
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock = $2
		WHERE id = $1
		RETURNING stock`,
		productID, qty,
	).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	if err != nil {
		return 0, fmt.Errorf("set stock: %w", err)
	}
	return remaining, nil
}
