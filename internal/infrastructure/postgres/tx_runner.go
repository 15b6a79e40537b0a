package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rmelara/facturacion-sv/internal/application/billing"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

var _ billing.SalesTxRunner = (*TxRunner)(nil)
var _ billing.PurchaseTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, con los
// repos de factura atados a la tx. Hace atómica la escritura de cabecera +
// detalles; la consistencia con el stock la resuelve la compensación del motor.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunSales inicia una transacción, ejecuta fn con el repo de facturas de venta
// atado a la tx y hace Commit o Rollback.
func (r *TxRunner) RunSales(ctx context.Context, fn func(repo repository.SalesInvoiceRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSalesInvoiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPurchases igual que RunSales, con el repo de facturas de compra.
func (r *TxRunner) RunPurchases(ctx context.Context, fn func(repo repository.PurchaseInvoiceRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPurchaseInvoiceRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
