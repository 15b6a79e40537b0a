package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/rmelara/facturacion-sv/internal/domain/entity"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// Consultas del dashboard. Todas las que tocan facturas filtran por estado
// para que las anuladas nunca entren en los agregados; lowStockQuery usa
// desigualdad estricta: el umbral marca desde dónde el stock está bien.
const (
	salesTotalQuery = `
	SELECT COALESCE(SUM(grand_total), 0)
	FROM sales_invoices
	WHERE status = $1 AND date BETWEEN $2 AND $3`

	countInvoicesQuery = `SELECT COUNT(*) FROM sales_invoices WHERE status = $1`

	countClientsQuery = `SELECT COUNT(*) FROM clients WHERE status = $1`

	dailySalesQuery = `
	SELECT date_trunc('day', date) AS day, SUM(grand_total) AS total
	FROM sales_invoices
	WHERE status = $1 AND date BETWEEN $2 AND $3
	GROUP BY day
	ORDER BY day`

	topProductsQuery = `
	SELECT d.product_id, d.description, SUM(d.quantity) AS sold
	FROM sales_invoice_details d
	JOIN sales_invoices i ON i.id = d.invoice_id
	WHERE i.status = $1
	GROUP BY d.product_id, d.description
	ORDER BY sold DESC
	LIMIT $2`

	topClientsQuery = `
	SELECT c.id, c.name, COUNT(i.id) AS purchases
	FROM sales_invoices i
	JOIN clients c ON c.id = i.client_id
	WHERE i.status = $1
	GROUP BY c.id, c.name
	ORDER BY purchases DESC
	LIMIT $2`

	lowStockQuery = `
	SELECT id, name, stock
	FROM products
	WHERE status = $1 AND stock < $2
	ORDER BY stock ASC, name`
)

// DashboardRepo consultas de solo lectura para el resumen del dashboard.
// Todas excluyen facturas anuladas; los períodos vacíos devuelven cero.
type DashboardRepo struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository construye el adaptador del dashboard.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// SalesTotalBetween suma total_con_iva de facturas activas en el rango.
func (r *DashboardRepo) SalesTotalBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, salesTotalQuery, entity.InvoiceStatusActive, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("dashboard.SalesTotalBetween: %w", err)
	}
	return total, nil
}

// CountActiveInvoices cuenta las facturas de venta activas.
func (r *DashboardRepo) CountActiveInvoices(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, countInvoicesQuery, entity.InvoiceStatusActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("dashboard.CountActiveInvoices: %w", err)
	}
	return count, nil
}

// CountActiveClients cuenta los clientes activos.
func (r *DashboardRepo) CountActiveClients(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, countClientsQuery, entity.StatusActive).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("dashboard.CountActiveClients: %w", err)
	}
	return count, nil
}

// DailySales total vendido por día calendario dentro del rango. Los días sin
// ventas no devuelven fila; el caso de uso rellena los huecos.
func (r *DashboardRepo) DailySales(ctx context.Context, from, to time.Time) ([]repository.DailySalesRow, error) {
	rows, err := r.pool.Query(ctx, dailySalesQuery, entity.InvoiceStatusActive, from, to)
	if err != nil {
		return nil, fmt.Errorf("dashboard.DailySales: %w", err)
	}
	defer rows.Close()

	var results []repository.DailySalesRow
	for rows.Next() {
		var row repository.DailySalesRow
		if err := rows.Scan(&row.Day, &row.Total); err != nil {
			return nil, fmt.Errorf("dashboard.DailySales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopProducts productos más vendidos por cantidad, sobre facturas activas.
func (r *DashboardRepo) TopProducts(ctx context.Context, limit int) ([]repository.TopProductRow, error) {
	rows, err := r.pool.Query(ctx, topProductsQuery, entity.InvoiceStatusActive, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Quantity); err != nil {
			return nil, fmt.Errorf("dashboard.TopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopClients clientes con más compras, sobre facturas activas.
func (r *DashboardRepo) TopClients(ctx context.Context, limit int) ([]repository.TopClientRow, error) {
	rows, err := r.pool.Query(ctx, topClientsQuery, entity.InvoiceStatusActive, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.TopClients: %w", err)
	}
	defer rows.Close()

	var results []repository.TopClientRow
	for rows.Next() {
		var row repository.TopClientRow
		if err := rows.Scan(&row.ClientID, &row.Name, &row.Purchases); err != nil {
			return nil, fmt.Errorf("dashboard.TopClients scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// LowStock productos activos con stock estrictamente bajo el umbral.
func (r *DashboardRepo) LowStock(ctx context.Context, threshold int64) ([]repository.LowStockRow, error) {
	rows, err := r.pool.Query(ctx, lowStockQuery, entity.StatusActive, threshold)
	if err != nil {
		return nil, fmt.Errorf("dashboard.LowStock: %w", err)
	}
	defer rows.Close()

	var results []repository.LowStockRow
	for rows.Next() {
		var row repository.LowStockRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Stock); err != nil {
			return nil, fmt.Errorf("dashboard.LowStock scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
