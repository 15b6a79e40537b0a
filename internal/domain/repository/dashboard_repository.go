package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesRow total vendido (con IVA) en un día calendario.
type DailySalesRow struct {
	Day   time.Time
	Total decimal.Decimal
}

// TopProductRow producto con su cantidad total vendida.
type TopProductRow struct {
	ProductID string
	Name      string
	Quantity  int64
}

// TopClientRow cliente con su número de compras.
type TopClientRow struct {
	ClientID  string
	Name      string
	Purchases int64
}

// LowStockRow producto bajo el umbral de stock.
type LowStockRow struct {
	ProductID string
	Name      string
	Stock     int64
}

// DashboardRepository consultas de solo lectura para el resumen del dashboard.
// Todas las sumas y conteos consideran únicamente facturas en estado activo;
// períodos sin datos devuelven cero, no error.
type DashboardRepository interface {
	SalesTotalBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	CountActiveInvoices(ctx context.Context) (int64, error)
	CountActiveClients(ctx context.Context) (int64, error)
	DailySales(ctx context.Context, from, to time.Time) ([]DailySalesRow, error)
	TopProducts(ctx context.Context, limit int) ([]TopProductRow, error)
	TopClients(ctx context.Context, limit int) ([]TopClientRow, error)
	LowStock(ctx context.Context, threshold int64) ([]LowStockRow, error)
}
