package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/rmelara/facturacion-sv/internal/application/analytics"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

// fakeDashboardRepo respuestas fijas por consulta, con error inyectable.
type fakeDashboardRepo struct {
	today      decimal.Decimal
	month      decimal.Decimal
	invoices   int64
	clients    int64
	daily      []repository.DailySalesRow
	top        []repository.TopProductRow
	topClients []repository.TopClientRow
	lowStock   []repository.LowStockRow
	failWith   error
}

func (f *fakeDashboardRepo) SalesTotalBetween(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	if f.failWith != nil {
		return decimal.Zero, f.failWith
	}
	// El rango del día cabe dentro del rango del mes; se distingue por duración
	if to.Sub(from) < 48*time.Hour {
		return f.today, nil
	}
	return f.month, nil
}
func (f *fakeDashboardRepo) CountActiveInvoices(context.Context) (int64, error) {
	return f.invoices, nil
}
func (f *fakeDashboardRepo) CountActiveClients(context.Context) (int64, error) {
	return f.clients, nil
}
func (f *fakeDashboardRepo) DailySales(context.Context, time.Time, time.Time) ([]repository.DailySalesRow, error) {
	return f.daily, nil
}
func (f *fakeDashboardRepo) TopProducts(context.Context, int) ([]repository.TopProductRow, error) {
	return f.top, nil
}
func (f *fakeDashboardRepo) TopClients(context.Context, int) ([]repository.TopClientRow, error) {
	return f.topClients, nil
}
func (f *fakeDashboardRepo) LowStock(context.Context, int64) ([]repository.LowStockRow, error) {
	return f.lowStock, nil
}

// TestGetSummary_SerieDe7DiasConCeros: la serie siempre trae exactamente 7
// entradas en orden cronológico; los días sin ventas van en cero.
func TestGetSummary_SerieDe7DiasConCeros(t *testing.T) {
	asOf := time.Date(2026, 8, 30, 15, 4, 0, 0, time.UTC) // un domingo
	repo := &fakeDashboardRepo{
		today: decimal.RequireFromString("28.25"),
		month: decimal.RequireFromString("150.00"),
		daily: []repository.DailySalesRow{
			// solo dos días con ventas dentro de la ventana
			{Day: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), Total: decimal.RequireFromString("100.00")},
			{Day: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), Total: decimal.RequireFromString("28.25")},
		},
	}
	uc := analytics.NewDashboardUseCase(repo, 5)

	summary, err := uc.GetSummary(context.Background(), asOf)

	require.NoError(t, err)
	require.Len(t, summary.DailySales, 7)
	assert.Equal(t, "2026-08-24", summary.DailySales[0].Day, "la serie inicia 6 días atrás")
	assert.Equal(t, "2026-08-30", summary.DailySales[6].Day, "y termina hoy")
	assert.Equal(t, "dom", summary.DailySales[6].Date)
	assert.Equal(t, "vie", summary.DailySales[4].Date)

	assert.True(t, summary.DailySales[0].Total.IsZero(), "día sin ventas va en cero")
	assert.True(t, summary.DailySales[4].Total.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, summary.DailySales[6].Total.Equal(decimal.RequireFromString("28.25")))
}

// TestGetSummary_KPIsYWidgets: los totales y widgets se arman desde el
// repositorio tal cual.
func TestGetSummary_KPIsYWidgets(t *testing.T) {
	repo := &fakeDashboardRepo{
		today:    decimal.RequireFromString("28.25"),
		month:    decimal.RequireFromString("150.005"), // se redondea a centavos
		invoices: 12,
		clients:  4,
		top: []repository.TopProductRow{
			{ProductID: "pa", Name: "Taladro", Quantity: 9},
		},
		topClients: []repository.TopClientRow{
			{ClientID: "c1", Name: "Ferretería El Roble", Purchases: 7},
		},
		lowStock: []repository.LowStockRow{
			{ProductID: "pb", Name: "Martillo", Stock: 2},
		},
	}
	uc := analytics.NewDashboardUseCase(repo, 5)

	summary, err := uc.GetSummary(context.Background(), time.Now())

	require.NoError(t, err)
	assert.True(t, summary.Summary.SalesToday.Equal(decimal.RequireFromString("28.25")))
	assert.True(t, summary.Summary.SalesMonth.Equal(decimal.RequireFromString("150.01")))
	assert.Equal(t, int64(12), summary.Summary.InvoiceCount)
	assert.Equal(t, int64(4), summary.Summary.ClientCount)
	require.Len(t, summary.TopProducts, 1)
	assert.Equal(t, "Taladro", summary.TopProducts[0].Name)
	require.Len(t, summary.TopClients, 1)
	assert.Equal(t, int64(7), summary.TopClients[0].Purchases)
	require.Len(t, summary.LowStock, 1)
	assert.Equal(t, int64(2), summary.LowStock[0].Stock)
}

// TestGetSummary_SinDatos: un negocio recién abierto obtiene ceros y listas
// vacías, nunca error ni nulos.
func TestGetSummary_SinDatos(t *testing.T) {
	uc := analytics.NewDashboardUseCase(&fakeDashboardRepo{}, 5)

	summary, err := uc.GetSummary(context.Background(), time.Now())

	require.NoError(t, err)
	assert.True(t, summary.Summary.SalesToday.IsZero())
	assert.True(t, summary.Summary.SalesMonth.IsZero())
	require.Len(t, summary.DailySales, 7)
	for _, d := range summary.DailySales {
		assert.True(t, d.Total.IsZero())
	}
	assert.NotNil(t, summary.TopProducts)
	assert.Empty(t, summary.TopProducts)
	assert.NotNil(t, summary.LowStock)
}

// TestGetSummary_ErrorDeConsulta: un error de cualquier consulta aborta el
// resumen completo.
func TestGetSummary_ErrorDeConsulta(t *testing.T) {
	repo := &fakeDashboardRepo{failWith: errors.New("timeout de consulta")}
	uc := analytics.NewDashboardUseCase(repo, 5)

	_, err := uc.GetSummary(context.Background(), time.Now())

	assert.Error(t, err)
}
