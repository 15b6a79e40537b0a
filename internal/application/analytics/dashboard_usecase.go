// Package analytics contiene el caso de uso del dashboard: agregados de
// ventas de solo lectura sobre facturas activas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/rmelara/facturacion-sv/internal/application/dto"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

const (
	dashboardTopProducts = 5 // productos en el widget de más vendidos
	dashboardTopClients  = 5 // clientes en el widget de más frecuentes
	dailySeriesDays      = 7 // ventana de la serie diaria
)

// DashboardUseCase genera el resumen del dashboard: KPIs del día y del mes,
// serie diaria de 7 días, top de productos y clientes, y stock bajo.
//
// Fuente de datos: DashboardRepository (consultas read-only sobre facturas
// activas; las anuladas no cuentan). No accede directamente a las tablas.
type DashboardUseCase struct {
	dashboardRepo     repository.DashboardRepository
	lowStockThreshold int64
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository, lowStockThreshold int64) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo, lowStockThreshold: lowStockThreshold}
}

// GetSummary construye el DashboardSummaryDTO con asOf como "hoy".
//
// Seis consultas en paralelo:
//  1. SalesTotalBetween(hoy)   → ventasHoy
//  2. SalesTotalBetween(mes)   → ventasMes
//  3. conteos                  → facturas + clientes activos
//  4. DailySales(7 días)       → ventasDiarias (huecos rellenados en cero)
//  5. TopProducts / TopClients → productosTop + clientesTop
//  6. LowStock(umbral)         → stockBajo
func (uc *DashboardUseCase) GetSummary(ctx context.Context, asOf time.Time) (*dto.DashboardSummaryDTO, error) {
	// ── Rangos de fecha ────────────────────────────────────────────────────────
	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)

	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	monthEnd := todayEnd

	// Serie diaria: los 7 días que terminan hoy
	seriesStart := todayStart.AddDate(0, 0, -(dailySeriesDays - 1))
	seriesEnd := todayEnd

	// ── Goroutines para paralelizar las consultas DB ──────────────────────────
	type totalResult struct {
		total decimal.Decimal
		err   error
	}
	type countsResult struct {
		invoices int64
		clients  int64
		err      error
	}
	type dailyResult struct {
		rows []repository.DailySalesRow
		err  error
	}
	type topResult struct {
		products []repository.TopProductRow
		clients  []repository.TopClientRow
		err      error
	}
	type lowStockResult struct {
		rows []repository.LowStockRow
		err  error
	}

	todayCh := make(chan totalResult, 1)
	monthCh := make(chan totalResult, 1)
	countsCh := make(chan countsResult, 1)
	dailyCh := make(chan dailyResult, 1)
	topCh := make(chan topResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		total, err := uc.dashboardRepo.SalesTotalBetween(ctx, todayStart, todayEnd)
		todayCh <- totalResult{total, err}
	}()
	go func() {
		total, err := uc.dashboardRepo.SalesTotalBetween(ctx, monthStart, monthEnd)
		monthCh <- totalResult{total, err}
	}()
	go func() {
		invoices, err := uc.dashboardRepo.CountActiveInvoices(ctx)
		if err != nil {
			countsCh <- countsResult{err: err}
			return
		}
		clients, err := uc.dashboardRepo.CountActiveClients(ctx)
		countsCh <- countsResult{invoices, clients, err}
	}()
	go func() {
		rows, err := uc.dashboardRepo.DailySales(ctx, seriesStart, seriesEnd)
		dailyCh <- dailyResult{rows, err}
	}()
	go func() {
		products, err := uc.dashboardRepo.TopProducts(ctx, dashboardTopProducts)
		if err != nil {
			topCh <- topResult{err: err}
			return
		}
		clients, err := uc.dashboardRepo.TopClients(ctx, dashboardTopClients)
		topCh <- topResult{products, clients, err}
	}()
	go func() {
		rows, err := uc.dashboardRepo.LowStock(ctx, uc.lowStockThreshold)
		lowCh <- lowStockResult{rows, err}
	}()

	today := <-todayCh
	month := <-monthCh
	counts := <-countsCh
	daily := <-dailyCh
	top := <-topCh
	low := <-lowCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}
	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", counts.err)
	}
	if daily.err != nil {
		return nil, fmt.Errorf("dashboard: serie diaria: %w", daily.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: tops: %w", top.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	summary := &dto.DashboardSummaryDTO{
		Summary: dto.DashboardTotalsDTO{
			SalesToday:   today.total.Round(2),
			SalesMonth:   month.total.Round(2),
			InvoiceCount: counts.invoices,
			ClientCount:  counts.clients,
		},
		DailySales:  fillDailySeries(daily.rows, todayStart),
		TopProducts: make([]dto.TopProductDTO, 0, len(top.products)),
		TopClients:  make([]dto.TopClientDTO, 0, len(top.clients)),
		LowStock:    make([]dto.LowStockDTO, 0, len(low.rows)),
	}
	for _, p := range top.products {
		summary.TopProducts = append(summary.TopProducts, dto.TopProductDTO{Name: p.Name, Quantity: p.Quantity})
	}
	for _, c := range top.clients {
		summary.TopClients = append(summary.TopClients, dto.TopClientDTO{Name: c.Name, Purchases: c.Purchases})
	}
	for _, r := range low.rows {
		summary.LowStock = append(summary.LowStock, dto.LowStockDTO{Name: r.Name, Stock: r.Stock})
	}
	return summary, nil
}

// fillDailySeries materializa la serie de 7 días terminando en asOfDay:
// exactamente dailySeriesDays entradas en orden cronológico, con los días sin
// ventas en cero.
func fillDailySeries(rows []repository.DailySalesRow, asOfDay time.Time) []dto.DailySalesDTO {
	byDay := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		byDay[r.Day.Format("2006-01-02")] = r.Total
	}

	series := make([]dto.DailySalesDTO, 0, dailySeriesDays)
	for i := dailySeriesDays - 1; i >= 0; i-- {
		day := asOfDay.AddDate(0, 0, -i)
		iso := day.Format("2006-01-02")
		total, ok := byDay[iso]
		if !ok {
			total = decimal.Zero
		}
		series = append(series, dto.DailySalesDTO{
			Date:  dayLabel(day),
			Day:   iso,
			Total: total.Round(2),
		})
	}
	return series
}

// dayLabel etiqueta corta del día en español, ej: "lun".
func dayLabel(t time.Time) string {
	days := [...]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}
	return days[int(t.Weekday())]
}
