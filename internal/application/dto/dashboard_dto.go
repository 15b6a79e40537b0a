package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/resumen.
// Solo considera facturas en estado activo.
type DashboardSummaryDTO struct {
	Summary     DashboardTotalsDTO `json:"resumen"`
	DailySales  []DailySalesDTO    `json:"ventasDiarias"` // exactamente 7 entradas, días sin ventas en cero
	TopProducts []TopProductDTO    `json:"productosTop"`
	TopClients  []TopClientDTO     `json:"clientesTop"`
	LowStock    []LowStockDTO      `json:"stockBajo"`
}

// DashboardTotalsDTO KPIs principales.
type DashboardTotalsDTO struct {
	SalesToday    decimal.Decimal `json:"ventasHoy"`
	SalesMonth    decimal.Decimal `json:"ventasMes"`
	InvoiceCount  int64           `json:"facturas"`
	ClientCount   int64           `json:"clientes"`
}

// DailySalesDTO total con IVA de un día de la serie de 7.
type DailySalesDTO struct {
	Date  string          `json:"fecha"` // etiqueta corta del día, ej. "lun"
	Day   string          `json:"dia"`   // fecha ISO YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
}

// TopProductDTO producto más vendido por cantidad.
type TopProductDTO struct {
	Name     string `json:"nombre"`
	Quantity int64  `json:"cantidad"`
}

// TopClientDTO cliente más frecuente por número de compras.
type TopClientDTO struct {
	Name      string `json:"nombre"`
	Purchases int64  `json:"compras"`
}

// LowStockDTO producto bajo el umbral de stock.
type LowStockDTO struct {
	Name  string `json:"nombre"`
	Stock int64  `json:"stock"`
}
