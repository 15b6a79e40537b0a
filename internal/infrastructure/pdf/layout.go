// Package pdf implementa las dos representaciones impresas de una factura de
// venta usando Maroto v2: la factura de página completa (A4) y el ticket de
// impresora térmica de 80 mm con alto calculado según el número de líneas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + NIT/NRC  │  Tipo Doc + N° + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Giro / Dirección / Tel / Email                     │
//	│  CLIENTE: Nombre + DUI/NRC + contacto                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | IVA | Total           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / TOTAL                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Código de generación + QR de verificación          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import "github.com/shopspring/decimal"

// Dimensiones del ticket en milímetros. El ancho es el del papel térmico
// estándar de 80 mm; el alto se calcula por documento para que el corte del
// papel quede justo después del pie.
const (
	ticketWidthMM = 80.0

	ticketHeaderMM = 46.0 // emisor + tipo de documento + número + fecha + cliente
	ticketLineMM   = 9.0  // cada línea de detalle ocupa dos renglones
	ticketTotalsMM = 20.0
	ticketQRMM     = 46.0 // código de generación + QR de verificación
	ticketFooterMM = 12.0 // leyenda de agradecimiento
)

// ticketHeightMM alto total del ticket para n líneas de detalle. Función pura
// del conteo: misma factura, mismo alto.
func ticketHeightMM(lineCount int) float64 {
	if lineCount < 0 {
		lineCount = 0
	}
	return ticketHeaderMM + float64(lineCount)*ticketLineMM + ticketTotalsMM + ticketQRMM + ticketFooterMM
}

// taxPercent porcentaje legible de una tasa fraccional: 0.13 -> "13",
// 0.125 -> "12.5". Alimenta las etiquetas de IVA de ambos documentos.
func taxPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String()
}
