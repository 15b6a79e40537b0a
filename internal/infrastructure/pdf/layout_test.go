package pdf

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestTicketHeight: el alto del ticket es función pura del número de líneas —
// base fija más un incremento constante por línea.
func TestTicketHeight(t *testing.T) {
	base := ticketHeaderMM + ticketTotalsMM + ticketQRMM + ticketFooterMM

	assert.InDelta(t, base, ticketHeightMM(0), 0.001)
	assert.InDelta(t, base+ticketLineMM, ticketHeightMM(1), 0.001)
	assert.InDelta(t, base+5*ticketLineMM, ticketHeightMM(5), 0.001)
	assert.InDelta(t, base+50*ticketLineMM, ticketHeightMM(50), 0.001)
}

// TestTicketHeight_Monotonica: más líneas nunca dan un ticket más corto.
func TestTicketHeight_Monotonica(t *testing.T) {
	prev := ticketHeightMM(0)
	for n := 1; n <= 100; n++ {
		h := ticketHeightMM(n)
		assert.Greater(t, h, prev, "n=%d", n)
		prev = h
	}
}

// TestTicketHeight_ConteoNegativo: un conteo inválido se trata como cero.
func TestTicketHeight_ConteoNegativo(t *testing.T) {
	assert.Equal(t, ticketHeightMM(0), ticketHeightMM(-3))
}

// TestTaxPercent: la etiqueta de IVA sale de la tasa configurada, sin ceros
// de relleno.
func TestTaxPercent(t *testing.T) {
	assert.Equal(t, "13", taxPercent(decimal.RequireFromString("0.13")))
	assert.Equal(t, "15", taxPercent(decimal.RequireFromString("0.15")))
	assert.Equal(t, "12.5", taxPercent(decimal.RequireFromString("0.125")))
}
