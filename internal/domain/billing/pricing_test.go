package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/rmelara/facturacion-sv/internal/domain/billing"
)

var iva = decimal.RequireFromString("0.13")

// TestSalePrice verifica la derivación costo → precio de venta con IVA 13%.
func TestSalePrice(t *testing.T) {
	cases := []struct {
		cost string
		want string
	}{
		{"100", "113"},
		{"10.00", "11.3"},
		{"7.25", "8.19"},  // 8.1925 redondeado
		{"0", "0"},
	}
	for _, c := range cases {
		got := billing.SalePrice(decimal.RequireFromString(c.cost), iva)
		assert.True(t, got.Equal(decimal.RequireFromString(c.want)),
			"costo %s: esperado %s, obtenido %s", c.cost, c.want, got)
	}
}

// TestLineAmounts reproduce el ejemplo canónico: 2 × $10.00 debe dar
// subtotal 20.00, iva 2.60, total 22.60.
func TestLineAmounts(t *testing.T) {
	subtotal, tax, total := billing.LineAmounts(decimal.RequireFromString("10.00"), 2, iva)

	assert.True(t, subtotal.Equal(decimal.RequireFromString("20.00")), "subtotal: %s", subtotal)
	assert.True(t, tax.Equal(decimal.RequireFromString("2.60")), "iva: %s", tax)
	assert.True(t, total.Equal(decimal.RequireFromString("22.60")), "total: %s", total)
}

// TestLineAmounts_SumaDosLineas suma de líneas [{2 × 10.00}, {1 × 5.00}]:
// subtotal 25.00, iva 3.25, total 28.25.
func TestLineAmounts_SumaDosLineas(t *testing.T) {
	s1, t1, tt1 := billing.LineAmounts(decimal.RequireFromString("10.00"), 2, iva)
	s2, t2, tt2 := billing.LineAmounts(decimal.RequireFromString("5.00"), 1, iva)

	assert.True(t, s1.Add(s2).Equal(decimal.RequireFromString("25.00")))
	assert.True(t, t1.Add(t2).Equal(decimal.RequireFromString("3.25")))
	assert.True(t, tt1.Add(tt2).Equal(decimal.RequireFromString("28.25")))
}
