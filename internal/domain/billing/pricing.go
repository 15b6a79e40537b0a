// Package billing contiene la aritmética pura de precios e impuestos.
// Todas las funciones son deterministas y sin estado para poder probarlas
// sin base de datos ni PDF de por medio.
package billing

import "github.com/shopspring/decimal"

// SalePrice deriva el precio de venta a partir del costo: costo × (1 + tasa),
// redondeado a 2 decimales. Se invoca en cada escritura del costo, nunca en
// lectura.
func SalePrice(unitCost, taxRate decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	return unitCost.Mul(one.Add(taxRate)).Round(2)
}

// LineAmounts calcula los montos de una línea de venta:
// subtotal = precio × cantidad, iva = subtotal × tasa, total = subtotal + iva.
func LineAmounts(unitPrice decimal.Decimal, quantity int64, taxRate decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	subtotal = unitPrice.Mul(decimal.NewFromInt(quantity))
	tax = subtotal.Mul(taxRate).Round(2)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}
