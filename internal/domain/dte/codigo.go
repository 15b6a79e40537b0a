// Package dte genera el sello de verificación ilustrativo que llevan los
// documentos impresos (código de generación + payload del QR).
//
// No es una firma criptográfica válida ante la DGII: es un identificador
// derivado determinísticamente de la identidad de la factura, suficiente para
// que el QR del documento sea verificable contra el registro interno.
package dte

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Namespace fijo para derivar códigos de generación (UUID v5 sobre SHA-1).
var codigoNamespace = uuid.MustParse("9a1c8b5e-22d4-4f31-9c67-0d4b8f6a3e10")

// CodigoGeneracion deriva el identificador del documento a partir del ID de la
// factura y su fecha de emisión. Mismo input, mismo código, siempre; el formato
// es UUID en mayúsculas como los códigos de generación DTE.
func CodigoGeneracion(invoiceID string, issuedAt time.Time) string {
	seed := invoiceID + "|" + issuedAt.UTC().Format(time.RFC3339)
	return strings.ToUpper(uuid.NewSHA1(codigoNamespace, []byte(seed)).String())
}

// BuildQRData arma el payload del QR impreso en ambas representaciones:
// numero|fecha|total|codigoGeneracion|urlConsulta.
func BuildQRData(number string, date time.Time, grandTotal decimal.Decimal, codigo string) string {
	parts := []string{
		strings.TrimSpace(number),
		date.Format("2006-01-02"),
		grandTotal.Round(2).StringFixed(2),
		codigo,
		consultaURL + codigo,
	}
	return strings.Join(parts, "|")
}

// URL de consulta pública que acompaña el código en el QR.
const consultaURL = "https://admin.factura.gob.sv/consultaPublica?codigoGen="
