// seed genera un script SQL para poblar el catálogo de productos a partir de
// un CSV exportado desde Excel (típicamente en ISO-8859-1, con tildes y eñes).
//
// Columnas esperadas: nombre, descripcion, categoria, marca, modelo, sku,
// precio_unitario, stock, ubicacion.
//
// Uso: go run ./cmd/seed [ruta/productos.csv]
// Por defecto busca productos.csv en el directorio actual.
// Escribe: seed_products.sql en la raíz del módulo.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var ivaRate = decimal.RequireFromString("0.13")

type productRow struct {
	name, description, category, brand, model, sku, location string
	unitPrice                                                 decimal.Decimal
	stock                                                     int64
}

func main() {
	csvPath := "productos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	// Los exports de Excel suelen venir en ISO-8859-1
	reader := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(records) < 2 {
		fmt.Fprintln(os.Stderr, "CSV sin filas de datos")
		os.Exit(1)
	}

	var products []productRow
	for i, rec := range records[1:] { // saltar cabecera
		if len(rec) < 9 {
			fmt.Fprintf(os.Stderr, "Fila %d: se esperaban 9 columnas, hay %d; se omite\n", i+2, len(rec))
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(rec[6]))
		if err != nil || price.IsNegative() {
			fmt.Fprintf(os.Stderr, "Fila %d: precio_unitario inválido %q; se omite\n", i+2, rec[6])
			continue
		}
		stock, err := strconv.ParseInt(strings.TrimSpace(rec[7]), 10, 64)
		if err != nil || stock < 0 {
			fmt.Fprintf(os.Stderr, "Fila %d: stock inválido %q; se omite\n", i+2, rec[7])
			continue
		}
		products = append(products, productRow{
			name:        strings.TrimSpace(rec[0]),
			description: strings.TrimSpace(rec[1]),
			category:    strings.TrimSpace(rec[2]),
			brand:       strings.TrimSpace(rec[3]),
			model:       strings.TrimSpace(rec[4]),
			sku:         strings.TrimSpace(rec[5]),
			location:    strings.TrimSpace(rec[8]),
			unitPrice:   price,
			stock:       stock,
		})
	}

	outPath := filepath.Join(findModuleRoot(), "seed_products.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	now := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(out, "-- Catálogo de productos generado desde %s\n\n", csvPath)
	for _, p := range products {
		salePrice := p.unitPrice.Mul(decimal.NewFromInt(1).Add(ivaRate)).Round(2)
		sku := "NULL"
		if p.sku != "" {
			sku = "'" + escapeSQL(p.sku) + "'"
		}
		fmt.Fprintf(out,
			"INSERT INTO products (id, name, description, category, brand, model, sku, unit_price, sale_price, stock, location, status, entry_date)\n"+
				"VALUES ('%s', '%s', '%s', '%s', '%s', '%s', %s, %s, %s, %d, '%s', 'activo', '%s')\nON CONFLICT (sku) DO NOTHING;\n",
			uuid.New().String(), escapeSQL(p.name), escapeSQL(p.description), escapeSQL(p.category),
			escapeSQL(p.brand), escapeSQL(p.model), sku, p.unitPrice.StringFixed(2),
			salePrice.StringFixed(2), p.stock, escapeSQL(p.location), now,
		)
	}

	fmt.Printf("Generado %s: %d productos\n", outPath, len(products))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
