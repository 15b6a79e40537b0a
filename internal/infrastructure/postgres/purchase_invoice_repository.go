package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rmelara/facturacion-sv/internal/domain"
	"github.com/rmelara/facturacion-sv/internal/domain/entity"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

var _ repository.PurchaseInvoiceRepository = (*PurchaseInvoiceRepo)(nil)

// PurchaseInvoiceRepo implementación de PurchaseInvoiceRepository (usable con
// pool o tx). Como en ventas, Create debe correr dentro de una transacción
// para que cabecera y detalles sean todo-o-nada.
type PurchaseInvoiceRepo struct {
	q Querier
}

// NewPurchaseInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseInvoiceRepository(q Querier) *PurchaseInvoiceRepo {
	return &PurchaseInvoiceRepo{q: q}
}

// Create persiste la cabecera y cada línea. El índice único sobre number
// respalda la verificación previa del motor ante dos altas simultáneas.
func (r *PurchaseInvoiceRepo) Create(invoice *entity.PurchaseInvoice) error {
	query := `
		INSERT INTO purchase_invoices (id, number, kind, supplier_id, date, control_number, payment_terms, due_date, inventory_posted, subtotal, tax_total, grand_total, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, invoice.Kind, invoice.SupplierID, invoice.Date,
		nullIfEmpty(invoice.ControlNumber), invoice.PaymentTerms, invoice.DueDate,
		invoice.InventoryPosted, invoice.SubTotal, invoice.TaxTotal, invoice.GrandTotal,
		nullIfEmpty(invoice.Notes), invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateInvoiceNumberError{Number: invoice.Number}
		}
		return fmt.Errorf("insert purchase invoice: %w", err)
	}

	detailQuery := `
		INSERT INTO purchase_invoice_details (id, invoice_id, line_number, product_id, quantity, unit_cost, tax, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, d := range invoice.Details {
		_, err := r.q.Exec(context.Background(), detailQuery,
			uuid.New().String(), invoice.ID, i+1, d.ProductID, d.Quantity, d.UnitCost, d.Tax, d.Total,
		)
		if err != nil {
			return fmt.Errorf("insert purchase invoice detail: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la factura de compra completa.
func (r *PurchaseInvoiceRepo) GetByID(id string) (*entity.PurchaseInvoice, error) {
	query := `
		SELECT id, number, kind, supplier_id, date, control_number, payment_terms, due_date, inventory_posted, subtotal, tax_total, grand_total, notes, created_at, updated_at
		FROM purchase_invoices WHERE id = $1`
	inv, err := scanPurchaseInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase invoice: %w", err)
	}

	rows, err := r.q.Query(context.Background(), `
		SELECT product_id, quantity, unit_cost, tax, total
		FROM purchase_invoice_details WHERE invoice_id = $1 ORDER BY line_number`,
		inv.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("list purchase invoice details: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.PurchaseInvoiceDetail
		if err := rows.Scan(&d.ProductID, &d.Quantity, &d.UnitCost, &d.Tax, &d.Total); err != nil {
			return nil, fmt.Errorf("scan purchase invoice detail: %w", err)
		}
		inv.Details = append(inv.Details, d)
	}
	return inv, rows.Err()
}

// ExistsByNumber verifica si el número externo ya está registrado.
func (r *PurchaseInvoiceRepo) ExistsByNumber(number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM purchase_invoices WHERE number = $1)`, number,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists purchase invoice: %w", err)
	}
	return exists, nil
}

// List historial de compras; filtra por nombre parcial de proveedor y rango de
// fechas. Los detalles no se cargan en el listado.
func (r *PurchaseInvoiceRepo) List(filter repository.PurchaseInvoiceFilter, limit, offset int) ([]*entity.PurchaseInvoice, error) {
	query := `
		SELECT p.id, p.number, p.kind, p.supplier_id, p.date, p.control_number, p.payment_terms, p.due_date, p.inventory_posted, p.subtotal, p.tax_total, p.grand_total, p.notes, p.created_at, p.updated_at
		FROM purchase_invoices p
		JOIN suppliers s ON s.id = p.supplier_id
		WHERE 1=1`
	args := []any{}
	if filter.SupplierName != "" {
		args = append(args, "%"+filter.SupplierName+"%")
		query += fmt.Sprintf(" AND s.name ILIKE $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND p.date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND p.date <= $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY p.date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseInvoice
	for rows.Next() {
		inv, err := scanPurchaseInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

func scanPurchaseInvoice(row pgx.Row) (*entity.PurchaseInvoice, error) {
	var inv entity.PurchaseInvoice
	var controlNumber, notes *string
	err := row.Scan(
		&inv.ID, &inv.Number, &inv.Kind, &inv.SupplierID, &inv.Date, &controlNumber,
		&inv.PaymentTerms, &inv.DueDate, &inv.InventoryPosted, &inv.SubTotal,
		&inv.TaxTotal, &inv.GrandTotal, &notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.ControlNumber = emptyIfNull(controlNumber)
	inv.Notes = emptyIfNull(notes)
	return &inv, nil
}
