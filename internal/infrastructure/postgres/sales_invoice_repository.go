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

var _ repository.SalesInvoiceRepository = (*SalesInvoiceRepo)(nil)

// SalesInvoiceRepo implementación de SalesInvoiceRepository (usable con pool o
// tx). Create inserta cabecera y detalles; para que sea todo-o-nada debe
// invocarse dentro de una transacción (ver TxRunner.RunSales).
type SalesInvoiceRepo struct {
	q Querier
}

// NewSalesInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesInvoiceRepository(q Querier) *SalesInvoiceRepo {
	return &SalesInvoiceRepo{q: q}
}

// Create persiste la cabecera y cada línea de detalle.
func (r *SalesInvoiceRepo) Create(invoice *entity.SalesInvoice) error {
	query := `
		INSERT INTO sales_invoices (id, number, client_id, document_type, date, subtotal, tax_total, grand_total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Number, invoice.ClientID, invoice.DocumentType, invoice.Date,
		invoice.SubTotal, invoice.TaxTotal, invoice.GrandTotal, invoice.Status, invoice.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales invoice: %w", err)
	}

	// line_number preserva el orden de captura; los ids son UUID y no ordenan.
	detailQuery := `
		INSERT INTO sales_invoice_details (id, invoice_id, line_number, product_id, description, quantity, unit_price, subtotal, tax, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i, d := range invoice.Details {
		_, err := r.q.Exec(context.Background(), detailQuery,
			uuid.New().String(), invoice.ID, i+1, d.ProductID, d.Description, d.Quantity,
			d.UnitPrice, d.Subtotal, d.Tax, d.Total,
		)
		if err != nil {
			return fmt.Errorf("insert sales invoice detail: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la factura completa (cabecera + detalles).
func (r *SalesInvoiceRepo) GetByID(id string) (*entity.SalesInvoice, error) {
	query := `
		SELECT id, number, client_id, document_type, date, subtotal, tax_total, grand_total, status, created_at
		FROM sales_invoices WHERE id = $1`
	var inv entity.SalesInvoice
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.Number, &inv.ClientID, &inv.DocumentType, &inv.Date,
		&inv.SubTotal, &inv.TaxTotal, &inv.GrandTotal, &inv.Status, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales invoice: %w", err)
	}

	details, err := r.detailsFor(inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Details = details
	return &inv, nil
}

// List lista cabeceras con filtros opcionales; los detalles no se cargan en el
// listado.
func (r *SalesInvoiceRepo) List(filter repository.SalesInvoiceFilter, limit, offset int) ([]*entity.SalesInvoice, error) {
	query := `
		SELECT id, number, client_id, document_type, date, subtotal, tax_total, grand_total, status, created_at
		FROM sales_invoices WHERE 1=1`
	args := []any{}
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		query += fmt.Sprintf(" AND client_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesInvoice
	for rows.Next() {
		var inv entity.SalesInvoice
		if err := rows.Scan(&inv.ID, &inv.Number, &inv.ClientID, &inv.DocumentType, &inv.Date,
			&inv.SubTotal, &inv.TaxTotal, &inv.GrandTotal, &inv.Status, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sales invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la factura (anulación).
func (r *SalesInvoiceRepo) UpdateStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales_invoices SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sales invoice status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SalesInvoiceRepo) detailsFor(invoiceID string) ([]entity.SalesInvoiceDetail, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT product_id, description, quantity, unit_price, subtotal, tax, total
		FROM sales_invoice_details WHERE invoice_id = $1 ORDER BY line_number`,
		invoiceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sales invoice details: %w", err)
	}
	defer rows.Close()
	var details []entity.SalesInvoiceDetail
	for rows.Next() {
		var d entity.SalesInvoiceDetail
		if err := rows.Scan(&d.ProductID, &d.Description, &d.Quantity, &d.UnitPrice, &d.Subtotal, &d.Tax, &d.Total); err != nil {
			return nil, fmt.Errorf("scan sales invoice detail: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
