package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appbilling "github.com/rmelara/facturacion-sv/internal/application/billing"
	"github.com/rmelara/facturacion-sv/internal/application/dto"
	"github.com/rmelara/facturacion-sv/internal/domain"
	"github.com/rmelara/facturacion-sv/internal/domain/entity"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

var ivaTest = decimal.RequireFromString("0.13")

// ── Fakes en memoria ──────────────────────────────────────────────────────────

// fakeLedger libro de inventario en memoria con la misma semántica condicional
// del UPDATE de PostgreSQL.
type fakeLedger struct {
	mu    sync.Mutex
	stock map[string]int64
}

func newFakeLedger(stock map[string]int64) *fakeLedger {
	s := make(map[string]int64, len(stock))
	for k, v := range stock {
		s[k] = v
	}
	return &fakeLedger{stock: s}
}

func (l *fakeLedger) ReserveAndDeduct(_ context.Context, productID string, qty int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	current, ok := l.stock[productID]
	if !ok {
		return 0, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	if current < qty {
		return 0, &domain.InsufficientStockError{ProductID: productID, Requested: qty, Available: current}
	}
	l.stock[productID] = current - qty
	return l.stock[productID], nil
}

func (l *fakeLedger) Replenish(_ context.Context, productID string, qty int64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	current, ok := l.stock[productID]
	if !ok {
		return 0, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	l.stock[productID] = current + qty
	return l.stock[productID], nil
}

func (l *fakeLedger) get(productID string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stock[productID]
}

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}
func (r *memProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) List(repository.ProductFilter, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }

type memClientRepo struct {
	clients map[string]*entity.Client
}

func (r *memClientRepo) Create(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}
func (r *memClientRepo) List(repository.ClientFilter, int, int) ([]*entity.Client, error) {
	return nil, nil
}

// memSalesRepo repositorio de facturas con inyección de falla en Create para
// probar la compensación tras reserva exitosa.
type memSalesRepo struct {
	invoices   map[string]*entity.SalesInvoice
	failCreate error
}

func (r *memSalesRepo) Create(inv *entity.SalesInvoice) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	copia := *inv
	copia.Details = append([]entity.SalesInvoiceDetail(nil), inv.Details...)
	r.invoices[inv.ID] = &copia
	return nil
}
func (r *memSalesRepo) GetByID(id string) (*entity.SalesInvoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	return inv, nil
}
func (r *memSalesRepo) List(repository.SalesInvoiceFilter, int, int) ([]*entity.SalesInvoice, error) {
	out := make([]*entity.SalesInvoice, 0, len(r.invoices))
	for _, inv := range r.invoices {
		out = append(out, inv)
	}
	return out, nil
}
func (r *memSalesRepo) UpdateStatus(id, status string) error {
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	return nil
}

// fakeSalesTx ejecuta el callback directamente contra el repo en memoria.
type fakeSalesTx struct{ repo *memSalesRepo }

func (t *fakeSalesTx) RunSales(_ context.Context, fn func(repo repository.SalesInvoiceRepository) error) error {
	return fn(t.repo)
}

// ── Entorno de prueba ─────────────────────────────────────────────────────────

type salesEnv struct {
	uc       *appbilling.CreateSalesInvoiceUseCase
	ledger   *fakeLedger
	products *memProductRepo
	invoices *memSalesRepo
}

func newSalesEnv(t *testing.T) *salesEnv {
	t.Helper()
	products := &memProductRepo{products: map[string]*entity.Product{
		"pa": {ID: "pa", Name: "Taladro", UnitPrice: decimal.RequireFromString("10.00"), Status: entity.StatusActive},
		"pb": {ID: "pb", Name: "Martillo", UnitPrice: decimal.RequireFromString("5.00"), Status: entity.StatusActive},
		"px": {ID: "px", Name: "Descontinuado", UnitPrice: decimal.RequireFromString("3.00"), Status: entity.StatusInactive},
	}}
	clients := &memClientRepo{clients: map[string]*entity.Client{
		"c1": {ID: "c1", Name: "Ferretería El Roble", Kind: entity.ClientKindTaxpayer, Status: entity.StatusActive},
	}}
	ledger := newFakeLedger(map[string]int64{"pa": 5, "pb": 4, "px": 9})
	invoices := &memSalesRepo{invoices: map[string]*entity.SalesInvoice{}}

	uc := appbilling.NewCreateSalesInvoiceUseCase(
		ledger, &fakeSalesTx{repo: invoices}, clients, products, invoices, ivaTest,
	)
	return &salesEnv{uc: uc, ledger: ledger, products: products, invoices: invoices}
}

func twoLineRequest() dto.CreateSalesInvoiceRequest {
	return dto.CreateSalesInvoiceRequest{
		ClientID:     "c1",
		DocumentType: entity.DocTypeTaxCredit,
		Lines: []dto.SalesLineRequest{
			{ProductID: "pa", Quantity: 2},
			{ProductID: "pb", Quantity: 1},
		},
	}
}

// ── Tests ─────────────────────────────────────────────────────────────────────

// TestPostSalesInvoice_TotalesYStock: [{pa ×2 a 10.00}, {pb ×1 a 5.00}] debe
// dar subtotal 25.00, iva 3.25, total 28.25 y descontar 2 y 1 unidades.
func TestPostSalesInvoice_TotalesYStock(t *testing.T) {
	env := newSalesEnv(t)

	resp, err := env.uc.PostSalesInvoice(context.Background(), twoLineRequest())

	require.NoError(t, err)
	assert.True(t, resp.SubTotal.Equal(decimal.RequireFromString("25.00")), "subtotal: %s", resp.SubTotal)
	assert.True(t, resp.TaxTotal.Equal(decimal.RequireFromString("3.25")), "iva: %s", resp.TaxTotal)
	assert.True(t, resp.GrandTotal.Equal(decimal.RequireFromString("28.25")), "total: %s", resp.GrandTotal)
	assert.Equal(t, entity.InvoiceStatusActive, resp.Status)
	assert.Equal(t, int64(3), env.ledger.get("pa"))
	assert.Equal(t, int64(3), env.ledger.get("pb"))
	require.Len(t, resp.Details, 2)
	assert.Equal(t, "Taladro", resp.Details[0].Description, "la descripción es snapshot del nombre")
}

// TestPostSalesInvoice_StockInsuficienteRevierteTodo: si una línea posterior
// no alcanza, las líneas ya descontadas se reponen y ningún stock cambia.
func TestPostSalesInvoice_StockInsuficienteRevierteTodo(t *testing.T) {
	env := newSalesEnv(t)
	req := twoLineRequest()
	req.Lines[1].Quantity = 99 // pb solo tiene 4

	_, err := env.uc.PostSalesInvoice(context.Background(), req)

	require.Error(t, err)
	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.Equal(t, "pb", insErr.ProductID)
	assert.Equal(t, int64(99), insErr.Requested)
	assert.Equal(t, int64(4), insErr.Available)
	// pa fue descontado y repuesto; pb nunca cambió
	assert.Equal(t, int64(5), env.ledger.get("pa"))
	assert.Equal(t, int64(4), env.ledger.get("pb"))
	assert.Empty(t, env.invoices.invoices, "no debe persistirse factura parcial")
}

// TestPostSalesInvoice_ProductoInexistenteRevierte: producto fantasma en la
// segunda línea revierte el descuento de la primera.
func TestPostSalesInvoice_ProductoInexistenteRevierte(t *testing.T) {
	env := newSalesEnv(t)
	req := twoLineRequest()
	req.Lines[1].ProductID = "fantasma"

	_, err := env.uc.PostSalesInvoice(context.Background(), req)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, int64(5), env.ledger.get("pa"))
}

// TestPostSalesInvoice_ProductoInactivo: un producto inactivo cuenta como no
// encontrado para la venta.
func TestPostSalesInvoice_ProductoInactivo(t *testing.T) {
	env := newSalesEnv(t)
	req := twoLineRequest()
	req.Lines[0].ProductID = "px"

	_, err := env.uc.PostSalesInvoice(context.Background(), req)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, int64(9), env.ledger.get("px"))
}

// TestPostSalesInvoice_FallaPersistenciaRevierte: si el guardado falla tras
// reservar, el stock final es idéntico al previo para cada línea.
func TestPostSalesInvoice_FallaPersistenciaRevierte(t *testing.T) {
	env := newSalesEnv(t)
	env.invoices.failCreate = errors.New("conexión perdida")

	_, err := env.uc.PostSalesInvoice(context.Background(), twoLineRequest())

	require.Error(t, err)
	assert.Equal(t, int64(5), env.ledger.get("pa"))
	assert.Equal(t, int64(4), env.ledger.get("pb"))
	assert.Empty(t, env.invoices.invoices)
}

// TestPostSalesInvoice_SnapshotInmutable: cambiar el precio del producto
// después de facturar no altera los snapshots de la factura persistida.
func TestPostSalesInvoice_SnapshotInmutable(t *testing.T) {
	env := newSalesEnv(t)

	resp, err := env.uc.PostSalesInvoice(context.Background(), twoLineRequest())
	require.NoError(t, err)

	// El producto sube de precio después de emitida la factura
	p, _ := env.products.GetByID("pa")
	p.UnitPrice = decimal.RequireFromString("99.99")
	require.NoError(t, env.products.Update(p))

	fetched, err := env.uc.GetInvoice(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, fetched.Details[0].UnitPrice.Equal(decimal.RequireFromString("10.00")),
		"el precio de la línea es un registro de punto en el tiempo")
	assert.True(t, fetched.GrandTotal.Equal(resp.GrandTotal))
}

// TestPostSalesInvoice_ValidacionSinEfectos: entradas malformadas fallan
// rápido sin tocar stock.
func TestPostSalesInvoice_ValidacionSinEfectos(t *testing.T) {
	env := newSalesEnv(t)

	cases := []dto.CreateSalesInvoiceRequest{
		{ClientID: "c1", DocumentType: entity.DocTypeTicket, Lines: nil},
		{ClientID: "", DocumentType: entity.DocTypeTicket, Lines: []dto.SalesLineRequest{{ProductID: "pa", Quantity: 1}}},
		{ClientID: "c1", DocumentType: "Nota de Débito", Lines: []dto.SalesLineRequest{{ProductID: "pa", Quantity: 1}}},
		{ClientID: "c1", DocumentType: entity.DocTypeTicket, Lines: []dto.SalesLineRequest{{ProductID: "pa", Quantity: 0}}},
	}
	for i, req := range cases {
		_, err := env.uc.PostSalesInvoice(context.Background(), req)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "caso %d", i)
	}
	assert.Equal(t, int64(5), env.ledger.get("pa"))
	assert.Equal(t, int64(4), env.ledger.get("pb"))
}

// TestVoidInvoice: anular deja la factura recuperable con estado anulado y sin
// tocar stock; anular dos veces es conflicto.
func TestVoidInvoice(t *testing.T) {
	env := newSalesEnv(t)
	resp, err := env.uc.PostSalesInvoice(context.Background(), twoLineRequest())
	require.NoError(t, err)
	stockAfterSale := env.ledger.get("pa")

	require.NoError(t, env.uc.VoidInvoice(context.Background(), resp.ID))

	fetched, err := env.uc.GetInvoice(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusVoided, fetched.Status)
	assert.Equal(t, stockAfterSale, env.ledger.get("pa"), "anular no repone stock")

	err = env.uc.VoidInvoice(context.Background(), resp.ID)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	err = env.uc.VoidInvoice(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// TestPostSalesInvoice_FechaYNumero: el número lleva prefijo por tipo de
// documento y la fecha de emisión es reciente.
func TestPostSalesInvoice_FechaYNumero(t *testing.T) {
	env := newSalesEnv(t)

	resp, err := env.uc.PostSalesInvoice(context.Background(), twoLineRequest())

	require.NoError(t, err)
	assert.Regexp(t, `^CCF-\d+-[0-9A-F]{8}$`, resp.Number)
	assert.WithinDuration(t, time.Now(), resp.Date, 5*time.Second)
}

// TestPostSalesInvoice_DetalleConservaElOrden: las líneas se recuperan en el
// orden de captura, no en orden de id ni alfabético.
func TestPostSalesInvoice_DetalleConservaElOrden(t *testing.T) {
	env := newSalesEnv(t)

	resp, err := env.uc.PostSalesInvoice(context.Background(), dto.CreateSalesInvoiceRequest{
		ClientID:     "c1",
		DocumentType: entity.DocTypeTicket,
		Lines: []dto.SalesLineRequest{
			{ProductID: "pb", Quantity: 1},
			{ProductID: "pa", Quantity: 1},
		},
	})
	require.NoError(t, err)

	fetched, err := env.uc.GetInvoice(context.Background(), resp.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Details, 2)
	assert.Equal(t, "pb", fetched.Details[0].ProductID)
	assert.Equal(t, "pa", fetched.Details[1].ProductID)
}

// TestPostSalesInvoice_NumerosUnicosEnElMismoSegundo: dos emisiones
// consecutivas (mismo epoch) nunca comparten número de documento.
func TestPostSalesInvoice_NumerosUnicosEnElMismoSegundo(t *testing.T) {
	env := newSalesEnv(t)

	req := dto.CreateSalesInvoiceRequest{
		ClientID:     "c1",
		DocumentType: entity.DocTypeTicket,
		Lines:        []dto.SalesLineRequest{{ProductID: "pa", Quantity: 1}},
	}
	first, err := env.uc.PostSalesInvoice(context.Background(), req)
	require.NoError(t, err)
	second, err := env.uc.PostSalesInvoice(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.Number, second.Number)
}
