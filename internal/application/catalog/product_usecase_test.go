package catalog_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/rmelara/facturacion-sv/internal/application/catalog"
	"github.com/rmelara/facturacion-sv/internal/application/dto"
	"github.com/rmelara/facturacion-sv/internal/application/inventory"
	"github.com/rmelara/facturacion-sv/internal/domain"
	"github.com/rmelara/facturacion-sv/internal/domain/entity"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

var iva = decimal.RequireFromString("0.13")

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
}

func (r *memProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}
func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			copia := *p
			return &copia, nil
		}
	}
	return nil, nil
}
func (r *memProductRepo) List(repository.ProductFilter, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

// memStockRepo stock sobre el mismo mapa de productos, para que la
// corrección via ledger sea observable por GetByID.
type memStockRepo struct{ repo *memProductRepo }

func (s *memStockRepo) DeductIfAvailable(_ context.Context, productID string, qty int64) (int64, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	p, ok := s.repo.products[productID]
	if !ok {
		return 0, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	if p.Stock < qty {
		return 0, &domain.InsufficientStockError{ProductID: productID, Requested: qty, Available: p.Stock}
	}
	p.Stock -= qty
	return p.Stock, nil
}
func (s *memStockRepo) Replenish(_ context.Context, productID string, qty int64) (int64, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	p, ok := s.repo.products[productID]
	if !ok {
		return 0, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	p.Stock += qty
	return p.Stock, nil
}
func (s *memStockRepo) Set(_ context.Context, productID string, qty int64) (int64, error) {
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()
	p, ok := s.repo.products[productID]
	if !ok {
		return 0, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	p.Stock = qty
	return p.Stock, nil
}

func newProductUC() (*catalog.ProductUseCase, *memProductRepo) {
	repo := &memProductRepo{products: map[string]*entity.Product{}}
	ledger := inventory.NewStockLedger(&memStockRepo{repo: repo})
	return catalog.NewProductUseCase(repo, ledger, iva), repo
}

// TestCreateProduct_DerivaPrecioVenta: 10.00 de costo con IVA 13% da precio
// de venta 11.30, redondeado a centavos.
func TestCreateProduct_DerivaPrecioVenta(t *testing.T) {
	uc, _ := newProductUC()

	resp, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:      "Taladro percutor",
		SKU:       "TAL-001",
		UnitPrice: decimal.RequireFromString("10.00"),
		Stock:     8,
	})

	require.NoError(t, err)
	assert.True(t, resp.SalePrice.Equal(decimal.RequireFromString("11.30")), "precio_venta: %s", resp.SalePrice)
	assert.Equal(t, entity.StatusActive, resp.Status)
	assert.Equal(t, int64(8), resp.Stock)
}

// TestCreateProduct_SKUDuplicado: dos productos con el mismo SKU se rechazan.
func TestCreateProduct_SKUDuplicado(t *testing.T) {
	uc, _ := newProductUC()
	req := dto.CreateProductRequest{Name: "Taladro", SKU: "TAL-001", UnitPrice: decimal.RequireFromString("10.00")}

	_, err := uc.CreateProduct(context.Background(), req)
	require.NoError(t, err)

	req.Name = "Otro taladro"
	_, err = uc.CreateProduct(context.Background(), req)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

// TestUpdateProduct_RecalculaPrecioAlCambiarCosto: cambiar el costo recalcula
// el precio de venta en la misma escritura; cambiar otros atributos no lo toca.
func TestUpdateProduct_RecalculaPrecioAlCambiarCosto(t *testing.T) {
	uc, _ := newProductUC()
	created, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name: "Martillo", UnitPrice: decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)

	nuevoCosto := decimal.RequireFromString("7.50")
	updated, err := uc.UpdateProduct(context.Background(), created.ID, dto.UpdateProductRequest{UnitPrice: &nuevoCosto})
	require.NoError(t, err)
	assert.True(t, updated.SalePrice.Equal(decimal.RequireFromString("8.48")), "7.50×1.13=8.475 → 8.48: %s", updated.SalePrice)

	// Renombrar no debe recalcular nada
	updated, err = uc.UpdateProduct(context.Background(), created.ID, dto.UpdateProductRequest{Name: "Martillo de uña"})
	require.NoError(t, err)
	assert.True(t, updated.SalePrice.Equal(decimal.RequireFromString("8.48")))
	assert.True(t, updated.UnitPrice.Equal(nuevoCosto))
}

// TestCorrectStock: la corrección manual fija el valor absoluto vía ledger y
// rechaza negativos.
func TestCorrectStock(t *testing.T) {
	uc, repo := newProductUC()
	created, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name: "Clavos", UnitPrice: decimal.RequireFromString("0.10"), Stock: 100,
	})
	require.NoError(t, err)

	resp, err := uc.CorrectStock(context.Background(), created.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.Stock)

	stored, _ := repo.GetByID(created.ID)
	assert.Equal(t, int64(42), stored.Stock)

	_, err = uc.CorrectStock(context.Background(), created.ID, -1)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	_, err = uc.CorrectStock(context.Background(), "no-existe", 5)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// TestUpdateProduct_EstadoInvalido: estados fuera del catálogo se rechazan.
func TestUpdateProduct_EstadoInvalido(t *testing.T) {
	uc, _ := newProductUC()
	created, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name: "Sierra", UnitPrice: decimal.RequireFromString("20.00"),
	})
	require.NoError(t, err)

	_, err = uc.UpdateProduct(context.Background(), created.ID, dto.UpdateProductRequest{Status: "suspendido"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	updated, err := uc.UpdateProduct(context.Background(), created.ID, dto.UpdateProductRequest{Status: entity.StatusInactive})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, updated.Status)
}
