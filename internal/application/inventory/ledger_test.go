package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/rmelara/facturacion-sv/internal/application/inventory"
	"github.com/rmelara/facturacion-sv/internal/domain"
)

// memStockRepo implementación en memoria del puerto de stock. El mutex
// reproduce la garantía del UPDATE condicional de PostgreSQL: verificación y
// decremento como una sola sección exclusiva por repositorio.
type memStockRepo struct {
	mu    sync.Mutex
	stock map[string]int64
}

func newMemStockRepo(initial map[string]int64) *memStockRepo {
	s := make(map[string]int64, len(initial))
	for k, v := range initial {
		s[k] = v
	}
	return &memStockRepo{stock: s}
}

func (m *memStockRepo) DeductIfAvailable(_ context.Context, productID string, qty int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.stock[productID]
	if !ok {
		return 0, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	if current < qty {
		return 0, &domain.InsufficientStockError{ProductID: productID, Requested: qty, Available: current}
	}
	m.stock[productID] = current - qty
	return m.stock[productID], nil
}

func (m *memStockRepo) Replenish(_ context.Context, productID string, qty int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.stock[productID]
	if !ok {
		return 0, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	m.stock[productID] = current + qty
	return m.stock[productID], nil
}

func (m *memStockRepo) Set(_ context.Context, productID string, qty int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stock[productID]; !ok {
		return 0, &domain.NotFoundError{Resource: "producto", ID: productID}
	}
	m.stock[productID] = qty
	return qty, nil
}

func (m *memStockRepo) get(productID string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stock[productID]
}

func TestReserveAndDeduct_Descuenta(t *testing.T) {
	repo := newMemStockRepo(map[string]int64{"p1": 10})
	ledger := inventory.NewStockLedger(repo)

	newStock, err := ledger.ReserveAndDeduct(context.Background(), "p1", 3)

	require.NoError(t, err)
	assert.Equal(t, int64(7), newStock)
}

// TestReserveAndDeduct_StockInsuficiente: la verificación fallida no muta nada
// y el error lleva producto, solicitado y disponible.
func TestReserveAndDeduct_StockInsuficiente(t *testing.T) {
	repo := newMemStockRepo(map[string]int64{"p1": 2})
	ledger := inventory.NewStockLedger(repo)

	_, err := ledger.ReserveAndDeduct(context.Background(), "p1", 5)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.Equal(t, "p1", insErr.ProductID)
	assert.Equal(t, int64(5), insErr.Requested)
	assert.Equal(t, int64(2), insErr.Available)
	assert.Equal(t, int64(2), repo.get("p1"), "el stock no debe cambiar")
}

func TestReserveAndDeduct_ProductoInexistente(t *testing.T) {
	ledger := inventory.NewStockLedger(newMemStockRepo(nil))

	_, err := ledger.ReserveAndDeduct(context.Background(), "fantasma", 1)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReserveAndDeduct_CantidadInvalida(t *testing.T) {
	repo := newMemStockRepo(map[string]int64{"p1": 10})
	ledger := inventory.NewStockLedger(repo)

	for _, qty := range []int64{0, -1} {
		_, err := ledger.ReserveAndDeduct(context.Background(), "p1", qty)
		assert.True(t, errors.Is(err, domain.ErrInvalidQuantity), "qty=%d", qty)
	}
	assert.Equal(t, int64(10), repo.get("p1"))
}

func TestReplenish_IncrementaYValida(t *testing.T) {
	repo := newMemStockRepo(map[string]int64{"p1": 4})
	ledger := inventory.NewStockLedger(repo)

	newStock, err := ledger.Replenish(context.Background(), "p1", 6)
	require.NoError(t, err)
	assert.Equal(t, int64(10), newStock)

	_, err = ledger.Replenish(context.Background(), "p1", 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidQuantity))

	_, err = ledger.Replenish(context.Background(), "no-existe", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// TestReserveAndDeduct_ConcurrenciaSinSobreventa: 50 goroutines compitiendo por
// 30 unidades; exactamente 30 ganan y el stock termina en cero, nunca negativo.
func TestReserveAndDeduct_ConcurrenciaSinSobreventa(t *testing.T) {
	repo := newMemStockRepo(map[string]int64{"p1": 30})
	ledger := inventory.NewStockLedger(repo)

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.ReserveAndDeduct(context.Background(), "p1", 1); err == nil {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 30, granted, "solo deben concederse las unidades existentes")
	assert.Equal(t, int64(0), repo.get("p1"))
}
