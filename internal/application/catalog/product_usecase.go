// Package catalog contiene los casos de uso del catálogo: productos,
// clientes y proveedores.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/rmelara/facturacion-sv/internal/application/dto"
	"github.com/rmelara/facturacion-sv/internal/application/inventory"
	"github.com/rmelara/facturacion-sv/internal/domain"
	domainbilling "github.com/rmelara/facturacion-sv/internal/domain/billing"
	"github.com/rmelara/facturacion-sv/internal/domain/entity"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"

	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso del catálogo de productos. El precio de venta
// nunca se acepta del cliente: se deriva del costo con el IVA vigente en cada
// escritura del costo. El stock solo se toca aquí vía la corrección manual,
// que pasa por el ledger igual que los motores de factura.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	ledger      *inventory.StockLedger
	taxRate     decimal.Decimal
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(productRepo repository.ProductRepository, ledger *inventory.StockLedger, taxRate decimal.Decimal) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, ledger: ledger, taxRate: taxRate}
}

// CreateProduct da de alta un producto con el precio de venta derivado.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.UnitPrice.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SKU != "" {
		existing, err := uc.productRepo.GetBySKU(in.SKU)
		if err != nil {
			return nil, fmt.Errorf("verificar sku: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Brand:       in.Brand,
		Model:       in.Model,
		SKU:         in.SKU,
		UnitPrice:   in.UnitPrice,
		SalePrice:   domainbilling.SalePrice(in.UnitPrice, uc.taxRate),
		Stock:       in.Stock,
		Location:    in.Location,
		Status:      entity.StatusActive,
		EntryDate:   time.Now(),
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, fmt.Errorf("crear producto: %w", err)
	}
	log.Info().Str("producto", product.ID).Str("nombre", product.Name).Msg("producto creado")
	return toProductResponse(product), nil
}

// GetProduct obtiene un producto por ID.
func (uc *ProductUseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "producto", ID: id}
	}
	return toProductResponse(product), nil
}

// ListProducts lista productos con filtros opcionales.
func (uc *ProductUseCase) ListProducts(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.List(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// UpdateProduct actualiza atributos del producto. Si cambia el costo, el
// precio de venta se recalcula en la misma escritura. El stock NO se toca
// por esta vía.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "producto", ID: id}
	}

	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.Category != "" {
		product.Category = in.Category
	}
	if in.Brand != "" {
		product.Brand = in.Brand
	}
	if in.Model != "" {
		product.Model = in.Model
	}
	if in.Location != "" {
		product.Location = in.Location
	}
	if in.Status != "" {
		if in.Status != entity.StatusActive && in.Status != entity.StatusInactive {
			return nil, domain.ErrInvalidInput
		}
		product.Status = in.Status
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = *in.UnitPrice
		product.SalePrice = domainbilling.SalePrice(*in.UnitPrice, uc.taxRate)
	}

	if err := uc.productRepo.Update(product); err != nil {
		return nil, fmt.Errorf("actualizar producto: %w", err)
	}
	return toProductResponse(product), nil
}

// CorrectStock corrección manual de inventario: fija el stock en un valor
// absoluto a través del ledger.
func (uc *ProductUseCase) CorrectStock(ctx context.Context, id string, stock int64) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("obtener producto: %w", err)
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "producto", ID: id}
	}

	newStock, err := uc.ledger.Set(ctx, id, stock)
	if err != nil {
		return nil, err
	}
	log.Info().Str("producto", id).Int64("anterior", product.Stock).Int64("nuevo", newStock).
		Msg("corrección manual de stock")
	product.Stock = newStock
	return toProductResponse(product), nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Brand:       p.Brand,
		Model:       p.Model,
		SKU:         p.SKU,
		UnitPrice:   p.UnitPrice,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
		Location:    p.Location,
		Status:      p.Status,
		EntryDate:   p.EntryDate,
	}
}
