package repository

import "github.com/rmelara/facturacion-sv/internal/domain/entity"

// ProductFilter filtros opcionales del listado de productos.
type ProductFilter struct {
	Name     string // coincidencia parcial, case-insensitive
	Category string
	Status   string
}

// ProductRepository puerto de persistencia del catálogo de productos.
// Las mutaciones de stock NO pasan por aquí: son exclusivas de StockRepository.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	List(filter ProductFilter, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
}
