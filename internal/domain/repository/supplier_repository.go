package repository

import "github.com/rmelara/facturacion-sv/internal/domain/entity"

// SupplierRepository puerto de persistencia de proveedores.
// Create retorna domain.ErrDuplicate si el NRC ya está registrado.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
}
