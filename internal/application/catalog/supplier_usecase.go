package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rmelara/facturacion-sv/internal/application/dto"
	"github.com/rmelara/facturacion-sv/internal/domain"
	"github.com/rmelara/facturacion-sv/internal/domain/entity"
	"github.com/rmelara/facturacion-sv/internal/domain/repository"
)

// SupplierUseCase casos de uso de proveedores.
type SupplierUseCase struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso de proveedores.
func NewSupplierUseCase(supplierRepo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{supplierRepo: supplierRepo}
}

// CreateSupplier da de alta un proveedor. El NRC es único: el repositorio
// retorna domain.ErrDuplicate si ya está registrado.
func (uc *SupplierUseCase) CreateSupplier(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" || in.Phone == "" || in.Address == "" || in.NRC == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Phone:     in.Phone,
		Address:   in.Address,
		Email:     in.Email,
		NRC:       in.NRC,
		Contact:   in.Contact,
		Status:    entity.StatusActive,
		CreatedAt: time.Now(),
	}
	if err := uc.supplierRepo.Create(supplier); err != nil {
		return nil, fmt.Errorf("crear proveedor: %w", err)
	}
	return toSupplierResponse(supplier), nil
}

// GetSupplier obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("obtener proveedor: %w", err)
	}
	if supplier == nil {
		return nil, &domain.NotFoundError{Resource: "proveedor", ID: id}
	}
	return toSupplierResponse(supplier), nil
}

// ListSuppliers lista proveedores.
func (uc *SupplierUseCase) ListSuppliers(ctx context.Context, limit, offset int) ([]dto.SupplierResponse, error) {
	suppliers, err := uc.supplierRepo.List(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar proveedores: %w", err)
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		Address:   s.Address,
		Email:     s.Email,
		NRC:       s.NRC,
		Contact:   s.Contact,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}
