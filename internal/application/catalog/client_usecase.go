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

// ClientUseCase casos de uso de clientes de facturación.
type ClientUseCase struct {
	clientRepo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso de clientes.
func NewClientUseCase(clientRepo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{clientRepo: clientRepo}
}

// CreateClient da de alta un cliente. Un Contribuyente requiere NRC y Giro;
// a un Consumidor Final se le descartan si vinieran.
func (uc *ClientUseCase) CreateClient(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Kind {
	case entity.ClientKindTaxpayer:
		if in.NRC == "" || in.Giro == "" {
			return nil, domain.ErrInvalidInput
		}
	case entity.ClientKindFinalConsumer:
		in.NRC = ""
		in.Giro = ""
	default:
		return nil, domain.ErrInvalidInput
	}

	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Kind:      in.Kind,
		DUI:       in.DUI,
		NRC:       in.NRC,
		Giro:      in.Giro,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		District:  in.District,
		Status:    entity.StatusActive,
		CreatedAt: time.Now(),
	}
	if err := uc.clientRepo.Create(client); err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	return toClientResponse(client), nil
}

// GetClient obtiene un cliente por ID.
func (uc *ClientUseCase) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.clientRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if client == nil {
		return nil, &domain.NotFoundError{Resource: "cliente", ID: id}
	}
	return toClientResponse(client), nil
}

// ListClients lista clientes con filtros opcionales.
func (uc *ClientUseCase) ListClients(ctx context.Context, filter repository.ClientFilter, limit, offset int) ([]dto.ClientResponse, error) {
	clients, err := uc.clientRepo.List(filter, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Kind:      c.Kind,
		DUI:       c.DUI,
		NRC:       c.NRC,
		Giro:      c.Giro,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		District:  c.District,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
