package repository

import "github.com/rmelara/facturacion-sv/internal/domain/entity"

// ClientFilter filtros opcionales del listado de clientes.
type ClientFilter struct {
	Name   string
	Kind   string
	Status string
}

// ClientRepository puerto de persistencia de clientes.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	List(filter ClientFilter, limit, offset int) ([]*entity.Client, error)
}
