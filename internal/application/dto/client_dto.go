package dto

import "time"

// CreateClientRequest body para POST /api/clientes.
// NRC y Giro solo tienen sentido para Contribuyente.
type CreateClientRequest struct {
	Name     string `json:"nombre" validate:"required"`
	Kind     string `json:"tipo" validate:"required,oneof='Consumidor Final' Contribuyente"`
	DUI      string `json:"dui"`
	NRC      string `json:"nrc"`
	Giro     string `json:"giro"`
	Address  string `json:"direccion"`
	Phone    string `json:"telefono"`
	Email    string `json:"correo" validate:"omitempty,email"`
	District string `json:"distrito"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Kind      string    `json:"tipo"`
	DUI       string    `json:"dui,omitempty"`
	NRC       string    `json:"nrc,omitempty"`
	Giro      string    `json:"giro,omitempty"`
	Address   string    `json:"direccion,omitempty"`
	Phone     string    `json:"telefono,omitempty"`
	Email     string    `json:"correo,omitempty"`
	District  string    `json:"distrito,omitempty"`
	Status    string    `json:"estado"`
	CreatedAt time.Time `json:"fecha_creacion"`
}
