package dto

import "time"

// CreateSupplierRequest body para POST /api/proveedores. NRC es único.
type CreateSupplierRequest struct {
	Name    string `json:"nombre" validate:"required"`
	Phone   string `json:"telefono" validate:"required"`
	Address string `json:"direccion" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	NRC     string `json:"nrc" validate:"required"`
	Contact string `json:"contacto"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Phone     string    `json:"telefono"`
	Address   string    `json:"direccion"`
	Email     string    `json:"email,omitempty"`
	NRC       string    `json:"nrc"`
	Contact   string    `json:"contacto,omitempty"`
	Status    string    `json:"estado"`
	CreatedAt time.Time `json:"fecha_creado"`
}
