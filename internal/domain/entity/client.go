package entity

import "time"

// Clasificación fiscal del cliente.
const (
	ClientKindFinalConsumer = "Consumidor Final"
	ClientKindTaxpayer      = "Contribuyente"
)

// Client representa un cliente de facturación.
// DUI identifica a personas naturales; NRC y Giro solo aplican a empresas
// (Contribuyente).
type Client struct {
	ID        string
	Name      string
	Kind      string // Consumidor Final | Contribuyente
	DUI       string
	NRC       string
	Giro      string // actividad económica
	Address   string
	Phone     string
	Email     string
	District  string
	Status    string
	CreatedAt time.Time
}
