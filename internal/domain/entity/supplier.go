package entity

import "time"

// Supplier representa un proveedor. NRC es único en todo el registro.
type Supplier struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	Email     string
	NRC       string
	Contact   string
	Status    string
	CreatedAt time.Time
}
