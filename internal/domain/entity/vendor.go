package entity

import "time"

// Vendor representa un proveedor de componentes.
type Vendor struct {
	ID        string
	Name      string
	Contact   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
