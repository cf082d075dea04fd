package entity

import "time"

// Product representa un producto terminado que se ensambla a partir de componentes (BOM).
type Product struct {
	ID          string
	Name        string
	ModelNumber string // código de modelo único
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
