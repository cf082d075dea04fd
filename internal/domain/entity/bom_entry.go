package entity

import "time"

// BOMEntry es una línea de la lista de materiales: cuántas unidades de un
// componente requiere una unidad del producto. Única por (producto, componente).
// Invariante: QuantityPerUnit > 0.
type BOMEntry struct {
	ID              string
	ProductID       string
	ComponentID     string
	QuantityPerUnit int64
	CreatedAt       time.Time
}
