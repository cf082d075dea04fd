package entity

import "time"

// Component representa una materia prima o parte comprada que entra en los ensamblajes.
// El stock no vive aquí: se lleva por lote en StockBatch (trazabilidad por recepción).
type Component struct {
	ID              string
	SKU             string // código único
	Name            string
	Category        string // electrónico, mecánico, consumible, etc.
	MinimumQuantity int64  // punto de reorden: alerta cuando el disponible total cae por debajo
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
