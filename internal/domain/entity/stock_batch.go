package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockBatch representa un lote de recepción de un componente desde un proveedor.
// InitialQuantity es la foto al momento de la recepción y nunca cambia;
// CurrentQuantity solo baja por consumo en producción o cambia por corrección manual.
// Invariante: 0 <= CurrentQuantity <= InitialQuantity.
// DateReceived define el orden FIFO de consumo; el ID desempata lotes del mismo día.
type StockBatch struct {
	ID              string
	ComponentID     string
	VendorID        string
	BatchNumber     string // número visible del lote (etiqueta del proveedor)
	InitialQuantity int64
	CurrentQuantity int64
	UnitCost        decimal.Decimal // costo unitario de esta recepción
	DateReceived    time.Time
	ExpiryDate      *time.Time // nil si el componente no vence
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsDepleted indica si el lote ya no tiene unidades disponibles.
func (b *StockBatch) IsDepleted() bool {
	return b.CurrentQuantity <= 0
}
