package entity

import "time"

// ConsumptionRecord vincula una unidad producida
// con un lote de stock y la cantidad que esa unidad consumió de ese lote.
// Es un hecho histórico: se crea en el commit de producción y nunca se modifica.
// Es la base de la trazabilidad (qué lote entró en qué serie) y de la
// atribución de defectos por lote.
type ConsumptionRecord struct {
	ID           string
	AssemblyID   string
	BatchID      string
	ComponentID  string
	QuantityUsed int64
	CreatedAt    time.Time
}
