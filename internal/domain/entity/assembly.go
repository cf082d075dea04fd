package entity

import "time"

// Estados válidos de un Assembly. El motor de producción crea los ensamblajes
// en IN_PROGRESS; las transiciones posteriores las maneja el módulo de calidad.
const (
	AssemblyStatusInProgress = "IN_PROGRESS"
	AssemblyStatusPassedQC   = "PASSED_QC"
	AssemblyStatusFailedQC   = "FAILED_QC"
	AssemblyStatusShipped    = "SHIPPED"
	AssemblyStatusReturned   = "RETURNED"
)

// allowedTransitions define el grafo de estados de calidad.
var allowedTransitions = map[string][]string{
	AssemblyStatusInProgress: {AssemblyStatusPassedQC, AssemblyStatusFailedQC},
	AssemblyStatusPassedQC:   {AssemblyStatusShipped},
	AssemblyStatusFailedQC:   {AssemblyStatusReturned},
	AssemblyStatusShipped:    {AssemblyStatusReturned},
}

// CanTransition indica si el cambio de estado from → to está permitido.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Assembly representa una unidad producida, identificada por su número de serie único.
// Cada ensamblaje conserva, vía ConsumptionRecord, exactamente qué lotes lo componen.
type Assembly struct {
	ID           string
	SerialNumber string
	ProductID    string
	Status       string
	ProducedAt   time.Time
	CreatedBy    string // usuario que ejecutó la corrida de producción
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
