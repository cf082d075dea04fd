package allocation

import (
	"fmt"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// BatchLine es una toma concreta de stock: cuántas unidades salen de qué lote.
type BatchLine struct {
	BatchID       string
	QuantityTaken int64
}

// Plan es la lista ordenada de tomas para un componente. Sobre un plan válido
// la suma de QuantityTaken es exactamente el requerimiento: ni más ni menos.
type Plan []BatchLine

// Total suma las cantidades tomadas en el plan.
func (p Plan) Total() int64 {
	var total int64
	for _, line := range p {
		total += line.QuantityTaken
	}
	return total
}

// ValidatePlan verifica un plan (automático o manual) contra los lotes leídos:
// exactitud de la suma, que cada lote exista y pertenezca al componente, y que
// ninguna toma exceda el disponible del lote. Se usa antes de cualquier mutación,
// en particular para planes de override que arma el usuario en la UI.
func ValidatePlan(componentID string, plan Plan, totalRequired int64, batches []*entity.StockBatch) error {
	byID := make(map[string]*entity.StockBatch, len(batches))
	for _, b := range batches {
		byID[b.ID] = b
	}

	seen := make(map[string]bool, len(plan))
	for _, line := range plan {
		if line.QuantityTaken <= 0 {
			return fmt.Errorf("plan con toma no positiva en lote %s: %w", line.BatchID, domain.ErrInvalidInput)
		}
		if seen[line.BatchID] {
			return fmt.Errorf("plan con lote repetido %s: %w", line.BatchID, domain.ErrInvalidInput)
		}
		seen[line.BatchID] = true

		batch, ok := byID[line.BatchID]
		if !ok {
			return fmt.Errorf("lote %s: %w", line.BatchID, domain.ErrNotFound)
		}
		if batch.ComponentID != componentID {
			return fmt.Errorf("lote %s no pertenece al componente %s: %w", line.BatchID, componentID, domain.ErrInvalidInput)
		}
		if line.QuantityTaken > batch.CurrentQuantity {
			return domain.NewInsufficientStock(componentID, line.QuantityTaken, batch.CurrentQuantity)
		}
	}

	if got := plan.Total(); got != totalRequired {
		return fmt.Errorf("plan suma %d pero se requieren %d: %w", got, totalRequired, domain.ErrInvalidInput)
	}
	return nil
}
