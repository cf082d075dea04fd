package allocation

import (
	"sort"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// Allocate arma el plan FIFO para un componente: recorre los lotes en orden de
// recepción (DateReceived asc, ID asc como desempate estable) tomando
// min(pendiente, disponible del lote) hasta cubrir totalRequired.
//
// Es una función pura: no muta lotes ni toca persistencia; el commit real lo
// hace el caso de uso de producción con el plan ya materializado.
//
// Reglas:
//   - totalRequired == 0 devuelve plan vacío (no es error).
//   - Nunca se incluye una línea con toma cero.
//   - Si los lotes no alcanzan, se descarta el plan parcial y se devuelve
//     InsufficientStockError con el faltante exacto.
func Allocate(componentID string, batches []*entity.StockBatch, totalRequired int64) (Plan, error) {
	if totalRequired < 0 {
		return nil, domain.ErrInvalidInput
	}
	if totalRequired == 0 {
		return Plan{}, nil
	}

	ordered := make([]*entity.StockBatch, len(batches))
	copy(ordered, batches)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].DateReceived.Equal(ordered[j].DateReceived) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].DateReceived.Before(ordered[j].DateReceived)
	})

	plan := make(Plan, 0, len(ordered))
	remaining := totalRequired
	for _, batch := range ordered {
		if batch.IsDepleted() {
			continue
		}
		take := batch.CurrentQuantity
		if take > remaining {
			take = remaining
		}
		plan = append(plan, BatchLine{BatchID: batch.ID, QuantityTaken: take})
		remaining -= take
		if remaining == 0 {
			return plan, nil
		}
	}

	// No alcanzó: el plan parcial se descarta, la asignación es todo-o-nada.
	return nil, domain.NewInsufficientStock(componentID, totalRequired, totalRequired-remaining)
}
