package allocation

import (
	"fmt"

	"github.com/jhoicas/Manufactura-api/internal/domain"
)

// DistributeAcrossUnits reparte el plan de un componente entre las N unidades de
// una corrida: la unidad i (en orden de número de serie) recibe exactamente
// perUnit unidades, consumiendo las líneas del plan en orden FIFO. El corte es
// determinista: mismo plan y mismas series producen siempre las mismas rebanadas,
// lo que hace reproducible la trazabilidad lote → serie.
//
// El resultado tiene una rebanada por unidad; una rebanada puede cruzar lotes
// si el corte cae en medio de una línea del plan.
func DistributeAcrossUnits(plan Plan, perUnit int64, units int) ([]Plan, error) {
	if perUnit < 0 || units < 0 {
		return nil, domain.ErrInvalidInput
	}
	if plan.Total() != perUnit*int64(units) {
		return nil, fmt.Errorf("plan suma %d, se esperaban %d (%d por unidad × %d unidades): %w",
			plan.Total(), perUnit*int64(units), perUnit, units, domain.ErrInvalidInput)
	}

	slices := make([]Plan, units)
	lineIdx := 0
	var lineUsed int64 // cuánto de la línea actual ya se repartió

	for u := 0; u < units; u++ {
		need := perUnit
		var slice Plan
		for need > 0 {
			line := plan[lineIdx]
			avail := line.QuantityTaken - lineUsed
			take := avail
			if take > need {
				take = need
			}
			slice = append(slice, BatchLine{BatchID: line.BatchID, QuantityTaken: take})
			need -= take
			lineUsed += take
			if lineUsed == line.QuantityTaken {
				lineIdx++
				lineUsed = 0
			}
		}
		slices[u] = slice
	}
	return slices, nil
}
