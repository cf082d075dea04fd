package allocation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Manufactura-api/internal/domain/allocation"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

func bomEntry(componentID string, perUnit int64) *entity.BOMEntry {
	return &entity.BOMEntry{
		ProductID:       "prod-p",
		ComponentID:     componentID,
		QuantityPerUnit: perUnit,
	}
}

// Escenario C del diseño: P requiere 2×X y 1×Y; con X=20 y Y=9 la capacidad
// es min(floor(20/2), floor(9/1)) = 9 y el componente limitante es Y.
func TestMaxProducible_MinimoSobreComponentes(t *testing.T) {
	entries := []*entity.BOMEntry{
		bomEntry("comp-x", 2),
		bomEntry("comp-y", 1),
	}
	available := map[string]int64{"comp-x": 20, "comp-y": 9}

	cap := allocation.MaxProducible(entries, available)

	assert.Equal(t, int64(9), cap.MaxProducible)
	assert.Equal(t, []string{"comp-y"}, cap.Limiting, "Y limita la producción")
}

// BOM vacío es un error de configuración: capacidad 0, nunca "infinita".
func TestMaxProducible_BOMVacioEsCero(t *testing.T) {
	cap := allocation.MaxProducible(nil, map[string]int64{"comp-x": 100})

	assert.Equal(t, int64(0), cap.MaxProducible)
	assert.Empty(t, cap.Limiting)
}

// Los empates en el mínimo se reportan como conjunto, no un único ganador.
func TestMaxProducible_EmpatesSeReportanComoConjunto(t *testing.T) {
	entries := []*entity.BOMEntry{
		bomEntry("comp-x", 2),
		bomEntry("comp-y", 3),
		bomEntry("comp-z", 1),
	}
	// X: 10/2 = 5, Y: 15/3 = 5, Z: 50/1 = 50 → limitan X e Y.
	available := map[string]int64{"comp-x": 10, "comp-y": 15, "comp-z": 50}

	cap := allocation.MaxProducible(entries, available)

	assert.Equal(t, int64(5), cap.MaxProducible)
	assert.ElementsMatch(t, []string{"comp-x", "comp-y"}, cap.Limiting)
}

// La división es entera: 9 unidades con requerimiento de 2 por unidad
// solo alcanzan para 4 productos completos.
func TestMaxProducible_DivisionEntera(t *testing.T) {
	entries := []*entity.BOMEntry{bomEntry("comp-x", 2)}

	cap := allocation.MaxProducible(entries, map[string]int64{"comp-x": 9})
	assert.Equal(t, int64(4), cap.MaxProducible)
}

// Componente sin stock registrado cuenta como disponible 0.
func TestMaxProducible_ComponenteSinStock(t *testing.T) {
	entries := []*entity.BOMEntry{
		bomEntry("comp-x", 1),
		bomEntry("comp-sin-stock", 1),
	}

	cap := allocation.MaxProducible(entries, map[string]int64{"comp-x": 40})

	assert.Equal(t, int64(0), cap.MaxProducible)
	assert.Equal(t, []string{"comp-sin-stock"}, cap.Limiting)
}

// Monotonía: aumentar el disponible de cualquier componente nunca reduce la
// capacidad; reducirlo nunca la aumenta.
func TestMaxProducible_EsMonotona(t *testing.T) {
	entries := []*entity.BOMEntry{
		bomEntry("comp-x", 2),
		bomEntry("comp-y", 5),
	}
	base := map[string]int64{"comp-x": 21, "comp-y": 33}
	baseline := allocation.MaxProducible(entries, base).MaxProducible

	for _, comp := range []string{"comp-x", "comp-y"} {
		for _, delta := range []int64{1, 7, 100} {
			more := map[string]int64{"comp-x": base["comp-x"], "comp-y": base["comp-y"]}
			more[comp] += delta
			assert.GreaterOrEqual(t, allocation.MaxProducible(entries, more).MaxProducible, baseline,
				"subir stock de %s en %d no puede bajar la capacidad", comp, delta)

			less := map[string]int64{"comp-x": base["comp-x"], "comp-y": base["comp-y"]}
			less[comp] -= delta
			if less[comp] < 0 {
				less[comp] = 0
			}
			assert.LessOrEqual(t, allocation.MaxProducible(entries, less).MaxProducible, baseline,
				"bajar stock de %s en %d no puede subir la capacidad", comp, delta)
		}
	}
}
