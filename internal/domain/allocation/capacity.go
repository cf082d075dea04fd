package allocation

import "github.com/jhoicas/Manufactura-api/internal/domain/entity"

// Capacity es el resultado del cálculo de capacidad de producción.
// Limiting contiene todos los componentes cuyo stock empata en el mínimo:
// los empates se reportan como conjunto, no se elige un único "ganador".
type Capacity struct {
	MaxProducible int64
	Limiting      []string
}

// MaxProducible calcula cuántas unidades completas se pueden producir con el
// stock disponible: para cada línea del BOM floor(disponible / cantidadPorUnidad),
// y el resultado es el mínimo sobre todas las líneas.
//
// Un BOM vacío produce capacidad 0: es un error de configuración del producto,
// nunca "capacidad infinita". Es una lectura instantánea sin efectos: el número
// es consultivo, no una reserva.
func MaxProducible(entries []*entity.BOMEntry, available map[string]int64) Capacity {
	if len(entries) == 0 {
		return Capacity{MaxProducible: 0}
	}

	units := make([]int64, len(entries))
	min := int64(-1)
	for i, e := range entries {
		if e.QuantityPerUnit <= 0 {
			// BOM corrupto: una línea sin cantidad válida no aporta capacidad.
			units[i] = 0
		} else {
			units[i] = available[e.ComponentID] / e.QuantityPerUnit
		}
		if min < 0 || units[i] < min {
			min = units[i]
		}
	}

	var limiting []string
	for i, e := range entries {
		if units[i] == min {
			limiting = append(limiting, e.ComponentID)
		}
	}
	return Capacity{MaxProducible: min, Limiting: limiting}
}
