package repository

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// ReorderAlertRow es el resultado crudo de la consulta de componentes bajo
// su cantidad mínima (disponible agregado sobre todos los lotes).
type ReorderAlertRow struct {
	ComponentID     string
	SKU             string
	Name            string
	Category        string
	MinimumQuantity int64
	TotalAvailable  int64
}

// ComponentRepository define el puerto de persistencia para componentes.
type ComponentRepository interface {
	Create(component *entity.Component) error
	GetByID(id string) (*entity.Component, error)
	GetBySKU(sku string) (*entity.Component, error)
	Update(component *entity.Component) error
	List(limit, offset int) ([]*entity.Component, error)
	// ListBelowMinimum devuelve los componentes cuyo disponible total
	// (suma de current_quantity de sus lotes) está bajo la cantidad mínima.
	ListBelowMinimum(ctx context.Context) ([]ReorderAlertRow, error)
}
