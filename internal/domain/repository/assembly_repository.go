package repository

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// AssemblyRepository define el puerto de persistencia para unidades producidas.
// La unicidad del número de serie la garantiza la base (constraint única):
// Create devuelve ErrDuplicate si la serie ya existe.
type AssemblyRepository interface {
	Create(ctx context.Context, assembly *entity.Assembly) error
	GetByID(id string) (*entity.Assembly, error)
	GetBySerialNumber(serial string) (*entity.Assembly, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.Assembly, error)
	// UpdateStatus cambia el estado solo si el estado actual coincide con from
	// (guarda optimista contra transiciones concurrentes de calidad).
	UpdateStatus(ctx context.Context, id, from, to string) error
}

// ConsumptionRecordRepository define el puerto para el rastro de consumo
// lote → ensamblaje. Solo inserción y lectura: los registros son inmutables.
type ConsumptionRecordRepository interface {
	Create(ctx context.Context, record *entity.ConsumptionRecord) error
	ListByAssembly(assemblyID string) ([]*entity.ConsumptionRecord, error)
	ListByBatch(batchID string) ([]*entity.ConsumptionRecord, error)
}
