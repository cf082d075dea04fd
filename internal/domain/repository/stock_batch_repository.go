package repository

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// StockBatchRepository es el libro de stock por lotes (StockLedger): el único
// punto del sistema que muta current_quantity. Toda la disciplina de
// concurrencia del motor de producción se concentra aquí.
//
// Orden de enumeración: siempre date_received ASC con el ID como desempate,
// para que la asignación FIFO sea reproducible.
type StockBatchRepository interface {
	Create(batch *entity.StockBatch) error
	GetByID(id string) (*entity.StockBatch, error)

	// ListAvailable devuelve los lotes con stock (> 0) de un componente en orden FIFO.
	ListAvailable(ctx context.Context, componentID string) ([]*entity.StockBatch, error)
	// ListAll incluye lotes agotados (vistas de auditoría / trazabilidad).
	ListAll(ctx context.Context, componentID string) ([]*entity.StockBatch, error)
	// ListAvailableForUpdate es ListAvailable bloqueando las filas (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	ListAvailableForUpdate(ctx context.Context, componentID string) ([]*entity.StockBatch, error)

	// TotalAvailable suma current_quantity sobre todos los lotes del componente.
	TotalAvailable(ctx context.Context, componentID string) (int64, error)

	// Decrement descuenta amount del lote de forma condicional y atómica:
	// falla con ErrInsufficientStock si el disponible actual es menor que amount
	// (nunca deja la cantidad en negativo). Usable dentro de una transacción mayor.
	Decrement(ctx context.Context, batchID string, amount int64) error
	// Increment repone amount al lote (correcciones y compensaciones).
	Increment(ctx context.Context, batchID string, amount int64) error
	// Correct fija current_quantity en un valor explícito (ajuste manual auditado).
	// Falla con ErrInvalidInput si viola 0 <= qty <= initial_quantity.
	Correct(ctx context.Context, batchID string, newQuantity int64) error
}
