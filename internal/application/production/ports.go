package production

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la garantía de todo-o-nada del commit de
// producción: si fn devuelve error no queda ningún decremento, ensamblaje ni
// registro de consumo aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.StockBatchRepository,
		assemblyRepo repository.AssemblyRepository,
		consumptionRepo repository.ConsumptionRecordRepository,
	) error) error
}
