package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Manufactura-api/internal/application/production"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. El motor de
// producción obtiene así su todo-o-nada: decrementos, ensamblajes y registros
// de consumo se confirman juntos o se revierten juntos.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Un rollback que falla tras un error de fn deja el estado
// en manos del servidor (la tx muere con la conexión), pero se reporta como
// ErrPartialCommit para que el caso de uso dispare la alarma de conciliación.
func (r *TxRunner) Run(ctx context.Context, fn func(
	batchRepo repository.StockBatchRepository,
	assemblyRepo repository.AssemblyRepository,
	consumptionRepo repository.ConsumptionRecordRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	batchRepo := NewStockBatchRepository(tx)
	assemblyRepo := NewAssemblyRepository(tx)
	consumptionRepo := NewConsumptionRepository(tx)

	if err := fn(batchRepo, assemblyRepo, consumptionRepo); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Error().Err(rbErr).
				Str("original_error", err.Error()).
				Msg("rollback de transacción de producción falló")
			return fmt.Errorf("%w (causa original: %v)", domain.ErrPartialCommit, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
