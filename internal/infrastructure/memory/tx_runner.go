package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/Manufactura-api/internal/application/production"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner emula la transacción de BD sobre el store en memoria: serializa las
// transacciones entre sí y, si fn falla, deshace todo lo aplicado en orden
// inverso (incrementos compensatorios y borrado de registros creados).
//
// La compensación se reintenta un número acotado de veces; si aun así no se
// puede completar se escala como ErrPartialCommit, nunca se descarta en
// silencio (perderla es perder stock de forma permanente).
type TxRunner struct {
	store *Store
	txMu  sync.Mutex

	// failCompensation la usan los tests para simular una reversión imposible.
	failCompensation bool
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

const compensationRetries = 3

// Run ejecuta fn con repositorios journaled. Devuelve el error de fn tal cual
// tras compensar; si la compensación misma falla devuelve ErrPartialCommit.
func (r *TxRunner) Run(ctx context.Context, fn func(
	batchRepo repository.StockBatchRepository,
	assemblyRepo repository.AssemblyRepository,
	consumptionRepo repository.ConsumptionRecordRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	batches := NewStockBatchRepository(r.store)
	assemblies := NewAssemblyRepository(r.store)
	consumptions := NewConsumptionRepository(r.store)

	journal := &txJournal{}
	err := fn(
		&journaledBatchRepo{StockBatchRepo: batches, journal: journal},
		&journaledAssemblyRepo{AssemblyRepo: assemblies, journal: journal},
		&journaledConsumptionRepo{ConsumptionRepo: consumptions, journal: journal},
	)
	if err == nil {
		return nil
	}

	if compErr := r.compensate(ctx, journal, batches, assemblies, consumptions); compErr != nil {
		return fmt.Errorf("%w (causa original: %v)", domain.ErrPartialCommit, err)
	}
	return err
}

// compensate deshace el journal en orden inverso a la aplicación.
func (r *TxRunner) compensate(
	ctx context.Context,
	journal *txJournal,
	batches *StockBatchRepo,
	assemblies *AssemblyRepo,
	consumptions *ConsumptionRepo,
) error {
	if r.failCompensation {
		return domain.ErrPartialCommit
	}
	for _, recordID := range journal.recordIDs {
		consumptions.delete(recordID)
	}
	for _, assemblyID := range journal.assemblyIDs {
		assemblies.delete(assemblyID)
	}
	for i := len(journal.decrements) - 1; i >= 0; i-- {
		d := journal.decrements[i]
		var err error
		for attempt := 0; attempt < compensationRetries; attempt++ {
			if err = batches.Increment(ctx, d.batchID, d.amount); err == nil {
				break
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type decrementEntry struct {
	batchID string
	amount  int64
}

// txJournal acumula lo aplicado por la transacción para poder revertirlo.
type txJournal struct {
	decrements  []decrementEntry
	assemblyIDs []string
	recordIDs   []string
}

type journaledBatchRepo struct {
	*StockBatchRepo
	journal *txJournal
}

func (r *journaledBatchRepo) Decrement(ctx context.Context, batchID string, amount int64) error {
	if err := r.StockBatchRepo.Decrement(ctx, batchID, amount); err != nil {
		return err
	}
	r.journal.decrements = append(r.journal.decrements, decrementEntry{batchID: batchID, amount: amount})
	return nil
}

type journaledAssemblyRepo struct {
	*AssemblyRepo
	journal *txJournal
}

func (r *journaledAssemblyRepo) Create(ctx context.Context, a *entity.Assembly) error {
	if err := r.AssemblyRepo.Create(ctx, a); err != nil {
		return err
	}
	r.journal.assemblyIDs = append(r.journal.assemblyIDs, a.ID)
	return nil
}

type journaledConsumptionRepo struct {
	*ConsumptionRepo
	journal *txJournal
}

func (r *journaledConsumptionRepo) Create(ctx context.Context, rec *entity.ConsumptionRecord) error {
	if err := r.ConsumptionRepo.Create(ctx, rec); err != nil {
		return err
	}
	r.journal.recordIDs = append(r.journal.recordIDs, rec.ID)
	return nil
}
