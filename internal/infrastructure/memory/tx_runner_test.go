package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

func seedBatch(t *testing.T, store *Store, id string, qty int64) {
	t.Helper()
	repo := NewStockBatchRepository(store)
	require.NoError(t, repo.Create(&entity.StockBatch{
		ID:              id,
		ComponentID:     "comp-x",
		VendorID:        "vendor-1",
		BatchNumber:     "L-" + id,
		InitialQuantity: qty,
		CurrentQuantity: qty,
		DateReceived:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}))
}

func TestTxRunner_CommitAplicaTodo(t *testing.T) {
	store := NewStore()
	seedBatch(t, store, "b1", 10)
	runner := NewTxRunner(store)

	err := runner.Run(context.Background(), func(
		batchRepo repository.StockBatchRepository,
		assemblyRepo repository.AssemblyRepository,
		consumptionRepo repository.ConsumptionRecordRepository,
	) error {
		if err := batchRepo.Decrement(context.Background(), "b1", 4); err != nil {
			return err
		}
		return assemblyRepo.Create(context.Background(), &entity.Assembly{
			ID: "a1", SerialNumber: "SN-1", ProductID: "p1",
			Status: entity.AssemblyStatusInProgress,
		})
	})
	require.NoError(t, err)

	b, _ := NewStockBatchRepository(store).GetByID("b1")
	assert.Equal(t, int64(6), b.CurrentQuantity)
	a, _ := NewAssemblyRepository(store).GetByID("a1")
	assert.NotNil(t, a)
}

// Si fn falla a mitad de camino, el journal revierte decrementos, ensamblajes
// y registros de consumo, en orden inverso a como se aplicaron.
func TestTxRunner_ErrorDeshaceElJournal(t *testing.T) {
	store := NewStore()
	seedBatch(t, store, "b1", 10)
	seedBatch(t, store, "b2", 8)
	runner := NewTxRunner(store)

	boom := errors.New("falla simulada en fase tardía")
	err := runner.Run(context.Background(), func(
		batchRepo repository.StockBatchRepository,
		assemblyRepo repository.AssemblyRepository,
		consumptionRepo repository.ConsumptionRecordRepository,
	) error {
		require.NoError(t, batchRepo.Decrement(context.Background(), "b1", 10))
		require.NoError(t, batchRepo.Decrement(context.Background(), "b2", 3))
		require.NoError(t, assemblyRepo.Create(context.Background(), &entity.Assembly{
			ID: "a1", SerialNumber: "SN-1", ProductID: "p1",
			Status: entity.AssemblyStatusInProgress,
		}))
		require.NoError(t, consumptionRepo.Create(context.Background(), &entity.ConsumptionRecord{
			ID: "r1", AssemblyID: "a1", BatchID: "b1", ComponentID: "comp-x", QuantityUsed: 10,
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	batches := NewStockBatchRepository(store)
	b1, _ := batches.GetByID("b1")
	b2, _ := batches.GetByID("b2")
	assert.Equal(t, int64(10), b1.CurrentQuantity)
	assert.Equal(t, int64(8), b2.CurrentQuantity)

	a, _ := NewAssemblyRepository(store).GetByID("a1")
	assert.Nil(t, a, "el ensamblaje de la transacción fallida no debe sobrevivir")
	recs, _ := NewConsumptionRepository(store).ListByAssembly("a1")
	assert.Empty(t, recs)

	// La serie queda libre para un reintento.
	err = NewAssemblyRepository(store).Create(context.Background(), &entity.Assembly{
		ID: "a2", SerialNumber: "SN-1", ProductID: "p1",
		Status: entity.AssemblyStatusInProgress,
	})
	assert.NoError(t, err)
}

// Una compensación imposible nunca se silencia: escala como ErrPartialCommit
// conservando la causa original en el mensaje.
func TestTxRunner_CompensacionImposibleEscalaPartialCommit(t *testing.T) {
	store := NewStore()
	seedBatch(t, store, "b1", 10)
	runner := NewTxRunner(store)
	runner.failCompensation = true

	boom := errors.New("falla original")
	err := runner.Run(context.Background(), func(
		batchRepo repository.StockBatchRepository,
		assemblyRepo repository.AssemblyRepository,
		consumptionRepo repository.ConsumptionRecordRepository,
	) error {
		require.NoError(t, batchRepo.Decrement(context.Background(), "b1", 5))
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPartialCommit)
	assert.Contains(t, err.Error(), "falla original")
}

func TestStockBatchRepo_DecrementoCondicional(t *testing.T) {
	store := NewStore()
	seedBatch(t, store, "b1", 5)
	repo := NewStockBatchRepository(store)

	err := repo.Decrement(context.Background(), "b1", 6)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	b, _ := repo.GetByID("b1")
	assert.Equal(t, int64(5), b.CurrentQuantity, "un decremento rechazado no muta nada")

	require.NoError(t, repo.Decrement(context.Background(), "b1", 5))
	b, _ = repo.GetByID("b1")
	assert.True(t, b.IsDepleted())
}

func TestStockBatchRepo_IncrementNoSuperaLaCantidadInicial(t *testing.T) {
	store := NewStore()
	seedBatch(t, store, "b1", 10)
	repo := NewStockBatchRepository(store)

	require.NoError(t, repo.Decrement(context.Background(), "b1", 4))
	require.NoError(t, repo.Increment(context.Background(), "b1", 4))

	b, _ := repo.GetByID("b1")
	assert.Equal(t, int64(10), b.CurrentQuantity)

	err := repo.Increment(context.Background(), "b1", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "reponer por encima de lo recibido es un ajuste inválido")
}
