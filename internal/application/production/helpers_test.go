package production_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Manufactura-api/internal/application/production"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/infrastructure/memory"
)

func ctx() context.Context { return context.Background() }

// fixture arma una planta en memoria lista para los tests del motor:
// repos reales (adaptadores memory) + casos de uso cableados como en main.
type fixture struct {
	store        *memory.Store
	batchRepo    *memory.StockBatchRepo
	productRepo  *memory.ProductRepo
	bomRepo      *memory.BOMRepo
	assemblyRepo *memory.AssemblyRepo
	consumption  *memory.ConsumptionRepo

	capacity *production.CapacityUseCase
	plan     *production.PlanUseCase
	commit   *production.CommitUseCase
}

func newFixture() *fixture {
	store := memory.NewStore()
	f := &fixture{
		store:        store,
		batchRepo:    memory.NewStockBatchRepository(store),
		productRepo:  memory.NewProductRepository(store),
		bomRepo:      memory.NewBOMRepository(store),
		assemblyRepo: memory.NewAssemblyRepository(store),
		consumption:  memory.NewConsumptionRepository(store),
	}
	runner := memory.NewTxRunner(store)
	f.capacity = production.NewCapacityUseCase(f.productRepo, f.bomRepo, f.batchRepo)
	f.plan = production.NewPlanUseCase(f.productRepo, f.bomRepo, f.batchRepo)
	f.commit = production.NewCommitUseCase(runner, f.productRepo, f.bomRepo)
	return f
}

func (f *fixture) addProduct(name, model string) string {
	id := uuid.New().String()
	now := time.Now()
	_ = f.productRepo.Create(&entity.Product{
		ID: id, Name: name, ModelNumber: model, CreatedAt: now, UpdatedAt: now,
	})
	return id
}

func (f *fixture) addBOMEntry(productID, componentID string, perUnit int64) {
	_ = f.bomRepo.Add(&entity.BOMEntry{
		ID:              uuid.New().String(),
		ProductID:       productID,
		ComponentID:     componentID,
		QuantityPerUnit: perUnit,
		CreatedAt:       time.Now(),
	})
}

func (f *fixture) addBatch(id, componentID string, qty int64, receivedDay int) {
	_ = f.batchRepo.Create(&entity.StockBatch{
		ID:              id,
		ComponentID:     componentID,
		VendorID:        "vendor-1",
		BatchNumber:     "L-" + id,
		InitialQuantity: qty,
		CurrentQuantity: qty,
		DateReceived:    time.Date(2025, 3, receivedDay, 0, 0, 0, 0, time.UTC),
	})
}

func (f *fixture) totalAvailable(componentID string) int64 {
	total, _ := f.batchRepo.TotalAvailable(ctx(), componentID)
	return total
}

func (f *fixture) batchQuantity(batchID string) int64 {
	b, _ := f.batchRepo.GetByID(batchID)
	if b == nil {
		return -1
	}
	return b.CurrentQuantity
}
