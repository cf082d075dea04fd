package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/application/usecase"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/infrastructure/memory"
)

func newComponentFixture() (*usecase.ComponentUseCase, *memory.StockBatchRepo) {
	store := memory.NewStore()
	batchRepo := memory.NewStockBatchRepository(store)
	return usecase.NewComponentUseCase(memory.NewComponentRepository(store), batchRepo), batchRepo
}

func TestComponentCreate_SKUDuplicado(t *testing.T) {
	uc, _ := newComponentFixture()

	_, err := uc.Create(context.Background(), dto.CreateComponentRequest{SKU: "RES-10K", Name: "Resistencia 10k"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateComponentRequest{SKU: "RES-10K", Name: "Otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestComponentGetByID_IncluyeDisponibleAgregado(t *testing.T) {
	uc, batchRepo := newComponentFixture()

	created, err := uc.Create(context.Background(), dto.CreateComponentRequest{
		SKU: "CAP-100", Name: "Capacitor 100uF", MinimumQuantity: 50,
	})
	require.NoError(t, err)

	for i, qty := range []int64{30, 25} {
		require.NoError(t, batchRepo.Create(&entity.StockBatch{
			ID: created.ID + "-b" + string(rune('1'+i)), ComponentID: created.ID,
			VendorID: "v1", BatchNumber: "L", InitialQuantity: qty, CurrentQuantity: qty,
			DateReceived: time.Date(2025, 3, 1+i, 0, 0, 0, 0, time.UTC),
		}))
	}

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(55), got.TotalAvailable)
}

func TestComponentUpdate_SoloMetadatos(t *testing.T) {
	uc, _ := newComponentFixture()
	created, err := uc.Create(context.Background(), dto.CreateComponentRequest{SKU: "TOR-M3", Name: "Tornillo M3"})
	require.NoError(t, err)

	newName := "Tornillo M3 inox"
	newMin := int64(500)
	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateComponentRequest{
		Name: &newName, MinimumQuantity: &newMin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tornillo M3 inox", updated.Name)
	assert.Equal(t, int64(500), updated.MinimumQuantity)
	assert.Equal(t, "TOR-M3", updated.SKU, "el SKU es inmutable")

	badMin := int64(-1)
	_, err = uc.Update(context.Background(), created.ID, dto.UpdateComponentRequest{MinimumQuantity: &badMin})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReorderAlerts_SoloComponentesBajoMinimo(t *testing.T) {
	uc, batchRepo := newComponentFixture()

	short, err := uc.Create(context.Background(), dto.CreateComponentRequest{
		SKU: "A-CORTO", Name: "Corto", MinimumQuantity: 100,
	})
	require.NoError(t, err)
	ok, err := uc.Create(context.Background(), dto.CreateComponentRequest{
		SKU: "B-SANO", Name: "Sano", MinimumQuantity: 10,
	})
	require.NoError(t, err)

	require.NoError(t, batchRepo.Create(&entity.StockBatch{
		ID: "b1", ComponentID: short.ID, VendorID: "v1", BatchNumber: "L1",
		InitialQuantity: 40, CurrentQuantity: 40,
		DateReceived: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, batchRepo.Create(&entity.StockBatch{
		ID: "b2", ComponentID: ok.ID, VendorID: "v1", BatchNumber: "L2",
		InitialQuantity: 80, CurrentQuantity: 80,
		DateReceived: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}))

	alerts, err := uc.ReorderAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, short.ID, alerts[0].ComponentID)
	assert.Equal(t, int64(40), alerts[0].TotalAvailable)
	assert.Equal(t, int64(160), alerts[0].SuggestedOrder, "reponer hasta 2×mínimo")
}
