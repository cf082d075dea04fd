package qc_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/internal/application/qc"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/infrastructure/memory"
)

func newQCFixture(t *testing.T) (*qc.StatusUseCase, *memory.AssemblyRepo, *memory.ConsumptionRepo) {
	t.Helper()
	store := memory.NewStore()
	assemblies := memory.NewAssemblyRepository(store)
	consumption := memory.NewConsumptionRepository(store)
	return qc.NewStatusUseCase(assemblies, consumption), assemblies, consumption
}

func seedAssembly(t *testing.T, repo *memory.AssemblyRepo, id, serial, status string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, repo.Create(context.Background(), &entity.Assembly{
		ID: id, SerialNumber: serial, ProductID: "prod-1",
		Status: status, ProducedAt: now, CreatedBy: "user-1",
		CreatedAt: now, UpdatedAt: now,
	}))
}

func TestUpdateStatus_TransicionesPermitidas(t *testing.T) {
	uc, assemblies, _ := newQCFixture(t)
	seedAssembly(t, assemblies, "a1", "SN-1", entity.AssemblyStatusInProgress)

	resp, err := uc.UpdateStatus(context.Background(), "a1", entity.AssemblyStatusPassedQC)
	require.NoError(t, err)
	assert.Equal(t, entity.AssemblyStatusPassedQC, resp.Status)

	resp, err = uc.UpdateStatus(context.Background(), "a1", entity.AssemblyStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.AssemblyStatusShipped, resp.Status)

	// Un envío puede volver como retorno.
	resp, err = uc.UpdateStatus(context.Background(), "a1", entity.AssemblyStatusReturned)
	require.NoError(t, err)
	assert.Equal(t, entity.AssemblyStatusReturned, resp.Status)
}

func TestUpdateStatus_TransicionesProhibidas(t *testing.T) {
	uc, assemblies, _ := newQCFixture(t)
	seedAssembly(t, assemblies, "a1", "SN-1", entity.AssemblyStatusInProgress)
	seedAssembly(t, assemblies, "a2", "SN-2", entity.AssemblyStatusFailedQC)

	cases := []struct {
		name string
		id   string
		to   string
	}{
		{"en proceso no puede enviarse directo", "a1", entity.AssemblyStatusShipped},
		{"rechazada no puede enviarse", "a2", entity.AssemblyStatusShipped},
		{"rechazada no puede aprobarse", "a2", entity.AssemblyStatusPassedQC},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.UpdateStatus(context.Background(), tc.id, tc.to)
			assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		})
	}
}

func TestUpdateStatus_EnsamblajeInexistente(t *testing.T) {
	uc, _, _ := newQCFixture(t)

	_, err := uc.UpdateStatus(context.Background(), "no-existe", entity.AssemblyStatusPassedQC)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetBySerial(t *testing.T) {
	uc, assemblies, _ := newQCFixture(t)
	seedAssembly(t, assemblies, "a1", "SN-42", entity.AssemblyStatusInProgress)

	resp, err := uc.GetBySerial(context.Background(), "SN-42")
	require.NoError(t, err)
	assert.Equal(t, "a1", resp.ID)

	_, err = uc.GetBySerial(context.Background(), "SN-otro")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetTrace_DevuelveElRastroDeConsumo(t *testing.T) {
	uc, assemblies, consumption := newQCFixture(t)
	seedAssembly(t, assemblies, "a1", "SN-1", entity.AssemblyStatusPassedQC)

	require.NoError(t, consumption.Create(context.Background(), &entity.ConsumptionRecord{
		ID: "r1", AssemblyID: "a1", BatchID: "b1", ComponentID: "comp-x", QuantityUsed: 2,
	}))
	require.NoError(t, consumption.Create(context.Background(), &entity.ConsumptionRecord{
		ID: "r2", AssemblyID: "a1", BatchID: "b2", ComponentID: "comp-y", QuantityUsed: 1,
	}))

	trace, err := uc.GetTrace(context.Background(), "a1")
	require.NoError(t, err)

	assert.Equal(t, "SN-1", trace.Assembly.SerialNumber)
	require.Len(t, trace.Consumption, 2)
	assert.Equal(t, "b1", trace.Consumption[0].BatchID)
	assert.Equal(t, "SN-1", trace.Consumption[0].SerialNumber)
	assert.Equal(t, int64(1), trace.Consumption[1].QuantityUsed)
}
