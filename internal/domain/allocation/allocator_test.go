package allocation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/allocation"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testComponentID = "comp-x"

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func batch(id string, qty int64, received time.Time) *entity.StockBatch {
	return &entity.StockBatch{
		ID:              id,
		ComponentID:     testComponentID,
		BatchNumber:     "L-" + id,
		InitialQuantity: qty,
		CurrentQuantity: qty,
		DateReceived:    received,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Allocate — llenado FIFO exacto
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A del diseño: B1 con 5 unidades (día 1) y B2 con 10 (día 2).
// Pedir 12 debe dar [(B1,5),(B2,7)]: se agota primero el lote más viejo.
func TestAllocate_FIFOCruzaLotes(t *testing.T) {
	batches := []*entity.StockBatch{
		batch("b2", 10, day(2)),
		batch("b1", 5, day(1)),
	}

	plan, err := allocation.Allocate(testComponentID, batches, 12)
	require.NoError(t, err)

	require.Len(t, plan, 2, "deben usarse exactamente dos lotes")
	assert.Equal(t, allocation.BatchLine{BatchID: "b1", QuantityTaken: 5}, plan[0],
		"el lote más viejo se consume completo primero")
	assert.Equal(t, allocation.BatchLine{BatchID: "b2", QuantityTaken: 7}, plan[1],
		"el segundo lote aporta solo el resto, nunca más de lo pedido")
	assert.Equal(t, int64(12), plan.Total(), "la suma del plan debe ser exacta")
}

// Escenario B: mismo stock (5+10), pedir 20 debe fallar con faltante 5
// y sin plan parcial (la asignación es todo-o-nada por componente).
func TestAllocate_InsuficienteReportaFaltanteExacto(t *testing.T) {
	batches := []*entity.StockBatch{
		batch("b1", 5, day(1)),
		batch("b2", 10, day(2)),
	}

	plan, err := allocation.Allocate(testComponentID, batches, 20)
	require.Error(t, err)
	assert.Nil(t, plan, "no debe devolverse plan parcial")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, testComponentID, insufficient.ComponentID)
	assert.Equal(t, int64(20), insufficient.Required)
	assert.Equal(t, int64(15), insufficient.Available)
	assert.Equal(t, int64(5), insufficient.Shortfall, "el faltante debe ser exactamente 5")
}

func TestAllocate_RequerimientoCeroDevuelvePlanVacio(t *testing.T) {
	batches := []*entity.StockBatch{batch("b1", 5, day(1))}

	plan, err := allocation.Allocate(testComponentID, batches, 0)
	require.NoError(t, err, "requerimiento cero no es error")
	assert.Empty(t, plan)
}

func TestAllocate_RequerimientoNegativoEsInvalido(t *testing.T) {
	_, err := allocation.Allocate(testComponentID, nil, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAllocate_SinLotesFallaConFaltanteTotal(t *testing.T) {
	_, err := allocation.Allocate(testComponentID, nil, 7)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int64(7), insufficient.Shortfall)
	assert.Equal(t, int64(0), insufficient.Available)
}

// Los lotes agotados (CurrentQuantity == 0) no deben aparecer en el plan:
// ninguna línea puede tener toma cero.
func TestAllocate_IgnoraLotesAgotados(t *testing.T) {
	empty := batch("b1", 10, day(1))
	empty.CurrentQuantity = 0
	batches := []*entity.StockBatch{empty, batch("b2", 8, day(2))}

	plan, err := allocation.Allocate(testComponentID, batches, 8)
	require.NoError(t, err)

	require.Len(t, plan, 1)
	assert.Equal(t, "b2", plan[0].BatchID, "el lote agotado no participa aunque sea más viejo")
	for _, line := range plan {
		assert.Positive(t, line.QuantityTaken, "no debe haber líneas con toma cero")
	}
}

// Mismo día de recepción: desempata el ID de lote para que la asignación
// sea reproducible entre llamadas repetidas sobre el mismo snapshot.
func TestAllocate_EmpateDeFechaDesempataPorID(t *testing.T) {
	batches := []*entity.StockBatch{
		batch("b-zz", 4, day(3)),
		batch("b-aa", 4, day(3)),
	}

	plan, err := allocation.Allocate(testComponentID, batches, 6)
	require.NoError(t, err)

	require.Len(t, plan, 2)
	assert.Equal(t, "b-aa", plan[0].BatchID, "con fecha igual gana el ID menor")
	assert.Equal(t, int64(4), plan[0].QuantityTaken)
	assert.Equal(t, "b-zz", plan[1].BatchID)
	assert.Equal(t, int64(2), plan[1].QuantityTaken)
}

// Determinismo FIFO: con el mismo snapshot, llamadas repetidas producen
// exactamente el mismo plan (mismos lotes, mismo orden, mismas cantidades).
func TestAllocate_EsDeterminista(t *testing.T) {
	batches := []*entity.StockBatch{
		batch("b3", 7, day(5)),
		batch("b1", 3, day(1)),
		batch("b2", 9, day(3)),
	}

	first, err := allocation.Allocate(testComponentID, batches, 15)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := allocation.Allocate(testComponentID, batches, 15)
		require.NoError(t, err)
		assert.Equal(t, first, again, "el mismo snapshot siempre debe dar el mismo plan")
	}
}

// Allocate no debe mutar los lotes de entrada ni reordenar el slice del caller.
func TestAllocate_NoMutaLotesNiOrdenDeEntrada(t *testing.T) {
	b1 := batch("b1", 5, day(1))
	b2 := batch("b2", 10, day(2))
	batches := []*entity.StockBatch{b2, b1}

	_, err := allocation.Allocate(testComponentID, batches, 12)
	require.NoError(t, err)

	assert.Equal(t, int64(5), b1.CurrentQuantity, "planear no consume stock")
	assert.Equal(t, int64(10), b2.CurrentQuantity)
	assert.Equal(t, "b2", batches[0].ID, "el slice del caller conserva su orden")
}

// Propiedad de exactitud sobre varios tamaños de pedido: con stock suficiente
// la suma del plan siempre es igual al requerimiento y se usan los mínimos
// lotes necesarios en orden FIFO.
func TestAllocate_ExactitudYMinimoDeLotes(t *testing.T) {
	batches := []*entity.StockBatch{
		batch("b1", 4, day(1)),
		batch("b2", 4, day(2)),
		batch("b3", 4, day(3)),
	}

	cases := []struct {
		required int64
		lotes    int
	}{
		{1, 1}, {4, 1}, {5, 2}, {8, 2}, {9, 3}, {12, 3},
	}
	for _, tc := range cases {
		plan, err := allocation.Allocate(testComponentID, batches, tc.required)
		require.NoError(t, err, "requerimiento %d", tc.required)
		assert.Equal(t, tc.required, plan.Total(), "suma exacta para %d", tc.required)
		assert.Len(t, plan, tc.lotes, "mínimo de lotes FIFO para %d", tc.required)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ValidatePlan — planes manuales (override de la UI)
// ──────────────────────────────────────────────────────────────────────────────

func TestValidatePlan_PlanManualValido(t *testing.T) {
	batches := []*entity.StockBatch{
		batch("b1", 5, day(1)),
		batch("b2", 10, day(2)),
	}
	// El operario decide invertir el orden FIFO: sigue siendo válido si es exacto.
	plan := allocation.Plan{
		{BatchID: "b2", QuantityTaken: 10},
		{BatchID: "b1", QuantityTaken: 2},
	}

	err := allocation.ValidatePlan(testComponentID, plan, 12, batches)
	assert.NoError(t, err)
}

func TestValidatePlan_SumaInexactaEsInvalida(t *testing.T) {
	batches := []*entity.StockBatch{batch("b1", 10, day(1))}
	plan := allocation.Plan{{BatchID: "b1", QuantityTaken: 5}}

	err := allocation.ValidatePlan(testComponentID, plan, 7, batches)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tomar menos de lo requerido es inexacto")

	err = allocation.ValidatePlan(testComponentID, plan, 3, batches)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tomar de más también es inexacto")
}

func TestValidatePlan_TomaSobreDisponibleFalla(t *testing.T) {
	batches := []*entity.StockBatch{batch("b1", 4, day(1))}
	plan := allocation.Plan{{BatchID: "b1", QuantityTaken: 6}}

	err := allocation.ValidatePlan(testComponentID, plan, 6, batches)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestValidatePlan_LoteDesconocidoOAjeno(t *testing.T) {
	foreign := batch("b9", 50, day(1))
	foreign.ComponentID = "otro-componente"
	batches := []*entity.StockBatch{batch("b1", 5, day(1)), foreign}

	err := allocation.ValidatePlan(testComponentID,
		allocation.Plan{{BatchID: "no-existe", QuantityTaken: 5}}, 5, batches)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = allocation.ValidatePlan(testComponentID,
		allocation.Plan{{BatchID: "b9", QuantityTaken: 5}}, 5, batches)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un lote de otro componente no es asignable")
}

func TestValidatePlan_LoteRepetidoOTomaCero(t *testing.T) {
	batches := []*entity.StockBatch{batch("b1", 10, day(1))}

	err := allocation.ValidatePlan(testComponentID, allocation.Plan{
		{BatchID: "b1", QuantityTaken: 3},
		{BatchID: "b1", QuantityTaken: 3},
	}, 6, batches)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = allocation.ValidatePlan(testComponentID,
		allocation.Plan{{BatchID: "b1", QuantityTaken: 0}}, 0, batches)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
